package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Window is an optional inclusive date range applied to sales timestamps.
// Nil bounds leave that side open.
type Window struct {
	Start *time.Time
	End   *time.Time
}

// All is the unbounded window
func All() Window {
	return Window{}
}

// Summary is the dashboard head-count of the main entities
type Summary struct {
	TotalInventory int64 `json:"total_inventory"`
	TotalGroups    int64 `json:"total_groups"`
	TotalShops     int64 `json:"total_shops"`
	TotalUsers     int64 `json:"total_users"`
}

// TopSellingItem is an item ranked by total quantity sold
type TopSellingItem struct {
	ItemID       string `json:"item_id"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	QuantitySold int64  `json:"quantity_sold"`
}

// ShopSales is revenue aggregated per shop, optionally within one month
type ShopSales struct {
	ShopID string          `json:"shop_id"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount_total"`
	Month  *time.Time      `json:"month,omitempty"`
}

// PurchaseSummary totals revenue and volume over a window. Price keeps its
// two-decimal string form so an empty set reads "0.00".
type PurchaseSummary struct {
	Price string `json:"price"`
	Count int64  `json:"count"`
}

// Repository defines the read-side queries backing the reports
type Repository interface {
	Summary(ctx context.Context) (*Summary, error)
	TopSelling(ctx context.Context, window Window, limit int) ([]TopSellingItem, error)
	SalesByShop(ctx context.Context, window Window, monthly bool) ([]ShopSales, error)
	PurchaseSummary(ctx context.Context, window Window) (*PurchaseSummary, error)
}
