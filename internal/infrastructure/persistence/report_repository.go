package persistence

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stocktrack/backend/internal/domain/identity"
	"github.com/stocktrack/backend/internal/domain/inventory"
	"github.com/stocktrack/backend/internal/domain/report"
	"github.com/stocktrack/backend/internal/domain/sales"
	"gorm.io/gorm"
)

// GormReportRepository implements report.Repository with read-only aggregate
// queries over the live tables.
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// Summary counts in-stock items, groups, shops and users
func (r *GormReportRepository) Summary(ctx context.Context) (*report.Summary, error) {
	summary := &report.Summary{}
	db := r.db.WithContext(ctx)

	if err := db.Model(&inventory.Item{}).
		Where("remaining > 0").
		Count(&summary.TotalInventory).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&inventory.Group{}).Count(&summary.TotalGroups).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&sales.Shop{}).Count(&summary.TotalShops).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&identity.User{}).
		Where("is_superuser = ?", false).
		Count(&summary.TotalUsers).Error; err != nil {
		return nil, err
	}
	return summary, nil
}

// TopSelling ranks items by summed sold quantity within the window. Grouping
// is on the line snapshots so deleted items still appear in history. Ties
// break on code, which follows creation order.
func (r *GormReportRepository) TopSelling(ctx context.Context, window report.Window, limit int) ([]report.TopSellingItem, error) {
	if limit <= 0 {
		limit = 10
	}

	query := r.db.WithContext(ctx).
		Model(&sales.InvoiceLine{}).
		Select("MIN(item_id::text) AS item_id, item_name AS name, item_code AS code, SUM(quantity) AS quantity_sold").
		Group("item_name, item_code").
		Order("quantity_sold DESC, code ASC").
		Limit(limit)
	query = applyWindow(query, window, "invoice_lines.created_at")

	var items []report.TopSellingItem
	if err := query.Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// SalesByShop aggregates revenue per shop, optionally bucketed by calendar month
func (r *GormReportRepository) SalesByShop(ctx context.Context, window report.Window, monthly bool) ([]report.ShopSales, error) {
	db := r.db.WithContext(ctx).
		Model(&sales.InvoiceLine{}).
		Joins("JOIN invoices ON invoices.id = invoice_lines.invoice_id").
		Joins("JOIN shops ON shops.id = invoices.shop_id")
	db = applyWindow(db, window, "invoice_lines.created_at")

	if monthly {
		db = db.Select("shops.id::text AS shop_id, shops.name AS name, " +
			"SUM(invoice_lines.quantity * invoice_lines.amount) AS amount, " +
			"DATE_TRUNC('month', invoice_lines.created_at) AS month").
			Group("shops.id, shops.name, month").
			Order("amount DESC")
	} else {
		db = db.Select("shops.id::text AS shop_id, shops.name AS name, " +
			"SUM(invoice_lines.quantity * invoice_lines.amount) AS amount").
			Group("shops.id, shops.name").
			Order("amount DESC")
	}

	var results []report.ShopSales
	if err := db.Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// PurchaseSummary totals revenue and sold quantity over the window, returning
// "0.00" and 0 when nothing sold.
func (r *GormReportRepository) PurchaseSummary(ctx context.Context, window report.Window) (*report.PurchaseSummary, error) {
	var row struct {
		Price decimal.NullDecimal
		Count *int64
	}

	query := r.db.WithContext(ctx).
		Model(&sales.InvoiceLine{}).
		Select("SUM(amount * quantity) AS price, SUM(quantity) AS count")
	query = applyWindow(query, window, "invoice_lines.created_at")

	if err := query.Scan(&row).Error; err != nil {
		return nil, err
	}

	summary := &report.PurchaseSummary{Price: "0.00", Count: 0}
	if row.Price.Valid {
		summary.Price = row.Price.Decimal.StringFixed(2)
	}
	if row.Count != nil {
		summary.Count = *row.Count
	}
	return summary, nil
}

func applyWindow(query *gorm.DB, window report.Window, column string) *gorm.DB {
	if window.Start != nil {
		query = query.Where(column+" >= ?", *window.Start)
	}
	if window.End != nil {
		// inclusive end of day when a bare date is given
		end := *window.End
		if end.Hour() == 0 && end.Minute() == 0 && end.Second() == 0 {
			end = end.Add(24*time.Hour - time.Nanosecond)
		}
		query = query.Where(column+" <= ?", end)
	}
	return query
}

var _ report.Repository = (*GormReportRepository)(nil)
