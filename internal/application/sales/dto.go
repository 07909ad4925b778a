package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocktrack/backend/internal/domain/sales"
	"github.com/stocktrack/backend/internal/domain/shared"
)

// CreateShopRequest represents a request to create a shop
type CreateShopRequest struct {
	Name string `json:"name" binding:"required,min=1,max=50"`
}

// UpdateShopRequest represents a request to rename a shop
type UpdateShopRequest struct {
	Name string `json:"name" binding:"required,min=1,max=50"`
}

// ShopResponse represents a shop in API responses
type ShopResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	CreatedBy *uuid.UUID `json:"created_by"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ToShopResponse converts a domain Shop to ShopResponse
func ToShopResponse(s *sales.Shop) ShopResponse {
	return ShopResponse{
		ID:        s.ID,
		Name:      s.Name,
		CreatedBy: s.GetCreatedBy(),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// InvoiceLineRequest is one requested line on a new invoice
type InvoiceLineRequest struct {
	ItemID   uuid.UUID `json:"item_id" binding:"required"`
	Quantity int64     `json:"quantity" binding:"required,min=1"`
}

// CreateInvoiceRequest represents a request to create an invoice. ShopID may
// be omitted when the creator has a shop affiliation, which then applies.
type CreateInvoiceRequest struct {
	ShopID *uuid.UUID           `json:"shop_id"`
	Lines  []InvoiceLineRequest `json:"invoice_items" binding:"required,min=1,dive"`
}

// InvoiceLineResponse represents an invoice line in API responses
type InvoiceLineResponse struct {
	ID       uuid.UUID       `json:"id"`
	ItemID   *uuid.UUID      `json:"item_id"`
	ItemName string          `json:"item_name"`
	ItemCode string          `json:"item_code"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Amount   decimal.Decimal `json:"amount"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID        uuid.UUID             `json:"id"`
	ShopID    *uuid.UUID            `json:"shop_id"`
	CreatedBy *uuid.UUID            `json:"created_by"`
	Lines     []InvoiceLineResponse `json:"invoice_items"`
	Total     decimal.Decimal       `json:"total"`
	CreatedAt time.Time             `json:"created_at"`
}

// ToInvoiceResponse converts a domain Invoice to InvoiceResponse
func ToInvoiceResponse(inv *sales.Invoice) InvoiceResponse {
	lines := make([]InvoiceLineResponse, len(inv.Lines))
	for i, line := range inv.Lines {
		lines[i] = InvoiceLineResponse{
			ID:       line.ID,
			ItemID:   line.ItemID,
			ItemName: line.ItemName,
			ItemCode: line.ItemCode,
			Quantity: line.Quantity,
			Price:    line.Price,
			Amount:   line.Amount,
		}
	}
	return InvoiceResponse{
		ID:        inv.ID,
		ShopID:    inv.ShopID,
		CreatedBy: inv.GetCreatedBy(),
		Lines:     lines,
		Total:     inv.Total(),
		CreatedAt: inv.CreatedAt,
	}
}

// ListFilter represents common list query options
type ListFilter struct {
	Keyword  string     `form:"keyword"`
	ShopID   *uuid.UUID `form:"shop_id"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string     `form:"order_by"`
	OrderDir string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToDomainFilter converts the list filter to a shared.Filter
func (f ListFilter) ToDomainFilter() shared.Filter {
	filter := shared.DefaultFilter()
	filter.Keyword = f.Keyword
	if f.ShopID != nil {
		filter.Filters["shop_id"] = *f.ShopID
	}
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	if f.OrderBy != "" {
		filter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		filter.OrderDir = f.OrderDir
	}
	return filter
}
