package sales

import (
	"context"

	"github.com/stocktrack/backend/internal/domain/shared"
)

// ShopRepository defines the interface for shop persistence
type ShopRepository interface {
	shared.Repository[Shop]
	FindByName(ctx context.Context, name string) (*Shop, error)
}

// InvoiceRepository defines the interface for invoice persistence.
// FindAll and FindByID load invoices with their lines.
type InvoiceRepository interface {
	shared.Repository[Invoice]
}
