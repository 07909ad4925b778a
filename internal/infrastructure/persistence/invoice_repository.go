package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stocktrack/backend/internal/domain/sales"
	"github.com/stocktrack/backend/internal/domain/shared"
	"gorm.io/gorm"
)

var invoiceSearchColumns = []string{
	"creators.email",
	"creators.fullname",
	"shops.name",
	"invoice_lines.item_name",
	"invoice_lines.item_code",
}

// GormInvoiceRepository implements sales.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID loads an invoice with its lines
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Invoice, error) {
	var invoice sales.Invoice
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindAll loads invoices with their lines. Keyword search matches the
// creator's email and fullname, the shop name, and the line snapshots of
// item name and code.
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Invoice, error) {
	var invoices []sales.Invoice
	filter = qualifyInvoiceFilter(filter)
	query := r.baseQuery(ctx, filter)
	query = applyFilter(query, qualifyOrder(filter, "invoices"), invoiceSearchColumns).Preload("Lines")
	if err := query.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// Save creates or updates an invoice together with its lines
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *sales.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

// Delete deletes an invoice and its lines. Stock is not restored.
func (r *GormInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&sales.InvoiceLine{}, "invoice_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&sales.Invoice{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts invoices matching the filter
func (r *GormInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	filter = qualifyInvoiceFilter(filter)
	query := r.baseQuery(ctx, filter)
	query = applyFilterWithoutPagination(query, filter, invoiceSearchColumns)
	if err := query.Distinct("invoices.id").Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// baseQuery joins the creator, shop and line tables only when a keyword
// search needs their columns
func (r *GormInvoiceRepository) baseQuery(ctx context.Context, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&sales.Invoice{})
	if filter.Keyword != "" {
		query = query.
			Joins("LEFT JOIN users creators ON creators.id = invoices.created_by").
			Joins("LEFT JOIN shops ON shops.id = invoices.shop_id").
			Joins("LEFT JOIN invoice_lines ON invoice_lines.invoice_id = invoices.id").
			Distinct("invoices.*")
	}
	return query
}

// qualifyInvoiceFilter prefixes the shop filter with the invoices table so a
// keyword join against users, which carries its own shop_id, cannot make the
// column ambiguous.
func qualifyInvoiceFilter(filter shared.Filter) shared.Filter {
	if filter.Keyword == "" {
		return filter
	}
	value, ok := filter.Filters["shop_id"]
	if !ok {
		return filter
	}
	qualified := make(map[string]interface{}, len(filter.Filters))
	for key, val := range filter.Filters {
		qualified[key] = val
	}
	delete(qualified, "shop_id")
	qualified["invoices.shop_id"] = value
	filter.Filters = qualified
	return filter
}

var _ sales.InvoiceRepository = (*GormInvoiceRepository)(nil)
