package sales

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocktrack/backend/internal/domain/shared"
)

// Invoice is the aggregate root of a sale. Its lines snapshot item name and
// code at the time of sale so later item edits do not rewrite sales history.
// The shop reference is nulled when the shop is deleted; the invoice survives.
type Invoice struct {
	shared.OwnedEntity
	ShopID *uuid.UUID    `gorm:"type:uuid;index"`
	Lines  []InvoiceLine `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceLine is one sold item on an invoice
type InvoiceLine struct {
	shared.BaseEntity
	InvoiceID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID    *uuid.UUID      `gorm:"type:uuid;index"`
	ItemName  string          `gorm:"type:varchar(255);not null"`
	ItemCode  string          `gorm:"type:varchar(10);not null"`
	Quantity  int64           `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (InvoiceLine) TableName() string {
	return "invoice_lines"
}

// NewInvoice creates an invoice shell for the given shop. Lines are added
// through AddLine before the invoice is persisted.
func NewInvoice(shopID uuid.UUID, createdBy *uuid.UUID) (*Invoice, error) {
	if shopID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SHOP", "Invoice requires a shop")
	}
	shop := shopID
	return &Invoice{
		OwnedEntity: shared.NewOwnedEntity(createdBy),
		ShopID:      &shop,
	}, nil
}

// AddLine appends a line selling quantity units of the given item. The line
// snapshots the item's current name, code and price; amount is price times
// quantity.
func (inv *Invoice) AddLine(itemID uuid.UUID, itemName, itemCode string, quantity int64, price decimal.Decimal) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Line quantity must be positive")
	}
	if itemName == "" {
		return shared.NewDomainError("INVALID_ITEM", "Line item name cannot be empty")
	}

	id := itemID
	inv.Lines = append(inv.Lines, InvoiceLine{
		BaseEntity: shared.NewBaseEntity(),
		InvoiceID:  inv.ID,
		ItemID:     &id,
		ItemName:   itemName,
		ItemCode:   itemCode,
		Quantity:   quantity,
		Price:      price,
		Amount:     price.Mul(decimal.NewFromInt(quantity)),
	})
	return nil
}

// Total sums the line amounts
func (inv *Invoice) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range inv.Lines {
		total = total.Add(line.Amount)
	}
	return total
}

// Validate checks the invoice is sellable: it has a shop and at least one line
func (inv *Invoice) Validate() error {
	if inv.ShopID == nil || *inv.ShopID == uuid.Nil {
		return shared.NewDomainError("INVALID_SHOP", "Invoice requires a shop")
	}
	if len(inv.Lines) == 0 {
		return shared.NewDomainError("EMPTY_INVOICE", "Invoice must contain at least one line")
	}
	return nil
}
