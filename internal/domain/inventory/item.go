package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocktrack/backend/internal/domain/shared"
)

// codeWidth is the minimum digit width of the numeric part of an item code.
const codeWidth = 6

// Item represents a stock record. Remaining starts equal to Total and moves
// only through invoicing (down) and import reconciliation (up).
//
// Sequence is a storage-assigned monotonically increasing number used solely
// to derive the display code; it is not known until the first insert, so code
// assignment is a create-then-patch sequence handled by the repository.
type Item struct {
	shared.OwnedEntity
	Sequence  int64           `gorm:"uniqueIndex;not null;default:0"`
	Code      string          `gorm:"type:varchar(10);uniqueIndex"`
	Name      string          `gorm:"type:varchar(255);not null;index"`
	PhotoKey  string          `gorm:"type:text"`
	GroupID   *uuid.UUID      `gorm:"type:uuid;index"`
	Total     int64           `gorm:"not null"`
	Remaining int64           `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "inventory_items"
}

// NewItem creates a new inventory item with remaining initialized to total
func NewItem(name string, total int64, price decimal.Decimal, groupID, createdBy *uuid.UUID) (*Item, error) {
	name = strings.TrimSpace(name)
	if err := validateItemName(name); err != nil {
		return nil, err
	}
	if total < 0 {
		return nil, shared.NewDomainError("INVALID_TOTAL", "Total quantity cannot be negative")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	return &Item{
		OwnedEntity: shared.NewOwnedEntity(createdBy),
		Name:        name,
		GroupID:     groupID,
		Total:       total,
		Remaining:   total,
		Price:       price,
	}, nil
}

// ItemCode derives the display code from a storage sequence number.
// The numeric part is zero-padded to six digits; longer sequences keep
// their natural width.
func ItemCode(sequence int64) string {
	return fmt.Sprintf("ITEM%0*d", codeWidth, sequence)
}

// AssignCode sets the derived code after the storage sequence is known
func (i *Item) AssignCode() {
	i.Code = ItemCode(i.Sequence)
	i.UpdatedAt = time.Now()
}

// Update applies explicit field changes. The remaining/total relationship is
// not adjusted beyond the values provided.
func (i *Item) Update(name string, total, remaining int64, price decimal.Decimal, groupID *uuid.UUID) error {
	name = strings.TrimSpace(name)
	if err := validateItemName(name); err != nil {
		return err
	}
	if total < 0 || remaining < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantities cannot be negative")
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	i.Name = name
	i.Total = total
	i.Remaining = remaining
	i.Price = price
	i.GroupID = groupID
	i.UpdatedAt = time.Now()
	return nil
}

// SetPhotoKey records the object-storage key of the item's photo
func (i *Item) SetPhotoKey(key string) {
	i.PhotoKey = key
	i.UpdatedAt = time.Now()
}

// CanFulfill returns true if remaining stock covers the requested quantity
func (i *Item) CanFulfill(quantity int64) bool {
	return i.Remaining >= quantity
}

// InStock returns true if the item has unsold stock
func (i *Item) InStock() bool {
	return i.Remaining > 0
}

func validateItemName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if len(name) > 255 {
		return shared.NewDomainError("INVALID_NAME", "Item name cannot exceed 255 characters")
	}
	return nil
}
