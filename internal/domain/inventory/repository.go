package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocktrack/backend/internal/domain/shared"
)

// GroupRepository defines the interface for inventory group persistence
type GroupRepository interface {
	shared.Repository[Group]
	FindByName(ctx context.Context, name string) (*Group, error)
	// CountItems returns the number of items belonging to each given group.
	CountItems(ctx context.Context, groupIDs []uuid.UUID) (map[uuid.UUID]int64, error)
}

// ItemRepository defines the interface for inventory item persistence
type ItemRepository interface {
	shared.Repository[Item]
	FindByCode(ctx context.Context, code string) (*Item, error)
	FindByName(ctx context.Context, name string) (*Item, error)
	// Create inserts the item, assigns its storage sequence and derived code
	// in the same transaction.
	Create(ctx context.Context, item *Item) error
	// CreateBatch inserts new items with sequence and code assignment inside
	// the caller's transaction context.
	CreateBatch(ctx context.Context, items []*Item) error
	// DecrementRemaining atomically subtracts quantity from remaining stock.
	// It returns shared.ErrInsufficientStock when the remaining balance does
	// not cover the quantity, without modifying the row.
	DecrementRemaining(ctx context.Context, id uuid.UUID, quantity int64) error
	// AddStock increases both total and remaining by quantity and overwrites
	// the unit price, used by import reconciliation.
	AddStock(ctx context.Context, id uuid.UUID, quantity int64, price decimal.Decimal) error
}
