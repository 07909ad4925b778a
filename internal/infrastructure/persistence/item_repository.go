package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocktrack/backend/internal/domain/inventory"
	"github.com/stocktrack/backend/internal/domain/sales"
	"github.com/stocktrack/backend/internal/domain/shared"
	"gorm.io/gorm"
)

var itemSearchColumns = []string{
	"inventory_items.code",
	"inventory_items.name",
	"inventory_groups.name",
	"creators.email",
	"creators.fullname",
}

// GormItemRepository implements inventory.ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByID finds an item by its ID
func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Item, error) {
	var item inventory.Item
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByCode finds an item by its display code
func (r *GormItemRepository) FindByCode(ctx context.Context, code string) (*inventory.Item, error) {
	var item inventory.Item
	if err := r.db.WithContext(ctx).First(&item, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByName finds an item by its exact name
func (r *GormItemRepository) FindByName(ctx context.Context, name string) (*inventory.Item, error) {
	var item inventory.Item
	if err := r.db.WithContext(ctx).First(&item, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindAll finds all items matching the filter. Keyword search also covers the
// group name and the creator's email and fullname.
func (r *GormItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Item, error) {
	var items []inventory.Item
	query := applyFilter(r.baseQuery(ctx, filter), qualifyOrder(filter, "inventory_items"), itemSearchColumns)
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// baseQuery joins the group and creator tables only when a keyword search
// needs their columns
func (r *GormItemRepository) baseQuery(ctx context.Context, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&inventory.Item{})
	if filter.Keyword != "" {
		query = query.
			Joins("LEFT JOIN inventory_groups ON inventory_groups.id = inventory_items.group_id").
			Joins("LEFT JOIN users creators ON creators.id = inventory_items.created_by").
			Distinct("inventory_items.*")
	}
	return query
}

// Create inserts the item and assigns its sequence and derived code in one
// transaction. The row is inserted first so concurrent creates contend on the
// sequence index rather than silently reusing a number.
func (r *GormItemRepository) Create(ctx context.Context, item *inventory.Item) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return createWithSequence(tx, item)
	})
}

// CreateBatch inserts new items with sequence and code assignment. The whole
// batch succeeds or fails together.
func (r *GormItemRepository) CreateBatch(ctx context.Context, items []*inventory.Item) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			if err := createWithSequence(tx, item); err != nil {
				return err
			}
		}
		return nil
	})
}

// sequenceAttempts bounds the retries when concurrent creates race to the
// same sequence number.
const sequenceAttempts = 3

// createWithSequence inserts the item with the next sequence number and
// derives its code. Two creates in parallel transactions can compute the same
// number; the unique index rejects the loser, which rolls back to a savepoint
// and recomputes.
func createWithSequence(tx *gorm.DB, item *inventory.Item) error {
	var err error
	for attempt := 0; attempt < sequenceAttempts; attempt++ {
		err = tx.Transaction(func(inner *gorm.DB) error {
			return insertWithNextSequence(inner, item)
		})
		if err == nil || !isUniqueViolation(err) {
			return err
		}
	}
	return err
}

func insertWithNextSequence(tx *gorm.DB, item *inventory.Item) error {
	var next int64
	if err := tx.Model(&inventory.Item{}).
		Select("COALESCE(MAX(sequence), 0) + 1").
		Scan(&next).Error; err != nil {
		return err
	}

	item.Sequence = next
	if err := tx.Create(item).Error; err != nil {
		return err
	}

	item.AssignCode()
	return tx.Model(&inventory.Item{}).
		Where("id = ?", item.ID).
		Update("code", item.Code).Error
}

// isUniqueViolation reports whether the error came from a unique index.
// Postgres says "duplicate key value violates unique constraint", sqlite
// "UNIQUE constraint failed".
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

// Save updates an existing item
func (r *GormItemRepository) Save(ctx context.Context, item *inventory.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete deletes an item. Invoice lines keep their snapshot columns and only
// lose the live item reference.
func (r *GormItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&sales.InvoiceLine{}).
			Where("item_id = ?", id).
			Update("item_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&inventory.Item{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts items matching the filter
func (r *GormItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFilterWithoutPagination(r.baseQuery(ctx, filter), filter, itemSearchColumns)
	if filter.Keyword != "" {
		query = query.Distinct("inventory_items.id")
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DecrementRemaining atomically subtracts quantity from remaining stock. The
// guard in the WHERE clause makes oversell impossible even under concurrent
// invoices: a row is only updated when the balance covers the quantity.
func (r *GormItemRepository) DecrementRemaining(ctx context.Context, id uuid.UUID, quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	result := r.db.WithContext(ctx).
		Model(&inventory.Item{}).
		Where("id = ? AND remaining >= ?", id, quantity).
		Update("remaining", gorm.Expr("remaining - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// distinguish missing item from insufficient balance
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&inventory.Item{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return shared.ErrInsufficientStock
	}
	return nil
}

// AddStock increases total and remaining by quantity and overwrites the unit price
func (r *GormItemRepository) AddStock(ctx context.Context, id uuid.UUID, quantity int64, price decimal.Decimal) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	result := r.db.WithContext(ctx).
		Model(&inventory.Item{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"total":     gorm.Expr("total + ?", quantity),
			"remaining": gorm.Expr("remaining + ?", quantity),
			"price":     price,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ inventory.ItemRepository = (*GormItemRepository)(nil)
