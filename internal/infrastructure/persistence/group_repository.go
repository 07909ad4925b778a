package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stocktrack/backend/internal/domain/inventory"
	"github.com/stocktrack/backend/internal/domain/shared"
	"gorm.io/gorm"
)

var groupSearchColumns = []string{
	"inventory_groups.name",
	"creators.email",
	"creators.fullname",
}

// GormGroupRepository implements inventory.GroupRepository using GORM
type GormGroupRepository struct {
	db *gorm.DB
}

// NewGormGroupRepository creates a new GormGroupRepository
func NewGormGroupRepository(db *gorm.DB) *GormGroupRepository {
	return &GormGroupRepository{db: db}
}

// FindByID finds a group by its ID
func (r *GormGroupRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Group, error) {
	var group inventory.Group
	if err := r.db.WithContext(ctx).First(&group, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &group, nil
}

// FindByName finds a group by its exact name
func (r *GormGroupRepository) FindByName(ctx context.Context, name string) (*inventory.Group, error) {
	var group inventory.Group
	if err := r.db.WithContext(ctx).First(&group, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &group, nil
}

// FindAll finds all groups matching the filter. Keyword search also covers
// the creator's email and fullname.
func (r *GormGroupRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Group, error) {
	var groups []inventory.Group
	query := applyFilter(r.baseQuery(ctx, filter), qualifyOrder(filter, "inventory_groups"), groupSearchColumns)
	if err := query.Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// baseQuery joins the creator table only when a keyword search needs it
func (r *GormGroupRepository) baseQuery(ctx context.Context, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&inventory.Group{})
	if filter.Keyword != "" {
		query = query.
			Joins("LEFT JOIN users creators ON creators.id = inventory_groups.created_by").
			Distinct("inventory_groups.*")
	}
	return query
}

// Save creates or updates a group
func (r *GormGroupRepository) Save(ctx context.Context, group *inventory.Group) error {
	return r.db.WithContext(ctx).Save(group).Error
}

// Delete deletes a group. Items keep their rows with the group reference
// nulled; child groups are lifted to the root the same way.
func (r *GormGroupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&inventory.Item{}).
			Where("group_id = ?", id).
			Update("group_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&inventory.Group{}).
			Where("parent_id = ?", id).
			Update("parent_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&inventory.Group{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts groups matching the filter
func (r *GormGroupRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFilterWithoutPagination(r.baseQuery(ctx, filter), filter, groupSearchColumns)
	if filter.Keyword != "" {
		query = query.Distinct("inventory_groups.id")
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountItems returns the number of items in each of the given groups
func (r *GormGroupRepository) CountItems(ctx context.Context, groupIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(groupIDs))
	if len(groupIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		GroupID uuid.UUID
		Total   int64
	}
	if err := r.db.WithContext(ctx).
		Model(&inventory.Item{}).
		Select("group_id, COUNT(*) AS total").
		Where("group_id IN ?", groupIDs).
		Group("group_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.GroupID] = row.Total
	}
	return counts, nil
}

var _ inventory.GroupRepository = (*GormGroupRepository)(nil)
