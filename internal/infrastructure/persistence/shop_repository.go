package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stocktrack/backend/internal/domain/identity"
	"github.com/stocktrack/backend/internal/domain/sales"
	"github.com/stocktrack/backend/internal/domain/shared"
	"gorm.io/gorm"
)

var shopSearchColumns = []string{
	"shops.name",
	"creators.email",
	"creators.fullname",
}

// GormShopRepository implements sales.ShopRepository using GORM
type GormShopRepository struct {
	db *gorm.DB
}

// NewGormShopRepository creates a new GormShopRepository
func NewGormShopRepository(db *gorm.DB) *GormShopRepository {
	return &GormShopRepository{db: db}
}

// FindByID finds a shop by its ID
func (r *GormShopRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Shop, error) {
	var shop sales.Shop
	if err := r.db.WithContext(ctx).First(&shop, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &shop, nil
}

// FindByName finds a shop by its exact name
func (r *GormShopRepository) FindByName(ctx context.Context, name string) (*sales.Shop, error) {
	var shop sales.Shop
	if err := r.db.WithContext(ctx).First(&shop, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &shop, nil
}

// FindAll finds all shops matching the filter. Keyword search also covers
// the creator's email and fullname.
func (r *GormShopRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Shop, error) {
	var shops []sales.Shop
	query := applyFilter(r.baseQuery(ctx, filter), qualifyOrder(filter, "shops"), shopSearchColumns)
	if err := query.Find(&shops).Error; err != nil {
		return nil, err
	}
	return shops, nil
}

// baseQuery joins the creator table only when a keyword search needs it
func (r *GormShopRepository) baseQuery(ctx context.Context, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&sales.Shop{})
	if filter.Keyword != "" {
		query = query.
			Joins("LEFT JOIN users creators ON creators.id = shops.created_by").
			Distinct("shops.*")
	}
	return query
}

// Save creates or updates a shop
func (r *GormShopRepository) Save(ctx context.Context, shop *sales.Shop) error {
	return r.db.WithContext(ctx).Save(shop).Error
}

// Delete deletes a shop. Its invoices survive with a nulled shop reference,
// as do user affiliations.
func (r *GormShopRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&sales.Invoice{}).
			Where("shop_id = ?", id).
			Update("shop_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&identity.User{}).
			Where("shop_id = ?", id).
			Update("shop_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&sales.Shop{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts shops matching the filter
func (r *GormShopRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFilterWithoutPagination(r.baseQuery(ctx, filter), filter, shopSearchColumns)
	if filter.Keyword != "" {
		query = query.Distinct("shops.id")
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ sales.ShopRepository = (*GormShopRepository)(nil)
