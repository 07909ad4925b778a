package persistence

import (
	"context"

	"github.com/stocktrack/backend/internal/domain/audit"
	"github.com/stocktrack/backend/internal/domain/shared"
	"gorm.io/gorm"
)

var activitySearchColumns = []string{"email", "fullname", "action"}

// GormActivityRepository implements audit.ActivityRepository using GORM
type GormActivityRepository struct {
	db *gorm.DB
}

// NewGormActivityRepository creates a new GormActivityRepository
func NewGormActivityRepository(db *gorm.DB) *GormActivityRepository {
	return &GormActivityRepository{db: db}
}

// Create appends an audit entry
func (r *GormActivityRepository) Create(ctx context.Context, activity *audit.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

// FindAll finds audit entries matching the filter
func (r *GormActivityRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*audit.Activity, error) {
	var activities []*audit.Activity
	query := applyFilter(r.db.WithContext(ctx).Model(&audit.Activity{}), filter, activitySearchColumns)
	if err := query.Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

// Count counts audit entries matching the filter
func (r *GormActivityRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&audit.Activity{}), filter, activitySearchColumns)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ audit.ActivityRepository = (*GormActivityRepository)(nil)
