package audit

import (
	"context"

	"github.com/google/uuid"
	"github.com/stocktrack/backend/internal/domain/shared"
)

// Activity is one line of the audit trail: who did what, when. Entries are
// append-only and are never updated or deleted through the API.
type Activity struct {
	shared.BaseEntity
	UserID   *uuid.UUID `gorm:"type:uuid;index"`
	Email    string     `gorm:"type:varchar(255);not null"`
	Fullname string     `gorm:"type:varchar(255);not null"`
	Action   string     `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (Activity) TableName() string {
	return "user_activities"
}

// NewActivity creates an audit entry. The actor's email and fullname are
// snapshotted so the trail stays readable after the user is deleted.
func NewActivity(userID *uuid.UUID, email, fullname, action string) *Activity {
	return &Activity{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Email:      email,
		Fullname:   fullname,
		Action:     action,
	}
}

// Actor identifies who performed an audited action
type Actor struct {
	ID       uuid.UUID
	Email    string
	Fullname string
}

// Recorder writes audit entries. Implementations must never fail the calling
// business operation: recording errors are logged and swallowed.
type Recorder interface {
	Record(ctx context.Context, actor Actor, action string)
}

// ActivityRepository defines the interface for audit trail persistence
type ActivityRepository interface {
	Create(ctx context.Context, activity *Activity) error
	FindAll(ctx context.Context, filter shared.Filter) ([]*Activity, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
