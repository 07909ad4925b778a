package inventory

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stocktrack/backend/internal/domain/shared"
)

// Group represents an inventory category. Groups form a hierarchy through the
// self-referential ParentID; the reference is nulled when the parent is deleted.
type Group struct {
	shared.OwnedEntity
	Name     string     `gorm:"type:varchar(100);not null;uniqueIndex"`
	ParentID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Group) TableName() string {
	return "inventory_groups"
}

// NewGroup creates a new inventory group
func NewGroup(name string, parentID, createdBy *uuid.UUID) (*Group, error) {
	name = strings.TrimSpace(name)
	if err := validateGroupName(name); err != nil {
		return nil, err
	}

	return &Group{
		OwnedEntity: shared.NewOwnedEntity(createdBy),
		Name:        name,
		ParentID:    parentID,
	}, nil
}

// Rename changes the group's name
func (g *Group) Rename(name string) error {
	name = strings.TrimSpace(name)
	if err := validateGroupName(name); err != nil {
		return err
	}

	g.Name = name
	g.UpdatedAt = time.Now()
	return nil
}

// SetParent moves the group under a new parent (nil moves it to the root)
func (g *Group) SetParent(parentID *uuid.UUID) error {
	if parentID != nil && *parentID == g.ID {
		return shared.NewDomainError("INVALID_PARENT", "Group cannot be its own parent")
	}

	g.ParentID = parentID
	g.UpdatedAt = time.Now()
	return nil
}

func validateGroupName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Group name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Group name cannot exceed 100 characters")
	}
	return nil
}
