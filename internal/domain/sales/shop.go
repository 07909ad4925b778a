package sales

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stocktrack/backend/internal/domain/shared"
)

// Shop is a sales location invoices are issued from
type Shop struct {
	shared.OwnedEntity
	Name string `gorm:"type:varchar(50);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (Shop) TableName() string {
	return "shops"
}

// NewShop creates a new shop
func NewShop(name string, createdBy *uuid.UUID) (*Shop, error) {
	name = strings.TrimSpace(name)
	if err := validateShopName(name); err != nil {
		return nil, err
	}
	return &Shop{
		OwnedEntity: shared.NewOwnedEntity(createdBy),
		Name:        name,
	}, nil
}

// Rename changes the shop name
func (s *Shop) Rename(name string) error {
	name = strings.TrimSpace(name)
	if err := validateShopName(name); err != nil {
		return err
	}
	s.Name = name
	s.UpdatedAt = time.Now()
	return nil
}

func validateShopName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Shop name cannot be empty")
	}
	if len(name) > 50 {
		return shared.NewDomainError("INVALID_NAME", "Shop name cannot exceed 50 characters")
	}
	return nil
}
