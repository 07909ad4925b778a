package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stocktrack/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role controls what a user may do
type Role string

const (
	// RoleAdmin has full access including user management
	RoleAdmin Role = "admin"
	// RoleCreator manages inventory but not users
	RoleCreator Role = "creator"
	// RoleSale records sales only
	RoleSale Role = "sale"
)

// Valid reports whether the role is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCreator, RoleSale:
		return true
	}
	return false
}

// User is an account in the system. New accounts are created by an admin
// without a password; the user sets one on first login, which is when the
// account stops being "new".
type User struct {
	shared.BaseEntity
	Email        string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	Fullname     string     `gorm:"type:varchar(255);not null"`
	PasswordHash string     `gorm:"type:varchar(255)"`
	Role         Role       `gorm:"type:varchar(20);not null"`
	ShopID       *uuid.UUID `gorm:"type:uuid;index"`
	IsNew        bool       `gorm:"not null;default:true"`
	IsActive     bool       `gorm:"not null;default:true"`
	IsSuperuser  bool       `gorm:"not null;default:false"`
	LastLogin    *time.Time `gorm:""`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new account pending password setup
func NewUser(email, fullname string, role Role) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	fullname = strings.TrimSpace(fullname)

	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "A valid email address is required")
	}
	if fullname == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Full name cannot be empty")
	}
	if !role.Valid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}

	return &User{
		BaseEntity: shared.NewBaseEntity(),
		Email:      email,
		Fullname:   fullname,
		Role:       role,
		IsNew:      true,
		IsActive:   true,
	}, nil
}

// AssignShop affiliates the user with a shop. A nil id clears the affiliation.
func (u *User) AssignShop(shopID *uuid.UUID) {
	u.ShopID = shopID
	u.UpdatedAt = time.Now()
}

// SetPassword hashes and stores the password and clears the new-account flag
func (u *User) SetPassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("WEAK_PASSWORD", "Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return shared.NewDomainError("HASH_FAILED", "Failed to hash password")
	}
	u.PasswordHash = string(hash)
	u.IsNew = false
	u.UpdatedAt = time.Now()
	return nil
}

// CheckPassword verifies the password against the stored hash
func (u *User) CheckPassword(password string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// RecordLogin stamps the last successful login time
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLogin = &now
	u.UpdatedAt = now
}

// UpdateProfile changes name and role
func (u *User) UpdateProfile(fullname string, role Role) error {
	fullname = strings.TrimSpace(fullname)
	if fullname == "" {
		return shared.NewDomainError("INVALID_NAME", "Full name cannot be empty")
	}
	if !role.Valid() {
		return shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}
	u.Fullname = fullname
	u.Role = role
	u.UpdatedAt = time.Now()
	return nil
}
