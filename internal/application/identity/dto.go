package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/stocktrack/backend/internal/domain/identity"
	"github.com/stocktrack/backend/internal/domain/shared"
)

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password"`
}

// LoginResult is either a token pair, or the user id of an account that has
// not set a password yet and must complete first-login setup.
type LoginResult struct {
	IsNewUser             bool       `json:"is_new_user"`
	UserID                *uuid.UUID `json:"user_id,omitempty"`
	AccessToken           string     `json:"access_token,omitempty"`
	RefreshToken          string     `json:"refresh_token,omitempty"`
	AccessTokenExpiresAt  *time.Time `json:"access_token_expires_at,omitempty"`
	RefreshTokenExpiresAt *time.Time `json:"refresh_token_expires_at,omitempty"`
	TokenType             string     `json:"token_type,omitempty"`
}

// SetPasswordRequest completes first-login account setup
type SetPasswordRequest struct {
	UserID   uuid.UUID `json:"user_id" binding:"required"`
	Password string    `json:"password" binding:"required,min=8"`
}

// RefreshRequest represents a token refresh
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshResult is a fresh token pair
type RefreshResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// CreateUserRequest represents an admin creating an account. The account is
// created without a password; the user sets one on first login.
type CreateUserRequest struct {
	Email    string        `json:"email" binding:"required,email"`
	Fullname string        `json:"fullname" binding:"required,max=255"`
	Role     identity.Role `json:"role" binding:"required"`
	ShopID   *uuid.UUID    `json:"shop_id"`
}

// UpdateUserRequest represents a profile update
type UpdateUserRequest struct {
	Fullname string        `json:"fullname" binding:"required,max=255"`
	Role     identity.Role `json:"role" binding:"required"`
	ShopID   *uuid.UUID    `json:"shop_id"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID        uuid.UUID     `json:"id"`
	Email     string        `json:"email"`
	Fullname  string        `json:"fullname"`
	Role      identity.Role `json:"role"`
	ShopID    *uuid.UUID    `json:"shop_id"`
	IsNew     bool          `json:"is_new_user"`
	LastLogin *time.Time    `json:"last_login"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// ToUserResponse converts a domain User to UserResponse
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Fullname:  u.Fullname,
		Role:      u.Role,
		ShopID:    u.ShopID,
		IsNew:     u.IsNew,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// ListFilter represents common list query options
type ListFilter struct {
	Keyword  string `form:"keyword"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToDomainFilter converts the list filter to a shared.Filter
func (f ListFilter) ToDomainFilter() shared.Filter {
	filter := shared.DefaultFilter()
	filter.Keyword = f.Keyword
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	if f.OrderBy != "" {
		filter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		filter.OrderDir = f.OrderDir
	}
	return filter
}
