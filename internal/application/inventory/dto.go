package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocktrack/backend/internal/domain/inventory"
	"github.com/stocktrack/backend/internal/domain/shared"
)

// CreateGroupRequest represents a request to create an inventory group
type CreateGroupRequest struct {
	Name     string     `json:"name" binding:"required,min=1,max=100"`
	ParentID *uuid.UUID `json:"belongs_to"`
}

// UpdateGroupRequest represents a request to update an inventory group
type UpdateGroupRequest struct {
	Name     *string    `json:"name" binding:"omitempty,min=1,max=100"`
	ParentID *uuid.UUID `json:"belongs_to"`
}

// GroupResponse represents a group in API responses
type GroupResponse struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	ParentID   *uuid.UUID `json:"belongs_to"`
	CreatedBy  *uuid.UUID `json:"created_by"`
	TotalItems int64      `json:"total_items"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ToGroupResponse converts a domain Group to GroupResponse
func ToGroupResponse(g *inventory.Group, totalItems int64) GroupResponse {
	return GroupResponse{
		ID:         g.ID,
		Name:       g.Name,
		ParentID:   g.ParentID,
		CreatedBy:  g.GetCreatedBy(),
		TotalItems: totalItems,
		CreatedAt:  g.CreatedAt,
		UpdatedAt:  g.UpdatedAt,
	}
}

// CreateItemRequest represents a request to create an inventory item
type CreateItemRequest struct {
	Name    string          `json:"name" binding:"required,min=1,max=255"`
	Total   int64           `json:"total" binding:"min=0"`
	Price   decimal.Decimal `json:"price"`
	GroupID *uuid.UUID      `json:"group_id"`
}

// UpdateItemRequest represents a request to update an inventory item
type UpdateItemRequest struct {
	Name      *string          `json:"name" binding:"omitempty,min=1,max=255"`
	Total     *int64           `json:"total" binding:"omitempty,min=0"`
	Remaining *int64           `json:"remaining" binding:"omitempty,min=0"`
	Price     *decimal.Decimal `json:"price"`
	GroupID   *uuid.UUID       `json:"group_id"`
}

// ItemResponse represents an item in API responses
type ItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	PhotoKey  string          `json:"photo,omitempty"`
	GroupID   *uuid.UUID      `json:"group_id"`
	Total     int64           `json:"total"`
	Remaining int64           `json:"remaining"`
	Price     decimal.Decimal `json:"price"`
	CreatedBy *uuid.UUID      `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToItemResponse converts a domain Item to ItemResponse
func ToItemResponse(i *inventory.Item) ItemResponse {
	return ItemResponse{
		ID:        i.ID,
		Code:      i.Code,
		Name:      i.Name,
		PhotoKey:  i.PhotoKey,
		GroupID:   i.GroupID,
		Total:     i.Total,
		Remaining: i.Remaining,
		Price:     i.Price,
		CreatedBy: i.GetCreatedBy(),
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

// ListFilter represents common list query options
type ListFilter struct {
	Keyword  string     `form:"keyword"`
	GroupID  *uuid.UUID `form:"group_id"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string     `form:"order_by"`
	OrderDir string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToDomainFilter converts the list filter to a shared.Filter
func (f ListFilter) ToDomainFilter() shared.Filter {
	filter := shared.DefaultFilter()
	filter.Keyword = f.Keyword
	if f.GroupID != nil {
		filter.Filters["group_id"] = *f.GroupID
	}
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

// PhotoUploadResponse carries a presigned upload URL for an item photo
type PhotoUploadResponse struct {
	UploadURL string    `json:"upload_url"`
	PhotoKey  string    `json:"photo_key"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PhotoDownloadResponse carries a presigned download URL for an item photo
type PhotoDownloadResponse struct {
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}
