package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stocktrack/backend/internal/domain/audit"
	"github.com/stocktrack/backend/internal/domain/inventory"
	"github.com/stocktrack/backend/internal/domain/shared"
)

// PhotoStorage generates presigned URLs for item photo objects
type PhotoStorage interface {
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
	DeleteObject(ctx context.Context, storageKey string) error
}

// ItemService handles inventory item operations
type ItemService struct {
	itemRepo  inventory.ItemRepository
	groupRepo inventory.GroupRepository
	storage   PhotoStorage
	recorder  audit.Recorder
	urlExpiry time.Duration
}

// NewItemService creates a new ItemService
func NewItemService(
	itemRepo inventory.ItemRepository,
	groupRepo inventory.GroupRepository,
	storage PhotoStorage,
	recorder audit.Recorder,
) *ItemService {
	return &ItemService{
		itemRepo:  itemRepo,
		groupRepo: groupRepo,
		storage:   storage,
		recorder:  recorder,
		urlExpiry: 15 * time.Minute,
	}
}

// Create creates a new inventory item. The derived display code is assigned
// inside the repository once the storage sequence is known.
func (s *ItemService) Create(ctx context.Context, actor audit.Actor, req CreateItemRequest) (*ItemResponse, error) {
	if req.GroupID != nil {
		if _, err := s.groupRepo.FindByID(ctx, *req.GroupID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_GROUP", "Group not found")
			}
			return nil, err
		}
	}

	item, err := inventory.NewItem(req.Name, req.Total, req.Price, req.GroupID, actorRef(actor))
	if err != nil {
		return nil, err
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, actor,
		fmt.Sprintf("added new inventory item with code - '%s'", item.Code))

	response := ToItemResponse(item)
	return &response, nil
}

// GetByID retrieves an item by ID
func (s *ItemService) GetByID(ctx context.Context, id uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToItemResponse(item)
	return &response, nil
}

// GetByCode retrieves an item by its display code
func (s *ItemService) GetByCode(ctx context.Context, code string) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	response := ToItemResponse(item)
	return &response, nil
}

// List retrieves a page of items
func (s *ItemService) List(ctx context.Context, filter ListFilter) (*shared.Paginated[ItemResponse], error) {
	domainFilter := filter.ToDomainFilter()

	items, err := s.itemRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.itemRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]ItemResponse, len(items))
	for i := range items {
		responses[i] = ToItemResponse(&items[i])
	}

	result := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// Update applies explicit field changes to an item
func (s *ItemService) Update(ctx context.Context, actor audit.Actor, id uuid.UUID, req UpdateItemRequest) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := item.Name
	if req.Name != nil {
		name = *req.Name
	}
	total := item.Total
	if req.Total != nil {
		total = *req.Total
	}
	remaining := item.Remaining
	if req.Remaining != nil {
		remaining = *req.Remaining
	}
	price := item.Price
	if req.Price != nil {
		price = *req.Price
	}
	groupID := item.GroupID
	if req.GroupID != nil {
		if _, err := s.groupRepo.FindByID(ctx, *req.GroupID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_GROUP", "Group not found")
			}
			return nil, err
		}
		groupID = req.GroupID
	}

	if err := item.Update(name, total, remaining, price, groupID); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, actor,
		fmt.Sprintf("updated inventory item with code - '%s'", item.Code))

	response := ToItemResponse(item)
	return &response, nil
}

// Delete removes an item. Historical invoice lines keep their snapshots.
func (s *ItemService) Delete(ctx context.Context, actor audit.Actor, id uuid.UUID) error {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.itemRepo.Delete(ctx, id); err != nil {
		return err
	}

	if item.PhotoKey != "" && s.storage != nil {
		// photo cleanup is best effort
		_ = s.storage.DeleteObject(ctx, item.PhotoKey)
	}

	s.recorder.Record(ctx, actor, fmt.Sprintf("deleted inventory item - '%s'", item.Code))
	return nil
}

// PhotoUploadURL issues a presigned upload URL and records the key on the item
func (s *ItemService) PhotoUploadURL(ctx context.Context, id uuid.UUID, contentType string) (*PhotoUploadResponse, error) {
	if s.storage == nil {
		return nil, shared.NewDomainError("STORAGE_DISABLED", "Photo storage is not configured")
	}

	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("items/%s/photo", item.ID)
	url, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, contentType, s.urlExpiry)
	if err != nil {
		return nil, err
	}

	item.SetPhotoKey(key)
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	return &PhotoUploadResponse{UploadURL: url, PhotoKey: key, ExpiresAt: expiresAt}, nil
}

// PhotoDownloadURL issues a presigned download URL for the item's photo
func (s *ItemService) PhotoDownloadURL(ctx context.Context, id uuid.UUID) (*PhotoDownloadResponse, error) {
	if s.storage == nil {
		return nil, shared.NewDomainError("STORAGE_DISABLED", "Photo storage is not configured")
	}

	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.PhotoKey == "" {
		return nil, shared.NewDomainError("NO_PHOTO", "Item has no photo")
	}

	url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, item.PhotoKey, s.urlExpiry)
	if err != nil {
		return nil, err
	}

	return &PhotoDownloadResponse{DownloadURL: url, ExpiresAt: expiresAt}, nil
}
