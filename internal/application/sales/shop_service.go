package sales

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/stocktrack/backend/internal/domain/audit"
	"github.com/stocktrack/backend/internal/domain/sales"
	"github.com/stocktrack/backend/internal/domain/shared"
)

// ShopService handles shop operations
type ShopService struct {
	shopRepo sales.ShopRepository
	recorder audit.Recorder
}

// NewShopService creates a new ShopService
func NewShopService(shopRepo sales.ShopRepository, recorder audit.Recorder) *ShopService {
	return &ShopService{shopRepo: shopRepo, recorder: recorder}
}

// Create creates a new shop
func (s *ShopService) Create(ctx context.Context, actor audit.Actor, req CreateShopRequest) (*ShopResponse, error) {
	if _, err := s.shopRepo.FindByName(ctx, req.Name); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Shop with this name already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	shop, err := sales.NewShop(req.Name, actorRef(actor))
	if err != nil {
		return nil, err
	}
	if err := s.shopRepo.Save(ctx, shop); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, actor, fmt.Sprintf("added new shop - '%s'", shop.Name))

	response := ToShopResponse(shop)
	return &response, nil
}

// GetByID retrieves a shop by ID
func (s *ShopService) GetByID(ctx context.Context, id uuid.UUID) (*ShopResponse, error) {
	shop, err := s.shopRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToShopResponse(shop)
	return &response, nil
}

// List retrieves a page of shops
func (s *ShopService) List(ctx context.Context, filter ListFilter) (*shared.Paginated[ShopResponse], error) {
	domainFilter := filter.ToDomainFilter()

	shops, err := s.shopRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.shopRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]ShopResponse, len(shops))
	for i := range shops {
		responses[i] = ToShopResponse(&shops[i])
	}

	result := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// Update renames a shop. Only an actual rename is audited.
func (s *ShopService) Update(ctx context.Context, actor audit.Actor, id uuid.UUID, req UpdateShopRequest) (*ShopResponse, error) {
	shop, err := s.shopRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldName := shop.Name
	if req.Name != shop.Name {
		if _, err := s.shopRepo.FindByName(ctx, req.Name); err == nil {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Shop with this name already exists")
		} else if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if err := shop.Rename(req.Name); err != nil {
			return nil, err
		}
		if err := s.shopRepo.Save(ctx, shop); err != nil {
			return nil, err
		}
		s.recorder.Record(ctx, actor,
			fmt.Sprintf("updated new shop - '%s' to '%s'", oldName, shop.Name))
	}

	response := ToShopResponse(shop)
	return &response, nil
}

// Delete removes a shop along with its invoices
func (s *ShopService) Delete(ctx context.Context, actor audit.Actor, id uuid.UUID) error {
	shop, err := s.shopRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.shopRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.recorder.Record(ctx, actor, fmt.Sprintf("deleted shop - '%s'", shop.Name))
	return nil
}

// actorRef converts the actor's ID to a nullable creator reference
func actorRef(actor audit.Actor) *uuid.UUID {
	if actor.ID == uuid.Nil {
		return nil
	}
	id := actor.ID
	return &id
}
