package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/stocktrack/backend/internal/domain/audit"
	"github.com/stocktrack/backend/internal/domain/identity"
	"github.com/stocktrack/backend/internal/domain/sales"
	"github.com/stocktrack/backend/internal/domain/shared"
)

// UserService handles account management by admins
type UserService struct {
	userRepo identity.UserRepository
	shopRepo sales.ShopRepository
	recorder audit.Recorder
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, shopRepo sales.ShopRepository, recorder audit.Recorder) *UserService {
	return &UserService{userRepo: userRepo, shopRepo: shopRepo, recorder: recorder}
}

// Create creates an account without a password. The new user completes setup
// on first login.
func (s *UserService) Create(ctx context.Context, actor audit.Actor, req CreateUserRequest) (*UserResponse, error) {
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "User with this email already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	user, err := identity.NewUser(req.Email, req.Fullname, req.Role)
	if err != nil {
		return nil, err
	}

	if req.ShopID != nil {
		if _, err := s.shopRepo.FindByID(ctx, *req.ShopID); err != nil {
			return nil, err
		}
		user.AssignShop(req.ShopID)
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, actor, "added new user")

	response := ToUserResponse(user)
	return &response, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// List retrieves a page of regular users. Superuser accounts stay hidden.
func (s *UserService) List(ctx context.Context, filter ListFilter) (*shared.Paginated[UserResponse], error) {
	domainFilter := filter.ToDomainFilter()
	domainFilter.Filters["is_superuser"] = false

	users, err := s.userRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.userRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}

	result := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// Update changes a user's profile and shop affiliation
func (s *UserService) Update(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := user.UpdateProfile(req.Fullname, req.Role); err != nil {
		return nil, err
	}

	if req.ShopID != nil {
		if _, err := s.shopRepo.FindByID(ctx, *req.ShopID); err != nil {
			return nil, err
		}
	}
	user.AssignShop(req.ShopID)

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// Delete removes a user. Records they created keep a nulled creator reference.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.userRepo.Delete(ctx, id)
}
