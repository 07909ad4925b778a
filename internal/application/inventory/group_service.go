package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/stocktrack/backend/internal/domain/audit"
	"github.com/stocktrack/backend/internal/domain/inventory"
	"github.com/stocktrack/backend/internal/domain/shared"
)

// GroupService handles inventory group operations
type GroupService struct {
	groupRepo inventory.GroupRepository
	recorder  audit.Recorder
}

// NewGroupService creates a new GroupService
func NewGroupService(groupRepo inventory.GroupRepository, recorder audit.Recorder) *GroupService {
	return &GroupService{groupRepo: groupRepo, recorder: recorder}
}

// Create creates a new inventory group
func (s *GroupService) Create(ctx context.Context, actor audit.Actor, req CreateGroupRequest) (*GroupResponse, error) {
	if _, err := s.groupRepo.FindByName(ctx, req.Name); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Group with this name already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if req.ParentID != nil {
		if _, err := s.groupRepo.FindByID(ctx, *req.ParentID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PARENT", "Parent group not found")
			}
			return nil, err
		}
	}

	group, err := inventory.NewGroup(req.Name, req.ParentID, actorRef(actor))
	if err != nil {
		return nil, err
	}
	if err := s.groupRepo.Save(ctx, group); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, actor, fmt.Sprintf("added new group - '%s'", group.Name))

	response := ToGroupResponse(group, 0)
	return &response, nil
}

// GetByID retrieves a group by ID
func (s *GroupService) GetByID(ctx context.Context, id uuid.UUID) (*GroupResponse, error) {
	group, err := s.groupRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	counts, err := s.groupRepo.CountItems(ctx, []uuid.UUID{group.ID})
	if err != nil {
		return nil, err
	}

	response := ToGroupResponse(group, counts[group.ID])
	return &response, nil
}

// List retrieves a page of groups with their item counts
func (s *GroupService) List(ctx context.Context, filter ListFilter) (*shared.Paginated[GroupResponse], error) {
	domainFilter := filter.ToDomainFilter()

	groups, err := s.groupRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.groupRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(groups))
	for i, group := range groups {
		ids[i] = group.ID
	}
	counts, err := s.groupRepo.CountItems(ctx, ids)
	if err != nil {
		return nil, err
	}

	responses := make([]GroupResponse, len(groups))
	for i := range groups {
		responses[i] = ToGroupResponse(&groups[i], counts[groups[i].ID])
	}

	result := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// Update renames a group or moves it under a new parent. The rename is audited
// with both the old and new name; a save that changes nothing is not audited.
func (s *GroupService) Update(ctx context.Context, actor audit.Actor, id uuid.UUID, req UpdateGroupRequest) (*GroupResponse, error) {
	group, err := s.groupRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldName := group.Name
	changed := false

	if req.Name != nil && *req.Name != group.Name {
		if _, err := s.groupRepo.FindByName(ctx, *req.Name); err == nil {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Group with this name already exists")
		} else if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if err := group.Rename(*req.Name); err != nil {
			return nil, err
		}
		changed = true
	}

	if req.ParentID != nil {
		if _, err := s.groupRepo.FindByID(ctx, *req.ParentID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PARENT", "Parent group not found")
			}
			return nil, err
		}
		if err := group.SetParent(req.ParentID); err != nil {
			return nil, err
		}
		changed = true
	}

	if changed {
		if err := s.groupRepo.Save(ctx, group); err != nil {
			return nil, err
		}
		if oldName != group.Name {
			s.recorder.Record(ctx, actor,
				fmt.Sprintf("updated new group - '%s' to '%s'", oldName, group.Name))
		}
	}

	counts, err := s.groupRepo.CountItems(ctx, []uuid.UUID{group.ID})
	if err != nil {
		return nil, err
	}

	response := ToGroupResponse(group, counts[group.ID])
	return &response, nil
}

// Delete removes a group. Items in the group survive with a nulled reference.
func (s *GroupService) Delete(ctx context.Context, actor audit.Actor, id uuid.UUID) error {
	group, err := s.groupRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.groupRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.recorder.Record(ctx, actor, fmt.Sprintf("deleted group - '%s'", group.Name))
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
