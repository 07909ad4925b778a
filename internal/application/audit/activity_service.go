package audit

import (
	"context"

	"github.com/stocktrack/backend/internal/domain/audit"
	"github.com/stocktrack/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ActivityRecorder writes audit entries through the activity repository.
// Recording happens outside the caller's transaction and failures are logged
// and swallowed so the audit trail can never roll back a business mutation.
type ActivityRecorder struct {
	repo   audit.ActivityRepository
	logger *zap.Logger
}

// NewActivityRecorder creates a new ActivityRecorder
func NewActivityRecorder(repo audit.ActivityRepository, logger *zap.Logger) *ActivityRecorder {
	return &ActivityRecorder{repo: repo, logger: logger.Named("audit")}
}

// Record appends an audit entry for the actor
func (r *ActivityRecorder) Record(ctx context.Context, actor audit.Actor, action string) {
	entry := audit.NewActivity(actorID(actor), actor.Email, actor.Fullname, action)
	if err := r.repo.Create(ctx, entry); err != nil {
		r.logger.Error("failed to record activity",
			zap.String("action", action),
			zap.String("email", actor.Email),
			zap.Error(err),
		)
	}
}

var _ audit.Recorder = (*ActivityRecorder)(nil)

// ActivityService exposes the read side of the audit trail
type ActivityService struct {
	repo audit.ActivityRepository
}

// NewActivityService creates a new ActivityService
func NewActivityService(repo audit.ActivityRepository) *ActivityService {
	return &ActivityService{repo: repo}
}

// List returns a page of audit entries, newest first
func (s *ActivityService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[ActivityResponse], error) {
	entries, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ActivityResponse, len(entries))
	for i, entry := range entries {
		responses[i] = ToActivityResponse(entry)
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}
