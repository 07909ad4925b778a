package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stocktrack/backend/internal/domain/audit"
	"github.com/stocktrack/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockActivityRepository is a mock implementation of audit.ActivityRepository
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Create(ctx context.Context, activity *audit.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockActivityRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*audit.Activity, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*audit.Activity), args.Error(1)
}

func (m *MockActivityRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func TestActivityRecorder_Record(t *testing.T) {
	repo := new(MockActivityRepository)
	recorder := NewActivityRecorder(repo, zap.NewNop())

	actor := audit.Actor{ID: uuid.New(), Email: "a@example.com", Fullname: "Ada Admin"}

	repo.On("Create", mock.Anything, mock.MatchedBy(func(entry *audit.Activity) bool {
		return entry.Action == "added new shop - 'Main'" &&
			entry.Email == "a@example.com" &&
			entry.Fullname == "Ada Admin" &&
			entry.UserID != nil && *entry.UserID == actor.ID
	})).Return(nil)

	recorder.Record(context.Background(), actor, "added new shop - 'Main'")
	repo.AssertExpectations(t)
}

func TestActivityRecorder_Record_SwallowsFailure(t *testing.T) {
	repo := new(MockActivityRepository)
	recorder := NewActivityRecorder(repo, zap.NewNop())

	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	// must not panic or propagate
	recorder.Record(context.Background(), audit.Actor{Email: "a@example.com"}, "added new invoice")
	repo.AssertExpectations(t)
}

func TestActivityRecorder_Record_AnonymousActor(t *testing.T) {
	repo := new(MockActivityRepository)
	recorder := NewActivityRecorder(repo, zap.NewNop())

	repo.On("Create", mock.Anything, mock.MatchedBy(func(entry *audit.Activity) bool {
		return entry.UserID == nil && entry.Action == "added new group - 'Misc'"
	})).Return(nil)

	recorder.Record(context.Background(), audit.Actor{}, "added new group - 'Misc'")
	repo.AssertExpectations(t)
}

func TestActivityService_List(t *testing.T) {
	repo := new(MockActivityRepository)
	svc := NewActivityService(repo)

	entries := []*audit.Activity{
		audit.NewActivity(nil, "a@example.com", "Ada", "user logged in"),
		audit.NewActivity(nil, "b@example.com", "Bea", "added new user"),
	}
	filter := shared.DefaultFilter()

	repo.On("FindAll", mock.Anything, filter).Return(entries, nil)
	repo.On("Count", mock.Anything, filter).Return(int64(12), nil)

	page, err := svc.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(12), page.Total)
	assert.Equal(t, 2, page.TotalPages, "12 entries at page size 10")
	assert.Equal(t, "user logged in", page.Items[0].Action)
}
