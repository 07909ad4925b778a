package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	salesapp "github.com/stocktrack/backend/internal/application/sales"
	"github.com/stocktrack/backend/internal/domain/audit"
	"github.com/stocktrack/backend/internal/domain/sales"
	"github.com/stocktrack/backend/internal/domain/shared"
	"github.com/stocktrack/backend/internal/infrastructure/auth"
	"github.com/stocktrack/backend/internal/interfaces/http/middleware"
)

// MockShopRepository implements sales.ShopRepository for testing
type MockShopRepository struct {
	mock.Mock
}

func (m *MockShopRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Shop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Shop), args.Error(1)
}

func (m *MockShopRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Shop, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.Shop), args.Error(1)
}

func (m *MockShopRepository) Save(ctx context.Context, shop *sales.Shop) error {
	args := m.Called(ctx, shop)
	return args.Error(0)
}

func (m *MockShopRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockShopRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockShopRepository) FindByName(ctx context.Context, name string) (*sales.Shop, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Shop), args.Error(1)
}

// MockRecorder implements audit.Recorder for testing
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(ctx context.Context, actor audit.Actor, action string) {
	m.Called(ctx, actor, action)
}

// authenticatedAs injects JWT claims the way the auth middleware would
func authenticatedAs(userID uuid.UUID, email, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.JWTClaimsKey, &auth.Claims{
			UserID:   userID.String(),
			Email:    email,
			Fullname: "Test User",
			Role:     role,
		})
		c.Set(middleware.JWTUserIDKey, userID.String())
		c.Set(middleware.JWTRoleKey, role)
		c.Next()
	}
}

func setupShopRouter(t *testing.T, shopRepo *MockShopRepository, recorder *MockRecorder, authed bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewShopHandler(salesapp.NewShopService(shopRepo, recorder))

	engine := gin.New()
	if authed {
		engine.Use(authenticatedAs(uuid.New(), "admin@example.com", "admin"))
	}
	engine.POST("/shops", h.Create)
	engine.GET("/shops", h.List)
	engine.GET("/shops/:id", h.Get)
	return engine
}

func TestShopHandler_Create(t *testing.T) {
	shopRepo := new(MockShopRepository)
	recorder := new(MockRecorder)
	shopRepo.On("FindByName", mock.Anything, "Main Street").Return(nil, shared.ErrNotFound)
	shopRepo.On("Save", mock.Anything, mock.AnythingOfType("*sales.Shop")).Return(nil)
	recorder.On("Record", mock.Anything, mock.Anything, "added new shop - 'Main Street'").Return()

	engine := setupShopRouter(t, shopRepo, recorder, true)

	body, _ := json.Marshal(map[string]string{"name": "Main Street"})
	req := httptest.NewRequest(http.MethodPost, "/shops", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Name string `json:"name"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Main Street", resp.Data.Name)
	shopRepo.AssertExpectations(t)
	recorder.AssertExpectations(t)
}

func TestShopHandler_Create_DuplicateNameConflict(t *testing.T) {
	existing, err := sales.NewShop("Main Street", nil)
	require.NoError(t, err)

	shopRepo := new(MockShopRepository)
	recorder := new(MockRecorder)
	shopRepo.On("FindByName", mock.Anything, "Main Street").Return(existing, nil)

	engine := setupShopRouter(t, shopRepo, recorder, true)

	body, _ := json.Marshal(map[string]string{"name": "Main Street"})
	req := httptest.NewRequest(http.MethodPost, "/shops", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "ALREADY_EXISTS", resp.Error.Code)
	recorder.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything)
}

func TestShopHandler_Create_Unauthenticated(t *testing.T) {
	engine := setupShopRouter(t, new(MockShopRepository), new(MockRecorder), false)

	body, _ := json.Marshal(map[string]string{"name": "Main Street"})
	req := httptest.NewRequest(http.MethodPost, "/shops", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestShopHandler_Get_NotFound(t *testing.T) {
	shopRepo := new(MockShopRepository)
	id := uuid.New()
	shopRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	engine := setupShopRouter(t, shopRepo, new(MockRecorder), true)

	req := httptest.NewRequest(http.MethodGet, "/shops/"+id.String(), nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestShopHandler_List_WithMeta(t *testing.T) {
	shopA, err := sales.NewShop("North", nil)
	require.NoError(t, err)
	shopB, err := sales.NewShop("South", nil)
	require.NoError(t, err)

	shopRepo := new(MockShopRepository)
	shopRepo.On("FindAll", mock.Anything, mock.Anything).Return([]sales.Shop{*shopA, *shopB}, nil)
	shopRepo.On("Count", mock.Anything, mock.Anything).Return(int64(2), nil)

	engine := setupShopRouter(t, shopRepo, new(MockRecorder), true)

	req := httptest.NewRequest(http.MethodGet, "/shops?page=1&page_size=10", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Meta    struct {
			Total      int64 `json:"total"`
			TotalPages int   `json:"total_pages"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, int64(2), resp.Meta.Total)
	assert.Equal(t, 1, resp.Meta.TotalPages)
}
