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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	salesapp "github.com/stocktrack/backend/internal/application/sales"
	"github.com/stocktrack/backend/internal/domain/inventory"
	"github.com/stocktrack/backend/internal/domain/sales"
	"github.com/stocktrack/backend/internal/domain/shared"
)

// MockInvoiceRepository implements sales.InvoiceRepository for testing
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Invoice, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *sales.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockItemRepository implements inventory.ItemRepository for testing
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Item), args.Error(1)
}

func (m *MockItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Item, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Item), args.Error(1)
}

func (m *MockItemRepository) Save(ctx context.Context, item *inventory.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) FindByCode(ctx context.Context, code string) (*inventory.Item, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Item), args.Error(1)
}

func (m *MockItemRepository) FindByName(ctx context.Context, name string) (*inventory.Item, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Item), args.Error(1)
}

func (m *MockItemRepository) Create(ctx context.Context, item *inventory.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) CreateBatch(ctx context.Context, items []*inventory.Item) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *MockItemRepository) DecrementRemaining(ctx context.Context, id uuid.UUID, quantity int64) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

func (m *MockItemRepository) AddStock(ctx context.Context, id uuid.UUID, quantity int64, price decimal.Decimal) error {
	args := m.Called(ctx, id, quantity, price)
	return args.Error(0)
}

func setupInvoiceRouter(t *testing.T, itemRepo *MockItemRepository, invoiceRepo *MockInvoiceRepository, shopRepo *MockShopRepository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := new(MockRecorder)
	recorder.On("Record", mock.Anything, mock.Anything, mock.Anything).Return().Maybe()

	scope := salesapp.NewNoOpTransactionScope(itemRepo, invoiceRepo)
	svc := salesapp.NewInvoiceService(invoiceRepo, shopRepo, nil, scope, recorder)
	h := NewInvoiceHandler(svc)

	engine := gin.New()
	engine.Use(authenticatedAs(uuid.New(), "sale@example.com", "sale"))
	engine.POST("/invoices", h.Create)
	return engine
}

func TestInvoiceHandler_Create_InsufficientStock(t *testing.T) {
	shop, err := sales.NewShop("Main Street", nil)
	require.NoError(t, err)

	item, err := inventory.NewItem("Desk Lamp", 5, decimal.NewFromFloat(19.99), nil, nil)
	require.NoError(t, err)

	itemRepo := new(MockItemRepository)
	invoiceRepo := new(MockInvoiceRepository)
	shopRepo := new(MockShopRepository)

	shopRepo.On("FindByID", mock.Anything, shop.ID).Return(shop, nil)
	itemRepo.On("FindByID", mock.Anything, item.ID).Return(item, nil)
	itemRepo.On("DecrementRemaining", mock.Anything, item.ID, int64(10)).Return(shared.ErrInsufficientStock)

	engine := setupInvoiceRouter(t, itemRepo, invoiceRepo, shopRepo)

	body, _ := json.Marshal(map[string]any{
		"shop_id": shop.ID,
		"invoice_items": []map[string]any{
			{"item_id": item.ID, "quantity": 10},
		},
	})
	req := httptest.NewRequest(http.MethodPost, "/invoices", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INSUFFICIENT_STOCK", resp.Error.Code)
	invoiceRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestInvoiceHandler_Create_RejectsEmptyLines(t *testing.T) {
	engine := setupInvoiceRouter(t, new(MockItemRepository), new(MockInvoiceRepository), new(MockShopRepository))

	body, _ := json.Marshal(map[string]any{
		"shop_id":       uuid.New(),
		"invoice_items": []map[string]any{},
	})
	req := httptest.NewRequest(http.MethodPost, "/invoices", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	// binding rejects the empty line list before the service runs
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
