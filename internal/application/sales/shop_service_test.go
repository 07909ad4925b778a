package sales

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stocktrack/backend/internal/domain/audit"
	domainsales "github.com/stocktrack/backend/internal/domain/sales"
	"github.com/stocktrack/backend/internal/domain/shared"
)

func testActor() audit.Actor {
	return audit.Actor{
		ID:       uuid.New(),
		Email:    "admin@example.com",
		Fullname: "Admin User",
	}
}

func TestShopService_Create(t *testing.T) {
	shopRepo := new(MockShopRepository)
	recorder := new(MockRecorder)
	service := NewShopService(shopRepo, recorder)

	shopRepo.On("FindByName", mock.Anything, "Main Street").Return(nil, shared.ErrNotFound)
	shopRepo.On("Save", mock.Anything, mock.AnythingOfType("*sales.Shop")).Return(nil)
	recorder.On("Record", mock.Anything, mock.Anything, "added new shop - 'Main Street'").Return()

	resp, err := service.Create(context.Background(), testActor(), CreateShopRequest{Name: "Main Street"})

	require.NoError(t, err)
	assert.Equal(t, "Main Street", resp.Name)
	shopRepo.AssertExpectations(t)
	recorder.AssertExpectations(t)
}

func TestShopService_Create_DuplicateName(t *testing.T) {
	shopRepo := new(MockShopRepository)
	recorder := new(MockRecorder)
	service := NewShopService(shopRepo, recorder)

	existing, _ := domainsales.NewShop("Main Street", nil)
	shopRepo.On("FindByName", mock.Anything, "Main Street").Return(existing, nil)

	_, err := service.Create(context.Background(), testActor(), CreateShopRequest{Name: "Main Street"})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	shopRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	recorder.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything)
}

func TestShopService_Update_RenameAudited(t *testing.T) {
	shopRepo := new(MockShopRepository)
	recorder := new(MockRecorder)
	service := NewShopService(shopRepo, recorder)

	shop, _ := domainsales.NewShop("Old Corner", nil)
	shopRepo.On("FindByID", mock.Anything, shop.ID).Return(shop, nil)
	shopRepo.On("FindByName", mock.Anything, "New Corner").Return(nil, shared.ErrNotFound)
	shopRepo.On("Save", mock.Anything, shop).Return(nil)
	recorder.On("Record", mock.Anything, mock.Anything, "updated new shop - 'Old Corner' to 'New Corner'").Return()

	resp, err := service.Update(context.Background(), testActor(), shop.ID, UpdateShopRequest{Name: "New Corner"})

	require.NoError(t, err)
	assert.Equal(t, "New Corner", resp.Name)
	recorder.AssertExpectations(t)
}

func TestShopService_Update_NoChangeNotAudited(t *testing.T) {
	shopRepo := new(MockShopRepository)
	recorder := new(MockRecorder)
	service := NewShopService(shopRepo, recorder)

	shop, _ := domainsales.NewShop("Main Street", nil)
	shopRepo.On("FindByID", mock.Anything, shop.ID).Return(shop, nil)

	resp, err := service.Update(context.Background(), testActor(), shop.ID, UpdateShopRequest{Name: "Main Street"})

	require.NoError(t, err)
	assert.Equal(t, "Main Street", resp.Name)
	shopRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	recorder.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything)
}

func TestShopService_Delete(t *testing.T) {
	shopRepo := new(MockShopRepository)
	recorder := new(MockRecorder)
	service := NewShopService(shopRepo, recorder)

	shop, _ := domainsales.NewShop("Main Street", nil)
	shopRepo.On("FindByID", mock.Anything, shop.ID).Return(shop, nil)
	shopRepo.On("Delete", mock.Anything, shop.ID).Return(nil)
	recorder.On("Record", mock.Anything, mock.Anything, "deleted shop - 'Main Street'").Return()

	err := service.Delete(context.Background(), testActor(), shop.ID)

	require.NoError(t, err)
	shopRepo.AssertExpectations(t)
	recorder.AssertExpectations(t)
}

func TestShopService_List(t *testing.T) {
	shopRepo := new(MockShopRepository)
	recorder := new(MockRecorder)
	service := NewShopService(shopRepo, recorder)

	first, _ := domainsales.NewShop("First", nil)
	second, _ := domainsales.NewShop("Second", nil)
	shopRepo.On("FindAll", mock.Anything, mock.Anything).Return([]domainsales.Shop{*first, *second}, nil)
	shopRepo.On("Count", mock.Anything, mock.Anything).Return(int64(2), nil)

	result, err := service.List(context.Background(), ListFilter{})

	require.NoError(t, err)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, int64(2), result.Total)
	assert.Equal(t, 1, result.TotalPages)
}
