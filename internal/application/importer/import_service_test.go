package importer

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/stocktrack/backend/internal/domain/audit"
	"github.com/stocktrack/backend/internal/domain/inventory"
	"github.com/stocktrack/backend/internal/domain/sales"
	"github.com/stocktrack/backend/internal/domain/shared"
	"github.com/stocktrack/backend/internal/infrastructure/persistence"
)

// capturingRecorder collects audit actions without a repository
type capturingRecorder struct {
	mu      sync.Mutex
	actions []string
}

func (r *capturingRecorder) Record(_ context.Context, _ audit.Actor, action string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, action)
}

func setupImportTest(t *testing.T) (*gorm.DB, *ImportService, *capturingRecorder, inventory.ItemRepository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&inventory.Group{}, &inventory.Item{},
		&sales.Invoice{}, &sales.InvoiceLine{},
	))

	recorder := &capturingRecorder{}
	scope := persistence.NewGormTransactionScope(db)
	service := NewImportService(scope, recorder)
	itemRepo := persistence.NewGormItemRepository(db)
	return db, service, recorder, itemRepo
}

func importActor() audit.Actor {
	return audit.Actor{Email: "importer@example.com", Fullname: "Importer"}
}

func TestImportService_CreatesNewItems(t *testing.T) {
	_, service, recorder, itemRepo := setupImportTest(t)

	file := strings.Join([]string{
		"group_id,total,name,price,photo",
		"1,50,Espresso Beans,19.99,beans.jpg",
		"2,10,Filter Paper,4.50,",
	}, "\n")

	result, err := service.Import(context.Background(), importActor(), strings.NewReader(file))

	require.NoError(t, err)
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, 2, result.Created)

	item, err := itemRepo.FindByName(context.Background(), "Espresso Beans")
	require.NoError(t, err)
	assert.Equal(t, int64(50), item.Total)
	assert.Equal(t, int64(50), item.Remaining)
	assert.Equal(t, "beans.jpg", item.PhotoKey)
	assert.NotEmpty(t, item.Code)

	require.Len(t, recorder.actions, 2)
	assert.Contains(t, recorder.actions[0], "added new inventory item with code - '")
}

func TestImportService_ReconcilesExistingByName(t *testing.T) {
	_, service, recorder, itemRepo := setupImportTest(t)

	existing, err := inventory.NewItem("Espresso Beans", 50, decimal.RequireFromString("15.00"), nil, nil)
	require.NoError(t, err)
	require.NoError(t, itemRepo.Create(context.Background(), existing))

	// simulate partial sales before the restock
	require.NoError(t, itemRepo.DecrementRemaining(context.Background(), existing.ID, 20))

	file := "1,30,Espresso Beans,19.99,\n"
	result, err := service.Import(context.Background(), importActor(), strings.NewReader(file))

	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 0, result.Created)

	reloaded, err := itemRepo.FindByID(context.Background(), existing.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(80), reloaded.Total)
	assert.Equal(t, int64(60), reloaded.Remaining)
	assert.True(t, decimal.RequireFromString("19.99").Equal(reloaded.Price))

	require.Len(t, recorder.actions, 1)
	assert.Equal(t, "updated inventory item with code - '"+existing.Code+"'", recorder.actions[0])
}

func TestImportService_RollsBackOnFailure(t *testing.T) {
	_, service, recorder, itemRepo := setupImportTest(t)

	existing, err := inventory.NewItem("Espresso Beans", 50, decimal.RequireFromString("15.00"), nil, nil)
	require.NoError(t, err)
	require.NoError(t, itemRepo.Create(context.Background(), existing))

	// second data row parses but fails item validation inside the
	// transaction, so the first row's update must not commit
	file := strings.Join([]string{
		"1,30,Espresso Beans,19.99,",
		"2,5," + strings.Repeat("x", 300) + ",1.00,",
	}, "\n")

	_, err = service.Import(context.Background(), importActor(), strings.NewReader(file))

	require.ErrorIs(t, err, shared.ErrInvalidImport)
	reloaded, err := itemRepo.FindByID(context.Background(), existing.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(50), reloaded.Total)
	assert.Empty(t, recorder.actions)
}

func TestImportService_EmptyUsableInput(t *testing.T) {
	_, service, _, _ := setupImportTest(t)

	_, err := service.Import(context.Background(), importActor(), strings.NewReader("group_id,total,name,price,photo\n"))

	require.ErrorIs(t, err, shared.ErrInvalidImport)
}
