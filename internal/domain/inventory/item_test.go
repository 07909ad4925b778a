package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	groupID := uuid.New()
	creator := uuid.New()

	tests := []struct {
		name      string
		itemName  string
		total     int64
		price     decimal.Decimal
		wantError bool
	}{
		{
			name:     "valid item",
			itemName: "Router TP-Link AX23",
			total:    40,
			price:    decimal.NewFromFloat(59.90),
		},
		{
			name:     "zero total is allowed",
			itemName: "Placeholder",
			total:    0,
			price:    decimal.NewFromInt(10),
		},
		{
			name:      "empty name",
			itemName:  "   ",
			total:     5,
			price:     decimal.NewFromInt(1),
			wantError: true,
		},
		{
			name:      "negative total",
			itemName:  "Broken",
			total:     -1,
			price:     decimal.NewFromInt(1),
			wantError: true,
		},
		{
			name:      "negative price",
			itemName:  "Broken",
			total:     1,
			price:     decimal.NewFromInt(-1),
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := NewItem(tt.itemName, tt.total, tt.price, &groupID, &creator)
			if tt.wantError {
				assert.Error(t, err)
				assert.Nil(t, item)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.itemName, item.Name)
			assert.Equal(t, tt.total, item.Total)
			assert.Equal(t, tt.total, item.Remaining, "remaining must start equal to total")
			assert.True(t, tt.price.Equal(item.Price))
			assert.Equal(t, &groupID, item.GroupID)
			assert.Empty(t, item.Code, "code is assigned after the storage sequence is known")
		})
	}
}

func TestItemCode(t *testing.T) {
	tests := []struct {
		sequence int64
		want     string
	}{
		{1, "ITEM000001"},
		{7, "ITEM000007"},
		{42, "ITEM000042"},
		{999999, "ITEM999999"},
		{1234567, "ITEM1234567"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ItemCode(tt.sequence))
	}
}

func TestItem_AssignCode(t *testing.T) {
	item, err := NewItem("Switch", 10, decimal.NewFromInt(25), nil, nil)
	require.NoError(t, err)

	item.Sequence = 12
	item.AssignCode()

	assert.Equal(t, "ITEM000012", item.Code)
}

func TestItem_Update(t *testing.T) {
	item, err := NewItem("Old name", 10, decimal.NewFromInt(5), nil, nil)
	require.NoError(t, err)

	newGroup := uuid.New()
	err = item.Update("New name", 20, 15, decimal.NewFromFloat(7.50), &newGroup)
	require.NoError(t, err)

	assert.Equal(t, "New name", item.Name)
	assert.Equal(t, int64(20), item.Total)
	assert.Equal(t, int64(15), item.Remaining)
	assert.True(t, decimal.NewFromFloat(7.50).Equal(item.Price))
	assert.Equal(t, &newGroup, item.GroupID)

	err = item.Update("", 20, 15, decimal.NewFromInt(1), nil)
	assert.Error(t, err)

	err = item.Update("Name", -1, 0, decimal.NewFromInt(1), nil)
	assert.Error(t, err)
}

func TestItem_CanFulfill(t *testing.T) {
	item, err := NewItem("Cable", 3, decimal.NewFromInt(2), nil, nil)
	require.NoError(t, err)

	assert.True(t, item.CanFulfill(3))
	assert.True(t, item.CanFulfill(1))
	assert.False(t, item.CanFulfill(4))
	assert.True(t, item.InStock())

	item.Remaining = 0
	assert.False(t, item.InStock())
}
