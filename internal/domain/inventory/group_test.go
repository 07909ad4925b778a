package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGroup(t *testing.T) {
	creator := uuid.New()
	parent := uuid.New()

	tests := []struct {
		name      string
		groupName string
		parentID  *uuid.UUID
		wantError bool
	}{
		{
			name:      "valid top level group",
			groupName: "Networking",
		},
		{
			name:      "valid child group",
			groupName: "Switches",
			parentID:  &parent,
		},
		{
			name:      "empty name",
			groupName: "  ",
			wantError: true,
		},
		{
			name:      "name too long",
			groupName: string(make([]byte, 101)),
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			group, err := NewGroup(tt.groupName, tt.parentID, &creator)
			if tt.wantError {
				assert.Error(t, err)
				assert.Nil(t, group)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.groupName, group.Name)
			assert.Equal(t, tt.parentID, group.ParentID)
			assert.Equal(t, &creator, group.GetCreatedBy())
		})
	}
}

func TestGroup_Rename(t *testing.T) {
	group, err := NewGroup("Computers", nil, nil)
	require.NoError(t, err)

	require.NoError(t, group.Rename("Laptops"))
	assert.Equal(t, "Laptops", group.Name)

	assert.Error(t, group.Rename(""))
	assert.Equal(t, "Laptops", group.Name)
}

func TestGroup_SetParent(t *testing.T) {
	group, err := NewGroup("Accessories", nil, nil)
	require.NoError(t, err)

	parent := uuid.New()
	require.NoError(t, group.SetParent(&parent))
	assert.Equal(t, &parent, group.ParentID)

	err = group.SetParent(&group.ID)
	assert.Error(t, err, "a group cannot be its own parent")

	require.NoError(t, group.SetParent(nil))
	assert.Nil(t, group.ParentID)
}
