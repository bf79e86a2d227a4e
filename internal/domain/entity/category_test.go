package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storecore/commerce/internal/domain/errs"
)

func TestNewCategory(t *testing.T) {
	tests := []struct {
		name    string
		cname   string
		wantErr bool
	}{
		{name: "valid", cname: "Electronics"},
		{name: "exactly three chars", cname: "Toy"},
		{name: "too short", cname: "TV", wantErr: true},
		{name: "blank", cname: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCategory(tt.cname, "desc")
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errs.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.True(t, c.Active, "new categories start active")
		})
	}
}

func TestCategoryRename(t *testing.T) {
	c, err := NewCategory("Electronics", "")
	require.NoError(t, err)

	require.Error(t, c.Rename("ab"))
	assert.Equal(t, "Electronics", c.Name)

	require.NoError(t, c.Rename("Gadgets"))
	assert.Equal(t, "Gadgets", c.Name)
}

func TestCategoryActivation(t *testing.T) {
	c, err := NewCategory("Electronics", "")
	require.NoError(t, err)

	c.Deactivate()
	assert.False(t, c.Active)
	c.Activate()
	assert.True(t, c.Active)
}
