package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storecore/commerce/internal/domain/errs"
)

func TestNewRole(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "lowercase", input: "customer", want: "CUSTOMER"},
		{name: "mixed case", input: "Admin", want: "ADMIN"},
		{name: "padded", input: " MANAGER ", want: "MANAGER"},
		{name: "unknown", input: "superuser", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRole(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errs.IsValidation(err))
				assert.Contains(t, err.Error(), "CUSTOMER, ADMIN, MANAGER")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.String())
		})
	}
}

func TestRolePredicates(t *testing.T) {
	assert.True(t, RoleAdmin.IsAdmin())
	assert.True(t, RoleManager.IsAdmin(), "managers carry admin privileges")
	assert.True(t, RoleManager.IsManager())
	assert.True(t, RoleCustomer.IsCustomer())
	assert.False(t, RoleCustomer.IsAdmin())
	assert.False(t, RoleAdmin.IsManager())
}
