package valueobject

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storecore/commerce/internal/domain/errs"
)

func TestNewPasswordFromPlain(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid", input: "password123"},
		{name: "exactly eight", input: "12345678"},
		{name: "too short", input: "1234567", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "blank", input: "        ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPasswordFromPlain(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errs.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.True(t, p.Matches(tt.input))
			assert.False(t, p.Matches("wrong-password"))
			assert.NotEqual(t, tt.input, p.Hash(), "plaintext must never be stored verbatim")
		})
	}
}

func TestPasswordHashesAreSalted(t *testing.T) {
	a, err := NewPasswordFromPlain("password123")
	require.NoError(t, err)
	b, err := NewPasswordFromPlain("password123")
	require.NoError(t, err)
	assert.NotEqual(t, a.Hash(), b.Hash(), "same plaintext must yield different salted hashes")
}

func TestNewPasswordFromHash(t *testing.T) {
	orig, err := NewPasswordFromPlain("password123")
	require.NoError(t, err)

	restored, err := NewPasswordFromHash(orig.Hash())
	require.NoError(t, err)
	assert.True(t, restored.Matches("password123"))

	_, err = NewPasswordFromHash("")
	require.Error(t, err)
}

func TestPasswordNeverLeaks(t *testing.T) {
	p, err := NewPasswordFromPlain("supersecret99")
	require.NoError(t, err)

	assert.Equal(t, "[PROTECTED]", p.String())
	assert.NotContains(t, fmt.Sprintf("%v", p), "supersecret99")
	assert.NotContains(t, fmt.Sprintf("%#v", p), p.Hash())
}
