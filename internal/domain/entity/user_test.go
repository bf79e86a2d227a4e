package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storecore/commerce/internal/domain/errs"
	"github.com/storecore/commerce/internal/domain/valueobject"
)

func testUser(t *testing.T) *User {
	t.Helper()
	email, err := valueobject.NewEmail("john@example.com")
	require.NoError(t, err)
	pwd, err := valueobject.NewPasswordFromPlain("password123")
	require.NoError(t, err)
	u, err := NewUser("John", "Doe", email, pwd, valueobject.RoleCustomer)
	require.NoError(t, err)
	return u
}

func TestNewUser(t *testing.T) {
	u := testUser(t)
	assert.True(t, u.Active, "new users start active")
	assert.False(t, u.EmailVerified, "new users start unverified")
	assert.Nil(t, u.LastLoginAt)
	assert.Equal(t, "John Doe", u.FullName())
}

func TestNewUserValidation(t *testing.T) {
	email, err := valueobject.NewEmail("john@example.com")
	require.NoError(t, err)
	pwd, err := valueobject.NewPasswordFromPlain("password123")
	require.NoError(t, err)

	_, err = NewUser("", "Doe", email, pwd, valueobject.RoleCustomer)
	assert.True(t, errs.IsValidation(err))

	_, err = NewUser("John", "", email, pwd, valueobject.RoleCustomer)
	assert.True(t, errs.IsValidation(err))

	_, err = NewUser("John", "Doe", valueobject.Email{}, pwd, valueobject.RoleCustomer)
	assert.True(t, errs.IsValidation(err))

	_, err = NewUser("John", "Doe", email, valueobject.Password{}, valueobject.RoleCustomer)
	assert.True(t, errs.IsValidation(err))

	_, err = NewUser("John", "Doe", email, pwd, valueobject.Role{})
	assert.True(t, errs.IsValidation(err))
}

func TestUserLifecycle(t *testing.T) {
	u := testUser(t)

	now := time.Now()
	u.RecordLogin(now)
	require.NotNil(t, u.LastLoginAt)
	assert.Equal(t, now, *u.LastLoginAt)

	require.NoError(t, u.ChangeRole(valueobject.RoleManager))
	assert.True(t, u.Role.IsManager())
	assert.Error(t, u.ChangeRole(valueobject.Role{}))

	u.Deactivate()
	assert.False(t, u.Active)
	u.Activate()
	assert.True(t, u.Active)

	u.VerifyEmail()
	assert.True(t, u.EmailVerified)
}
