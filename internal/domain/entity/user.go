package entity

import (
	"strings"
	"time"

	"github.com/storecore/commerce/internal/domain/errs"
	"github.com/storecore/commerce/internal/domain/valueobject"
)

// User is the account aggregate root. It owns its Email and Password
// value objects; Role is a shared enumerated value.
type User struct {
	ID            string
	FirstName     string
	LastName      string
	Email         valueobject.Email
	Password      valueobject.Password
	Role          valueobject.Role
	Active        bool
	EmailVerified bool
	LastLoginAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewUser builds an active, unverified user.
func NewUser(firstName, lastName string, email valueobject.Email, password valueobject.Password, role valueobject.Role) (*User, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" {
		return nil, errs.New(errs.Validation, "first name must not be empty")
	}
	if lastName == "" {
		return nil, errs.New(errs.Validation, "last name must not be empty")
	}
	if email.IsZero() {
		return nil, errs.New(errs.Validation, "email must not be empty")
	}
	if password.IsZero() {
		return nil, errs.New(errs.Validation, "password must not be empty")
	}
	if role.IsZero() {
		return nil, errs.New(errs.Validation, "role must not be empty")
	}
	return &User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  password,
		Role:      role,
		Active:    true,
	}, nil
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// RecordLogin stamps a successful authentication.
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
}

func (u *User) ChangeRole(role valueobject.Role) error {
	if role.IsZero() {
		return errs.New(errs.Validation, "role must not be empty")
	}
	u.Role = role
	return nil
}

func (u *User) Activate()    { u.Active = true }
func (u *User) Deactivate()  { u.Active = false }
func (u *User) VerifyEmail() { u.EmailVerified = true }
