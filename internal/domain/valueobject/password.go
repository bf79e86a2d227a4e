package valueobject

import (
	"strings"

	"github.com/storecore/commerce/internal/domain/errs"
	"github.com/storecore/commerce/pkg/helpers"
)

const minPasswordLength = 8

// Password holds only a bcrypt hash. There is no way to get the
// plaintext back out, and String/GoString never reveal the hash.
type Password struct {
	hash string
}

// NewPasswordFromPlain validates the plaintext and hashes it with a
// per-call random salt (bcrypt).
func NewPasswordFromPlain(plain string) (Password, error) {
	if strings.TrimSpace(plain) == "" {
		return Password{}, errs.New(errs.Validation, "password must not be blank")
	}
	if len(plain) < minPasswordLength {
		return Password{}, errs.Newf(errs.Validation, "password must be at least %d characters", minPasswordLength)
	}
	hash, err := helpers.HashPassword(plain)
	if err != nil {
		return Password{}, errs.Wrap(errs.Validation, "hash password", err)
	}
	return Password{hash: hash}, nil
}

// NewPasswordFromHash trusts an already-hashed value, e.g. one loaded
// from storage.
func NewPasswordFromHash(hash string) (Password, error) {
	if hash == "" {
		return Password{}, errs.New(errs.Validation, "password hash must not be empty")
	}
	return Password{hash: hash}, nil
}

// Matches verifies the plaintext against the stored hash.
func (p Password) Matches(plain string) bool {
	return helpers.CompareHashAndPassword(p.hash, plain)
}

// Hash exposes the stored hash for persistence only.
func (p Password) Hash() string { return p.hash }

func (p Password) IsZero() bool { return p.hash == "" }

func (p Password) String() string   { return "[PROTECTED]" }
func (p Password) GoString() string { return "[PROTECTED]" }
