package valueobject

import (
	"regexp"
	"strings"

	"github.com/storecore/commerce/internal/domain/errs"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email is a validated, normalized (trimmed, lowercased) address.
type Email struct {
	value string
}

func NewEmail(raw string) (Email, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return Email{}, errs.New(errs.Validation, "email must not be empty")
	}
	if !emailPattern.MatchString(v) {
		return Email{}, errs.Newf(errs.Validation, "invalid email address %q", raw)
	}
	return Email{value: v}, nil
}

func (e Email) String() string         { return e.value }
func (e Email) Equal(other Email) bool { return e.value == other.value }
func (e Email) IsZero() bool           { return e.value == "" }
