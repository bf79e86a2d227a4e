package valueobject

import (
	"strings"

	"github.com/storecore/commerce/internal/domain/errs"
)

// Role is an enumerated authorization tag, normalized to uppercase.
type Role struct {
	value string
}

var (
	RoleCustomer = Role{value: "CUSTOMER"}
	RoleAdmin    = Role{value: "ADMIN"}
	RoleManager  = Role{value: "MANAGER"}
)

var validRoles = []string{"CUSTOMER", "ADMIN", "MANAGER"}

func NewRole(raw string) (Role, error) {
	v := strings.ToUpper(strings.TrimSpace(raw))
	for _, r := range validRoles {
		if v == r {
			return Role{value: v}, nil
		}
	}
	return Role{}, errs.Newf(errs.Validation, "invalid role %q, must be one of %s", raw, strings.Join(validRoles, ", "))
}

func (r Role) String() string        { return r.value }
func (r Role) Equal(other Role) bool { return r.value == other.value }
func (r Role) IsZero() bool          { return r.value == "" }

// IsAdmin reports whether the role carries administrative privileges.
// Managers are admins for authorization purposes.
func (r Role) IsAdmin() bool    { return r.value == "ADMIN" || r.value == "MANAGER" }
func (r Role) IsManager() bool  { return r.value == "MANAGER" }
func (r Role) IsCustomer() bool { return r.value == "CUSTOMER" }
