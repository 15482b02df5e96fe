package domain

import "fmt"

// Role is the authorization tag the backend assigns to an account.
// The set is closed: every switch over Role must cover all members.
type Role int

const (
	RoleAdmin Role = iota + 1
	RoleEmployee
)

// Landing paths, one per role, plus the unauthenticated entry point.
const (
	PathLogin    = "/login"
	PathAdmin    = "/admin"
	PathEmployee = "/employee"
)

// ParseRole converts the backend's wire value into a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "admin":
		return RoleAdmin, nil
	case "employee":
		return RoleEmployee, nil
	default:
		return 0, fmt.Errorf("%w: unknown role %q", ErrInvalidSession, s)
	}
}

// String returns the backend's wire value.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleEmployee:
		return "employee"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Valid reports whether r is a member of the enumeration.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEmployee:
		return true
	default:
		return false
	}
}

// LandingPath is where a freshly authenticated user of this role is sent.
func (r Role) LandingPath() string {
	switch r {
	case RoleAdmin:
		return PathAdmin
	case RoleEmployee:
		return PathEmployee
	default:
		return PathLogin
	}
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: cannot encode %s", ErrInvalidSession, r)
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Requirement is what a route demands of the current session.
// The zero value is AnyRole.
type Requirement struct {
	role Role
}

// AnyRole admits every authenticated identity.
var AnyRole = Requirement{}

// Require admits only sessions holding role r.
func Require(r Role) Requirement {
	return Requirement{role: r}
}

// Role returns the specific role required and false for AnyRole.
func (q Requirement) Role() (Role, bool) {
	return q.role, q.role.Valid()
}

func (q Requirement) String() string {
	if r, ok := q.Role(); ok {
		return r.String()
	}
	return "any"
}
