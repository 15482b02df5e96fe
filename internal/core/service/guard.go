package service

import "github.com/taskdesk/taskdesk/internal/core/domain"

// Decision is the outcome of evaluating a route requirement.
type Decision int

const (
	Allow Decision = iota
	RedirectLogin
	Forbid
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect_login"
	case Forbid:
		return "forbid"
	default:
		return "unknown"
	}
}

// Guard decides whether sess may view a route with requirement req.
// A nil sess means nobody is logged in.
func Guard(sess *domain.Session, req domain.Requirement) Decision {
	if sess == nil {
		return RedirectLogin
	}
	want, specific := req.Role()
	if !specific {
		return Allow
	}
	switch want {
	case domain.RoleAdmin:
		if sess.IsAdmin() {
			return Allow
		}
	case domain.RoleEmployee:
		if sess.IsEmployee() {
			return Allow
		}
	}
	return Forbid
}
