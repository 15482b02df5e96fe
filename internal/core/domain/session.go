package domain

import "fmt"

// Identity is the display part of a session. It is what gets persisted
// under the user key and what the backend returns alongside a token.
type Identity struct {
	UserID      string `json:"id"`
	DisplayName string `json:"name"`
	Email       string `json:"email,omitempty"`
	Department  string `json:"department,omitempty"`
	Role        Role   `json:"role"`
}

// Session is the authenticated identity of this process plus the
// credential used to call the backend on its behalf.
type Session struct {
	Identity
	Token string `json:"-"`
}

// NewSession builds a Session and rejects anything partially populated.
func NewSession(id Identity, token string) (Session, error) {
	s := Session{Identity: id, Token: token}
	if err := s.Validate(); err != nil {
		return Session{}, err
	}
	return s, nil
}

// Validate enforces that a session is complete.
func (s Session) Validate() error {
	switch {
	case s.Token == "":
		return fmt.Errorf("%w: missing token", ErrInvalidSession)
	case s.UserID == "":
		return fmt.Errorf("%w: missing user id", ErrInvalidSession)
	case s.DisplayName == "":
		return fmt.Errorf("%w: missing display name", ErrInvalidSession)
	case !s.Role.Valid():
		return fmt.Errorf("%w: missing role", ErrInvalidSession)
	}
	return nil
}

// IsAdmin and IsEmployee mirror the two navigation regions.
func (s Session) IsAdmin() bool    { return s.Role == RoleAdmin }
func (s Session) IsEmployee() bool { return s.Role == RoleEmployee }

// IdentityPatch carries locally editable display fields. Nil fields are
// left unchanged. Role and token are deliberately absent.
type IdentityPatch struct {
	DisplayName *string
	Email       *string
	Department  *string
}

// Apply returns a copy of id with the patch applied.
func (p IdentityPatch) Apply(id Identity) Identity {
	if p.DisplayName != nil {
		id.DisplayName = *p.DisplayName
	}
	if p.Email != nil {
		id.Email = *p.Email
	}
	if p.Department != nil {
		id.Department = *p.Department
	}
	return id
}
