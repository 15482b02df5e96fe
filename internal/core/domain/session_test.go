package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseRole(t *testing.T) {
	cases := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"admin", RoleAdmin, false},
		{"employee", RoleEmployee, false},
		{"Admin", 0, true},
		{"manager", 0, true},
		{"", 0, true},
	}

	for _, tc := range cases {
		got, err := ParseRole(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidSession) {
				t.Errorf("ParseRole(%q): expected ErrInvalidSession, got %v", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParseRole(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
	}
}

func TestRole_LandingPath(t *testing.T) {
	if RoleAdmin.LandingPath() != PathAdmin {
		t.Errorf("admin landing: got %q", RoleAdmin.LandingPath())
	}
	if RoleEmployee.LandingPath() != PathEmployee {
		t.Errorf("employee landing: got %q", RoleEmployee.LandingPath())
	}
	if Role(0).LandingPath() != PathLogin {
		t.Errorf("invalid role must land on login, got %q", Role(0).LandingPath())
	}
}

func TestIdentity_JSONRoundTripUsesWireRole(t *testing.T) {
	raw := []byte(`{"id":"u1","name":"Ann","email":"ann@example.com","role":"employee"}`)

	var id Identity
	if err := json.Unmarshal(raw, &id); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if id.Role != RoleEmployee || id.UserID != "u1" || id.DisplayName != "Ann" {
		t.Fatalf("unexpected identity: %+v", id)
	}

	out, err := json.Marshal(id)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var generic map[string]any
	_ = json.Unmarshal(out, &generic)
	if generic["role"] != "employee" {
		t.Fatalf("role must be encoded as wire string, got %v", generic["role"])
	}
}

func TestIdentity_UnknownRoleRejected(t *testing.T) {
	var id Identity
	err := json.Unmarshal([]byte(`{"id":"u1","name":"Ann","role":"root"}`), &id)
	if err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestNewSession_RejectsPartial(t *testing.T) {
	full := Identity{UserID: "u1", DisplayName: "Ann", Role: RoleAdmin}

	if _, err := NewSession(full, "tok"); err != nil {
		t.Fatalf("complete session rejected: %v", err)
	}

	partials := []struct {
		id    Identity
		token string
	}{
		{full, ""},
		{Identity{DisplayName: "Ann", Role: RoleAdmin}, "tok"},
		{Identity{UserID: "u1", Role: RoleAdmin}, "tok"},
		{Identity{UserID: "u1", DisplayName: "Ann"}, "tok"},
	}
	for i, p := range partials {
		if _, err := NewSession(p.id, p.token); !errors.Is(err, ErrInvalidSession) {
			t.Errorf("case %d: expected ErrInvalidSession, got %v", i, err)
		}
	}
}

func TestIdentityPatch_Apply(t *testing.T) {
	name := "Ann B."
	id := Identity{UserID: "u1", DisplayName: "Ann", Department: "IT", Role: RoleEmployee}

	got := IdentityPatch{DisplayName: &name}.Apply(id)

	if got.DisplayName != "Ann B." || got.Department != "IT" || got.Role != RoleEmployee || got.UserID != "u1" {
		t.Fatalf("unexpected patched identity: %+v", got)
	}
	if id.DisplayName != "Ann" {
		t.Fatal("Apply must not modify its argument")
	}
}

func TestRequirement(t *testing.T) {
	if _, ok := AnyRole.Role(); ok {
		t.Error("AnyRole must not carry a role")
	}
	if r, ok := Require(RoleAdmin).Role(); !ok || r != RoleAdmin {
		t.Errorf("Require(admin) = %v, %v", r, ok)
	}
	if AnyRole.String() != "any" || Require(RoleEmployee).String() != "employee" {
		t.Errorf("unexpected String(): %q %q", AnyRole, Require(RoleEmployee))
	}
}

type msgErr struct{ msg string }

func (e msgErr) Error() string       { return "wrapped: " + e.msg }
func (e msgErr) UserMessage() string { return e.msg }

func TestUserMessage(t *testing.T) {
	if got := UserMessage(errors.New("plain"), "fallback"); got != "fallback" {
		t.Errorf("expected fallback, got %q", got)
	}
	wrapped := errors.Join(ErrAuthFailure, msgErr{msg: "Invalid credentials"})
	if got := UserMessage(wrapped, "fallback"); got != "Invalid credentials" {
		t.Errorf("expected backend message, got %q", got)
	}
	if got := UserMessage(msgErr{}, "fallback"); got != "fallback" {
		t.Errorf("empty message must fall back, got %q", got)
	}
}
