package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/taskdesk/taskdesk/internal/core/domain"
	"github.com/taskdesk/taskdesk/internal/core/ports"
)

// wireUser accepts both "id" and Mongo's "_id".
type wireUser struct {
	ID         string `json:"id"`
	MongoID    string `json:"_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

type authPayload struct {
	User  wireUser `json:"user"`
	Token string   `json:"token"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Login(ctx context.Context, email, password string) (ports.AuthResult, error) {
	var out authPayload
	err := c.do(ctx, request{
		op:     "login",
		method: http.MethodPost,
		path:   "auth/login",
		body:   loginRequest{Email: email, Password: password},
		auth:   true,
	}, &out)
	if err != nil {
		return ports.AuthResult{}, err
	}
	return toAuthResult("login", out)
}

func (c *Client) Register(ctx context.Context, profile domain.RegisterProfile) (ports.AuthResult, error) {
	var out authPayload
	err := c.do(ctx, request{
		op:     "register",
		method: http.MethodPost,
		path:   "auth/register",
		body:   profile,
		auth:   true,
	}, &out)
	if err != nil {
		return ports.AuthResult{}, err
	}
	return toAuthResult("register", out)
}

func toAuthResult(op string, p authPayload) (ports.AuthResult, error) {
	role, err := domain.ParseRole(p.User.Role)
	if err != nil {
		return ports.AuthResult{}, &APIError{Op: op, Kind: domain.ErrNetwork, Err: fmt.Errorf("unexpected user payload: %w", err)}
	}
	id := p.User.ID
	if id == "" {
		id = p.User.MongoID
	}
	return ports.AuthResult{
		Identity: domain.Identity{
			UserID:      id,
			DisplayName: p.User.Name,
			Email:       p.User.Email,
			Department:  p.User.Department,
			Role:        role,
		},
		Token: p.Token,
	}, nil
}
