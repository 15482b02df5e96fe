package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskdesk/taskdesk/internal/api/metrics"
	"github.com/taskdesk/taskdesk/internal/api/views"
	"github.com/taskdesk/taskdesk/internal/core/domain"
	"github.com/taskdesk/taskdesk/internal/core/ports"
)

type AuthHandler struct {
	sessions SessionManager
	notifier ports.Notifier
}

func NewAuthHandler(sessions SessionManager, notifier ports.Notifier) *AuthHandler {
	return &AuthHandler{sessions: sessions, notifier: notifier}
}

type loginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
	Next     string `form:"next"`
}

type registerForm struct {
	Name       string `form:"name" validate:"required"`
	Email      string `form:"email" validate:"required,email"`
	Password   string `form:"password" validate:"required"`
	Department string `form:"department" validate:"required"`
}

// LoginPage is the data of the login template. Password is never echoed.
type LoginPage struct {
	Email string
	Next  string
}

type RegisterPage struct {
	Name       string
	Email      string
	Department string
}

// Root sends visitors to their landing page, or to login.
func (h *AuthHandler) Root(c echo.Context) error {
	if sess, ok := h.sessions.Current(); ok {
		return c.Redirect(http.StatusFound, sess.Role.LandingPath())
	}
	return c.Redirect(http.StatusFound, domain.PathLogin)
}

func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login", views.View{
		Title: "Login",
		Data:  LoginPage{Next: localPath(c.QueryParam("next"))},
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	form.Email = strings.TrimSpace(form.Email)
	page := LoginPage{Email: form.Email, Next: localPath(form.Next)}

	if err := c.Validate(&form); err != nil {
		notify(h.notifier, ports.LevelError, err.Error())
		return c.Render(http.StatusUnprocessableEntity, "login", views.View{Title: "Login", Data: page})
	}

	landing, err := h.sessions.Login(c.Request().Context(), form.Email, form.Password)
	metrics.SessionTransitionsTotal.WithLabelValues("login", metrics.Result(err)).Inc()
	if err != nil {
		// The store already published the reason.
		return c.Render(http.StatusUnauthorized, "login", views.View{Title: "Login", Data: page})
	}

	sess, _ := h.sessions.Current()
	return c.Redirect(http.StatusFound, nextFor(sess, form.Next, landing))
}

func (h *AuthHandler) RegisterPage(c echo.Context) error {
	return c.Render(http.StatusOK, "register", views.View{Title: "Sign up", Data: RegisterPage{}})
}

func (h *AuthHandler) Register(c echo.Context) error {
	var form registerForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	form.Department = strings.TrimSpace(form.Department)
	page := RegisterPage{Name: form.Name, Email: form.Email, Department: form.Department}

	if err := c.Validate(&form); err != nil {
		notify(h.notifier, ports.LevelError, err.Error())
		return c.Render(http.StatusUnprocessableEntity, "register", views.View{Title: "Sign up", Data: page})
	}

	landing, err := h.sessions.Register(c.Request().Context(), domain.RegisterProfile{
		Name:       page.Name,
		Email:      page.Email,
		Password:   form.Password,
		Department: page.Department,
	})
	metrics.SessionTransitionsTotal.WithLabelValues("register", metrics.Result(err)).Inc()
	if err != nil {
		return c.Render(http.StatusBadRequest, "register", views.View{Title: "Sign up", Data: page})
	}
	return c.Redirect(http.StatusFound, landing)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	target := h.sessions.Logout(c.Request().Context())
	metrics.SessionTransitionsTotal.WithLabelValues("logout", "ok").Inc()
	return c.Redirect(http.StatusFound, target)
}
