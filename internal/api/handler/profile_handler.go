package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskdesk/taskdesk/internal/api/metrics"
	"github.com/taskdesk/taskdesk/internal/api/views"
	"github.com/taskdesk/taskdesk/internal/core/domain"
	"github.com/taskdesk/taskdesk/internal/core/ports"
)

// ProfileHandler edits the display fields cached in the session. Nothing
// is sent to the backend.
type ProfileHandler struct {
	sessions SessionManager
	notifier ports.Notifier
}

func NewProfileHandler(sessions SessionManager, notifier ports.Notifier) *ProfileHandler {
	return &ProfileHandler{sessions: sessions, notifier: notifier}
}

type profileForm struct {
	Name       string `form:"name" validate:"required"`
	Email      string `form:"email" validate:"omitempty,email"`
	Department string `form:"department"`
}

func (h *ProfileHandler) Show(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "profile", views.View{Title: "Profile", Data: sess.Identity})
}

func (h *ProfileHandler) Update(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var form profileForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	form.Department = strings.TrimSpace(form.Department)

	if err := c.Validate(&form); err != nil {
		notify(h.notifier, ports.LevelError, err.Error())
		return c.Render(http.StatusUnprocessableEntity, "profile", views.View{Title: "Profile", Data: sess.Identity})
	}

	_, err = h.sessions.UpdateIdentity(c.Request().Context(), domain.IdentityPatch{
		DisplayName: &form.Name,
		Email:       &form.Email,
		Department:  &form.Department,
	})
	metrics.SessionTransitionsTotal.WithLabelValues("update_identity", metrics.Result(err)).Inc()
	switch {
	case errors.Is(err, domain.ErrNoSession):
		return c.Redirect(http.StatusFound, domain.PathLogin)
	case err != nil:
		notifyErr(h.notifier, err, "Failed to update profile")
		return c.Redirect(http.StatusFound, "/profile")
	}

	notify(h.notifier, ports.LevelSuccess, "Profile updated")
	return c.Redirect(http.StatusFound, "/profile")
}
