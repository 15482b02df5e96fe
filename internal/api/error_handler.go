package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskdesk/taskdesk/internal/api/middleware"
	"github.com/taskdesk/taskdesk/internal/api/views"
	"github.com/taskdesk/taskdesk/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the "error" page, falling back to plain text.
func NewHTTPErrorHandler(log zerolog.Logger, sessions middleware.SessionSource) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		page := views.ErrorPage{
			Code:    code,
			Heading: heading(code),
			Message: msg,
			Home:    domain.PathLogin,
		}
		if sess, ok := sessions.Current(); ok {
			page.Home = sess.Role.LandingPath()
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		if rerr := c.Render(code, "error", views.View{Title: page.Heading, Data: page}); rerr != nil {
			log.Error().Err(rerr).Msg("render error page")
			_ = c.String(code, msg)
		}
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, guard 403, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		switch he.Code {
		case http.StatusNotFound:
			return he.Code, "The page you are looking for does not exist."
		case http.StatusForbidden:
			return he.Code, "You do not have permission to view this page."
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, domain.UserMessage(err, "not found")
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, domain.UserMessage(err, "access denied")
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity, domain.UserMessage(err, "invalid request")
	case errors.Is(err, domain.ErrAuthFailure):
		return http.StatusUnauthorized, domain.UserMessage(err, "please sign in again")
	case errors.Is(err, domain.ErrNetwork):
		return http.StatusBadGateway, "The task service is unavailable. Try again shortly."
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

func heading(code int) string {
	switch code {
	case http.StatusNotFound:
		return "Page not found"
	case http.StatusForbidden:
		return "Access denied"
	case http.StatusUnauthorized:
		return "Not signed in"
	}
	if t := http.StatusText(code); t != "" {
		return t
	}
	return "Error"
}
