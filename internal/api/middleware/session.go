package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/taskdesk/taskdesk/internal/api/metrics"
	"github.com/taskdesk/taskdesk/internal/core/domain"
	"github.com/taskdesk/taskdesk/internal/core/service"
)

const sessionKey = "session"

// SessionSource exposes the current session.
type SessionSource interface {
	Current() (domain.Session, bool)
}

// RequireSession runs the route guard for req. Allowed requests see a copy
// of the session through SessionFrom.
func RequireSession(src SessionSource, req domain.Requirement) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var sess *domain.Session
			if s, ok := src.Current(); ok {
				sess = &s
			}

			decision := service.Guard(sess, req)
			metrics.GuardDecisionsTotal.WithLabelValues(decision.String(), req.String()).Inc()

			switch decision {
			case service.Allow:
				c.Set(sessionKey, *sess)
				return next(c)
			case service.RedirectLogin:
				return c.Redirect(http.StatusFound, LoginURL(c.Request()))
			default:
				return echo.NewHTTPError(http.StatusForbidden, "access denied")
			}
		}
	}
}

// RedirectIfAuthenticated sends a logged-in user to their landing page.
func RedirectIfAuthenticated(src SessionSource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if sess, ok := src.Current(); ok {
				return c.Redirect(http.StatusFound, sess.Role.LandingPath())
			}
			return next(c)
		}
	}
}

// SessionFrom returns the session placed in c by RequireSession.
func SessionFrom(c echo.Context) (domain.Session, bool) {
	sess, ok := c.Get(sessionKey).(domain.Session)
	return sess, ok
}

// LoginURL is the login page with next set to the requested page. Only GET
// requests remember where they were going.
func LoginURL(r *http.Request) string {
	if r.Method != http.MethodGet {
		return domain.PathLogin
	}
	return domain.PathLogin + "?next=" + url.QueryEscape(r.URL.RequestURI())
}
