package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskdesk/taskdesk/internal/api/middleware"
	"github.com/taskdesk/taskdesk/internal/core/domain"
	"github.com/taskdesk/taskdesk/internal/core/ports"
	"github.com/taskdesk/taskdesk/internal/core/service"
)

// ctxSession returns the session placed by RequireSession. Its absence
// means the route was registered without the guard.
func ctxSession(c echo.Context) (domain.Session, error) {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		return domain.Session{}, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return sess, nil
}

// localPath returns p when it is a path on this site and "" otherwise.
func localPath(p string) string {
	if p == "" || !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return ""
	}
	u, err := url.Parse(p)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return ""
	}
	return p
}

// pageRequirements maps page prefixes to their guard requirement, longest
// prefix first.
var pageRequirements = []struct {
	prefix string
	req    domain.Requirement
}{
	{"/admin/tasks", domain.Require(domain.RoleAdmin)},
	{"/admin", domain.Require(domain.RoleAdmin)},
	{"/employees", domain.Require(domain.RoleAdmin)},
	{"/employee", domain.Require(domain.RoleEmployee)},
	{"/tasks/", domain.AnyRole},
	{"/profile", domain.AnyRole},
}

// nextFor picks where to go after login: next when it is a local page the
// session may view, the landing page otherwise.
func nextFor(sess domain.Session, next, landing string) string {
	next = localPath(next)
	if next == "" {
		return landing
	}
	u, _ := url.Parse(next)
	for _, p := range pageRequirements {
		if u.Path == p.prefix || strings.HasPrefix(u.Path, strings.TrimSuffix(p.prefix, "/")+"/") {
			if service.Guard(&sess, p.req) == service.Allow {
				return next
			}
			return landing
		}
	}
	return landing
}

// backTo returns the referring page when it is on this site.
func backTo(c echo.Context, fallback string) string {
	ref, err := url.Parse(c.Request().Referer())
	if err != nil || ref.Path == "" || (ref.Host != "" && ref.Host != c.Request().Host) {
		return fallback
	}
	if p := localPath(ref.RequestURI()); p != "" && ref.Path != c.Request().URL.Path {
		return p
	}
	return fallback
}

func notify(n ports.Notifier, level ports.Level, msg string) {
	if n != nil {
		n.Notify(ports.Notification{Level: level, Message: msg})
	}
}

// notifyErr publishes the backend's explanation for err, or fallback.
func notifyErr(n ports.Notifier, err error, fallback string) {
	notify(n, ports.LevelError, domain.UserMessage(err, fallback))
}
