package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskdesk/taskdesk/internal/api/views"
	"github.com/taskdesk/taskdesk/internal/core/domain"
	"github.com/taskdesk/taskdesk/internal/core/ports"
)

// recordingRenderer remembers the last template rendered.
type recordingRenderer struct {
	name string
	view views.View
}

func (r *recordingRenderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	r.name = name
	r.view, _ = data.(views.View)
	_, err := io.WriteString(w, name)
	return err
}

type recordingNotifier struct {
	got []ports.Notification
}

func (n *recordingNotifier) Notify(x ports.Notification) { n.got = append(n.got, x) }

func (n *recordingNotifier) last() ports.Notification {
	if len(n.got) == 0 {
		return ports.Notification{}
	}
	return n.got[len(n.got)-1]
}

func newEcho() (*echo.Echo, *recordingRenderer) {
	e := echo.New()
	r := &recordingRenderer{}
	e.Renderer = r
	e.Validator = NewValidator()
	return e, r
}

func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

// withSession mimics RequireSession having allowed the request.
func withSession(c echo.Context, sess domain.Session) {
	c.Set("session", sess)
}

func adminSession() domain.Session {
	return domain.Session{Identity: domain.Identity{UserID: "a1", DisplayName: "Admin", Role: domain.RoleAdmin}, Token: "tok-admin"}
}

func employeeSession() domain.Session {
	return domain.Session{Identity: domain.Identity{UserID: "e1", DisplayName: "Ana", Role: domain.RoleEmployee}, Token: "tok-emp"}
}
