package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/taskdesk/taskdesk/internal/core/domain"
)

type stubSessions struct {
	current    *domain.Session
	loginFn    func(ctx context.Context, email, password string) (string, error)
	registerFn func(ctx context.Context, profile domain.RegisterProfile) (string, error)
	updateFn   func(ctx context.Context, patch domain.IdentityPatch) (domain.Session, error)
	loggedOut  bool
}

func (s *stubSessions) Current() (domain.Session, bool) {
	if s.current == nil {
		return domain.Session{}, false
	}
	return *s.current, true
}

func (s *stubSessions) Login(ctx context.Context, email, password string) (string, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubSessions) Register(ctx context.Context, profile domain.RegisterProfile) (string, error) {
	return s.registerFn(ctx, profile)
}

func (s *stubSessions) Logout(ctx context.Context) string {
	s.loggedOut = true
	s.current = nil
	return domain.PathLogin
}

func (s *stubSessions) UpdateIdentity(ctx context.Context, patch domain.IdentityPatch) (domain.Session, error) {
	return s.updateFn(ctx, patch)
}

// loginAs returns a loginFn that installs sess.
func (s *stubSessions) loginAs(sess domain.Session) func(context.Context, string, string) (string, error) {
	return func(context.Context, string, string) (string, error) {
		s.current = &sess
		return sess.Role.LandingPath(), nil
	}
}

func TestAuthHandler_Login_RedirectsToLanding(t *testing.T) {
	e, _ := newEcho()
	stub := &stubSessions{}
	stub.loginFn = func(ctx context.Context, email, password string) (string, error) {
		if email != "ana@x.io" || password != "secret" {
			t.Fatalf("unexpected credentials %q %q", email, password)
		}
		return stub.loginAs(employeeSession())(ctx, email, password)
	}
	h := NewAuthHandler(stub, &recordingNotifier{})

	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(http.MethodPost, "/login", url.Values{"email": {" ana@x.io "}, "password": {"secret"}}), rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != domain.PathEmployee {
		t.Fatalf("expected redirect to /employee, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestAuthHandler_Login_HonoursAllowedNext(t *testing.T) {
	cases := []struct {
		name string
		sess domain.Session
		next string
		want string
	}{
		{"shared page", employeeSession(), "/tasks/t1", "/tasks/t1"},
		{"own role page", adminSession(), "/admin/tasks?status=pending", "/admin/tasks?status=pending"},
		{"other role page", employeeSession(), "/admin", domain.PathEmployee},
		{"external url", adminSession(), "https://evil.example/admin", domain.PathAdmin},
		{"protocol relative", adminSession(), "//evil.example", domain.PathAdmin},
		{"unknown page", adminSession(), "/nowhere", domain.PathAdmin},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, _ := newEcho()
			stub := &stubSessions{}
			stub.loginFn = stub.loginAs(tc.sess)
			h := NewAuthHandler(stub, &recordingNotifier{})

			form := url.Values{"email": {"x@x.io"}, "password": {"pw"}, "next": {tc.next}}
			rec := httptest.NewRecorder()
			if err := h.Login(e.NewContext(formRequest(http.MethodPost, "/login", form), rec)); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if got := rec.Header().Get("Location"); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestAuthHandler_Login_Failure(t *testing.T) {
	e, r := newEcho()
	stub := &stubSessions{loginFn: func(ctx context.Context, email, password string) (string, error) {
		return "", errors.New("invalid credentials")
	}}
	h := NewAuthHandler(stub, &recordingNotifier{})

	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(http.MethodPost, "/login", url.Values{"email": {"ana@x.io"}, "password": {"bad"}}), rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized || r.name != "login" {
		t.Fatalf("expected login page with 401, got %d %q", rec.Code, r.name)
	}
	if page, _ := r.view.Data.(LoginPage); page.Email != "ana@x.io" {
		t.Fatalf("email must be kept, got %+v", r.view.Data)
	}
}

func TestAuthHandler_Login_InvalidForm(t *testing.T) {
	e, r := newEcho()
	stub := &stubSessions{loginFn: func(ctx context.Context, email, password string) (string, error) {
		t.Fatal("store must not be called with an invalid form")
		return "", nil
	}}
	notifier := &recordingNotifier{}
	h := NewAuthHandler(stub, notifier)

	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(http.MethodPost, "/login", url.Values{"email": {"not-an-email"}}), rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity || r.name != "login" {
		t.Fatalf("expected 422 login page, got %d %q", rec.Code, r.name)
	}
	if n := notifier.last(); n.Message != "email must be a valid email; password is required" {
		t.Fatalf("unexpected validation message %q", n.Message)
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e, _ := newEcho()
	stub := &stubSessions{registerFn: func(ctx context.Context, p domain.RegisterProfile) (string, error) {
		if p.Name != "Ana" || p.Email != "ana@x.io" || p.Password != "pw" || p.Department != "Ops" {
			t.Fatalf("unexpected profile %+v", p)
		}
		return domain.PathAdmin, nil
	}}
	h := NewAuthHandler(stub, &recordingNotifier{})

	form := url.Values{"name": {" Ana "}, "email": {"ana@x.io"}, "password": {"pw"}, "department": {"Ops"}}
	rec := httptest.NewRecorder()
	if err := h.Register(e.NewContext(formRequest(http.MethodPost, "/register", form), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != domain.PathAdmin {
		t.Fatalf("expected redirect to /admin, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestAuthHandler_Register_BlankFieldsRejected(t *testing.T) {
	e, r := newEcho()
	stub := &stubSessions{registerFn: func(ctx context.Context, p domain.RegisterProfile) (string, error) {
		t.Fatalf("blank fields must not reach the backend: %+v", p)
		return "", nil
	}}
	notifier := &recordingNotifier{}
	h := NewAuthHandler(stub, notifier)

	form := url.Values{"name": {"   "}, "email": {"ana@x.io"}, "password": {"pw"}, "department": {" "}}
	rec := httptest.NewRecorder()
	if err := h.Register(e.NewContext(formRequest(http.MethodPost, "/register", form), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity || r.name != "register" {
		t.Fatalf("expected 422 register page, got %d %q", rec.Code, r.name)
	}
	if n := notifier.last(); n.Message != "name is required; department is required" {
		t.Fatalf("unexpected validation message %q", n.Message)
	}
}

func TestAuthHandler_Register_Failure(t *testing.T) {
	e, r := newEcho()
	stub := &stubSessions{registerFn: func(ctx context.Context, p domain.RegisterProfile) (string, error) {
		return "", errors.New("user already exists")
	}}
	h := NewAuthHandler(stub, &recordingNotifier{})

	form := url.Values{"name": {"Ana"}, "email": {"ana@x.io"}, "password": {"pw"}, "department": {"Ops"}}
	rec := httptest.NewRecorder()
	if err := h.Register(e.NewContext(formRequest(http.MethodPost, "/register", form), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest || r.name != "register" {
		t.Fatalf("expected register page with 400, got %d %q", rec.Code, r.name)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e, _ := newEcho()
	sess := adminSession()
	stub := &stubSessions{current: &sess}
	h := NewAuthHandler(stub, &recordingNotifier{})

	rec := httptest.NewRecorder()
	if err := h.Logout(e.NewContext(httptest.NewRequest(http.MethodPost, "/logout", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !stub.loggedOut || rec.Header().Get("Location") != domain.PathLogin {
		t.Fatalf("expected logout and redirect to login, got %q", rec.Header().Get("Location"))
	}
}

func TestAuthHandler_Root(t *testing.T) {
	e, _ := newEcho()
	h := NewAuthHandler(&stubSessions{}, nil)

	rec := httptest.NewRecorder()
	_ = h.Root(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec))
	if rec.Header().Get("Location") != domain.PathLogin {
		t.Fatalf("anonymous root must go to login, got %q", rec.Header().Get("Location"))
	}

	sess := adminSession()
	h = NewAuthHandler(&stubSessions{current: &sess}, nil)
	rec = httptest.NewRecorder()
	_ = h.Root(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec))
	if rec.Header().Get("Location") != domain.PathAdmin {
		t.Fatalf("admin root must go to /admin, got %q", rec.Header().Get("Location"))
	}
}

func TestProfileHandler_Update(t *testing.T) {
	e, _ := newEcho()
	var got domain.IdentityPatch
	stub := &stubSessions{updateFn: func(ctx context.Context, patch domain.IdentityPatch) (domain.Session, error) {
		got = patch
		return employeeSession(), nil
	}}
	notifier := &recordingNotifier{}
	h := NewProfileHandler(stub, notifier)

	form := url.Values{"name": {"Ana B"}, "email": {"anab@x.io"}, "department": {"Sales"}}
	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(http.MethodPost, "/profile", form), rec)
	withSession(c, employeeSession())

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got.DisplayName == nil || *got.DisplayName != "Ana B" || *got.Department != "Sales" {
		t.Fatalf("unexpected patch %+v", got)
	}
	if notifier.last().Message != "Profile updated" {
		t.Fatalf("expected success notification, got %+v", notifier.got)
	}
}
