package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskdesk/taskdesk/internal/core/domain"
	"github.com/taskdesk/taskdesk/internal/core/ports"
)

const (
	msgLoginFailed    = "Login failed"
	msgRegisterFailed = "Registration failed"
)

// AuthError is returned by Login and Register. Message is safe to show.
type AuthError struct {
	Op      string
	Message string
	Err     error
}

func (e *AuthError) Error() string       { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *AuthError) Unwrap() error       { return e.Err }
func (e *AuthError) UserMessage() string { return e.Message }

// SessionStore owns the single authenticated session of this process.
// All session state changes go through its methods.
type SessionStore struct {
	auth     ports.AuthBackend
	storage  ports.SessionStorage
	notifier ports.Notifier
	log      zerolog.Logger
	now      func() time.Time

	mu      sync.RWMutex
	current *domain.Session
}

func NewSessionStore(auth ports.AuthBackend, storage ports.SessionStorage, notifier ports.Notifier, log zerolog.Logger) *SessionStore {
	return &SessionStore{
		auth:     auth,
		storage:  storage,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// Current returns a copy of the active session.
func (s *SessionStore) Current() (domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return domain.Session{}, false
	}
	return *s.current, true
}

// Restore installs the persisted session, if any. It never calls the
// backend and never fails: anything unusable in storage means no session.
// It reports whether a session was installed.
func (s *SessionStore) Restore(ctx context.Context) bool {
	rec, err := s.storage.Load(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("session storage unreadable, starting logged out")
		return false
	}
	if !rec.Complete() {
		if rec.Token != "" || len(rec.User) > 0 {
			s.log.Warn().Msg("partial session record ignored")
		}
		return false
	}

	sess, err := decodeRecord(rec)
	if err != nil {
		s.log.Warn().Err(err).Msg("stored session ignored")
		return false
	}
	if tokenExpired(sess.Token, s.now()) {
		s.log.Info().Str("user_id", sess.UserID).Msg("stored token expired, starting logged out")
		return false
	}

	s.mu.Lock()
	s.current = &sess
	s.mu.Unlock()

	s.log.Info().Str("user_id", sess.UserID).Str("role", sess.Role.String()).Msg("session restored")
	return true
}

// Login authenticates and, on success, replaces the current session.
// It returns the landing path for the new session's role.
func (s *SessionStore) Login(ctx context.Context, email, password string) (string, error) {
	res, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return "", s.fail("login", msgLoginFailed, err)
	}
	landing, err := s.install(ctx, res)
	if err != nil {
		return "", s.fail("login", msgLoginFailed, err)
	}
	s.notify(ports.LevelSuccess, "Login successful!")
	return landing, nil
}

// Register creates an account and logs into it. The role is whatever the
// backend assigned.
func (s *SessionStore) Register(ctx context.Context, profile domain.RegisterProfile) (string, error) {
	res, err := s.auth.Register(ctx, profile)
	if err != nil {
		return "", s.fail("register", msgRegisterFailed, err)
	}
	landing, err := s.install(ctx, res)
	if err != nil {
		return "", s.fail("register", msgRegisterFailed, err)
	}
	s.notify(ports.LevelSuccess, "Registration successful!")
	return landing, nil
}

// Logout drops the session and its durable record and returns the login
// path. It always succeeds.
func (s *SessionStore) Logout(ctx context.Context) string {
	s.mu.Lock()
	prev := s.current
	s.current = nil
	if err := s.storage.Clear(ctx); err != nil {
		s.log.Error().Err(err).Msg("failed to clear session storage")
	}
	s.mu.Unlock()

	if prev != nil {
		s.log.Info().Str("user_id", prev.UserID).Msg("logged out")
	}
	s.notify(ports.LevelInfo, "Logged out successfully")
	return domain.PathLogin
}

// UpdateIdentity rewrites the cached display fields and re-persists them.
// Role and token are never touched and the backend is not called.
func (s *SessionStore) UpdateIdentity(ctx context.Context, patch domain.IdentityPatch) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return domain.Session{}, domain.ErrNoSession
	}
	updated, err := domain.NewSession(patch.Apply(s.current.Identity), s.current.Token)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	if err := s.persist(ctx, updated); err != nil {
		return domain.Session{}, err
	}
	s.current = &updated
	return updated, nil
}

// install persists the new session and then swaps it in. If persisting
// fails the previous session stays current and its record is rewritten.
func (s *SessionStore) install(ctx context.Context, res ports.AuthResult) (string, error) {
	sess, err := domain.NewSession(res.Identity, res.Token)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrNetwork, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(ctx, sess); err != nil {
		s.rollback(ctx)
		return "", err
	}
	s.current = &sess

	s.log.Info().Str("user_id", sess.UserID).Str("role", sess.Role.String()).Msg("session installed")
	return sess.Role.LandingPath(), nil
}

// persist must be called with mu held.
func (s *SessionStore) persist(ctx context.Context, sess domain.Session) error {
	user, err := json.Marshal(sess.Identity)
	if err != nil {
		return fmt.Errorf("%w: encode identity: %w", domain.ErrStorage, err)
	}
	if err := s.storage.Save(ctx, ports.SessionRecord{Token: sess.Token, User: user}); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	return nil
}

// rollback must be called with mu held.
func (s *SessionStore) rollback(ctx context.Context) {
	if s.current != nil {
		if err := s.persist(ctx, *s.current); err != nil {
			s.log.Error().Err(err).Msg("failed to restore previous session record")
		}
		return
	}
	if err := s.storage.Clear(ctx); err != nil {
		s.log.Error().Err(err).Msg("failed to clear session storage after failed save")
	}
}

func (s *SessionStore) fail(op, fallback string, err error) error {
	msg := domain.UserMessage(err, fallback)
	s.log.Warn().Err(err).Str("op", op).Msg("authentication failed")
	s.notify(ports.LevelError, msg)
	return &AuthError{Op: op, Message: msg, Err: err}
}

func (s *SessionStore) notify(level ports.Level, msg string) {
	if s.notifier != nil {
		s.notifier.Notify(ports.Notification{Level: level, Message: msg})
	}
}

func decodeRecord(rec ports.SessionRecord) (domain.Session, error) {
	var id domain.Identity
	if err := json.Unmarshal(rec.User, &id); err != nil {
		return domain.Session{}, fmt.Errorf("%w: %w", domain.ErrInvalidSession, err)
	}
	return domain.NewSession(id, rec.Token)
}
