// Package file stores the session record in a single JSON document on the
// local filesystem.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/taskdesk/taskdesk/internal/core/ports"
)

const fileMode = 0o600

// SessionStorage keeps <prefix>:token and <prefix>:user as two entries of
// one JSON object. Writes go to a temp file that is renamed over the
// target, so both entries change together.
type SessionStorage struct {
	path   string
	prefix string
	mu     sync.Mutex
}

func NewSessionStorage(path, prefix string) *SessionStorage {
	return &SessionStorage{path: path, prefix: prefix}
}

func (s *SessionStorage) tokenKey() string { return s.prefix + ":token" }
func (s *SessionStorage) userKey() string  { return s.prefix + ":user" }

func (s *SessionStorage) Load(_ context.Context) (ports.SessionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return ports.SessionRecord{}, err
	}
	var rec ports.SessionRecord
	rec.Token = entries[s.tokenKey()]
	if u := entries[s.userKey()]; u != "" {
		rec.User = []byte(u)
	}
	return rec, nil
}

func (s *SessionStorage) Save(_ context.Context, rec ports.SessionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		// An unreadable document is replaced rather than blocking login.
		entries = map[string]string{}
	}
	entries[s.tokenKey()] = rec.Token
	entries[s.userKey()] = string(rec.User)
	return s.write(entries)
}

func (s *SessionStorage) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		entries = map[string]string{}
	}
	delete(entries, s.tokenKey())
	delete(entries, s.userKey())
	if len(entries) == 0 {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("clear session: %w", err)
		}
		return nil
	}
	return s.write(entries)
}

// Ping checks that the directory holding the document is usable.
func (s *SessionStorage) Ping(_ context.Context) error {
	info, err := os.Stat(filepath.Dir(s.path))
	if err != nil {
		return fmt.Errorf("session dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("session dir: %s is not a directory", filepath.Dir(s.path))
	}
	return nil
}

// read returns the stored entries; a missing file is an empty map.
func (s *SessionStorage) read() (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	entries := map[string]string{}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return entries, nil
}

func (s *SessionStorage) write(entries map[string]string) error {
	raw, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("session dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write session: %w", err)
	}
	if err := tmp.Chmod(fileMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

var _ ports.SessionStorage = (*SessionStorage)(nil)
