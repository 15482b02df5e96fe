package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/taskdesk/taskdesk/internal/core/ports"
)

// SessionStorage keeps the session record under two keys:
// <prefix>:token and <prefix>:user.
type SessionStorage struct {
	client *redis.Client
	prefix string
}

// NewSessionStorage wraps an existing client. prefix must not be empty.
func NewSessionStorage(client *redis.Client, prefix string) *SessionStorage {
	return &SessionStorage{client: client, prefix: prefix}
}

func (s *SessionStorage) tokenKey() string { return s.prefix + ":token" }
func (s *SessionStorage) userKey() string  { return s.prefix + ":user" }

func (s *SessionStorage) Load(ctx context.Context) (ports.SessionRecord, error) {
	vals, err := s.client.MGet(ctx, s.tokenKey(), s.userKey()).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return ports.SessionRecord{}, fmt.Errorf("load session: %w", err)
	}

	var rec ports.SessionRecord
	if len(vals) == 2 {
		if v, ok := vals[0].(string); ok {
			rec.Token = v
		}
		if v, ok := vals[1].(string); ok {
			rec.User = []byte(v)
		}
	}
	return rec, nil
}

// Save writes both keys in one MULTI/EXEC so a reader never sees a token
// without its user.
func (s *SessionStorage) Save(ctx context.Context, rec ports.SessionRecord) error {
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, s.tokenKey(), rec.Token, 0)
		p.Set(ctx, s.userKey(), rec.User, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStorage) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.tokenKey(), s.userKey()).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *SessionStorage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

var _ ports.SessionStorage = (*SessionStorage)(nil)
