package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskdesk/taskdesk/internal/core/ports"
)

const sessionCollection = "client_session"

// SessionStorage keeps the session record as two documents keyed by
// <prefix>:token and <prefix>:user.
type SessionStorage struct {
	coll   *mongo.Collection
	prefix string
}

func NewSessionStorage(db *mongo.Database, prefix string) *SessionStorage {
	return &SessionStorage{coll: db.Collection(sessionCollection), prefix: prefix}
}

type sessionDoc struct {
	Key   string `bson:"_id"`
	Value string `bson:"value"`
}

func (s *SessionStorage) tokenKey() string { return s.prefix + ":token" }
func (s *SessionStorage) userKey() string  { return s.prefix + ":user" }

func (s *SessionStorage) Load(ctx context.Context) (ports.SessionRecord, error) {
	cur, err := s.coll.Find(ctx, bson.M{"_id": bson.M{"$in": bson.A{s.tokenKey(), s.userKey()}}})
	if err != nil {
		return ports.SessionRecord{}, fmt.Errorf("load session: %w", err)
	}

	var docs []sessionDoc
	if err := cur.All(ctx, &docs); err != nil {
		return ports.SessionRecord{}, fmt.Errorf("decode session: %w", err)
	}

	var rec ports.SessionRecord
	for _, d := range docs {
		switch d.Key {
		case s.tokenKey():
			rec.Token = d.Value
		case s.userKey():
			rec.User = []byte(d.Value)
		}
	}
	return rec, nil
}

// Save upserts both documents in one ordered bulk write.
func (s *SessionStorage) Save(ctx context.Context, rec ports.SessionRecord) error {
	models := []mongo.WriteModel{
		mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": s.tokenKey()}).
			SetReplacement(sessionDoc{Key: s.tokenKey(), Value: rec.Token}).
			SetUpsert(true),
		mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": s.userKey()}).
			SetReplacement(sessionDoc{Key: s.userKey(), Value: string(rec.User)}).
			SetUpsert(true),
	}
	if _, err := s.coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(true)); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStorage) Clear(ctx context.Context) error {
	_, err := s.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": bson.A{s.tokenKey(), s.userKey()}}})
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *SessionStorage) Ping(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, nil)
}

var _ ports.SessionStorage = (*SessionStorage)(nil)
