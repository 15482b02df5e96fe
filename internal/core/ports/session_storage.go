package ports

import "context"

// SessionRecord is the durable form of a session: the opaque token and the
// serialized identity, stored under two separate keys.
type SessionRecord struct {
	Token string
	User  []byte
}

// Complete reports whether both entries are present.
func (r SessionRecord) Complete() bool {
	return r.Token != "" && len(r.User) > 0
}

// SessionStorage persists the session record across restarts.
type SessionStorage interface {
	// Load returns whatever entries exist. Missing entries are left empty
	// and are not an error.
	Load(ctx context.Context) (SessionRecord, error)
	// Save writes both entries together.
	Save(ctx context.Context, rec SessionRecord) error
	// Clear removes both entries. Clearing an empty storage succeeds.
	Clear(ctx context.Context) error
	// Ping checks that the storage is reachable.
	Ping(ctx context.Context) error
}
