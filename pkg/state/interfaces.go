package state

import "context"

// Store is the durable mapping from chat id to session.
//
// Load never fails on a missing key: it returns the default session. When the
// backing medium is unreadable it also falls back to the default session and
// logs the anomaly, so a corrupt row degrades one chat instead of the process.
// Save failures are surfaced so the caller can avoid confirming a turn that
// was never persisted.
//
// Update serializes read-modify-write per chat key: two concurrent turns for
// the same chat never interleave, while turns for different chats do not block
// each other.
type Store interface {
	Load(ctx context.Context, chatID int64) Session
	Save(ctx context.Context, session Session) error
	Delete(ctx context.Context, chatID int64) error
	Update(ctx context.Context, chatID int64, fn func(Session) (Session, error)) error
}
