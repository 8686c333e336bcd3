package state

import (
	"context"
	"sync"
	"time"
)

// MemStore keeps sessions in process memory. It honors the same per-key
// serialization contract as GormStore and exists for headless tests.
type MemStore struct {
	mu       sync.Mutex
	sessions map[int64]Session
	keys     keyedMutex
	failSave error
}

var _ Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{sessions: make(map[int64]Session)}
}

func (s *MemStore) Load(ctx context.Context, chatID int64) Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[chatID]
	if !ok {
		return NewSession(chatID)
	}
	return session
}

func (s *MemStore) Save(ctx context.Context, session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSave != nil {
		return s.failSave
	}
	session.UpdatedAt = time.Now()
	s.sessions[session.ChatID] = session
	return nil
}

func (s *MemStore) Delete(ctx context.Context, chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
	return nil
}

func (s *MemStore) Update(ctx context.Context, chatID int64, fn func(Session) (Session, error)) error {
	lock := s.keys.get(chatID)
	lock.Lock()
	defer lock.Unlock()

	next, err := fn(s.Load(ctx, chatID))
	if err != nil {
		return err
	}
	next.ChatID = chatID
	return s.Save(ctx, next)
}

// FailSaves makes every subsequent Save return err. Pass nil to recover.
func (s *MemStore) FailSaves(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failSave = err
}
