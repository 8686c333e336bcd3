package state

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// keyedMutex hands out one mutex per chat id so turns for the same chat are
// serialized while unrelated chats proceed in parallel.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func (k *keyedMutex) get(chatID int64) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.locks == nil {
		k.locks = make(map[int64]*sync.Mutex)
	}
	l, ok := k.locks[chatID]
	if !ok {
		l = &sync.Mutex{}
		k.locks[chatID] = l
	}
	return l
}

// GormStore persists sessions in a relational table, one row per chat.
type GormStore struct {
	db   *gorm.DB
	keys keyedMutex
}

var _ Store = (*GormStore)(nil)

// NewGormStore migrates the sessions table and returns a store bound to db.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if db == nil {
		return nil, fmt.Errorf("state: db is nil")
	}
	if err := db.AutoMigrate(&Session{}); err != nil {
		return nil, fmt.Errorf("failed to migrate sessions table: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Load(ctx context.Context, chatID int64) Session {
	var session Session
	err := s.db.WithContext(ctx).First(&session, "chat_id = ?", chatID).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[Load] Failed to read session for chat %d, falling back to default: %v", chatID, err)
		}
		return NewSession(chatID)
	}
	if !IsValidState(session.State) {
		log.Printf("[Load] Session for chat %d has unknown state %q, falling back to default", chatID, session.State)
		return NewSession(chatID)
	}
	return session
}

func (s *GormStore) Save(ctx context.Context, session Session) error {
	session.UpdatedAt = time.Now()
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "chat_id"}}, UpdateAll: true}).
		Create(&session).Error
	if err != nil {
		return fmt.Errorf("failed to save session for chat %d: %w", session.ChatID, err)
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, chatID int64) error {
	if err := s.db.WithContext(ctx).Delete(&Session{}, "chat_id = ?", chatID).Error; err != nil {
		return fmt.Errorf("failed to delete session for chat %d: %w", chatID, err)
	}
	return nil
}

func (s *GormStore) Update(ctx context.Context, chatID int64, fn func(Session) (Session, error)) error {
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
