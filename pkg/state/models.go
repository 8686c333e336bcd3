package state

import "time"

// Conversation states. Stored verbatim in the session row.
const (
	StateStart            = "start"
	StateAwaitingName     = "awaiting_name"
	StateAwaitingPhone    = "awaiting_phone"
	StateAwaitingComment  = "awaiting_comment"
	StateAwaitingQuestion = "awaiting_question"
)

// Session is the persisted conversational state for one chat. Form fields are
// fixed columns rather than a free-form map so a typo in a field name fails at
// compile time. Fields only accumulate; the whole row is reset on submission.
type Session struct {
	ChatID    int64  `gorm:"primaryKey"`
	State     string `gorm:"not null"`
	CarName   string
	Name      string
	Phone     string
	Comment   string
	UpdatedAt time.Time
}

// TableName implements the GORM tabler interface.
func (Session) TableName() string { return "sessions" }

// NewSession returns the default session for a chat that has no stored state.
func NewSession(chatID int64) Session {
	return Session{ChatID: chatID, State: StateStart}
}

// Reset returns the default session keeping only the chat key.
func (s Session) Reset() Session {
	return NewSession(s.ChatID)
}

// IsValidState reports whether v is one of the known conversation states.
func IsValidState(v string) bool {
	switch v {
	case StateStart, StateAwaitingName, StateAwaitingPhone, StateAwaitingComment, StateAwaitingQuestion:
		return true
	}
	return false
}
