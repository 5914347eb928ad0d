package conversation

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/zhouzirui/newsdesk/backend/internal/model/chat"
)

// ErrInvalidRole rejects appends that are neither user nor assistant. The
// system prompt is synthesized at call time and never stored.
var ErrInvalidRole = errors.New("role must be user or assistant")

// Stats is a derived view over the stored sequence. Counts are computed
// from the slice on demand so they can never drift from the history itself.
type Stats struct {
	Total     int
	User      int
	Assistant int
}

// Store holds the single process-wide conversation. All mutation happens
// under one lock; snapshots are copies and stay valid across later appends.
type Store struct {
	mu       sync.RWMutex
	messages []chat.Message
}

// NewStore bootstraps an empty in-memory conversation store.
func NewStore() *Store {
	return &Store{
		messages: make([]chat.Message, 0, 16),
	}
}

// Append adds a message to the tail of the conversation.
func (s *Store) Append(role chat.Role, content string) (chat.Message, error) {
	if role != chat.RoleUser && role != chat.RoleAssistant {
		return chat.Message{}, ErrInvalidRole
	}

	message := chat.Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.messages = append(s.messages, message)
	s.mu.Unlock()

	return message, nil
}

// Snapshot returns a point-in-time copy of the conversation.
func (s *Store) Snapshot() []chat.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make([]chat.Message, len(s.messages))
	copy(copied, s.messages)
	return copied
}

// Clear empties the conversation.
func (s *Store) Clear() {
	s.mu.Lock()
	s.messages = s.messages[:0]
	s.mu.Unlock()
}

// Stats reports message counts derived from the current sequence.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{Total: len(s.messages)}
	for _, msg := range s.messages {
		switch msg.Role {
		case chat.RoleUser:
			stats.User++
		case chat.RoleAssistant:
			stats.Assistant++
		}
	}
	return stats
}
