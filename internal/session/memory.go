package session

import (
	"context"
	"sync"

	"github.com/cloudwego/eino/schema"
)

// MemoryStore keeps transcripts in process memory. This is the default
// backend: conversations live exactly as long as the process, matching the
// dashboard's session semantics. Safe for concurrent handlers.
type MemoryStore struct {
	mu       sync.Mutex
	messages map[string][]*schema.Message
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{messages: make(map[string][]*schema.Message)}
}

// Append implements Store.
func (s *MemoryStore) Append(_ context.Context, sessionID string, message *schema.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[sessionID] = append(s.messages[sessionID], message)
	return nil
}

// History implements Store. The returned slice is a copy so callers can
// never mutate the stored transcript.
func (s *MemoryStore) History(_ context.Context, sessionID string) ([]*schema.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := s.messages[sessionID]
	out := make([]*schema.Message, len(stored))
	copy(out, stored)
	return out, nil
}
