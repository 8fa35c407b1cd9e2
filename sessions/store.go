// Package sessions keeps the most recent analysis summary per session id.
// Process-lifetime memory only; nothing here survives a restart.
package sessions

import (
	"sync"

	"github.com/HarshwardhanZalte/AIDRA/pipeline"
	"github.com/HarshwardhanZalte/AIDRA/types"
)

// Store is last-write-wins per session id. Implementations must keep Get and
// Put atomic per key under concurrent access. The interface is deliberately
// small so an eviction policy (e.g. LRU on LastUpdated) can be added behind
// it without touching callers.
type Store interface {
	Get(sessionID string) (types.SessionRecord, error)
	Put(sessionID string, record types.SessionRecord)
	Count() int
}

// MemoryStore is an in-memory Store guarded by a RWMutex.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]types.SessionRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]types.SessionRecord)}
}

// Get returns the stored record, or a not_found tagged error. A miss is a
// valid empty result, not a pipeline failure.
func (s *MemoryStore) Get(sessionID string) (types.SessionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.sessions[sessionID]
	if !ok {
		return types.SessionRecord{}, pipeline.Errorf(pipeline.KindNotFound, "session %q", sessionID)
	}
	return rec, nil
}

// Put overwrites the record for the id. No merge, no history.
func (s *MemoryStore) Put(sessionID string, record types.SessionRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = record
}

func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
