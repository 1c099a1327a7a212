package storage

import (
	"context"
	"sync"

	"github.com/jwebster45206/dialog-engine/pkg/actor"
)

// MemoryStateStore keeps NPC state in process. It is used when no Redis URL
// is configured and in tests.
type MemoryStateStore struct {
	mu        sync.RWMutex
	states    map[string]actor.RelationshipState
	pingError error
}

// Ensure MemoryStateStore implements StateStore interface
var _ StateStore = (*MemoryStateStore)(nil)

func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{
		states: make(map[string]actor.RelationshipState),
	}
}

// SetPingError configures the store to fail on ping with the given error
func (m *MemoryStateStore) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

func (m *MemoryStateStore) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MemoryStateStore) Close() error {
	return nil
}

func (m *MemoryStateStore) SaveNPCState(ctx context.Context, npcID string, s actor.RelationshipState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[npcID] = s
	return nil
}

func (m *MemoryStateStore) LoadNPCState(ctx context.Context, npcID string) (actor.RelationshipState, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.states[npcID]
	return s, ok, nil
}
