package storage

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/jwebster45206/cipher-engine/pkg/progress"
)

// MockStorage is an in-memory Storage for tests.
type MockStorage struct {
	mu        sync.RWMutex
	progress  map[uuid.UUID][]byte
	attempts  map[uuid.UUID][]Attempt
	pingError error
	saveError error
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage
func NewMockStorage() *MockStorage {
	return &MockStorage{
		progress: make(map[uuid.UUID][]byte),
		attempts: make(map[uuid.UUID][]Attempt),
	}
}

// SetPingSuccess configures the mock to succeed on ping
func (m *MockStorage) SetPingSuccess() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = nil
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// SetSaveError configures the mock to fail SaveProgress with the given error
func (m *MockStorage) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveError = err
}

func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MockStorage) Close() error {
	return nil
}

// SaveProgress stores a JSON copy so later mutation of p does not leak in.
func (m *MockStorage) SaveProgress(ctx context.Context, p *progress.Progress) error {
	if p == nil {
		return errors.New("progress cannot be nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveError != nil {
		return m.saveError
	}
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	m.progress[p.ID] = data
	return nil
}

func (m *MockStorage) LoadProgress(ctx context.Context, id uuid.UUID) (*progress.Progress, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.progress[id]
	if !ok {
		return nil, nil
	}
	var p progress.Progress
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (m *MockStorage) DeleteProgress(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.progress, id)
	delete(m.attempts, id)
	return nil
}

func (m *MockStorage) AppendAttempt(ctx context.Context, id uuid.UUID, a Attempt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts[id] = append(m.attempts[id], a)
	return nil
}

func (m *MockStorage) ListAttempts(ctx context.Context, id uuid.UUID) ([]Attempt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Attempt, len(m.attempts[id]))
	copy(out, m.attempts[id])
	return out, nil
}
