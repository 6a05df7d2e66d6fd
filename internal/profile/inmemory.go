package profile

import (
	"context"
	"sync"

	"github.com/gvargas9/smartterapist-sub001/internal/voice"
)

// InMemoryStore is a simple in-process user store for local/dev use.
type InMemoryStore struct {
	mu       sync.RWMutex
	settings map[string]voice.Settings
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{settings: make(map[string]voice.Settings)}
}

func (s *InMemoryStore) GetVoiceSettings(_ context.Context, userID string) (voice.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.settings[userID]
	if !ok {
		return voice.Settings{}, voice.ErrSettingsNotFound
	}
	return stored, nil
}

func (s *InMemoryStore) UpdateVoiceSettings(_ context.Context, userID string, settings voice.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[userID] = settings
	return nil
}

func (s *InMemoryStore) Close() error { return nil }
