package profile

import (
	"context"
	"strings"

	"github.com/gvargas9/smartterapist-sub001/internal/voice"
)

// Store persists per-user rows of the users table. Only the voice_settings
// column is read and written here; the rest of the row belongs to the auth
// backend.
type Store interface {
	voice.SettingsStore
	Close() error
}

// NewStore creates a postgres-backed store when configured, otherwise in-memory.
func NewStore(ctx context.Context, databaseURL string) (Store, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return NewInMemoryStore(), nil
	}
	return NewPostgresStore(ctx, databaseURL)
}
