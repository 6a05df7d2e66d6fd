package voice

import (
	"context"
	"encoding/json"
	"errors"
	"log"
)

// ErrSettingsNotFound is returned by stores when the user row exists without
// usable settings or is missing entirely.
var ErrSettingsNotFound = errors.New("voice settings not found")

// Service implements the voice preference contract the web client relies on:
// reads never fail (defaults win), writes report success as a flag, and the
// underlying errors only reach the log.
type Service struct {
	store    SettingsStore
	provider Provider
	defaults Settings
}

func NewService(store SettingsStore, provider Provider, defaults Settings) *Service {
	if !defaults.Valid() {
		defaults = DefaultSettings()
	}
	return &Service{store: store, provider: provider, defaults: defaults}
}

// GetSettings returns the stored settings for the user, or the defaults when
// the row is missing, malformed, or the store is unreachable. The voice UI
// must render even when the store is down, so this never surfaces an error.
func (s *Service) GetSettings(ctx context.Context, userID string) Settings {
	stored, err := s.store.GetVoiceSettings(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrSettingsNotFound) {
			log.Printf("voice settings read for %s failed, using defaults: %v", userID, err)
		}
		return s.defaults
	}
	if !stored.Valid() {
		log.Printf("voice settings for %s are malformed, using defaults", userID)
		return s.defaults
	}
	return stored
}

// UpdateSettings writes the settings as given and reports whether the write
// succeeded. The settings object is not validated here; shape is the caller's
// responsibility.
func (s *Service) UpdateSettings(ctx context.Context, userID string, settings Settings) bool {
	if err := s.store.UpdateVoiceSettings(ctx, userID, settings); err != nil {
		log.Printf("voice settings write for %s failed: %v", userID, err)
		return false
	}
	return true
}

// Transcribe converts an audio clip to text via the configured provider.
func (s *Service) Transcribe(ctx context.Context, audio []byte, language string) (string, error) {
	return s.provider.Transcribe(ctx, audio, language)
}

// Synthesize renders text to audio via the configured provider.
func (s *Service) Synthesize(ctx context.Context, text string, opts SynthesisOptions) ([]byte, string, error) {
	return s.provider.Synthesize(ctx, text, opts)
}

// DecodeSettings parses a stored voice_settings JSON document.
func DecodeSettings(raw []byte) (Settings, error) {
	var s Settings
	if err := json.Unmarshal(raw, &s); err != nil {
		return Settings{}, err
	}
	return s, nil
}
