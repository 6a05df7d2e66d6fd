package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/gvargas9/smartterapist-sub001/internal/voice"
)

func TestInMemoryRoundTrip(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	if _, err := s.GetVoiceSettings(ctx, "user-1"); !errors.Is(err, voice.ErrSettingsNotFound) {
		t.Fatalf("GetVoiceSettings() error = %v, want ErrSettingsNotFound", err)
	}

	want := voice.Settings{Enabled: true, PreferredVoice: "en-GB-Neural2-A", Speed: 1.25, Pitch: 0.9}
	if err := s.UpdateVoiceSettings(ctx, "user-1", want); err != nil {
		t.Fatalf("UpdateVoiceSettings() error = %v", err)
	}

	got, err := s.GetVoiceSettings(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetVoiceSettings() error = %v", err)
	}
	if got != want {
		t.Fatalf("GetVoiceSettings() = %+v, want %+v", got, want)
	}
}

func TestFactoryFallsBackToInMemory(t *testing.T) {
	s, err := NewStore(context.Background(), "")
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	defer s.Close()
	if _, ok := s.(*InMemoryStore); !ok {
		t.Fatalf("NewStore(\"\") = %T, want *InMemoryStore", s)
	}
}
