package voice

import (
	"context"
	"errors"
	"testing"
)

type stubStore struct {
	settings Settings
	getErr   error
	putErr   error
	puts     int
}

func (s *stubStore) GetVoiceSettings(_ context.Context, _ string) (Settings, error) {
	if s.getErr != nil {
		return Settings{}, s.getErr
	}
	return s.settings, nil
}

func (s *stubStore) UpdateVoiceSettings(_ context.Context, _ string, settings Settings) error {
	s.puts++
	if s.putErr != nil {
		return s.putErr
	}
	s.settings = settings
	return nil
}

func TestGetSettingsDefaultsWhenMissing(t *testing.T) {
	svc := NewService(&stubStore{getErr: ErrSettingsNotFound}, NewMockProvider(), DefaultSettings())
	got := svc.GetSettings(context.Background(), "user-1")
	if got != DefaultSettings() {
		t.Fatalf("GetSettings() = %+v, want defaults", got)
	}
}

func TestGetSettingsDefaultsWhenStoreFails(t *testing.T) {
	svc := NewService(&stubStore{getErr: errors.New("connection refused")}, NewMockProvider(), DefaultSettings())
	got := svc.GetSettings(context.Background(), "user-1")
	if got != DefaultSettings() {
		t.Fatalf("GetSettings() = %+v, want defaults on store failure", got)
	}
}

func TestGetSettingsDefaultsWhenMalformed(t *testing.T) {
	store := &stubStore{settings: Settings{Enabled: true, PreferredVoice: "v", Speed: -3, Pitch: 1}}
	svc := NewService(store, NewMockProvider(), DefaultSettings())
	got := svc.GetSettings(context.Background(), "user-1")
	if got != DefaultSettings() {
		t.Fatalf("GetSettings() = %+v, want defaults for out-of-range speed", got)
	}
}

func TestGetSettingsReturnsStored(t *testing.T) {
	stored := Settings{Enabled: false, PreferredVoice: "en-GB-Neural2-A", Speed: 1.5, Pitch: 0.75}
	svc := NewService(&stubStore{settings: stored}, NewMockProvider(), DefaultSettings())
	if got := svc.GetSettings(context.Background(), "user-1"); got != stored {
		t.Fatalf("GetSettings() = %+v, want stored %+v", got, stored)
	}
}

func TestUpdateSettingsReportsOutcome(t *testing.T) {
	ok := &stubStore{}
	svc := NewService(ok, NewMockProvider(), DefaultSettings())
	if !svc.UpdateSettings(context.Background(), "user-1", DefaultSettings()) {
		t.Fatalf("UpdateSettings() = false, want true on clean write")
	}

	broken := &stubStore{putErr: errors.New("timeout")}
	svc = NewService(broken, NewMockProvider(), DefaultSettings())
	if svc.UpdateSettings(context.Background(), "user-1", DefaultSettings()) {
		t.Fatalf("UpdateSettings() = true, want false on write failure")
	}
	if broken.puts != 1 {
		t.Fatalf("store writes = %d, want 1", broken.puts)
	}
}

func TestSettingsValid(t *testing.T) {
	cases := []struct {
		name string
		s    Settings
		want bool
	}{
		{"defaults", DefaultSettings(), true},
		{"empty voice", Settings{PreferredVoice: "", Speed: 1, Pitch: 1}, false},
		{"speed too low", Settings{PreferredVoice: "v", Speed: 0.1, Pitch: 1}, false},
		{"pitch too high", Settings{PreferredVoice: "v", Speed: 1, Pitch: 5}, false},
		{"boundary", Settings{PreferredVoice: "v", Speed: 0.25, Pitch: 4.0}, true},
	}
	for _, tc := range cases {
		if got := tc.s.Valid(); got != tc.want {
			t.Errorf("%s: Valid() = %v, want %v", tc.name, got, tc.want)
		}
	}
}
