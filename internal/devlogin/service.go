package devlogin

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gvargas9/smartterapist-sub001/internal/devlogin/localstore"
)

// Result describes a completed dev login: where the shell should navigate and
// who it will find in storage when it re-bootstraps there.
type Result struct {
	User          MockUser `json:"user"`
	DashboardPath string   `json:"dashboard_path"`
}

// Service writes fabricated sessions into the browser-local-storage analog.
type Service struct {
	store   *localstore.Store
	authKey string
	now     func() time.Time
}

func NewService(store *localstore.Store, authTokenKey string) *Service {
	return &Service{store: store, authKey: authTokenKey, now: time.Now}
}

// SetClock overrides the time source. Test hook.
func (s *Service) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Login validates the role, fabricates the user and session, and persists the
// envelope under the auth-library key plus the backup user key. An unknown
// role writes nothing and navigates nowhere.
func (s *Service) Login(role string) (Result, error) {
	if err := validateRole(role); err != nil {
		return Result{}, err
	}

	now := s.now()
	user := fabricateUser(role)
	session := fabricateSession(user, now)
	envelope := Envelope{
		CurrentSession: session,
		ExpiresAt:      session.ExpiresAt,
	}

	rawEnvelope, err := json.Marshal(envelope)
	if err != nil {
		return Result{}, fmt.Errorf("encode session envelope: %w", err)
	}
	rawUser, err := json.Marshal(user)
	if err != nil {
		return Result{}, fmt.Errorf("encode mock user: %w", err)
	}

	if err := s.store.Set(s.authKey, string(rawEnvelope)); err != nil {
		return Result{}, err
	}
	if err := s.store.Set(KeyMockUser, string(rawUser)); err != nil {
		return Result{}, err
	}

	return Result{User: user, DashboardPath: DashboardPath(role)}, nil
}

// CurrentSession reads back the persisted envelope, if any.
func (s *Service) CurrentSession() (Envelope, bool, error) {
	raw, ok, err := s.store.Get(s.authKey)
	if err != nil || !ok {
		return Envelope{}, false, err
	}
	var env Envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return Envelope{}, false, fmt.Errorf("decode session envelope: %w", err)
	}
	return env, true, nil
}

// Clear removes the fabricated session. Sessions persist until cleared here.
func (s *Service) Clear() error {
	if err := s.store.Delete(s.authKey); err != nil {
		return err
	}
	return s.store.Delete(KeyMockUser)
}

// Minimized reports the persisted widget visibility state. Absent means
// expanded.
func (s *Service) Minimized() (bool, error) {
	raw, ok, err := s.store.Get(KeyMinimized)
	if err != nil || !ok {
		return false, err
	}
	return raw == "true", nil
}

// SetMinimized persists the widget visibility state as the literal strings
// the web client writes.
func (s *Service) SetMinimized(minimized bool) error {
	v := "false"
	if minimized {
		v = "true"
	}
	return s.store.Set(KeyMinimized, v)
}
