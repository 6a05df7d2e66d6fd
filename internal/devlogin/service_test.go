package devlogin

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gvargas9/smartterapist-sub001/internal/devlogin/localstore"
)

const testAuthKey = "sb-smarttherapist-auth-token"

func newTestService(t *testing.T) (*Service, *localstore.Store) {
	t.Helper()
	store, err := localstore.New(t.TempDir())
	if err != nil {
		t.Fatalf("localstore.New() error = %v", err)
	}
	return NewService(store, testAuthKey), store
}

func TestLoginAdminWritesEnvelope(t *testing.T) {
	svc, store := newTestService(t)
	fixed := time.Unix(1_700_000_000, 0)
	svc.SetClock(func() time.Time { return fixed })

	res, err := svc.Login(RoleAdmin)
	if err != nil {
		t.Fatalf("Login(admin) error = %v", err)
	}
	if res.DashboardPath != "/admin/dashboard" {
		t.Fatalf("DashboardPath = %q, want /admin/dashboard", res.DashboardPath)
	}

	raw, ok, err := store.Get(testAuthKey)
	if err != nil || !ok {
		t.Fatalf("auth token key missing: ok=%v err=%v", ok, err)
	}
	var env Envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}

	user := env.CurrentSession.User
	if user.ID != "admin-1" || user.Role != "admin" || user.Name != "Admin User" {
		t.Fatalf("user = %+v, want admin-1/admin/Admin User", user)
	}
	if user.ProfileData.Name != "Admin User" {
		t.Fatalf("profile_data.name = %q, want %q", user.ProfileData.Name, "Admin User")
	}
	if env.CurrentSession.ProviderToken != nil || env.CurrentSession.ProviderRefreshToken != nil {
		t.Fatalf("provider tokens should be null")
	}
	if env.CurrentSession.TokenType != "bearer" {
		t.Fatalf("token_type = %q, want bearer", env.CurrentSession.TokenType)
	}
	if env.CurrentSession.ExpiresIn != 3600 {
		t.Fatalf("expires_in = %d, want 3600", env.CurrentSession.ExpiresIn)
	}
	if env.CurrentSession.ExpiresAt != fixed.Unix()+3600 {
		t.Fatalf("expires_at = %d, want %d", env.CurrentSession.ExpiresAt, fixed.Unix()+3600)
	}
	if env.ExpiresAt != env.CurrentSession.ExpiresAt {
		t.Fatalf("envelope expiresAt = %d, session expires_at = %d, want equal", env.ExpiresAt, env.CurrentSession.ExpiresAt)
	}

	if !strings.HasPrefix(env.CurrentSession.AccessToken, "mock-token-") {
		t.Fatalf("access_token = %q, want mock-token- prefix", env.CurrentSession.AccessToken)
	}
	if !strings.HasPrefix(env.CurrentSession.RefreshToken, "mock-refresh-") {
		t.Fatalf("refresh_token = %q, want mock-refresh- prefix", env.CurrentSession.RefreshToken)
	}
	if len(env.CurrentSession.AccessToken) <= len("mock-token-") {
		t.Fatalf("access_token has no opaque payload")
	}
}

func TestLoginWritesBackupUser(t *testing.T) {
	svc, store := newTestService(t)
	if _, err := svc.Login(RoleTherapist); err != nil {
		t.Fatalf("Login(therapist) error = %v", err)
	}

	raw, ok, err := store.Get(KeyMockUser)
	if err != nil || !ok {
		t.Fatalf("backup user key missing: ok=%v err=%v", ok, err)
	}
	var user MockUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		t.Fatalf("decode backup user: %v", err)
	}
	if user.ID != "therapist-1" || user.Name != "Therapist User" {
		t.Fatalf("backup user = %+v, want therapist-1/Therapist User", user)
	}
}

func TestLoginUnknownRoleWritesNothing(t *testing.T) {
	svc, store := newTestService(t)

	_, err := svc.Login("guest")
	if err == nil {
		t.Fatalf("Login(guest) error = nil, want unknown role error")
	}
	if err.Error() != "Invalid user type: guest" {
		t.Fatalf("error = %q, want %q", err.Error(), "Invalid user type: guest")
	}
	var roleErr *UnknownRoleError
	if !errors.As(err, &roleErr) {
		t.Fatalf("error type = %T, want *UnknownRoleError", err)
	}

	if _, ok, _ := store.Get(testAuthKey); ok {
		t.Fatalf("auth token written for unknown role")
	}
	if _, ok, _ := store.Get(KeyMockUser); ok {
		t.Fatalf("backup user written for unknown role")
	}
}

func TestClearRemovesSession(t *testing.T) {
	svc, store := newTestService(t)
	if _, err := svc.Login(RoleClient); err != nil {
		t.Fatalf("Login(client) error = %v", err)
	}
	if err := svc.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, ok, _ := store.Get(testAuthKey); ok {
		t.Fatalf("auth token survived Clear()")
	}
	if _, ok, _ := store.Get(KeyMockUser); ok {
		t.Fatalf("backup user survived Clear()")
	}
	if _, present, err := svc.CurrentSession(); err != nil || present {
		t.Fatalf("CurrentSession() after Clear = present=%v err=%v", present, err)
	}
}

func TestMinimizedRoundTrips(t *testing.T) {
	svc, store := newTestService(t)

	initial, err := svc.Minimized()
	if err != nil {
		t.Fatalf("Minimized() error = %v", err)
	}
	if initial {
		t.Fatalf("Minimized() = true on fresh store, want expanded default")
	}

	if err := svc.SetMinimized(true); err != nil {
		t.Fatalf("SetMinimized(true) error = %v", err)
	}
	raw, ok, _ := store.Get(KeyMinimized)
	if !ok || raw != "true" {
		t.Fatalf("stored minimized = %q ok=%v, want literal \"true\"", raw, ok)
	}

	// Toggling twice restores the initial state.
	if err := svc.SetMinimized(false); err != nil {
		t.Fatalf("SetMinimized(false) error = %v", err)
	}
	got, err := svc.Minimized()
	if err != nil {
		t.Fatalf("Minimized() error = %v", err)
	}
	if got != initial {
		t.Fatalf("Minimized() after double toggle = %v, want %v", got, initial)
	}
}

func TestAccessTokensAreUnique(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.Login(RoleClient); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	env1, _, _ := svc.CurrentSession()
	if _, err := svc.Login(RoleClient); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	env2, _, _ := svc.CurrentSession()
	if env1.CurrentSession.AccessToken == env2.CurrentSession.AccessToken {
		t.Fatalf("two logins produced identical access tokens")
	}
}
