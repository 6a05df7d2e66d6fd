// Package devlogin fabricates synthetic sessions for local development. The
// envelope layout and storage key names are a compatibility contract with the
// auth library's local-storage schema, not an implementation detail.
package devlogin

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Roles the dev panel can sign in as, each with its own landing dashboard.
const (
	RoleClient    = "client"
	RoleTherapist = "therapist"
	RoleAdmin     = "admin"
)

// Storage keys shared with the web client.
const (
	KeyMockUser  = "smarttherapist_mock_user"
	KeyMinimized = "dev_login_minimized"
)

const sessionTTL = 3600 // seconds, mirrored in both expiry fields

// UnknownRoleError reports a login attempt for a role outside the known set.
type UnknownRoleError struct {
	Role string
}

// Error returns the exact message the widget displays.
func (e *UnknownRoleError) Error() string {
	return "Invalid user type: " + e.Role
}

// MockUser is the fabricated user record, derived from the role label.
type MockUser struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Name        string `json:"name"`
	ProfileData struct {
		Name string `json:"name"`
	} `json:"profile_data"`
}

// MockSession mimics the session record the auth library issues. Tokens are
// opaque non-empty strings; downstream code never validates their content.
type MockSession struct {
	ProviderToken        *string  `json:"provider_token"`
	ProviderRefreshToken *string  `json:"provider_refresh_token"`
	AccessToken          string   `json:"access_token"`
	RefreshToken         string   `json:"refresh_token"`
	ExpiresIn            int64    `json:"expires_in"`
	ExpiresAt            int64    `json:"expires_at"`
	TokenType            string   `json:"token_type"`
	User                 MockUser `json:"user"`
}

// Envelope is the record persisted under the sb-<project-id>-auth-token key.
type Envelope struct {
	CurrentSession MockSession `json:"currentSession"`
	ExpiresAt      int64       `json:"expiresAt"`
}

func knownRole(role string) bool {
	switch role {
	case RoleClient, RoleTherapist, RoleAdmin:
		return true
	default:
		return false
	}
}

// DashboardPath returns the role's landing page.
func DashboardPath(role string) string {
	return "/" + role + "/dashboard"
}

func fabricateUser(role string) MockUser {
	name := capitalize(role) + " User"
	u := MockUser{
		ID:    role + "-1",
		Email: role + "@smarttherapist.dev",
		Role:  role,
		Name:  name,
	}
	u.ProfileData.Name = name
	return u
}

func fabricateSession(user MockUser, now time.Time) MockSession {
	return MockSession{
		AccessToken:  "mock-token-" + uuid.NewString(),
		RefreshToken: "mock-refresh-" + uuid.NewString(),
		ExpiresIn:    sessionTTL,
		ExpiresAt:    now.Unix() + sessionTTL,
		TokenType:    "bearer",
		User:         user,
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func validateRole(role string) error {
	if !knownRole(role) {
		return &UnknownRoleError{Role: role}
	}
	return nil
}
