package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config contains all runtime settings for the voice gateway and dev tooling.
type Config struct {
	BindAddr         string
	ShutdownTimeout  time.Duration
	MetricsNamespace string

	AllowAnyOrigin bool

	UltravoxAPIKey      string
	UltravoxBaseURL     string
	UltravoxHTTPTimeout time.Duration

	DefaultVoice    string
	DefaultLanguage string

	DatabaseURL string

	SupabaseProjectID string

	DevLoginEnabled  bool
	DevLoginNavDelay time.Duration
	DevStateDir      string

	AudioPlaybackEnabled bool
}

// AuthTokenKey returns the storage key the auth library reads the session
// envelope from. The literal layout is a compatibility contract.
func (c Config) AuthTokenKey() string {
	return "sb-" + c.SupabaseProjectID + "-auth-token"
}

// Load reads environment variables and applies safe defaults.
func Load() (Config, error) {
	cfg := Config{
		BindAddr:          envOrDefault("APP_BIND_ADDR", ":8080"),
		MetricsNamespace:  envOrDefault("APP_METRICS_NAMESPACE", "smarttherapist"),
		AllowAnyOrigin:    false,
		UltravoxAPIKey:    stringsTrimSpace("ULTRAVOX_API_KEY"),
		UltravoxBaseURL:   envOrDefault("ULTRAVOX_BASE_URL", "https://api.ultravox.ai"),
		DefaultVoice:      envOrDefault("VOICE_DEFAULT_VOICE", "en-US-Neural2-F"),
		DefaultLanguage:   envOrDefault("VOICE_DEFAULT_LANGUAGE", "en-US"),
		DatabaseURL:       stringsTrimSpace("DATABASE_URL"),
		SupabaseProjectID: envOrDefault("SUPABASE_PROJECT_ID", "smarttherapist"),
		DevLoginEnabled:   true,
		// The half-second pause before redirecting matches the original
		// dev-login flow. No stated rationale; kept as-is.
		DevLoginNavDelay:     500 * time.Millisecond,
		DevStateDir:          envOrDefault("DEV_STATE_DIR", ".devstate"),
		AudioPlaybackEnabled: false,
		ShutdownTimeout:      15 * time.Second,
		UltravoxHTTPTimeout:  30 * time.Second,
	}

	var err error
	cfg.ShutdownTimeout, err = durationFromEnv("APP_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.UltravoxHTTPTimeout, err = durationFromEnv("ULTRAVOX_HTTP_TIMEOUT", cfg.UltravoxHTTPTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.DevLoginNavDelay, err = durationFromEnv("DEV_LOGIN_NAV_DELAY", cfg.DevLoginNavDelay)
	if err != nil {
		return Config{}, err
	}
	cfg.AllowAnyOrigin, err = boolFromEnv("APP_ALLOW_ANY_ORIGIN", cfg.AllowAnyOrigin)
	if err != nil {
		return Config{}, err
	}
	cfg.DevLoginEnabled, err = boolFromEnv("DEV_LOGIN_ENABLED", cfg.DevLoginEnabled)
	if err != nil {
		return Config{}, err
	}
	cfg.AudioPlaybackEnabled, err = boolFromEnv("AUDIO_PLAYBACK_ENABLED", cfg.AudioPlaybackEnabled)
	if err != nil {
		return Config{}, err
	}

	if strings.TrimSpace(cfg.UltravoxBaseURL) == "" {
		return Config{}, fmt.Errorf("ULTRAVOX_BASE_URL must not be empty")
	}
	if cfg.UltravoxHTTPTimeout <= 0 {
		return Config{}, fmt.Errorf("ULTRAVOX_HTTP_TIMEOUT must be positive")
	}
	if cfg.DevLoginNavDelay < 0 {
		return Config{}, fmt.Errorf("DEV_LOGIN_NAV_DELAY must not be negative")
	}
	if strings.TrimSpace(cfg.SupabaseProjectID) == "" {
		return Config{}, fmt.Errorf("SUPABASE_PROJECT_ID must not be empty")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func stringsTrimSpace(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := stringsTrimSpace(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return d, nil
}

func boolFromEnv(key string, fallback bool) (bool, error) {
	v := strings.ToLower(stringsTrimSpace(key))
	if v == "" {
		return fallback, nil
	}
	switch v {
	case "1", "true", "t", "yes", "y", "on":
		return true, nil
	case "0", "false", "f", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("%s parse error: expected bool", key)
	}
}
