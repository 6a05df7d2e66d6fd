package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"

	"github.com/gvargas9/smartterapist-sub001/internal/config"
	"github.com/gvargas9/smartterapist-sub001/internal/devlogin"
	"github.com/gvargas9/smartterapist-sub001/internal/events"
	"github.com/gvargas9/smartterapist-sub001/internal/observability"
	"github.com/gvargas9/smartterapist-sub001/internal/voice"
)

// AudioPlayer is the local output device behind the playback route. Nil when
// the deployment has no audio device.
type AudioPlayer interface {
	Play(ctx context.Context, blob []byte) error
}

type Server struct {
	cfg      config.Config
	voice    *voice.Service
	player   AudioPlayer
	dev      *devlogin.Service
	hub      *events.Hub
	metrics  *observability.Metrics
	upgrader websocket.Upgrader
	static   http.Handler
}

func New(cfg config.Config, voiceSvc *voice.Service, player AudioPlayer, dev *devlogin.Service, hub *events.Hub, metrics *observability.Metrics) *Server {
	return &Server{
		cfg:     cfg,
		voice:   voiceSvc,
		player:  player,
		dev:     dev,
		hub:     hub,
		metrics: metrics,
		static:  newStaticHandler(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				// Default: only same-origin browser connections. Other sites
				// must not be able to watch the dev event feed.
				if cfg.AllowAnyOrigin {
					return true
				}
				origin := strings.TrimSpace(r.Header.Get("Origin"))
				if origin == "" {
					// Non-browser clients often omit Origin. Allow them.
					return true
				}
				u, err := url.Parse(origin)
				if err != nil {
					return false
				}
				if u.Scheme != "http" && u.Scheme != "https" {
					return false
				}
				return strings.EqualFold(u.Host, r.Host)
			},
		},
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	allowedOrigins := []string{"http://localhost:*", "https://localhost:*"}
	if s.cfg.AllowAnyOrigin {
		allowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		observability.MetricsHandler().ServeHTTP(w, r)
	})

	r.Get("/v1/users/{id}/voice-settings", s.handleGetVoiceSettings)
	r.Put("/v1/users/{id}/voice-settings", s.handlePutVoiceSettings)
	r.Post("/v1/voice/transcriptions", s.handleTranscribe)
	r.Post("/v1/voice/speech", s.handleSynthesize)
	r.Post("/v1/voice/playback", s.handlePlayback)

	if s.cfg.DevLoginEnabled && s.dev != nil {
		r.Post("/v1/dev/login", s.handleDevLogin)
		r.Get("/v1/dev/session", s.handleDevSession)
		r.Delete("/v1/dev/session", s.handleDevClearSession)
		r.Get("/v1/dev/widget", s.handleGetWidgetState)
		r.Put("/v1/dev/widget", s.handlePutWidgetState)
		r.Get("/v1/dev/events", s.handleDevEvents)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/ui/", http.StatusTemporaryRedirect)
		})
		r.Get("/ui", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/ui/", http.StatusTemporaryRedirect)
		})
		r.Handle("/ui/*", http.StripPrefix("/ui/", s.static))
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":            "ok",
		"vendor_configured": strings.TrimSpace(s.cfg.UltravoxAPIKey) != "",
		"dev_login_enabled": s.cfg.DevLoginEnabled,
		"playback_enabled":  s.player != nil,
	})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"status": "ready"})
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

var errEmptyBody = errors.New("empty body")

func decodeJSON(r *http.Request, out any) error {
	if r.Body == nil {
		return errEmptyBody
	}
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(out); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "eof") {
			return errEmptyBody
		}
		return err
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: message, Code: code})
}
