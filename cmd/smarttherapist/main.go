package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/gvargas9/smartterapist-sub001/internal/audio"
	"github.com/gvargas9/smartterapist-sub001/internal/config"
	"github.com/gvargas9/smartterapist-sub001/internal/devlogin"
	"github.com/gvargas9/smartterapist-sub001/internal/devlogin/localstore"
	"github.com/gvargas9/smartterapist-sub001/internal/events"
	"github.com/gvargas9/smartterapist-sub001/internal/httpapi"
	"github.com/gvargas9/smartterapist-sub001/internal/observability"
	"github.com/gvargas9/smartterapist-sub001/internal/profile"
	"github.com/gvargas9/smartterapist-sub001/internal/voice"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	metrics := observability.NewMetrics(cfg.MetricsNamespace)

	ctx := context.Background()
	store, err := profile.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("profile store init failed: %v", err)
	}
	defer store.Close()
	if cfg.DatabaseURL == "" {
		log.Printf("profile store: in-memory (no DATABASE_URL)")
	} else {
		log.Printf("profile store: postgres")
	}

	var provider voice.Provider
	if strings.TrimSpace(cfg.UltravoxAPIKey) != "" {
		provider = voice.NewUltravoxClient(voice.UltravoxConfig{
			APIKey:       cfg.UltravoxAPIKey,
			BaseURL:      cfg.UltravoxBaseURL,
			DefaultVoice: cfg.DefaultVoice,
			HTTPTimeout:  cfg.UltravoxHTTPTimeout,
		})
		log.Printf("voice provider: ultravox")
	} else {
		provider = voice.NewMockProvider()
		log.Printf("voice provider: mock (ULTRAVOX_API_KEY not set)")
	}

	defaults := voice.DefaultSettings()
	defaults.PreferredVoice = cfg.DefaultVoice
	voiceSvc := voice.NewService(store, provider, defaults)

	var player httpapi.AudioPlayer
	if cfg.AudioPlaybackEnabled {
		p, err := audio.NewPlayer(audio.DefaultSampleRate)
		if err != nil {
			log.Printf("audio playback unavailable: %v", err)
		} else {
			player = p
			log.Printf("audio playback: local device")
		}
	}

	var devSvc *devlogin.Service
	var hub *events.Hub
	if cfg.DevLoginEnabled {
		state, err := localstore.New(cfg.DevStateDir)
		if err != nil {
			log.Fatalf("dev state store init failed: %v", err)
		}
		devSvc = devlogin.NewService(state, cfg.AuthTokenKey())
		hub = events.NewHub()
		log.Printf("dev login: enabled (state dir %s)", cfg.DevStateDir)
	}

	srv := httpapi.New(cfg, voiceSvc, player, devSvc, hub, metrics)
	httpServer := &http.Server{
		Addr:    cfg.BindAddr,
		Handler: srv.Router(),
	}

	go func() {
		log.Printf("listening on %s", cfg.BindAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	log.Printf("stopped")
}
