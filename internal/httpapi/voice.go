package httpapi

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gvargas9/smartterapist-sub001/internal/voice"
)

const (
	maxAudioUpload  = 32 << 20
	maxSynthesisLen = 8192
)

func (s *Server) handleGetVoiceSettings(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if strings.TrimSpace(userID) == "" {
		respondError(w, http.StatusBadRequest, "invalid_user_id", "missing user id")
		return
	}

	settings := s.voice.GetSettings(r.Context(), userID)
	s.metrics.SettingsOps.WithLabelValues("read", "ok").Inc()
	respondJSON(w, http.StatusOK, settings)
}

type updateSettingsResponse struct {
	Success bool `json:"success"`
}

func (s *Server) handlePutVoiceSettings(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if strings.TrimSpace(userID) == "" {
		respondError(w, http.StatusBadRequest, "invalid_user_id", "missing user id")
		return
	}

	var settings voice.Settings
	if err := decodeJSON(r, &settings); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	// Store failures are reported as success=false, never as an HTTP error.
	// The UI decides whether to retry.
	ok := s.voice.UpdateSettings(r.Context(), userID, settings)
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	s.metrics.SettingsOps.WithLabelValues("write", outcome).Inc()
	if ok && s.hub != nil {
		s.hub.Publish("settings_updated", map[string]any{"user_id": userID})
	}
	respondJSON(w, http.StatusOK, updateSettingsResponse{Success: ok})
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

func (s *Server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxAudioUpload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "expected multipart form with an audio part")
		return
	}
	file, _, err := r.FormFile("audio")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "missing audio part")
		return
	}
	defer file.Close()

	blob, err := io.ReadAll(io.LimitReader(file, maxAudioUpload))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	language := strings.TrimSpace(r.FormValue("language"))
	if language == "" {
		language = s.cfg.DefaultLanguage
	}

	start := time.Now()
	text, err := s.voice.Transcribe(r.Context(), blob, language)
	s.metrics.ObserveVendor("stt", start, err)
	if err != nil {
		respondVendorError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, transcriptionResponse{Text: text})
}

type synthesisRequest struct {
	Text  string  `json:"text"`
	Voice string  `json:"voice"`
	Speed float64 `json:"speed"`
	Pitch float64 `json:"pitch"`
}

func (s *Server) handleSynthesize(w http.ResponseWriter, r *http.Request) {
	var req synthesisRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "text is required")
		return
	}
	if len(req.Text) > maxSynthesisLen {
		respondError(w, http.StatusBadRequest, "invalid_request", "text too long")
		return
	}

	opts := voice.SynthesisOptions{Voice: req.Voice, Speed: req.Speed, Pitch: req.Pitch}
	start := time.Now()
	blob, contentType, err := s.voice.Synthesize(r.Context(), req.Text, opts)
	s.metrics.ObserveVendor("tts", start, err)
	if err != nil {
		respondVendorError(w, err)
		return
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(blob)
}

func (s *Server) handlePlayback(w http.ResponseWriter, r *http.Request) {
	if s.player == nil {
		respondError(w, http.StatusServiceUnavailable, "playback_disabled", "no audio device configured")
		return
	}

	blob, err := io.ReadAll(io.LimitReader(r.Body, maxAudioUpload))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	defer r.Body.Close()
	if len(blob) == 0 {
		respondError(w, http.StatusBadRequest, "invalid_request", "empty audio body")
		return
	}

	s.metrics.ActivePlaybacks.Inc()
	if s.hub != nil {
		s.hub.Publish("playback_started", map[string]any{"bytes": len(blob)})
	}

	playErr := s.player.Play(r.Context(), blob)
	s.metrics.ActivePlaybacks.Dec()

	if playErr != nil {
		if s.hub != nil {
			s.hub.Publish("playback_errored", map[string]any{"error": playErr.Error()})
		}
		respondError(w, http.StatusInternalServerError, "playback_failed", playErr.Error())
		return
	}
	if s.hub != nil {
		s.hub.Publish("playback_ended", nil)
	}
	respondJSON(w, http.StatusOK, map[string]any{"played": true})
}

// respondVendorError maps voice client failures onto HTTP statuses: a missing
// key is a configuration problem here, anything else is the vendor's.
func respondVendorError(w http.ResponseWriter, err error) {
	if errors.Is(err, voice.ErrMissingAPIKey) {
		respondError(w, http.StatusServiceUnavailable, "vendor_not_configured", err.Error())
		return
	}
	respondError(w, http.StatusBadGateway, "vendor_request_failed", err.Error())
}
