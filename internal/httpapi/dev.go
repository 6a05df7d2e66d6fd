package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gvargas9/smartterapist-sub001/internal/devlogin"
)

type devLoginRequest struct {
	Role string `json:"role"`
}

type devLoginResponse struct {
	User          devlogin.MockUser `json:"user"`
	DashboardPath string            `json:"dashboard_path"`
}

func (s *Server) handleDevLogin(w http.ResponseWriter, r *http.Request) {
	var req devLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	result, err := s.dev.Login(req.Role)
	if err != nil {
		var roleErr *devlogin.UnknownRoleError
		if errors.As(err, &roleErr) {
			// The message is rendered verbatim in the widget's error region.
			respondError(w, http.StatusBadRequest, "invalid_role", roleErr.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "dev_login_failed", err.Error())
		return
	}

	s.metrics.DevLogins.WithLabelValues(req.Role).Inc()
	if s.hub != nil {
		s.hub.Publish("dev_login", map[string]any{"role": req.Role, "user_id": result.User.ID})
	}

	// Pause between the storage write and the navigation, as the original
	// flow did. The widget redirects with a full page load as soon as this
	// response lands so the shell re-bootstraps from storage.
	select {
	case <-time.After(s.cfg.DevLoginNavDelay):
	case <-r.Context().Done():
		return
	}

	respondJSON(w, http.StatusOK, devLoginResponse{
		User:          result.User,
		DashboardPath: result.DashboardPath,
	})
}

func (s *Server) handleDevSession(w http.ResponseWriter, _ *http.Request) {
	env, present, err := s.dev.CurrentSession()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "session_read_failed", err.Error())
		return
	}
	if !present {
		respondJSON(w, http.StatusOK, map[string]any{"present": false})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"present": true, "session": env})
}

func (s *Server) handleDevClearSession(w http.ResponseWriter, _ *http.Request) {
	if err := s.dev.Clear(); err != nil {
		respondError(w, http.StatusInternalServerError, "session_clear_failed", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"cleared": true})
}

type widgetStateBody struct {
	Minimized bool `json:"minimized"`
}

func (s *Server) handleGetWidgetState(w http.ResponseWriter, _ *http.Request) {
	minimized, err := s.dev.Minimized()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "widget_state_failed", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, widgetStateBody{Minimized: minimized})
}

func (s *Server) handlePutWidgetState(w http.ResponseWriter, r *http.Request) {
	var body widgetStateBody
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if err := s.dev.SetMinimized(body.Minimized); err != nil {
		respondError(w, http.StatusInternalServerError, "widget_state_failed", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, body)
}
