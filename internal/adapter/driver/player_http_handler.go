package driver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alorle/iptv-browser/internal/application"
	"github.com/alorle/iptv-browser/internal/playback"
)

// PlayerHTTPHandler handles HTTP requests for the playback session.
type PlayerHTTPHandler struct {
	controller *application.PlaybackController
}

// NewPlayerHTTPHandler creates a new HTTP handler for the player.
func NewPlayerHTTPHandler(controller *application.PlaybackController) *PlayerHTTPHandler {
	return &PlayerHTTPHandler{controller: controller}
}

// playRequest represents the JSON body for starting playback. It carries
// the clicked card, so playback does not depend on the current catalog.
type playRequest struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// playerResponse represents the playback session in JSON format.
type playerResponse struct {
	State     string                `json:"state"`
	SessionID string                `json:"session_id,omitempty"`
	Channel   string                `json:"channel,omitempty"`
	URL       string                `json:"url,omitempty"`
	Error     string                `json:"error,omitempty"`
	Display   playback.DisplayState `json:"display"`
}

// ServeHTTP routes the request to the appropriate handler based on method and path.
func (h *PlayerHTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/player":
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		writeJSON(w, http.StatusOK, toPlayerResponse(h.controller.Status()))

	case "/player/play":
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		h.handlePlay(w, r)

	case "/player/stop":
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		writeJSON(w, http.StatusOK, toPlayerResponse(h.controller.Stop()))

	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

// handlePlay handles POST /player/play
func (h *PlayerHTTPHandler) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req playRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	status, err := h.controller.Play(req.Name, req.URL)
	if err != nil {
		if errors.Is(err, playback.ErrEmptyURL) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toPlayerResponse(status))
}

func toPlayerResponse(s application.PlaybackStatus) playerResponse {
	return playerResponse{
		State:     s.State.String(),
		SessionID: s.SessionID,
		Channel:   s.Channel,
		URL:       s.URL,
		Error:     s.Error,
		Display:   s.Display,
	}
}
