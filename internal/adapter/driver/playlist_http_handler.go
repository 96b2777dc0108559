package driver

import (
	"bytes"
	"net/http"

	"github.com/alorle/iptv-browser/internal/application"
	"github.com/alorle/iptv-browser/internal/m3u"
)

// PlaylistHTTPHandler exports the current view as an M3U playlist.
type PlaylistHTTPHandler struct {
	service *application.BrowserService
}

// NewPlaylistHTTPHandler creates a new HTTP handler for playlists.
func NewPlaylistHTTPHandler(service *application.BrowserService) *PlaylistHTTPHandler {
	return &PlaylistHTTPHandler{service: service}
}

// ServeHTTP handles GET /playlist.m3u
func (h *PlaylistHTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	enc := m3u.NewEncoder()
	for _, ch := range h.service.View() {
		enc.AddChannel(ch)
	}

	var buf bytes.Buffer
	if err := enc.Encode(&buf); err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "audio/mpegurl")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
