package driver

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/alorle/iptv-browser/internal/application"
	"github.com/alorle/iptv-browser/internal/grid"
)

const pageTemplate = "index.html"

// PageHTTPHandler renders the channel browser page.
type PageHTTPHandler struct {
	browser *application.BrowserService
	player  *application.PlaybackController
	tmpl    *template.Template
	logger  *slog.Logger
}

// NewPageHTTPHandler creates a new handler rendering tmpl's index.html.
func NewPageHTTPHandler(browser *application.BrowserService, player *application.PlaybackController, tmpl *template.Template, logger *slog.Logger) *PageHTTPHandler {
	return &PageHTTPHandler{
		browser: browser,
		player:  player,
		tmpl:    tmpl,
		logger:  logger,
	}
}

// pageData is the template input.
type pageData struct {
	Countries  []application.Country
	Country    string
	Categories []string
	Category   string
	SearchTerm string
	Message    string
	Grid       grid.Grid
	Player     application.PlaybackStatus
}

// ServeHTTP handles GET /
func (h *PageHTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	status := h.browser.Status()
	data := pageData{
		Countries:  h.browser.Countries(),
		Country:    status.Country,
		Categories: h.browser.Categories(),
		Category:   status.Category,
		SearchTerm: status.SearchTerm,
		Message:    status.Message,
		Player:     h.player.Status(),
	}
	// A status message (loading, failure, empty result) replaces the grid.
	if status.Message == "" {
		data.Grid = h.browser.Grid()
	}

	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, pageTemplate, data); err != nil {
		h.logger.Error("failed to render page", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
