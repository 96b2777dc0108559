package driver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alorle/iptv-browser/internal/application"
	"github.com/alorle/iptv-browser/internal/catalog"
	"github.com/alorle/iptv-browser/internal/grid"
)

// BrowserHTTPHandler handles HTTP requests for the channel catalog and its
// view filter.
type BrowserHTTPHandler struct {
	service *application.BrowserService
}

// NewBrowserHTTPHandler creates a new HTTP handler for the browser API.
func NewBrowserHTTPHandler(service *application.BrowserService) *BrowserHTTPHandler {
	return &BrowserHTTPHandler{service: service}
}

// errorResponse represents a JSON error response.
type errorResponse struct {
	Error string `json:"error"`
}

// countryResponse represents a country selector entry in JSON format.
type countryResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// gridResponse represents the card grid in JSON format.
type gridResponse struct {
	Cards       []grid.Card `json:"cards"`
	Placeholder string      `json:"placeholder,omitempty"`
}

// statusResponse represents the browser state in JSON format.
type statusResponse struct {
	Mode     string `json:"mode"`
	Country  string `json:"country"`
	Loading  bool   `json:"loading"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
	Channels int    `json:"channels"`
	Category string `json:"category"`
	Search   string `json:"search"`
}

// catalogRequest represents the JSON body for loading a country.
type catalogRequest struct {
	Country string `json:"country"`
}

// filterRequest represents the JSON body for changing the view filter.
type filterRequest struct {
	Category string `json:"category"`
	Search   string `json:"search"`
}

// filterResponse represents the active view filter in JSON format.
type filterResponse struct {
	Category string `json:"category"`
	Search   string `json:"search"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// ServeHTTP routes the request to the appropriate handler based on method and path.
func (h *BrowserHTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var method string
	var handle http.HandlerFunc

	switch r.URL.Path {
	case "/countries":
		method, handle = http.MethodGet, h.handleCountries
	case "/categories":
		method, handle = http.MethodGet, h.handleCategories
	case "/channels":
		method, handle = http.MethodGet, h.handleChannels
	case "/status":
		method, handle = http.MethodGet, h.handleStatus
	case "/catalog":
		method, handle = http.MethodPost, h.handleLoad
	case "/filter":
		method, handle = http.MethodPut, h.handleFilter
	default:
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	if r.Method != method {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	handle(w, r)
}

// handleCountries handles GET /countries
func (h *BrowserHTTPHandler) handleCountries(w http.ResponseWriter, r *http.Request) {
	countries := h.service.Countries()
	resp := make([]countryResponse, 0, len(countries))
	for _, c := range countries {
		resp = append(resp, countryResponse{Code: c.Code, Name: c.Name})
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleCategories handles GET /categories
// The "all" sentinel is always the first entry.
func (h *BrowserHTTPHandler) handleCategories(w http.ResponseWriter, r *http.Request) {
	resp := append([]string{catalog.AllCategories}, h.service.Categories()...)
	writeJSON(w, http.StatusOK, resp)
}

// handleChannels handles GET /channels
func (h *BrowserHTTPHandler) handleChannels(w http.ResponseWriter, r *http.Request) {
	g := h.service.Grid()
	writeJSON(w, http.StatusOK, gridResponse{Cards: g.Cards, Placeholder: g.Placeholder})
}

// handleStatus handles GET /status
func (h *BrowserHTTPHandler) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toStatusResponse(h.service.Status()))
}

// handleLoad handles POST /catalog
func (h *BrowserHTTPHandler) handleLoad(w http.ResponseWriter, r *http.Request) {
	var req catalogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	status, err := h.service.LoadCountry(r.Context(), req.Country)
	if err != nil {
		if errors.Is(err, application.ErrUnknownCountry) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toStatusResponse(status))
}

// handleFilter handles PUT /filter
func (h *BrowserHTTPHandler) handleFilter(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	f := h.service.SetFilter(r.Context(), req.Category, req.Search)
	writeJSON(w, http.StatusOK, filterResponse{Category: f.Category, Search: f.SearchTerm})
}

func toStatusResponse(s application.BrowserStatus) statusResponse {
	return statusResponse{
		Mode:     s.Mode,
		Country:  s.Country,
		Loading:  s.Loading,
		Message:  s.Message,
		Error:    s.Error,
		Channels: s.Channels,
		Category: s.Category,
		Search:   s.SearchTerm,
	}
}
