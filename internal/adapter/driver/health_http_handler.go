package driver

import (
	"net/http"

	"github.com/alorle/iptv-browser/internal/application"
)

// HealthHTTPHandler handles HTTP requests for health checks.
type HealthHTTPHandler struct {
	service *application.HealthService
}

// NewHealthHTTPHandler creates a new HTTP handler for health checks.
func NewHealthHTTPHandler(service *application.HealthService) *HealthHTTPHandler {
	return &HealthHTTPHandler{service: service}
}

// healthResponse represents the JSON response for health check endpoint.
type healthResponse struct {
	Status       string `json:"status"`
	DB           string `json:"db"`
	Catalog      string `json:"catalog"`
	CatalogError string `json:"catalog_error,omitempty"`
}

// ServeHTTP handles GET /health
func (h *HealthHTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	status := h.service.Check(r.Context())

	resp := healthResponse{
		Status:       status.Status,
		DB:           status.DB.Status,
		Catalog:      status.Catalog.Status,
		CatalogError: status.Catalog.Error,
	}

	httpStatus := http.StatusOK
	if status.Status != "ok" {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, resp)
}
