package application

import (
	"context"

	"github.com/alorle/iptv-browser/internal/port/driven"
	"github.com/alorle/iptv-browser/metrics"
)

// HealthService orchestrates health checks for the application and its dependencies.
type HealthService struct {
	db      driven.PreferencesRepository
	browser *BrowserService
}

// NewHealthService creates a new health check service.
func NewHealthService(db driven.PreferencesRepository, browser *BrowserService) *HealthService {
	return &HealthService{
		db:      db,
		browser: browser,
	}
}

// ComponentHealth represents the health status of a single component.
type ComponentHealth struct {
	Status string // "ok" or "error"
	Error  string // empty if status is "ok", otherwise contains error message
}

// HealthStatus represents the overall health status of the application.
type HealthStatus struct {
	Status  string          // "ok" if all components are healthy, "degraded" otherwise
	DB      ComponentHealth // preferences database health
	Catalog ComponentHealth // last catalog load
}

// Check performs health checks on all dependencies.
// Returns the overall health status and individual component statuses.
func (s *HealthService) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status: "ok",
		DB:     ComponentHealth{Status: "ok"},
		// A failed load is reported but does not degrade the service: the
		// user can retry by selecting another country.
		Catalog: ComponentHealth{Status: "ok"},
	}

	if err := s.db.Ping(ctx); err != nil {
		status.DB = ComponentHealth{
			Status: "error",
			Error:  err.Error(),
		}
		status.Status = "degraded"
		metrics.RecordHealthCheckFailure()
	}

	if s.browser != nil {
		if browser := s.browser.Status(); browser.Error != "" {
			status.Catalog = ComponentHealth{
				Status: "error",
				Error:  browser.Error,
			}
		}
	}

	return status
}
