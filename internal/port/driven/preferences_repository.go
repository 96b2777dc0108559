package driven

import (
	"context"

	"github.com/alorle/iptv-browser/internal/preferences"
)

// PreferencesRepository persists the user's last selection.
// This is a driven port implemented by concrete adapters (e.g., BoltDB).
type PreferencesRepository interface {
	// Load returns the stored preferences. Returns preferences.ErrNotFound
	// when nothing has been saved yet.
	Load(ctx context.Context) (preferences.Preferences, error)

	// Save replaces the stored preferences.
	Save(ctx context.Context, p preferences.Preferences) error

	// Ping checks if the repository (database) is accessible and operational.
	Ping(ctx context.Context) error
}
