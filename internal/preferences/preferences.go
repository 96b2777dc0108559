package preferences

import "errors"

// Domain errors
var (
	ErrNotFound = errors.New("preferences not found")
)

// Preferences is the selection restored when the application starts.
type Preferences struct {
	Country    string
	Category   string
	SearchTerm string
}
