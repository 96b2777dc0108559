package driven

import (
	"context"

	"github.com/alorle/iptv-browser/internal/iptvorg"
)

// PlaylistSource fetches an M3U playlist for a country.
// This is a driven port implemented by concrete adapters (e.g., HTTP client).
type PlaylistSource interface {
	// FetchPlaylist returns the raw playlist text for the country code, or for
	// every country when code is "all". Returns a *catalog.LoadError when the
	// request fails or the response status is not successful.
	FetchPlaylist(ctx context.Context, country string) (string, error)
}

// CatalogSource fetches the JSON channel and stream catalogs.
// This is a driven port implemented by concrete adapters (e.g., HTTP client).
type CatalogSource interface {
	// FetchCatalog retrieves both documents concurrently. Returns a
	// *catalog.LoadError when either request fails and a *catalog.DecodeError
	// when either body is malformed.
	FetchCatalog(ctx context.Context) ([]iptvorg.ChannelRecord, []iptvorg.StreamRecord, error)
}
