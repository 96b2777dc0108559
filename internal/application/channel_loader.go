package application

import (
	"context"
	"strings"

	"github.com/alorle/iptv-browser/internal/catalog"
	"github.com/alorle/iptv-browser/internal/channel"
	"github.com/alorle/iptv-browser/internal/iptvorg"
	"github.com/alorle/iptv-browser/internal/m3u"
	"github.com/alorle/iptv-browser/internal/port/driven"
)

// Source modes
const (
	ModeM3U  = "m3u"
	ModeJSON = "json"
)

// ChannelLoader turns one source selection into the channels of a catalog.
type ChannelLoader interface {
	// Mode names the source variant, used in logs and metrics.
	Mode() string
	// Load fetches and decodes the channels for a country code, or for every
	// country when code is "all".
	Load(ctx context.Context, country string) ([]channel.Channel, error)
}

// M3ULoader reads per-country M3U playlists.
type M3ULoader struct {
	source driven.PlaylistSource
}

// NewM3ULoader creates a loader backed by a playlist source.
func NewM3ULoader(source driven.PlaylistSource) *M3ULoader {
	return &M3ULoader{source: source}
}

func (l *M3ULoader) Mode() string {
	return ModeM3U
}

func (l *M3ULoader) Load(ctx context.Context, country string) ([]channel.Channel, error) {
	text, err := l.source.FetchPlaylist(ctx, country)
	if err != nil {
		return nil, err
	}

	pl, err := m3u.Parse(strings.NewReader(text))
	if err != nil {
		return nil, &catalog.DecodeError{URL: "playlist:" + country, Err: err}
	}

	return pl.Channels, nil
}

// JSONLoader reads the channel and stream catalogs and joins them.
type JSONLoader struct {
	source driven.CatalogSource
}

// NewJSONLoader creates a loader backed by a catalog source.
func NewJSONLoader(source driven.CatalogSource) *JSONLoader {
	return &JSONLoader{source: source}
}

func (l *JSONLoader) Mode() string {
	return ModeJSON
}

func (l *JSONLoader) Load(ctx context.Context, country string) ([]channel.Channel, error) {
	channels, streams, err := l.source.FetchCatalog(ctx)
	if err != nil {
		return nil, err
	}

	return iptvorg.Normalize(iptvorg.FilterCountry(channels, country), streams), nil
}
