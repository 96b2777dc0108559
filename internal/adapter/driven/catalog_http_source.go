package driven

import (
	"context"
	"encoding/json"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/alorle/iptv-browser/internal/catalog"
	"github.com/alorle/iptv-browser/internal/iptvorg"
	"github.com/alorle/iptv-browser/internal/port/driven"
)

const (
	DefaultChannelsURL = "https://iptv-org.github.io/api/channels.json"
	DefaultStreamsURL  = "https://iptv-org.github.io/api/streams.json"
)

// CatalogHTTPSource implements the CatalogSource port by fetching the
// iptv-org channels and streams JSON documents.
type CatalogHTTPSource struct {
	channelsURL string
	streamsURL  string
	httpClient  *http.Client
}

// NewCatalogHTTPSource creates a new HTTP-based catalog source. Empty URLs
// fall back to the iptv-org API. If client is nil, a client with a 30-second
// timeout is created.
func NewCatalogHTTPSource(channelsURL, streamsURL string, client *http.Client) *CatalogHTTPSource {
	if channelsURL == "" {
		channelsURL = DefaultChannelsURL
	}
	if streamsURL == "" {
		streamsURL = DefaultStreamsURL
	}
	if client == nil {
		client = &http.Client{Timeout: defaultSourceTimeout}
	}
	return &CatalogHTTPSource{
		channelsURL: channelsURL,
		streamsURL:  streamsURL,
		httpClient:  client,
	}
}

// FetchCatalog downloads both documents concurrently. The first failure
// cancels the other request and is returned.
func (s *CatalogHTTPSource) FetchCatalog(ctx context.Context) ([]iptvorg.ChannelRecord, []iptvorg.StreamRecord, error) {
	var (
		channels []iptvorg.ChannelRecord
		streams  []iptvorg.StreamRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.fetchJSON(gctx, s.channelsURL, &channels)
	})
	g.Go(func() error {
		return s.fetchJSON(gctx, s.streamsURL, &streams)
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return channels, streams, nil
}

func (s *CatalogHTTPSource) fetchJSON(ctx context.Context, url string, dst any) error {
	body, err := get(ctx, s.httpClient, url)
	if err != nil {
		return err
	}
	defer body.Close()

	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return &catalog.DecodeError{URL: url, Err: err}
	}
	return nil
}

// Ensure CatalogHTTPSource implements the driven.CatalogSource interface
var _ driven.CatalogSource = (*CatalogHTTPSource)(nil)
