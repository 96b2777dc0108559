package driven

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/alorle/iptv-browser/internal/catalog"
	"github.com/alorle/iptv-browser/internal/iptvorg"
	"github.com/alorle/iptv-browser/internal/port/driven"
)

const (
	// DefaultPlaylistBaseURL is the iptv-org playlist root.
	DefaultPlaylistBaseURL = "https://iptv-org.github.io/iptv"

	// HTTP client timeout for fetching playlists
	defaultSourceTimeout = 30 * time.Second
)

// PlaylistHTTPSource implements the PlaylistSource port by fetching iptv-org
// style per-country M3U playlists over HTTP.
type PlaylistHTTPSource struct {
	baseURL    string
	httpClient *http.Client
}

// NewPlaylistHTTPSource creates a new HTTP-based playlist source.
// If baseURL is empty, DefaultPlaylistBaseURL is used.
// If client is nil, a client with a 30-second timeout is created.
func NewPlaylistHTTPSource(baseURL string, client *http.Client) *PlaylistHTTPSource {
	if baseURL == "" {
		baseURL = DefaultPlaylistBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: defaultSourceTimeout}
	}
	return &PlaylistHTTPSource{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: client,
	}
}

// PlaylistURL returns the playlist location for a country code. The aggregate
// playlist is used for "all".
func (s *PlaylistHTTPSource) PlaylistURL(country string) string {
	code := strings.ToLower(strings.TrimSpace(country))
	if code == "" || code == iptvorg.AllCountries {
		return s.baseURL + "/index.m3u"
	}
	return fmt.Sprintf("%s/countries/%s.m3u", s.baseURL, code)
}

// FetchPlaylist retrieves the raw M3U text for the country.
func (s *PlaylistHTTPSource) FetchPlaylist(ctx context.Context, country string) (string, error) {
	url := s.PlaylistURL(country)

	body, err := get(ctx, s.httpClient, url)
	if err != nil {
		return "", err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return "", &catalog.LoadError{URL: url, Err: fmt.Errorf("reading response body: %w", err)}
	}

	return string(data), nil
}

// get issues a GET request and returns the body of a 2xx response. Any other
// outcome is reported as a *catalog.LoadError.
func get(ctx context.Context, client *http.Client, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &catalog.LoadError{URL: url, Err: fmt.Errorf("creating HTTP request: %w", err)}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &catalog.LoadError{URL: url, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &catalog.LoadError{URL: url, StatusCode: resp.StatusCode}
	}

	return resp.Body, nil
}

// Ensure PlaylistHTTPSource implements the driven.PlaylistSource interface
var _ driven.PlaylistSource = (*PlaylistHTTPSource)(nil)
