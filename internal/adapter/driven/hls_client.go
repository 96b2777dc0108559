package driven

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/grafov/m3u8"

	"github.com/alorle/iptv-browser/internal/playback"
	"github.com/alorle/iptv-browser/internal/port/driven"
)

var (
	errEmptyManifest = errors.New("manifest has no variants or segments")
)

// HLSClientFactory implements the StreamingClientFactory port with a client
// that reads the HLS manifest and hands the stream to the attached surface
// once it is known to be playable.
type HLSClientFactory struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHLSClientFactory creates a new HLS client factory.
// If client is nil, a client with a 30-second timeout is created.
func NewHLSClientFactory(client *http.Client, logger *slog.Logger) *HLSClientFactory {
	if client == nil {
		client = &http.Client{Timeout: defaultSourceTimeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HLSClientFactory{
		httpClient: client,
		logger:     logger,
	}
}

// IsSupported always reports true: manifest loading only needs HTTP.
func (f *HLSClientFactory) IsSupported() bool {
	return true
}

// New creates a new HLS client instance.
func (f *HLSClientFactory) New() driven.StreamingClient {
	ctx, cancel := context.WithCancel(context.Background())
	return &HLSClient{
		httpClient: f.httpClient,
		logger:     f.logger,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// HLSClient is a single streaming client instance.
type HLSClient struct {
	httpClient *http.Client
	logger     *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	url       string
	surface   playback.Surface
	handlers  []func(playback.Event)
	started   bool
	destroyed bool
	done      chan struct{}
}

// On registers an event handler.
func (c *HLSClient) On(handler func(playback.Event)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, handler)
}

// LoadSource sets the manifest URL.
func (c *HLSClient) LoadSource(url string) {
	c.mu.Lock()
	c.url = url
	c.mu.Unlock()
	c.maybeStart()
}

// AttachMedia binds the surface the stream is handed to.
func (c *HLSClient) AttachMedia(surface playback.Surface) {
	c.mu.Lock()
	c.surface = surface
	c.mu.Unlock()
	c.maybeStart()
}

// Destroy cancels any in-flight manifest request and detaches the surface.
// It does not wait for the loader goroutine to exit.
func (c *HLSClient) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return
	}
	c.destroyed = true
	c.surface = nil
	c.handlers = nil
	c.cancel()
}

// Done returns a channel closed when the loader goroutine has exited, or nil
// if loading never started.
func (c *HLSClient) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

func (c *HLSClient) maybeStart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started || c.destroyed || c.url == "" || c.surface == nil {
		return
	}
	c.started = true
	c.done = make(chan struct{})
	go c.load(c.url)
}

func (c *HLSClient) load(url string) {
	defer close(c.done)

	levels, err := c.readManifest(url)
	if err != nil {
		if c.ctx.Err() != nil {
			return
		}
		c.logger.Warn("hls manifest load failed", "url", url, "error", err)
		c.emit(playback.FatalError(err))
		return
	}

	c.mu.Lock()
	surface := c.surface
	c.mu.Unlock()
	if surface == nil {
		return
	}
	surface.SetSource(url)

	c.logger.Debug("hls manifest parsed", "url", url, "levels", levels)
	c.emit(playback.ManifestParsed(levels))
}

// readManifest fetches and decodes the manifest, returning the number of
// renditions (1 for a media playlist).
func (c *HLSClient) readManifest(url string) (int, error) {
	req, err := http.NewRequestWithContext(c.ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("creating HTTP request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetching manifest: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected HTTP status: %d %s", resp.StatusCode, resp.Status)
	}

	pl, listType, err := m3u8.DecodeFrom(resp.Body, false)
	if err != nil {
		return 0, fmt.Errorf("parsing manifest: %w", err)
	}

	switch listType {
	case m3u8.MASTER:
		master := pl.(*m3u8.MasterPlaylist)
		if len(master.Variants) == 0 {
			return 0, errEmptyManifest
		}
		return len(master.Variants), nil
	case m3u8.MEDIA:
		media := pl.(*m3u8.MediaPlaylist)
		if media.Count() == 0 {
			return 0, errEmptyManifest
		}
		return 1, nil
	default:
		return 0, fmt.Errorf("unknown manifest type %v", listType)
	}
}

func (c *HLSClient) emit(ev playback.Event) {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	handlers := append([]func(playback.Event){}, c.handlers...)
	c.mu.Unlock()

	for _, h := range handlers {
		h(ev)
	}
}

// Ensure HLSClientFactory implements the driven.StreamingClientFactory interface
var _ driven.StreamingClientFactory = (*HLSClientFactory)(nil)
