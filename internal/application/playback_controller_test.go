package application

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/alorle/iptv-browser/internal/playback"
	"github.com/alorle/iptv-browser/internal/port/driven"
)

// mockStreamingClient is a mock implementation of driven.StreamingClient for testing.
type mockStreamingClient struct {
	mu        sync.Mutex
	handlers  []func(playback.Event)
	url       string
	surface   playback.Surface
	destroyed bool
}

func (m *mockStreamingClient) On(handler func(playback.Event)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers = append(m.handlers, handler)
}

func (m *mockStreamingClient) LoadSource(url string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.url = url
}

func (m *mockStreamingClient) AttachMedia(surface playback.Surface) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.surface = surface
}

func (m *mockStreamingClient) Destroy() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.destroyed = true
}

func (m *mockStreamingClient) isDestroyed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.destroyed
}

// emit delivers an event the way a real client would, including after
// Destroy, so tests can exercise stale-session filtering.
func (m *mockStreamingClient) emit(ev playback.Event) {
	m.mu.Lock()
	handlers := append([]func(playback.Event){}, m.handlers...)
	m.mu.Unlock()
	for _, h := range handlers {
		h(ev)
	}
}

// mockStreamingClientFactory is a mock implementation of driven.StreamingClientFactory for testing.
type mockStreamingClientFactory struct {
	unsupported bool
	mu          sync.Mutex
	clients     []*mockStreamingClient
}

func (f *mockStreamingClientFactory) IsSupported() bool {
	return !f.unsupported
}

func (f *mockStreamingClientFactory) New() driven.StreamingClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := &mockStreamingClient{}
	f.clients = append(f.clients, c)
	return c
}

func (f *mockStreamingClientFactory) created() []*mockStreamingClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*mockStreamingClient{}, f.clients...)
}

func (f *mockStreamingClientFactory) live() int {
	n := 0
	for _, c := range f.created() {
		if !c.isDestroyed() {
			n++
		}
	}
	return n
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestController(factory *mockStreamingClientFactory, nativeHLS bool) (*PlaybackController, *playback.Display) {
	display := playback.NewDisplay(nativeHLS)
	return NewPlaybackController(factory, display, testLogger()), display
}

func TestPlaybackController_Play(t *testing.T) {
	t.Run("creates a client bound to the display and starts loading", func(t *testing.T) {
		factory := &mockStreamingClientFactory{}
		ctrl, display := newTestController(factory, false)

		status, err := ctrl.Play("Geo News", "http://x/geo.m3u8")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if status.State != playback.StateLoading {
			t.Errorf("expected state loading, got %v", status.State)
		}
		if status.SessionID == "" {
			t.Error("expected a session ID")
		}
		if status.Display.Message != "Loading: Geo News..." {
			t.Errorf("expected loading message, got %q", status.Display.Message)
		}
		if !status.Display.Open || status.Display.VideoVisible {
			t.Errorf("expected open display with hidden video, got %+v", status.Display)
		}

		clients := factory.created()
		if len(clients) != 1 {
			t.Fatalf("expected 1 client, got %d", len(clients))
		}
		if clients[0].url != "http://x/geo.m3u8" {
			t.Errorf("expected client source to be set, got %q", clients[0].url)
		}
		if clients[0].surface != display {
			t.Error("expected client to be attached to the display")
		}
	})

	t.Run("rejects an empty url", func(t *testing.T) {
		factory := &mockStreamingClientFactory{}
		ctrl, _ := newTestController(factory, false)

		status, err := ctrl.Play("Nothing", "   ")
		if !errors.Is(err, playback.ErrEmptyURL) {
			t.Errorf("expected ErrEmptyURL, got %v", err)
		}
		if status.State != playback.StateIdle {
			t.Errorf("expected state to stay idle, got %v", status.State)
		}
		if len(factory.created()) != 0 {
			t.Error("expected no client to be created")
		}
	})

	t.Run("second play destroys the first instance", func(t *testing.T) {
		factory := &mockStreamingClientFactory{}
		ctrl, _ := newTestController(factory, false)

		first, _ := ctrl.Play("A", "http://x/a.m3u8")
		second, _ := ctrl.Play("B", "http://x/b.m3u8")

		clients := factory.created()
		if len(clients) != 2 {
			t.Fatalf("expected 2 clients, got %d", len(clients))
		}
		if !clients[0].isDestroyed() {
			t.Error("expected first client to be destroyed")
		}
		if clients[1].isDestroyed() {
			t.Error("expected second client to be alive")
		}
		if factory.live() != 1 {
			t.Errorf("expected exactly one live client, got %d", factory.live())
		}
		if first.SessionID == second.SessionID {
			t.Error("expected a new session ID per play")
		}
		if second.Channel != "B" || second.Display.Message != "Loading: B..." {
			t.Errorf("expected status for B, got %+v", second)
		}
	})

	t.Run("falls back to native playback", func(t *testing.T) {
		factory := &mockStreamingClientFactory{unsupported: true}
		ctrl, _ := newTestController(factory, true)

		status, err := ctrl.Play("Native", "http://x/n.m3u8")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if status.State != playback.StatePlaying {
			t.Errorf("expected state playing, got %v", status.State)
		}
		if status.Display.Source != "http://x/n.m3u8" || !status.Display.Playing || !status.Display.VideoVisible {
			t.Errorf("expected display to play the url directly, got %+v", status.Display)
		}
		if len(factory.created()) != 0 {
			t.Error("expected no client to be created")
		}
	})

	t.Run("errors when no playback method is available", func(t *testing.T) {
		factory := &mockStreamingClientFactory{unsupported: true}
		ctrl, _ := newTestController(factory, false)

		status, err := ctrl.Play("Nowhere", "http://x/n.m3u8")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if status.State != playback.StateErrored {
			t.Errorf("expected state errored, got %v", status.State)
		}
		if status.Display.Message != MsgChannelUnavailable {
			t.Errorf("expected unavailable message, got %q", status.Display.Message)
		}
		if status.Error != playback.ErrUnsupported.Error() {
			t.Errorf("expected unsupported error, got %q", status.Error)
		}
	})
}

func TestPlaybackController_Events(t *testing.T) {
	t.Run("manifest parsed starts playback", func(t *testing.T) {
		factory := &mockStreamingClientFactory{}
		ctrl, display := newTestController(factory, false)

		if _, err := ctrl.Play("Geo", "http://x/geo.m3u8"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		// A real client sets the source before raising the event.
		display.SetSource("http://x/geo.m3u8")
		factory.created()[0].emit(playback.ManifestParsed(3))

		status := ctrl.Status()
		if status.State != playback.StatePlaying {
			t.Errorf("expected state playing, got %v", status.State)
		}
		if !status.Display.VideoVisible || !status.Display.Playing {
			t.Errorf("expected visible playing video, got %+v", status.Display)
		}
		if status.Display.Message != "" {
			t.Errorf("expected status line to be cleared, got %q", status.Display.Message)
		}
	})

	t.Run("fatal error shows unavailable message", func(t *testing.T) {
		factory := &mockStreamingClientFactory{}
		ctrl, _ := newTestController(factory, false)

		if _, err := ctrl.Play("Dead", "http://x/dead.m3u8"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		factory.created()[0].emit(playback.FatalError(errors.New("404")))

		status := ctrl.Status()
		if status.State != playback.StateErrored {
			t.Errorf("expected state errored, got %v", status.State)
		}
		if status.Display.Message != MsgChannelUnavailable {
			t.Errorf("expected unavailable message, got %q", status.Display.Message)
		}
		if !status.Display.Open {
			t.Error("expected display to stay open")
		}
	})

	t.Run("events from a replaced session are ignored", func(t *testing.T) {
		factory := &mockStreamingClientFactory{}
		ctrl, _ := newTestController(factory, false)

		_, _ = ctrl.Play("A", "http://x/a.m3u8")
		_, _ = ctrl.Play("B", "http://x/b.m3u8")

		factory.created()[0].emit(playback.FatalError(errors.New("late failure from A")))

		status := ctrl.Status()
		if status.State != playback.StateLoading {
			t.Errorf("expected B to keep loading, got %v", status.State)
		}
		if status.Display.Message != "Loading: B..." {
			t.Errorf("expected B loading message, got %q", status.Display.Message)
		}
	})

	t.Run("events after stop are ignored", func(t *testing.T) {
		factory := &mockStreamingClientFactory{}
		ctrl, _ := newTestController(factory, false)

		_, _ = ctrl.Play("A", "http://x/a.m3u8")
		ctrl.Stop()
		factory.created()[0].emit(playback.ManifestParsed(1))

		status := ctrl.Status()
		if status.State != playback.StateIdle {
			t.Errorf("expected state idle, got %v", status.State)
		}
		if status.Display.Open {
			t.Error("expected display to stay closed")
		}
	})
}

func TestPlaybackController_Stop(t *testing.T) {
	factory := &mockStreamingClientFactory{}
	ctrl, display := newTestController(factory, false)

	_, _ = ctrl.Play("A", "http://x/a.m3u8")
	display.SetSource("http://x/a.m3u8")
	factory.created()[0].emit(playback.ManifestParsed(1))

	status := ctrl.Stop()

	if status.State != playback.StateIdle {
		t.Errorf("expected state idle, got %v", status.State)
	}
	if status.SessionID != "" || status.Channel != "" {
		t.Errorf("expected session to be cleared, got %+v", status)
	}
	if status.Display.Open || status.Display.Playing || status.Display.Source != "" {
		t.Errorf("expected closed display, got %+v", status.Display)
	}
	if factory.live() != 0 {
		t.Errorf("expected no live clients, got %d", factory.live())
	}

	// Stopping twice is harmless
	if again := ctrl.Stop(); again.State != playback.StateIdle {
		t.Errorf("expected state idle, got %v", again.State)
	}
}

func TestPlaybackController_ConcurrentPlays(t *testing.T) {
	factory := &mockStreamingClientFactory{}
	ctrl, _ := newTestController(factory, false)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = ctrl.Play("ch", "http://x/ch.m3u8")
		}()
	}
	wg.Wait()

	if got := len(factory.created()); got != 20 {
		t.Errorf("expected 20 clients, got %d", got)
	}
	if factory.live() != 1 {
		t.Errorf("expected exactly one live client, got %d", factory.live())
	}
}
