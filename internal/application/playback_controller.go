package application

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/alorle/iptv-browser/internal/playback"
	"github.com/alorle/iptv-browser/internal/port/driven"
	"github.com/alorle/iptv-browser/metrics"
)

// MsgChannelUnavailable is shown when a stream cannot be played.
const MsgChannelUnavailable = "This channel is unavailable."

const msgLoadingChannel = "Loading: %s..."

// PlaybackStatus is a snapshot of the playback controller.
type PlaybackStatus struct {
	State     playback.State
	SessionID string
	Channel   string
	URL       string
	Error     string
	Display   playback.DisplayState
}

// PlaybackController owns the single display and the streaming client bound
// to it. At most one client instance is alive at any time: every Play
// destroys the previous one before creating its replacement.
type PlaybackController struct {
	factory driven.StreamingClientFactory
	display *playback.Display
	logger  *slog.Logger

	mu      sync.Mutex
	state   playback.State
	session uuid.UUID
	client  driven.StreamingClient
	channel string
	url     string
	lastErr error
}

// NewPlaybackController creates an idle controller.
func NewPlaybackController(factory driven.StreamingClientFactory, display *playback.Display, logger *slog.Logger) *PlaybackController {
	return &PlaybackController{
		factory: factory,
		display: display,
		logger:  logger,
		state:   playback.StateIdle,
	}
}

// Play starts a new session for the named stream, replacing any current one.
// Returns playback.ErrEmptyURL when url is blank; every other outcome is
// reported through the returned status.
func (c *PlaybackController) Play(name, url string) (PlaybackStatus, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return c.Status(), playback.ErrEmptyURL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.releaseClient()

	c.session = uuid.New()
	c.channel = name
	c.url = url
	c.lastErr = nil
	c.display.Open(fmt.Sprintf(msgLoadingChannel, name))

	logger := c.logger.With("session", c.session.String(), "channel", name, "url", url)

	switch {
	case c.factory.IsSupported():
		session := c.session
		client := c.factory.New()
		client.On(func(ev playback.Event) {
			c.handleEvent(session, ev)
		})
		client.AttachMedia(c.display)
		client.LoadSource(url)

		c.client = client
		c.state = playback.StateLoading
		metrics.RecordPlaybackSession("client")
		metrics.SetPlaybackActive(true)
		logger.Info("playback loading")

	case c.display.CanPlayType(playback.HLSMimeType):
		c.display.SetSource(url)
		if err := c.display.Play(); err != nil {
			logger.Warn("native playback did not start", "error", err)
		}
		c.display.ShowVideo()

		c.state = playback.StatePlaying
		metrics.RecordPlaybackSession("native")
		metrics.SetPlaybackActive(true)
		logger.Info("playback started natively")

	default:
		c.fail(playback.ErrUnsupported)
		metrics.RecordPlaybackError("unsupported")
		logger.Warn("no playback method available")
	}

	return c.statusLocked(), nil
}

// Stop destroys the current session and closes the display.
func (c *PlaybackController) Stop() PlaybackStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != playback.StateIdle {
		c.logger.Info("playback stopped", "session", c.session.String(), "channel", c.channel)
	}

	c.releaseClient()
	c.display.Pause()
	c.display.Close()

	c.state = playback.StateIdle
	c.session = uuid.Nil
	c.channel = ""
	c.url = ""
	c.lastErr = nil
	metrics.SetPlaybackActive(false)

	return c.statusLocked()
}

// Status returns a snapshot of the controller.
func (c *PlaybackController) Status() PlaybackStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statusLocked()
}

func (c *PlaybackController) statusLocked() PlaybackStatus {
	st := PlaybackStatus{
		State:   c.state,
		Channel: c.channel,
		URL:     c.url,
		Display: c.display.State(),
	}
	if c.session != uuid.Nil {
		st.SessionID = c.session.String()
	}
	if c.lastErr != nil {
		st.Error = c.lastErr.Error()
	}
	return st
}

// handleEvent applies a client event to the session it was raised for.
// Events from any other session are dropped.
func (c *PlaybackController) handleEvent(session uuid.UUID, ev playback.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if session != c.session || c.client == nil {
		c.logger.Debug("ignoring event from stale session", "session", session.String(), "event", ev.Type.String())
		return
	}

	logger := c.logger.With("session", session.String(), "channel", c.channel)

	switch ev.Type {
	case playback.EventManifestParsed:
		if c.state != playback.StateLoading {
			return
		}
		c.display.ShowVideo()
		if err := c.display.Play(); err != nil {
			logger.Warn("playback did not start", "error", err)
		}
		c.state = playback.StatePlaying
		logger.Info("playback started", "levels", ev.Levels)

	case playback.EventFatalError:
		c.fail(ev.Err)
		metrics.RecordPlaybackError("fatal")
		logger.Warn("playback failed", "error", ev.Err)
	}
}

// fail moves to the errored state, keeping the display open with the
// unavailable message.
func (c *PlaybackController) fail(err error) {
	c.state = playback.StateErrored
	c.lastErr = err
	c.display.SetMessage(MsgChannelUnavailable)
	metrics.SetPlaybackActive(false)
}

// releaseClient destroys the current client instance, if any.
func (c *PlaybackController) releaseClient() {
	if c.client == nil {
		return
	}
	c.client.Destroy()
	c.client = nil
}
