// Package playback models the single live-stream playback session: its
// states, the events a streaming client raises, and the display it drives.
package playback

import (
	"errors"
	"fmt"
)

// HLSMimeType is the media type of HLS manifests.
const HLSMimeType = "application/vnd.apple.mpegurl"

// Domain errors
var (
	ErrEmptyURL    = errors.New("stream url cannot be empty")
	ErrUnsupported = errors.New("no playback method available for stream")
	ErrNoSource    = errors.New("display has no source")
	ErrPlayback    = errors.New("fatal playback error")
)

// State is the playback controller state.
type State int

const (
	StateIdle State = iota
	StateLoading
	StatePlaying
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StatePlaying:
		return "playing"
	case StateErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// EventType identifies a streaming client notification.
type EventType int

const (
	// EventManifestParsed is raised once the stream manifest has been read
	// and playback can start.
	EventManifestParsed EventType = iota + 1
	// EventFatalError is raised when the client gives up on the stream.
	EventFatalError
)

func (t EventType) String() string {
	switch t {
	case EventManifestParsed:
		return "manifest_parsed"
	case EventFatalError:
		return "fatal_error"
	default:
		return fmt.Sprintf("event(%d)", int(t))
	}
}

// Event is a notification from a streaming client.
type Event struct {
	Type EventType
	// Levels is the number of renditions found in the manifest.
	Levels int
	// Err is set for EventFatalError.
	Err error
}

// ManifestParsed returns an EventManifestParsed event.
func ManifestParsed(levels int) Event {
	return Event{Type: EventManifestParsed, Levels: levels}
}

// FatalError returns an EventFatalError event wrapping err.
func FatalError(err error) Event {
	return Event{Type: EventFatalError, Err: fmt.Errorf("%w: %w", ErrPlayback, err)}
}

// Surface is what a streaming client attaches to.
type Surface interface {
	SetSource(url string)
	Play() error
	Pause()
	CanPlayType(mimeType string) bool
}
