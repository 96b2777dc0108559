package driven

import "github.com/alorle/iptv-browser/internal/playback"

// StreamingClient is one instance of an adaptive-streaming player.
// This is a driven port implemented by concrete adapters (e.g., an HLS client).
type StreamingClient interface {
	// On registers a handler for client events. Handlers may be invoked from
	// any goroutine, but never from within LoadSource, AttachMedia or Destroy.
	On(handler func(playback.Event))

	// LoadSource sets the manifest URL to play.
	LoadSource(url string)

	// AttachMedia binds the client to the surface it renders into. Loading
	// begins once both a source and a surface are set.
	AttachMedia(surface playback.Surface)

	// Destroy releases the instance. No events are raised afterwards and it
	// must not block on in-flight work.
	Destroy()
}

// StreamingClientFactory creates StreamingClient instances.
type StreamingClientFactory interface {
	// IsSupported reports whether the client can run in this environment.
	IsSupported() bool

	// New creates a fresh client instance.
	New() StreamingClient
}
