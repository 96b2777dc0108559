package playback

import "sync"

// Display is the single playback surface: a closable player panel holding a
// video area and a status line.
type Display struct {
	mu           sync.Mutex
	nativeHLS    bool
	open         bool
	videoVisible bool
	playing      bool
	source       string
	message      string
}

// DisplayState is a point-in-time copy of a Display.
type DisplayState struct {
	Open         bool   `json:"open"`
	VideoVisible bool   `json:"video_visible"`
	Playing      bool   `json:"playing"`
	Source       string `json:"source,omitempty"`
	Message      string `json:"message,omitempty"`
}

// NewDisplay creates a closed display. nativeHLS reports whether the
// surface can play HLS without a streaming client.
func NewDisplay(nativeHLS bool) *Display {
	return &Display{nativeHLS: nativeHLS}
}

// Open shows the panel with the video hidden and message in the status line.
func (d *Display) Open(message string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open = true
	d.videoVisible = false
	d.message = message
}

// ShowVideo reveals the video area and clears the status line.
func (d *Display) ShowVideo() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.videoVisible = true
	d.message = ""
}

// SetMessage replaces the status line.
func (d *Display) SetMessage(message string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.message = message
}

// Close pauses playback, detaches the source and hides the panel.
func (d *Display) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open = false
	d.videoVisible = false
	d.playing = false
	d.source = ""
	d.message = ""
}

// SetSource assigns the media source.
func (d *Display) SetSource(url string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.source = url
	d.playing = false
}

// Play starts playback of the current source.
func (d *Display) Play() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.source == "" {
		return ErrNoSource
	}
	d.playing = true
	return nil
}

// Pause stops playback, keeping the source.
func (d *Display) Pause() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.playing = false
}

// CanPlayType reports whether the display can play mimeType natively.
func (d *Display) CanPlayType(mimeType string) bool {
	return d.nativeHLS && mimeType == HLSMimeType
}

// State returns a copy of the display state.
func (d *Display) State() DisplayState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return DisplayState{
		Open:         d.open,
		VideoVisible: d.videoVisible,
		Playing:      d.playing,
		Source:       d.source,
		Message:      d.message,
	}
}

var _ Surface = (*Display)(nil)
