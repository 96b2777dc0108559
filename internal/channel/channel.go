package channel

import (
	"errors"
	"strings"
)

// DefaultCategory is assigned to channels whose source carries no grouping.
const DefaultCategory = "Other"

// StatusBroken marks a channel its source reports as not working.
const StatusBroken = "BROKEN"

// Domain errors
var (
	ErrEmptyName     = errors.New("channel name cannot be empty")
	ErrMissingLogo   = errors.New("channel has no logo")
	ErrMissingStream = errors.New("channel has no stream url")
	ErrNSFW          = errors.New("channel is flagged nsfw")
	ErrBroken        = errors.New("channel is marked broken")
)

// Channel represents a live TV channel that can be listed and played.
type Channel struct {
	id        string
	name      string
	logoURL   string
	category  string
	streamURL string
	nsfw      bool
	status    string
}

// Attributes holds the optional fields of a Channel.
type Attributes struct {
	ID        string
	LogoURL   string
	Category  string
	StreamURL string
	NSFW      bool
	Status    string
}

// NewChannel creates a new Channel with the given name and attributes.
// All string values are trimmed. An empty category becomes DefaultCategory.
// Returns ErrEmptyName if the name is empty or contains only whitespace.
func NewChannel(name string, attrs Attributes) (Channel, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Channel{}, ErrEmptyName
	}

	category := strings.TrimSpace(attrs.Category)
	if category == "" {
		category = DefaultCategory
	}

	return Channel{
		id:        strings.TrimSpace(attrs.ID),
		name:      trimmed,
		logoURL:   strings.TrimSpace(attrs.LogoURL),
		category:  category,
		streamURL: strings.TrimSpace(attrs.StreamURL),
		nsfw:      attrs.NSFW,
		status:    strings.TrimSpace(attrs.Status),
	}, nil
}

// ID returns the source-provided identifier, which may be empty.
func (c Channel) ID() string {
	return c.id
}

// Name returns the channel's display name.
func (c Channel) Name() string {
	return c.name
}

// LogoURL returns the channel's logo URL.
func (c Channel) LogoURL() string {
	return c.logoURL
}

// Category returns the channel's category.
func (c Channel) Category() string {
	return c.category
}

// StreamURL returns the playable URL, or an empty string when the source
// had no stream for this channel.
func (c Channel) StreamURL() string {
	return c.streamURL
}

// HasStream reports whether the channel has a playable URL.
func (c Channel) HasStream() bool {
	return c.streamURL != ""
}

// NSFW reports whether the source flagged the channel as adult content.
func (c Channel) NSFW() bool {
	return c.nsfw
}

// Status returns the source-provided status, which may be empty.
func (c Channel) Status() string {
	return c.status
}

// Check returns the first reason the channel may not be displayed, or nil
// when it is eligible.
func (c Channel) Check() error {
	switch {
	case c.logoURL == "":
		return ErrMissingLogo
	case c.streamURL == "":
		return ErrMissingStream
	case c.nsfw:
		return ErrNSFW
	case strings.EqualFold(c.status, StatusBroken):
		return ErrBroken
	}
	return nil
}

// Eligible reports whether the channel may appear in a catalog: it needs a
// logo and a stream URL, and must be neither nsfw nor broken.
func (c Channel) Eligible() bool {
	return c.Check() == nil
}
