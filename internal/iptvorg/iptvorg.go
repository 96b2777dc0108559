// Package iptvorg turns the iptv-org channel and stream catalogs into
// displayable channels.
package iptvorg

import (
	"strings"

	"github.com/alorle/iptv-browser/internal/channel"
)

// AllCountries selects every channel regardless of country.
const AllCountries = "all"

// ChannelRecord is one entry of the channels document.
type ChannelRecord struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Logo       string   `json:"logo"`
	Country    string   `json:"country"`
	Categories []string `json:"categories"`
	IsNSFW     bool     `json:"is_nsfw"`
	Status     string   `json:"status"`
}

// StreamRecord is one entry of the streams document. Channel refers to
// ChannelRecord.ID.
type StreamRecord struct {
	Channel string `json:"channel"`
	URL     string `json:"url"`
}

// Normalize joins channel records with their streams and returns the
// eligible channels in channel-record order.
//
// Streams are looked up by their channel reference; when several streams
// reference the same channel the last one wins. Channels without a matching
// stream get no stream URL and are therefore dropped, as are channels with
// no logo, nsfw channels and broken channels.
func Normalize(channels []ChannelRecord, streams []StreamRecord) []channel.Channel {
	urls := make(map[string]string, len(streams))
	for _, s := range streams {
		if s.Channel == "" {
			continue
		}
		urls[s.Channel] = s.URL
	}

	out := make([]channel.Channel, 0, len(channels))
	for _, rec := range channels {
		ch, err := channel.NewChannel(rec.Name, channel.Attributes{
			ID:        rec.ID,
			LogoURL:   rec.Logo,
			Category:  firstCategory(rec.Categories),
			StreamURL: urls[rec.ID],
			NSFW:      rec.IsNSFW,
			Status:    rec.Status,
		})
		if err != nil || !ch.Eligible() {
			continue
		}
		out = append(out, ch)
	}

	return out
}

// FilterCountry keeps the records whose country matches code, compared
// case-insensitively. AllCountries or an empty code keeps every record.
func FilterCountry(channels []ChannelRecord, code string) []ChannelRecord {
	if code == "" || strings.EqualFold(code, AllCountries) {
		return channels
	}

	out := make([]ChannelRecord, 0, len(channels))
	for _, rec := range channels {
		if strings.EqualFold(rec.Country, code) {
			out = append(out, rec)
		}
	}
	return out
}

func firstCategory(categories []string) string {
	for _, c := range categories {
		if c = strings.TrimSpace(c); c != "" {
			return c
		}
	}
	return channel.DefaultCategory
}
