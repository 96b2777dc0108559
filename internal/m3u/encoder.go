package m3u

import (
	"fmt"
	"io"

	"github.com/alorle/iptv-browser/internal/channel"
)

// Encoder writes an extended M3U playlist.
type Encoder struct {
	items []*Item
}

func NewEncoder() *Encoder {
	return &Encoder{items: []*Item{}}
}

func (e *Encoder) AddItem(item *Item) {
	e.items = append(e.items, item)
}

// AddChannel appends a live entry for ch. Channels without a stream URL are
// skipped since the entry would not be playable.
func (e *Encoder) AddChannel(ch channel.Channel) {
	if !ch.HasStream() {
		return
	}
	e.AddItem(&Item{
		Title:    ch.Name(),
		URI:      ch.StreamURL(),
		Duration: -1,
		TVGTags: &TVGTags{
			ID:         ch.ID(),
			Logo:       ch.LogoURL(),
			GroupTitle: ch.Category(),
		},
	})
}

func (e *Encoder) Encode(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s\n", directiveHeader); err != nil {
		return err
	}

	for _, item := range e.items {
		if err := item.encode(w); err != nil {
			return err
		}
	}

	return nil
}
