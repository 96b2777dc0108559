// Package grid projects a channel view into the cards shown to the user.
package grid

import "github.com/alorle/iptv-browser/internal/channel"

// NoResults is shown in place of the cards when a view is empty.
const NoResults = "No channels found for this selection."

// Card is one clickable channel tile.
type Card struct {
	Name      string `json:"name"`
	LogoURL   string `json:"logo"`
	Category  string `json:"category"`
	StreamURL string `json:"url"`
}

// Grid is the rendered view: either cards or a placeholder message.
type Grid struct {
	Cards       []Card `json:"cards"`
	Placeholder string `json:"placeholder,omitempty"`
}

// Empty reports whether the grid shows the placeholder instead of cards.
func (g Grid) Empty() bool {
	return len(g.Cards) == 0
}

// Project builds one card per channel, in view order.
func Project(view []channel.Channel) Grid {
	if len(view) == 0 {
		return Grid{Cards: []Card{}, Placeholder: NoResults}
	}

	cards := make([]Card, len(view))
	for i, ch := range view {
		cards[i] = Card{
			Name:      ch.Name(),
			LogoURL:   ch.LogoURL(),
			Category:  ch.Category(),
			StreamURL: ch.StreamURL(),
		}
	}
	return Grid{Cards: cards}
}
