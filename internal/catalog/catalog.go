// Package catalog holds the set of displayable channels for one source and
// the search/category view derived from it.
package catalog

import (
	"slices"

	"github.com/alorle/iptv-browser/internal/channel"
)

// Catalog is an immutable, ordered list of eligible channels loaded from a
// single source. It is replaced wholesale on every reload.
type Catalog struct {
	source     string
	channels   []channel.Channel
	categories []string
}

// New builds a Catalog for the given source. Ineligible channels are dropped
// and the remaining order is preserved. Categories are registered in the
// order they are first seen.
func New(source string, channels []channel.Channel) Catalog {
	kept := make([]channel.Channel, 0, len(channels))
	seen := make(map[string]struct{})
	var categories []string

	for _, ch := range channels {
		if !ch.Eligible() {
			continue
		}
		kept = append(kept, ch)
		if _, ok := seen[ch.Category()]; !ok {
			seen[ch.Category()] = struct{}{}
			categories = append(categories, ch.Category())
		}
	}

	return Catalog{
		source:     source,
		channels:   kept,
		categories: categories,
	}
}

// Empty returns a Catalog with no channels, used after a failed load.
func Empty(source string) Catalog {
	return Catalog{source: source}
}

// Source returns the source identifier the catalog was loaded from.
func (c Catalog) Source() string {
	return c.source
}

// Len returns the number of channels.
func (c Catalog) Len() int {
	return len(c.channels)
}

// Channels returns a copy of the channels in catalog order.
func (c Catalog) Channels() []channel.Channel {
	return slices.Clone(c.channels)
}

// Categories returns the distinct categories sorted alphabetically, as shown
// in a category selector.
func (c Catalog) Categories() []string {
	sorted := slices.Clone(c.categories)
	slices.Sort(sorted)
	return sorted
}

// CategoriesInOrder returns the distinct categories in first-seen order.
func (c Catalog) CategoriesInOrder() []string {
	return slices.Clone(c.categories)
}

// HasCategory reports whether any channel belongs to the category.
func (c Catalog) HasCategory(category string) bool {
	return slices.Contains(c.categories, category)
}
