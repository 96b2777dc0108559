package catalog

import (
	"strings"
	"sync"

	"github.com/alorle/iptv-browser/internal/channel"
)

// AllCategories is the category sentinel that disables category filtering.
const AllCategories = "all"

// Filter is the active category and free-text search applied to a catalog.
type Filter struct {
	Category   string
	SearchTerm string
}

// Match reports whether ch passes the filter: exact category match (unless
// the category is AllCategories or empty) and a case-insensitive substring
// match of the search term on the channel name (unless the term is empty).
func (f Filter) Match(ch channel.Channel) bool {
	if f.Category != "" && f.Category != AllCategories && ch.Category() != f.Category {
		return false
	}
	if f.SearchTerm == "" {
		return true
	}
	return strings.Contains(strings.ToLower(ch.Name()), strings.ToLower(f.SearchTerm))
}

// Apply returns the subsequence of channels matching the filter, in order.
func (f Filter) Apply(channels []channel.Channel) []channel.Channel {
	view := make([]channel.Channel, 0, len(channels))
	for _, ch := range channels {
		if f.Match(ch) {
			view = append(view, ch)
		}
	}
	return view
}

// Index owns the current catalog and the filter the user is applying to it.
// It is safe for concurrent use.
type Index struct {
	mu      sync.RWMutex
	catalog Catalog
	filter  Filter
}

// NewIndex returns an Index holding an empty catalog and no filter.
func NewIndex() *Index {
	return &Index{
		filter: Filter{Category: AllCategories},
	}
}

// Replace swaps in a newly loaded catalog. The category filter is reset to
// AllCategories because the old categories no longer apply; the search term
// is kept.
func (i *Index) Replace(c Catalog) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.catalog = c
	i.filter.Category = AllCategories
}

// Catalog returns the current catalog.
func (i *Index) Catalog() Catalog {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.catalog
}

// SetCategory sets the category filter. An empty category means
// AllCategories.
func (i *Index) SetCategory(category string) {
	if category == "" {
		category = AllCategories
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	i.filter.Category = category
}

// SetSearchTerm sets the free-text search. An empty term matches every
// channel.
func (i *Index) SetSearchTerm(term string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.filter.SearchTerm = term
}

// Filter returns the active filter.
func (i *Index) Filter() Filter {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.filter
}

// CurrentView returns the channels of the current catalog that match the
// active filter, in catalog order. It is recomputed on every call.
func (i *Index) CurrentView() []channel.Channel {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.filter.Apply(i.catalog.channels)
}
