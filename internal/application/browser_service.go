package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/alorle/iptv-browser/internal/catalog"
	"github.com/alorle/iptv-browser/internal/channel"
	"github.com/alorle/iptv-browser/internal/grid"
	"github.com/alorle/iptv-browser/internal/port/driven"
	"github.com/alorle/iptv-browser/internal/preferences"
	"github.com/alorle/iptv-browser/metrics"
)

// MsgLoadFailed is shown when a source cannot be fetched or decoded.
const MsgLoadFailed = "Failed to load playlist. Please check your connection and try another country."

const msgLoadingCountry = "Loading channels for %s..."

var (
	// ErrUnknownCountry indicates the country code is not in the selector.
	ErrUnknownCountry = errors.New("unknown country")
)

// Country is one entry of the country selector.
type Country struct {
	Code string
	Name string
}

// BrowserStatus is a snapshot of the browser state.
type BrowserStatus struct {
	Mode       string
	Country    string
	Loading    bool
	Message    string
	Error      string
	Channels   int
	Category   string
	SearchTerm string
}

// BrowserService owns the catalog index and coordinates source loads,
// filter changes and the user-visible status message.
type BrowserService struct {
	loader         ChannelLoader
	prefs          driven.PreferencesRepository
	countries      []Country
	defaultCountry string
	index          *catalog.Index
	logger         *slog.Logger

	mu      sync.Mutex
	country string
	loading bool
	message string
	lastErr error
	loadSeq uint64
}

// NewBrowserService creates a browser service with an empty catalog.
// defaultCountry must be one of countries.
func NewBrowserService(loader ChannelLoader, prefs driven.PreferencesRepository, countries []Country, defaultCountry string, logger *slog.Logger) *BrowserService {
	return &BrowserService{
		loader:         loader,
		prefs:          prefs,
		countries:      countries,
		defaultCountry: defaultCountry,
		index:          catalog.NewIndex(),
		logger:         logger,
		country:        defaultCountry,
	}
}

// Countries returns the country selector entries.
func (s *BrowserService) Countries() []Country {
	out := make([]Country, len(s.countries))
	copy(out, s.countries)
	return out
}

func (s *BrowserService) lookupCountry(code string) (Country, bool) {
	for _, c := range s.countries {
		if c.Code == code {
			return c, true
		}
	}
	return Country{}, false
}

// Restore reloads the last saved selection, falling back to the default
// country when nothing usable was saved.
func (s *BrowserService) Restore(ctx context.Context) BrowserStatus {
	p, err := s.prefs.Load(ctx)
	if err != nil && !errors.Is(err, preferences.ErrNotFound) {
		s.logger.Warn("failed to load preferences", "error", err)
	}

	country := p.Country
	if _, ok := s.lookupCountry(country); !ok {
		country = s.defaultCountry
	}

	// The filter is applied before the load so a restored search term is
	// kept by Replace. The category is reset by every load.
	s.index.SetSearchTerm(p.SearchTerm)

	status, err := s.LoadCountry(ctx, country)
	if err != nil {
		return status
	}

	if p.Category != "" && s.index.Catalog().HasCategory(p.Category) {
		s.index.SetCategory(p.Category)
		s.mu.Lock()
		s.savePreferencesLocked(ctx)
		s.mu.Unlock()
	}

	s.logger.Info("selection restored", "country", country, "category", p.Category, "search", p.SearchTerm)
	return s.Status()
}

// LoadCountry replaces the catalog with the channels of a country, or of
// every country for "all". Load, decode and empty-result failures leave an
// empty catalog and a status message; they are not returned. The only
// error is ErrUnknownCountry.
//
// The fetch is not bound to ctx's cancellation. When loads overlap only
// the most recent one is applied.
func (s *BrowserService) LoadCountry(ctx context.Context, code string) (BrowserStatus, error) {
	country, ok := s.lookupCountry(code)
	if !ok {
		return s.Status(), fmt.Errorf("%w: %q", ErrUnknownCountry, code)
	}

	s.mu.Lock()
	s.loadSeq++
	seq := s.loadSeq
	s.country = country.Code
	s.loading = true
	s.message = fmt.Sprintf(msgLoadingCountry, country.Name)
	s.mu.Unlock()

	logger := s.logger.With("mode", s.loader.Mode(), "country", country.Code)
	logger.Info("loading channels")

	start := time.Now()
	channels, err := s.loader.Load(context.WithoutCancel(ctx), country.Code)

	var cat catalog.Catalog
	if err == nil {
		cat = catalog.New(country.Code, channels)
		if cat.Len() == 0 {
			err = &catalog.EmptyResultError{Source: country.Code}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.loadSeq {
		logger.Debug("discarding superseded load")
		return s.statusLocked(), nil
	}

	s.loading = false
	metrics.RecordCatalogLoad(s.loader.Mode(), loadResult(err), time.Since(start).Seconds())

	if err != nil {
		cat = catalog.Empty(country.Code)
		s.message = loadMessage(err)
		s.lastErr = err
		logger.Warn("channel load failed", "error", err)
	} else {
		s.message = ""
		s.lastErr = nil
		logger.Info("channels loaded", "channels", cat.Len(), "categories", len(cat.Categories()))
	}

	s.index.Replace(cat)
	metrics.SetCatalogChannels(cat.Len())
	s.savePreferencesLocked(ctx)

	return s.statusLocked(), nil
}

// SetFilter sets the category and search term of the view. An empty
// category selects all categories.
func (s *BrowserService) SetFilter(ctx context.Context, category, searchTerm string) catalog.Filter {
	s.index.SetCategory(category)
	s.index.SetSearchTerm(searchTerm)

	s.mu.Lock()
	s.savePreferencesLocked(ctx)
	s.mu.Unlock()

	return s.index.Filter()
}

// Categories returns the categories of the current catalog, alphabetically.
func (s *BrowserService) Categories() []string {
	return s.index.Catalog().Categories()
}

// View returns the channels of the current catalog matching the filter.
func (s *BrowserService) View() []channel.Channel {
	metrics.RecordViewQuery()
	return s.index.CurrentView()
}

// Grid returns the card projection of the current view.
func (s *BrowserService) Grid() grid.Grid {
	return grid.Project(s.View())
}

// Status returns a snapshot of the browser state.
func (s *BrowserService) Status() BrowserStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

func (s *BrowserService) statusLocked() BrowserStatus {
	f := s.index.Filter()
	st := BrowserStatus{
		Mode:       s.loader.Mode(),
		Country:    s.country,
		Loading:    s.loading,
		Message:    s.message,
		Channels:   s.index.Catalog().Len(),
		Category:   f.Category,
		SearchTerm: f.SearchTerm,
	}
	if s.lastErr != nil {
		st.Error = s.lastErr.Error()
	}
	return st
}

// savePreferencesLocked persists the current selection. Failures are logged.
func (s *BrowserService) savePreferencesLocked(ctx context.Context) {
	f := s.index.Filter()
	p := preferences.Preferences{
		Country:    s.country,
		Category:   f.Category,
		SearchTerm: f.SearchTerm,
	}
	if err := s.prefs.Save(context.WithoutCancel(ctx), p); err != nil {
		s.logger.Warn("failed to save preferences", "error", err)
	}
}

// loadMessage maps a load failure to its user-facing message.
func loadMessage(err error) string {
	var empty *catalog.EmptyResultError
	if errors.As(err, &empty) {
		return grid.NoResults
	}
	return MsgLoadFailed
}

func loadResult(err error) string {
	var (
		loadErr   *catalog.LoadError
		decodeErr *catalog.DecodeError
		emptyErr  *catalog.EmptyResultError
	)
	switch {
	case err == nil:
		return metrics.LoadResultOK
	case errors.As(err, &emptyErr):
		return metrics.LoadResultEmpty
	case errors.As(err, &decodeErr):
		return metrics.LoadResultDecodeErr
	case errors.As(err, &loadErr):
		return metrics.LoadResultLoadError
	default:
		return metrics.LoadResultOtherError
	}
}
