package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alorle/iptv-browser/config"
	"github.com/alorle/iptv-browser/internal/adapter/driven"
	"github.com/alorle/iptv-browser/internal/adapter/driver"
	"github.com/alorle/iptv-browser/internal/application"
	"github.com/alorle/iptv-browser/internal/playback"
	"github.com/alorle/iptv-browser/ui"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.etcd.io/bbolt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Create structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	logger.Info("starting iptv-browser", "config", cfg)

	// Open BoltDB
	db, err := bbolt.Open(cfg.Database.Path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("error closing database: %v", err)
		}
	}()

	// Create driven adapters (repositories and external services)
	prefsRepo, err := driven.NewPreferencesBoltDBRepository(db)
	if err != nil {
		log.Fatalf("failed to create preferences repository: %v", err)
	}

	httpClient := &http.Client{Timeout: cfg.Source.Timeout}

	var loader application.ChannelLoader
	switch cfg.Source.Mode {
	case config.SourceModeJSON:
		loader = application.NewJSONLoader(driven.NewCatalogHTTPSource(cfg.Source.ChannelsURL, cfg.Source.StreamsURL, httpClient))
	default:
		loader = application.NewM3ULoader(driven.NewPlaylistHTTPSource(cfg.Source.PlaylistBaseURL, httpClient))
	}

	clientFactory := driven.NewHLSClientFactory(httpClient, logger)

	// Create application services
	countries := make([]application.Country, 0, len(cfg.Countries))
	for _, c := range cfg.Countries {
		countries = append(countries, application.Country{Code: c.Code, Name: c.Name})
	}
	browserService := application.NewBrowserService(loader, prefsRepo, countries, cfg.DefaultCountry, logger)
	playbackController := application.NewPlaybackController(clientFactory, playback.NewDisplay(false), logger)
	healthService := application.NewHealthService(prefsRepo, browserService)

	tmpl, err := ui.Templates()
	if err != nil {
		log.Fatalf("failed to parse templates: %v", err)
	}

	// Create HTTP handlers
	browserHandler := driver.NewBrowserHTTPHandler(browserService)
	playerHandler := driver.NewPlayerHTTPHandler(playbackController)
	playlistHandler := driver.NewPlaylistHTTPHandler(browserService)
	healthHandler := driver.NewHealthHTTPHandler(healthService)
	pageHandler := driver.NewPageHTTPHandler(browserService, playbackController, tmpl, logger)

	// Register API routes
	apiMux := http.NewServeMux()
	apiMux.Handle("/countries", browserHandler)
	apiMux.Handle("/categories", browserHandler)
	apiMux.Handle("/channels", browserHandler)
	apiMux.Handle("/status", browserHandler)
	apiMux.Handle("/catalog", browserHandler)
	apiMux.Handle("/filter", browserHandler)
	apiMux.Handle("/player", playerHandler)
	apiMux.Handle("/player/", playerHandler)
	apiMux.Handle("/health", healthHandler)

	// Root router: API under /api/, playlist export and metrics at root, page for everything else
	rootMux := http.NewServeMux()
	rootMux.Handle("/api/", http.StripPrefix("/api", apiMux))
	rootMux.Handle("/playlist.m3u", playlistHandler)
	rootMux.Handle("/static/", http.StripPrefix("/static", driver.NewStaticHandler(ui.Static())))
	rootMux.Handle("/metrics", promhttp.Handler())
	rootMux.Handle("/", pageHandler)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      rootMux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Source.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Load the saved selection in the background so the page is served
	// with its loading message meanwhile.
	go browserService.Restore(context.Background())

	// Start server in a goroutine
	go func() {
		logger.Info("http server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received, shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	playbackController.Stop()

	logger.Info("server stopped")
}
