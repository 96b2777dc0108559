package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Source modes
const (
	SourceModeM3U  = "m3u"
	SourceModeJSON = "json"
)

// AllCountries selects the combined playlist.
const AllCountries = "all"

// Country is one entry of the country selector.
type Country struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

// Config holds the complete application configuration
type Config struct {
	// HTTP server settings
	HTTP struct {
		Address string `yaml:"address"`
		Port    string `yaml:"port"`
	} `yaml:"http"`

	// Playlist source settings
	Source struct {
		Mode            string        `yaml:"mode"`
		PlaylistBaseURL string        `yaml:"playlist_base_url"`
		ChannelsURL     string        `yaml:"channels_url"`
		StreamsURL      string        `yaml:"streams_url"`
		Timeout         time.Duration `yaml:"timeout"`
	} `yaml:"source"`

	// Database settings
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	// Country selector
	Countries      []Country `yaml:"countries"`
	DefaultCountry string    `yaml:"default_country"`

	// Logging settings
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Validate performs validation on the configuration
func (c *Config) Validate() error {
	var errors []string

	// Validate HTTP settings
	if c.HTTP.Port == "" {
		errors = append(errors, "HTTP port is required")
	}

	// Validate source settings
	switch c.Source.Mode {
	case SourceModeM3U:
		if c.Source.PlaylistBaseURL == "" {
			errors = append(errors, "Playlist base URL is required in m3u mode")
		}
	case SourceModeJSON:
		if c.Source.ChannelsURL == "" {
			errors = append(errors, "Channels URL is required in json mode")
		}
		if c.Source.StreamsURL == "" {
			errors = append(errors, "Streams URL is required in json mode")
		}
	default:
		errors = append(errors, fmt.Sprintf("Source mode must be %q or %q, got %q", SourceModeM3U, SourceModeJSON, c.Source.Mode))
	}
	if c.Source.Timeout <= 0 {
		errors = append(errors, "Source timeout must be positive")
	}

	// Validate database settings
	if c.Database.Path == "" {
		errors = append(errors, "Database path is required")
	}

	// Validate countries
	if len(c.Countries) == 0 {
		errors = append(errors, "At least one country is required")
	}
	seen := make(map[string]bool)
	for i, country := range c.Countries {
		if country.Code == "" {
			errors = append(errors, fmt.Sprintf("Country %d: code is required", i))
			continue
		}
		if country.Name == "" {
			errors = append(errors, fmt.Sprintf("Country %d (%s): name is required", i, country.Code))
		}
		if seen[country.Code] {
			errors = append(errors, fmt.Sprintf("Country %d (%s): duplicate code", i, country.Code))
		}
		seen[country.Code] = true
	}
	if !seen[c.DefaultCountry] {
		errors = append(errors, fmt.Sprintf("Default country %q is not in the country list", c.DefaultCountry))
	}

	// Validate logging settings
	if _, ok := logLevels[strings.ToUpper(c.Log.Level)]; !ok {
		errors = append(errors, fmt.Sprintf("Log level must be one of DEBUG, INFO, WARN, ERROR, got %q", c.Log.Level))
	}

	if c.ShutdownTimeout <= 0 {
		errors = append(errors, "Shutdown timeout must be positive")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

var logLevels = map[string]slog.Level{
	"DEBUG": slog.LevelDebug,
	"INFO":  slog.LevelInfo,
	"WARN":  slog.LevelWarn,
	"ERROR": slog.LevelError,
}

// SlogLevel returns the configured log level, INFO if it is not recognized.
func (c *Config) SlogLevel() slog.Level {
	if level, ok := logLevels[strings.ToUpper(c.Log.Level)]; ok {
		return level
	}
	return slog.LevelInfo
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return c.HTTP.Address + ":" + c.HTTP.Port
}

// Default returns a Config with sensible default values
func Default() *Config {
	cfg := &Config{}

	// HTTP defaults
	cfg.HTTP.Address = ""
	cfg.HTTP.Port = "8080"

	// Source defaults
	cfg.Source.Mode = SourceModeM3U
	cfg.Source.PlaylistBaseURL = "https://iptv-org.github.io/iptv"
	cfg.Source.ChannelsURL = "https://iptv-org.github.io/api/channels.json"
	cfg.Source.StreamsURL = "https://iptv-org.github.io/api/streams.json"
	cfg.Source.Timeout = 30 * time.Second

	// Database defaults
	cfg.Database.Path = "iptv-browser.db"

	// Country selector defaults
	cfg.Countries = []Country{
		{Code: "pk", Name: "Pakistan"},
		{Code: "in", Name: "India"},
		{Code: "us", Name: "USA"},
		{Code: "gb", Name: "UK"},
		{Code: AllCountries, Name: "All Channels"},
	}
	cfg.DefaultCountry = "pk"

	cfg.Log.Level = "INFO"
	cfg.ShutdownTimeout = 10 * time.Second

	return cfg
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Load loads configuration from a file (if provided) and applies environment variable overrides
func Load() (*Config, error) {
	configPath := os.Getenv("CONFIG_FILE")
	if configPath == "" {
		configPath = "config.yaml"
	}

	var cfg *Config

	// Try to load from file if it exists
	if _, err := os.Stat(configPath); err == nil {
		cfg, err = LoadFromFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		// File doesn't exist, use defaults
		cfg = Default()
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration
func applyEnvOverrides(cfg *Config) error {
	parser := &envParser{}

	// HTTP settings
	parser.parseString("HTTP_ADDRESS", &cfg.HTTP.Address)
	parser.parseString("HTTP_PORT", &cfg.HTTP.Port)

	// Source settings
	parser.parseEnum("SOURCE_MODE", &cfg.Source.Mode, map[string]bool{
		SourceModeM3U:  true,
		SourceModeJSON: true,
	})
	parser.parseString("PLAYLIST_BASE_URL", &cfg.Source.PlaylistBaseURL)
	parser.parseString("CHANNELS_URL", &cfg.Source.ChannelsURL)
	parser.parseString("STREAMS_URL", &cfg.Source.StreamsURL)
	parser.parseDuration("SOURCE_TIMEOUT", &cfg.Source.Timeout)

	// Database settings
	parser.parseString("DB_PATH", &cfg.Database.Path)

	// Country selector
	parser.parseCountries("COUNTRIES", &cfg.Countries)
	parser.parseString("DEFAULT_COUNTRY", &cfg.DefaultCountry)

	// Logging settings
	parser.parseEnum("LOG_LEVEL", &cfg.Log.Level, map[string]bool{
		"DEBUG": true,
		"INFO":  true,
		"WARN":  true,
		"ERROR": true,
	})

	parser.parseDuration("SHUTDOWN_TIMEOUT", &cfg.ShutdownTimeout)

	return parser.err()
}

// LogValue implements slog.LogValuer so the configuration can be logged at startup.
func (c *Config) LogValue() slog.Value {
	codes := make([]string, 0, len(c.Countries))
	for _, country := range c.Countries {
		codes = append(codes, country.Code)
	}

	return slog.GroupValue(
		slog.String("addr", c.Addr()),
		slog.String("source_mode", c.Source.Mode),
		slog.String("playlist_base_url", c.Source.PlaylistBaseURL),
		slog.String("channels_url", c.Source.ChannelsURL),
		slog.String("streams_url", c.Source.StreamsURL),
		slog.Duration("source_timeout", c.Source.Timeout),
		slog.String("db_path", c.Database.Path),
		slog.String("countries", strings.Join(codes, ",")),
		slog.String("default_country", c.DefaultCountry),
		slog.String("log_level", c.Log.Level),
		slog.Duration("shutdown_timeout", c.ShutdownTimeout),
	)
}
