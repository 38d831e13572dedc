package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
//
// It is built once at startup and passed by reference to the clients that need it.
type Config struct {
	SetlistFM SetlistFMConfig `toml:"setlistfm"`
	YouTube   YouTubeConfig   `toml:"youtube"`
	Database  DatabaseConfig  `toml:"database"`
	Sync      SyncConfig      `toml:"sync"`
}

// SetlistFMConfig contains setlist.fm API credentials and request pacing.
type SetlistFMConfig struct {
	APIKey         string `toml:"api_key"`
	Language       string `toml:"language"`
	BaseURL        string `toml:"base_url"`
	RequestDelayMS int    `toml:"request_delay_ms"`
	MaxAttempts    int    `toml:"max_attempts"`
	MaxPages       int    `toml:"max_pages"`
}

// YouTubeConfig contains YouTube Music OAuth materials and the ytmusicapi proxy location.
type YouTubeConfig struct {
	ProxyURL     string `toml:"proxy_url"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	OAuthFile    string `toml:"oauth_file"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// SyncConfig contains defaults for the sync pipeline.
type SyncConfig struct {
	Tracks     int     `toml:"tracks"`
	SearchRate float64 `toml:"search_rate"`
	Public     bool    `toml:"public"`
}

// envOverrides maps environment variables onto config fields. Non-empty values win over the file.
var envOverrides = []struct {
	key string
	dst func(*Config) *string
}{
	{"SETLISTFM_API_KEY", func(c *Config) *string { return &c.SetlistFM.APIKey }},
	{"SETLISTFM_ACCEPT_LANGUAGE", func(c *Config) *string { return &c.SetlistFM.Language }},
	{"YTM_CLIENT_ID", func(c *Config) *string { return &c.YouTube.ClientID }},
	{"YTM_CLIENT_SECRET", func(c *Config) *string { return &c.YouTube.ClientSecret }},
	{"YTM_OAUTH_FILE", func(c *Config) *string { return &c.YouTube.OAuthFile }},
	{"YTM_PROXY_URL", func(c *Config) *string { return &c.YouTube.ProxyURL }},
	{"SETLISTSYNC_DB", func(c *Config) *string { return &c.Database.Path }},
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the values of [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// ResolveConfig layers the embedded defaults, the TOML file at path (when it exists),
// a .env file in the working directory (when it exists), and the process environment.
func ResolveConfig(path string) (*Config, error) {
	config := DefaultConfig()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if config, err = LoadConfig(path); err != nil {
				return nil, err
			}
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	config.ApplyEnv(os.LookupEnv)
	return config, nil
}

// ApplyEnv copies non-empty environment values onto the config.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	for _, o := range envOverrides {
		if v, ok := lookup(o.key); ok && v != "" {
			*o.dst(c) = v
		}
	}
}

// ValidateSetlistFM reports missing setlist.fm credentials.
func (c *Config) ValidateSetlistFM() error {
	if c.SetlistFM.APIKey == "" {
		return fmt.Errorf("%w: SETLISTFM_API_KEY is required (get one at https://api.setlist.fm/docs/1.0/index.html)", ErrMissingCredentials)
	}
	return nil
}

// ValidateYouTube reports missing YouTube Music OAuth materials.
func (c *Config) ValidateYouTube() error {
	if c.YouTube.ClientID == "" || c.YouTube.ClientSecret == "" {
		return fmt.Errorf("%w: YTM_CLIENT_ID and YTM_CLIENT_SECRET are required", ErrMissingCredentials)
	}
	if c.YouTube.OAuthFile == "" {
		return fmt.Errorf("%w: youtube.oauth_file is not set", ErrMissingCredentials)
	}
	if _, err := os.Stat(c.YouTube.OAuthFile); err != nil {
		return fmt.Errorf("%w: oauth file not found at %s", ErrMissingCredentials, c.YouTube.OAuthFile)
	}
	return nil
}

// RequestDelay returns the setlist.fm post-request delay as a [time.Duration].
func (c *Config) RequestDelay() time.Duration {
	return time.Duration(c.SetlistFM.RequestDelayMS) * time.Millisecond
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
