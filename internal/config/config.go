package config

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Laisky/errors/v2"
	"github.com/pelletier/go-toml/v2"

	"hubgrip/internal/domain"
	"hubgrip/internal/eventbus"
	"hubgrip/internal/log"
)

var logger = log.ForService("config")

// DefaultAPIURL is the public hub instance
const DefaultAPIURL = "https://artifacthub.io"

// Config represents the application configuration
type Config struct {
	Version           int            `toml:"version"`
	APIURL            string         `toml:"api_url"`
	Timeout           Duration       `toml:"timeout"`
	MaxRetries        int            `toml:"max_retries"`
	RequestsPerSecond float64        `toml:"requests_per_second"`
	CacheSize         int            `toml:"cache_size"`
	CacheTTL          Duration       `toml:"cache_ttl"`
	Search            SearchSettings `toml:"search"`
	UISettings        UISettings     `toml:"ui"`
	Debug             bool           `toml:"debug"`
}

// SearchSettings holds search preferences
type SearchSettings struct {
	Limit int `toml:"limit"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowFacets       bool `toml:"show_facets"`
	ShowDescriptions bool `toml:"show_descriptions"`
}

// Duration is a time.Duration that reads and writes as "30s"
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
	mu       sync.Mutex
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "hubgrip", "config.toml")
}

// NewConfigService creates a config service for the default path
func NewConfigService() ConfigService {
	return &configService{filePath: DefaultPath()}
}

// NewConfigServiceWithBus creates a config service with event bus support.
// An empty path selects DefaultPath.
func NewConfigServiceWithBus(bus eventbus.EventBus, path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{bus: bus, filePath: path}
}

func (cs *configService) Path() string { return cs.filePath }

// Load loads the configuration from file, falling back to defaults when
// the file does not exist yet
func (cs *configService) Load() (*Config, error) {
	var cfg *Config
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		cfg, err = cs.LoadFromPath(cs.filePath)
		if err != nil {
			return nil, err
		}
	}

	if cs.bus != nil {
		cs.bus.Publish(LoadedEvent(cfg))
	}

	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config file")
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config `%s`", path)
	}
	cfg.normalize()

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "create config directory")
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "write config file")
	}

	return nil
}

// normalize replaces out-of-range values with defaults
func (c *Config) normalize() {
	d := DefaultConfig()
	if c.APIURL == "" {
		c.APIURL = d.APIURL
	}
	if c.Timeout.Duration <= 0 {
		c.Timeout = d.Timeout
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = d.RequestsPerSecond
	}
	if c.CacheSize <= 0 {
		c.CacheSize = d.CacheSize
	}
	if c.CacheTTL.Duration <= 0 {
		c.CacheTTL = d.CacheTTL
	}
	if !domain.ValidLimit(c.Search.Limit) {
		if c.Search.Limit != 0 {
			logger.Warnf("ignoring unsupported search limit %d", c.Search.Limit)
		}
		c.Search.Limit = domain.DefaultLimit
	}
}

// LoadedEvent builds the event announcing cfg
func LoadedEvent(cfg *Config) eventbus.ConfigLoadedEvent {
	return eventbus.ConfigLoadedEvent{
		APIURL:      cfg.APIURL,
		SearchLimit: cfg.Search.Limit,
		Debug:       cfg.Debug,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:           1,
		APIURL:            DefaultAPIURL,
		Timeout:           Duration{15 * time.Second},
		MaxRetries:        2,
		RequestsPerSecond: 5,
		CacheSize:         128,
		CacheTTL:          Duration{5 * time.Minute},
		Search: SearchSettings{
			Limit: domain.DefaultLimit,
		},
		UISettings: UISettings{
			ShowFacets:       true,
			ShowDescriptions: true,
		},
	}
}
