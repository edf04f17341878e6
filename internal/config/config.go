// Package config loads application configuration from file and environment.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Region    RegionConfig    `yaml:"region" mapstructure:"region"`
	Discovery DiscoveryConfig `yaml:"discovery" mapstructure:"discovery"`
	Places    PlacesConfig    `yaml:"places" mapstructure:"places"`
	License   LicenseConfig   `yaml:"license" mapstructure:"license"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Publish   PublishConfig   `yaml:"publish" mapstructure:"publish"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// RegionConfig describes the target metropolitan region.
type RegionConfig struct {
	Name         string   `yaml:"name" mapstructure:"name"`
	Abbreviation string   `yaml:"abbreviation" mapstructure:"abbreviation"`
	City         string   `yaml:"city" mapstructure:"city"`
	MetroArea    string   `yaml:"metro_area" mapstructure:"metro_area"`
	Locations    []string `yaml:"locations" mapstructure:"locations"`
}

// DiscoveryConfig configures the discovery run loop.
type DiscoveryConfig struct {
	MaxAPICalls  int    `yaml:"max_api_calls" mapstructure:"max_api_calls"`
	PageSize     int    `yaml:"page_size" mapstructure:"page_size"`
	DelayMS      int    `yaml:"delay_ms" mapstructure:"delay_ms"`
	KeywordsFile string `yaml:"keywords_file" mapstructure:"keywords_file"`
}

// PlacesConfig holds Places API credentials and settings.
type PlacesConfig struct {
	Key      string `yaml:"key" mapstructure:"key"`
	BaseURL  string `yaml:"base_url" mapstructure:"base_url"`
	Language string `yaml:"language" mapstructure:"language"`
}

// LicenseConfig configures license verification against the registry snapshot.
type LicenseConfig struct {
	SnapshotPath string `yaml:"snapshot_path" mapstructure:"snapshot_path"`
	DelayMS      int    `yaml:"delay_ms" mapstructure:"delay_ms"`
}

// StoreConfig configures the persistent tradie store.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// PublishConfig configures static site output.
type PublishConfig struct {
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`
}

// ServerConfig configures the preview server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("TRADIES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("region.name", "Western Australia")
	v.SetDefault("region.abbreviation", "WA")
	v.SetDefault("region.city", "Perth")
	v.SetDefault("region.metro_area", "Perth Metro")
	v.SetDefault("region.locations", []string{
		"Perth WA",
		"Fremantle WA",
		"Joondalup WA",
		"Rockingham WA",
		"Midland WA",
		"Armadale WA",
	})
	v.SetDefault("discovery.max_api_calls", 40)
	v.SetDefault("discovery.page_size", 10)
	v.SetDefault("discovery.delay_ms", 2000)
	v.SetDefault("discovery.keywords_file", "")
	v.SetDefault("places.key", "")
	v.SetDefault("places.base_url", "https://places.googleapis.com/v1")
	v.SetDefault("places.language", "en-AU")
	v.SetDefault("license.snapshot_path", "registry.yaml")
	v.SetDefault("license.delay_ms", 500)
	v.SetDefault("store.path", "tradies.json")
	v.SetDefault("publish.output_dir", "site")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that the configuration required by a command is present.
func (c *Config) Validate(scope string) error {
	switch scope {
	case "discover":
		if c.Places.Key == "" {
			return eris.New("config: places.key is required (set TRADIES_PLACES_KEY)")
		}
		if len(c.Region.Locations) == 0 {
			return eris.New("config: region.locations must not be empty")
		}
	case "verify":
		if c.License.SnapshotPath == "" {
			return eris.New("config: license.snapshot_path is required")
		}
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
