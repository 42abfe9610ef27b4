// Package config loads application configuration from file and
// environment, and owns global logger initialisation.
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
	Severity SeverityConfig `yaml:"severity" mapstructure:"severity"`
	Scope    ScopeConfig    `yaml:"scope" mapstructure:"scope"`
	Zones    ZonesConfig    `yaml:"zones" mapstructure:"zones"`
	Summary  SummaryConfig  `yaml:"summary" mapstructure:"summary"`
	Geo      GeoConfig      `yaml:"geo" mapstructure:"geo"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// SeverityRule maps an offence keyword to its severity weight. Rules are
// an ordered list, not a map: resolution scans in declaration order and
// the first containing keyword wins.
type SeverityRule struct {
	Keyword string `yaml:"keyword" mapstructure:"keyword"`
	Weight  int    `yaml:"weight" mapstructure:"weight"`
}

// SeverityConfig configures offence-to-weight resolution.
type SeverityConfig struct {
	Rules         []SeverityRule `yaml:"rules" mapstructure:"rules"`
	DefaultWeight int            `yaml:"default_weight" mapstructure:"default_weight"`
}

// ScopeConfig configures the governed-geography row filter. A row is in
// scope when its region name contains any token (case-insensitive). An
// empty token list keeps every region.
type ScopeConfig struct {
	RegionTokens []string `yaml:"region_tokens" mapstructure:"region_tokens"`
}

// ZonesConfig holds the default percentile thresholds for tier
// classification. Both are user-adjustable per invocation.
type ZonesConfig struct {
	DangerPercentile  float64 `yaml:"danger_percentile" mapstructure:"danger_percentile"`
	WarningPercentile float64 `yaml:"warning_percentile" mapstructure:"warning_percentile"`
}

// SummaryConfig configures summary output sizes.
type SummaryConfig struct {
	TopN int `yaml:"top_n" mapstructure:"top_n"`
}

// GeoConfig points at presentation-only geographic data files.
type GeoConfig struct {
	CentroidsFile string `yaml:"centroids_file" mapstructure:"centroids_file"`
	StationsFile  string `yaml:"stations_file" mapstructure:"stations_file"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port          int     `yaml:"port" mapstructure:"port"`
	RatePerSecond float64 `yaml:"rate_per_second" mapstructure:"rate_per_second"`
	RateBurst     int     `yaml:"rate_burst" mapstructure:"rate_burst"`
	MaxUploadMB   int     `yaml:"max_upload_mb" mapstructure:"max_upload_mb"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// DefaultSeverityRules is the reference weight table: 1 (nuisance) to 5
// (fatal). Declaration order is the resolution order.
func DefaultSeverityRules() []SeverityRule {
	return []SeverityRule{
		{Keyword: "homicide", Weight: 5},
		{Keyword: "murder", Weight: 5},
		{Keyword: "manslaughter", Weight: 5},
		{Keyword: "killed", Weight: 5},
		{Keyword: "assault", Weight: 4},
		{Keyword: "robbery", Weight: 4},
		{Keyword: "weapons", Weight: 4},
		{Keyword: "firearm", Weight: 4},
		{Keyword: "rape", Weight: 4},
		{Keyword: "sexual", Weight: 4},
		{Keyword: "kidnap", Weight: 4},
		{Keyword: "burglary", Weight: 3},
		{Keyword: "aggravated", Weight: 3},
		{Keyword: "arson", Weight: 3},
		{Keyword: "theft", Weight: 2},
		{Keyword: "fraud", Weight: 2},
		{Keyword: "deception", Weight: 2},
		{Keyword: "damage", Weight: 2},
		{Keyword: "drugs", Weight: 2},
		{Keyword: "public order", Weight: 1},
		{Keyword: "minor", Weight: 1},
		{Keyword: "neglect", Weight: 1},
		{Keyword: "breach", Weight: 1},
	}
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("RISKMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("severity.default_weight", 2)
	v.SetDefault("scope.region_tokens", []string{})
	v.SetDefault("zones.danger_percentile", 80.0)
	v.SetDefault("zones.warning_percentile", 50.0)
	v.SetDefault("summary.top_n", 10)
	v.SetDefault("geo.centroids_file", "")
	v.SetDefault("geo.stations_file", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_per_second", 20.0)
	v.SetDefault("server.rate_burst", 40)
	v.SetDefault("server.max_upload_mb", 64)
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

	if len(cfg.Severity.Rules) == 0 {
		cfg.Severity.Rules = DefaultSeverityRules()
	}

	return &cfg, nil
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
