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
	Apollo     ApolloConfig     `yaml:"apollo" mapstructure:"apollo"`
	Perplexity PerplexityConfig `yaml:"perplexity" mapstructure:"perplexity"`
	Enrich     EnrichConfig     `yaml:"enrich" mapstructure:"enrich"`
	Orgs       OrgsConfig       `yaml:"orgs" mapstructure:"orgs"`
	Export     ExportConfig     `yaml:"export" mapstructure:"export"`
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// ApolloConfig holds Apollo API settings.
type ApolloConfig struct {
	Key       string  `yaml:"key" mapstructure:"key"`
	BaseURL   string  `yaml:"base_url" mapstructure:"base_url"`
	RateLimit float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// PerplexityConfig holds Perplexity API settings.
type PerplexityConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	Model   string `yaml:"model" mapstructure:"model"`
}

// EnrichConfig configures the contact enrichment run.
type EnrichConfig struct {
	DelayMs    int  `yaml:"delay_ms" mapstructure:"delay_ms"`
	StrictRole bool `yaml:"strict_role" mapstructure:"strict_role"`
}

// OrgsConfig configures the organization search run.
type OrgsConfig struct {
	DelayMs int `yaml:"delay_ms" mapstructure:"delay_ms"`
}

// ExportConfig configures export output.
type ExportConfig struct {
	MaxPeoplePerCompany int `yaml:"max_people_per_company" mapstructure:"max_people_per_company"`
}

// StoreConfig configures the local run ledger.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
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
	v.SetEnvPrefix("LEADGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("apollo.base_url", "https://api.apollo.io")
	v.SetDefault("apollo.rate_limit", 2.0)
	v.SetDefault("perplexity.base_url", "https://api.perplexity.ai")
	v.SetDefault("perplexity.model", "sonar-pro")
	v.SetDefault("enrich.delay_ms", 2000)
	v.SetDefault("enrich.strict_role", true)
	v.SetDefault("orgs.delay_ms", 500)
	v.SetDefault("export.max_people_per_company", 4)
	v.SetDefault("store.path", "leadgen.db")
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

// Validate checks that the configuration is complete for the given command
// mode. Modes: "enrich", "orgs", "research", "export".
func (c *Config) Validate(mode string) error {
	var missing []string

	switch mode {
	case "enrich", "orgs":
		if c.Apollo.Key == "" {
			missing = append(missing, "apollo.key is required")
		}
	case "research":
		if c.Perplexity.Key == "" {
			missing = append(missing, "perplexity.key is required")
		}
	case "export":
		if c.Export.MaxPeoplePerCompany < 1 {
			missing = append(missing, "export.max_people_per_company must be >= 1")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if mode == "enrich" && c.Enrich.DelayMs < 0 {
		missing = append(missing, "enrich.delay_ms must be >= 0")
	}
	if mode == "orgs" && c.Orgs.DelayMs < 0 {
		missing = append(missing, "orgs.delay_ms must be >= 0")
	}

	if len(missing) > 0 {
		return eris.New("config: " + strings.Join(missing, "; "))
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
