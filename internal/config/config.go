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
	Search    SearchConfig    `yaml:"search" mapstructure:"search"`
	Scrape    ScrapeConfig    `yaml:"scrape" mapstructure:"scrape"`
	Relevance RelevanceConfig `yaml:"relevance" mapstructure:"relevance"`
	Price     PriceConfig     `yaml:"price" mapstructure:"price"`
	UPC       UPCConfig       `yaml:"upc" mapstructure:"upc"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Cache     CacheConfig     `yaml:"cache" mapstructure:"cache"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// SearchConfig configures link discovery against the search engine.
type SearchConfig struct {
	Engine        string   `yaml:"engine" mapstructure:"engine"`
	MaxLinks      int      `yaml:"max_links" mapstructure:"max_links"`
	TimeoutSecs   int      `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	DeniedDomains []string `yaml:"denied_domains" mapstructure:"denied_domains"`
}

// ScrapeConfig configures page fetching and the concurrent fan-out.
type ScrapeConfig struct {
	FetchTimeoutSecs int     `yaml:"fetch_timeout_secs" mapstructure:"fetch_timeout_secs"`
	Concurrency      int     `yaml:"concurrency" mapstructure:"concurrency"`
	BudgetSecs       int     `yaml:"budget_secs" mapstructure:"budget_secs"`
	RequestsPerSec   float64 `yaml:"requests_per_sec" mapstructure:"requests_per_sec"`
}

// RelevanceConfig configures the product-page heuristic gate. The hit and
// length thresholds are tuned constants, kept as configuration so they can
// be retuned without a code change.
type RelevanceConfig struct {
	Keywords   []string `yaml:"keywords" mapstructure:"keywords"`
	MinHits    int      `yaml:"min_hits" mapstructure:"min_hits"`
	MinBodyLen int      `yaml:"min_body_len" mapstructure:"min_body_len"`
}

// PriceConfig configures price extraction and fallback synthesis.
type PriceConfig struct {
	BandMin     float64 `yaml:"band_min" mapstructure:"band_min"`
	BandMax     float64 `yaml:"band_max" mapstructure:"band_max"`
	USDBaseMin  float64 `yaml:"usd_base_min" mapstructure:"usd_base_min"`
	USDBaseMax  float64 `yaml:"usd_base_max" mapstructure:"usd_base_max"`
	CADBaseMin  float64 `yaml:"cad_base_min" mapstructure:"cad_base_min"`
	CADBaseMax  float64 `yaml:"cad_base_max" mapstructure:"cad_base_max"`
	SynthCount  int     `yaml:"synth_count" mapstructure:"synth_count"`
	SynthJitter float64 `yaml:"synth_jitter" mapstructure:"synth_jitter"`
}

// UPCConfig configures product code detection.
type UPCConfig struct {
	// Strict accepts only exactly-12-digit labeled codes; otherwise any
	// labeled 8-14 digit run is accepted.
	Strict bool `yaml:"strict" mapstructure:"strict"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// CacheConfig configures the sqlite scrape cache.
type CacheConfig struct {
	Path     string `yaml:"path" mapstructure:"path"`
	TTLHours int    `yaml:"ttl_hours" mapstructure:"ttl_hours"`
}

// ServerConfig configures the webhook server.
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
	v.SetEnvPrefix("SEOCLI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

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

// SetDefaults registers every configuration default on the given viper.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("search.engine", "google.com")
	v.SetDefault("search.max_links", 8)
	v.SetDefault("search.timeout_secs", 20)
	v.SetDefault("search.denied_domains", []string{
		"youtube.com", "facebook.com", "instagram.com",
		"tiktok.com", "pinterest.com", "twitter.com", "x.com",
	})
	v.SetDefault("scrape.fetch_timeout_secs", 15)
	v.SetDefault("scrape.concurrency", 4)
	v.SetDefault("scrape.budget_secs", 90)
	v.SetDefault("scrape.requests_per_sec", 2.0)
	v.SetDefault("relevance.keywords", []string{
		"price", "buy", "add to cart", "mrp", "product", "brand", "description",
	})
	v.SetDefault("relevance.min_hits", 2)
	v.SetDefault("relevance.min_body_len", 100)
	v.SetDefault("price.band_min", 5.0)
	v.SetDefault("price.band_max", 500.0)
	v.SetDefault("price.usd_base_min", 12.0)
	v.SetDefault("price.usd_base_max", 35.0)
	v.SetDefault("price.cad_base_min", 15.0)
	v.SetDefault("price.cad_base_max", 45.0)
	v.SetDefault("price.synth_count", 3)
	v.SetDefault("price.synth_jitter", 3.0)
	v.SetDefault("upc.strict", false)
	// An explicit empty default keeps the env binding alive for the key.
	v.SetDefault("anthropic.key", "")
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.max_tokens", 2048)
	v.SetDefault("cache.path", "seo-cli.db")
	v.SetDefault("cache.ttl_hours", 24)
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
