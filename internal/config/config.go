// Package config provides layered configuration for the CLI and HTTP server:
// defaults, an optional YAML or JSON file, then RESUME_FIT_* environment
// variables, then bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable key.
const EnvPrefix = "RESUME_FIT"

// Config is the full application configuration.
type Config struct {
	Embedding EmbeddingConfig `mapstructure:"embedding" json:"embedding"`
	Gemini    GeminiConfig    `mapstructure:"gemini" json:"gemini"`
	Skills    SkillsConfig    `mapstructure:"skills" json:"skills"`
	Matching  MatchingConfig  `mapstructure:"matching" json:"matching"`
	Scoring   ScoringConfig   `mapstructure:"scoring" json:"scoring"`
	Fetch     FetchConfig     `mapstructure:"fetch" json:"fetch"`
	Server    ServerConfig    `mapstructure:"server" json:"server"`
	Log       LogConfig       `mapstructure:"log" json:"log"`
}

// EmbeddingConfig selects the similarity backend.
type EmbeddingConfig struct {
	// Provider is none (heuristic similarity), hashing, or gemini.
	Provider   string `mapstructure:"provider" json:"provider" validate:"oneof=none hashing gemini"`
	Model      string `mapstructure:"model" json:"model"`
	Dimensions int    `mapstructure:"dimensions" json:"dimensions" validate:"min=8,max=4096"`
	Cache      bool   `mapstructure:"cache" json:"cache"`
}

// GeminiConfig holds Gemini API credentials.
type GeminiConfig struct {
	APIKey string `mapstructure:"api-key" json:"-"`
}

// SkillsConfig configures skill extraction.
type SkillsConfig struct {
	Recognizer string   `mapstructure:"recognizer" json:"recognizer" validate:"oneof=none rules llm"`
	Labels     []string `mapstructure:"labels" json:"labels" validate:"dive,required"`
}

// MatchingConfig selects the tier threshold preset.
type MatchingConfig struct {
	Preset string `mapstructure:"preset" json:"preset" validate:"oneof=default simplified"`
}

// ScoringConfig holds the compatibility blend weights.
type ScoringConfig struct {
	SkillWeight     float64 `mapstructure:"skill-weight" json:"skill_weight" validate:"gte=0,lte=1"`
	SentimentWeight float64 `mapstructure:"sentiment-weight" json:"sentiment_weight" validate:"gte=0,lte=1"`
}

// FetchConfig configures job posting retrieval.
type FetchConfig struct {
	UseBrowser bool          `mapstructure:"use-browser" json:"use_browser"`
	Timeout    time.Duration `mapstructure:"timeout" json:"timeout" validate:"gt=0"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port           int      `mapstructure:"port" json:"port" validate:"min=1,max=65535"`
	RateLimit      float64  `mapstructure:"rate-limit" json:"rate_limit" validate:"gte=0"`
	RateBurst      int      `mapstructure:"rate-burst" json:"rate_burst" validate:"gte=0"`
	CORSOrigins    []string `mapstructure:"cors-origins" json:"cors_origins"`
	MaxUploadBytes int64    `mapstructure:"max-upload-bytes" json:"max_upload_bytes" validate:"min=1024"`
}

// LogConfig selects the log encoding and level.
type LogConfig struct {
	JSON  bool `mapstructure:"json" json:"json"`
	Debug bool `mapstructure:"debug" json:"debug"`
}

// defaults are applied before any file or environment value.
var defaults = map[string]any{
	"embedding.provider":       "none",
	"embedding.model":          "text-embedding-004",
	"embedding.dimensions":     256,
	"embedding.cache":          true,
	"skills.recognizer":        "rules",
	"skills.labels":            []string{"ORG", "PRODUCT", "TECHNOLOGY"},
	"matching.preset":          "default",
	"scoring.skill-weight":     0.7,
	"scoring.sentiment-weight": 0.3,
	"fetch.use-browser":        false,
	"fetch.timeout":            30 * time.Second,
	"server.port":              8080,
	"server.rate-limit":        2.0,
	"server.rate-burst":        10,
	"server.cors-origins":      []string{"*"},
	"server.max-upload-bytes":  int64(10 << 20),
	"log.json":                 false,
	"log.debug":                false,
	"gemini.api-key":           "",
}

// New returns a viper instance with defaults and environment bindings set.
// Nested keys map to RESUME_FIT_SECTION_KEY, with dashes as underscores.
func New() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// The Gemini key is commonly exported without the application prefix.
	_ = v.BindEnv("gemini.api-key", EnvPrefix+"_GEMINI_API_KEY", "GEMINI_API_KEY")
	return v
}

// Load reads path (if set) into v, then unmarshals and validates the result.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration with no file, environment or flags applied.
func Default() *Config {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Validate checks field ranges and cross-field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if sum := c.Scoring.SkillWeight + c.Scoring.SentimentWeight; sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("config error: scoring weights must sum to 1, got %.3f", sum)
	}

	needsKey := c.Embedding.Provider == "gemini" || c.Skills.Recognizer == "llm"
	if needsKey && c.Gemini.APIKey == "" {
		return errors.New("config error: gemini api key is required for the gemini embedding provider or llm recognizer (set GEMINI_API_KEY)")
	}
	return nil
}
