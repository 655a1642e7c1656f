package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/quillsearch/hyra/internal/domain/search/fusion"
	"github.com/quillsearch/hyra/internal/domain/search/normalize"
)

// Config holds the hyra API configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Database   DatabaseConfig   `yaml:"database"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Generation GenerationConfig `yaml:"generation"`
	BM25       BM25Config       `yaml:"bm25"`
	Semantic   SemanticConfig   `yaml:"semantic"`
	Fusion     FusionConfig     `yaml:"fusion"`
	Auth       AuthConfig       `yaml:"auth"`
	Storage    StorageConfig    `yaml:"storage"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	KeyPrefix string `yaml:"key_prefix"`
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	Provider    string `yaml:"provider"` // label for logs and metrics
	APIKey      string `yaml:"api_key"`
	BaseURL     string `yaml:"base_url"`
	Model       string `yaml:"model"`
	Dimensions  int    `yaml:"dimensions"`
	Instruction string `yaml:"instruction"` // optional prefix prepended to embedded text
	CacheTTLSec int    `yaml:"cache_ttl_sec"`
}

// GenerationConfig holds hypothetical-document generation settings.
type GenerationConfig struct {
	APIKey    string `yaml:"api_key"` // empty: reuse embedding.api_key
	BaseURL   string `yaml:"base_url"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
}

// BM25Config holds lexical scoring parameters.
type BM25Config struct {
	K1 float64 `yaml:"k1"`
	B  float64 `yaml:"b"`
}

// SemanticConfig holds similarity combination settings.
type SemanticConfig struct {
	TraditionalWeight   float64 `yaml:"traditional_weight"`
	HydeWeight          float64 `yaml:"hyde_weight"`
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
}

// FusionConfig holds rank fusion settings.
type FusionConfig struct {
	Strategy       string  `yaml:"strategy"`
	Normalization  string  `yaml:"normalization"`
	BM25Weight     float64 `yaml:"bm25_weight"`
	SemanticWeight float64 `yaml:"semantic_weight"`
	RRFK           float64 `yaml:"rrf_k"`
	ScoreThreshold float64 `yaml:"score_threshold"`
	MaxResults     int     `yaml:"max_results"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = "openai"
	}
	if c.Generation.APIKey == "" {
		c.Generation.APIKey = c.Embedding.APIKey
	}
	if c.Generation.BaseURL == "" {
		c.Generation.BaseURL = c.Embedding.BaseURL
	}
	if c.BM25.K1 <= 0 {
		c.BM25.K1 = 1.2
	}
	if c.BM25.B <= 0 {
		c.BM25.B = 0.75
	}
	if c.Semantic.TraditionalWeight == 0 && c.Semantic.HydeWeight == 0 {
		c.Semantic.TraditionalWeight = 0.3
		c.Semantic.HydeWeight = 0.7
	}
	defaults := fusion.DefaultOptions()
	if c.Fusion.Strategy == "" {
		c.Fusion.Strategy = string(defaults.Strategy)
	}
	if c.Fusion.Normalization == "" {
		c.Fusion.Normalization = string(defaults.Normalization)
	}
	if c.Fusion.BM25Weight == 0 && c.Fusion.SemanticWeight == 0 {
		c.Fusion.BM25Weight = defaults.BM25Weight
		c.Fusion.SemanticWeight = defaults.SemanticWeight
	}
	if c.Fusion.RRFK <= 0 {
		c.Fusion.RRFK = defaults.RRFK
	}
	if c.Fusion.MaxResults <= 0 {
		c.Fusion.MaxResults = defaults.MaxResults
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = "hyra:"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}
	if !fusion.Strategy(c.Fusion.Strategy).IsValid() {
		return fmt.Errorf("fusion.strategy %q is not supported", c.Fusion.Strategy)
	}
	if !normalize.Strategy(c.Fusion.Normalization).IsValid() {
		return fmt.Errorf("fusion.normalization %q is not supported", c.Fusion.Normalization)
	}
	if c.Fusion.BM25Weight < 0 || c.Fusion.SemanticWeight < 0 {
		return fmt.Errorf("fusion weights must be non-negative")
	}
	if c.Semantic.TraditionalWeight < 0 || c.Semantic.HydeWeight < 0 {
		return fmt.Errorf("semantic weights must be non-negative")
	}
	return nil
}

// FusionOptions converts the fusion section into engine options.
func (c *Config) FusionOptions() fusion.Options {
	return fusion.Options{
		Strategy:       fusion.Strategy(c.Fusion.Strategy),
		Normalization:  normalize.Strategy(c.Fusion.Normalization),
		BM25Weight:     c.Fusion.BM25Weight,
		SemanticWeight: c.Fusion.SemanticWeight,
		RRFK:           c.Fusion.RRFK,
		ScoreThreshold: c.Fusion.ScoreThreshold,
		MaxResults:     c.Fusion.MaxResults,
	}
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
