// Package config loads the YAML configuration shared by the server and the
// CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/baditaflorin/go_text_normalization/internal/adapters/normalizer"
	"github.com/baditaflorin/go_text_normalization/internal/core/tagger"
)

// Config is the top-level configuration file.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Normalizer NormalizerConfig `yaml:"normalizer"`
	Stream     StreamConfig     `yaml:"stream"`
	Log        LogConfig        `yaml:"log"`
	WarmUp     WarmUpConfig     `yaml:"warmup"`
}

// ServerConfig configures cmd/server.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	MaxBodySize     int           `yaml:"max_body_size"`
	MaxAlternatives int           `yaml:"max_alternatives"`
}

// NormalizerConfig selects and tunes the grammars.
type NormalizerConfig struct {
	// TaggerSet is "small" or "full".
	TaggerSet     string `yaml:"tagger_set"`
	Deterministic bool   `yaml:"deterministic"`
	// Preprocessor is "default", "optimized" or "none".
	Preprocessor   string `yaml:"preprocessor"`
	MaxTokenLength int    `yaml:"max_token_length"`
	// CacheSize is the number of sentence results kept in memory; 0
	// disables the cache.
	CacheSize int `yaml:"cache_size"`
	// CacheDir holds compiled grammars between runs; empty disables it.
	CacheDir string `yaml:"cache_dir"`
}

// StreamConfig tunes line-by-line processing.
type StreamConfig struct {
	BatchSize int `yaml:"batch_size"`
	Workers   int `yaml:"workers"`
}

// LogConfig configures the logger.
type LogConfig struct {
	File string `yaml:"file"`
	JSON bool   `yaml:"json"`
}

// WarmUpConfig controls warm-up after the grammars are loaded.
type WarmUpConfig struct {
	Enabled    bool          `yaml:"enabled"`
	Iterations int           `yaml:"iterations"`
	Duration   time.Duration `yaml:"duration"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			MaxBodySize:     10 * 1024 * 1024,
			MaxAlternatives: 10,
		},
		Normalizer: NormalizerConfig{
			TaggerSet:      tagger.SetSmall,
			Deterministic:  true,
			Preprocessor:   "default",
			MaxTokenLength: 64,
			CacheSize:      4096,
		},
		Stream: StreamConfig{BatchSize: 256},
		Log:    LogConfig{JSON: true},
		WarmUp: WarmUpConfig{Enabled: true, Iterations: 100, Duration: 5 * time.Second},
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Server.MaxBodySize <= 0 {
		errs = append(errs, errors.New("server.max_body_size must be greater than 0"))
	}
	if c.Server.MaxAlternatives <= 0 {
		errs = append(errs, errors.New("server.max_alternatives must be greater than 0"))
	}
	switch c.Normalizer.TaggerSet {
	case tagger.SetSmall, tagger.SetFull:
	default:
		errs = append(errs, fmt.Errorf("normalizer.tagger_set %q must be %s or %s", c.Normalizer.TaggerSet, tagger.SetSmall, tagger.SetFull))
	}
	if _, ok := normalizer.ParseNormalizerType(c.Normalizer.Preprocessor); !ok {
		errs = append(errs, fmt.Errorf("normalizer.preprocessor %q is unknown", c.Normalizer.Preprocessor))
	}
	if c.Normalizer.MaxTokenLength <= 0 {
		errs = append(errs, errors.New("normalizer.max_token_length must be greater than 0"))
	}
	if c.Normalizer.CacheSize < 0 {
		errs = append(errs, errors.New("normalizer.cache_size must not be negative"))
	}
	if c.Stream.BatchSize <= 0 {
		errs = append(errs, errors.New("stream.batch_size must be greater than 0"))
	}
	if c.Stream.Workers < 0 {
		errs = append(errs, errors.New("stream.workers must not be negative"))
	}
	return errors.Join(errs...)
}

// Load reads path on top of Default and validates the result. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as YAML, creating parent directories.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
