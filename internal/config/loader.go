package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"lifeline/internal/common/fsutil"
	"lifeline/internal/dispatch"
	"lifeline/internal/owner"
)

// Config holds runtime parameters for the CLI.
// Zero values mean "unspecified" and are replaced by Default() via Merge.
type Config struct {
	OwnerID        string `json:"owner_id" yaml:"owner_id" toml:"owner_id"`
	EntityID       string `json:"entity_id" yaml:"entity_id" toml:"entity_id"`
	LazyEntity     bool   `json:"lazy_entity" yaml:"lazy_entity" toml:"lazy_entity"`
	QueueName      string `json:"queue_name" yaml:"queue_name" toml:"queue_name"`
	QueueCapacity  int    `json:"queue_capacity" yaml:"queue_capacity" toml:"queue_capacity"`
	QueueMaxWaitMS int    `json:"queue_max_wait_ms" yaml:"queue_max_wait_ms" toml:"queue_max_wait_ms"`
	DrainTimeoutMS int    `json:"drain_timeout_ms" yaml:"drain_timeout_ms" toml:"drain_timeout_ms"`
	LogLevel       string `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat      string `json:"log_format" yaml:"log_format" toml:"log_format"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		OwnerID:        "garage",
		EntityID:       "car",
		QueueCapacity:  256,
		QueueMaxWaitMS: 1000,
		DrainTimeoutMS: 2000,
		LogLevel:       "info",
		LogFormat:      "console",
	}
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml. A leading '~' is expanded.
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	path, err := fsutil.ExpandHome(path)
	if err != nil {
		return cfg, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// Merge returns c with every zero field taken from base.
func (c Config) Merge(base Config) Config {
	out := base
	if c.OwnerID != "" {
		out.OwnerID = c.OwnerID
	}
	if c.EntityID != "" {
		out.EntityID = c.EntityID
	}
	if c.LazyEntity {
		out.LazyEntity = true
	}
	if c.QueueName != "" {
		out.QueueName = c.QueueName
	}
	if c.QueueCapacity > 0 {
		out.QueueCapacity = c.QueueCapacity
	}
	if c.QueueMaxWaitMS > 0 {
		out.QueueMaxWaitMS = c.QueueMaxWaitMS
	}
	if c.DrainTimeoutMS > 0 {
		out.DrainTimeoutMS = c.DrainTimeoutMS
	}
	if c.LogLevel != "" {
		out.LogLevel = c.LogLevel
	}
	if c.LogFormat != "" {
		out.LogFormat = c.LogFormat
	}
	return out
}

// QueueConfig converts the queue settings for dispatch.New.
func (c Config) QueueConfig() dispatch.Config {
	return dispatch.Config{
		Name:     c.QueueName,
		Capacity: c.QueueCapacity,
		MaxWait:  time.Duration(c.QueueMaxWaitMS) * time.Millisecond,
	}
}

// OwnerConfig converts the owner settings. The queue is left to the Owner,
// which builds a private one from QueueConfig.
func (c Config) OwnerConfig() owner.OwnerConfig {
	return owner.OwnerConfig{
		ID:           c.OwnerID,
		EntityID:     c.EntityID,
		LazyEntity:   c.LazyEntity,
		QueueConfig:  c.QueueConfig(),
		DrainTimeout: time.Duration(c.DrainTimeoutMS) * time.Millisecond,
	}
}
