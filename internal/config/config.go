// Package config loads the per-stage settings of the lawlinks pipeline.
//
// A config file holds one section per stage:
//
//	prod:
//	  document_table: iurcrowd-adb-alldata-prod
//	  converter:
//	    url: ${CONVERTER_URL}
//	    timeout: 90s
//	  redis:
//	    addr: ${REDIS_ADDR}
//
// Values missing from a section keep the stage defaults (see [Defaults]).
// ${VAR} and $VAR references in string values are expanded from the
// environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/iurcrowd/lawlinks/internal/logging"
)

// Stage is a deployment stage
type Stage string

const (
	StageDev  Stage = "dev"
	StageProd Stage = "prod"
)

// ParseStage validates a stage name
func ParseStage(s string) (Stage, error) {
	switch Stage(s) {
	case StageDev, StageProd:
		return Stage(s), nil
	default:
		return "", fmt.Errorf("unknown stage %q", s)
	}
}

// Storage backends
const (
	BackendRedis = "redis"
	BackendFS    = "fs"
)

// DefaultConverterURL is the PDF processor that adds link annotations
const DefaultConverterURL = "https://api.lawlink.de/api/v1/iurcrowdpdfprocessor"

// Config holds the settings of one stage
type Config struct {
	// DocumentTable prefixes the document metadata keys
	DocumentTable string `yaml:"document_table" json:"document_table"`

	// SegmentedBucket holds the segmented JSON documents, lawlinks included
	SegmentedBucket string `yaml:"segmented_bucket" json:"segmented_bucket"`

	// OutputBucket receives a copy of every lawlinks document
	OutputBucket string `yaml:"output_bucket" json:"output_bucket"`

	Converter ConverterConfig `yaml:"converter" json:"converter"`
	Redis     RedisConfig     `yaml:"redis" json:"redis"`
	Storage   StorageConfig   `yaml:"storage" json:"storage"`
	Extract   ExtractConfig   `yaml:"extract" json:"extract"`
	Resolve   ResolveConfig   `yaml:"resolve" json:"resolve"`
	Log       logging.Config  `yaml:"log" json:"log"`
}

// ConverterConfig configures the PDF conversion service
type ConverterConfig struct {
	URL            string        `yaml:"url" json:"url"`
	Timeout        time.Duration `yaml:"timeout" json:"timeout"`
	HighlightLinks bool          `yaml:"highlight_links" json:"highlight_links"`
}

// RedisConfig configures the Redis connection
type RedisConfig struct {
	Addr     string `yaml:"addr" json:"addr"`
	DB       int    `yaml:"db" json:"db"`
	Password string `yaml:"password" json:"password"`
}

// StorageConfig selects the object store backend
type StorageConfig struct {
	// Backend is redis or fs
	Backend string `yaml:"backend" json:"backend"`

	// Root is the base directory of the fs backend
	Root string `yaml:"root" json:"root"`
}

// ExtractConfig configures link extraction
type ExtractConfig struct {
	Concurrency      int  `yaml:"concurrency" json:"concurrency"`
	NormalizeTargets bool `yaml:"normalize_targets" json:"normalize_targets"`
}

// ResolveConfig configures transcript matching
type ResolveConfig struct {
	CaseInsensitive bool `yaml:"case_insensitive" json:"case_insensitive"`
}

// Defaults returns the built-in settings of a stage. Unknown stages get the
// dev settings.
func Defaults(stage Stage) Config {
	suffix := "dev"
	if stage == StageProd {
		suffix = "prod"
	}

	return Config{
		DocumentTable:   "iurcrowd-adb-alldata-" + suffix,
		SegmentedBucket: "adb-s3-full.json.segmented-" + suffix,
		OutputBucket:    "iurcrowd-s3-lawlinks-" + suffix,
		Converter: ConverterConfig{
			URL:            DefaultConverterURL,
			Timeout:        60 * time.Second,
			HighlightLinks: true,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Storage: StorageConfig{
			Backend: BackendRedis,
		},
		Extract: ExtractConfig{
			Concurrency: 1,
		},
	}
}

// Load reads the section of stage from a config file
func Load(path string, stage Stage) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data, stage)
}

// Parse decodes the section of stage over the stage defaults. A missing
// section yields the defaults.
func Parse(data []byte, stage Stage) (*Config, error) {
	var sections map[Stage]yaml.Node
	if err := yaml.Unmarshal(data, &sections); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := Defaults(stage)
	if node, ok := sections[stage]; ok {
		if err := node.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s config: %w", stage, err)
		}
	}

	cfg.expandEnv()
	return &cfg, nil
}

func (c *Config) expandEnv() {
	for _, s := range []*string{
		&c.DocumentTable,
		&c.SegmentedBucket,
		&c.OutputBucket,
		&c.Converter.URL,
		&c.Redis.Addr,
		&c.Redis.Password,
		&c.Storage.Root,
	} {
		*s = os.ExpandEnv(*s)
	}
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if c.DocumentTable == "" {
		return fmt.Errorf("document_table is required")
	}
	if c.SegmentedBucket == "" || c.OutputBucket == "" {
		return fmt.Errorf("segmented_bucket and output_bucket are required")
	}
	if err := c.Converter.Validate(); err != nil {
		return fmt.Errorf("invalid converter config: %w", err)
	}
	if err := c.Storage.Validate(); err != nil {
		return fmt.Errorf("invalid storage config: %w", err)
	}
	if c.Storage.Backend == BackendRedis && c.Redis.Addr == "" {
		return fmt.Errorf("redis addr is required for the redis backend")
	}
	if c.Extract.Concurrency < 1 {
		return fmt.Errorf("extract concurrency must be at least 1")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log config: %w", err)
	}
	return nil
}

// Validate checks the converter settings
func (c *ConverterConfig) Validate() error {
	u, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url must be http or https, got %q", c.URL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

// Validate checks the storage settings
func (c *StorageConfig) Validate() error {
	switch c.Backend {
	case BackendRedis:
		return nil
	case BackendFS:
		if c.Root == "" {
			return fmt.Errorf("root is required for the fs backend")
		}
		return nil
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
}
