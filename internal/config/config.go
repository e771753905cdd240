// Package config reads benchgen settings from the environment. A .env file in
// the working directory is loaded first when present; command-line flags
// override whatever is read here.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/bull/benchgen/internal/generator"
	"github.com/bull/benchgen/internal/storage"
)

// DateLayout is the format of the as-of reference date.
const DateLayout = "2006-01-02"

const (
	DefaultOutput     = "./benchmarks/synthetic-50k"
	DefaultQdrantPort = 6334
	DefaultRegion     = "us-east-1"
)

var ErrInvalidDate = errors.New("invalid date")

// Config is the full set of knobs for one benchgen invocation.
type Config struct {
	Documents int
	Queries   int
	Seed      int64
	AsOf      time.Time

	Output  string
	Storage storage.StorageConfig

	// QdrantHost enables publishing when non-empty.
	QdrantHost string
	QdrantPort int
	Collection string

	MetricsFile string
	LogLevel    slog.Level
}

// LoadDotEnv loads .env if present. A missing file is not an error.
func LoadDotEnv(filenames ...string) error {
	err := godotenv.Load(filenames...)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Load builds a Config from environment variables, falling back to defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Documents:   getEnvInt("BENCHGEN_DOCS", generator.DefaultDocuments),
		Queries:     getEnvInt("BENCHGEN_QUERIES", generator.DefaultQueries),
		Seed:        getEnvInt64("BENCHGEN_SEED", generator.DefaultSeed),
		AsOf:        generator.DefaultAsOf,
		Output:      getEnv("BENCHGEN_OUTPUT", DefaultOutput),
		QdrantHost:  os.Getenv("QDRANT_HOST"),
		QdrantPort:  getEnvInt("QDRANT_PORT", DefaultQdrantPort),
		Collection:  getEnv("QDRANT_COLLECTION", storage.DefaultCollection),
		MetricsFile: os.Getenv("BENCHGEN_METRICS_FILE"),
		LogLevel:    slog.LevelInfo,
		Storage: storage.StorageConfig{
			Type:         storage.StorageType(getEnv("STORAGE_TYPE", string(storage.StorageTypeLocal))),
			S3Bucket:     os.Getenv("AWS_S3_BUCKET"),
			S3Prefix:     os.Getenv("AWS_S3_PREFIX"),
			S3Region:     getEnv("AWS_REGION", DefaultRegion),
			AWSAccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
			AWSSecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		},
	}

	if v := os.Getenv("BENCHGEN_AS_OF"); v != "" {
		asOf, err := ParseDate(v)
		if err != nil {
			return nil, fmt.Errorf("BENCHGEN_AS_OF: %w", err)
		}
		cfg.AsOf = asOf
	}
	if v := os.Getenv("BENCHGEN_LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("BENCHGEN_LOG_LEVEL: %w", err)
		}
	}
	return cfg, nil
}

// ParseDate parses a YYYY-MM-DD date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q, want YYYY-MM-DD", ErrInvalidDate, s)
	}
	return t, nil
}

// Options returns the generator options.
func (c *Config) Options() generator.Options {
	return generator.Options{
		Documents: c.Documents,
		Queries:   c.Queries,
		Seed:      c.Seed,
		AsOf:      c.AsOf,
	}
}

// StorageConfig returns the storage settings with the output location applied.
// For S3 the output is ignored in favour of bucket and prefix.
func (c *Config) StorageConfig() storage.StorageConfig {
	cfg := c.Storage
	cfg.LocalPath = c.Output
	return cfg
}

// PublishEnabled reports whether documents should also go to Qdrant.
func (c *Config) PublishEnabled() bool {
	return c.QdrantHost != ""
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		var i int
		if _, err := fmt.Sscanf(v, "%d", &i); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if v := os.Getenv(key); v != "" {
		var i int64
		if _, err := fmt.Sscanf(v, "%d", &i); err == nil {
			return i
		}
	}
	return defaultValue
}
