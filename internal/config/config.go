// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/aristath/industry-overview/internal/dataset"
	"github.com/aristath/industry-overview/internal/scheduler"
)

// Config holds application configuration
type Config struct {
	Port              int
	DevMode           bool
	LogLevel          string
	DataDir           string // Directory holding the CSV inputs (always absolute)
	MetricsFile       string
	TopicsFile        string
	LeadersFile       string
	MetricCatalogPath string // Optional YAML override of the built-in metric catalog
	ReloadSchedule    string // Cron expression with seconds; empty disables scheduled reloads
	ReloadTimeout     time.Duration
	AllowedOrigins    []string
	S3                *S3Config // nil unless S3_BUCKET is set
}

// S3Config holds the optional S3 dataset source
type S3Config struct {
	Bucket          string
	Prefix          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// ToSourceConfig converts config.S3Config to dataset.S3Config
func (c *S3Config) ToSourceConfig() dataset.S3Config {
	return dataset.S3Config{
		Bucket:          c.Bucket,
		Prefix:          c.Prefix,
		Region:          c.Region,
		Endpoint:        c.Endpoint,
		AccessKeyID:     c.AccessKeyID,
		SecretAccessKey: c.SecretAccessKey,
	}
}

// Files names the input tables
func (c *Config) Files() dataset.Files {
	return dataset.Files{
		Metrics: c.MetricsFile,
		Topics:  c.TopicsFile,
		Leaders: c.LeadersFile,
	}
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	absDataDir, err := filepath.Abs(getEnv("OVERVIEW_DATA_DIR", "./data"))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}

	cfg := &Config{
		Port:              getEnvAsInt("OVERVIEW_PORT", 8010),
		DevMode:           getEnvAsBool("DEV_MODE", false),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		DataDir:           absDataDir,
		MetricsFile:       getEnv("METRICS_FILE", "comparable_metrics.csv"),
		TopicsFile:        getEnv("TOPICS_FILE", "material_topics.csv"),
		LeadersFile:       getEnv("LEADERS_FILE", "industry_leaders.csv"),
		MetricCatalogPath: getEnv("METRIC_CATALOG_PATH", ""),
		ReloadSchedule:    getEnv("RELOAD_SCHEDULE", ""),
		ReloadTimeout:     time.Duration(getEnvAsInt("RELOAD_TIMEOUT_SECONDS", 120)) * time.Second,
		AllowedOrigins:    getEnvAsList("ALLOWED_ORIGINS"),
		S3:                loadS3Config(),
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present and well formed
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.MetricsFile == "" || c.TopicsFile == "" || c.LeadersFile == "" {
		return fmt.Errorf("metrics, topics and leaders file names are required")
	}
	if c.ReloadSchedule != "" {
		if _, err := scheduler.ParseSchedule(c.ReloadSchedule); err != nil {
			return fmt.Errorf("invalid RELOAD_SCHEDULE: %w", err)
		}
	}
	if c.ReloadTimeout <= 0 {
		return fmt.Errorf("reload timeout must be positive")
	}
	if c.S3 != nil && c.S3.Region == "" {
		return fmt.Errorf("S3_REGION is required when S3_BUCKET is set")
	}
	return nil
}

// loadS3Config reads the S3 source block. The source is disabled without a bucket.
func loadS3Config() *S3Config {
	bucket := getEnv("S3_BUCKET", "")
	if bucket == "" {
		return nil
	}
	return &S3Config{
		Bucket:          bucket,
		Prefix:          getEnv("S3_PREFIX", ""),
		Region:          getEnv("S3_REGION", "us-east-1"),
		Endpoint:        getEnv("S3_ENDPOINT", ""),
		AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
	}
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	out := make([]string, 0)
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
