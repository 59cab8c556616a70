// config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Config is read from the environment, optionally seeded from a .env file.
type Config struct {
	Port           string `env:"PORT"            envDefault:"8080"`
	AllowedOrigins string `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:3000"`
	// ServiceToken guards mutating routes when set. Empty disables the guard.
	ServiceToken string `env:"SERVICE_TOKEN"`

	MongoURI            string `env:"MONGODB_URI"             envDefault:"mongodb://localhost:27017"`
	MongoDatabase       string `env:"MONGODB_DATABASE"        envDefault:"riot"`
	MongoTimeoutSeconds int    `env:"MONGODB_TIMEOUT_SECONDS" envDefault:"10"`

	MonitorIntervalSeconds int `env:"MONITOR_INTERVAL_SECONDS" envDefault:"60"`

	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	LogCaller bool   `env:"LOG_CALLER"`

	// Match archive storage (Cloudflare R2 or any S3-compatible endpoint).
	R2AccountID       string `env:"CLOUDFLARE_ACCOUNT_ID"`
	R2AccessKeyID     string `env:"R2_ACCESS_KEY_ID"`
	R2AccessKeySecret string `env:"R2_ACCESS_KEY_SECRET"`
	R2Bucket          string `env:"R2_BUCKET_NAME"`
	CDNBaseURL        string `env:"CDN_BASE_URL"`
	// R2Endpoint replaces the account endpoint, e.g. a MinIO URL.
	R2Endpoint string `env:"R2_ENDPOINT"`
}

// Load reads .env when present, then the process environment.
// The returned bool tells whether a .env file was found.
func Load() (*Config, bool, error) {
	dotenv := godotenv.Load() == nil

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, dotenv, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, dotenv, err
	}
	return cfg, dotenv, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.MongoURI) == "" {
		return fmt.Errorf("MONGODB_URI must not be empty")
	}
	if strings.TrimSpace(c.MongoDatabase) == "" {
		return fmt.Errorf("MONGODB_DATABASE must not be empty")
	}
	if c.MongoTimeoutSeconds <= 0 {
		return fmt.Errorf("MONGODB_TIMEOUT_SECONDS must be positive, got %d", c.MongoTimeoutSeconds)
	}
	if c.MonitorIntervalSeconds < 0 {
		return fmt.Errorf("MONITOR_INTERVAL_SECONDS must not be negative, got %d", c.MonitorIntervalSeconds)
	}
	return nil
}

func (c *Config) MongoTimeout() time.Duration {
	return time.Duration(c.MongoTimeoutSeconds) * time.Second
}

// MonitorInterval is zero when the store monitor is disabled.
func (c *Config) MonitorInterval() time.Duration {
	return time.Duration(c.MonitorIntervalSeconds) * time.Second
}

// Origins splits ALLOWED_ORIGINS and trims every entry.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// ArchiveEnabled reports whether enough R2 settings are present to archive
// matches. R2_ENDPOINT stands in for the account id.
func (c *Config) ArchiveEnabled() bool {
	if c.R2AccountID == "" && c.R2Endpoint == "" {
		return false
	}
	return c.R2Bucket != "" && c.R2AccessKeyID != "" && c.R2AccessKeySecret != ""
}
