package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

// DefaultAPIBaseURL is the local development backend.
const DefaultAPIBaseURL = "http://localhost:3025/oceantic/v1"

// S3 addresses optional archiving of exports.
type S3 struct {
	Bucket     string
	Region     string
	Endpoint   string
	AccessKey  string
	SecretKey  string
	Prefix     string
	LinkExpiry time.Duration
}

// Enabled reports whether exports should be archived.
func (s S3) Enabled() bool { return s.Bucket != "" }

// Config holds runtime settings for the admin CLI.
//
// Units: RequestTimeout is a time.Duration; zero disables the bound.
type Config struct {
	APIBaseURL     string
	AssetBaseURL   string
	PageSize       int
	SessionDB      string
	ExportDir      string
	RequestTimeout time.Duration
	LogLevel       string
	S3             S3
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = DefaultAPIBaseURL
	c.AssetBaseURL = ""
	c.PageSize = 5
	c.SessionDB = "session.db"
	c.ExportDir = "exports"
	c.RequestTimeout = 0
	c.LogLevel = "info"
	c.S3 = S3{Prefix: "event-books", LinkExpiry: 24 * time.Hour}
}

// Validate checks cross-field constraints after all sources are applied.
func (c *Config) Validate() error {
	var errs []error
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("api base url %q must be absolute", c.APIBaseURL))
	}
	if c.PageSize < 1 {
		errs = append(errs, fmt.Errorf("page size must be positive, got %d", c.PageSize))
	}
	if c.RequestTimeout < 0 {
		errs = append(errs, fmt.Errorf("request timeout must not be negative"))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.LogLevel))
	}
	if c.SessionDB == "" {
		errs = append(errs, errors.New("session db path is required"))
	}
	return errors.Join(errs...)
}

// LoadConfig constructs a Config from defaults, then JSON, environment and
// command-line flags taken from args. Later sources take precedence.
func LoadConfig(args []string, getenv func(string) string) (*Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, withDotEnv(getenv)); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
