package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "OCEANTIC_"

// withDotEnv falls back to a .env file for variables missing from getenv.
// OCEANTIC_ENV_FILE names the file; default ".env". A missing file is fine.
func withDotEnv(getenv func(string) string) func(string) string {
	path := getenv(envPrefix + "ENV_FILE")
	if path == "" {
		path = ".env"
	}
	file, err := godotenv.Read(path)
	if err != nil {
		return getenv
	}
	return func(key string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return file[key]
	}
}

// parseEnv overlays cfg with OCEANTIC_* variables. Empty variables are
// ignored.
func parseEnv(cfg *Config, getenv func(string) string) error {
	str := func(name string, dst *string) {
		if v := getenv(envPrefix + name); v != "" {
			*dst = v
		}
	}

	str("API_URL", &cfg.APIBaseURL)
	str("ASSET_URL", &cfg.AssetBaseURL)
	str("SESSION_DB", &cfg.SessionDB)
	str("EXPORT_DIR", &cfg.ExportDir)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("S3_BUCKET", &cfg.S3.Bucket)
	str("S3_REGION", &cfg.S3.Region)
	str("S3_ENDPOINT", &cfg.S3.Endpoint)
	str("S3_ACCESS_KEY", &cfg.S3.AccessKey)
	str("S3_SECRET_KEY", &cfg.S3.SecretKey)
	str("S3_PREFIX", &cfg.S3.Prefix)

	if v := getenv(envPrefix + "PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sPAGE_SIZE: %w", envPrefix, err)
		}
		cfg.PageSize = n
	}
	for name, dst := range map[string]*time.Duration{
		"REQUEST_TIMEOUT": &cfg.RequestTimeout,
		"S3_LINK_EXPIRY":  &cfg.S3.LinkExpiry,
	} {
		v := getenv(envPrefix + name)
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, name, err)
		}
		*dst = d
	}
	return nil
}
