package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/oceanticsports/oceantic-admin/internal/flagx"
	"github.com/oceanticsports/oceantic-admin/internal/timex"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from zero values so a file may set only some
// keys.
type JSONConfig struct {
	APIBaseURL     *string         `json:"api_base_url"`
	AssetBaseURL   *string         `json:"asset_base_url"`
	PageSize       *int            `json:"page_size"`
	SessionDB      *string         `json:"session_db"`
	ExportDir      *string         `json:"export_dir"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	LogLevel       *string         `json:"log_level"`
	S3             *JSONS3         `json:"s3"`
}

type JSONS3 struct {
	Bucket     *string         `json:"bucket"`
	Region     *string         `json:"region"`
	Endpoint   *string         `json:"endpoint"`
	AccessKey  *string         `json:"access_key"`
	SecretKey  *string         `json:"secret_key"`
	Prefix     *string         `json:"prefix"`
	LinkExpiry *timex.Duration `json:"link_expiry"`
}

// parseJSON overlays cfg with the file named by -c/-config in args. Without
// the flag nothing is loaded.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.AssetBaseURL, jc.AssetBaseURL)
	setString(&cfg.SessionDB, jc.SessionDB)
	setString(&cfg.ExportDir, jc.ExportDir)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.PageSize != nil {
		cfg.PageSize = *jc.PageSize
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}

	if s := jc.S3; s != nil {
		setString(&cfg.S3.Bucket, s.Bucket)
		setString(&cfg.S3.Region, s.Region)
		setString(&cfg.S3.Endpoint, s.Endpoint)
		setString(&cfg.S3.AccessKey, s.AccessKey)
		setString(&cfg.S3.SecretKey, s.SecretKey)
		setString(&cfg.S3.Prefix, s.Prefix)
		if s.LinkExpiry != nil {
			cfg.S3.LinkExpiry = s.LinkExpiry.Duration
		}
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
