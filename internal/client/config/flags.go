package config

import (
	"fmt"

	"github.com/oceanticsports/oceantic-admin/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     API base URL
//	-d string     session database path
//	-e string     export directory
//	-p int        list page size
//	-t duration   request timeout
//	-l string     log level
//	-bucket name  S3 bucket for export archiving
//
// Flags owned by other components (-c/-config) are filtered out by
// flagx.ParseKnown.
func parseFlags(cfg *Config, args []string) error {
	fs := flagx.FlagSet("oceantic-admin")

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "API base URL")
	fs.StringVar(&cfg.SessionDB, "d", cfg.SessionDB, "session database path")
	fs.StringVar(&cfg.ExportDir, "e", cfg.ExportDir, "export directory")
	fs.IntVar(&cfg.PageSize, "p", cfg.PageSize, "list page size")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout (0 = none)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.S3.Bucket, "bucket", cfg.S3.Bucket, "S3 bucket for archiving exports")

	if err := flagx.ParseKnown(fs, args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
