// Package config loads runtime configuration for the admin CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJSON) selected via flags: -c or -config.
//  3. Environment variables prefixed OCEANTIC_ (see parseEnv). A .env file
//     in the working directory, or the one named by OCEANTIC_ENV_FILE, is
//     read too; real environment variables win over it.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string     API base URL, e.g. https://api.oceanticsports.com/oceantic/v1
//	-d string     session database path
//	-e string     export directory
//	-p int        list page size
//	-t duration   request timeout (0 = none)
//	-l string     log level (debug, info, warn, error)
//	-bucket name  S3 bucket for archiving exports (empty = off)
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "10s" or
// integer nanoseconds:
//
//	{
//	  "api_base_url": "https://api.oceanticsports.com/oceantic/v1",
//	  "page_size": 5,
//	  "session_db": "session.db",
//	  "export_dir": "exports",
//	  "request_timeout": "15s",
//	  "log_level": "info",
//	  "s3": {"bucket": "event-books", "region": "us-east-1"}
//	}
package config
