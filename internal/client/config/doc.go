// Package config loads runtime configuration for the cmsadmin CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c / -config, or $CMSADMIN_CONFIG.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the CMS API (scheme://host[:port])
//	-i int      slideshow interval (seconds)
//	-d string   path of the local SQLite store holding the session token
//	-v          validate the stored token with a ping request before
//	            opening protected screens
//
// # JSON schema
//
// Durations use timex.Duration, so they may be strings like "4s" or integer
// nanoseconds:
//
//	{
//	  "server_base_url": "https://cms.example.org",
//	  "db_path": "cmsadmin.db",
//	  "slide_interval": "4s",
//	  "transition_delay": "700ms",
//	  "request_timeout": "30s",
//	  "validate_session": true,
//	  "log_level": "info",
//	  "log_format": "slog",
//	  "download_dir": "download"
//	}
//
// Keys absent from the file keep their previous (default) value.
package config
