package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the cmsadmin CLI.
type Config struct {
	ServerBaseURL   string
	DBPath          string
	SlideInterval   time.Duration
	TransitionDelay time.Duration
	RequestTimeout  time.Duration
	ValidateSession bool
	LogLevel        string
	LogFormat       string
	DownloadDir     string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "https://cms-backend-icem.onrender.com"
	c.DBPath = "cmsadmin.db"
	c.SlideInterval = 4 * time.Second
	c.TransitionDelay = 700 * time.Millisecond
	c.RequestTimeout = 30 * time.Second
	c.ValidateSession = false
	c.LogLevel = "info"
	c.LogFormat = "slog"
	c.DownloadDir = "download"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg, os.Args[1:])
	return cfg
}
