package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/cmsadmin/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   CMS API base URL
//	-i int      slideshow interval in seconds
//	-d string   local store path
//	-v          validate session with a ping request
//
// Only these flags are considered; the rest of args is ignored. Invalid
// values panic.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-i", "-d", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "CMS API base URL")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "local store path")
	fs.BoolVar(&cfg.ValidateSession, "v", cfg.ValidateSession, "validate session with a ping request")
	interval := fs.Int("i", int(cfg.SlideInterval.Seconds()), "slideshow interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "i" {
			cfg.SlideInterval = time.Duration(*interval) * time.Second
		}
	})
}
