package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/cmsadmin/internal/flagx"
	"github.com/dmitrijs2005/cmsadmin/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from zero values.
type JsonConfig struct {
	ServerBaseURL   *string         `json:"server_base_url"`
	DBPath          *string         `json:"db_path"`
	SlideInterval   *timex.Duration `json:"slide_interval"`
	TransitionDelay *timex.Duration `json:"transition_delay"`
	RequestTimeout  *timex.Duration `json:"request_timeout"`
	ValidateSession *bool           `json:"validate_session"`
	LogLevel        *string         `json:"log_level"`
	LogFormat       *string         `json:"log_format"`
	DownloadDir     *string         `json:"download_dir"`
}

// parseJson overlays cfg with the file named by -c/-config or
// $CMSADMIN_CONFIG. It panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	if err := applyJson(cfg, data); err != nil {
		panic(err)
	}
}

func applyJson(cfg *Config, data []byte) error {
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	if jc.ServerBaseURL != nil {
		cfg.ServerBaseURL = *jc.ServerBaseURL
	}
	if jc.DBPath != nil {
		cfg.DBPath = *jc.DBPath
	}
	if jc.SlideInterval != nil {
		cfg.SlideInterval = jc.SlideInterval.Duration
	}
	if jc.TransitionDelay != nil {
		cfg.TransitionDelay = jc.TransitionDelay.Duration
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.ValidateSession != nil {
		cfg.ValidateSession = *jc.ValidateSession
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.LogFormat != nil {
		cfg.LogFormat = *jc.LogFormat
	}
	if jc.DownloadDir != nil {
		cfg.DownloadDir = *jc.DownloadDir
	}
	return nil
}
