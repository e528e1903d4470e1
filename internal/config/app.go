package config

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/tomz197/alieninvasion/internal/settings"
)

// Environment variables shared by the binaries.
const (
	EnvSettings = "INVASION_SETTINGS"  // path of a YAML settings file
	EnvLogFile  = "INVASION_LOG_FILE"  // log to this file instead of the default writer
	EnvLogLevel = "INVASION_LOG_LEVEL" // debug, info, warn, error
	EnvSound    = "INVASION_SOUND"     // false disables sound effects
)

// LoadSettings reads the settings file named by INVASION_SETTINGS, or returns
// the defaults when the variable is unset.
func LoadSettings() (*settings.Settings, error) {
	path := GetEnv(EnvSettings, "")
	if path == "" {
		return settings.Default(), nil
	}
	return settings.Load(path)
}

// NewLogger creates the process logger. It writes to the file named by
// INVASION_LOG_FILE when set, otherwise to w. The returned closer releases
// the file.
func NewLogger(w io.Writer, prefix string) (*log.Logger, io.Closer, error) {
	var closer io.Closer = io.NopCloser(nil)
	if path := GetEnv(EnvLogFile, ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f
	}

	level := log.InfoLevel
	if s := GetEnv(EnvLogLevel, ""); s != "" {
		l, err := log.ParseLevel(s)
		if err != nil {
			closer.Close()
			return nil, nil, fmt.Errorf("log level: %w", err)
		}
		level = l
	}

	logger := log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportTimestamp: true,
	})
	return logger, closer, nil
}
