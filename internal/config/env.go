package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Environment variables that override the file.
const (
	EnvDataDir  = "IRANCONNECT_DATA_DIR"
	EnvHost     = "IRANCONNECT_HOST"
	EnvPort     = "IRANCONNECT_PORT"
	EnvLogLevel = "IRANCONNECT_LOG_LEVEL"
)

// ApplyEnv overrides cfg from getenv. Unset variables leave cfg alone.
func ApplyEnv(cfg *Config, getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(EnvHost)); v != "" {
		cfg.App.Host = v
	}
	if v := strings.TrimSpace(getenv(EnvPort)); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPort, err)
		}
		cfg.App.Port = port
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		cfg.Log.Level = v
	}
	return nil
}
