package config

import (
	"os"
	"time"
)

// Config holds service-level configuration.
type Config struct {
	ListenAddr      string
	PermissionsPath string
	ShutdownTimeout time.Duration
}

// Load reads service configuration from environment variables with defaults.
func Load() Config {
	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	permsPath := os.Getenv("PERMISSIONS_FILE")
	if permsPath == "" {
		permsPath = "permissions.yml"
	}

	shutdownTimeout := 15 * time.Second
	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			shutdownTimeout = d
		}
	}

	return Config{
		ListenAddr:      addr,
		PermissionsPath: permsPath,
		ShutdownTimeout: shutdownTimeout,
	}
}
