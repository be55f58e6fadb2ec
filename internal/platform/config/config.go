package config

import (
	"os"
	"strconv"
	"time"
)

// Storage backend names accepted in INVESTDESK_STORAGE.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Server captures process-level configuration.
type Server struct {
	Addr            string
	DataDir         string
	Storage         string
	PostgresDSN     string
	ShutdownTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("INVESTDESK_ADDR")
	if addr == "" {
		addr = ":3001"
	}

	dataDir := os.Getenv("INVESTDESK_DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	storage := os.Getenv("INVESTDESK_STORAGE")
	switch storage {
	case BackendFile, BackendMemory, BackendPostgres:
	default:
		storage = BackendFile
	}

	shutdown := 10 * time.Second
	if raw := os.Getenv("INVESTDESK_SHUTDOWN_TIMEOUT_SECONDS"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			shutdown = time.Duration(secs) * time.Second
		}
	}

	return Server{
		Addr:            addr,
		DataDir:         dataDir,
		Storage:         storage,
		PostgresDSN:     os.Getenv("INVESTDESK_POSTGRES_DSN"),
		ShutdownTimeout: shutdown,
	}
}
