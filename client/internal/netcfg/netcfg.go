package netcfg

import (
	"os"
	"strconv"
	"strings"
	"time"

	"airspace/shared/protocol"
)

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvMs(k string, def int) time.Duration {
	ms, err := strconv.Atoi(strings.TrimSpace(os.Getenv(k)))
	if err != nil || ms <= 0 {
		ms = def
	}
	return time.Duration(ms) * time.Millisecond
}

var APIBase = getenv("AIRSPACE_API_BASE", "http://127.0.0.1:8080/api") // REST
var PollInterval = getenvMs("AIRSPACE_POLL_MS", protocol.PollIntervalMs)
var LogLevel = getenv("AIRSPACE_LOG_LEVEL", "info")
var LogDir = getenv("AIRSPACE_LOG_DIR", "") // empty: ConfigDir()

// Config is the startup configuration shared by both frontends. Flags
// override the environment defaults above.
type Config struct {
	APIBase      string
	PollInterval time.Duration
	// RequestTimeout bounds each HTTP call; zero means no timeout.
	RequestTimeout time.Duration
	LogLevel       string
	LogDir         string
}

func Default() Config {
	return Config{
		APIBase:      APIBase,
		PollInterval: PollInterval,
		LogLevel:     LogLevel,
		LogDir:       LogDir,
	}
}

// Normalize trims the API base and fills zero values from the defaults.
func (c Config) Normalize() Config {
	c.APIBase = strings.TrimRight(strings.TrimSpace(c.APIBase), "/")
	if c.APIBase == "" {
		c.APIBase = strings.TrimRight(APIBase, "/")
	}
	if c.PollInterval <= 0 {
		c.PollInterval = time.Duration(protocol.PollIntervalMs) * time.Millisecond
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogDir == "" {
		c.LogDir = ConfigDir()
	}
	return c
}
