package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// CacheCfg configures the optional record cache in front of the catalog
// store. Both tiers are off by default.
type CacheCfg struct {
	LRUSize   int
	RedisAddr string
	TTL       time.Duration
	OpTimeout time.Duration
}

type Config struct {
	DBPath         string
	DatasetVersion string
	LogLevel       string
	LogConsole     bool
	LogSampleN     int
	Cache          CacheCfg
	MetricsFile    string
}

func (c CacheCfg) Enabled() bool { return c.LRUSize > 0 || c.RedisAddr != "" }

func FromEnv() Config {
	return Config{
		DBPath:         getenv("ONGC_DB_PATH", "ongc.db"),
		DatasetVersion: getenv("ONGC_DB_VERSION", "20221023"),
		LogLevel:       getenv("LOG_LEVEL", "warn"),
		LogConsole:     getbool("LOG_CONSOLE", true),
		LogSampleN:     getint("LOG_SAMPLE_N", 0),
		Cache: CacheCfg{
			LRUSize:   max(getint("LOOKUP_CACHE_SIZE", 0), 0),
			RedisAddr: getenv("REDIS_ADDR", ""),
			TTL:       getduration("CACHE_TTL_DEFAULT", 24*time.Hour),
			OpTimeout: getduration("CACHE_OP_TIMEOUT", 250*time.Millisecond),
		},
		MetricsFile: getenv("METRICS_TEXTFILE", ""),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "t", "true", "y", "yes":
			return true
		case "0", "f", "false", "n", "no":
			return false
		}
	}
	return def
}

func getduration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
