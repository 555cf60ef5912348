package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Persistence backends.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type Config struct {
	Backend string // "file" | "redis" | "memory"
	DataDir string // state directory for the file backend (default: ~/.marqs)

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	HomepageFile     string        // path to a homepage-style bookmarks.yaml for import (optional)
	SnapshotInterval time.Duration // periodic snapshot interval, 0 = mutations only

	// Redis (only read when Backend == "redis")
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // Redis dial timeout (ex: 5s)
	RedisRT             time.Duration // Redis read timeout (ex: 3s)
	RedisWT             time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait        time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize       int           // Redis connection pool size
	RedisConnectTimeout time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
}

// Load reads configuration from the environment. A .env file in the working
// directory is folded in first; absent variables fall back to defaults
// suitable for single-machine use.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Backend: getenv("MARQS_BACKEND", BackendFile),
		DataDir: getenv("MARQS_DATA_DIR", defaultDataDir()),

		// Warn by default: CLI output stays clean unless asked otherwise
		LogLevel:  getenv("MARQS_LOG_LEVEL", "warn"),
		PrettyLog: mustBool("MARQS_PRETTY_LOG", true),

		HomepageFile:     getenv("MARQS_HOMEPAGE_FILE", ""),
		SnapshotInterval: mustDuration("MARQS_SNAPSHOT_INTERVAL", 0),

		RedisAddr:           getenv("MARQS_REDIS_ADDR", ""),
		RedisUser:           getenv("MARQS_REDIS_USERNAME", "default"),
		RedisPassword:       getenv("MARQS_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("MARQS_REDIS_DB", 0),
		RedisDT:             mustDuration("MARQS_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("MARQS_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("MARQS_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("MARQS_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("MARQS_REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("MARQS_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("MARQS_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("MARQS_REDIS_RETRY_INTERVAL", 2*time.Second),
	}

	switch cfg.Backend {
	case BackendFile, BackendMemory:
	case BackendRedis:
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("MARQS_REDIS_ADDR is required when MARQS_BACKEND=redis")
		}
	default:
		return nil, fmt.Errorf("unknown MARQS_BACKEND %q (want file, redis or memory)", cfg.Backend)
	}

	return cfg, nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".marqs"
	}
	return filepath.Join(home, ".marqs")
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
