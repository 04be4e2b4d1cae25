package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	LogLevel    string
	HTTPAddr    string
	MetricsAddr string

	DBDriver    string
	DatabaseDSN string

	RedisAddr string
	RedisDB   int
	RedisPass string
	CacheTTL  time.Duration

	// CityIndexTTL > 0 switches proximity search to an in-memory R-tree
	// reloaded at that interval; 0 scans the city table per request.
	CityIndexTTL time.Duration

	AvailabilityBase string
	AvailabilityKey  string
	AvailabilityRPS  int

	WarmWorkers    int
	RequestTimeout time.Duration
}

// Load reads the environment, after applying a .env file when one exists.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg(".env not loaded")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		}
		return def
	}
	c := Config{
		AppEnv:           env("APP_ENV", "prod"),
		LogLevel:         env("LOG_LEVEL", "info"),
		HTTPAddr:         env("HTTP_ADDR", ":8080"),
		MetricsAddr:      env("METRICS_ADDR", ""),
		DBDriver:         env("DB_DRIVER", "mysql"),
		DatabaseDSN:      env("DATABASE_DSN", "root:root@tcp(localhost:3306)/yoyo?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:        env("REDIS_ADDR", ""),
		RedisPass:        env("REDIS_PASSWORD", ""),
		RedisDB:          atoi("REDIS_DB", 0),
		CacheTTL:         time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
		CityIndexTTL:     time.Duration(atoi("CITY_INDEX_TTL_SECONDS", 0)) * time.Second,
		AvailabilityBase: env("AVAILABILITY_BASE_URL", ""),
		AvailabilityKey:  env("AVAILABILITY_API_KEY", ""),
		AvailabilityRPS:  atoi("AVAILABILITY_RPS", 10),
		WarmWorkers:      atoi("WARM_WORKERS", 8),
		RequestTimeout:   time.Duration(atoi("REQUEST_TIMEOUT_SECONDS", 15)) * time.Second,
	}
	if c.AvailabilityBase != "" && c.AvailabilityKey == "" {
		log.Warn().Msg("AVAILABILITY_API_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
