// Package config loads beepath settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/beepath/grid"
)

// ErrInvalidConfig is returned when a variable is present but malformed.
var ErrInvalidConfig = errors.New("config: invalid value")

// Config holds the application's configuration values.
type Config struct {
	Addr          string        // Address the HTTP server listens on
	BaseURL       string        // Prefix for every API route
	GinMode       string        // Gin mode (debug, release, test)
	LogLevel      string        // logrus level name
	LogFormat     string        // "text" or "json"
	RedisAddr     string        // Redis host:port; empty means in-memory store
	RedisPassword string        // Redis password
	RedisDB       int           // Redis logical database
	SessionTTL    time.Duration // Lifetime of a stored grid
	SearchDelay   time.Duration // Pause after each explored cell
	PathDelay     time.Duration // Pause after each path cell
	GridRows      int           // Default rows for new grids
	GridCols      int           // Default columns for new grids
	WallDensity   float64       // Default density of the random pattern
}

// Load reads the environment after applying the given .env files (".env"
// when none are named). Missing files are ignored; malformed values yield
// ErrInvalidConfig.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load env file: %w", err)
	}

	var errs []error
	cfg := Config{
		Addr:          getEnvWithDefault("BEEPATH_ADDR", ":8080"),
		BaseURL:       getEnvWithDefault("BEEPATH_BASE_URL", "/api"),
		GinMode:       getEnvWithDefault("GIN_MODE", "release"),
		LogLevel:      getEnvWithDefault("LOG_LEVEL", "info"),
		LogFormat:     getEnvWithDefault("LOG_FORMAT", "text"),
		RedisAddr:     getEnvWithDefault("REDIS_ADDR", ""),
		RedisPassword: getEnvWithDefault("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0, &errs),
		SessionTTL:    getEnvAsDuration("SESSION_TTL", time.Hour, &errs),
		SearchDelay:   getEnvAsDuration("SEARCH_DELAY", 5*time.Millisecond, &errs),
		PathDelay:     getEnvAsDuration("PATH_DELAY", 40*time.Millisecond, &errs),
		GridRows:      getEnvAsInt("GRID_ROWS", 20, &errs),
		GridCols:      getEnvAsInt("GRID_COLS", 40, &errs),
		WallDensity:   getEnvAsFloat("WALL_DENSITY", 0.2, &errs),
	}
	if cfg.GridRows < 1 || cfg.GridCols < 1 {
		errs = append(errs, fmt.Errorf("%w: grid %dx%d", ErrInvalidConfig, cfg.GridRows, cfg.GridCols))
	}
	if math.IsNaN(cfg.WallDensity) || cfg.WallDensity < 0 || cfg.WallDensity > grid.MaxDensity {
		errs = append(errs, fmt.Errorf("%w: WALL_DENSITY %v outside [0, %v]", ErrInvalidConfig, cfg.WallDensity, grid.MaxDensity))
	}
	if cfg.SessionTTL < 0 || cfg.SearchDelay < 0 || cfg.PathDelay < 0 {
		errs = append(errs, fmt.Errorf("%w: durations must not be negative", ErrInvalidConfig))
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("%w: LOG_FORMAT %q", ErrInvalidConfig, cfg.LogFormat))
	}
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("%w: LOG_LEVEL %q", ErrInvalidConfig, cfg.LogLevel))
	}
	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NewLogger builds a logrus logger from LogLevel and LogFormat.
func (c Config) NewLogger() (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: LOG_LEVEL %q", ErrInvalidConfig, c.LogLevel)
	}
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetLevel(lvl)
	if c.LogFormat == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return l, nil
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int, errs *[]error) int {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%w: %s must be an integer: %v", ErrInvalidConfig, key, err))
		return defaultValue
	}
	return v
}

func getEnvAsFloat(key string, defaultValue float64, errs *[]error) float64 {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%w: %s must be a number: %v", ErrInvalidConfig, key, err))
		return defaultValue
	}
	return v
}

func getEnvAsDuration(key string, defaultValue time.Duration, errs *[]error) time.Duration {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	v, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%w: %s must be a duration: %v", ErrInvalidConfig, key, err))
		return defaultValue
	}
	return v
}
