// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backends selectable through STORAGE.
const (
	StorageMySQL  = "mysql"
	StorageMemory = "memory"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.
type Config struct {
	Env     string // APP_ENV (dev, local, prod, ...)
	Port    string // APP_PORT
	Storage string // STORAGE: mysql or memory

	DBUser    string // DB_USER
	DBPass    string // DB_PASS (empty allowed)
	DBHost    string // DB_HOST
	DBPort    string // DB_PORT
	DBName    string // DB_NAME
	DBMigrate bool   // DB_MIGRATE: create tables on startup

	JWTSecret     string // JWT_SECRET
	AccessTTLMin  int    // ACCESS_TOKEN_TTL_MIN
	BcryptCost    int    // BCRYPT_COST
	StaffUser     string // STAFF_USER
	StaffPassword string // STAFF_PASSWORD

	Location *time.Location // HOTEL_TZ, used to decide what "today" is

	Events    EventsConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Redis     RedisConfig
}

// Load reads configuration values from environment variables.  Every
// missing or malformed required variable is reported in the returned
// error.
func Load() (Config, error) {
	l := &loader{}
	cfg := Config{
		Env:     l.must("APP_ENV"),
		Port:    l.must("APP_PORT"),
		Storage: strings.ToLower(envStr("STORAGE", StorageMySQL)),

		JWTSecret:     l.must("JWT_SECRET"),
		AccessTTLMin:  envInt("ACCESS_TOKEN_TTL_MIN", 60),
		BcryptCost:    envInt("BCRYPT_COST", 10),
		StaffUser:     envStr("STAFF_USER", "admin"),
		StaffPassword: l.must("STAFF_PASSWORD"),

		Events:    LoadEventsConfig(),
		RateLimit: LoadRateLimitConfig(),
		Cache:     LoadCacheConfig(),
		Redis:     LoadRedisConfig(),
	}

	switch cfg.Storage {
	case StorageMySQL:
		cfg.DBUser = l.must("DB_USER")
		cfg.DBPass = os.Getenv("DB_PASS")
		cfg.DBHost = l.must("DB_HOST")
		cfg.DBPort = l.mustInt("DB_PORT")
		cfg.DBName = l.must("DB_NAME")
		cfg.DBMigrate = envBool("DB_MIGRATE", false)
	case StorageMemory:
	default:
		l.fail(fmt.Errorf("invalid STORAGE %q: want %s or %s", cfg.Storage, StorageMySQL, StorageMemory))
	}

	loc, err := time.LoadLocation(envStr("HOTEL_TZ", "UTC"))
	if err != nil {
		l.fail(fmt.Errorf("invalid HOTEL_TZ: %w", err))
		loc = time.UTC
	}
	cfg.Location = loc

	if cfg.Events.Enabled && cfg.Events.URL == "" {
		l.fail(errors.New("missing required env var: RABBITMQ_URL (EVENTS_ENABLED is set)"))
	}
	return cfg, l.err
}

// loader collects errors for required variables so that a single run
// reports all of them.
type loader struct {
	err error
}

func (l *loader) fail(err error) { l.err = errors.Join(l.err, err) }

// must retrieves the value of a required environment variable.
func (l *loader) must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		l.fail(fmt.Errorf("missing required env var: %s", key))
	}
	return v
}

// mustInt is like must but also checks that the value is an integer.
// The string is returned as is since callers use it in DSNs.
func (l *loader) mustInt(key string) string {
	s := l.must(key)
	if s == "" {
		return s
	}
	if _, err := strconv.Atoi(s); err != nil {
		l.fail(fmt.Errorf("invalid int for %s: %q", key, s))
	}
	return s
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
