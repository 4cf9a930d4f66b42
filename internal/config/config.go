package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// App
	Env string // dev / staging / prod
	// HTTP
	HTTPAddr         string
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	CORSOrigin       string

	// Auth / security
	JWTSecret         string
	TokenTTL          time.Duration
	BcryptCost        int
	PasswordMinLength int
	PasswordMaxLength int

	// Storage
	MongoURI string
	MongoDB  string
}

// Load reads configuration from the environment. Every knob has a hardcoded
// default so the service runs with no environment at all; secrets must still
// be overridden outside dev.
func Load() (*Config, error) {
	cfg := &Config{
		Env:        getEnv("ENV", "dev"),
		HTTPAddr:   getEnv("HTTP_ADDR", ":8080"),
		CORSOrigin: getEnv("CORS_ORIGIN", "http://localhost:3000"),
		JWTSecret:  getEnv("JWT_SECRET", "jwt_secret_string"),
		MongoURI:   getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:    getEnv("MONGODB_DB", "development"),
	}

	ttl, err := getDuration("AUTH_TOKEN_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.TokenTTL = ttl

	cost, err := getInt("BCRYPT_COST", 10)
	if err != nil {
		return nil, err
	}
	cfg.BcryptCost = cost

	minLen, err := getInt("USER_PASSWORD_MIN_LENGTH", 6)
	if err != nil {
		return nil, err
	}
	cfg.PasswordMinLength = minLen

	maxLen, err := getInt("USER_PASSWORD_MAX_LENGTH", 64)
	if err != nil {
		return nil, err
	}
	cfg.PasswordMaxLength = maxLen

	rt, err := getDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPReadTimeout = rt

	wt, err := getDuration("HTTP_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPWriteTimeout = wt

	it, err := getDuration("HTTP_IDLE_TIMEOUT", time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.HTTPIdleTimeout = it

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	// Accept plain seconds for compatibility with numeric env values.
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q: %w", key, v, err)
	}
	return d, nil
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %q: %w", key, v, err)
	}
	return n, nil
}
