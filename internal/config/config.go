package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries all runtime settings, loaded from the environment
type Config struct {
	MongoURI  string
	MongoDB   string
	RedisAddr string
	HTTPPort  string

	// JWTSecret is shared with the account service that mints tokens
	JWTSecret string
	// FlagSecret keys per-identity flag derivation
	FlagSecret string

	// RankFallback lets the judge fall back to a database solve count when
	// the counter store is down. Deployment policy, off by default.
	RankFallback bool

	LeaderboardTTL time.Duration
	CounterTTL     time.Duration
}

func Load() *Config {
	return &Config{
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:        getEnv("MONGO_DB", "flagarena"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		JWTSecret:      getEnv("JWT_SECRET", "super-secret-key-change-in-production"),
		FlagSecret:     getEnv("FLAG_SECRET", "flag-derivation-secret-change-me"),
		RankFallback:   getEnvBool("RANK_FALLBACK", false),
		LeaderboardTTL: getEnvDuration("LEADERBOARD_TTL", 30*time.Second),
		CounterTTL:     getEnvDuration("COUNTER_TTL", 14*24*time.Hour),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
