package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds service configuration.
type Config struct {
	DatabaseURL     string
	ServerAddr      string
	MigrationsDir   string
	DiscordToken    string
	DiscordAppID    string
	DiscordGuildID  string
	AdminKeyHash    string
	QuizFile        string
	PoolLogInterval time.Duration
}

// Load reads configuration from environment.
func Load() (*Config, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		user := getenv("POSTGRES_USER", "coupon_quest")
		pass := getenv("POSTGRES_PASSWORD", "coupon_quest_pass")
		db := getenv("POSTGRES_DB", "coupon_quest")
		host := getenv("POSTGRES_HOST", "localhost")
		port := getenv("POSTGRES_PORT", "5432")
		sslmode := getenv("DATABASE_SSLMODE", "disable")
		dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", user, pass, host, port, db, sslmode)
	}

	return &Config{
		DatabaseURL:     dsn,
		ServerAddr:      getenv("SERVER_ADDR", "0.0.0.0:3000"),
		MigrationsDir:   getenv("MIGRATIONS_DIR", "internal/migrations"),
		DiscordToken:    os.Getenv("DISCORD_TOKEN"),
		DiscordAppID:    os.Getenv("DISCORD_APP_ID"),
		DiscordGuildID:  os.Getenv("DISCORD_GUILD_ID"),
		AdminKeyHash:    os.Getenv("ADMIN_KEY_HASH"),
		QuizFile:        os.Getenv("QUIZ_FILE"),
		PoolLogInterval: parseDuration(getenv("POOL_LOG_INTERVAL", "1m"), time.Minute),
	}, nil
}

func getenv(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val
}

func parseDuration(val string, def time.Duration) time.Duration {
	if val == "" {
		return def
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return def
	}
	return d
}
