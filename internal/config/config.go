package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	DatabaseDSN string
	DBTimeZone  string

	JWTSecret   string
	JWTTTLHours int

	IdentityURL      string
	IdentityCacheTTL time.Duration
	// sent on lookups that have no caller token, i.e. login
	IdentityServiceToken string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Location used to turn calendar dates into [00:00, 24:00) ranges
	Location *time.Location

	LowStockThreshold int
}

// Load reads configuration from the environment. Call godotenv.Load before
// it if a .env file should be honoured.
func Load() Config {
	cfg := Config{}
	cfg.Port = getEnv("PORT", "3000")
	cfg.DBTimeZone = getEnv("DB_TIMEZONE", "America/Sao_Paulo")
	cfg.DatabaseDSN = os.Getenv("DATABASE_URL")
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_USER", "postgres"),
			getEnv("DB_PASSWORD", "postgres"),
			getEnv("DB_NAME", "loja"),
			getEnv("DB_PORT", "5432"),
			cfg.DBTimeZone,
		)
	}

	cfg.JWTSecret = getEnv("JWT_SECRET", "your-super-secret-key-change-in-production")
	cfg.JWTTTLHours = getInt("JWT_TTL_HOURS", 24)

	cfg.IdentityURL = getEnv("IDENTITY_URL", "http://usuario-app:8081")
	cfg.IdentityCacheTTL = getDuration("IDENTITY_CACHE_TTL", 5*time.Minute)
	cfg.IdentityServiceToken = os.Getenv("IDENTITY_SERVICE_TOKEN")

	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RedisDB = getInt("REDIS_DB", 0)

	cfg.Location = loadLocation(getEnv("APP_TIMEZONE", cfg.DBTimeZone))
	cfg.LowStockThreshold = getInt("LOW_STOCK_THRESHOLD", 10)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid integer for %s: %s", key, v)
			return def
		}
		return n
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid duration for %s: %s", key, v)
			return def
		}
		return d
	}
	return def
}

func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		// tzdata may be missing in slim images
		log.Printf("Warning: timezone %s not available, using UTC", name)
		return time.UTC
	}
	return loc
}
