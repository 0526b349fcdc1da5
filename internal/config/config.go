package config

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"strconv"
)

const DefaultAdminPassword = "admin"

// Config for the inoutboard HTTP server.
type Config struct {
	HTTP struct {
		Addr string
	}
	DBEnabled bool
	Database  DatabaseConfig
	Redis     struct {
		Addr     string
		Password string
		DB       int
	}
	Auth struct {
		AdminPassword string
		CookieSecret  string
		// true when ADMIN_PASSWORD was not set and the default is in use
		DefaultPassword bool
	}
	PublicDir string
	Log       struct {
		Level  string
		Format string
	}
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MaxIdle  int
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" port=" + strconv.Itoa(c.Port) +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Database +
		" sslmode=" + c.SSLMode
}

func Load() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":3000")

	// Default to true; when the DB is unavailable the server falls back to
	// in-memory repositories so the board still works for local dev.
	cfg.DBEnabled = getEnv("DB_ENABLED", "true") == "true"
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = parseInt(getEnv("DB_PORT", "5432"), 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "inoutboard")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.MaxConns = parseInt(getEnv("DB_MAX_CONNS", "10"), 10)
	cfg.Database.MaxIdle = parseInt(getEnv("DB_MAX_IDLE", "5"), 5)

	// Empty REDIS_ADDR keeps the login throttle on the in-process KV.
	cfg.Redis.Addr = getEnv("REDIS_ADDR", "")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = 0

	cfg.Auth.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	if cfg.Auth.AdminPassword == "" {
		cfg.Auth.AdminPassword = DefaultAdminPassword
		cfg.Auth.DefaultPassword = true
	}
	cfg.Auth.CookieSecret = os.Getenv("COOKIE_SECRET")
	if cfg.Auth.CookieSecret == "" {
		cfg.Auth.CookieSecret = randomSecret()
	}

	cfg.PublicDir = getEnv("PUBLIC_DIR", "public")
	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")
	return cfg
}

// randomSecret generates a per-process cookie secret. Without a configured
// secret, admin sessions do not survive a restart.
func randomSecret() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
