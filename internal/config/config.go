package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds the runtime settings of the API and the CLI tools.
type Config struct {
	Port     string
	Env      string
	LogLevel string

	DBDriver    string
	DatabaseURL string
	DBHost      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBPort      string
	Migrations  bool
	SeedDemo    bool

	JWTSecret      string
	ReportTimezone string
	SnowflakeNode  int64
	CORSOrigins    string

	BackupBucket string
	BackupDir    string
}

// Load reads .env (when present) and the process environment.
// Precedence: explicit env var > .env file > default.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, relying on system env")
	}

	cfg := Config{}
	cfg.Port = getEnv("PORT", "3000")
	cfg.Env = getEnv("APP_ENV", "development")
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")

	cfg.DBDriver = strings.ToLower(getEnv("DB_DRIVER", "postgres"))
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.DBHost = getEnv("DB_HOST", "localhost")
	cfg.DBUser = getEnv("DB_USER", "postgres")
	cfg.DBPassword = os.Getenv("DB_PASSWORD")
	cfg.DBName = getEnv("DB_NAME", "pos")
	cfg.DBPort = getEnv("DB_PORT", "5432")
	cfg.Migrations = ParseBool("DB_MIGRATIONS", false)
	cfg.SeedDemo = ParseBool("DB_SEED_DEMO", false)

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	cfg.ReportTimezone = getEnv("REPORT_TIMEZONE", "UTC")
	cfg.SnowflakeNode = parseInt("SNOWFLAKE_NODE", 1)
	cfg.CORSOrigins = getEnv("CORS_ORIGINS", "*")

	cfg.BackupBucket = os.Getenv("BACKUP_BUCKET")
	cfg.BackupDir = os.Getenv("BACKUP_DIR")
	return cfg
}

// DSN returns DATABASE_URL when set, otherwise a driver specific DSN built from the DB_* parts.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	switch c.DBDriver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
	case "sqlite":
		return c.DBName + ".db?_foreign_keys=on"
	default:
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
	}
}

// Location resolves REPORT_TIMEZONE, falling back to UTC when the zone database lacks it.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.ReportTimezone)
	if err != nil {
		log.Warn().Str("timezone", c.ReportTimezone).Msg("unknown report timezone, using UTC")
		return time.UTC
	}
	return loc
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ParseBool reads an env var as bool with default.
func ParseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Warn().Str("key", key).Str("value", v).Msg("invalid boolean")
			return def
		}
		return b
	}
	return def
}

func parseInt(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			log.Warn().Str("key", key).Str("value", v).Msg("invalid integer")
			return def
		}
		return n
	}
	return def
}

// MigrationURL returns a postgres URL for golang-migrate, which does not accept keyword DSNs.
func (c Config) MigrationURL() string {
	if strings.HasPrefix(c.DatabaseURL, "postgres://") || strings.HasPrefix(c.DatabaseURL, "postgresql://") {
		return c.DatabaseURL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}
