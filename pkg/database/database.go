package database

import (
	"fmt"
	"log"
	"regexp"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const connectAttempts = 5

// Options selects the driver and DSN. Driver is one of postgres, mysql or sqlite.
type Options struct {
	Driver string
	DSN    string
	Debug  bool
}

var (
	keywordPassword = regexp.MustCompile(`(password=)(\S+)`)
	urlPassword     = regexp.MustCompile(`(://[^:/@]+:)([^@]+)(@)`)
)

// Connect opens the database, retrying while it comes up, and tunes the pool.
func Connect(opts Options, zl zerolog.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(opts)
	if err != nil {
		return nil, err
	}

	level := logger.Warn
	if opts.Debug {
		level = logger.Info
	}
	gormLogger := logger.New(
		log.New(zl, "", 0),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	cfg := &gorm.Config{
		Logger:         gormLogger,
		PrepareStmt:    false,
		TranslateError: true,
	}

	var db *gorm.DB
	for i := 1; i <= connectAttempts; i++ {
		db, err = gorm.Open(dialector, cfg)
		if err == nil {
			break
		}
		zl.Warn().Err(err).Int("attempt", i).Msg("database not ready, retrying")
		time.Sleep(time.Duration(i) * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("connect %s after %d attempts: %w", opts.Driver, connectAttempts, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if opts.Driver == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	zl.Info().Str("driver", opts.Driver).Str("dsn", MaskDSN(opts.DSN)).Msg("database connection established")
	return db, nil
}

func dialectorFor(opts Options) (gorm.Dialector, error) {
	switch opts.Driver {
	case "", "postgres":
		return postgres.New(postgres.Config{
			DSN:                  opts.DSN,
			PreferSimpleProtocol: true, // Disables implicit prepared statements for pgbouncer transaction mode
		}), nil
	case "mysql":
		return mysql.Open(opts.DSN), nil
	case "sqlite":
		return sqlite.Open(opts.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", opts.Driver)
	}
}

// MaskDSN hides the password part of a keyword or URL style DSN.
func MaskDSN(dsn string) string {
	masked := keywordPassword.ReplaceAllString(dsn, "${1}***")
	return urlPassword.ReplaceAllString(masked, "${1}***${3}")
}
