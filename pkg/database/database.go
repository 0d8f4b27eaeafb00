package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"github.com/starwars-blog/api/pkg/logger"
)

// Driver names the SQL backend behind a database URL.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

// Options tune how Open builds the connection.
type Options struct {
	// Debug logs every statement through the zap gorm logger.
	Debug bool
}

// ParseURL maps a DATABASE_URL to a driver and the DSN that driver expects.
// postgres:// is rewritten to postgresql://. sqlite URLs keep the
// three-slash prefix convention: sqlite:///app.db is relative to the working
// directory and sqlite:////tmp/app.db is absolute. Anything after ? is passed
// to the driver (e.g. _pragma=foreign_keys(1)). Bare paths select SQLite too.
func ParseURL(raw string) (Driver, string, error) {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return "", "", fmt.Errorf("empty database url")
	case strings.HasPrefix(raw, "postgres://"):
		return DriverPostgres, "postgresql://" + strings.TrimPrefix(raw, "postgres://"), nil
	case strings.HasPrefix(raw, "postgresql://"):
		return DriverPostgres, raw, nil
	case strings.HasPrefix(raw, "sqlite:///"):
		path := strings.TrimPrefix(raw, "sqlite:///")
		if path == "" || strings.HasPrefix(path, "?") {
			return "", "", fmt.Errorf("sqlite url %q has no path", raw)
		}
		return DriverSQLite, path, nil
	case strings.HasPrefix(raw, "sqlite://"):
		return "", "", fmt.Errorf("sqlite url %q must be sqlite:///relative.db or sqlite:////absolute.db", raw)
	case strings.Contains(raw, "://"):
		return "", "", fmt.Errorf("unsupported database url scheme in %q", raw)
	default:
		return DriverSQLite, raw, nil
	}
}

// Open opens a Gorm connection for databaseURL with retry and pooling defaults.
func Open(ctx context.Context, databaseURL string, opts Options) (*gorm.DB, error) {
	driver, dsn, err := ParseURL(databaseURL)
	if err != nil {
		return nil, err
	}

	logLevel := gormlogger.Silent
	if opts.Debug {
		logLevel = gormlogger.Info
	}
	gcfg := &gorm.Config{Logger: zapGormLogger{zap: logger.L(), level: logLevel}}

	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	case DriverSQLite:
		dialector = sqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	}

	b := backoff{
		maxRetries: 5,
		delay:      500 * time.Millisecond,
		maxDelay:   5 * time.Second,
	}

	var db *gorm.DB
	for attempt := 0; ; attempt++ {
		db, err = gorm.Open(dialector, gcfg)
		if err == nil {
			break
		}
		if attempt >= b.maxRetries {
			return nil, fmt.Errorf("open %s failed after retries: %w", driver, err)
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("open %s canceled: %w", driver, ctx.Err())
		case <-time.After(b.nextDelay(attempt)):
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db db() error: %w", err)
	}

	switch driver {
	case DriverPostgres:
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(25)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	case DriverSQLite:
		// one writer at a time, otherwise concurrent requests hit SQLITE_BUSY
		sqlDB.SetMaxOpenConns(1)
	}

	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctxPing); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return db, nil
}

// DriverOf reports which backend db is connected to.
func DriverOf(db *gorm.DB) Driver {
	if db.Dialector.Name() == "postgres" {
		return DriverPostgres
	}
	return DriverSQLite
}

// Ping checks the underlying connection; used by the readiness probe.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type backoff struct {
	maxRetries int
	delay      time.Duration
	maxDelay   time.Duration
}

func (b backoff) nextDelay(attempt int) time.Duration {
	d := b.delay << attempt
	if d > b.maxDelay {
		return b.maxDelay
	}
	return d
}
