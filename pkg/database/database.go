package database

import (
	"context"
	"fmt"
	"time"

	"account-service/internal/model"
	"account-service/pkg/config"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the persistence context for the service. It owns the connection pool
// and hands out one transactional session per request via WithSession. It is
// constructed once at boot and disposed with Close at shutdown.
type DB struct {
	orm *gorm.DB
	log *zap.Logger
}

// Connect opens the database connection pool and returns the persistence
// context. The schema is not touched here; call Migrate before serving.
func Connect(cfg *config.Config, log *zap.Logger) (*DB, error) {
	// Set up GORM logger configuration
	var logLevel logger.LogLevel
	if cfg.Server.Env == "development" {
		logLevel = logger.Info
	} else {
		logLevel = logger.Error
	}

	// Override log level if explicitly set in config
	switch cfg.Database.LogLevel {
	case "silent":
		logLevel = logger.Silent
	case "error":
		logLevel = logger.Error
	case "warn":
		logLevel = logger.Warn
	case "info":
		logLevel = logger.Info
	}

	// Configure Postgres options
	pgConfig := postgres.Config{
		DSN:                  cfg.Database.DSN(),
		PreferSimpleProtocol: true, // Disables implicit prepared statement usage
	}

	orm, err := gorm.Open(postgres.New(pgConfig), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := orm.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Set connection pool parameters
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return &DB{orm: orm, log: log}, nil
}

// New wraps an already opened GORM handle. Used by tests to run the service
// against an in-memory database.
func New(orm *gorm.DB, log *zap.Logger) *DB {
	return &DB{orm: orm, log: log}
}

// Migrate ensures all entity tables exist. It runs once at startup; a failure
// here is fatal for the process, not recoverable per request.
func (d *DB) Migrate() error {
	start := time.Now()
	d.log.Info("Starting database migration...")

	// Parents before children so foreign key constraints resolve
	if err := d.orm.AutoMigrate(
		&model.User{},
		&model.Account{},
		&model.Contact{},
		&model.Task{},
		&model.Note{},
		&model.Attachment{},
	); err != nil {
		d.log.Error("Database migration failed", zap.Error(err))
		return fmt.Errorf("database initialization failed: %w", err)
	}

	d.log.Info("Database migration completed successfully",
		zap.Duration("duration", time.Since(start)))
	return nil
}

// Ping verifies the underlying connection is alive.
func (d *DB) Ping(ctx context.Context) error {
	sqlDB, err := d.orm.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func (d *DB) Close() error {
	sqlDB, err := d.orm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// WithSession provides a transactional scope around a series of operations.
//
// fn runs inside a single transaction: the transaction commits when fn
// returns nil and rolls back when fn returns an error or panics. The
// connection is returned to the pool on every exit path.
//
// ErrNotFound returned by fn passes through untouched: an absent row is a
// normal negative result, not a storage failure. Every other error is logged
// with its full cause and translated into a *SessionError so callers see a
// single storage-failure shape regardless of which operation failed.
func (d *DB) WithSession(ctx context.Context, fn func(tx *gorm.DB) error) error {
	err := d.orm.WithContext(ctx).Transaction(fn)
	if err == nil {
		return nil
	}
	if IsNotFound(err) {
		return err
	}

	d.log.Error("Database session error", zap.Error(err))
	return &SessionError{Err: err}
}
