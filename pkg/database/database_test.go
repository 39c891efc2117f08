package database_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"account-service/internal/model"
	"account-service/pkg/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var dbSeq int64

// newMockDB wires the session manager to a sqlmock connection so tests can
// assert the exact begin/commit/rollback traffic.
func newMockDB(t *testing.T) (*database.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	orm, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}

	return database.New(orm, zap.NewNop()), mock
}

// newSQLiteDB opens a fresh in-memory database with foreign keys enforced
// and the schema migrated.
func newSQLiteDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:dbtest%d?mode=memory&cache=shared&_fk=1", atomic.AddInt64(&dbSeq, 1))
	orm, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := orm.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	db := database.New(orm, zap.NewNop())
	require.NoError(t, db.Migrate())
	return db
}

func TestWithSessionCommitsOnSuccess(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := db.WithSession(context.Background(), func(tx *gorm.DB) error {
		return nil
	})
	if err != nil {
		t.Fatalf("with session: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestWithSessionRollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("write failed")
	err := db.WithSession(context.Background(), func(tx *gorm.DB) error {
		return boom
	})
	if err == nil {
		t.Fatal("expected an error")
	}

	var sessionErr *database.SessionError
	if !errors.As(err, &sessionErr) {
		t.Fatalf("expected *SessionError, got %T: %v", err, err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("cause not preserved through Unwrap: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestWithSessionRollsBackOnQueryFailure(t *testing.T) {
	db, mock := newMockDB(t)

	boom := errors.New("connection reset")
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "accounts"`).WillReturnError(boom)
	mock.ExpectRollback()

	err := db.WithSession(context.Background(), func(tx *gorm.DB) error {
		return tx.Create(&model.Account{Name: "doomed"}).Error
	})

	var sessionErr *database.SessionError
	if !errors.As(err, &sessionErr) {
		t.Fatalf("expected *SessionError, got %T: %v", err, err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("cause not preserved: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestWithSessionPassesNotFoundThrough(t *testing.T) {
	db, mock := newMockDB(t)

	// Absent rows are a normal negative result: still rolled back, but the
	// error must come back untranslated so callers can answer 404.
	mock.ExpectBegin()
	mock.ExpectRollback()

	err := db.WithSession(context.Background(), func(tx *gorm.DB) error {
		return database.ErrNotFound
	})
	if !errors.Is(err, database.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	var sessionErr *database.SessionError
	if errors.As(err, &sessionErr) {
		t.Fatal("not-found must not be wrapped as a session error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestWithSessionPassesGormNotFoundThrough(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "accounts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))
	mock.ExpectRollback()

	err := db.WithSession(context.Background(), func(tx *gorm.DB) error {
		var account model.Account
		return tx.First(&account, 42).Error
	})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected gorm.ErrRecordNotFound, got %v", err)
	}
	if !database.IsNotFound(err) {
		t.Fatal("IsNotFound must recognize gorm's sentinel")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, database.IsNotFound(database.ErrNotFound))
	assert.True(t, database.IsNotFound(gorm.ErrRecordNotFound))
	assert.True(t, database.IsNotFound(fmt.Errorf("lookup: %w", database.ErrNotFound)))
	assert.False(t, database.IsNotFound(errors.New("disk full")))
	assert.False(t, database.IsNotFound(nil))
}

func TestSessionErrorUnwrap(t *testing.T) {
	cause := errors.New("constraint violated")
	err := &database.SessionError{Err: cause}

	assert.EqualError(t, err, "database session error: constraint violated")
	assert.ErrorIs(t, err, cause)
}

func TestMigrateCreatesAllTables(t *testing.T) {
	db := newSQLiteDB(t)

	err := db.WithSession(context.Background(), func(tx *gorm.DB) error {
		for _, table := range []string{"users", "accounts", "contacts", "tasks", "notes", "attachments"} {
			if !tx.Migrator().HasTable(table) {
				return fmt.Errorf("table %s missing", table)
			}
		}
		return nil
	})
	require.NoError(t, err)

	// Running it again must be a no-op, not a failure
	require.NoError(t, db.Migrate())
}

func TestMigrateFailureIsFatalShaped(t *testing.T) {
	orm, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:dbtest%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := orm.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	db := database.New(orm, zap.NewNop())
	err = db.Migrate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database initialization failed")
}

func TestWithSessionPersistsCommittedWork(t *testing.T) {
	db := newSQLiteDB(t)
	ctx := context.Background()

	err := db.WithSession(ctx, func(tx *gorm.DB) error {
		return tx.Create(&model.Account{Name: "Acme"}).Error
	})
	require.NoError(t, err)

	var accounts []model.Account
	err = db.WithSession(ctx, func(tx *gorm.DB) error {
		return tx.Find(&accounts).Error
	})
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "Acme", accounts[0].Name)
	assert.NotZero(t, accounts[0].ID)
}

func TestWithSessionDiscardsRolledBackWork(t *testing.T) {
	db := newSQLiteDB(t)
	ctx := context.Background()

	boom := errors.New("abort after insert")
	err := db.WithSession(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&model.Account{Name: "ghost"}).Error; err != nil {
			return err
		}
		return boom
	})
	require.True(t, errors.Is(err, boom))

	var count int64
	err = db.WithSession(ctx, func(tx *gorm.DB) error {
		return tx.Model(&model.Account{}).Count(&count).Error
	})
	require.NoError(t, err)
	assert.Zero(t, count, "rolled back insert must not be visible")
}

func TestPingAndClose(t *testing.T) {
	db := newSQLiteDB(t)
	ctx := context.Background()

	require.NoError(t, db.Ping(ctx))
	require.NoError(t, db.Close())
	assert.Error(t, db.Ping(ctx), "ping after close must fail")
}
