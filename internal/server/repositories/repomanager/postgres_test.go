package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestManagers_ImplementInterface(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	var _ RepositoryManager = NewPostgresRepositoryManager(db)
	var _ RepositoryManager = NewInMemoryRepositoryManager()
}

func TestUsers_ReturnsPostgresRepo(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	m := NewPostgresRepositoryManager(db)
	if _, ok := m.Users().(*users.PostgresRepository); !ok {
		t.Fatalf("Users() = %T, want *users.PostgresRepository", m.Users())
	}
}

func TestRunMigrations_Success(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		if len(opts) != 0 {
			return errors.New("unexpected opts")
		}
		return nil
	}
	defer func() { gooseUpContext = orig }()

	m := NewPostgresRepositoryManager(db)
	if err := m.RunMigrations(context.Background()); err != nil {
		t.Fatalf("RunMigrations error: %v", err)
	}
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	defer func() { gooseUpContext = orig }()

	m := NewPostgresRepositoryManager(db)
	if err := m.RunMigrations(context.Background()); err == nil || err.Error() != "boom" {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestPing(t *testing.T) {
	db, mock := newDB(t)
	defer db.Close()

	mock.ExpectPing()
	mock.ExpectPing().WillReturnError(errors.New("down"))

	m := NewPostgresRepositoryManager(db)
	if err := m.Ping(context.Background()); err != nil {
		t.Fatalf("first ping: %v", err)
	}
	if err := m.Ping(context.Background()); err == nil {
		t.Fatalf("expected ping error")
	}
}

func TestInTx_CommitAndRollback(t *testing.T) {
	db, mock := newDB(t)
	defer db.Close()

	m := NewPostgresRepositoryManager(db)

	mock.ExpectBegin()
	mock.ExpectCommit()
	err := m.InTx(context.Background(), func(ctx context.Context, repo users.Repository) error {
		if repo == nil {
			t.Fatal("nil repo")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("InTx commit: %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectRollback()
	err = m.InTx(context.Background(), func(ctx context.Context, repo users.Repository) error {
		return errors.New("conflict")
	})
	if err == nil || err.Error() != "conflict" {
		t.Fatalf("expected conflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestInMemoryManager(t *testing.T) {
	m := NewInMemoryRepositoryManager()
	ctx := context.Background()

	if err := m.RunMigrations(ctx); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}
	if err := m.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	err := m.InTx(ctx, func(ctx context.Context, repo users.Repository) error {
		if repo != m.Users() {
			t.Fatal("InTx must hand out the shared repository")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("InTx: %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := m.Ping(cancelled); err == nil {
		t.Fatal("Ping must fail on a cancelled context")
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
