package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"campaign-pulse/src/helpers"
	"campaign-pulse/src/logger"
	"campaign-pulse/src/models"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// -----------------------------------------------------------------------------

type SQLiteUserStore struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewSQLiteUserStore(cfg *models.MConfig, log *logger.Logger) *SQLiteUserStore {
	return &SQLiteUserStore{
		Config: cfg,
		Logger: log,
	}
}

// -----------------------------------------------------------------------------

func (d *SQLiteUserStore) Initialize(ctx context.Context) error {
	dsn := d.Config.Storage.DBPath

	// Open DB
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return helpers.NewDatabaseError("open sqlite", err)
	}
	if dsn == ":memory:" {
		// Every pooled connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	}

	err = helpers.RetryWithBackoff(ctx, d.Logger, "sqlite ping", d.Config.Storage.ConnectRetries, connectBaseDelay, func() error {
		return db.PingContext(ctx)
	})
	if err != nil {
		db.Close()
		return helpers.NewDatabaseError("connect sqlite", err)
	}

	d.DB = db

	// PRAGMA optimizations
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode = WAL;"); err != nil {
		d.Logger.Warning("Failed to set WAL mode: %v", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA synchronous = NORMAL;"); err != nil {
		d.Logger.Warning("Failed to set synchronous mode: %v", err)
	}

	return d.createTables(ctx)
}

// -----------------------------------------------------------------------------

func (d *SQLiteUserStore) createTables(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);
	`
	if _, err := d.DB.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteUserStore) CreateUser(ctx context.Context, user models.MUser) error {
	_, err := d.DB.ExecContext(ctx, `
		INSERT INTO users (id, email, name, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, user.ID, user.Email, user.Name, user.PasswordHash, user.CreatedAt.Unix())
	if err != nil {
		if isSQLiteConstraintError(err) {
			return ErrDuplicateEmail
		}
		return helpers.NewDatabaseError("insert user", err)
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteUserStore) GetUserByEmail(ctx context.Context, email string) (models.MUser, error) {
	return d.getUser(ctx, "email", email)
}

func (d *SQLiteUserStore) GetUserByID(ctx context.Context, id string) (models.MUser, error) {
	return d.getUser(ctx, "id", id)
}

func (d *SQLiteUserStore) getUser(ctx context.Context, column, value string) (models.MUser, error) {
	row := d.DB.QueryRowContext(ctx, fmt.Sprintf(`
		SELECT id, email, name, password_hash, created_at FROM users WHERE %s = ?
	`, column), value)

	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.MUser{}, ErrUserNotFound
	}
	if err != nil {
		return models.MUser{}, helpers.NewDatabaseError("select user", err)
	}
	return user, nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteUserStore) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}

// -----------------------------------------------------------------------------

func isSQLiteConstraintError(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT || code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}
