package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"campaign-pulse/src/helpers"
	"campaign-pulse/src/logger"
	"campaign-pulse/src/models"

	"github.com/lib/pq"
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

// -----------------------------------------------------------------------------

type PostgresUserStore struct {
	Config *models.MConfig
	DB     *sql.DB
	Schema string
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewPostgresUserStore(cfg *models.MConfig, log *logger.Logger) *PostgresUserStore {
	// Schema named after the application, e.g. campaign-pulse -> campaign_pulse
	schema := strings.ReplaceAll(strings.ToLower(cfg.Name), "-", "_")
	if schema == "" {
		schema = "public"
	}

	return &PostgresUserStore{
		Config: cfg,
		Schema: schema,
		Logger: log,
	}
}

// -----------------------------------------------------------------------------

func (d *PostgresUserStore) Initialize(ctx context.Context) error {
	dsn := d.Config.Storage.DBConnectionString
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return helpers.NewDatabaseError("open postgres", err)
	}

	err = helpers.RetryWithBackoff(ctx, d.Logger, "postgres ping", d.Config.Storage.ConnectRetries, connectBaseDelay, func() error {
		return db.PingContext(ctx)
	})
	if err != nil {
		db.Close()
		return helpers.NewDatabaseError("connect postgres", err)
	}

	d.DB = db

	// Create Schema
	if _, err := d.DB.ExecContext(ctx, fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS "%s"`, d.Schema)); err != nil {
		return fmt.Errorf("failed to create schema %s: %w", d.Schema, err)
	}

	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			created_at BIGINT NOT NULL
		);
	`, d.table())
	if _, err := d.DB.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}

	d.Logger.Info("PostgresDB initialized successfully (Schema: %s)", d.Schema)
	return nil
}

func (d *PostgresUserStore) table() string {
	return fmt.Sprintf(`"%s"."users"`, d.Schema)
}

// -----------------------------------------------------------------------------

func (d *PostgresUserStore) CreateUser(ctx context.Context, user models.MUser) error {
	_, err := d.DB.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (id, email, name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, d.table()), user.ID, user.Email, user.Name, user.PasswordHash, user.CreatedAt.Unix())
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return ErrDuplicateEmail
		}
		return helpers.NewDatabaseError("insert user", err)
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresUserStore) GetUserByEmail(ctx context.Context, email string) (models.MUser, error) {
	return d.getUser(ctx, "email", email)
}

func (d *PostgresUserStore) GetUserByID(ctx context.Context, id string) (models.MUser, error) {
	return d.getUser(ctx, "id", id)
}

func (d *PostgresUserStore) getUser(ctx context.Context, column, value string) (models.MUser, error) {
	row := d.DB.QueryRowContext(ctx, fmt.Sprintf(`
		SELECT id, email, name, password_hash, created_at FROM %s WHERE %s = $1
	`, d.table(), column), value)

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

func (d *PostgresUserStore) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
