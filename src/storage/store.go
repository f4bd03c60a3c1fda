package storage

import (
	"fmt"
	"time"

	"campaign-pulse/src/interfaces"
	"campaign-pulse/src/logger"
	"campaign-pulse/src/models"
)

// connectBaseDelay is the first backoff step when pinging the database.
const connectBaseDelay = 250 * time.Millisecond

// -----------------------------------------------------------------------------

// NewUserStore picks the implementation named by storage.db_type.
func NewUserStore(cfg *models.MConfig, log *logger.Logger) (interfaces.IUserStore, error) {
	switch cfg.Storage.DBType {
	case "postgres":
		return NewPostgresUserStore(cfg, log.Named("PostgresDB")), nil
	case "sqlite", "":
		return NewSQLiteUserStore(cfg, log.Named("SQLiteDB")), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Storage.DBType)
	}
}

// -----------------------------------------------------------------------------

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (models.MUser, error) {
	var (
		u       models.MUser
		created int64
	)
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &created); err != nil {
		return models.MUser{}, err
	}
	u.CreatedAt = time.Unix(created, 0).UTC()
	return u, nil
}
