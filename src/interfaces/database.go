package interfaces

import (
	"context"

	"campaign-pulse/src/models"
)

// -----------------------------------------------------------------------------
// IUserStore defines the contract for account storage used by authentication.
// -----------------------------------------------------------------------------

type IUserStore interface {

	// -----------------------------------------------------------------------------

	// Initialize opens the connection and creates the schema.
	Initialize(ctx context.Context) error

	// -----------------------------------------------------------------------------

	// CreateUser inserts a new account. Returns storage.ErrDuplicateEmail when the
	// email is already registered.
	CreateUser(ctx context.Context, user models.MUser) error

	// -----------------------------------------------------------------------------

	// GetUserByEmail returns storage.ErrUserNotFound when no account matches.
	GetUserByEmail(ctx context.Context, email string) (models.MUser, error)

	// -----------------------------------------------------------------------------

	// GetUserByID returns storage.ErrUserNotFound when no account matches.
	GetUserByID(ctx context.Context, id string) (models.MUser, error)

	// -----------------------------------------------------------------------------

	// Close the database connection
	Close() error
}
