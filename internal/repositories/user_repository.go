package repositories

import (
	"context"

	"github.com/CCMS-2025/center-service/internal/models"
)

// UserRepository covers the four role tables. Every operation that takes a
// role addresses exactly one table; FindByCredentials is the only scan that
// walks all of them.
type UserRepository interface {
	// Create allocates the role's next id, sets it on the account and
	// appends the record. Usernames are unique within one role table.
	Create(ctx context.Context, account *models.UserAccount) error

	GetByID(ctx context.Context, role models.Role, id string) (*models.UserAccount, error)
	GetByUsername(ctx context.Context, role models.Role, username string) (*models.UserAccount, error)
	List(ctx context.Context, role models.Role) ([]*models.UserAccount, error)

	// FindByCredentials scans the role tables in models.RolePriority order
	// and returns the first username/password match. No match is
	// ErrNotFound, not a storage failure.
	FindByCredentials(ctx context.Context, username, password string) (*models.UserAccount, error)

	// Update rewrites the record with the matching id in its role table.
	Update(ctx context.Context, account *models.UserAccount) (bool, error)

	// Delete drops the record with the given id. Deleting an id that does
	// not exist reports no change.
	Delete(ctx context.Context, role models.Role, id string) (bool, error)
}
