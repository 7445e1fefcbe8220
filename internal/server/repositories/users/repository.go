// Package users provides the user record repository. Every operation issues
// exactly one statement; zero rows returned or affected is surfaced as an
// error, never as an empty success.
package users

import (
	"context"

	"github.com/dmitrijs2005/catkeeper/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, id int64, fields map[string]any) (*models.MessageResponse, error)
	Delete(ctx context.Context, id int64) (*models.MessageResponse, error)
	// GetByEmail is the login lookup: it is the only read that includes the
	// password hash, for credential comparison by the auth service.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
