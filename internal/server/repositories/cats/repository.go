// Package cats provides the cat record repository, following the same
// one-statement, affected-rows-checked contract as the users repository.
package cats

import (
	"context"

	"github.com/dmitrijs2005/catkeeper/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.Cat, error)
	Get(ctx context.Context, id int64) (*models.Cat, error)
	Create(ctx context.Context, cat *models.Cat) (*models.Cat, error)
	Update(ctx context.Context, id int64, fields map[string]any) (*models.MessageResponse, error)
	Delete(ctx context.Context, id int64) (*models.MessageResponse, error)
}
