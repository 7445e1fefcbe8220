// Package geo supplies the coordinate pair attached to cat creation requests.
package geo

import (
	"context"

	"github.com/dmitrijs2005/catkeeper/internal/server/models"
)

// Source resolves request coordinates before the mutation pipeline runs.
type Source interface {
	Locate(ctx context.Context) (*models.Coordinates, error)
}

// Static always returns a fixed coordinate pair, typically the configured
// default location of the deployment.
type Static struct {
	lat float64
	lng float64
}

func NewStatic(lat, lng float64) *Static {
	return &Static{lat: lat, lng: lng}
}

func (s *Static) Locate(_ context.Context) (*models.Coordinates, error) {
	return &models.Coordinates{Lat: s.lat, Lng: s.lng}, nil
}
