package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/catkeeper/internal/common"
	"github.com/dmitrijs2005/catkeeper/internal/server/auth"
	"github.com/dmitrijs2005/catkeeper/internal/server/models"
	"github.com/dmitrijs2005/catkeeper/internal/server/policy"
	"github.com/dmitrijs2005/catkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/catkeeper/internal/server/upload"
	"github.com/dmitrijs2005/catkeeper/internal/server/validation"
)

// CreateCatInput is the assembled cat creation request. Filename and Coords
// are side inputs produced by the upload and geolocation collaborators
// before the service runs; their absence is a hard error, not a validation
// violation.
type CreateCatInput struct {
	Name      string
	Weight    float64
	Birthdate time.Time
	Filename  string
	Coords    *models.Coordinates
}

// CatService manages cat records. Creation requires an authenticated
// principal and forces ownership to that principal; update and delete only
// require authentication, without an ownership re-check.
type CatService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       upload.Store
}

func NewCatService(db *sql.DB, m repomanager.RepositoryManager, store upload.Store) *CatService {
	return &CatService{db: db, repomanager: m, store: store}
}

// List returns all cats.
func (s *CatService) List(ctx context.Context) ([]*models.Cat, error) {
	repo := s.repomanager.Cats(s.db)
	return repo.List(ctx)
}

// Get returns one cat by id.
func (s *CatService) Get(ctx context.Context, id int64) (*models.Cat, error) {
	repo := s.repomanager.Cats(s.db)
	return repo.Get(ctx, id)
}

// ImageURL returns a presigned download URL for the cat's stored image.
func (s *CatService) ImageURL(ctx context.Context, id int64) (string, error) {
	repo := s.repomanager.Cats(s.db)
	cat, err := repo.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return s.store.PresignGet(ctx, cat.Filename)
}

// Create registers a new cat owned by the principal. The payload fields are
// validated first, then the side inputs are checked, then authorization.
func (s *CatService) Create(ctx context.Context, p *auth.Principal, in *CreateCatInput) (*models.MessageResponse, error) {
	v := &validation.Result{}
	v.MinLength("cat_name", in.Name, 2, "Invalid cat name")
	v.Positive("weight", in.Weight, "Invalid weight")
	if in.Birthdate.IsZero() {
		v.Add("birthdate", "Invalid birthdate")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	if in.Filename == "" {
		return nil, common.E(common.ErrMissingSideInput, "File is missing")
	}
	if in.Coords == nil {
		return nil, common.E(common.ErrMissingSideInput, "Coordinates are missing")
	}

	if err := policy.Authorize(p, policy.ActionCreate, policy.TargetCat); err != nil {
		return nil, err
	}

	cat := &models.Cat{
		Name:      in.Name,
		Weight:    in.Weight,
		Birthdate: in.Birthdate,
		Owner:     p.UserID,
		Filename:  in.Filename,
		Lat:       in.Coords.Lat,
		Lng:       in.Coords.Lng,
	}

	repo := s.repomanager.Cats(s.db)
	created, err := repo.Create(ctx, cat)
	if err != nil {
		return nil, err
	}

	return &models.MessageResponse{Message: "Cat added", ID: created.ID}, nil
}

// Update modifies the cat addressed by id. Any authenticated principal.
func (s *CatService) Update(ctx context.Context, p *auth.Principal, id int64, fields map[string]any) (*models.MessageResponse, error) {
	if err := s.validateUpdate(fields); err != nil {
		return nil, err
	}
	if err := policy.Authorize(p, policy.ActionUpdate, policy.TargetCat); err != nil {
		return nil, err
	}
	repo := s.repomanager.Cats(s.db)
	return repo.Update(ctx, id, fields)
}

// Delete removes the cat addressed by id. Any authenticated principal.
func (s *CatService) Delete(ctx context.Context, p *auth.Principal, id int64) (*models.MessageResponse, error) {
	if err := policy.Authorize(p, policy.ActionDelete, policy.TargetCat); err != nil {
		return nil, err
	}
	repo := s.repomanager.Cats(s.db)
	return repo.Delete(ctx, id)
}

func (s *CatService) validateUpdate(fields map[string]any) error {
	v := &validation.Result{}

	if raw, ok := fields["cat_name"]; ok {
		name, _ := raw.(string)
		v.MinLength("cat_name", name, 2, "Invalid cat name")
	}
	if raw, ok := fields["weight"]; ok {
		weight, _ := raw.(float64)
		v.Positive("weight", weight, "Invalid weight")
	}

	return v.Err()
}
