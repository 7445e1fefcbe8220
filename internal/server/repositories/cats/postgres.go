package cats

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/catkeeper/internal/common"
	"github.com/dmitrijs2005/catkeeper/internal/dbx"
	"github.com/dmitrijs2005/catkeeper/internal/server/models"
)

// UpdateColumns is the allow-listed field set for partial cat updates.
// Owner, filename and coordinates are set once at creation and are not
// reachable through this path.
var UpdateColumns = map[string]string{
	"cat_name":  "cat_name",
	"weight":    "weight",
	"birthdate": "birthdate",
}

var updateBuilder = dbx.NewUpdateBuilder("cats", "cat_id", UpdateColumns)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Cat, error) {

	query :=
		`SELECT cat_id, cat_name, weight, owner, filename, birthdate, lat, lng FROM cats
		 ORDER BY cat_id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Cat
	for rows.Next() {
		cat := &models.Cat{}
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Weight, &cat.Owner,
			&cat.Filename, &cat.Birthdate, &cat.Lat, &cat.Lng); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	if len(result) == 0 {
		return nil, common.E(common.ErrNotFound, "No cats found")
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Cat, error) {

	query :=
		`SELECT cat_id, cat_name, weight, owner, filename, birthdate, lat, lng FROM cats
		 WHERE cat_id = $1
		 `

	cat := &models.Cat{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&cat.ID, &cat.Name, &cat.Weight,
		&cat.Owner, &cat.Filename, &cat.Birthdate, &cat.Lat, &cat.Lng)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.E(common.ErrNotFound, "No cats found")
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return cat, nil
}

func (r *PostgresRepository) Create(ctx context.Context, cat *models.Cat) (*models.Cat, error) {

	query :=
		`INSERT INTO cats (cat_name, weight, owner, filename, birthdate, lat, lng)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING cat_id
		 `

	err := r.db.QueryRowContext(ctx, query,
		cat.Name, cat.Weight, cat.Owner, cat.Filename, cat.Birthdate, cat.Lat, cat.Lng).Scan(&cat.ID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.E(common.ErrMutationFailed, "No cats added")
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return cat, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, fields map[string]any) (*models.MessageResponse, error) {

	query, args, err := updateBuilder.Build(fields, id)
	if err != nil {
		return nil, common.E(common.ErrValidation, err.Error())
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return nil, common.E(common.ErrMutationFailed, "No cats updated")
	}

	return &models.MessageResponse{Message: "Cat updated"}, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) (*models.MessageResponse, error) {

	query :=
		`DELETE FROM cats
		 WHERE cat_id = $1
		 `

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return nil, common.E(common.ErrMutationFailed, "No cats deleted")
	}

	return &models.MessageResponse{Message: "Cat deleted"}, nil
}
