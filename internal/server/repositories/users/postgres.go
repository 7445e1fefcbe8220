package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/catkeeper/internal/common"
	"github.com/dmitrijs2005/catkeeper/internal/dbx"
	"github.com/dmitrijs2005/catkeeper/internal/server/models"
)

// UpdateColumns is the allow-listed field set for partial user updates.
// Anything outside it is rejected before a statement is built.
var UpdateColumns = map[string]string{
	"user_name": "user_name",
	"email":     "email",
	"password":  "password",
	"role":      "role",
}

var updateBuilder = dbx.NewUpdateBuilder("users", "user_id", UpdateColumns)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.User, error) {

	query :=
		`SELECT user_id, user_name, email, role FROM users
		 ORDER BY user_id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.UserName, &user.Email, &user.Role); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	// An empty table is an error condition here, not an empty list.
	if len(result) == 0 {
		return nil, common.E(common.ErrNotFound, "No users found")
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.User, error) {

	query :=
		`SELECT user_id, user_name, email, role FROM users
		 WHERE user_id = $1
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&user.ID, &user.UserName, &user.Email, &user.Role)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.E(common.ErrNotFound, "No users found")
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (user_name, email, password, role)
		 VALUES ($1, $2, $3, $4)
		 RETURNING user_id
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.UserName, user.Email, user.Password, user.Role).Scan(&user.ID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.E(common.ErrMutationFailed, "No users added")
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
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
		return nil, common.E(common.ErrMutationFailed, "No users updated")
	}

	return &models.MessageResponse{Message: "User updated"}, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) (*models.MessageResponse, error) {

	query :=
		`DELETE FROM users
		 WHERE user_id = $1
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
		return nil, common.E(common.ErrMutationFailed, "No users deleted")
	}

	return &models.MessageResponse{Message: "User deleted"}, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {

	query :=
		`SELECT user_id, user_name, email, password, role FROM users
		 WHERE email = $1
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.UserName, &user.Email, &user.Password, &user.Role)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Deliberately indistinct from a bad password, and reported with
			// a 200-equivalent status by the transport layer.
			return nil, common.E(common.ErrCredentialLookup, "Invalid username/password")
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}
