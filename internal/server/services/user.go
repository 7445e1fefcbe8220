// Package services contains server-side business logic. Each service
// sequences validation, authorization, and exactly one repository call per
// operation, forwarding errors unchanged to the transport layer.
package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/catkeeper/internal/server/auth"
	"github.com/dmitrijs2005/catkeeper/internal/server/models"
	"github.com/dmitrijs2005/catkeeper/internal/server/policy"
	"github.com/dmitrijs2005/catkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/catkeeper/internal/server/validation"
)

// UserService manages user account records. Mutations addressed by
// identifier are admin-only; the "current" variants act on the principal's
// own record and only require authentication.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, repomanager: m}
}

// List returns all users without password hashes.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	repo := s.repomanager.Users(s.db)
	return repo.List(ctx)
}

// Get returns one user by id without the password hash.
func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	return repo.Get(ctx, id)
}

// Create registers a new account. The password is bcrypt-hashed before
// storage and the role is always "user" regardless of the payload.
func (s *UserService) Create(ctx context.Context, user *models.User) (*models.MessageResponse, error) {
	v := &validation.Result{}
	v.MinLength("user_name", user.UserName, 3, "Invalid username")
	v.Match("email", user.Email, validation.EmailPattern, "Invalid email")
	v.MinLength("password", user.Password, 5, "Invalid password")
	if err := v.Err(); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(user.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}
	user.Password = hash
	user.Role = models.RoleUser

	repo := s.repomanager.Users(s.db)
	created, err := repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	return &models.MessageResponse{Message: "User added", ID: created.ID}, nil
}

// Update modifies the user addressed by id. Admin only.
func (s *UserService) Update(ctx context.Context, p *auth.Principal, id int64, fields map[string]any) (*models.MessageResponse, error) {
	if err := s.validateUpdate(fields); err != nil {
		return nil, err
	}
	if err := policy.Authorize(p, policy.ActionUpdate, policy.TargetUser); err != nil {
		return nil, err
	}
	repo := s.repomanager.Users(s.db)
	return repo.Update(ctx, id, fields)
}

// UpdateCurrent modifies the principal's own record.
func (s *UserService) UpdateCurrent(ctx context.Context, p *auth.Principal, fields map[string]any) (*models.MessageResponse, error) {
	if err := s.validateUpdate(fields); err != nil {
		return nil, err
	}
	if err := policy.Authorize(p, policy.ActionUpdate, policy.TargetCurrentUser); err != nil {
		return nil, err
	}
	repo := s.repomanager.Users(s.db)
	return repo.Update(ctx, p.UserID, fields)
}

// Delete removes the user addressed by id. Admin only.
func (s *UserService) Delete(ctx context.Context, p *auth.Principal, id int64) (*models.MessageResponse, error) {
	if err := policy.Authorize(p, policy.ActionDelete, policy.TargetUser); err != nil {
		return nil, err
	}
	repo := s.repomanager.Users(s.db)
	return repo.Delete(ctx, id)
}

// DeleteCurrent removes the principal's own record.
func (s *UserService) DeleteCurrent(ctx context.Context, p *auth.Principal) (*models.MessageResponse, error) {
	if err := policy.Authorize(p, policy.ActionDelete, policy.TargetCurrentUser); err != nil {
		return nil, err
	}
	repo := s.repomanager.Users(s.db)
	return repo.Delete(ctx, p.UserID)
}

// validateUpdate applies the account field rules to whichever allow-listed
// fields are present and replaces a provided password with its hash.
// Unknown keys are left for the repository's builder to reject.
func (s *UserService) validateUpdate(fields map[string]any) error {
	v := &validation.Result{}

	if raw, ok := fields["user_name"]; ok {
		name, _ := raw.(string)
		v.MinLength("user_name", name, 3, "Invalid username")
	}
	if raw, ok := fields["email"]; ok {
		email, _ := raw.(string)
		v.Match("email", email, validation.EmailPattern, "Invalid email")
	}
	if raw, ok := fields["password"]; ok {
		password, _ := raw.(string)
		v.MinLength("password", password, 5, "Invalid password")
	}
	if raw, ok := fields["role"]; ok {
		role, _ := raw.(string)
		if role != models.RoleUser && role != models.RoleAdmin {
			v.Add("role", "Invalid role")
		}
	}
	if err := v.Err(); err != nil {
		return err
	}

	if raw, ok := fields["password"]; ok {
		hash, err := auth.HashPassword(raw.(string))
		if err != nil {
			return fmt.Errorf("error hashing password: %w", err)
		}
		fields["password"] = hash
	}

	return nil
}
