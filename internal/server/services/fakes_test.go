package services

import (
	"context"
	"database/sql"
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/catkeeper/internal/dbx"
	"github.com/dmitrijs2005/catkeeper/internal/server/models"
	catsrepo "github.com/dmitrijs2005/catkeeper/internal/server/repositories/cats"
	refreshtokensrepo "github.com/dmitrijs2005/catkeeper/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/catkeeper/internal/server/repositories/repomanager"
	usersrepo "github.com/dmitrijs2005/catkeeper/internal/server/repositories/users"
)

// --- shared test doubles ---

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

type fakeUsersRepo struct {
	listOut []*models.User
	listErr error

	getOut *models.User
	getErr error

	createOut *models.User
	createErr error

	updateOut *models.MessageResponse
	updateErr error

	deleteOut *models.MessageResponse
	deleteErr error

	byEmailOut *models.User
	byEmailErr error

	createdUser      *models.User
	lastUpdateID     int64
	lastUpdateFields map[string]any
	lastDeleteID     int64
	mutations        int
}

func (f *fakeUsersRepo) List(ctx context.Context) ([]*models.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeUsersRepo) Get(ctx context.Context, id int64) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mutations++
	f.createdUser = u
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeUsersRepo) Update(ctx context.Context, id int64, fields map[string]any) (*models.MessageResponse, error) {
	f.mutations++
	f.lastUpdateID = id
	f.lastUpdateFields = fields
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateOut, nil
}

func (f *fakeUsersRepo) Delete(ctx context.Context, id int64) (*models.MessageResponse, error) {
	f.mutations++
	f.lastDeleteID = id
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return f.deleteOut, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.byEmailErr != nil {
		return nil, f.byEmailErr
	}
	return f.byEmailOut, nil
}

type fakeCatsRepo struct {
	listOut []*models.Cat
	listErr error

	getOut *models.Cat
	getErr error

	createOut *models.Cat
	createErr error

	updateOut *models.MessageResponse
	updateErr error

	deleteOut *models.MessageResponse
	deleteErr error

	createdCat       *models.Cat
	lastUpdateID     int64
	lastUpdateFields map[string]any
	lastDeleteID     int64
	mutations        int
}

func (f *fakeCatsRepo) List(ctx context.Context) ([]*models.Cat, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeCatsRepo) Get(ctx context.Context, id int64) (*models.Cat, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeCatsRepo) Create(ctx context.Context, c *models.Cat) (*models.Cat, error) {
	f.mutations++
	f.createdCat = c
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeCatsRepo) Update(ctx context.Context, id int64, fields map[string]any) (*models.MessageResponse, error) {
	f.mutations++
	f.lastUpdateID = id
	f.lastUpdateFields = fields
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateOut, nil
}

func (f *fakeCatsRepo) Delete(ctx context.Context, id int64) (*models.MessageResponse, error) {
	f.mutations++
	f.lastDeleteID = id
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return f.deleteOut, nil
}

type fakeRefreshRepo struct {
	findOut *models.RefreshToken
	findErr error

	delErr error

	createErr error
}

func (f *fakeRefreshRepo) Create(ctx context.Context, userID int64, token string, validity time.Duration) error {
	return f.createErr
}

func (f *fakeRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeRefreshRepo) Delete(ctx context.Context, token string) error {
	return f.delErr
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	c *fakeCatsRepo
	r *fakeRefreshRepo
}

var _ repomanager.RepositoryManager = (*fakeRepoManager)(nil)

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error           { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository                 { return m.u }
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokensrepo.Repository { return m.r }
func (m *fakeRepoManager) Cats(db dbx.DBTX) catsrepo.Repository                   { return m.c }

type fakeStore struct {
	url    string
	urlErr error

	saveErr  error
	savedKey string
}

func (f *fakeStore) Save(ctx context.Context, key string, body io.Reader) error {
	f.savedKey = key
	return f.saveErr
}

func (f *fakeStore) PresignGet(ctx context.Context, key string) (string, error) {
	if f.urlErr != nil {
		return "", f.urlErr
	}
	return f.url, nil
}
