package services

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sooldama/sooldama/internal/common"
	"github.com/sooldama/sooldama/internal/dbx"
	"github.com/sooldama/sooldama/internal/server/models"
	"github.com/sooldama/sooldama/internal/server/repositories/products"
	"github.com/sooldama/sooldama/internal/server/repositories/repomanager"
	"github.com/sooldama/sooldama/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// fakeUsersRepo is an in-memory credential store keyed by email.
type fakeUsersRepo struct {
	mu     sync.Mutex
	byMail map[string]*models.User
	nextID int64

	existsErr error
	createErr error
	findErr   error
	creates   int
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byMail: map[string]*models.User{}, nextID: 1}
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byMail[u.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	u.ID = f.nextID
	u.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	f.nextID++
	stored := *u
	f.byMail[u.Email] = &stored
	return u, nil
}

func (f *fakeUsersRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	u, ok := f.byMail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *u
	return &c, nil
}

func (f *fakeUsersRepo) FindByID(_ context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, u := range f.byMail {
		if u.ID == id {
			c := *u
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.existsErr != nil {
		return false, f.existsErr
	}
	_, ok := f.byMail[email]
	return ok, nil
}

type fakeProductsRepo struct {
	list    []*models.Product
	listErr error
	byID    map[int64]*models.Product
	byIDErr error

	gotOffset, gotLimit int
	gotCategory         *int64
}

func (f *fakeProductsRepo) SelectProducts(_ context.Context, offset, limit int, categoryID *int64) ([]*models.Product, error) {
	f.gotOffset, f.gotLimit, f.gotCategory = offset, limit, categoryID
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.list, nil
}

func (f *fakeProductsRepo) SelectProductByID(_ context.Context, id int64) (*models.Product, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	p, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

type fakeRepoManager struct {
	repomanager.RepositoryManager
	u *fakeUsersRepo
	p *fakeProductsRepo
}

func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository       { return m.u }
func (m *fakeRepoManager) Products(dbx.DBTX) products.Repository { return m.p }

// countingHasher records how often Hash ran.
type countingHasher struct {
	hashes int
	err    error
}

func (h *countingHasher) Hash(plaintext string) (string, error) {
	h.hashes++
	if h.err != nil {
		return "", h.err
	}
	return "digest:" + plaintext, nil
}

func (h *countingHasher) Verify(plaintext, digest string) bool {
	return digest == "digest:"+plaintext
}

// failingSession rejects every write.
type failingSession struct{}

func (failingSession) Get(string) (string, bool) { return "", false }
func (failingSession) Set(string, string) error  { return errBoom }
func (failingSession) Renew() error              { return errBoom }
func (failingSession) Invalidate() error         { return errBoom }

type fakeResolver struct {
	err error
}

func (r fakeResolver) Resolve(_ context.Context, ref string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	return "https://cdn.test/" + ref, nil
}
