package services

import (
	"context"
	"database/sql"
	"sort"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/secretstash/internal/common"
	"github.com/dmitrijs2005/secretstash/internal/dbx"
	"github.com/dmitrijs2005/secretstash/internal/server/config"
	"github.com/dmitrijs2005/secretstash/internal/server/models"
	"github.com/dmitrijs2005/secretstash/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/secretstash/internal/server/repositories/secrets"
	"github.com/dmitrijs2005/secretstash/internal/server/repositories/stash"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                   "k",
		AccessTokenValidityDuration: time.Hour,
	}
}

// fakeProfilesRepo keeps profiles in memory, keyed by id.
type fakeProfilesRepo struct {
	byID   map[int64]*models.Profile
	nextID int64

	createErr error
	getErr    error
	findErr   error
	setErr    error
	scoreErr  error
	rankErr   error

	incremented []int64
}

func newFakeProfilesRepo(ps ...*models.Profile) *fakeProfilesRepo {
	f := &fakeProfilesRepo{byID: map[int64]*models.Profile{}, nextID: 1}
	for _, p := range ps {
		f.byID[p.ID] = p
		if p.ID >= f.nextID {
			f.nextID = p.ID + 1
		}
	}
	return f
}

func (f *fakeProfilesRepo) Create(ctx context.Context, email string, passwordHash string) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	for _, p := range f.byID {
		if p.Email == email {
			return 0, common.ErrDuplicateEmail
		}
	}
	id := f.nextID
	f.nextID++
	f.byID[id] = &models.Profile{ID: id, Email: email, PasswordHash: passwordHash}
	return id, nil
}

func (f *fakeProfilesRepo) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, p := range f.byID {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeProfilesRepo) GetByID(ctx context.Context, id int64) (*models.Profile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

func (f *fakeProfilesRepo) FindIDByUsername(ctx context.Context, username string) (int64, error) {
	if f.findErr != nil {
		return 0, f.findErr
	}
	for _, p := range f.byID {
		if p.Username != nil && *p.Username == username {
			return p.ID, nil
		}
	}
	return 0, common.ErrorNotFound
}

func (f *fakeProfilesRepo) SetUsername(ctx context.Context, id int64, username string) (int64, error) {
	if f.setErr != nil {
		return 0, f.setErr
	}
	p, ok := f.byID[id]
	if !ok || p.HasUsername {
		return 0, nil
	}
	u := username
	p.Username = &u
	p.HasUsername = true
	return 1, nil
}

func (f *fakeProfilesRepo) IncrementScore(ctx context.Context, id int64) error {
	if f.scoreErr != nil {
		return f.scoreErr
	}
	p, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	p.Score++
	f.incremented = append(f.incremented, id)
	return nil
}

func (f *fakeProfilesRepo) Ranking(ctx context.Context) ([]models.RankingEntry, error) {
	if f.rankErr != nil {
		return nil, f.rankErr
	}
	out := make([]models.RankingEntry, 0, len(f.byID))
	for _, p := range f.byID {
		out = append(out, models.RankingEntry{ProfileID: p.ID, Username: p.Username, Score: p.Score})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out, nil
}

type fakeSecretsRepo struct {
	items map[int64]*models.ClaimableSecret

	listErr   error
	createErr error
	getErr    error
	deleteErr error
	deleteN   *int64

	created []models.Secret
	deleted []int64
}

func newFakeSecretsRepo(cs ...*models.ClaimableSecret) *fakeSecretsRepo {
	f := &fakeSecretsRepo{items: map[int64]*models.ClaimableSecret{}}
	for _, c := range cs {
		f.items[c.ID] = c
	}
	return f
}

func (f *fakeSecretsRepo) List(ctx context.Context) ([]models.Secret, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Secret, 0, len(f.items))
	for _, c := range f.items {
		out = append(out, c.Secret)
	}
	return out, nil
}

func (f *fakeSecretsRepo) Create(ctx context.Context, s *models.Secret) error {
	if f.createErr != nil {
		return f.createErr
	}
	s.ID = int64(len(f.created) + 100)
	f.created = append(f.created, *s)
	return nil
}

func (f *fakeSecretsRepo) GetForClaim(ctx context.Context, id int64) (*models.ClaimableSecret, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	c, ok := f.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return c, nil
}

func (f *fakeSecretsRepo) Delete(ctx context.Context, id int64) (int64, error) {
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	if f.deleteN != nil {
		return *f.deleteN, nil
	}
	if _, ok := f.items[id]; !ok {
		return 0, nil
	}
	delete(f.items, id)
	f.deleted = append(f.deleted, id)
	return 1, nil
}

type fakeStashRepo struct {
	entries   []models.StashEntry
	createErr error
	listErr   error
}

func (f *fakeStashRepo) Create(ctx context.Context, e *models.StashEntry) error {
	if f.createErr != nil {
		return f.createErr
	}
	e.ID = int64(len(f.entries) + 1)
	e.StashedAt = time.Now()
	f.entries = append(f.entries, *e)
	return nil
}

func (f *fakeStashRepo) ListByProfile(ctx context.Context, profileID int64) ([]models.StashEntry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.StashEntry, 0)
	for _, e := range f.entries {
		if e.ProfileID == profileID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeRepoManager struct {
	p  *fakeProfilesRepo
	s  *fakeSecretsRepo
	st *fakeStashRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Profiles(db dbx.DBTX) profiles.Repository     { return m.p }
func (m *fakeRepoManager) Secrets(db dbx.DBTX) secrets.Repository       { return m.s }
func (m *fakeRepoManager) Stash(db dbx.DBTX) stash.Repository           { return m.st }
