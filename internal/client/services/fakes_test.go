package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/secretstash/internal/client/client"
	"github.com/dmitrijs2005/secretstash/internal/client/models"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func getMeta(t *testing.T, db *sql.DB, k string) (string, bool) {
	t.Helper()
	var v string
	err := db.QueryRow(`SELECT value FROM metadata WHERE key = ?`, k).Scan(&v)
	if err == sql.ErrNoRows {
		return "", false
	}
	require.NoError(t, err)
	return v, true
}

func strPtr(s string) *string { return &s }

// fakeClient implements client.Client for the service tests.
type fakeClient struct {
	HealthErr error

	RegisterRet int64
	RegisterErr error

	LoginRet *models.LoginResponse
	LoginErr error

	SetUsernameRet *models.LoginResponse
	SetUsernameErr error

	MeRet *models.Profile
	MeErr error

	SecretsRet []models.Secret
	SecretsErr error

	PostErr  error
	ClaimErr error

	StashRet []models.StashEntry
	StashErr error

	RankingRet []models.RankingEntry
	RankingErr error

	LastPassword  string
	LastProfileID int64
	LastUsername  string
	LastToken     string
	LastMessage   string
	LastLat       float64
	LastLon       float64
	LastSecretID  int64
}

func (f *fakeClient) Health(ctx context.Context) error { return f.HealthErr }

func (f *fakeClient) Register(ctx context.Context, email string, password string) (int64, error) {
	f.LastPassword = password
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeClient) Login(ctx context.Context, email string, password string) (*models.LoginResponse, error) {
	f.LastPassword = password
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) SetUsername(ctx context.Context, profileID int64, username string) (*models.LoginResponse, error) {
	f.LastProfileID = profileID
	f.LastUsername = username
	return f.SetUsernameRet, f.SetUsernameErr
}

func (f *fakeClient) Me(ctx context.Context, token string) (*models.Profile, error) {
	f.LastToken = token
	return f.MeRet, f.MeErr
}

func (f *fakeClient) Secrets(ctx context.Context, token string) ([]models.Secret, error) {
	f.LastToken = token
	return f.SecretsRet, f.SecretsErr
}

func (f *fakeClient) PostSecret(ctx context.Context, token string, message string, latitude, longitude float64) error {
	f.LastToken = token
	f.LastMessage = message
	f.LastLat = latitude
	f.LastLon = longitude
	return f.PostErr
}

func (f *fakeClient) Claim(ctx context.Context, token string, secretID int64) error {
	f.LastToken = token
	f.LastSecretID = secretID
	return f.ClaimErr
}

func (f *fakeClient) Stash(ctx context.Context, token string) ([]models.StashEntry, error) {
	f.LastToken = token
	return f.StashRet, f.StashErr
}

func (f *fakeClient) Ranking(ctx context.Context, token string) ([]models.RankingEntry, error) {
	f.LastToken = token
	return f.RankingRet, f.RankingErr
}

var _ client.Client = (*fakeClient)(nil)
