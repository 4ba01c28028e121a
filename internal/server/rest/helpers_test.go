package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/secretstash/internal/logging"
	"github.com/dmitrijs2005/secretstash/internal/server/auth"
	"github.com/dmitrijs2005/secretstash/internal/server/config"
	"github.com/dmitrijs2005/secretstash/internal/server/models"
	"github.com/dmitrijs2005/secretstash/internal/server/services"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

// ---- fakes ----

type fakeProfiles struct {
	registerID   int64
	registerErr  error
	gotEmail     string
	gotHash      string
	gotPassword  string
	loginRes     *services.LoginResult
	loginErr     error
	usernameRes  *services.LoginResult
	usernameErr  error
	gotProfileID int64
	gotUsername  string
	profile      *models.Profile
	profileErr   error
}

func (f *fakeProfiles) RegisterUser(ctx context.Context, email string, passwordHash string) (int64, error) {
	f.gotEmail, f.gotHash = email, passwordHash
	return f.registerID, f.registerErr
}

func (f *fakeProfiles) LoginUser(ctx context.Context, email string, password string) (*services.LoginResult, error) {
	f.gotEmail, f.gotPassword = email, password
	return f.loginRes, f.loginErr
}

func (f *fakeProfiles) RegisterUsername(ctx context.Context, profileID int64, username string) (*services.LoginResult, error) {
	f.gotProfileID, f.gotUsername = profileID, username
	return f.usernameRes, f.usernameErr
}

func (f *fakeProfiles) GetProfileInfo(ctx context.Context, profileID int64) (*models.Profile, error) {
	f.gotProfileID = profileID
	return f.profile, f.profileErr
}

type fakeGame struct {
	secrets    []models.Secret
	secretsErr error
	stash      []models.StashEntry
	stashErr   error
	ranking    []models.RankingEntry
	rankingErr error
	postErr    error
	claimErr   error

	posted struct {
		message   string
		ownerID   int64
		latitude  float64
		longitude float64
	}
	claimedBy   int64
	claimedID   int64
	stashFor    int64
	claimCalled bool
}

func (f *fakeGame) GetAllMessages(ctx context.Context) ([]models.Secret, error) {
	return f.secrets, f.secretsErr
}

func (f *fakeGame) PostNewSecret(ctx context.Context, message string, ownerID int64, latitude, longitude float64) error {
	f.posted.message, f.posted.ownerID, f.posted.latitude, f.posted.longitude = message, ownerID, latitude, longitude
	return f.postErr
}

func (f *fakeGame) GetStashedSecrets(ctx context.Context, profileID int64) ([]models.StashEntry, error) {
	f.stashFor = profileID
	return f.stash, f.stashErr
}

func (f *fakeGame) GetAllRanking(ctx context.Context) ([]models.RankingEntry, error) {
	return f.ranking, f.rankingErr
}

func (f *fakeGame) DeleteAndStashSecret(ctx context.Context, claimerID int64, secretID int64) error {
	f.claimCalled = true
	f.claimedBy, f.claimedID = claimerID, secretID
	return f.claimErr
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

// ---- helpers ----

func testConfig() *config.Config {
	return &config.Config{
		EndpointAddrHTTP:            "127.0.0.1:0",
		SecretKey:                   testSecret,
		AccessTokenValidityDuration: time.Hour,
		AuthRateLimit:               0,
		CORSAllowedOrigins:          []string{"*"},
	}
}

func newTestServer(ps ProfileService, gs GameService) *Server {
	if ps == nil {
		ps = &fakeProfiles{}
	}
	if gs == nil {
		gs = &fakeGame{}
	}
	return NewServer(testConfig(), logging.Nop{}, ps, gs, fakePinger{})
}

func tokenFor(t *testing.T, profileID int64) string {
	t.Helper()
	tok, err := auth.GenerateToken(auth.Identity{ProfileID: profileID, Email: "p@example.com", Username: "player"}, []byte(testSecret), time.Hour)
	require.NoError(t, err)
	return tok
}

// do sends a request through h and returns the recorder and the decoded body.
func do(t *testing.T, h http.Handler, method, path, body, token string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	out := map[string]any{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec, out
}
