// Package services contains the terminal client's application services:
// the login session (persisted in the local metadata table) and the game
// calls made on behalf of the logged-in player.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/secretstash/internal/client/client"
	"github.com/dmitrijs2005/secretstash/internal/client/models"
	"github.com/dmitrijs2005/secretstash/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/secretstash/internal/common"
	"github.com/dmitrijs2005/secretstash/internal/dbx"
)

var (
	ErrNotLoggedIn      = errors.New("not logged in")
	ErrNoPendingProfile = errors.New("no login is waiting for a username")
	ErrSessionExpired   = errors.New("session expired, please log in again")
)

const (
	keyToken     = "token"
	keyProfileID = "profile_id"
	keyEmail     = "email"
	keyUsername  = "username"
)

// Session is the state kept between client runs. A session with a profile id
// but no token belongs to a login that still has to pick a username.
type Session struct {
	ProfileID int64
	Email     string
	Username  string
	Token     string
}

type SessionService struct {
	client  client.Client
	db      *sql.DB
	current Session
}

func NewSessionService(c client.Client, db *sql.DB) *SessionService {
	return &SessionService{client: c, db: db}
}

func (s *SessionService) getMetadataRepo() metadata.Repository {
	return metadata.NewSQLiteRepository(s.db)
}

// Current returns a copy of the in-memory session.
func (s *SessionService) Current() Session {
	return s.current
}

func (s *SessionService) LoggedIn() bool {
	return s.current.Token != ""
}

// Restore loads the session saved by a previous run, if any.
func (s *SessionService) Restore(ctx context.Context) error {
	repo := s.getMetadataRepo()

	var sess Session
	var err error
	if sess.Token, _, err = repo.Get(ctx, keyToken); err != nil {
		return err
	}
	if sess.Email, _, err = repo.Get(ctx, keyEmail); err != nil {
		return err
	}
	if sess.Username, _, err = repo.Get(ctx, keyUsername); err != nil {
		return err
	}

	id, ok, err := repo.Get(ctx, keyProfileID)
	if err != nil {
		return err
	}
	if ok {
		if sess.ProfileID, err = strconv.ParseInt(id, 10, 64); err != nil {
			return fmt.Errorf("corrupt %s in session store: %w", keyProfileID, err)
		}
	}

	s.current = sess
	return nil
}

// save replaces the stored session with sess in one transaction.
func (s *SessionService) save(ctx context.Context, sess Session) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Clear(ctx); err != nil {
			return err
		}
		values := map[string]string{
			keyProfileID: strconv.FormatInt(sess.ProfileID, 10),
			keyEmail:     sess.Email,
		}
		if sess.Token != "" {
			values[keyToken] = sess.Token
		}
		if sess.Username != "" {
			values[keyUsername] = sess.Username
		}
		for k, v := range values {
			if err := repo.Set(ctx, k, v); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("session saving error: %w", err)
	}

	s.current = sess
	return nil
}

// Register creates a profile on the server. password is wiped afterwards.
func (s *SessionService) Register(ctx context.Context, email string, password []byte) (int64, error) {
	defer common.WipeByteArray(password)
	return s.client.Register(ctx, email, string(password))
}

// Login authenticates and stores the result. needsUsername is true when the
// profile has no username yet; SetUsername then completes the login.
func (s *SessionService) Login(ctx context.Context, email string, password []byte) (needsUsername bool, err error) {
	defer common.WipeByteArray(password)

	res, err := s.client.Login(ctx, email, string(password))
	if err != nil {
		return false, err
	}

	sess := sessionFrom(res)
	if sess.Email == "" {
		sess.Email = email
	}
	if err := s.save(ctx, sess); err != nil {
		return false, err
	}
	return !res.HasUsername, nil
}

// SetUsername claims username for the profile of the pending login and
// stores the token that comes back.
func (s *SessionService) SetUsername(ctx context.Context, username string) error {
	if s.current.ProfileID == 0 || s.current.Token != "" {
		return ErrNoPendingProfile
	}

	res, err := s.client.SetUsername(ctx, s.current.ProfileID, username)
	if err != nil {
		return err
	}

	sess := sessionFrom(res)
	if sess.ProfileID == 0 {
		sess.ProfileID = s.current.ProfileID
	}
	if sess.Email == "" {
		sess.Email = s.current.Email
	}
	if sess.Username == "" {
		sess.Username = username
	}
	return s.save(ctx, sess)
}

// Logout forgets the session locally. Tokens are stateless, so the server is
// not involved.
func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.getMetadataRepo().Clear(ctx); err != nil {
		return err
	}
	s.current = Session{}
	return nil
}

func (s *SessionService) Ping(ctx context.Context) error {
	return s.client.Health(ctx)
}

// Me fetches the logged-in profile.
func (s *SessionService) Me(ctx context.Context) (*models.Profile, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	p, err := s.client.Me(ctx, token)
	if err != nil {
		return nil, s.checkAuth(ctx, err)
	}
	return p, nil
}

func (s *SessionService) token() (string, error) {
	if s.current.Token == "" {
		return "", ErrNotLoggedIn
	}
	return s.current.Token, nil
}

// checkAuth drops the session when the server rejected its token.
func (s *SessionService) checkAuth(ctx context.Context, err error) error {
	if !errors.Is(err, client.ErrUnauthorized) {
		return err
	}
	if cerr := s.Logout(ctx); cerr != nil {
		return errors.Join(ErrSessionExpired, cerr)
	}
	return ErrSessionExpired
}

func sessionFrom(res *models.LoginResponse) Session {
	sess := Session{
		ProfileID: res.User.ProfileID,
		Email:     res.User.Email,
	}
	if res.User.Username != nil {
		sess.Username = *res.User.Username
	}
	if res.HasUsername {
		sess.Token = res.Token
	}
	return sess
}
