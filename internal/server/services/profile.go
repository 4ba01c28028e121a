// Package services contains server-side business logic. This file implements
// ProfileService, which handles registration, login, username claims and
// profile lookups.
package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/secretstash/internal/common"
	"github.com/dmitrijs2005/secretstash/internal/server/auth"
	"github.com/dmitrijs2005/secretstash/internal/server/config"
	"github.com/dmitrijs2005/secretstash/internal/server/models"
	"github.com/dmitrijs2005/secretstash/internal/server/repositories/repomanager"
)

// UserInfo is the public view of a profile returned after login and
// username registration.
type UserInfo struct {
	ProfileID int64   `json:"profile_id"`
	Email     string  `json:"email"`
	Username  *string `json:"username,omitempty"`
	Score     *int64  `json:"score,omitempty"`
}

// LoginResult is the outcome of a successful credential check. Token is
// empty while the profile has no username yet.
type LoginResult struct {
	HasUsername bool
	Token       string
	User        UserInfo
}

// ProfileService provides profile-related operations:
// - RegisterUser: create a profile from email and password hash
// - LoginUser: verify credentials and mint a token once a username exists
// - RegisterUsername: claim a unique username and mint a token
// - GetProfileInfo: load a profile by id
type ProfileService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

// NewProfileService constructs a ProfileService using repositories and server config.
func NewProfileService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *ProfileService {
	return &ProfileService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// RegisterUser inserts a profile holding only email and passwordHash and
// returns the new profile id.
func (s *ProfileService) RegisterUser(ctx context.Context, email string, passwordHash string) (int64, error) {
	repo := s.repomanager.Profiles(s.db)
	id, err := repo.Create(ctx, email, passwordHash)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			return 0, common.ErrDuplicateEmail
		}
		return 0, common.ErrorInternal
	}
	return id, nil
}

// LoginUser checks password against the stored hash for email.
func (s *ProfileService) LoginUser(ctx context.Context, email string, password string) (*LoginResult, error) {
	repo := s.repomanager.Profiles(s.db)
	p, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrProfileNotFound
		}
		return nil, common.ErrorInternal
	}

	ok, err := auth.CheckPassword(p.PasswordHash, password)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if !ok {
		return nil, common.ErrPasswordMismatch
	}

	if !p.HasUsername {
		return &LoginResult{
			HasUsername: false,
			User:        UserInfo{ProfileID: p.ID, Email: p.Email},
		}, nil
	}

	return s.signedResult(p)
}

// RegisterUsername assigns username to a profile that has none yet and
// returns a fresh token carrying it. A profile that already has a username
// is reported as common.ErrProfileNotFound.
func (s *ProfileService) RegisterUsername(ctx context.Context, profileID int64, username string) (*LoginResult, error) {
	repo := s.repomanager.Profiles(s.db)

	_, err := repo.FindIDByUsername(ctx, username)
	if err == nil {
		return nil, common.ErrUsernameTaken
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInternal
	}

	n, err := repo.SetUsername(ctx, profileID, username)
	if err != nil {
		if errors.Is(err, common.ErrUsernameTaken) {
			return nil, common.ErrUsernameTaken
		}
		return nil, common.ErrorInternal
	}
	if n == 0 {
		return nil, common.ErrProfileNotFound
	}

	p, err := repo.GetByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrProfileNotFound
		}
		return nil, common.ErrorInternal
	}

	return s.signedResult(p)
}

// GetProfileInfo returns the profile with the given id.
func (s *ProfileService) GetProfileInfo(ctx context.Context, profileID int64) (*models.Profile, error) {
	repo := s.repomanager.Profiles(s.db)
	p, err := repo.GetByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrProfileNotFound
		}
		return nil, common.ErrorInternal
	}
	return p, nil
}

func (s *ProfileService) signedResult(p *models.Profile) (*LoginResult, error) {
	username := p.UsernameOrEmpty()
	score := p.Score

	token, err := auth.GenerateToken(auth.Identity{
		ProfileID: p.ID,
		Email:     p.Email,
		Username:  username,
		Score:     score,
	}, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &LoginResult{
		HasUsername: true,
		Token:       token,
		User: UserInfo{
			ProfileID: p.ID,
			Email:     p.Email,
			Username:  &username,
			Score:     &score,
		},
	}, nil
}
