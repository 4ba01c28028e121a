// Package client talks to the game server's REST API and opens the local
// session database.
package client

import (
	"context"

	"github.com/dmitrijs2005/secretstash/internal/client/models"
)

// Client is the game API as seen by the terminal client. Methods that take a
// token call authenticated routes.
type Client interface {
	Health(ctx context.Context) error
	Register(ctx context.Context, email string, password string) (int64, error)
	Login(ctx context.Context, email string, password string) (*models.LoginResponse, error)
	SetUsername(ctx context.Context, profileID int64, username string) (*models.LoginResponse, error)
	Me(ctx context.Context, token string) (*models.Profile, error)
	Secrets(ctx context.Context, token string) ([]models.Secret, error)
	PostSecret(ctx context.Context, token string, message string, latitude, longitude float64) error
	Claim(ctx context.Context, token string, secretID int64) error
	Stash(ctx context.Context, token string) ([]models.StashEntry, error)
	Ranking(ctx context.Context, token string) ([]models.RankingEntry, error)
}
