// Package profiles declares the repository contract for player profiles and
// its PostgreSQL implementation.
package profiles

import (
	"context"

	"github.com/dmitrijs2005/secretstash/internal/server/models"
)

type Repository interface {
	// Create inserts a profile with only email and password hash set and
	// returns its id. A taken email yields common.ErrDuplicateEmail.
	Create(ctx context.Context, email string, passwordHash string) (int64, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	GetByID(ctx context.Context, id int64) (*models.Profile, error)
	// FindIDByUsername returns the id of the profile holding username.
	FindIDByUsername(ctx context.Context, username string) (int64, error)
	// SetUsername sets username and has_username on a profile that has no
	// username yet and returns the number of updated rows. A profile that
	// already has one is left untouched (0 rows). A taken username yields
	// common.ErrUsernameTaken.
	SetUsername(ctx context.Context, id int64, username string) (int64, error)
	IncrementScore(ctx context.Context, id int64) error
	Ranking(ctx context.Context) ([]models.RankingEntry, error)
}
