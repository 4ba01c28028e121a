// Package stash stores the secrets each player has claimed.
package stash

import (
	"context"

	"github.com/dmitrijs2005/secretstash/internal/server/models"
)

type Repository interface {
	// Create inserts e and fills in its ID and StashedAt.
	Create(ctx context.Context, e *models.StashEntry) error
	ListByProfile(ctx context.Context, profileID int64) ([]models.StashEntry, error)
}
