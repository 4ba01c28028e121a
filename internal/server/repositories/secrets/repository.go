// Package secrets stores the public, geotagged secret messages.
package secrets

import (
	"context"

	"github.com/dmitrijs2005/secretstash/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]models.Secret, error)
	// Create inserts s and sets its ID. common.ErrInsertFailed is returned
	// when no row was written.
	Create(ctx context.Context, s *models.Secret) error
	// GetForClaim locks the secret row for the rest of the transaction and
	// returns it together with its owner's username.
	GetForClaim(ctx context.Context, id int64) (*models.ClaimableSecret, error)
	Delete(ctx context.Context, id int64) (int64, error)
}
