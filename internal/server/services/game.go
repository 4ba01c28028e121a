package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/secretstash/internal/common"
	"github.com/dmitrijs2005/secretstash/internal/dbx"
	"github.com/dmitrijs2005/secretstash/internal/server/models"
	"github.com/dmitrijs2005/secretstash/internal/server/repositories/repomanager"
)

// GameService implements the secret game: posting and listing secrets,
// claiming them into a stash, and the score ranking.
type GameService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewGameService(db *sql.DB, m repomanager.RepositoryManager) *GameService {
	return &GameService{db: db, repomanager: m}
}

// GetAllMessages returns every open secret.
func (s *GameService) GetAllMessages(ctx context.Context) ([]models.Secret, error) {
	items, err := s.repomanager.Secrets(s.db).List(ctx)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return items, nil
}

// PostNewSecret publishes a secret owned by ownerID at the given coordinates.
func (s *GameService) PostNewSecret(ctx context.Context, message string, ownerID int64, latitude, longitude float64) error {
	secret := &models.Secret{
		Message:   message,
		ProfileID: ownerID,
		Latitude:  latitude,
		Longitude: longitude,
	}
	if err := s.repomanager.Secrets(s.db).Create(ctx, secret); err != nil {
		if errors.Is(err, common.ErrInsertFailed) {
			return common.ErrInsertFailed
		}
		return common.ErrorInternal
	}
	return nil
}

// GetStashedSecrets returns the secrets claimed by profileID.
func (s *GameService) GetStashedSecrets(ctx context.Context, profileID int64) ([]models.StashEntry, error) {
	items, err := s.repomanager.Stash(s.db).ListByProfile(ctx, profileID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return items, nil
}

// GetAllRanking returns every profile ordered by score, highest first.
func (s *GameService) GetAllRanking(ctx context.Context) ([]models.RankingEntry, error) {
	items, err := s.repomanager.Profiles(s.db).Ranking(ctx)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return items, nil
}

// DeleteAndStashSecret moves secretID into claimerID's stash and awards one
// point, all in a single transaction. The secret row is locked first, so of
// two concurrent claims the second sees common.ErrSecretNotFound.
func (s *GameService) DeleteAndStashSecret(ctx context.Context, claimerID int64, secretID int64) error {
	err := dbx.WithTx(ctx, s.db, dbx.ReadCommitted, func(ctx context.Context, tx dbx.DBTX) error {
		secretsRepo := s.repomanager.Secrets(tx)

		secret, err := secretsRepo.GetForClaim(ctx, secretID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrSecretNotFound
			}
			return common.ErrorInternal
		}

		if secret.ProfileID == claimerID {
			return common.ErrSelfClaimForbidden
		}

		n, err := secretsRepo.Delete(ctx, secretID)
		if err != nil {
			return common.ErrorInternal
		}
		if n == 0 {
			return common.ErrSecretNotFound
		}

		posterID := secret.ProfileID
		entry := &models.StashEntry{
			Message:        secret.Message,
			ProfileID:      claimerID,
			PosterID:       &posterID,
			PosterUsername: secret.OwnerUsername,
		}
		if err := s.repomanager.Stash(tx).Create(ctx, entry); err != nil {
			return common.ErrorInternal
		}

		if err := s.repomanager.Profiles(tx).IncrementScore(ctx, claimerID); err != nil {
			return common.ErrorInternal
		}

		return nil
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrSecretNotFound), errors.Is(err, common.ErrSelfClaimForbidden):
		return err
	default:
		return common.ErrorInternal
	}
}
