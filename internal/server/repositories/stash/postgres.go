package stash

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/secretstash/internal/dbx"
	"github.com/dmitrijs2005/secretstash/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, e *models.StashEntry) error {
	query :=
		`INSERT INTO secret_stash (message, profile_id, poster_id, poster_username)
		 VALUES ($1, $2, $3, $4)
		 RETURNING stash_id, stashed_at
		 `

	err := r.db.QueryRowContext(ctx, query, e.Message, e.ProfileID, e.PosterID, e.PosterUsername).
		Scan(&e.ID, &e.StashedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) ListByProfile(ctx context.Context, profileID int64) ([]models.StashEntry, error) {
	query :=
		`SELECT stash_id, message, profile_id, poster_id, poster_username, stashed_at
		 FROM secret_stash
		 WHERE profile_id = $1
		 ORDER BY stashed_at DESC, stash_id DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.StashEntry, 0)
	for rows.Next() {
		var e models.StashEntry
		if err := rows.Scan(&e.ID, &e.Message, &e.ProfileID, &e.PosterID, &e.PosterUsername, &e.StashedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
