package secrets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/secretstash/internal/common"
	"github.com/dmitrijs2005/secretstash/internal/dbx"
	"github.com/dmitrijs2005/secretstash/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Secret, error) {
	query :=
		`SELECT secret_id, message, profile_id, latitude::float8, longitude::float8
		 FROM public_secrets
		 ORDER BY secret_id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Secret, 0)
	for rows.Next() {
		var s models.Secret
		if err := rows.Scan(&s.ID, &s.Message, &s.ProfileID, &s.Latitude, &s.Longitude); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, s *models.Secret) error {
	query :=
		`INSERT INTO public_secrets (message, profile_id, latitude, longitude)
		 VALUES ($1, $2, $3, $4)
		 RETURNING secret_id
		 `

	err := r.db.QueryRowContext(ctx, query, s.Message, s.ProfileID, s.Latitude, s.Longitude).Scan(&s.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrInsertFailed
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetForClaim(ctx context.Context, id int64) (*models.ClaimableSecret, error) {
	query :=
		`SELECT s.secret_id, s.message, s.profile_id, s.latitude::float8, s.longitude::float8, p.username
		 FROM public_secrets s
		 JOIN profiles p ON p.profile_id = s.profile_id
		 WHERE s.secret_id = $1
		 FOR UPDATE OF s
		 `

	var c models.ClaimableSecret
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Message, &c.ProfileID, &c.Latitude, &c.Longitude, &c.OwnerUsername)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &c, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) (int64, error) {
	query :=
		`DELETE FROM public_secrets
		 WHERE secret_id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
