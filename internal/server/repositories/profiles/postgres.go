package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/secretstash/internal/common"
	"github.com/dmitrijs2005/secretstash/internal/dbx"
	"github.com/dmitrijs2005/secretstash/internal/server/models"
)

// Constraint names from the profiles migration.
const (
	emailConstraint    = "profiles_email_key"
	usernameConstraint = "profiles_username_key"
)

const profileColumns = `profile_id, email, external_id, external_email, username, password, has_username, score, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, email string, passwordHash string) (int64, error) {
	query :=
		`INSERT INTO profiles (email, password)
		 VALUES ($1, $2)
		 RETURNING profile_id
		 `

	var id int64
	err := r.db.QueryRowContext(ctx, query, email, passwordHash).Scan(&id)
	if err != nil {
		if constraint, ok := dbx.UniqueViolation(err); ok && constraint == emailConstraint {
			return 0, common.ErrDuplicateEmail
		}
		return 0, fmt.Errorf("db error: %w", err)
	}

	return id, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	query :=
		`SELECT ` + profileColumns + ` FROM profiles
		 WHERE email = $1
		 `
	return r.getOne(ctx, query, email)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Profile, error) {
	query :=
		`SELECT ` + profileColumns + ` FROM profiles
		 WHERE profile_id = $1
		 `
	return r.getOne(ctx, query, id)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*models.Profile, error) {
	var (
		p     models.Profile
		email sql.NullString
		hash  sql.NullString
	)

	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&p.ID, &email, &p.ExternalID, &p.ExternalEmail, &p.Username, &hash, &p.HasUsername, &p.Score, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	p.Email = email.String
	p.PasswordHash = hash.String
	return &p, nil
}

func (r *PostgresRepository) FindIDByUsername(ctx context.Context, username string) (int64, error) {
	query :=
		`SELECT profile_id FROM profiles
		 WHERE username = $1
		 `

	var id int64
	if err := r.db.QueryRowContext(ctx, query, username).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

func (r *PostgresRepository) SetUsername(ctx context.Context, id int64, username string) (int64, error) {
	query :=
		`UPDATE profiles SET username = $1, has_username = TRUE
		 WHERE profile_id = $2 AND has_username = FALSE
		 `

	res, err := r.db.ExecContext(ctx, query, username, id)
	if err != nil {
		if constraint, ok := dbx.UniqueViolation(err); ok && constraint == usernameConstraint {
			return 0, common.ErrUsernameTaken
		}
		return 0, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) IncrementScore(ctx context.Context, id int64) error {
	query :=
		`UPDATE profiles SET score = score + 1
		 WHERE profile_id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Ranking(ctx context.Context) ([]models.RankingEntry, error) {
	query :=
		`SELECT profile_id, username, score FROM profiles
		 ORDER BY score DESC
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	ranking := make([]models.RankingEntry, 0)
	for rows.Next() {
		var e models.RankingEntry
		if err := rows.Scan(&e.ProfileID, &e.Username, &e.Score); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		ranking = append(ranking, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return ranking, nil
}
