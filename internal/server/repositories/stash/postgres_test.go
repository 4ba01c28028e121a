package stash

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/secretstash/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const (
	insertQ = `(?s)^INSERT\s+INTO\s+secret_stash\s*\(message,\s*profile_id,\s*poster_id,\s*poster_username\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+stash_id,\s*stashed_at\s*$`
	listQ   = `(?s)^SELECT\s+stash_id,\s*message,\s*profile_id,\s*poster_id,\s*poster_username,\s*stashed_at\s+FROM\s+secret_stash\s+WHERE\s+profile_id\s*=\s*\$1\s+ORDER\s+BY\s+stashed_at\s+DESC,\s*stash_id\s+DESC\s*$`
)

func TestCreate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	poster := int64(8)
	name := "bob"
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(insertQ).
		WithArgs("psst", int64(7), &poster, &name).
		WillReturnRows(sqlmock.NewRows([]string{"stash_id", "stashed_at"}).AddRow(int64(5), at))

	e := &models.StashEntry{Message: "psst", ProfileID: 7, PosterID: &poster, PosterUsername: &name}
	require.NoError(t, repo.Create(context.Background(), e))
	assert.Equal(t, int64(5), e.ID)
	assert.Equal(t, at, e.StashedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), &models.StashEntry{Message: "psst", ProfileID: 7})
	assert.ErrorContains(t, err, "db error: db down")
}

func TestListByProfile(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(listQ).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"stash_id", "message", "profile_id", "poster_id", "poster_username", "stashed_at"}).
			AddRow(int64(2), "second", int64(7), int64(8), "bob", at).
			AddRow(int64(1), "first", int64(7), nil, nil, at.Add(-time.Hour)))

	got, err := repo.ListByProfile(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "second", got[0].Message)
	require.NotNil(t, got[0].PosterID)
	assert.Equal(t, int64(8), *got[0].PosterID)
	assert.Nil(t, got[1].PosterID)
	assert.Nil(t, got[1].PosterUsername)
}

func TestListByProfile_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(listQ).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"stash_id", "message", "profile_id", "poster_id", "poster_username", "stashed_at"}))

	got, err := repo.ListByProfile(context.Background(), 7)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListByProfile_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(listQ).WithArgs(int64(7)).WillReturnError(errors.New("db down"))

	_, err := repo.ListByProfile(context.Background(), 7)
	assert.Error(t, err)
}
