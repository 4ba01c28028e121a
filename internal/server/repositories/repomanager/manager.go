package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/secretstash/internal/dbx"
	"github.com/dmitrijs2005/secretstash/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/secretstash/internal/server/repositories/secrets"
	"github.com/dmitrijs2005/secretstash/internal/server/repositories/stash"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Profiles(db dbx.DBTX) profiles.Repository
	Secrets(db dbx.DBTX) secrets.Repository
	Stash(db dbx.DBTX) stash.Repository
}
