// Package repomanager vends repository implementations for one database
// dialect and applies that dialect's embedded goose migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/quizweb/internal/dbx"
	"github.com/dmitrijs2005/quizweb/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/quizweb/internal/server/repositories/questions"
	"github.com/pressly/goose/v3"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Questions(db dbx.DBTX) questions.Repository
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}
