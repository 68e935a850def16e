package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/quizweb/internal/filex"
)

const sqlitePragmas = "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"

// Driver returns the database/sql driver name for dsn: "pgx" for postgres://
// and postgresql:// URLs, "sqlite" for anything else (a file path).
func Driver(dsn string) string {
	lower := strings.ToLower(dsn)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return "pgx"
	}
	return "sqlite"
}

// ManagerFor returns the RepositoryManager matching dsn's dialect.
func ManagerFor(dsn string) RepositoryManager {
	if Driver(dsn) == "pgx" {
		return NewPostgresRepositoryManager()
	}
	return NewSQLiteRepositoryManager()
}

// Open connects to dsn, verifies the connection and brings the schema up to
// date. A SQLite file's directory is created when missing. The caller owns
// the returned *sql.DB.
func Open(ctx context.Context, dsn string) (*sql.DB, RepositoryManager, error) {
	driver := Driver(dsn)
	source := dsn
	if driver == "sqlite" {
		if _, err := filex.EnsureParentDir(filex.SQLitePath(dsn)); err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		source = sqliteSource(dsn)
	}

	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if driver == "sqlite" {
		// one writer at a time; also keeps ":memory:" databases on one connection
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}

	m := ManagerFor(dsn)
	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	return db, m, nil
}

func sqliteSource(dsn string) string {
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + sqlitePragmas
}
