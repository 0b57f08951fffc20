// Package migrations embeds the SQL schema of every supported relational
// backend and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-voting-server/internal/logger"
	"github.com/pressly/goose/v3"
)

// Dialects understood by [Migrate]. Each one maps to a directory of
// migrations embedded below.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

var dialectDirs = map[string]string{
	DialectPostgres: "postgres",
	DialectSQLite:   "sqlite",
}

// Migrate applies every pending migration for dialect. Progress is reported
// through the logger stored in ctx.
func Migrate(ctx context.Context, db *sql.DB, dialect string) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	dir, ok := dialectDirs[dialect]
	if !ok {
		return fmt.Errorf("migration error: unsupported dialect %q", dialect)
	}

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(&gooseLogger{logger.FromContext(ctx)})

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

// gooseLogger routes goose output into zerolog.
type gooseLogger struct {
	log *logger.Logger
}

func (l *gooseLogger) Printf(format string, v ...any) {
	l.log.Info().Str("func", "goose").Msgf(format, v...)
}

func (l *gooseLogger) Fatalf(format string, v ...any) {
	l.log.Fatal().Str("func", "goose").Msgf(format, v...)
}
