package store

import (
	"context"
	"database/sql"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-voting-server/internal/logger"
	"github.com/MKhiriev/go-voting-server/migrations"
)

// DB is a relational connection shared by the SQL repositories. The same
// repositories serve PostgreSQL and SQLite; dialect differences are limited
// to the placeholder format of builder and to errorClassificator.
type DB struct {
	*sql.DB
	dialect            string
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

func newDB(conn *sql.DB, dialect string, classifier ErrorClassificator, log *logger.Logger) *DB {
	var placeholder sq.PlaceholderFormat = sq.Question
	if dialect == migrations.DialectPostgres {
		placeholder = sq.Dollar
	}

	return &DB{
		DB:                 conn,
		dialect:            dialect,
		builder:            sq.StatementBuilder.PlaceholderFormat(placeholder),
		errorClassificator: classifier,
		logger:             log,
	}
}

// Migrate brings the schema up to date.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Migrate(ctx, db.DB, db.dialect)
}

// Dialect returns the goose dialect name of the connection.
func (db *DB) Dialect() string {
	return db.dialect
}

// conflictError translates a unique violation into the matching domain
// sentinel. It returns nil for every other error.
func (db *DB) conflictError(err error) error {
	if db.errorClassificator == nil {
		return nil
	}

	class, constraint := db.errorClassificator.Classify(err)
	if class != UniqueViolation {
		return nil
	}

	return constraintError(constraint)
}

// constraintError maps the name (or driver message) of a violated unique
// constraint to a domain error. Names follow the schema in migrations and
// the MongoDB index names in [MongoDB.EnsureIndexes].
func constraintError(constraint string) error {
	name := strings.ToLower(constraint)

	switch {
	case strings.Contains(name, "aadhar"):
		return ErrAadharAlreadyExists
	case strings.Contains(name, "votes"):
		return ErrAlreadyVoted
	case strings.Contains(name, "admin"), strings.Contains(name, "role"):
		return ErrAdminAlreadyExists
	}

	return nil
}
