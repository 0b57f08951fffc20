package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-voting-server/internal/config"
	"github.com/MKhiriev/go-voting-server/internal/logger"
	"github.com/MKhiriev/go-voting-server/models"
)

type backend int

const (
	backendUnknown backend = iota
	backendPostgres
	backendSQLite
	backendMongo
)

func (b backend) String() string {
	switch b {
	case backendPostgres:
		return "postgres"
	case backendSQLite:
		return "sqlite"
	case backendMongo:
		return "mongodb"
	}
	return "unknown"
}

// Storages bundles the repositories of one storage backend.
type Storages struct {
	UserRepository      UserRepository
	CandidateRepository CandidateRepository

	backend backend
	close   func(ctx context.Context) error
}

// NewStorages connects to the backend selected by the DSN scheme, brings its
// schema (or indexes) up to date and builds the repositories.
//
// Supported DSNs:
//   - postgres://… and postgresql://… → PostgreSQL via pgx;
//   - sqlite://path, file:… and *.db paths → SQLite;
//   - mongodb://… and mongodb+srv://… → MongoDB, database cfg.Name.
func NewStorages(ctx context.Context, cfg config.DB, hasher models.PasswordHasher, ids IDGenerator, log *logger.Logger) (*Storages, error) {
	kind, target := parseDSN(cfg.DSN)
	log.Info().Str("func", "NewStorages").Stringer("backend", kind).Msg("initializing storage")

	switch kind {
	case backendPostgres:
		db, err := NewConnectPostgres(ctx, target, log)
		if err != nil {
			return nil, err
		}
		return newSQLStorages(ctx, db, kind, hasher, ids, log)
	case backendSQLite:
		db, err := NewConnectSQLite(ctx, target, log)
		if err != nil {
			return nil, err
		}
		return newSQLStorages(ctx, db, kind, hasher, ids, log)
	case backendMongo:
		mdb, err := NewConnectMongo(ctx, target, cfg.Name, log)
		if err != nil {
			return nil, err
		}
		if err = mdb.EnsureIndexes(ctx); err != nil {
			_ = mdb.Close(ctx)
			return nil, err
		}
		return &Storages{
			UserRepository:      NewMongoUserRepository(mdb.Database, hasher, ids, log),
			CandidateRepository: NewMongoCandidateRepository(mdb.Database, ids, log),
			backend:             kind,
			close:               mdb.Close,
		}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnsupportedDSN, cfg.DSN)
}

func newSQLStorages(ctx context.Context, db *DB, kind backend, hasher models.PasswordHasher, ids IDGenerator, log *logger.Logger) (*Storages, error) {
	if err := db.Migrate(log.WithContext(ctx)); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		_ = db.Close()
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	return &Storages{
		UserRepository:      NewUserRepository(db, hasher, ids, log),
		CandidateRepository: NewCandidateRepository(db, ids, log),
		backend:             kind,
		close:               func(context.Context) error { return db.Close() },
	}, nil
}

// Close releases the underlying connection.
func (s *Storages) Close(ctx context.Context) error {
	if s == nil || s.close == nil {
		return nil
	}

	return s.close(ctx)
}

// parseDSN picks the backend for dsn and returns the string the driver
// should be opened with.
func parseDSN(dsn string) (backend, string) {
	lower := strings.ToLower(dsn)

	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return backendPostgres, dsn
	case strings.HasPrefix(lower, "mongodb://"), strings.HasPrefix(lower, "mongodb+srv://"):
		return backendMongo, dsn
	case strings.HasPrefix(lower, "sqlite://"):
		return backendSQLite, dsn[len("sqlite://"):]
	case strings.HasPrefix(lower, "file:"), strings.HasSuffix(lower, ".db"), strings.HasSuffix(lower, ".sqlite"):
		return backendSQLite, dsn
	}

	return backendUnknown, dsn
}
