package db

import (
	"context"
	"database/sql"
	"embed"
	"time"

	"github.com/EO-DataHub/eodhp-resource-services/models"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// SQLStore keeps every collection as a single JSON document in the
// collections table, one row per collection.
type SQLStore struct {
	DB     *sql.DB
	Driver string
	Log    *zerolog.Logger
}

// NewSQLStore opens and pings the database behind driver and source.
func NewSQLStore(driver, source string, log *zerolog.Logger) (*SQLStore, error) {
	log = orNop(log)

	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, errors.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(driver, source)
	if err != nil {
		log.Error().Err(err).Str("driver", driver).Msg("Failed to open database connection")
		return nil, errors.Wrap(err, "failed to open database")
	}

	// Check we are actually connected
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Error().Err(err).Str("driver", driver).Msg("Database connection failed during ping")
		db.Close()
		return nil, errors.Wrap(err, "failed to ping database")
	}

	return &SQLStore{DB: db, Driver: driver, Log: log}, nil
}

// Migrate brings the schema up to date using the embedded goose migrations.
func (s *SQLStore) Migrate() error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(&gooseLogger{log: s.Log})

	if err := goose.SetDialect(s.Driver); err != nil {
		return errors.Wrap(err, "failed to set migration dialect")
	}
	if err := goose.Up(s.DB, "migrations"); err != nil {
		s.Log.Error().Err(err).Msg("Failed to run migrations")
		return errors.Wrap(err, "failed to run migrations")
	}

	s.Log.Info().Str("driver", s.Driver).Msg("Migrations complete")
	return nil
}

func (s *SQLStore) Load(ctx context.Context, name string) ([]models.Record, error) {
	var doc string
	err := s.DB.QueryRowContext(ctx,
		`SELECT documents FROM collections WHERE name = $1`, name).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, loadFailure(name, ErrCollectionNotFound)
		}
		return nil, loadFailure(name, err)
	}

	records, err := decodeCollection([]byte(doc))
	if err != nil {
		return nil, loadFailure(name, err)
	}

	s.Log.Debug().Str("collection", name).Int("count", len(records)).Msg("collection loaded")
	return records, nil
}

func (s *SQLStore) Save(ctx context.Context, name string, records []models.Record) error {
	data, err := encodeCollection(records)
	if err != nil {
		return saveFailure(name, err)
	}

	_, err = s.DB.ExecContext(ctx, `
		INSERT INTO collections (name, documents, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (name) DO UPDATE
		SET documents = excluded.documents, updated_at = CURRENT_TIMESTAMP`,
		name, string(data))
	if err != nil {
		return saveFailure(name, err)
	}

	s.Log.Debug().Str("collection", name).Int("count", len(records)).Msg("collection saved")
	return nil
}

func (s *SQLStore) Close() error {
	if err := s.DB.Close(); err != nil {
		return err
	}
	s.Log.Info().Msg("database connection closed")
	return nil
}

// gooseLogger routes goose output through zerolog.
type gooseLogger struct {
	log *zerolog.Logger
}

func (l *gooseLogger) Printf(format string, v ...interface{}) {
	l.log.Debug().Msgf(format, v...)
}

func (l *gooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Fatal().Msgf(format, v...)
}
