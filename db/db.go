// Package db persists resource collections. A collection is always read and
// written as a whole: there are no partial or incremental updates, and the
// last writer wins.
package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/EO-DataHub/eodhp-resource-services/internal/appconfig"
	awsclient "github.com/EO-DataHub/eodhp-resource-services/internal/aws"
	"github.com/EO-DataHub/eodhp-resource-services/models"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// ErrCollectionNotFound is the cause of a LoadFailure for a collection that has never been saved.
var ErrCollectionNotFound = errors.New("collection does not exist")

// CollectionStore loads and saves named collections of records.
type CollectionStore interface {
	// Load returns the full collection in stored order.
	Load(ctx context.Context, name string) ([]models.Record, error)

	// Save overwrites the collection with records.
	Save(ctx context.Context, name string, records []models.Record) error

	Close() error
}

// LoadFailure reports a collection that could not be read or parsed.
type LoadFailure struct {
	Collection string
	Err        error
}

func (e *LoadFailure) Error() string {
	return fmt.Sprintf("failed to load collection %q: %v", e.Collection, e.Err)
}

func (e *LoadFailure) Unwrap() error { return e.Err }

// SaveFailure reports a collection that could not be serialised or written.
type SaveFailure struct {
	Collection string
	Err        error
}

func (e *SaveFailure) Error() string {
	return fmt.Sprintf("failed to save collection %q: %v", e.Collection, e.Err)
}

func (e *SaveFailure) Unwrap() error { return e.Err }

func loadFailure(name string, err error) error {
	return errors.WithStack(&LoadFailure{Collection: name, Err: err})
}

func saveFailure(name string, err error) error {
	return errors.WithStack(&SaveFailure{Collection: name, Err: err})
}

// NewCollectionStore opens the backend selected in the store configuration.
func NewCollectionStore(ctx context.Context, cfg appconfig.StoreConfig, log *zerolog.Logger) (CollectionStore, error) {
	log = orNop(log)

	switch strings.ToLower(cfg.Backend) {
	case appconfig.BackendJSON, "":
		return NewFileStore(cfg.DataDir, log)

	case appconfig.BackendSQLite:
		source := cfg.Database.Source
		if source == "" {
			if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
				return nil, errors.Wrap(err, "failed to create data directory")
			}
			source = filepath.Join(cfg.DataDir, "collections.db")
		}
		return openSQLStore(DriverSQLite, source, cfg.Database.AutoMigrate, log)

	case appconfig.BackendPostgres:
		source := cfg.Database.Source
		if source == "" {
			source = os.Getenv("DATABASE_URL")
		}
		if source == "" {
			log.Error().Msg("no database source configured and DATABASE_URL is not set")
			return nil, errors.New("database source is not configured")
		}
		return openSQLStore(DriverPostgres, source, cfg.Database.AutoMigrate, log)

	case appconfig.BackendS3:
		if cfg.S3.Bucket == "" {
			return nil, errors.New("s3 bucket is not configured")
		}
		awsCfg, err := awsclient.LoadAWSConfig(ctx, cfg.S3.Region)
		if err != nil {
			return nil, err
		}
		if cfg.S3.RoleArn != "" {
			log.Info().Str("role_arn", cfg.S3.RoleArn).Msg("assuming role for s3 store")
			awsCfg = awsclient.WithAssumedRole(awsCfg, awsclient.NewSTSClient(awsCfg), cfg.S3.RoleArn)
		}
		client := awsclient.NewS3Client(awsCfg, cfg.S3.Endpoint)
		return NewS3Store(client, cfg.S3.Bucket, cfg.S3.Prefix, log), nil

	case appconfig.BackendMemory:
		return NewMemoryStore(), nil
	}

	return nil, errors.Errorf("unknown store backend %q (supported: json, sqlite, postgres, s3, memory)", cfg.Backend)
}

func openSQLStore(driver, source string, migrate bool, log *zerolog.Logger) (*SQLStore, error) {
	store, err := NewSQLStore(driver, source, log)
	if err != nil {
		return nil, err
	}
	if migrate {
		if err := store.Migrate(); err != nil {
			store.Close()
			return nil, err
		}
	}
	return store, nil
}

func orNop(log *zerolog.Logger) *zerolog.Logger {
	if log == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return log
}
