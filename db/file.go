package db

import (
	"context"
	"os"
	"path/filepath"

	"github.com/EO-DataHub/eodhp-resource-services/models"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// FileStore keeps each collection in its own JSON file.
//
// Layout:
//
//	data_dir/
//	  users.json      # "users" collection
//	  products.json   # "products" collection
type FileStore struct {
	Dir string
	Log *zerolog.Logger
}

func NewFileStore(dir string, log *zerolog.Logger) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("data directory is not configured")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create data directory")
	}
	return &FileStore{Dir: dir, Log: orNop(log)}, nil
}

// Path returns the file backing the named collection.
func (s *FileStore) Path(name string) string {
	return filepath.Join(s.Dir, name+".json")
}

func (s *FileStore) Load(ctx context.Context, name string) ([]models.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, loadFailure(name, err)
	}

	path := s.Path(name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, loadFailure(name, errors.Wrap(ErrCollectionNotFound, path))
		}
		return nil, loadFailure(name, err)
	}

	records, err := decodeCollection(data)
	if err != nil {
		return nil, loadFailure(name, errors.Wrap(err, path))
	}

	s.Log.Debug().Str("collection", name).Int("count", len(records)).Msg("collection loaded")
	return records, nil
}

func (s *FileStore) Save(ctx context.Context, name string, records []models.Record) error {
	if err := ctx.Err(); err != nil {
		return saveFailure(name, err)
	}

	data, err := encodeCollection(records)
	if err != nil {
		return saveFailure(name, err)
	}

	if err := os.WriteFile(s.Path(name), data, 0o644); err != nil {
		return saveFailure(name, err)
	}

	s.Log.Debug().Str("collection", name).Int("count", len(records)).Msg("collection saved")
	return nil
}

// Exists reports whether the named collection has a backing file.
func (s *FileStore) Exists(name string) (bool, error) {
	_, err := os.Stat(s.Path(name))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (s *FileStore) Close() error { return nil }
