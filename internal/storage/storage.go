package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/shopscope/shopscope/internal/config"
	"github.com/shopscope/shopscope/internal/types"
)

// Storage is the interface for all storage backends.
type Storage interface {
	// Store persists a batch of products.
	Store(products []*types.Product) error

	// Close flushes pending writes and releases resources.
	Close() error

	// Name returns the storage backend identifier.
	Name() string
}

// New builds the configured backends, fanned out behind one Storage.
// The raw JSON file is always written: every downstream stage reads it.
func New(cfg *config.Config, logger *slog.Logger) (Storage, error) {
	var backends []Storage

	hasJSON := false
	for _, name := range cfg.Storage.Backends {
		switch name {
		case "json":
			hasJSON = true
			s, err := NewJSONStorage(cfg.Report.RawJSONPath(), logger)
			if err != nil {
				return nil, err
			}
			backends = append(backends, s)
		case "csv":
			s, err := NewCSVStorage(cfg.Storage.CSVPath, logger)
			if err != nil {
				return nil, err
			}
			backends = append(backends, s)
		case "mongodb":
			s, err := NewMongoStorage(cfg.Storage.Mongo.URI, cfg.Storage.Mongo.Database, cfg.Storage.Mongo.Collection, logger)
			if err != nil {
				return nil, err
			}
			backends = append(backends, s)
		default:
			return nil, fmt.Errorf("unknown storage backend %q", name)
		}
	}

	if !hasJSON {
		s, err := NewJSONStorage(cfg.Report.RawJSONPath(), logger)
		if err != nil {
			return nil, err
		}
		backends = append(backends, s)
	}

	if len(backends) == 1 {
		return backends[0], nil
	}
	return NewMultiStorage(backends, logger), nil
}

// LoadProducts reads a raw products JSON file back into records.
func LoadProducts(path string) ([]*types.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, types.ErrNoRawData
		}
		return nil, &types.StorageError{Backend: "json", Err: err}
	}

	var products []*types.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, &types.StorageError{Backend: "json", Err: fmt.Errorf("decode %s: %w", path, err)}
	}
	return products, nil
}
