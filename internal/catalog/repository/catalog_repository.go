package repository

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"shopbot/internal/domain"
	apperrors "shopbot/internal/errors"
)

// FileCatalogRepository serves the catalog from a single JSON file the admin
// panel rewrites in place.
type FileCatalogRepository struct {
	mu   sync.RWMutex
	path string
}

func NewFileCatalogRepository(path string) *FileCatalogRepository {
	return &FileCatalogRepository{path: path}
}

func (r *FileCatalogRepository) Load() (*domain.Catalog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, apperrors.NewStorageError("reading catalog", err)
	}

	var catalog domain.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, apperrors.NewStorageError("parsing catalog", err)
	}
	return &catalog, nil
}

// Save rewrites the catalog through a temp file and rename, so a crash
// mid-write cannot truncate the live file.
func (r *FileCatalogRepository) Save(catalog *domain.Catalog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return apperrors.NewStorageError("creating data directory", err)
	}

	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return apperrors.NewStorageError("encoding catalog", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return apperrors.NewStorageError("writing catalog", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		os.Remove(tmp)
		return apperrors.NewStorageError("replacing catalog", err)
	}
	return nil
}
