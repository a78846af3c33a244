package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"shopbot/internal/domain"
	apperrors "shopbot/internal/errors"

	"go.uber.org/zap"
)

type counterState struct {
	LastOrderNumber int64 `json:"lastOrderNumber"`
}

// FileCounterRepository hands out order numbers backed by a single JSON file.
// The file is written before a number is returned, so a crash can skip a
// number but never reissue one.
type FileCounterRepository struct {
	mu     sync.Mutex
	path   string
	last   int64
	logger *zap.Logger
}

func NewFileCounterRepository(path string, logger *zap.Logger) (*FileCounterRepository, error) {
	r := &FileCounterRepository{
		path:   path,
		logger: logger,
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

// Allocate returns the next order id. On persist failure the in-memory value
// is not advanced and no id is handed out.
func (r *FileCounterRepository) Allocate() (domain.OrderID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.last + 1
	if err := r.persist(next); err != nil {
		return "", err
	}
	r.last = next

	return domain.OrderID(fmt.Sprintf("T%d", next)), nil
}

// Last reports the most recently issued sequence number.
func (r *FileCounterRepository) Last() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

func (r *FileCounterRepository) load() error {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			r.logger.Info("creating new order counter", zap.String("path", r.path))
			r.last = 0
			return r.persist(0)
		}
		return apperrors.NewStorageError("reading order counter", err)
	}

	var state counterState
	if err := json.Unmarshal(data, &state); err != nil {
		r.logger.Warn("order counter file corrupt, resetting", zap.String("path", r.path), zap.Error(err))
		r.last = 0
		return r.persist(0)
	}

	r.last = state.LastOrderNumber
	return nil
}

func (r *FileCounterRepository) persist(value int64) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return apperrors.NewStorageError("creating data directory", err)
	}

	data, err := json.MarshalIndent(counterState{LastOrderNumber: value}, "", "  ")
	if err != nil {
		return apperrors.NewStorageError("encoding order counter", err)
	}

	// Write-then-rename so a crash mid-write leaves the previous counter
	// intact instead of a torn file that load() would reset to zero.
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return apperrors.NewStorageError("writing order counter", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		os.Remove(tmp)
		return apperrors.NewStorageError("replacing order counter", err)
	}
	return nil
}
