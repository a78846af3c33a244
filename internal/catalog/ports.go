package catalog

import "shopbot/internal/domain"

type Repository interface {
	Load() (*domain.Catalog, error)
	Save(catalog *domain.Catalog) error
}
