package repositories

import (
	"context"

	"github.com/carecompass/backend/internal/domain/entities"
)

// CatalogSource loads the static symptom and doctor tables.
type CatalogSource interface {
	Load(ctx context.Context) (*entities.Catalog, error)
}
