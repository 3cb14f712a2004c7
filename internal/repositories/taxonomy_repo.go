package repositories

import (
	"context"

	"gudang/internal/models"
)

// TaxonomyRepository defines the interface for category, brand and tag data access.
//
// Deleting a category or brand also deletes every product that references it,
// together with those products' tag rows. Deleting a tag deletes its tag rows.
type TaxonomyRepository interface {
	Categories(ctx context.Context) ([]models.Category, error)
	Brands(ctx context.Context) ([]models.Brand, error)
	Tags(ctx context.Context) ([]models.Tag, error)
	Create(ctx context.Context, kind models.Kind, name string) (models.Term, error)
	Rename(ctx context.Context, kind models.Kind, id uint, name string) error
	Delete(ctx context.Context, kind models.Kind, id uint) error
}
