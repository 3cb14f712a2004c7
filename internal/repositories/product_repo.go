package repositories

import (
	"context"
	"errors"

	"gudang/internal/models"
)

// ErrNotFound is returned (wrapped) when a requested row does not exist.
var ErrNotFound = errors.New("record not found")

// ProductRepository defines the interface for product data access.
//
// Create and Update replace the product's tag rows with tagIDs. On success the
// product is re-read from the store; if only that read fails, the committed
// write is still reported as a success and the product keeps the written values.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, product *models.Product, tagIDs []uint) error
	Update(ctx context.Context, product *models.Product, tagIDs []uint) error
	Delete(ctx context.Context, id uint) error
}
