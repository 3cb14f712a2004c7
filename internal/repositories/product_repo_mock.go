package repositories

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"gudang/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// Ids are assigned from a counter, like an auto-increment column.
type MockProductRepository struct {
	products map[uint]models.Product
	nextID   uint
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[uint]models.Product),
		nextID:   1,
	}
}

// GetAll returns all products ordered by id.
func (r *MockProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, p)
	}
	slices.SortFunc(productList, func(a, b models.Product) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %d: %w", id, ErrNotFound)
	}
	return &product, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(ctx context.Context, product *models.Product, tagIDs []uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product.ID = r.nextID
	r.nextID++
	product.ProductTags = tagRows(product.ID, tagIDs)
	r.products[product.ID] = *product
	return nil
}

// Update modifies an existing product, keeping its original CreatedAt.
func (r *MockProductRepository) Update(ctx context.Context, product *models.Product, tagIDs []uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.products[product.ID]
	if !ok {
		return fmt.Errorf("product with ID %d: %w", product.ID, ErrNotFound)
	}
	product.CreatedAt = existing.CreatedAt
	product.ProductTags = tagRows(product.ID, tagIDs)
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("product with ID %d: %w", id, ErrNotFound)
	}
	delete(r.products, id)
	return nil
}

// Put stores a product as-is, bypassing id assignment. Later creates continue
// after the highest id seen.
func (r *MockProductRepository) Put(product models.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products[product.ID] = product
	if product.ID >= r.nextID {
		r.nextID = product.ID + 1
	}
}

func tagRows(productID uint, tagIDs []uint) []models.ProductTag {
	if len(tagIDs) == 0 {
		return nil
	}
	sorted := slices.Clone(tagIDs)
	slices.Sort(sorted)
	rows := make([]models.ProductTag, 0, len(sorted))
	for _, tagID := range sorted {
		rows = append(rows, models.ProductTag{ProductID: productID, TagID: tagID})
	}
	return rows
}
