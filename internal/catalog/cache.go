// Package catalog keeps an in-memory, filtered and sorted view of the inventory
// in step with the store.
//
// Nothing in this package is safe for concurrent use. A single event loop owns
// a Catalog and every value reachable from it.
package catalog

import (
	"errors"
	"fmt"
	"log"
	"slices"

	"gudang/internal/models"
)

var (
	// ErrNotFound means the cache has no product with the given id.
	ErrNotFound = errors.New("product not in cache")
	// ErrDuplicateIdentity means the cache already holds a product with that id.
	ErrDuplicateIdentity = errors.New("product already in cache")
	// ErrIdentityChanged means a replacement carried a different id than the entry it replaces.
	ErrIdentityChanged = errors.New("product identity cannot change")
)

// Cache is the ordered working set of products behind a view.
type Cache struct {
	products []models.Product
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{}
}

// Load replaces the whole contents. If the input repeats an id, only the first
// occurrence is kept.
func (c *Cache) Load(all []models.Product) {
	products := make([]models.Product, 0, len(all))
	seen := make(map[uint]struct{}, len(all))
	for _, p := range all {
		if _, dup := seen[p.ID]; dup {
			log.Printf("Skipping duplicate product %d while loading cache", p.ID)
			continue
		}
		seen[p.ID] = struct{}{}
		products = append(products, p)
	}
	c.products = products
}

// Insert appends a product.
func (c *Cache) Insert(p models.Product) error {
	if c.indexOf(p.ID) >= 0 {
		return fmt.Errorf("insert product %d: %w", p.ID, ErrDuplicateIdentity)
	}
	c.products = append(c.products, p)
	return nil
}

// Replace overwrites the product with the given id, keeping its position.
func (c *Cache) Replace(id uint, p models.Product) error {
	if p.ID != id {
		return fmt.Errorf("replace product %d with %d: %w", id, p.ID, ErrIdentityChanged)
	}
	i := c.indexOf(id)
	if i < 0 {
		return fmt.Errorf("replace product %d: %w", id, ErrNotFound)
	}
	c.products[i] = p
	return nil
}

// Remove deletes the product with the given id.
func (c *Cache) Remove(id uint) error {
	i := c.indexOf(id)
	if i < 0 {
		return fmt.Errorf("remove product %d: %w", id, ErrNotFound)
	}
	c.products = slices.Delete(c.products, i, i+1)
	return nil
}

// Get returns the product with the given id.
func (c *Cache) Get(id uint) (models.Product, bool) {
	i := c.indexOf(id)
	if i < 0 {
		return models.Product{}, false
	}
	return c.products[i], true
}

// Len returns the number of cached products.
func (c *Cache) Len() int {
	return len(c.products)
}

// Products returns a copy of the cached products in cache order.
func (c *Cache) Products() []models.Product {
	return slices.Clone(c.products)
}

func (c *Cache) indexOf(id uint) int {
	return slices.IndexFunc(c.products, func(p models.Product) bool {
		return p.ID == id
	})
}
