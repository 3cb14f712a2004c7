package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gudang/internal/models"
)

// ProductSource reads products from the store.
type ProductSource interface {
	GetAllProducts(ctx context.Context) ([]models.Product, error)
	GetProductByID(ctx context.Context, id uint) (*models.Product, error)
}

// TaxonomySource reads categories, brands and tags from the store.
type TaxonomySource interface {
	Snapshot(ctx context.Context) (models.Taxonomy, error)
}

// Reconciler brings the cache back in line with the store after a committed
// change, then refreshes the view. It is only called once the store
// round-trip has succeeded. A cache that turns out to be out of sync is
// repaired with a full reload instead of failing.
type Reconciler struct {
	products ProductSource
	taxonomy TaxonomySource
	cache    *Cache
	view     *View
}

// NewReconciler creates a Reconciler for cache and view.
func NewReconciler(products ProductSource, taxonomy TaxonomySource, cache *Cache, view *View) *Reconciler {
	return &Reconciler{
		products: products,
		taxonomy: taxonomy,
		cache:    cache,
		view:     view,
	}
}

// Reload replaces the cache with every product in the store. On failure the
// cache keeps its previous contents.
func (r *Reconciler) Reload(ctx context.Context) error {
	if err := r.loadProducts(ctx); err != nil {
		return err
	}
	r.view.Refresh()
	return nil
}

// ReloadTaxonomy refreshes the names used for search and display.
func (r *Reconciler) ReloadTaxonomy(ctx context.Context) error {
	if err := r.loadTaxonomy(ctx); err != nil {
		return err
	}
	r.view.Refresh()
	return nil
}

// ReloadAll reads the taxonomy and then every product, refreshing the view
// once. Products are not read if the taxonomy fails to load.
func (r *Reconciler) ReloadAll(ctx context.Context) error {
	if err := r.loadTaxonomy(ctx); err != nil {
		return err
	}
	err := r.loadProducts(ctx)
	r.view.Refresh()
	return err
}

func (r *Reconciler) loadProducts(ctx context.Context) error {
	products, err := r.products.GetAllProducts(ctx)
	if err != nil {
		log.Printf("Error loading products: %v", err)
		return err
	}
	r.cache.Load(products)
	log.Printf("Loaded %d products", r.cache.Len())
	return nil
}

func (r *Reconciler) loadTaxonomy(ctx context.Context) error {
	t, err := r.taxonomy.Snapshot(ctx)
	if err != nil {
		log.Printf("Error loading taxonomy: %v", err)
		return err
	}
	r.view.SetLookup(NewLookup(t))
	return nil
}

// ProductCreated adds a freshly stored product to the cache.
func (r *Reconciler) ProductCreated(ctx context.Context, p models.Product) error {
	if err := r.cache.Insert(p); err != nil {
		return r.resync(ctx, err)
	}
	r.view.Refresh()
	return nil
}

// ProductUpdated re-reads the product from the store and replaces it in place.
func (r *Reconciler) ProductUpdated(ctx context.Context, id uint) error {
	fresh, err := r.products.GetProductByID(ctx, id)
	if err != nil {
		return r.resync(ctx, fmt.Errorf("refetch product %d: %w", id, err))
	}
	if err := r.cache.Replace(id, *fresh); err != nil {
		return r.resync(ctx, err)
	}
	r.view.Refresh()
	return nil
}

// ProductDeleted drops a product from the cache.
func (r *Reconciler) ProductDeleted(ctx context.Context, id uint) error {
	if err := r.cache.Remove(id); err != nil {
		return r.resync(ctx, err)
	}
	r.view.Refresh()
	return nil
}

// TaxonomyChanged reloads the taxonomy after a category, brand or tag change.
// Products are reloaded as well whenever the change can have removed products
// or tag rows: any category or brand change, and tag deletion.
func (r *Reconciler) TaxonomyChanged(ctx context.Context, kind models.Kind, deleted bool) error {
	if kind == models.KindTag && !deleted {
		return r.ReloadTaxonomy(ctx)
	}
	return r.ReloadAll(ctx)
}

func (r *Reconciler) resync(ctx context.Context, cause error) error {
	switch {
	case errors.Is(cause, ErrNotFound), errors.Is(cause, ErrDuplicateIdentity), errors.Is(cause, ErrIdentityChanged):
		log.Printf("Product cache out of sync (%v), reloading", cause)
	default:
		log.Printf("Could not reconcile product cache (%v), reloading", cause)
	}
	return r.Reload(ctx)
}
