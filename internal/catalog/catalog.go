package catalog

import (
	"context"
	"errors"
	"fmt"

	"gudang/internal/models"
	"gudang/internal/services"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ErrStaleView is returned alongside a successful change when the view could
// not be brought up to date afterwards. The change itself is committed.
var ErrStaleView = errors.New("change saved but the view could not be refreshed")

// Options configures a Catalog.
type Options struct {
	// Locale is a BCP 47 tag used to collate product names.
	Locale string
	Scope  SearchScope
}

// Catalog is what the presentation layer talks to: the current rows, setters
// for every filter criterion, sort commands, and write-through commands that
// validate, hit the store and reconcile the cache in one call.
type Catalog struct {
	products   *services.ProductService
	taxonomy   *services.TaxonomyService
	cache      *Cache
	view       *View
	reconciler *Reconciler
}

// New creates an empty Catalog. Call Load to fill it.
func New(products *services.ProductService, taxonomy *services.TaxonomyService, opts Options) (*Catalog, error) {
	tag, err := language.Parse(opts.Locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", opts.Locale, err)
	}
	cache := NewCache()
	view := NewView(cache, collate.New(tag))
	view.criteria.Scope = opts.Scope
	return &Catalog{
		products:   products,
		taxonomy:   taxonomy,
		cache:      cache,
		view:       view,
		reconciler: NewReconciler(products, taxonomy, cache, view),
	}, nil
}

// Load reads the taxonomy and every product from the store.
func (c *Catalog) Load(ctx context.Context) error {
	return c.reconciler.ReloadAll(ctx)
}

// Rows returns the visible products in display order.
func (c *Catalog) Rows() []Row {
	return c.view.Rows()
}

// Row returns the cached product with the given id, whether visible or not.
func (c *Catalog) Row(id uint) (Row, bool) {
	p, ok := c.cache.Get(id)
	if !ok {
		return Row{}, false
	}
	return c.view.row(p), true
}

// Stats returns the visible and total product counts.
func (c *Catalog) Stats() Stats {
	return c.view.Stats()
}

// Taxonomy returns the categories, brands and tags last loaded.
func (c *Catalog) Taxonomy() models.Taxonomy {
	return c.view.names.Taxonomy()
}

// SearchTerms filters one taxonomy list by name.
func (c *Catalog) SearchTerms(kind models.Kind, query string) TermSearch {
	return SearchTerms(c.Taxonomy().Terms(kind), query)
}

// Criteria returns the active filter.
func (c *Catalog) Criteria() Criteria {
	return c.view.Criteria()
}

// Sort returns the active ordering.
func (c *Catalog) Sort() Sort {
	return c.view.Sort()
}

// Subscribe registers fn to run after every view refresh.
func (c *Catalog) Subscribe(fn func([]Row, Stats)) func() {
	return c.view.Subscribe(fn)
}

// SetQuery sets the free-text search.
func (c *Catalog) SetQuery(q string) {
	cr := c.view.Criteria()
	cr.Query = q
	c.view.SetCriteria(cr)
}

// SetSearchScope chooses between name-only and all-field search.
func (c *Catalog) SetSearchScope(s SearchScope) {
	cr := c.view.Criteria()
	cr.Scope = s
	c.view.SetCriteria(cr)
}

// SetCategory filters by category; 0 clears the filter.
func (c *Catalog) SetCategory(id uint) {
	cr := c.view.Criteria()
	cr.CategoryID = id
	c.view.SetCriteria(cr)
}

// SetBrand filters by brand; 0 clears the filter.
func (c *Catalog) SetBrand(id uint) {
	cr := c.view.Criteria()
	cr.BrandID = id
	c.view.SetCriteria(cr)
}

// SetPriceFrom sets the inclusive lower price bound as typed.
func (c *Catalog) SetPriceFrom(s string) {
	cr := c.view.Criteria()
	cr.PriceFrom = s
	c.view.SetCriteria(cr)
}

// SetPriceTo sets the inclusive upper price bound as typed.
func (c *Catalog) SetPriceTo(s string) {
	cr := c.view.Criteria()
	cr.PriceTo = s
	c.view.SetCriteria(cr)
}

// SortBy makes s the only active ordering.
func (c *Catalog) SortBy(s Sort) {
	c.view.SetSort(s)
}

// ResetFilters clears every criterion and the sort.
func (c *Catalog) ResetFilters() {
	c.view.criteria = c.view.criteria.Cleared()
	c.view.sort = Sort{}
	c.view.Refresh()
}

// Reload discards the cache and reads everything again.
func (c *Catalog) Reload(ctx context.Context) error {
	return c.Load(ctx)
}

// CreateProduct stores a new product and adds it to the view.
func (c *Catalog) CreateProduct(ctx context.Context, in services.ProductInput) (*models.Product, error) {
	p, err := c.products.CreateProduct(ctx, in)
	if err != nil {
		return nil, err
	}
	return p, stale(c.reconciler.ProductCreated(ctx, *p))
}

// UpdateProduct overwrites a product and refreshes its row in place.
func (c *Catalog) UpdateProduct(ctx context.Context, id uint, in services.ProductInput) (*models.Product, error) {
	p, err := c.products.UpdateProduct(ctx, id, in)
	if err != nil {
		return nil, err
	}
	return p, stale(c.reconciler.ProductUpdated(ctx, id))
}

// DeleteProduct deletes a product and removes its row.
func (c *Catalog) DeleteProduct(ctx context.Context, id uint) error {
	if err := c.products.DeleteProduct(ctx, id); err != nil {
		return err
	}
	return stale(c.reconciler.ProductDeleted(ctx, id))
}

// CreateTerm stores a new category, brand or tag.
func (c *Catalog) CreateTerm(ctx context.Context, kind models.Kind, name string) (models.Term, error) {
	term, err := c.taxonomy.CreateTerm(ctx, kind, name)
	if err != nil {
		return models.Term{}, err
	}
	return term, stale(c.reconciler.TaxonomyChanged(ctx, kind, false))
}

// RenameTerm renames a category, brand or tag.
func (c *Catalog) RenameTerm(ctx context.Context, kind models.Kind, id uint, name string) error {
	if err := c.taxonomy.RenameTerm(ctx, kind, id, name); err != nil {
		return err
	}
	return stale(c.reconciler.TaxonomyChanged(ctx, kind, false))
}

// DeleteTerm deletes a category, brand or tag. Products of a deleted category
// or brand disappear from the view as well.
func (c *Catalog) DeleteTerm(ctx context.Context, kind models.Kind, id uint) error {
	if err := c.taxonomy.DeleteTerm(ctx, kind, id); err != nil {
		return err
	}
	return stale(c.reconciler.TaxonomyChanged(ctx, kind, true))
}

func stale(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrStaleView, err)
}
