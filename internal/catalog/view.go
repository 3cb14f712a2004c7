package catalog

import (
	"fmt"
	"slices"

	"gudang/internal/models"

	"golang.org/x/text/collate"
)

// Row is a product as displayed, with its taxonomy names resolved.
type Row struct {
	models.Product
	CategoryName string
	BrandName    string
	TagNames     []string
}

// Stats summarizes a view.
type Stats struct {
	Total     int
	Displayed int
	Searching bool
}

func (s Stats) String() string {
	if s.Searching {
		return fmt.Sprintf("Found %d of %d products", s.Displayed, s.Total)
	}
	if s.Displayed != s.Total {
		return fmt.Sprintf("Showing %d of %d products", s.Displayed, s.Total)
	}
	return fmt.Sprintf("Total products: %d", s.Total)
}

type listener struct {
	id int
	fn func([]Row, Stats)
}

// View is the filtered and sorted projection of a Cache. It is rebuilt from
// scratch on every Refresh; nothing is patched incrementally.
type View struct {
	cache     *Cache
	names     *Lookup
	collator  *collate.Collator
	criteria  Criteria
	sort      Sort
	rows      []Row
	listeners []listener
	nextID    int
}

// NewView creates a view over cache. Names sort with collator.
func NewView(cache *Cache, collator *collate.Collator) *View {
	return &View{
		cache:    cache,
		collator: collator,
	}
}

// SetLookup swaps the taxonomy used for name search and display names.
// The caller refreshes.
func (v *View) SetLookup(l *Lookup) {
	v.names = l
}

// Criteria returns the active filter.
func (v *View) Criteria() Criteria {
	return v.criteria
}

// SetCriteria replaces the filter and refreshes.
func (v *View) SetCriteria(c Criteria) {
	v.criteria = c
	v.Refresh()
}

// Sort returns the active ordering.
func (v *View) Sort() Sort {
	return v.sort
}

// SetSort replaces the ordering and refreshes.
func (v *View) SetSort(s Sort) {
	v.sort = s
	v.Refresh()
}

// Refresh recomputes the rows and notifies subscribers.
func (v *View) Refresh() {
	match := compile(v.criteria, v.names)
	var products []models.Product
	for _, p := range v.cache.products {
		if match(p) {
			products = append(products, p)
		}
	}
	if less := Comparator(v.sort, v.collator); less != nil {
		slices.SortStableFunc(products, less)
	}

	rows := make([]Row, 0, len(products))
	for _, p := range products {
		rows = append(rows, v.row(p))
	}
	v.rows = rows

	stats := v.Stats()
	for _, l := range slices.Clone(v.listeners) {
		l.fn(v.Rows(), stats)
	}
}

// Rows returns the current rows.
func (v *View) Rows() []Row {
	return slices.Clone(v.rows)
}

// Stats returns the counts for the current rows.
func (v *View) Stats() Stats {
	return Stats{
		Total:     v.cache.Len(),
		Displayed: len(v.rows),
		Searching: v.criteria.Searching(),
	}
}

// Subscribe registers fn to be called after every Refresh. The returned func
// removes it again.
func (v *View) Subscribe(fn func([]Row, Stats)) func() {
	id := v.nextID
	v.nextID++
	v.listeners = append(v.listeners, listener{id: id, fn: fn})
	return func() {
		v.listeners = slices.DeleteFunc(v.listeners, func(l listener) bool {
			return l.id == id
		})
	}
}

func (v *View) row(p models.Product) Row {
	r := Row{
		Product:      p,
		CategoryName: v.names.CategoryName(p.CategoryID),
		BrandName:    v.names.BrandName(p.BrandID),
	}
	for _, id := range p.TagIDs() {
		if name := v.names.TagName(id); name != "" {
			r.TagNames = append(r.TagNames, name)
		}
	}
	return r
}
