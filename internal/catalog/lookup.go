package catalog

import (
	"strings"

	"gudang/internal/models"

	"golang.org/x/text/cases"
)

// Lookup resolves taxonomy ids to names. A nil Lookup resolves nothing.
type Lookup struct {
	taxonomy   models.Taxonomy
	categories map[uint]string
	brands     map[uint]string
	tags       map[uint]string
}

// NewLookup indexes a taxonomy snapshot.
func NewLookup(t models.Taxonomy) *Lookup {
	l := &Lookup{
		taxonomy:   t,
		categories: make(map[uint]string, len(t.Categories)),
		brands:     make(map[uint]string, len(t.Brands)),
		tags:       make(map[uint]string, len(t.Tags)),
	}
	for _, c := range t.Categories {
		l.categories[c.ID] = c.Name
	}
	for _, b := range t.Brands {
		l.brands[b.ID] = b.Name
	}
	for _, tg := range t.Tags {
		l.tags[tg.ID] = tg.Name
	}
	return l
}

// CategoryName returns the name of a category, or "" if unknown.
func (l *Lookup) CategoryName(id uint) string {
	if l == nil {
		return ""
	}
	return l.categories[id]
}

// BrandName returns the name of a brand, or "" if unknown.
func (l *Lookup) BrandName(id uint) string {
	if l == nil {
		return ""
	}
	return l.brands[id]
}

// TagName returns the name of a tag, or "" if unknown.
func (l *Lookup) TagName(id uint) string {
	if l == nil {
		return ""
	}
	return l.tags[id]
}

// Taxonomy returns the snapshot the lookup was built from.
func (l *Lookup) Taxonomy() models.Taxonomy {
	if l == nil {
		return models.Taxonomy{}
	}
	return l.taxonomy
}

// TermSearch is the result of filtering one taxonomy list by name.
type TermSearch struct {
	Terms []models.Term
	Total int
}

// SearchTerms keeps the terms whose name contains query, ignoring case.
// A blank query keeps everything.
func SearchTerms(terms []models.Term, query string) TermSearch {
	fold := cases.Fold()
	q := fold.String(strings.TrimSpace(query))
	res := TermSearch{Total: len(terms)}
	for _, t := range terms {
		if q == "" || strings.Contains(fold.String(t.Name), q) {
			res.Terms = append(res.Terms, t)
		}
	}
	return res
}
