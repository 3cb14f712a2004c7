package catalog

import (
	"strconv"
	"strings"

	"gudang/internal/models"

	"golang.org/x/text/cases"
)

// SearchScope selects which fields the free-text query looks at.
type SearchScope int

const (
	// SearchName matches the product name only.
	SearchName SearchScope = iota
	// SearchAll also matches description, category name and brand name.
	SearchAll
)

// ParseSearchScope converts "name" or "all" into a SearchScope.
func ParseSearchScope(s string) (SearchScope, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name":
		return SearchName, true
	case "all":
		return SearchAll, true
	}
	return SearchName, false
}

// Criteria is the active filter. Zero ids and empty or non-numeric price
// bounds mean "not set".
type Criteria struct {
	Query      string
	Scope      SearchScope
	CategoryID uint
	BrandID    uint
	PriceFrom  string
	PriceTo    string
}

// Cleared returns the criteria with every filter unset, keeping the scope.
func (c Criteria) Cleared() Criteria {
	return Criteria{Scope: c.Scope}
}

// Searching reports whether a text query is active.
func (c Criteria) Searching() bool {
	return strings.TrimSpace(c.Query) != ""
}

// Names resolves category and brand ids to display names.
type Names interface {
	CategoryName(id uint) string
	BrandName(id uint) string
}

// Match reports whether the product passes every criterion.
func Match(p models.Product, c Criteria, names Names) bool {
	return compile(c, names)(p)
}

// compile folds the query and parses the bounds once so the returned predicate
// can be applied to a whole cache. A blank query is ignored. The name search
// matches the text as typed, spaces included; the wider search trims it.
func compile(c Criteria, names Names) func(models.Product) bool {
	fold := cases.Fold()
	query := c.Query
	if !c.Searching() {
		query = ""
	} else if c.Scope == SearchAll {
		query = strings.TrimSpace(query)
	}
	query = fold.String(query)
	minPrice, hasMin := parseBound(c.PriceFrom)
	maxPrice, hasMax := parseBound(c.PriceTo)

	contains := func(s string) bool {
		return strings.Contains(fold.String(s), query)
	}

	return func(p models.Product) bool {
		if query != "" {
			hit := contains(p.Name)
			if !hit && c.Scope == SearchAll {
				hit = contains(p.Description)
				if !hit && names != nil {
					hit = contains(names.CategoryName(p.CategoryID)) || contains(names.BrandName(p.BrandID))
				}
			}
			if !hit {
				return false
			}
		}
		if c.CategoryID != 0 && p.CategoryID != c.CategoryID {
			return false
		}
		if c.BrandID != 0 && p.BrandID != c.BrandID {
			return false
		}
		if hasMin && p.Price < minPrice {
			return false
		}
		if hasMax && p.Price > maxPrice {
			return false
		}
		return true
	}
}

// parseBound reads a whole-number price bound. Anything unparsable is treated
// as an unset bound.
func parseBound(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
