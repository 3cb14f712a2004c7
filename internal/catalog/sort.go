package catalog

import (
	"cmp"
	"fmt"
	"strings"

	"gudang/internal/models"

	"golang.org/x/text/collate"
)

// SortKey is the product field the view is ordered by.
type SortKey int

const (
	SortNone SortKey = iota
	SortByName
	SortByPrice
	SortByStock
)

func (k SortKey) String() string {
	switch k {
	case SortByName:
		return "name"
	case SortByPrice:
		return "price"
	case SortByStock:
		return "stock"
	}
	return "none"
}

// Direction is ascending or descending.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Sort is the single active ordering of a view. The zero value keeps cache order.
type Sort struct {
	Key SortKey
	Dir Direction
}

func (s Sort) String() string {
	if s.Key == SortNone {
		return "none"
	}
	return s.Key.String() + " " + s.Dir.String()
}

// ParseSort reads a key ("name", "price", "stock" or "none") and a direction
// ("asc" or "desc", default "asc").
func ParseSort(key, dir string) (Sort, error) {
	var s Sort
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", "none":
		return Sort{}, nil
	case "name":
		s.Key = SortByName
	case "price":
		s.Key = SortByPrice
	case "stock":
		s.Key = SortByStock
	default:
		return Sort{}, fmt.Errorf("unknown sort key %q", key)
	}
	switch strings.ToLower(strings.TrimSpace(dir)) {
	case "", "asc":
		s.Dir = Ascending
	case "desc":
		s.Dir = Descending
	default:
		return Sort{}, fmt.Errorf("unknown sort direction %q", dir)
	}
	return s, nil
}

// Comparator returns the ordering for s, or nil when s keeps cache order.
// Names are compared with the collator's locale rules.
func Comparator(s Sort, collator *collate.Collator) func(a, b models.Product) int {
	var base func(a, b models.Product) int
	switch s.Key {
	case SortByName:
		base = func(a, b models.Product) int {
			return collator.CompareString(a.Name, b.Name)
		}
	case SortByPrice:
		base = func(a, b models.Product) int {
			return cmp.Compare(a.Price, b.Price)
		}
	case SortByStock:
		base = func(a, b models.Product) int {
			return cmp.Compare(a.Stock, b.Stock)
		}
	default:
		return nil
	}
	if s.Dir == Descending {
		return func(a, b models.Product) int {
			return base(b, a)
		}
	}
	return base
}
