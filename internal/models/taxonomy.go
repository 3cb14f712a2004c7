package models

import "fmt"

// Category groups products by kind.
type Category struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:255;not null"`
}

// Brand is the manufacturer of a product.
type Brand struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:255;not null"`
}

// Tag is a free label attached to products through ProductTag.
type Tag struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:255;not null"`
}

// Kind names one of the three taxonomy tables.
type Kind string

const (
	KindCategory Kind = "category"
	KindBrand    Kind = "brand"
	KindTag      Kind = "tag"
)

// ParseKind converts operator input into a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindCategory, KindBrand, KindTag:
		return k, nil
	}
	return "", fmt.Errorf("unknown taxonomy kind %q", s)
}

// Term is a kind-agnostic view of a Category, Brand or Tag.
type Term struct {
	Kind Kind   `json:"kind"`
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Taxonomy is a snapshot of every category, brand and tag.
type Taxonomy struct {
	Categories []Category `json:"categories"`
	Brands     []Brand    `json:"brands"`
	Tags       []Tag      `json:"tags"`
}

// Terms returns the entries of the given kind as Terms, in store order.
func (t Taxonomy) Terms(kind Kind) []Term {
	var terms []Term
	switch kind {
	case KindCategory:
		for _, c := range t.Categories {
			terms = append(terms, Term{Kind: kind, ID: c.ID, Name: c.Name})
		}
	case KindBrand:
		for _, b := range t.Brands {
			terms = append(terms, Term{Kind: kind, ID: b.ID, Name: b.Name})
		}
	case KindTag:
		for _, tg := range t.Tags {
			terms = append(terms, Term{Kind: kind, ID: tg.ID, Name: tg.Name})
		}
	}
	return terms
}
