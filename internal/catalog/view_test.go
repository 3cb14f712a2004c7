package catalog

import (
	"testing"

	"gudang/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestView_RowsResolveNames(t *testing.T) {
	p := product(1, "Mouse", 25)
	p.CategoryID, p.BrandID = 2, 2
	p.ProductTags = []models.ProductTag{{ProductID: 1, TagID: 1}, {ProductID: 1, TagID: 2}, {ProductID: 1, TagID: 9}}
	_, view := newTestView(p)

	rows := view.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "Kitchen", rows[0].CategoryName)
	assert.Equal(t, "Globex", rows[0].BrandName)
	assert.Equal(t, []string{"sale", "new"}, rows[0].TagNames)
}

func TestView_FilterAndSort(t *testing.T) {
	_, view := newTestView(product(1, "A", 10), product(2, "B", 50), product(3, "C", 30))

	view.SetSort(Sort{Key: SortByPrice})
	assert.Equal(t, []uint{1, 3, 2}, ids(view.Rows()))

	view.SetSort(Sort{Key: SortByPrice, Dir: Descending})
	assert.Equal(t, []uint{2, 3, 1}, ids(view.Rows()))

	view.SetCriteria(Criteria{PriceFrom: "20"})
	assert.Equal(t, []uint{2, 3}, ids(view.Rows()))
	assert.Equal(t, Stats{Total: 3, Displayed: 2}, view.Stats())
}

func TestView_ResetRestoresCacheOrder(t *testing.T) {
	cache, view := newTestView(product(3, "C", 30), product(1, "A", 10), product(2, "B", 50))

	view.SetCriteria(Criteria{Query: "b"})
	view.SetSort(Sort{Key: SortByName})
	view.SetCriteria(view.Criteria().Cleared())
	view.SetSort(Sort{})

	var want []uint
	for _, p := range cache.Products() {
		want = append(want, p.ID)
	}
	assert.Equal(t, want, ids(view.Rows()))
}

func TestView_RefreshIsIdempotent(t *testing.T) {
	_, view := newTestView(product(1, "A", 30), product(2, "B", 10), product(3, "C", 30))
	view.SetSort(Sort{Key: SortByPrice, Dir: Descending})
	first := view.Rows()

	view.Refresh()

	assert.Equal(t, first, view.Rows())
}

func TestView_Stats(t *testing.T) {
	_, view := newTestView(product(1, "Mouse", 10), product(2, "Keyboard", 50))

	assert.Equal(t, "Total products: 2", view.Stats().String())

	view.SetCriteria(Criteria{Query: "mouse"})
	assert.Equal(t, "Found 1 of 2 products", view.Stats().String())

	view.SetCriteria(Criteria{PriceFrom: "20"})
	assert.Equal(t, "Showing 1 of 2 products", view.Stats().String())
}

func TestView_Subscribe(t *testing.T) {
	_, view := newTestView(product(1, "A", 10))

	var calls int
	var last Stats
	unsubscribe := view.Subscribe(func(rows []Row, s Stats) {
		calls++
		last = s
	})

	view.SetCriteria(Criteria{Query: "zzz"})
	assert.Equal(t, 1, calls)
	assert.Equal(t, Stats{Total: 1, Displayed: 0, Searching: true}, last)

	unsubscribe()
	view.Refresh()
	assert.Equal(t, 1, calls)
}

func TestSearchTerms(t *testing.T) {
	terms := []models.Term{
		{Kind: models.KindBrand, ID: 1, Name: "Acme"},
		{Kind: models.KindBrand, ID: 2, Name: "Globex"},
		{Kind: models.KindBrand, ID: 3, Name: "ACME Pro"},
	}

	res := SearchTerms(terms, "acme")
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, []uint{1, 3}, []uint{res.Terms[0].ID, res.Terms[1].ID})

	assert.Len(t, SearchTerms(terms, " ").Terms, 3)
}

func TestLookup_Nil(t *testing.T) {
	var l *Lookup
	assert.Empty(t, l.CategoryName(1))
	assert.Empty(t, l.TagName(1))
	assert.Equal(t, models.Taxonomy{}, l.Taxonomy())
}
