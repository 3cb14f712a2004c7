package catalog

import (
	"context"
	"errors"
	"testing"

	"gudang/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProductSource struct {
	mock.Mock
}

func (m *MockProductSource) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductSource) GetProductByID(ctx context.Context, id uint) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

type MockTaxonomySource struct {
	mock.Mock
}

func (m *MockTaxonomySource) Snapshot(ctx context.Context) (models.Taxonomy, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.Taxonomy), args.Error(1)
}

func newTestReconciler(products ...models.Product) (*Reconciler, *MockProductSource, *MockTaxonomySource, *Cache, *View) {
	cache, view := newTestView(products...)
	ps := new(MockProductSource)
	ts := new(MockTaxonomySource)
	return NewReconciler(ps, ts, cache, view), ps, ts, cache, view
}

func TestReconciler_ProductCreated(t *testing.T) {
	r, ps, _, cache, view := newTestReconciler(product(1, "A", 10))

	require.NoError(t, r.ProductCreated(context.Background(), product(2, "B", 20)))

	assert.Equal(t, 2, cache.Len())
	assert.Equal(t, []uint{1, 2}, ids(view.Rows()))
	ps.AssertNotCalled(t, "GetAllProducts", mock.Anything)
}

func TestReconciler_ProductCreatedDuplicateReloads(t *testing.T) {
	r, ps, _, cache, _ := newTestReconciler(product(1, "A", 10))
	ps.On("GetAllProducts", mock.Anything).Return([]models.Product{product(1, "A", 10), product(2, "B", 20)}, nil).Once()

	require.NoError(t, r.ProductCreated(context.Background(), product(1, "A", 10)))

	assert.Equal(t, 2, cache.Len())
	ps.AssertExpectations(t)
}

func TestReconciler_ProductUpdatedReplacesInPlace(t *testing.T) {
	r, ps, _, _, view := newTestReconciler(product(1, "A", 10), product(2, "B", 20), product(3, "C", 30))
	updated := product(2, "B2", 99)
	ps.On("GetProductByID", mock.Anything, uint(2)).Return(&updated, nil).Once()

	require.NoError(t, r.ProductUpdated(context.Background(), 2))

	rows := view.Rows()
	assert.Equal(t, []uint{1, 2, 3}, ids(rows))
	assert.Equal(t, "B2", rows[1].Name)
	assert.Equal(t, 99, rows[1].Price)
	ps.AssertExpectations(t)
}

func TestReconciler_ProductUpdatedUnknownIDReloads(t *testing.T) {
	r, ps, _, cache, _ := newTestReconciler(product(1, "A", 10))
	stored := product(7, "G", 70)
	ps.On("GetProductByID", mock.Anything, uint(7)).Return(&stored, nil).Once()
	ps.On("GetAllProducts", mock.Anything).Return([]models.Product{product(1, "A", 10), stored}, nil).Once()

	require.NoError(t, r.ProductUpdated(context.Background(), 7))

	p, ok := cache.Get(7)
	require.True(t, ok)
	assert.Equal(t, "G", p.Name)
	ps.AssertExpectations(t)
}

func TestReconciler_ProductUpdatedRefetchFailureReloads(t *testing.T) {
	r, ps, _, cache, _ := newTestReconciler(product(1, "A", 10))
	ps.On("GetProductByID", mock.Anything, uint(1)).Return(nil, errors.New("connection reset")).Once()
	ps.On("GetAllProducts", mock.Anything).Return([]models.Product{product(1, "A1", 11)}, nil).Once()

	require.NoError(t, r.ProductUpdated(context.Background(), 1))

	p, _ := cache.Get(1)
	assert.Equal(t, "A1", p.Name)
	ps.AssertExpectations(t)
}

func TestReconciler_ProductDeleted(t *testing.T) {
	r, ps, _, cache, view := newTestReconciler(product(1, "A", 10), product(2, "B", 20))

	require.NoError(t, r.ProductDeleted(context.Background(), 1))

	assert.Equal(t, 1, cache.Len())
	assert.Equal(t, []uint{2}, ids(view.Rows()))
	ps.AssertNotCalled(t, "GetAllProducts", mock.Anything)
}

func TestReconciler_ProductDeletedUnknownReloads(t *testing.T) {
	r, ps, _, _, _ := newTestReconciler(product(1, "A", 10))
	ps.On("GetAllProducts", mock.Anything).Return([]models.Product{product(1, "A", 10)}, nil).Once()

	require.NoError(t, r.ProductDeleted(context.Background(), 5))
	ps.AssertExpectations(t)
}

func TestReconciler_ReloadFailureKeepsCache(t *testing.T) {
	r, ps, _, cache, _ := newTestReconciler(product(1, "A", 10), product(2, "B", 20))
	ps.On("GetAllProducts", mock.Anything).Return(nil, errors.New("store offline")).Once()

	err := r.Reload(context.Background())

	assert.Error(t, err)
	assert.Equal(t, 2, cache.Len())
}

func TestReconciler_TaxonomyChanged(t *testing.T) {
	snapshot := models.Taxonomy{
		Categories: []models.Category{{ID: 1, Name: "Gadgets"}},
		Tags:       []models.Tag{{ID: 1, Name: "hot"}},
	}

	t.Run("tag create skips products", func(t *testing.T) {
		r, ps, ts, _, view := newTestReconciler(product(1, "A", 10))
		ts.On("Snapshot", mock.Anything).Return(snapshot, nil).Once()

		require.NoError(t, r.TaxonomyChanged(context.Background(), models.KindTag, false))

		assert.Equal(t, "Gadgets", view.Rows()[0].CategoryName)
		ps.AssertNotCalled(t, "GetAllProducts", mock.Anything)
	})

	t.Run("category delete reloads products", func(t *testing.T) {
		r, ps, ts, cache, _ := newTestReconciler(product(1, "A", 10), product(2, "B", 20))
		ts.On("Snapshot", mock.Anything).Return(snapshot, nil).Once()
		ps.On("GetAllProducts", mock.Anything).Return([]models.Product{}, nil).Once()

		require.NoError(t, r.TaxonomyChanged(context.Background(), models.KindCategory, true))

		assert.Equal(t, 0, cache.Len())
		ps.AssertExpectations(t)
	})

	t.Run("tag delete reloads products", func(t *testing.T) {
		r, ps, ts, _, _ := newTestReconciler(product(1, "A", 10))
		ts.On("Snapshot", mock.Anything).Return(snapshot, nil).Once()
		ps.On("GetAllProducts", mock.Anything).Return([]models.Product{product(1, "A", 10)}, nil).Once()

		require.NoError(t, r.TaxonomyChanged(context.Background(), models.KindTag, true))
		ps.AssertExpectations(t)
	})
}

func TestReconciler_TaxonomyChangedRefreshesOnce(t *testing.T) {
	snapshot := models.Taxonomy{Categories: []models.Category{{ID: 1, Name: "Gadgets"}}}

	for _, tt := range []struct {
		name    string
		kind    models.Kind
		deleted bool
	}{
		{"tag create", models.KindTag, false},
		{"tag delete", models.KindTag, true},
		{"brand rename", models.KindBrand, false},
		{"category delete", models.KindCategory, true},
	} {
		t.Run(tt.name, func(t *testing.T) {
			r, ps, ts, _, view := newTestReconciler(product(1, "A", 10))
			ts.On("Snapshot", mock.Anything).Return(snapshot, nil).Once()
			ps.On("GetAllProducts", mock.Anything).Return([]models.Product{product(1, "A", 10)}, nil).Maybe()
			refreshes := 0
			view.Subscribe(func([]Row, Stats) { refreshes++ })

			require.NoError(t, r.TaxonomyChanged(context.Background(), tt.kind, tt.deleted))

			assert.Equal(t, 1, refreshes)
		})
	}
}

func TestReconciler_ReloadAll(t *testing.T) {
	snapshot := models.Taxonomy{Categories: []models.Category{{ID: 1, Name: "Gadgets"}}}

	t.Run("refreshes once", func(t *testing.T) {
		r, ps, ts, cache, view := newTestReconciler()
		ts.On("Snapshot", mock.Anything).Return(snapshot, nil).Once()
		ps.On("GetAllProducts", mock.Anything).Return([]models.Product{product(1, "A", 10), product(2, "B", 20)}, nil).Once()
		var seen [][]Row
		view.Subscribe(func(rows []Row, _ Stats) { seen = append(seen, rows) })

		require.NoError(t, r.ReloadAll(context.Background()))

		require.Len(t, seen, 1)
		assert.Len(t, seen[0], 2)
		assert.Equal(t, "Gadgets", seen[0][0].CategoryName)
		assert.Equal(t, 2, cache.Len())
	})

	t.Run("taxonomy failure skips products", func(t *testing.T) {
		r, ps, ts, _, view := newTestReconciler(product(1, "A", 10))
		ts.On("Snapshot", mock.Anything).Return(models.Taxonomy{}, errors.New("store offline")).Once()
		refreshes := 0
		view.Subscribe(func([]Row, Stats) { refreshes++ })

		assert.Error(t, r.ReloadAll(context.Background()))

		assert.Zero(t, refreshes)
		ps.AssertNotCalled(t, "GetAllProducts", mock.Anything)
	})
}
