package services_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"gudang/internal/models"
	"gudang/internal/repositories"
	"gudang/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product, tagIDs []uint) error {
	args := m.Called(ctx, product, tagIDs)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product, tagIDs []uint) error {
	args := m.Called(ctx, product, tagIDs)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func validInput() services.ProductInput {
	return services.ProductInput{
		Name:        "Laptop",
		Description: "High performance laptop",
		Price:       1200,
		Stock:       10,
		Rating:      decimal.RequireFromString("4.5"),
		CategoryID:  1,
		BrandID:     2,
		TagIDs:      []uint{3, 4},
	}
}

func TestProductService_GetAllProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	expectedProducts := []models.Product{
		{ID: 1, Name: "Product A", Price: 10, Stock: 100},
		{ID: 2, Name: "Product B", Price: 20, Stock: 50},
	}

	mockRepo.On("GetAll", mock.Anything).Return(expectedProducts, nil).Once()

	products, err := service.GetAllProducts(context.Background())

	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	expectedProduct := &models.Product{ID: 1, Name: "Product A", Price: 10, Stock: 100}

	// Test successful retrieval
	mockRepo.On("GetByID", mock.Anything, uint(1)).Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)

	// Test product not found
	mockRepo.On("GetByID", mock.Anything, uint(99)).Return(nil, fmt.Errorf("product with ID 99: %w", repositories.ErrNotFound)).Once()
	product, err = service.GetProductByID(context.Background(), 99)
	assert.Nil(t, product)
	var gatewayErr *services.GatewayError
	assert.ErrorAs(t, err, &gatewayErr)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)
	service.SetClock(func() time.Time {
		return time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	})

	in := validInput()
	in.Name = "  Laptop  "
	in.TagIDs = []uint{3, 4, 3}
	in.Rating = decimal.RequireFromString("4.46")

	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Product) bool {
		return p.ID == 0 && p.Name == "Laptop" && p.Price == 1200 && p.CreatedAt == "2024-03-01 09:30:00"
	}), []uint{3, 4}).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Product).ID = 7
	}).Return(nil).Once()

	product, err := service.CreateProduct(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, uint(7), product.ID)
	assert.True(t, decimal.RequireFromString("4.5").Equal(product.Rating))
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProductStoreFailure(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	mockRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(fmt.Errorf("FOREIGN KEY constraint failed")).Once()

	product, err := service.CreateProduct(context.Background(), validInput())

	assert.Nil(t, product)
	var gatewayErr *services.GatewayError
	require.ErrorAs(t, err, &gatewayErr)
	assert.Equal(t, "create product", gatewayErr.Op)
}

func TestProductService_Validate(t *testing.T) {
	service := services.NewProductService(new(MockProductRepository))

	tests := []struct {
		name   string
		modify func(*services.ProductInput)
		field  string
	}{
		{"valid", func(in *services.ProductInput) {}, ""},
		{"price at maximum", func(in *services.ProductInput) { in.Price = 100000 }, ""},
		{"price above maximum", func(in *services.ProductInput) { in.Price = 100001 }, "Price"},
		{"price zero", func(in *services.ProductInput) { in.Price = 0 }, "Price"},
		{"stock negative", func(in *services.ProductInput) { in.Stock = -1 }, "Stock"},
		{"stock above maximum", func(in *services.ProductInput) { in.Stock = 10001 }, "Stock"},
		{"rating at maximum", func(in *services.ProductInput) { in.Rating = decimal.NewFromInt(5) }, ""},
		{"rating above maximum", func(in *services.ProductInput) { in.Rating = decimal.RequireFromString("5.1") }, "Rating"},
		{"rating negative", func(in *services.ProductInput) { in.Rating = decimal.RequireFromString("-0.1") }, "Rating"},
		{"blank name", func(in *services.ProductInput) { in.Name = "   " }, "Name"},
		{"long name", func(in *services.ProductInput) { in.Name = strings.Repeat("x", 101) }, "Name"},
		{"missing description", func(in *services.ProductInput) { in.Description = "" }, "Description"},
		{"missing category", func(in *services.ProductInput) { in.CategoryID = 0 }, "CategoryID"},
		{"missing brand", func(in *services.ProductInput) { in.BrandID = 0 }, "BrandID"},
		{"zero tag id", func(in *services.ProductInput) { in.TagIDs = []uint{0} }, "TagIDs[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.modify(&in)
			err := service.Validate(&in)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var validationErr *services.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Contains(t, validationErr.Fields, tt.field)
		})
	}
}

func TestProductService_ValidateRoundsRatingHalfToEven(t *testing.T) {
	service := services.NewProductService(new(MockProductRepository))

	for rating, want := range map[string]string{"4.25": "4.2", "4.35": "4.4", "3.05": "3"} {
		in := validInput()
		in.Rating = decimal.RequireFromString(rating)
		require.NoError(t, service.Validate(&in))
		assert.True(t, decimal.RequireFromString(want).Equal(in.Rating), "%s rounded to %s", rating, in.Rating)
	}
}

func TestProductService_UpdateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *models.Product) bool {
		return p.ID == 3 && p.Name == "Laptop"
	}), []uint{3, 4}).Return(nil).Once()

	product, err := service.UpdateProduct(context.Background(), 3, validInput())
	require.NoError(t, err)
	assert.Equal(t, uint(3), product.ID)

	// Invalid input never reaches the repository
	in := validInput()
	in.Price = 0
	_, err = service.UpdateProduct(context.Background(), 3, in)
	var validationErr *services.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	mockRepo.On("Delete", mock.Anything, uint(1)).Return(nil).Once()
	assert.NoError(t, service.DeleteProduct(context.Background(), 1))

	mockRepo.On("Delete", mock.Anything, uint(2)).Return(fmt.Errorf("product with ID 2: %w", repositories.ErrNotFound)).Once()
	err := service.DeleteProduct(context.Background(), 2)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_WithInMemoryRepository(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	service := services.NewProductService(repo)
	ctx := context.Background()

	first, err := service.CreateProduct(ctx, validInput())
	require.NoError(t, err)
	second, err := service.CreateProduct(ctx, validInput())
	require.NoError(t, err)
	assert.Equal(t, first.ID+1, second.ID)

	in := services.InputFromProduct(*first)
	assert.Equal(t, []uint{3, 4}, in.TagIDs)
	in.Stock = 0
	_, err = service.UpdateProduct(ctx, first.ID, in)
	require.NoError(t, err)

	stored, err := service.GetProductByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Stock)
	assert.Equal(t, first.CreatedAt, stored.CreatedAt)

	require.NoError(t, service.DeleteProduct(ctx, first.ID))
	all, err := service.GetAllProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestProductService_InMemoryRepositoryKeepsSeededIDs(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	repo.Put(models.Product{ID: 10, Name: "Seeded", Price: 100, CategoryID: 1, BrandID: 1})
	service := services.NewProductService(repo)
	ctx := context.Background()

	seeded, err := service.GetProductByID(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "Seeded", seeded.Name)

	created, err := service.CreateProduct(ctx, validInput())
	require.NoError(t, err)
	assert.Equal(t, uint(11), created.ID)

	all, err := service.GetAllProducts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, uint(10), all[0].ID)
	assert.Equal(t, uint(11), all[1].ID)
}
