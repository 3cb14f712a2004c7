package services

import (
	"context"
	"slices"
	"strings"
	"time"

	"gudang/internal/models"
	"gudang/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ProductInput carries the editable fields of a product.
type ProductInput struct {
	Name        string          `validate:"required,max=100"`
	Description string          `validate:"required,max=500"`
	Price       int             `validate:"gte=1,lte=100000"`
	Stock       int             `validate:"gte=0,lte=10000"`
	Rating      decimal.Decimal `validate:"gte=0,lte=5"`
	CategoryID  uint            `validate:"required"`
	BrandID     uint            `validate:"required"`
	TagIDs      []uint          `validate:"dive,gt=0"`
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo     repositories.ProductRepository
	validate *validator.Validate
	now      func() time.Time
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo:     repo,
		validate: newValidator(),
		now:      time.Now,
	}
}

// SetClock replaces the clock used to stamp CreatedAt.
func (s *ProductService) SetClock(now func() time.Time) {
	s.now = now
}

// GetAllProducts retrieves all products with their tags.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, &GatewayError{Op: "load products", Err: err}
	}
	return products, nil
}

// GetProductByID retrieves a single product with its tags.
func (s *ProductService) GetProductByID(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, &GatewayError{Op: "load product", Err: err}
	}
	return product, nil
}

// Validate normalizes the input and checks it without touching the store.
func (s *ProductService) Validate(in *ProductInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.TagIDs = uniqueIDs(in.TagIDs)
	if err := validateStruct(s.validate, in); err != nil {
		return err
	}
	in.Rating = in.Rating.RoundBank(1)
	return nil
}

// CreateProduct validates the input and stores a new product. The returned
// product carries its store-assigned id and tag rows.
func (s *ProductService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	if err := s.Validate(&in); err != nil {
		return nil, err
	}
	product := in.apply(&models.Product{})
	product.CreatedAt = s.now().Format(models.CreatedAtLayout)
	if err := s.repo.Create(ctx, product, in.TagIDs); err != nil {
		return nil, &GatewayError{Op: "create product", Err: err}
	}
	return product, nil
}

// UpdateProduct validates the input and overwrites the product with the given id.
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, in ProductInput) (*models.Product, error) {
	if err := s.Validate(&in); err != nil {
		return nil, err
	}
	product := in.apply(&models.Product{ID: id})
	if err := s.repo.Update(ctx, product, in.TagIDs); err != nil {
		return nil, &GatewayError{Op: "update product", Err: err}
	}
	return product, nil
}

// DeleteProduct deletes a product and its tag rows.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return &GatewayError{Op: "delete product", Err: err}
	}
	return nil
}

// InputFromProduct returns the editable fields of an existing product.
func InputFromProduct(p models.Product) ProductInput {
	return ProductInput{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Rating:      p.Rating,
		CategoryID:  p.CategoryID,
		BrandID:     p.BrandID,
		TagIDs:      p.TagIDs(),
	}
}

func (in ProductInput) apply(p *models.Product) *models.Product {
	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.Stock = in.Stock
	p.Rating = in.Rating
	p.CategoryID = in.CategoryID
	p.BrandID = in.BrandID
	return p
}

// uniqueIDs drops repeated ids, keeping the first occurrence of each.
func uniqueIDs(ids []uint) []uint {
	if len(ids) == 0 {
		return nil
	}
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
