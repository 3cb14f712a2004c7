package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gudang/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

func preloadTags(db *gorm.DB) *gorm.DB {
	return db.Preload("ProductTags", func(db *gorm.DB) *gorm.DB {
		return db.Order("tag_id")
	})
}

// GetAll retrieves all products with their tag rows, ordered by id.
func (r *GORMProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := preloadTags(r.db.WithContext(ctx)).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product with its tag rows.
func (r *GORMProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := preloadTags(r.db.WithContext(ctx)).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// Create inserts the product and its tag rows in one transaction. The id is
// assigned by the store.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product, tagIDs []uint) error {
	product.ID = 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(product).Error; err != nil {
			return err
		}
		return insertProductTags(tx, product.ID, tagIDs)
	})
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	r.hydrate(ctx, product, tagIDs)
	return nil
}

// Update overwrites the editable columns of an existing product and replaces
// its tag rows. CreatedAt is never changed.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product, tagIDs []uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Product
		if err := tx.Select("id").First(&existing, product.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("product with ID %d: %w", product.ID, ErrNotFound)
			}
			return err
		}
		err := tx.Model(&existing).
			Select("name", "description", "price", "stock", "rating", "category_id", "brand_id").
			Updates(map[string]interface{}{
				"name":        product.Name,
				"description": product.Description,
				"price":       product.Price,
				"stock":       product.Stock,
				"rating":      product.Rating,
				"category_id": product.CategoryID,
				"brand_id":    product.BrandID,
			}).Error
		if err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductTag{}).Error; err != nil {
			return err
		}
		return insertProductTags(tx, product.ID, tagIDs)
	})
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	r.hydrate(ctx, product, tagIDs)
	return nil
}

// Delete removes a product and its tag rows.
func (r *GORMProductRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductTag{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Product{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("product with ID %d: %w", id, ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// hydrate re-reads a committed product. The write already succeeded, so a
// failed read only leaves the product with the values that were written.
func (r *GORMProductRepository) hydrate(ctx context.Context, product *models.Product, tagIDs []uint) {
	fresh, err := r.GetByID(ctx, product.ID)
	if err != nil {
		log.Printf("Product %d saved but could not be re-read: %v", product.ID, err)
		product.ProductTags = make([]models.ProductTag, 0, len(tagIDs))
		for _, tagID := range tagIDs {
			product.ProductTags = append(product.ProductTags, models.ProductTag{ProductID: product.ID, TagID: tagID})
		}
		return
	}
	*product = *fresh
}

func insertProductTags(tx *gorm.DB, productID uint, tagIDs []uint) error {
	if len(tagIDs) == 0 {
		return nil
	}
	rows := make([]models.ProductTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		rows = append(rows, models.ProductTag{ProductID: productID, TagID: tagID})
	}
	return tx.Omit(clause.Associations).Create(&rows).Error
}
