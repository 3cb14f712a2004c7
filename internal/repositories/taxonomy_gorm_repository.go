package repositories

import (
	"context"
	"fmt"

	"gudang/internal/models"

	"gorm.io/gorm"
)

// GORMTaxonomyRepository is a GORM implementation of TaxonomyRepository.
type GORMTaxonomyRepository struct {
	db *gorm.DB
}

// NewGORMTaxonomyRepository creates a new instance of GORMTaxonomyRepository.
func NewGORMTaxonomyRepository(db *gorm.DB) *GORMTaxonomyRepository {
	return &GORMTaxonomyRepository{
		db: db,
	}
}

// Categories retrieves all categories ordered by id.
func (r *GORMTaxonomyRepository) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

// Brands retrieves all brands ordered by id.
func (r *GORMTaxonomyRepository) Brands(ctx context.Context) ([]models.Brand, error) {
	var brands []models.Brand
	if err := r.db.WithContext(ctx).Order("id").Find(&brands).Error; err != nil {
		return nil, fmt.Errorf("failed to get brands: %w", err)
	}
	return brands, nil
}

// Tags retrieves all tags ordered by id.
func (r *GORMTaxonomyRepository) Tags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.WithContext(ctx).Order("id").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}
	return tags, nil
}

// Create inserts a new category, brand or tag and returns it with its store-assigned id.
func (r *GORMTaxonomyRepository) Create(ctx context.Context, kind models.Kind, name string) (models.Term, error) {
	db := r.db.WithContext(ctx)
	term := models.Term{Kind: kind, Name: name}
	var err error
	switch kind {
	case models.KindCategory:
		c := models.Category{Name: name}
		err = db.Create(&c).Error
		term.ID = c.ID
	case models.KindBrand:
		b := models.Brand{Name: name}
		err = db.Create(&b).Error
		term.ID = b.ID
	case models.KindTag:
		t := models.Tag{Name: name}
		err = db.Create(&t).Error
		term.ID = t.ID
	default:
		return models.Term{}, fmt.Errorf("unknown taxonomy kind %q", kind)
	}
	if err != nil {
		return models.Term{}, fmt.Errorf("failed to create %s: %w", kind, err)
	}
	return term, nil
}

// Rename changes the name of an existing category, brand or tag.
func (r *GORMTaxonomyRepository) Rename(ctx context.Context, kind models.Kind, id uint, name string) error {
	model, err := termModel(kind)
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Model(model).Where("id = ?", id).Update("name", name)
	if res.Error != nil {
		return fmt.Errorf("failed to rename %s %d: %w", kind, id, res.Error)
	}
	if res.RowsAffected == 0 {
		// MySQL reports zero rows for an unchanged value, so confirm the row is really gone.
		var count int64
		if err := r.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to rename %s %d: %w", kind, id, err)
		}
		if count == 0 {
			return fmt.Errorf("%s with ID %d: %w", kind, id, ErrNotFound)
		}
	}
	return nil
}

// Delete removes a category, brand or tag. Categories and brands take their
// products (and those products' tag rows) with them.
func (r *GORMTaxonomyRepository) Delete(ctx context.Context, kind models.Kind, id uint) error {
	model, err := termModel(kind)
	if err != nil {
		return err
	}
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		switch kind {
		case models.KindCategory:
			if err := deleteProductsWhere(tx, "category_id = ?", id); err != nil {
				return err
			}
		case models.KindBrand:
			if err := deleteProductsWhere(tx, "brand_id = ?", id); err != nil {
				return err
			}
		case models.KindTag:
			if err := tx.Where("tag_id = ?", id).Delete(&models.ProductTag{}).Error; err != nil {
				return err
			}
		}
		res := tx.Delete(model, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%s with ID %d: %w", kind, id, ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", kind, err)
	}
	return nil
}

func deleteProductsWhere(tx *gorm.DB, query string, id uint) error {
	owned := tx.Model(&models.Product{}).Select("id").Where(query, id)
	if err := tx.Where("product_id IN (?)", owned).Delete(&models.ProductTag{}).Error; err != nil {
		return err
	}
	return tx.Where(query, id).Delete(&models.Product{}).Error
}

func termModel(kind models.Kind) (interface{}, error) {
	switch kind {
	case models.KindCategory:
		return &models.Category{}, nil
	case models.KindBrand:
		return &models.Brand{}, nil
	case models.KindTag:
		return &models.Tag{}, nil
	}
	return nil, fmt.Errorf("unknown taxonomy kind %q", kind)
}
