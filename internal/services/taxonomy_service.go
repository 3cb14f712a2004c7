package services

import (
	"context"
	"strings"

	"gudang/internal/models"
	"gudang/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// TermInput carries the name of a category, brand or tag.
type TermInput struct {
	Name string `validate:"required,max=255"`
}

// TaxonomyService handles categories, brands and tags.
type TaxonomyService struct {
	repo     repositories.TaxonomyRepository
	validate *validator.Validate
}

// NewTaxonomyService creates a new TaxonomyService.
func NewTaxonomyService(repo repositories.TaxonomyRepository) *TaxonomyService {
	return &TaxonomyService{
		repo:     repo,
		validate: newValidator(),
	}
}

// Snapshot loads every category, brand and tag.
func (s *TaxonomyService) Snapshot(ctx context.Context) (models.Taxonomy, error) {
	var t models.Taxonomy
	var err error
	if t.Categories, err = s.repo.Categories(ctx); err != nil {
		return models.Taxonomy{}, &GatewayError{Op: "load categories", Err: err}
	}
	if t.Brands, err = s.repo.Brands(ctx); err != nil {
		return models.Taxonomy{}, &GatewayError{Op: "load brands", Err: err}
	}
	if t.Tags, err = s.repo.Tags(ctx); err != nil {
		return models.Taxonomy{}, &GatewayError{Op: "load tags", Err: err}
	}
	return t, nil
}

// CreateTerm validates the name and stores a new category, brand or tag.
func (s *TaxonomyService) CreateTerm(ctx context.Context, kind models.Kind, name string) (models.Term, error) {
	name, err := s.checkTerm(kind, name)
	if err != nil {
		return models.Term{}, err
	}
	term, err := s.repo.Create(ctx, kind, name)
	if err != nil {
		return models.Term{}, &GatewayError{Op: "create " + string(kind), Err: err}
	}
	return term, nil
}

// RenameTerm validates the name and renames an existing category, brand or tag.
func (s *TaxonomyService) RenameTerm(ctx context.Context, kind models.Kind, id uint, name string) error {
	name, err := s.checkTerm(kind, name)
	if err != nil {
		return err
	}
	if err := s.repo.Rename(ctx, kind, id, name); err != nil {
		return &GatewayError{Op: "rename " + string(kind), Err: err}
	}
	return nil
}

// DeleteTerm deletes a category, brand or tag. Deleting a category or brand
// deletes its products as well.
func (s *TaxonomyService) DeleteTerm(ctx context.Context, kind models.Kind, id uint) error {
	if _, err := models.ParseKind(string(kind)); err != nil {
		return newValidationError("Kind", "must be category, brand or tag")
	}
	if err := s.repo.Delete(ctx, kind, id); err != nil {
		return &GatewayError{Op: "delete " + string(kind), Err: err}
	}
	return nil
}

func (s *TaxonomyService) checkTerm(kind models.Kind, name string) (string, error) {
	if _, err := models.ParseKind(string(kind)); err != nil {
		return "", newValidationError("Kind", "must be category, brand or tag")
	}
	in := TermInput{Name: strings.TrimSpace(name)}
	if err := validateStruct(s.validate, in); err != nil {
		return "", err
	}
	return in.Name, nil
}
