package service

import (
	"context"

	"rentdesk/internal/models"
	"rentdesk/internal/repository"

	"github.com/shopspring/decimal"
)

// CatalogService manages maintenance categories, their subcategories and the
// services vendors offer under them.
type CatalogService struct {
	repo *repository.CategoryRepository
}

func NewCatalogService(repo *repository.CategoryRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) CreateCategory(ctx context.Context, name, description string) (*models.Category, error) {
	c := &models.Category{Name: name, Description: description}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *CatalogService) CreateSubCategory(ctx context.Context, categoryID, name, description string) (*models.SubCategory, error) {
	if _, err := s.repo.GetCategory(ctx, categoryID); err != nil {
		return nil, lookupErr(err, "category")
	}
	sc := &models.SubCategory{CategoryID: categoryID, Name: name, Description: description}
	if err := s.repo.CreateSubCategory(ctx, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

func (s *CatalogService) ListSubCategories(ctx context.Context, categoryID string) ([]models.SubCategory, error) {
	return s.repo.ListSubCategories(ctx, categoryID)
}

func (s *CatalogService) GetSubCategory(ctx context.Context, id string) (*models.SubCategory, error) {
	sc, err := s.repo.GetSubCategory(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "subcategory")
	}
	return sc, nil
}

type SubCategoryPatch struct {
	Name        *string
	CategoryID  *string
	Description *string
}

func (s *CatalogService) UpdateSubCategory(ctx context.Context, id string, p SubCategoryPatch) (*models.SubCategory, error) {
	if _, err := s.GetSubCategory(ctx, id); err != nil {
		return nil, err
	}
	fields := map[string]interface{}{}
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	if p.CategoryID != nil {
		if _, err := s.repo.GetCategory(ctx, *p.CategoryID); err != nil {
			return nil, lookupErr(err, "category")
		}
		fields["category_id"] = *p.CategoryID
	}
	if len(fields) > 0 {
		if err := s.repo.UpdateSubCategory(ctx, id, fields); err != nil {
			return nil, err
		}
	}
	return s.GetSubCategory(ctx, id)
}

func (s *CatalogService) DeleteSubCategory(ctx context.Context, id string) error {
	ok, err := s.repo.DeleteSubCategory(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("subcategory")
	}
	return nil
}

type ServiceInput struct {
	CategoryID    string
	SubcategoryID string
	Name          string
	Description   string
	Price         decimal.Decimal
}

func (s *CatalogService) CreateService(ctx context.Context, vendorID string, in ServiceInput) (*models.Service, error) {
	if _, err := s.repo.GetCategory(ctx, in.CategoryID); err != nil {
		return nil, lookupErr(err, "category")
	}
	if in.SubcategoryID != "" {
		sc, err := s.repo.GetSubCategory(ctx, in.SubcategoryID)
		if err != nil {
			return nil, lookupErr(err, "subcategory")
		}
		if sc.CategoryID != in.CategoryID {
			return nil, notFound("subcategory")
		}
	}
	svc := &models.Service{
		VendorID:      vendorID,
		CategoryID:    in.CategoryID,
		SubcategoryID: optional(in.SubcategoryID),
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
	}
	if err := s.repo.CreateService(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *CatalogService) ListServices(ctx context.Context, categoryID string) ([]models.Service, error) {
	return s.repo.ListServices(ctx, categoryID)
}
