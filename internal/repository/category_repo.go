package repository

import (
	"context"

	"rentdesk/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository covers categories, subcategories and vendor services.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) WithTx(tx *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: tx}
}

func (r *CategoryRepository) CreateCategory(ctx context.Context, c *models.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CategoryRepository) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	var c models.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var list []models.Category
	err := r.db.WithContext(ctx).Preload("Subcategories").Order("name ASC").Find(&list).Error
	return list, err
}

func (r *CategoryRepository) CreateSubCategory(ctx context.Context, s *models.SubCategory) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *CategoryRepository) GetSubCategory(ctx context.Context, id string) (*models.SubCategory, error) {
	var s models.SubCategory
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *CategoryRepository) ListSubCategories(ctx context.Context, categoryID string) ([]models.SubCategory, error) {
	q := r.db.WithContext(ctx)
	if categoryID != "" {
		q = q.Where("category_id = ?", categoryID)
	}
	var list []models.SubCategory
	err := q.Order("name ASC").Find(&list).Error
	return list, err
}

func (r *CategoryRepository) UpdateSubCategory(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.SubCategory{}).Where("id = ?", id).Updates(fields).Error
}

// DeleteSubCategory flags the subcategory deleted. It reports false when nothing matched.
func (r *CategoryRepository) DeleteSubCategory(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.SubCategory{})
	return res.RowsAffected > 0, res.Error
}

// FindSubCategories loads the live subcategories among ids that belong to the category.
func (r *CategoryRepository) FindSubCategories(ctx context.Context, categoryID string, ids []string) ([]models.SubCategory, error) {
	var list []models.SubCategory
	if len(ids) == 0 {
		return list, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ? AND category_id = ?", ids, categoryID).Find(&list).Error
	return list, err
}

func (r *CategoryRepository) CreateService(ctx context.Context, s *models.Service) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *CategoryRepository) GetService(ctx context.Context, id string) (*models.Service, error) {
	var s models.Service
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *CategoryRepository) ListServices(ctx context.Context, categoryID string) ([]models.Service, error) {
	q := r.db.WithContext(ctx)
	if categoryID != "" {
		q = q.Where("category_id = ?", categoryID)
	}
	var list []models.Service
	err := q.Order("created_at DESC").Find(&list).Error
	return list, err
}
