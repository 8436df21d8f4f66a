package repository

import (
	"context"

	"rentdesk/internal/models"

	"gorm.io/gorm"
)

type PropertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

func (r *PropertyRepository) WithTx(tx *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: tx}
}

func (r *PropertyRepository) Create(ctx context.Context, p *models.Property) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PropertyRepository) GetByID(ctx context.Context, id string) (*models.Property, error) {
	var p models.Property
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PropertyRepository) ListByLandlord(ctx context.Context, landlordID string) ([]models.Property, error) {
	var list []models.Property
	err := r.db.WithContext(ctx).Preload("Apartments").
		Where("landlord_id = ?", landlordID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *PropertyRepository) ListShowcased(ctx context.Context) ([]models.Property, error) {
	var list []models.Property
	err := r.db.WithContext(ctx).Where("showcase = ?", true).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *PropertyRepository) SetShowcase(ctx context.Context, id string, showcase bool) error {
	return r.db.WithContext(ctx).Model(&models.Property{}).Where("id = ?", id).Update("showcase", showcase).Error
}

// Delete flags the property as deleted.
func (r *PropertyRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Property{}).Error
}

func (r *PropertyRepository) CreateApartment(ctx context.Context, a *models.Apartment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *PropertyRepository) ListApartments(ctx context.Context, propertyID string) ([]models.Apartment, error) {
	var list []models.Apartment
	err := r.db.WithContext(ctx).Where("property_id = ?", propertyID).Order("name ASC").Find(&list).Error
	return list, err
}

func (r *PropertyRepository) GetApartment(ctx context.Context, id string) (*models.Apartment, error) {
	var a models.Apartment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}
