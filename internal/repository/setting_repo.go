package repository

import (
	"context"

	"rentdesk/internal/models"

	"gorm.io/gorm"
)

// SettingRepository stores landlord property settings.
type SettingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

func (r *SettingRepository) Create(ctx context.Context, s *models.PropertySetting) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SettingRepository) GetByID(ctx context.Context, id string) (*models.PropertySetting, error) {
	var s models.PropertySetting
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SettingRepository) ListByLandlord(ctx context.Context, landlordID string) ([]models.PropertySetting, error) {
	var list []models.PropertySetting
	err := r.db.WithContext(ctx).Where("landlord_id = ?", landlordID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *SettingRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.PropertySetting{}).Where("id = ?", id).Updates(fields).Error
}

func (r *SettingRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.PropertySetting{}).Error
}
