package repository

import (
	"context"
	"time"

	"rentdesk/internal/domain"
	"rentdesk/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MaintenanceRepository struct {
	db *gorm.DB
}

func NewMaintenanceRepository(db *gorm.DB) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

func (r *MaintenanceRepository) WithTx(tx *gorm.DB) *MaintenanceRepository {
	return &MaintenanceRepository{db: tx}
}

// Create inserts m and its subcategory links.
func (r *MaintenanceRepository) Create(ctx context.Context, m *models.Maintenance) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MaintenanceRepository) GetByID(ctx context.Context, id string) (*models.Maintenance, error) {
	var m models.Maintenance
	err := r.db.WithContext(ctx).
		Preload("Category").Preload("Subcategories").Preload("Property").
		Where("id = ?", id).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// MaintenanceFilter narrows List. Empty fields are ignored.
type MaintenanceFilter struct {
	TenantID   string
	LandlordID string
	VendorID   string
	CategoryID string
	Unassigned bool
}

func (r *MaintenanceRepository) List(ctx context.Context, f MaintenanceFilter) ([]models.Maintenance, error) {
	q := r.db.WithContext(ctx).Preload("Category").Preload("Subcategories")
	if f.TenantID != "" {
		q = q.Where("tenant_id = ?", f.TenantID)
	}
	if f.LandlordID != "" {
		q = q.Where("landlord_id = ?", f.LandlordID)
	}
	if f.VendorID != "" {
		q = q.Where("vendor_id = ?", f.VendorID)
	}
	if f.CategoryID != "" {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.Unassigned {
		q = q.Where("vendor_id IS NULL")
	}
	var list []models.Maintenance
	err := q.Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *MaintenanceRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Maintenance{}).Where("id = ?", id).Updates(fields).Error
}

func (r *MaintenanceRepository) ReplaceSubcategories(ctx context.Context, m *models.Maintenance, subs []models.SubCategory) error {
	return r.db.WithContext(ctx).Model(m).Association("Subcategories").Replace(subs)
}

// Delete flags the request as deleted; default queries stop returning it.
func (r *MaintenanceRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Maintenance{})
	return res.RowsAffected > 0, res.Error
}

func (r *MaintenanceRepository) AppendHistory(ctx context.Context, h *models.RescheduleHistory) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *MaintenanceRepository) ListHistory(ctx context.Context, maintenanceID string) ([]models.RescheduleHistory, error) {
	var list []models.RescheduleHistory
	err := r.db.WithContext(ctx).Where("maintenance_id = ?", maintenanceID).Order("created_at ASC").Find(&list).Error
	return list, err
}

// ConsumeReschedule moves the schedule date and decrements the remaining
// reschedule count. It reports false when no reschedules were left.
func (r *MaintenanceRepository) ConsumeReschedule(ctx context.Context, id string, newDate time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Maintenance{}).
		Where("id = ? AND re_schedule_max > 0", id).
		Updates(map[string]interface{}{
			"schedule_date":    newDate,
			"re_schedule_date": newDate,
			"re_schedule_max":  gorm.Expr("re_schedule_max - 1"),
		})
	return res.RowsAffected == 1, res.Error
}

// MarkPaid completes a PENDING payment. It reports false when already paid.
func (r *MaintenanceRepository) MarkPaid(ctx context.Context, id string, amount decimal.Decimal) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Maintenance{}).
		Where("id = ? AND payment_status = ?", id, domain.PaymentStatusPending).
		Updates(map[string]interface{}{
			"payment_status": domain.PaymentStatusCompleted,
			"amount":         amount,
		})
	return res.RowsAffected == 1, res.Error
}

// AssignVendor sets the vendor only while the request is unassigned.
func (r *MaintenanceRepository) AssignVendor(ctx context.Context, id, vendorID string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Maintenance{}).
		Where("id = ? AND vendor_id IS NULL", id).
		Update("vendor_id", vendorID)
	return res.RowsAffected == 1, res.Error
}

func (r *MaintenanceRepository) IsVendorAssigned(ctx context.Context, id string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Maintenance{}).
		Where("id = ? AND vendor_id IS NOT NULL", id).Count(&n).Error
	return n > 0, err
}

func (r *MaintenanceRepository) CreateWhitelist(ctx context.Context, w *models.Whitelist) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *MaintenanceRepository) ListWhitelist(ctx context.Context, landlordID string) ([]models.Whitelist, error) {
	var list []models.Whitelist
	err := r.db.WithContext(ctx).Where("landlord_id = ?", landlordID).Order("created_at DESC").Find(&list).Error
	return list, err
}

// WhitelistQuery describes the request being checked. Empty scopes match
// only entries that leave that scope open.
type WhitelistQuery struct {
	LandlordID     string
	CategoryID     string
	SubcategoryIDs []string
	PropertyID     string
	ApartmentID    string
}

// FindWhitelist returns the most specific entry covering q, or nil.
func (r *MaintenanceRepository) FindWhitelist(ctx context.Context, q WhitelistQuery) (*models.Whitelist, error) {
	tx := r.db.WithContext(ctx).
		Where("landlord_id = ? AND category_id = ?", q.LandlordID, q.CategoryID)
	if len(q.SubcategoryIDs) > 0 {
		tx = tx.Where("(subcategory_id IS NULL OR subcategory_id IN ?)", q.SubcategoryIDs)
	} else {
		tx = tx.Where("subcategory_id IS NULL")
	}
	if q.PropertyID != "" {
		tx = tx.Where("(property_id IS NULL OR property_id = ?)", q.PropertyID)
	} else {
		tx = tx.Where("property_id IS NULL")
	}
	if q.ApartmentID != "" {
		tx = tx.Where("(apartment_id IS NULL OR apartment_id = ?)", q.ApartmentID)
	} else {
		tx = tx.Where("apartment_id IS NULL")
	}
	var list []models.Whitelist
	if err := tx.Find(&list).Error; err != nil {
		return nil, err
	}
	var best *models.Whitelist
	bestScore := -1
	for i := range list {
		score := 0
		for _, p := range []*string{list[i].SubcategoryID, list[i].PropertyID, list[i].ApartmentID} {
			if p != nil {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = &list[i], score
		}
	}
	return best, nil
}
