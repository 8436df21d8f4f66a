package service

import (
	"context"

	"rentdesk/internal/models"
	"rentdesk/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// PropertyService manages a landlord's properties, apartments and rent settings.
type PropertyService struct {
	repo     *repository.PropertyRepository
	settings *repository.SettingRepository
}

func NewPropertyService(repo *repository.PropertyRepository, settings *repository.SettingRepository) *PropertyService {
	return &PropertyService{repo: repo, settings: settings}
}

type PropertyInput struct {
	Name        string
	Address     string
	City        string
	Country     string
	Description string
}

func (s *PropertyService) Create(ctx context.Context, landlordID string, in PropertyInput, images []string) (*models.Property, error) {
	p := &models.Property{
		LandlordID:  landlordID,
		Name:        in.Name,
		Address:     in.Address,
		City:        in.City,
		Country:     in.Country,
		Description: in.Description,
		Images:      datatypes.JSONSlice[string](nonNil(images)),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PropertyService) ListMine(ctx context.Context, landlordID string) ([]models.Property, error) {
	return s.repo.ListByLandlord(ctx, landlordID)
}

func (s *PropertyService) ListShowcased(ctx context.Context) ([]models.Property, error) {
	return s.repo.ListShowcased(ctx)
}

// ToggleShowcase flips the showcase flag on a property owned by landlordID.
func (s *PropertyService) ToggleShowcase(ctx context.Context, landlordID, propertyID string) (*models.Property, error) {
	p, err := s.owned(ctx, landlordID, propertyID)
	if err != nil {
		return nil, err
	}
	p.Showcase = !p.Showcase
	if err := s.repo.SetShowcase(ctx, p.ID, p.Showcase); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PropertyService) Delete(ctx context.Context, landlordID, propertyID string) error {
	if _, err := s.owned(ctx, landlordID, propertyID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, propertyID)
}

type ApartmentInput struct {
	Name       string
	Rooms      int
	RentAmount decimal.Decimal
}

func (s *PropertyService) AddApartment(ctx context.Context, landlordID, propertyID string, in ApartmentInput) (*models.Apartment, error) {
	if _, err := s.owned(ctx, landlordID, propertyID); err != nil {
		return nil, err
	}
	a := &models.Apartment{
		PropertyID: propertyID,
		Name:       in.Name,
		Rooms:      in.Rooms,
		RentAmount: in.RentAmount,
		IsVacant:   true,
	}
	if err := s.repo.CreateApartment(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *PropertyService) ListApartments(ctx context.Context, landlordID, propertyID string) ([]models.Apartment, error) {
	if _, err := s.owned(ctx, landlordID, propertyID); err != nil {
		return nil, err
	}
	return s.repo.ListApartments(ctx, propertyID)
}

type SettingInput struct {
	PropertyID        *string
	LateFeePercentage *decimal.Decimal
	GracePeriodDays   *int
	RentDueDay        *int
	SecurityDeposit   *decimal.Decimal
}

func (s *PropertyService) CreateSetting(ctx context.Context, landlordID string, in SettingInput) (*models.PropertySetting, error) {
	if in.PropertyID != nil && *in.PropertyID != "" {
		if _, err := s.owned(ctx, landlordID, *in.PropertyID); err != nil {
			return nil, err
		}
	} else {
		in.PropertyID = nil
	}
	st := &models.PropertySetting{
		LandlordID:        landlordID,
		PropertyID:        in.PropertyID,
		LateFeePercentage: decimal.Zero,
		SecurityDeposit:   decimal.Zero,
		RentDueDay:        1,
	}
	applySetting(st, in)
	if err := s.settings.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *PropertyService) ListSettings(ctx context.Context, landlordID string) ([]models.PropertySetting, error) {
	return s.settings.ListByLandlord(ctx, landlordID)
}

func (s *PropertyService) GetSetting(ctx context.Context, landlordID, id string) (*models.PropertySetting, error) {
	st, err := s.settings.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "setting")
	}
	if st.LandlordID != landlordID {
		return nil, ErrForbidden
	}
	return st, nil
}

func (s *PropertyService) UpdateSetting(ctx context.Context, landlordID, id string, in SettingInput) (*models.PropertySetting, error) {
	st, err := s.GetSetting(ctx, landlordID, id)
	if err != nil {
		return nil, err
	}
	fields := map[string]interface{}{}
	if in.LateFeePercentage != nil {
		fields["late_fee_percentage"] = *in.LateFeePercentage
	}
	if in.GracePeriodDays != nil {
		fields["grace_period_days"] = *in.GracePeriodDays
	}
	if in.RentDueDay != nil {
		fields["rent_due_day"] = *in.RentDueDay
	}
	if in.SecurityDeposit != nil {
		fields["security_deposit"] = *in.SecurityDeposit
	}
	if len(fields) > 0 {
		if err := s.settings.Update(ctx, id, fields); err != nil {
			return nil, err
		}
	}
	applySetting(st, in)
	return st, nil
}

func (s *PropertyService) DeleteSetting(ctx context.Context, landlordID, id string) error {
	if _, err := s.GetSetting(ctx, landlordID, id); err != nil {
		return err
	}
	return s.settings.Delete(ctx, id)
}

func (s *PropertyService) owned(ctx context.Context, landlordID, propertyID string) (*models.Property, error) {
	p, err := s.repo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, lookupErr(err, "property")
	}
	if p.LandlordID != landlordID {
		return nil, ErrForbidden
	}
	return p, nil
}

func applySetting(st *models.PropertySetting, in SettingInput) {
	if in.LateFeePercentage != nil {
		st.LateFeePercentage = *in.LateFeePercentage
	}
	if in.GracePeriodDays != nil {
		st.GracePeriodDays = *in.GracePeriodDays
	}
	if in.RentDueDay != nil {
		st.RentDueDay = *in.RentDueDay
	}
	if in.SecurityDeposit != nil {
		st.SecurityDeposit = *in.SecurityDeposit
	}
}
