package service

import (
	"context"
	"time"

	"rentdesk/internal/domain"
	"rentdesk/internal/models"
	"rentdesk/internal/observability"
	"rentdesk/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MaintenanceService owns the maintenance request lifecycle: creation,
// rescheduling, landlord decisions, vendor assignment, payment and chat.
type MaintenanceService struct {
	db         *gorm.DB
	repo       *repository.MaintenanceRepository
	categories *repository.CategoryRepository
	properties *repository.PropertyRepository
	chats      *repository.ChatRepository
	transfers  *TransferService
	log        zerolog.Logger
}

func NewMaintenanceService(
	db *gorm.DB,
	repo *repository.MaintenanceRepository,
	categories *repository.CategoryRepository,
	properties *repository.PropertyRepository,
	chats *repository.ChatRepository,
	transfers *TransferService,
	log zerolog.Logger,
) *MaintenanceService {
	return &MaintenanceService{
		db:         db,
		repo:       repo,
		categories: categories,
		properties: properties,
		chats:      chats,
		transfers:  transfers,
		log:        log,
	}
}

func tracer() trace.Tracer { return otel.Tracer("service/MaintenanceService") }

type CreateMaintenanceInput struct {
	Description            string
	ScheduleDate           time.Time
	Offer                  []string
	PropertyID             string
	ApartmentID            string
	VendorID               string
	CategoryID             string
	SubcategoryIDs         []string
	CloudinaryURLs         []string
	CloudinaryVideoURLs    []string
	CloudinaryDocumentURLs []string
	ServiceID              string
}

// Create persists a new request for tenantID. Every referenced subcategory
// must exist; otherwise nothing is written and a MissingSubcategoriesError
// names the absent ids.
func (s *MaintenanceService) Create(ctx context.Context, tenantID string, in CreateMaintenanceInput) (*models.Maintenance, error) {
	ctx, span := tracer().Start(ctx, "Create", trace.WithAttributes(
		attribute.String("tenant.id", tenantID),
		attribute.Int("subcategories", len(in.SubcategoryIDs)),
	))
	defer span.End()

	ids := dedupe(in.SubcategoryIDs)
	m := &models.Maintenance{
		Description:      in.Description,
		ScheduleDate:     in.ScheduleDate,
		ReScheduleMax:    domain.DefaultRescheduleMax,
		PaymentStatus:    domain.PaymentStatusPending,
		LandlordDecision: domain.DecisionPending,
		Amount:           decimal.Zero,
		TenantID:         tenantID,
		CategoryID:       in.CategoryID,
		Offer:            datatypes.JSONSlice[string](nonNil(in.Offer)),
		CloudinaryURLs:   datatypes.JSONSlice[string](nonNil(in.CloudinaryURLs)),
		VideoURLs:        datatypes.JSONSlice[string](nonNil(in.CloudinaryVideoURLs)),
		DocumentURLs:     datatypes.JSONSlice[string](nonNil(in.CloudinaryDocumentURLs)),
		ServiceID:        optional(in.ServiceID),
		VendorID:         optional(in.VendorID),
		ApartmentID:      optional(in.ApartmentID),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cats := s.categories.WithTx(tx)
		subs, err := s.requireSubCategories(ctx, cats, in.CategoryID, ids)
		if err != nil {
			return err
		}
		if _, err := cats.GetCategory(ctx, in.CategoryID); err != nil {
			return lookupErr(err, "category")
		}
		if in.ServiceID != "" {
			if _, err := cats.GetService(ctx, in.ServiceID); err != nil {
				return lookupErr(err, "service")
			}
		}
		props := s.properties.WithTx(tx)
		propertyID := in.PropertyID
		if propertyID == "" && in.ApartmentID != "" {
			apt, err := props.GetApartment(ctx, in.ApartmentID)
			if err != nil {
				return lookupErr(err, "apartment")
			}
			propertyID = apt.PropertyID
		}
		if propertyID != "" {
			p, err := props.GetByID(ctx, propertyID)
			if err != nil {
				return lookupErr(err, "property")
			}
			m.PropertyID = &p.ID
			m.LandlordID = &p.LandlordID
		}
		m.Subcategories = subs
		return s.repo.WithTx(tx).Create(ctx, m)
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	observability.MaintenanceCreated.Inc()
	s.log.Info().Str("maintenance_id", m.ID).Str("tenant_id", tenantID).Msg("maintenance request created")
	return m, nil
}

// requireSubCategories treats ids outside categoryID as missing.
func (s *MaintenanceService) requireSubCategories(ctx context.Context, cats *repository.CategoryRepository, categoryID string, ids []string) ([]models.SubCategory, error) {
	subs, err := cats.FindSubCategories(ctx, categoryID, ids)
	if err != nil {
		return nil, err
	}
	if len(subs) == len(ids) {
		return subs, nil
	}
	found := make(map[string]struct{}, len(subs))
	for _, sc := range subs {
		found[sc.ID] = struct{}{}
	}
	var missing []string
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	return nil, &MissingSubcategoriesError{IDs: missing}
}

// Actor is the authenticated caller.
type Actor struct {
	ID   string
	Role string
}

// List returns the non-deleted requests visible to the actor.
func (s *MaintenanceService) List(ctx context.Context, actor Actor) ([]models.Maintenance, error) {
	var f repository.MaintenanceFilter
	switch actor.Role {
	case domain.RoleTenant:
		f.TenantID = actor.ID
	case domain.RoleLandlord:
		f.LandlordID = actor.ID
	case domain.RoleVendor:
		f.VendorID = actor.ID
	case domain.RoleAdmin:
	default:
		return nil, ErrForbidden
	}
	return s.repo.List(ctx, f)
}

// ListForVendorCategory returns unassigned jobs in a category.
func (s *MaintenanceService) ListForVendorCategory(ctx context.Context, categoryID string) ([]models.Maintenance, error) {
	return s.repo.List(ctx, repository.MaintenanceFilter{CategoryID: categoryID, Unassigned: true})
}

func (s *MaintenanceService) Get(ctx context.Context, id string) (*models.Maintenance, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "maintenance request")
	}
	return m, nil
}

// CanAccess reports whether the actor is a party to the request.
func (s *MaintenanceService) CanAccess(m *models.Maintenance, actor Actor) bool {
	if actor.Role == domain.RoleAdmin || m.TenantID == actor.ID {
		return true
	}
	if m.LandlordID != nil && *m.LandlordID == actor.ID {
		return true
	}
	return m.VendorID != nil && *m.VendorID == actor.ID
}

type UpdateMaintenanceInput struct {
	Description    *string
	ScheduleDate   *time.Time
	Offer          []string
	ApartmentID    *string
	SubcategoryIDs []string
}

// Update edits mutable fields. A non-empty SubcategoryIDs replaces the whole set.
func (s *MaintenanceService) Update(ctx context.Context, id string, in UpdateMaintenanceInput) (*models.Maintenance, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		m, err := repo.GetByID(ctx, id)
		if err != nil {
			return lookupErr(err, "maintenance request")
		}
		fields := map[string]interface{}{}
		if in.Description != nil {
			fields["description"] = *in.Description
		}
		if in.ScheduleDate != nil {
			fields["schedule_date"] = *in.ScheduleDate
		}
		if in.Offer != nil {
			fields["offer"] = datatypes.JSONSlice[string](in.Offer)
		}
		if in.ApartmentID != nil {
			fields["apartment_id"] = optional(*in.ApartmentID)
		}
		if len(fields) > 0 {
			if err := repo.Update(ctx, id, fields); err != nil {
				return err
			}
		}
		if len(in.SubcategoryIDs) > 0 {
			subs, err := s.requireSubCategories(ctx, s.categories.WithTx(tx), m.CategoryID, dedupe(in.SubcategoryIDs))
			if err != nil {
				return err
			}
			if err := repo.ReplaceSubcategories(ctx, m, subs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete soft-deletes the request.
func (s *MaintenanceService) Delete(ctx context.Context, id string) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("maintenance request")
	}
	return nil
}

// Reschedule moves the schedule date, appends one history row and consumes
// one of the remaining reschedules, all in one transaction.
func (s *MaintenanceService) Reschedule(ctx context.Context, id string, newDate time.Time) (*models.Maintenance, error) {
	ctx, span := tracer().Start(ctx, "Reschedule", trace.WithAttributes(attribute.String("maintenance.id", id)))
	defer span.End()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		m, err := repo.GetByID(ctx, id)
		if err != nil {
			return lookupErr(err, "maintenance request")
		}
		if m.ReScheduleMax <= 0 {
			return ErrRescheduleLimit
		}
		if err := repo.AppendHistory(ctx, &models.RescheduleHistory{
			MaintenanceID: m.ID,
			OldDate:       m.ScheduleDate,
			NewDate:       newDate,
		}); err != nil {
			return err
		}
		ok, err := repo.ConsumeReschedule(ctx, m.ID, newDate)
		if err != nil {
			return err
		}
		if !ok {
			return ErrRescheduleLimit
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	observability.MaintenanceRescheduled.Inc()
	return s.Get(ctx, id)
}

func (s *MaintenanceService) History(ctx context.Context, id string) ([]models.RescheduleHistory, error) {
	return s.repo.ListHistory(ctx, id)
}

// Decide records the landlord's decision on a request they own.
func (s *MaintenanceService) Decide(ctx context.Context, id, landlordID, decision string) (*models.Maintenance, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.LandlordID == nil || *m.LandlordID != landlordID {
		return nil, ErrForbidden
	}
	if err := s.repo.Update(ctx, id, map[string]interface{}{"landlord_decision": decision}); err != nil {
		return nil, err
	}
	m.LandlordDecision = decision
	return m, nil
}

// AcceptJob assigns vendorID to an unassigned request.
func (s *MaintenanceService) AcceptJob(ctx context.Context, id, vendorID string) (*models.Maintenance, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	ok, err := s.repo.AssignVendor(ctx, id, vendorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrVendorAssigned
	}
	return s.Get(ctx, id)
}

func (s *MaintenanceService) IsVendorAssigned(ctx context.Context, id string) (bool, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return false, err
	}
	return s.repo.IsVendorAssigned(ctx, id)
}

// ProcessPayment transfers amount from payer to receiver tagged
// MAINTENANCE_FEE and marks the request paid. Both happen in one database
// transaction, so a failed status update rolls the transfer back.
func (s *MaintenanceService) ProcessPayment(ctx context.Context, id, payerID, receiverID string, amount decimal.Decimal) (*models.Maintenance, error) {
	ctx, span := tracer().Start(ctx, "ProcessPayment", trace.WithAttributes(attribute.String("maintenance.id", id)))
	defer span.End()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		m, err := repo.GetByID(ctx, id)
		if err != nil {
			return lookupErr(err, "maintenance request")
		}
		if m.PaymentStatus == domain.PaymentStatusCompleted {
			return ErrAlreadyPaid
		}
		if _, err := s.transfers.TransferFunds(ctx, tx, TransferInput{
			SenderID:    payerID,
			ReceiverID:  receiverID,
			Amount:      amount,
			Reference:   domain.RefMaintenanceFee,
			PropertyID:  m.PropertyID,
			Description: "Maintenance payment " + m.ID,
		}); err != nil {
			return err
		}
		ok, err := repo.MarkPaid(ctx, m.ID, amount)
		if err != nil {
			return err
		}
		if !ok {
			return ErrAlreadyPaid
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	observability.MaintenancePaid.Inc()
	s.log.Info().Str("maintenance_id", id).Str("amount", amount.String()).Msg("maintenance paid")
	return s.Get(ctx, id)
}

// CreateChat appends a message to the request's room for sender and receiver,
// creating the room on first use. The request keeps its first room as
// chat_room_id.
func (s *MaintenanceService) CreateChat(ctx context.Context, id, senderID, receiverID, content string) (*models.Message, error) {
	var msg *models.Message
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		chats := s.chats.WithTx(tx)
		m, err := repo.GetByID(ctx, id)
		if err != nil {
			return lookupErr(err, "maintenance request")
		}
		room, err := chats.FindRoom(ctx, m.ID, senderID, receiverID)
		if err != nil {
			return err
		}
		if room == nil {
			room = &models.ChatRoom{MaintenanceID: m.ID, User1ID: senderID, User2ID: receiverID}
			if err := chats.CreateRoom(ctx, room); err != nil {
				return err
			}
		}
		if m.ChatRoomID == nil {
			if err := repo.Update(ctx, m.ID, map[string]interface{}{"chat_room_id": room.ID}); err != nil {
				return err
			}
		}
		msg = &models.Message{
			ChatRoomID: room.ID,
			SenderID:   senderID,
			ReceiverID: receiverID,
			Content:    content,
			ChatType:   domain.ChatTypeMaintenance,
		}
		return chats.CreateMessage(ctx, msg)
	})
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// GetChat returns the request's messages the viewer took part in, oldest
// first. Admins see every room of the request.
func (s *MaintenanceService) GetChat(ctx context.Context, id string, viewer Actor) ([]models.Message, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	participant := viewer.ID
	if viewer.Role == domain.RoleAdmin {
		participant = ""
	}
	rooms, err := s.chats.ListRooms(ctx, m.ID, participant)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(rooms))
	for i, r := range rooms {
		ids[i] = r.ID
	}
	return s.chats.ListMessages(ctx, ids...)
}

// CheckWhitelist returns the entry pre-approving the described work, or nil.
func (s *MaintenanceService) CheckWhitelist(ctx context.Context, q repository.WhitelistQuery) (*models.Whitelist, error) {
	if q.LandlordID == "" {
		if q.PropertyID == "" && q.ApartmentID != "" {
			apt, err := s.properties.GetApartment(ctx, q.ApartmentID)
			if err != nil {
				return nil, lookupErr(err, "apartment")
			}
			q.PropertyID = apt.PropertyID
		}
		if q.PropertyID == "" {
			return nil, nil
		}
		p, err := s.properties.GetByID(ctx, q.PropertyID)
		if err != nil {
			return nil, lookupErr(err, "property")
		}
		q.LandlordID = p.LandlordID
	}
	return s.repo.FindWhitelist(ctx, q)
}

func (s *MaintenanceService) CreateWhitelist(ctx context.Context, w *models.Whitelist) error {
	if _, err := s.categories.GetCategory(ctx, w.CategoryID); err != nil {
		return lookupErr(err, "category")
	}
	if w.PropertyID != nil {
		p, err := s.properties.GetByID(ctx, *w.PropertyID)
		if err != nil {
			return lookupErr(err, "property")
		}
		if p.LandlordID != w.LandlordID {
			return ErrForbidden
		}
	}
	return s.repo.CreateWhitelist(ctx, w)
}

func (s *MaintenanceService) ListWhitelist(ctx context.Context, landlordID string) ([]models.Whitelist, error) {
	return s.repo.ListWhitelist(ctx, landlordID)
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
