package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"rentdesk/internal/domain"
	"rentdesk/internal/models"
	"rentdesk/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) newRequest(t *testing.T) *models.Maintenance {
	t.Helper()
	m, err := f.maintenance.Create(context.Background(), f.tenant.ID, CreateMaintenanceInput{
		Description:    "Kitchen sink leaking",
		ScheduleDate:   time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		PropertyID:     f.property.ID,
		CategoryID:     f.category.ID,
		SubcategoryIDs: f.subIDs(),
	})
	require.NoError(t, err)
	return m
}

func TestMaintenanceCreate_LinksPropertyAndSubcategories(t *testing.T) {
	f := newFixture(t)
	m := f.newRequest(t)

	got, err := f.maintenance.Get(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, f.tenant.ID, got.TenantID)
	require.NotNil(t, got.LandlordID)
	assert.Equal(t, f.landlord.ID, *got.LandlordID)
	assert.Len(t, got.Subcategories, 2)
	assert.Equal(t, domain.DefaultRescheduleMax, got.ReScheduleMax)
	assert.Equal(t, domain.PaymentStatusPending, got.PaymentStatus)
	assert.Equal(t, domain.DecisionPending, got.LandlordDecision)
}

func TestMaintenanceCreate_MissingSubcategoryWritesNothing(t *testing.T) {
	f := newFixture(t)
	_, err := f.maintenance.Create(context.Background(), f.tenant.ID, CreateMaintenanceInput{
		Description:    "Broken pipe",
		ScheduleDate:   time.Now().UTC(),
		CategoryID:     f.category.ID,
		SubcategoryIDs: []string{f.subs[0].ID, "missing-sub"},
	})
	var missing *MissingSubcategoriesError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"missing-sub"}, missing.IDs)
	assert.ErrorIs(t, err, ErrNotFound)

	var n int64
	require.NoError(t, f.db.Unscoped().Model(&models.Maintenance{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestMaintenanceSubcategories_MustBelongToCategory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	electrical := &models.Category{Name: "Electrical"}
	require.NoError(t, f.db.Create(electrical).Error)
	wiring := &models.SubCategory{CategoryID: electrical.ID, Name: "Wiring"}
	require.NoError(t, f.db.Create(wiring).Error)

	_, err := f.maintenance.Create(ctx, f.tenant.ID, CreateMaintenanceInput{
		Description:    "Sparking outlet",
		ScheduleDate:   time.Now().UTC(),
		CategoryID:     f.category.ID,
		SubcategoryIDs: []string{f.subs[0].ID, wiring.ID},
	})
	var missing *MissingSubcategoriesError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{wiring.ID}, missing.IDs)

	m := f.newRequest(t)
	_, err = f.maintenance.Update(ctx, m.ID, UpdateMaintenanceInput{SubcategoryIDs: []string{wiring.ID}})
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{wiring.ID}, missing.IDs)

	got, err := f.maintenance.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Len(t, got.Subcategories, 2)
}

func TestMaintenanceCreate_UnknownCategory(t *testing.T) {
	f := newFixture(t)
	_, err := f.maintenance.Create(context.Background(), f.tenant.ID, CreateMaintenanceInput{
		ScheduleDate: time.Now().UTC(),
		CategoryID:   "nope",
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "category not found")
}

func TestMaintenanceReschedule_ConsumesOneAndRecordsHistory(t *testing.T) {
	f := newFixture(t)
	m := f.newRequest(t)
	newDate := time.Date(2026, 3, 12, 14, 0, 0, 0, time.UTC)

	got, err := f.maintenance.Reschedule(context.Background(), m.ID, newDate)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultRescheduleMax-1, got.ReScheduleMax)
	assert.True(t, got.ScheduleDate.Equal(newDate))
	require.NotNil(t, got.ReScheduleDate)
	assert.True(t, got.ReScheduleDate.Equal(newDate))

	history, err := f.maintenance.History(context.Background(), m.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.True(t, history[0].OldDate.Equal(m.ScheduleDate))
	assert.True(t, history[0].NewDate.Equal(newDate))
}

func TestMaintenanceReschedule_LimitReachedChangesNothing(t *testing.T) {
	f := newFixture(t)
	m := f.newRequest(t)
	require.NoError(t, f.db.Model(&models.Maintenance{}).Where("id = ?", m.ID).Update("re_schedule_max", 0).Error)

	_, err := f.maintenance.Reschedule(context.Background(), m.ID, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
	require.ErrorIs(t, err, ErrRescheduleLimit)
	assert.True(t, IsDomainRule(err))

	got, err := f.maintenance.Get(context.Background(), m.ID)
	require.NoError(t, err)
	assert.True(t, got.ScheduleDate.Equal(m.ScheduleDate))
	assert.Nil(t, got.ReScheduleDate)
	assert.Zero(t, got.ReScheduleMax)

	history, err := f.maintenance.History(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestMaintenanceReschedule_ExhaustsAfterMax(t *testing.T) {
	f := newFixture(t)
	m := f.newRequest(t)
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < domain.DefaultRescheduleMax; i++ {
		_, err := f.maintenance.Reschedule(context.Background(), m.ID, base.AddDate(0, 0, i))
		require.NoError(t, err)
	}
	_, err := f.maintenance.Reschedule(context.Background(), m.ID, base.AddDate(0, 1, 0))
	assert.ErrorIs(t, err, ErrRescheduleLimit)

	history, err := f.maintenance.History(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Len(t, history, domain.DefaultRescheduleMax)
}

func TestMaintenanceProcessPayment(t *testing.T) {
	f := newFixture(t)
	m := f.newRequest(t)
	f.fund(t, f.tenant.ID, 100)

	got, err := f.maintenance.ProcessPayment(context.Background(), m.ID, f.tenant.ID, f.vendor.ID, decimal.NewFromInt(40))
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusCompleted, got.PaymentStatus)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(40)))
	assert.True(t, f.balance(t, f.tenant.ID).Equal(decimal.NewFromInt(60)))
	assert.True(t, f.balance(t, f.vendor.ID).Equal(decimal.NewFromInt(40)))

	list, err := f.txns.List(context.Background(), repository.TransactionFilter{References: []string{domain.RefMaintenanceFee}})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, list[0].ReferenceID, list[1].ReferenceID)

	_, err = f.maintenance.ProcessPayment(context.Background(), m.ID, f.tenant.ID, f.vendor.ID, decimal.NewFromInt(40))
	assert.ErrorIs(t, err, ErrAlreadyPaid)
	assert.True(t, f.balance(t, f.tenant.ID).Equal(decimal.NewFromInt(60)))
}

func TestMaintenanceProcessPayment_InsufficientBalanceRollsBack(t *testing.T) {
	f := newFixture(t)
	m := f.newRequest(t)
	f.fund(t, f.tenant.ID, 10)

	_, err := f.maintenance.ProcessPayment(context.Background(), m.ID, f.tenant.ID, f.vendor.ID, decimal.NewFromInt(40))
	require.ErrorIs(t, err, ErrInsufficientBalance)

	got, err := f.maintenance.Get(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPending, got.PaymentStatus)
	assert.True(t, f.balance(t, f.tenant.ID).Equal(decimal.NewFromInt(10)))

	list, err := f.txns.List(context.Background(), repository.TransactionFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMaintenanceChat_SharesRoomInEitherOrder(t *testing.T) {
	f := newFixture(t)
	m := f.newRequest(t)
	ctx := context.Background()

	first, err := f.maintenance.CreateChat(ctx, m.ID, f.tenant.ID, f.vendor.ID, "When can you come?")
	require.NoError(t, err)
	second, err := f.maintenance.CreateChat(ctx, m.ID, f.vendor.ID, f.tenant.ID, "Tomorrow at 9")
	require.NoError(t, err)
	assert.Equal(t, first.ChatRoomID, second.ChatRoomID)
	assert.Equal(t, domain.ChatTypeMaintenance, second.ChatType)

	var rooms int64
	require.NoError(t, f.db.Model(&models.ChatRoom{}).Count(&rooms).Error)
	assert.EqualValues(t, 1, rooms)

	msgs, err := f.maintenance.GetChat(ctx, m.ID, Actor{ID: f.tenant.ID, Role: domain.RoleTenant})
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "When can you come?", msgs[0].Content)
	assert.Equal(t, "Tomorrow at 9", msgs[1].Content)
}

func TestMaintenanceChat_RoomsAreScopedToTheRequest(t *testing.T) {
	f := newFixture(t)
	m1 := f.newRequest(t)
	m2 := f.newRequest(t)
	ctx := context.Background()
	landlord := Actor{ID: f.landlord.ID, Role: domain.RoleLandlord}

	a, err := f.maintenance.CreateChat(ctx, m1.ID, f.landlord.ID, f.vendor.ID, "about tenant one's sink")
	require.NoError(t, err)
	b, err := f.maintenance.CreateChat(ctx, m2.ID, f.vendor.ID, f.landlord.ID, "tenant two's door code is 4321")
	require.NoError(t, err)
	assert.NotEqual(t, a.ChatRoomID, b.ChatRoomID)

	msgs, err := f.maintenance.GetChat(ctx, m1.ID, landlord)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "about tenant one's sink", msgs[0].Content)

	msgs, err = f.maintenance.GetChat(ctx, m2.ID, landlord)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "tenant two's door code is 4321", msgs[0].Content)
}

func TestMaintenanceChat_SecondPairKeepsFirstThread(t *testing.T) {
	f := newFixture(t)
	m := f.newRequest(t)
	ctx := context.Background()

	first, err := f.maintenance.CreateChat(ctx, m.ID, f.tenant.ID, f.landlord.ID, "sink is leaking again")
	require.NoError(t, err)
	_, err = f.maintenance.CreateChat(ctx, m.ID, f.landlord.ID, f.vendor.ID, "private vendor quote")
	require.NoError(t, err)

	got, err := f.maintenance.Get(ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ChatRoomID)
	assert.Equal(t, first.ChatRoomID, *got.ChatRoomID)

	tenantView, err := f.maintenance.GetChat(ctx, m.ID, Actor{ID: f.tenant.ID, Role: domain.RoleTenant})
	require.NoError(t, err)
	require.Len(t, tenantView, 1)
	assert.Equal(t, "sink is leaking again", tenantView[0].Content)

	landlordView, err := f.maintenance.GetChat(ctx, m.ID, Actor{ID: f.landlord.ID, Role: domain.RoleLandlord})
	require.NoError(t, err)
	require.Len(t, landlordView, 2)
	assert.Equal(t, "sink is leaking again", landlordView[0].Content)
	assert.Equal(t, "private vendor quote", landlordView[1].Content)

	vendorView, err := f.maintenance.GetChat(ctx, m.ID, Actor{ID: f.vendor.ID, Role: domain.RoleVendor})
	require.NoError(t, err)
	require.Len(t, vendorView, 1)
	assert.Equal(t, "private vendor quote", vendorView[0].Content)

	adminView, err := f.maintenance.GetChat(ctx, m.ID, Actor{ID: "admin", Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.Len(t, adminView, 2)
}

func TestMaintenanceGetChat_EmptyWithoutRoom(t *testing.T) {
	f := newFixture(t)
	m := f.newRequest(t)
	msgs, err := f.maintenance.GetChat(context.Background(), m.ID, Actor{ID: f.tenant.ID, Role: domain.RoleTenant})
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestMaintenanceAcceptJob_OnlyOnce(t *testing.T) {
	f := newFixture(t)
	m := f.newRequest(t)
	ctx := context.Background()

	assigned, err := f.maintenance.IsVendorAssigned(ctx, m.ID)
	require.NoError(t, err)
	assert.False(t, assigned)

	jobs, err := f.maintenance.ListForVendorCategory(ctx, f.category.ID)
	require.NoError(t, err)
	assert.Len(t, jobs, 1)

	got, err := f.maintenance.AcceptJob(ctx, m.ID, f.vendor.ID)
	require.NoError(t, err)
	require.NotNil(t, got.VendorID)
	assert.Equal(t, f.vendor.ID, *got.VendorID)

	other := f.user(t, "other-vendor@example.com", domain.RoleVendor)
	_, err = f.maintenance.AcceptJob(ctx, m.ID, other.ID)
	assert.ErrorIs(t, err, ErrVendorAssigned)

	jobs, err = f.maintenance.ListForVendorCategory(ctx, f.category.ID)
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestMaintenanceList_ScopedByRole(t *testing.T) {
	f := newFixture(t)
	f.newRequest(t)
	ctx := context.Background()

	for _, tc := range []struct {
		actor Actor
		want  int
	}{
		{Actor{ID: f.tenant.ID, Role: domain.RoleTenant}, 1},
		{Actor{ID: f.landlord.ID, Role: domain.RoleLandlord}, 1},
		{Actor{ID: f.vendor.ID, Role: domain.RoleVendor}, 0},
		{Actor{ID: "someone", Role: domain.RoleAdmin}, 1},
		{Actor{ID: "other", Role: domain.RoleTenant}, 0},
	} {
		list, err := f.maintenance.List(ctx, tc.actor)
		require.NoError(t, err)
		assert.Len(t, list, tc.want, tc.actor.Role)
	}

	_, err := f.maintenance.List(ctx, Actor{ID: "x", Role: "GUEST"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestMaintenanceDecide_RequiresOwningLandlord(t *testing.T) {
	f := newFixture(t)
	m := f.newRequest(t)
	ctx := context.Background()

	_, err := f.maintenance.Decide(ctx, m.ID, "not-the-landlord", domain.DecisionApproved)
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := f.maintenance.Decide(ctx, m.ID, f.landlord.ID, domain.DecisionApproved)
	require.NoError(t, err)
	assert.Equal(t, domain.DecisionApproved, got.LandlordDecision)
}

func TestMaintenanceDelete_HidesRequest(t *testing.T) {
	f := newFixture(t)
	m := f.newRequest(t)
	ctx := context.Background()

	require.NoError(t, f.maintenance.Delete(ctx, m.ID))
	_, err := f.maintenance.Get(ctx, m.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.maintenance.Delete(ctx, m.ID), ErrNotFound)
}

func TestMaintenanceWhitelist_MostSpecificEntryWins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	broad := &models.Whitelist{LandlordID: f.landlord.ID, CategoryID: f.category.ID}
	require.NoError(t, f.maintenance.CreateWhitelist(ctx, broad))
	narrow := &models.Whitelist{LandlordID: f.landlord.ID, CategoryID: f.category.ID, SubcategoryID: &f.subs[0].ID, PropertyID: &f.property.ID}
	require.NoError(t, f.maintenance.CreateWhitelist(ctx, narrow))

	got, err := f.maintenance.CheckWhitelist(ctx, repository.WhitelistQuery{
		CategoryID:     f.category.ID,
		SubcategoryIDs: []string{f.subs[0].ID},
		PropertyID:     f.property.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, narrow.ID, got.ID)

	none, err := f.maintenance.CheckWhitelist(ctx, repository.WhitelistQuery{CategoryID: "other", PropertyID: f.property.ID})
	require.NoError(t, err)
	assert.Nil(t, none)

	foreign := &models.Whitelist{LandlordID: "someone-else", CategoryID: f.category.ID, PropertyID: &f.property.ID}
	assert.ErrorIs(t, f.maintenance.CreateWhitelist(ctx, foreign), ErrForbidden)
}
