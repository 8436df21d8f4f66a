package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.properties.Create(ctx, f.landlord.ID, PropertyInput{Name: "Oak House", City: "Austin"}, []string{"https://img/1.jpg"})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://img/1.jpg"}, []string(p.Images))

	mine, err := f.properties.ListMine(ctx, f.landlord.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	toggled, err := f.properties.ToggleShowcase(ctx, f.landlord.ID, p.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Showcase)
	showcased, err := f.properties.ListShowcased(ctx)
	require.NoError(t, err)
	require.Len(t, showcased, 1)
	assert.Equal(t, p.ID, showcased[0].ID)

	_, err = f.properties.ToggleShowcase(ctx, f.tenant.ID, p.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	apt, err := f.properties.AddApartment(ctx, f.landlord.ID, p.ID, ApartmentInput{Name: "2B", Rooms: 2, RentAmount: decimal.NewFromInt(900)})
	require.NoError(t, err)
	assert.True(t, apt.IsVacant)
	apts, err := f.properties.ListApartments(ctx, f.landlord.ID, p.ID)
	require.NoError(t, err)
	assert.Len(t, apts, 1)

	require.NoError(t, f.properties.Delete(ctx, f.landlord.ID, p.ID))
	mine, err = f.properties.ListMine(ctx, f.landlord.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	_, err = f.properties.AddApartment(ctx, f.landlord.ID, p.ID, ApartmentInput{Name: "3C"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPropertySettings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	fee := decimal.NewFromInt(5)
	grace := 3

	st, err := f.properties.CreateSetting(ctx, f.landlord.ID, SettingInput{
		PropertyID:        &f.property.ID,
		LateFeePercentage: &fee,
		GracePeriodDays:   &grace,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, st.RentDueDay)
	assert.Equal(t, 3, st.GracePeriodDays)

	due := 5
	updated, err := f.properties.UpdateSetting(ctx, f.landlord.ID, st.ID, SettingInput{RentDueDay: &due})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.RentDueDay)
	assert.Equal(t, 3, updated.GracePeriodDays)

	got, err := f.properties.GetSetting(ctx, f.landlord.ID, st.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.RentDueDay)

	_, err = f.properties.GetSetting(ctx, f.tenant.ID, st.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, f.properties.DeleteSetting(ctx, f.landlord.ID, st.ID))
	_, err = f.properties.GetSetting(ctx, f.landlord.ID, st.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogSubcategories(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sc, err := f.catalog.CreateSubCategory(ctx, f.category.ID, "Water heaters", "")
	require.NoError(t, err)

	_, err = f.catalog.CreateSubCategory(ctx, "missing", "x", "")
	assert.ErrorIs(t, err, ErrNotFound)

	name := "Boilers"
	got, err := f.catalog.UpdateSubCategory(ctx, sc.ID, SubCategoryPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Boilers", got.Name)

	list, err := f.catalog.ListSubCategories(ctx, f.category.ID)
	require.NoError(t, err)
	assert.Len(t, list, 3)

	require.NoError(t, f.catalog.DeleteSubCategory(ctx, sc.ID))
	_, err = f.catalog.GetSubCategory(ctx, sc.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.catalog.DeleteSubCategory(ctx, sc.ID), ErrNotFound)

	_, err = f.catalog.UpdateSubCategory(ctx, sc.ID, SubCategoryPatch{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogServices(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	other, err := f.catalog.CreateCategory(ctx, "Electrical", "")
	require.NoError(t, err)

	svc, err := f.catalog.CreateService(ctx, f.vendor.ID, ServiceInput{
		CategoryID:    f.category.ID,
		SubcategoryID: f.subs[0].ID,
		Name:          "Leak repair",
		Price:         decimal.NewFromInt(80),
	})
	require.NoError(t, err)
	assert.Equal(t, f.vendor.ID, svc.VendorID)

	_, err = f.catalog.CreateService(ctx, f.vendor.ID, ServiceInput{
		CategoryID:    other.ID,
		SubcategoryID: f.subs[0].ID,
		Name:          "Mismatch",
	})
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := f.catalog.ListServices(ctx, f.category.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	none, err := f.catalog.ListServices(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}
