package services

import (
	"testing"

	"github.com/kendall-kelly/shower-configurator-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceLookups(t *testing.T) {
	f := newFixture(t)

	perM2, err := f.pricing.PriceForGlass(f.ctx, f.glassType.ID, f.thickness.ID)
	require.NoError(t, err)
	assert.Equal(t, 120.0, perM2)

	unit, err := f.pricing.PriceForHardware(f.ctx, f.hardwareType.ID, f.finish.ID)
	require.NoError(t, err)
	assert.Equal(t, 35.5, unit)

	sealPrice, sealQty, err := f.pricing.PriceForSeal(f.ctx, f.sealType.ID, f.finish.ID)
	require.NoError(t, err)
	assert.Equal(t, 10.25, sealPrice)
	assert.Equal(t, 1, sealQty, "seal quantity defaults to 1")

	_, err = f.pricing.PriceForGlass(f.ctx, f.glassType.ID, 999)
	requireKind(t, err, KindNotFound)
	_, err = f.pricing.PriceForHardware(f.ctx, 999, f.finish.ID)
	requireKind(t, err, KindNotFound)
	_, _, err = f.pricing.PriceForSeal(f.ctx, f.sealType.ID, 999)
	requireKind(t, err, KindNotFound)
}

func TestGlassPricing_PairRules(t *testing.T) {
	f := newFixture(t)

	_, err := f.pricing.CreateGlassPricing(f.ctx, GlassPricingInput{
		GlassTypeID: f.glassType.ID, ThicknessID: f.thickness.ID, PricePerM2: floatPtr(99),
	})
	requireKind(t, err, KindConflict)

	_, err = f.pricing.CreateGlassPricing(f.ctx, GlassPricingInput{
		GlassTypeID: 999, ThicknessID: f.thickness.ID, PricePerM2: floatPtr(99),
	})
	requireKind(t, err, KindNotFound)

	_, err = f.pricing.CreateGlassPricing(f.ctx, GlassPricingInput{
		GlassTypeID: f.glassType.ID, ThicknessID: f.thickness.ID, PricePerM2: floatPtr(-1),
	})
	requireKind(t, err, KindValidation)

	_, err = f.pricing.CreateGlassPricing(f.ctx, GlassPricingInput{
		GlassTypeID: f.glassType.ID, ThicknessID: f.thickness.ID,
	})
	requireKind(t, err, KindValidation)

	ten, err := f.catalog.CreateGlassThickness(f.ctx, ThicknessInput{ThicknessMM: 10})
	require.NoError(t, err)
	row, err := f.pricing.CreateGlassPricing(f.ctx, GlassPricingInput{
		GlassTypeID: f.glassType.ID, ThicknessID: ten.ID, PricePerM2: floatPtr(150),
	})
	require.NoError(t, err)

	eight, err := f.pricing.ListGlassPricing(f.ctx)
	require.NoError(t, err)
	require.Len(t, eight, 2)
	require.NotNil(t, eight[0].GlassType)
	require.NotNil(t, eight[0].Thickness)
	assert.Equal(t, "Clear", eight[0].GlassType.Name)

	_, err = f.pricing.UpdateGlassPricing(f.ctx, row.ID, GlassPricingPatch{ThicknessID: uintPtr(f.thickness.ID)})
	requireKind(t, err, KindConflict)

	updated, err := f.pricing.UpdateGlassPricing(f.ctx, row.ID, GlassPricingPatch{PricePerM2: floatPtr(160)})
	require.NoError(t, err)
	assert.Equal(t, 160.0, updated.PricePerM2)
	assert.Equal(t, ten.ID, updated.ThicknessID)

	require.NoError(t, f.pricing.DeleteGlassPricing(f.ctx, row.ID))
	requireKind(t, f.pricing.DeleteGlassPricing(f.ctx, row.ID), KindNotFound)
}

func TestHardwarePricing_PairRules(t *testing.T) {
	f := newFixture(t)

	_, err := f.pricing.CreateHardwarePricing(f.ctx, HardwarePricingInput{
		HardwareTypeID: f.hardwareType.ID, FinishID: f.finish.ID, UnitPrice: floatPtr(1),
	})
	requireKind(t, err, KindConflict)

	_, err = f.pricing.CreateHardwarePricing(f.ctx, HardwarePricingInput{
		HardwareTypeID: f.hardwareType.ID, FinishID: 999, UnitPrice: floatPtr(1),
	})
	requireKind(t, err, KindNotFound)

	black, err := f.catalog.CreateFinish(f.ctx, NameInput{Name: "Black"})
	require.NoError(t, err)
	row, err := f.pricing.CreateHardwarePricing(f.ctx, HardwarePricingInput{
		HardwareTypeID: f.hardwareType.ID, FinishID: black.ID, UnitPrice: floatPtr(42),
	})
	require.NoError(t, err)

	_, err = f.pricing.UpdateHardwarePricing(f.ctx, row.ID, HardwarePricingPatch{UnitPrice: floatPtr(-3)})
	requireKind(t, err, KindValidation)

	_, err = f.pricing.UpdateHardwarePricing(f.ctx, row.ID, HardwarePricingPatch{FinishID: uintPtr(f.finish.ID)})
	requireKind(t, err, KindConflict)

	_, err = f.pricing.UpdateHardwarePricing(f.ctx, 999, HardwarePricingPatch{UnitPrice: floatPtr(3)})
	requireKind(t, err, KindNotFound)
}

func TestSealPricing_ResolvesNamesAndDefaultsQuantity(t *testing.T) {
	f := newEmptyFixture(t)

	row, err := f.pricing.CreateSealPricing(f.ctx, SealPricingInput{
		SealType:  "Magnetic Seal",
		Finish:    "Transparent",
		UnitPrice: floatPtr(8),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, row.Quantity)
	assert.NotZero(t, row.SealTypeID)
	assert.NotZero(t, row.FinishID)
	assert.Equal(t, int64(1), countRows[models.SealType](t, f.db))
	assert.Equal(t, int64(1), countRows[models.Finish](t, f.db))

	_, err = f.pricing.CreateSealPricing(f.ctx, SealPricingInput{
		SealType:  "Magnetic Seal",
		Finish:    "Transparent",
		UnitPrice: floatPtr(9),
	})
	requireKind(t, err, KindConflict)

	second, err := f.pricing.CreateSealPricing(f.ctx, SealPricingInput{
		SealType:  "Magnetic Seal",
		Finish:    "Black",
		UnitPrice: floatPtr(9),
		Quantity:  intPtr(2),
	})
	require.NoError(t, err)
	assert.Equal(t, row.SealTypeID, second.SealTypeID, "existing names are reused")
	assert.Equal(t, 2, second.Quantity)
	assert.Equal(t, int64(1), countRows[models.SealType](t, f.db))
	assert.Equal(t, int64(2), countRows[models.Finish](t, f.db))
}

func TestSealPricing_FailedCreateRollsBackNewNames(t *testing.T) {
	f := newEmptyFixture(t)

	_, err := f.pricing.CreateSealPricing(f.ctx, SealPricingInput{
		SealType:  "Drip Seal",
		UnitPrice: floatPtr(4),
	})
	requireKind(t, err, KindValidation)
	assert.Equal(t, int64(0), countRows[models.SealType](t, f.db))

	_, err = f.pricing.CreateSealPricing(f.ctx, SealPricingInput{
		SealType:  "Drip Seal",
		FinishID:  uintPtr(77),
		UnitPrice: floatPtr(4),
	})
	requireKind(t, err, KindNotFound)
	assert.Equal(t, int64(0), countRows[models.SealType](t, f.db))

	_, err = f.pricing.CreateSealPricing(f.ctx, SealPricingInput{
		SealType:  "Drip Seal",
		Finish:    "Chrome",
		UnitPrice: floatPtr(4),
		Quantity:  intPtr(-1),
	})
	requireKind(t, err, KindValidation)
}

func TestSealPricing_Update(t *testing.T) {
	f := newFixture(t)

	sheet, err := f.pricing.PriceSheet(f.ctx)
	require.NoError(t, err)
	require.Len(t, sheet.Seal, 1)
	sealRow := sheet.Seal[0]

	updated, err := f.pricing.UpdateSealPricing(f.ctx, sealRow.ID, SealPricingPatch{
		Finish:   strPtr("Gold"),
		Quantity: intPtr(5),
	})
	require.NoError(t, err)
	assert.NotEqual(t, f.finish.ID, updated.FinishID)
	assert.Equal(t, f.sealType.ID, updated.SealTypeID)
	assert.Equal(t, 5, updated.Quantity)
	assert.Equal(t, 10.25, updated.UnitPrice)

	_, err = f.pricing.UpdateSealPricing(f.ctx, sealRow.ID, SealPricingPatch{UnitPrice: floatPtr(-1)})
	requireKind(t, err, KindValidation)

	require.NoError(t, f.pricing.DeleteSealPricing(f.ctx, sealRow.ID))
	_, err = f.pricing.UpdateSealPricing(f.ctx, sealRow.ID, SealPricingPatch{Quantity: intPtr(1)})
	requireKind(t, err, KindNotFound)
}

func TestPriceSheet_EmptyTablesAreEmptySlices(t *testing.T) {
	f := newEmptyFixture(t)

	sheet, err := f.pricing.PriceSheet(f.ctx)
	require.NoError(t, err)
	assert.NotNil(t, sheet.Glass)
	assert.NotNil(t, sheet.Hardware)
	assert.NotNil(t, sheet.Seal)
	assert.Empty(t, sheet.Glass)
}
