package services

import (
	"context"
	"testing"

	"github.com/kendall-kelly/shower-configurator-api/models"
	"github.com/kendall-kelly/shower-configurator-api/tests/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fixture is a small, fully priced catalog: one shower type with one model made of
// 2 x Clear 8mm glass (120/m2), 4 x Hinge Chrome (35.50) and 3 x Side Seal Chrome (10.25)
type fixture struct {
	ctx          context.Context
	db           *gorm.DB
	catalog      *CatalogService
	pricing      *PricingService
	composition  *CompositionService
	showerType   *models.ShowerType
	model        *models.Model
	glassType    *models.GlassType
	thickness    *models.GlassThickness
	finish       *models.Finish
	hardwareType *models.HardwareType
	sealType     *models.SealType
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }
func uintPtr(v uint) *uint        { return &v }

func newEmptyFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	return &fixture{
		ctx:         context.Background(),
		db:          db,
		catalog:     NewCatalogService(db),
		pricing:     NewPricingService(db),
		composition: NewCompositionService(db),
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := newEmptyFixture(t)
	ctx := f.ctx
	var err error

	f.showerType, err = f.catalog.CreateShowerType(ctx, ShowerTypeInput{Name: "Corner Shower"})
	require.NoError(t, err)
	f.glassType, err = f.catalog.CreateGlassType(ctx, NameInput{Name: "Clear"})
	require.NoError(t, err)
	f.thickness, err = f.catalog.CreateGlassThickness(ctx, ThicknessInput{ThicknessMM: 8})
	require.NoError(t, err)
	f.finish, err = f.catalog.CreateFinish(ctx, NameInput{Name: "Chrome"})
	require.NoError(t, err)
	f.hardwareType, err = f.catalog.CreateHardwareType(ctx, NameInput{Name: "Hinge"})
	require.NoError(t, err)
	f.sealType, err = f.catalog.CreateSealType(ctx, NameInput{Name: "Side Seal"})
	require.NoError(t, err)

	_, err = f.pricing.CreateGlassPricing(ctx, GlassPricingInput{
		GlassTypeID: f.glassType.ID, ThicknessID: f.thickness.ID, PricePerM2: floatPtr(120),
	})
	require.NoError(t, err)
	_, err = f.pricing.CreateHardwarePricing(ctx, HardwarePricingInput{
		HardwareTypeID: f.hardwareType.ID, FinishID: f.finish.ID, UnitPrice: floatPtr(35.5),
	})
	require.NoError(t, err)
	_, err = f.pricing.CreateSealPricing(ctx, SealPricingInput{
		SealTypeID: uintPtr(f.sealType.ID), FinishID: uintPtr(f.finish.ID), UnitPrice: floatPtr(10.25),
	})
	require.NoError(t, err)

	f.model, err = f.catalog.CreateModel(ctx, ModelInput{Name: "Corner 90", ShowerTypeID: f.showerType.ID})
	require.NoError(t, err)

	_, err = f.composition.AddGlassComponent(ctx, GlassComponentInput{
		ModelID: f.model.ID, GlassTypeID: f.glassType.ID, ThicknessID: f.thickness.ID, Quantity: intPtr(2),
	})
	require.NoError(t, err)
	_, err = f.composition.AddHardwareComponent(ctx, HardwareComponentInput{
		ModelID: f.model.ID, HardwareTypeID: f.hardwareType.ID, FinishID: f.finish.ID, Quantity: intPtr(4),
	})
	require.NoError(t, err)
	_, err = f.composition.AddSealComponent(ctx, SealComponentInput{
		ModelID: f.model.ID, SealTypeID: f.sealType.ID, FinishID: f.finish.ID, Quantity: intPtr(3),
	})
	require.NoError(t, err)

	return f
}

func countRows[T any](t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(new(T)).Count(&n).Error)
	return n
}

func requireKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	require.Error(t, err)
	require.True(t, IsKind(err, kind), "expected error kind %d, got %T: %v", kind, err, err)
}
