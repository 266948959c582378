package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlassComponents(t *testing.T) {
	f := newFixture(t)

	list, err := f.composition.ListGlassComponents(f.ctx, f.model.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].Quantity)
	require.NotNil(t, list[0].GlassType)
	assert.Equal(t, "Clear", list[0].GlassType.Name)

	added, err := f.composition.AddGlassComponent(f.ctx, GlassComponentInput{
		ModelID: f.model.ID, GlassTypeID: f.glassType.ID, ThicknessID: f.thickness.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, added.Quantity, "quantity defaults to 1")

	updated, err := f.composition.UpdateGlassComponent(f.ctx, added.ID, GlassComponentPatch{Quantity: intPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Quantity)

	_, err = f.composition.UpdateGlassComponent(f.ctx, added.ID, GlassComponentPatch{ThicknessID: uintPtr(999)})
	requireKind(t, err, KindNotFound)

	require.NoError(t, f.composition.DeleteGlassComponent(f.ctx, added.ID))
	requireKind(t, f.composition.DeleteGlassComponent(f.ctx, added.ID), KindNotFound)

	list, err = f.composition.ListGlassComponents(f.ctx, f.model.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAddComponent_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.composition.AddGlassComponent(f.ctx, GlassComponentInput{
		ModelID: 999, GlassTypeID: f.glassType.ID, ThicknessID: f.thickness.ID,
	})
	requireKind(t, err, KindNotFound)

	_, err = f.composition.AddHardwareComponent(f.ctx, HardwareComponentInput{
		ModelID: f.model.ID, HardwareTypeID: 999, FinishID: f.finish.ID,
	})
	requireKind(t, err, KindNotFound)

	_, err = f.composition.AddSealComponent(f.ctx, SealComponentInput{
		ModelID: f.model.ID, SealTypeID: f.sealType.ID, FinishID: f.finish.ID, Quantity: intPtr(-2),
	})
	requireKind(t, err, KindValidation)
}

func TestHardwareAndSealComponents(t *testing.T) {
	f := newFixture(t)

	black, err := f.catalog.CreateFinish(f.ctx, NameInput{Name: "Black"})
	require.NoError(t, err)

	hw, err := f.composition.ListHardwareComponents(f.ctx, f.model.ID)
	require.NoError(t, err)
	require.Len(t, hw, 1)

	movedHW, err := f.composition.UpdateHardwareComponent(f.ctx, hw[0].ID, HardwareComponentPatch{FinishID: uintPtr(black.ID)})
	require.NoError(t, err)
	assert.Equal(t, black.ID, movedHW.FinishID)
	assert.Equal(t, 4, movedHW.Quantity)

	seals, err := f.composition.ListSealComponents(f.ctx, f.model.ID)
	require.NoError(t, err)
	require.Len(t, seals, 1)
	require.NotNil(t, seals[0].Finish)
	assert.Equal(t, "Chrome", seals[0].Finish.Name)

	_, err = f.composition.UpdateSealComponent(f.ctx, seals[0].ID, SealComponentPatch{Quantity: intPtr(-1)})
	requireKind(t, err, KindValidation)

	require.NoError(t, f.composition.DeleteSealComponent(f.ctx, seals[0].ID))
	require.NoError(t, f.composition.DeleteHardwareComponent(f.ctx, hw[0].ID))

	seals, err = f.composition.ListSealComponents(f.ctx, f.model.ID)
	require.NoError(t, err)
	assert.NotNil(t, seals)
	assert.Empty(t, seals)
}

func TestListComponents_UnknownModelIsEmpty(t *testing.T) {
	f := newFixture(t)

	list, err := f.composition.ListHardwareComponents(f.ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, list)
}
