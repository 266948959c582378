package services

import (
	"context"

	"github.com/kendall-kelly/shower-configurator-api/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NameInput is the payload for creating a flat, named taxonomy entry
type NameInput struct {
	Name string `json:"name" binding:"required"`
}

// NamePatch is the payload for renaming a taxonomy entry
type NamePatch struct {
	Name *string `json:"name"`
}

// ThicknessInput is the payload for creating a glass thickness
type ThicknessInput struct {
	ThicknessMM int `json:"thickness_mm" binding:"required,gt=0"`
}

// ThicknessPatch is the payload for updating a glass thickness
type ThicknessPatch struct {
	ThicknessMM *int `json:"thickness_mm" binding:"omitempty,gt=0"`
}

// dependent describes rows that reference a taxonomy entry through column
type dependent struct {
	label  string
	model  interface{}
	column string
}

var (
	glassTypeDependents = []dependent{
		{"glass pricing", &models.GlassPricing{}, "glass_type_id"},
		{"glass component", &models.ModelGlassComponent{}, "glass_type_id"},
	}
	thicknessDependents = []dependent{
		{"glass pricing", &models.GlassPricing{}, "thickness_id"},
		{"glass component", &models.ModelGlassComponent{}, "thickness_id"},
	}
	finishDependents = []dependent{
		{"hardware pricing", &models.HardwarePricing{}, "finish_id"},
		{"seal pricing", &models.SealPricing{}, "finish_id"},
		{"hardware component", &models.ModelHardwareComponent{}, "finish_id"},
		{"seal component", &models.ModelSealComponent{}, "finish_id"},
	}
	hardwareTypeDependents = []dependent{
		{"hardware pricing", &models.HardwarePricing{}, "hardware_type_id"},
		{"hardware component", &models.ModelHardwareComponent{}, "hardware_type_id"},
	}
	sealTypeDependents = []dependent{
		{"seal pricing", &models.SealPricing{}, "seal_type_id"},
		{"seal component", &models.ModelSealComponent{}, "seal_type_id"},
	}
)

// ListGlassTypes returns all glass types
func (s *CatalogService) ListGlassTypes(ctx context.Context) ([]models.GlassType, error) {
	return listAll[models.GlassType](ctx, s.db)
}

// CreateGlassType inserts a glass type with a unique name
func (s *CatalogService) CreateGlassType(ctx context.Context, in NameInput) (*models.GlassType, error) {
	return createNamed(ctx, s.db, "glass type", in.Name, func(name string) *models.GlassType {
		return &models.GlassType{Name: name}
	})
}

// UpdateGlassType renames a glass type
func (s *CatalogService) UpdateGlassType(ctx context.Context, id uint, patch NamePatch) (*models.GlassType, error) {
	return updateNamed(ctx, s.db, "glass type", id, patch, func(row *models.GlassType, name string) {
		row.Name = name
	})
}

// DeleteGlassType removes a glass type; see deleteWithDependents for the force semantics
func (s *CatalogService) DeleteGlassType(ctx context.Context, id uint, force bool) error {
	return deleteWithDependents[models.GlassType](ctx, s.db, "glass type", id, force, glassTypeDependents)
}

// ListGlassThicknesses returns all glass thicknesses
func (s *CatalogService) ListGlassThicknesses(ctx context.Context) ([]models.GlassThickness, error) {
	list := []models.GlassThickness{}
	if err := s.db.WithContext(ctx).Order("thickness_mm ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// CreateGlassThickness inserts a thickness; thickness values are unique
func (s *CatalogService) CreateGlassThickness(ctx context.Context, in ThicknessInput) (*models.GlassThickness, error) {
	if in.ThicknessMM <= 0 {
		return nil, validationError("thickness_mm must be a positive number of millimeters")
	}
	if err := ensureUnique[models.GlassThickness](ctx, s.db, "glass thickness", "thickness_mm", in.ThicknessMM, 0); err != nil {
		return nil, err
	}

	row := &models.GlassThickness{ThicknessMM: in.ThicknessMM}
	if err := createRow(ctx, s.db, row, "glass thickness"); err != nil {
		return nil, err
	}
	return row, nil
}

// UpdateGlassThickness changes the millimeter value of a thickness
func (s *CatalogService) UpdateGlassThickness(ctx context.Context, id uint, patch ThicknessPatch) (*models.GlassThickness, error) {
	row, err := findByID[models.GlassThickness](ctx, s.db, id, "glass thickness")
	if err != nil {
		return nil, err
	}

	if patch.ThicknessMM != nil {
		if *patch.ThicknessMM <= 0 {
			return nil, validationError("thickness_mm must be a positive number of millimeters")
		}
		if err := ensureUnique[models.GlassThickness](ctx, s.db, "glass thickness", "thickness_mm", *patch.ThicknessMM, id); err != nil {
			return nil, err
		}
		row.ThicknessMM = *patch.ThicknessMM
	}

	if err := saveRow(ctx, s.db, row, "glass thickness"); err != nil {
		return nil, err
	}
	return row, nil
}

// DeleteGlassThickness removes a thickness
func (s *CatalogService) DeleteGlassThickness(ctx context.Context, id uint, force bool) error {
	return deleteWithDependents[models.GlassThickness](ctx, s.db, "glass thickness", id, force, thicknessDependents)
}

// ListFinishes returns all finishes
func (s *CatalogService) ListFinishes(ctx context.Context) ([]models.Finish, error) {
	return listAll[models.Finish](ctx, s.db)
}

// CreateFinish inserts a finish with a unique name
func (s *CatalogService) CreateFinish(ctx context.Context, in NameInput) (*models.Finish, error) {
	return createNamed(ctx, s.db, "finish", in.Name, func(name string) *models.Finish {
		return &models.Finish{Name: name}
	})
}

// UpdateFinish renames a finish
func (s *CatalogService) UpdateFinish(ctx context.Context, id uint, patch NamePatch) (*models.Finish, error) {
	return updateNamed(ctx, s.db, "finish", id, patch, func(row *models.Finish, name string) {
		row.Name = name
	})
}

// DeleteFinish removes a finish
func (s *CatalogService) DeleteFinish(ctx context.Context, id uint, force bool) error {
	return deleteWithDependents[models.Finish](ctx, s.db, "finish", id, force, finishDependents)
}

// ListHardwareTypes returns all hardware types
func (s *CatalogService) ListHardwareTypes(ctx context.Context) ([]models.HardwareType, error) {
	return listAll[models.HardwareType](ctx, s.db)
}

// CreateHardwareType inserts a hardware type with a unique name
func (s *CatalogService) CreateHardwareType(ctx context.Context, in NameInput) (*models.HardwareType, error) {
	return createNamed(ctx, s.db, "hardware type", in.Name, func(name string) *models.HardwareType {
		return &models.HardwareType{Name: name}
	})
}

// UpdateHardwareType renames a hardware type
func (s *CatalogService) UpdateHardwareType(ctx context.Context, id uint, patch NamePatch) (*models.HardwareType, error) {
	return updateNamed(ctx, s.db, "hardware type", id, patch, func(row *models.HardwareType, name string) {
		row.Name = name
	})
}

// DeleteHardwareType removes a hardware type
func (s *CatalogService) DeleteHardwareType(ctx context.Context, id uint, force bool) error {
	return deleteWithDependents[models.HardwareType](ctx, s.db, "hardware type", id, force, hardwareTypeDependents)
}

// ListSealTypes returns all seal types
func (s *CatalogService) ListSealTypes(ctx context.Context) ([]models.SealType, error) {
	return listAll[models.SealType](ctx, s.db)
}

// CreateSealType inserts a seal type with a unique name
func (s *CatalogService) CreateSealType(ctx context.Context, in NameInput) (*models.SealType, error) {
	return createNamed(ctx, s.db, "seal type", in.Name, func(name string) *models.SealType {
		return &models.SealType{Name: name}
	})
}

// UpdateSealType renames a seal type
func (s *CatalogService) UpdateSealType(ctx context.Context, id uint, patch NamePatch) (*models.SealType, error) {
	return updateNamed(ctx, s.db, "seal type", id, patch, func(row *models.SealType, name string) {
		row.Name = name
	})
}

// DeleteSealType removes a seal type
func (s *CatalogService) DeleteSealType(ctx context.Context, id uint, force bool) error {
	return deleteWithDependents[models.SealType](ctx, s.db, "seal type", id, force, sealTypeDependents)
}

func createNamed[T any](ctx context.Context, db *gorm.DB, entity, rawName string, build func(name string) *T) (*T, error) {
	name, err := cleanName(entity, rawName)
	if err != nil {
		return nil, err
	}
	if err := ensureUnique[T](ctx, db, entity, "name", name, 0); err != nil {
		return nil, err
	}

	row := build(name)
	if err := createRow(ctx, db, row, entity); err != nil {
		return nil, err
	}
	return row, nil
}

func updateNamed[T any](ctx context.Context, db *gorm.DB, entity string, id uint, patch NamePatch, apply func(row *T, name string)) (*T, error) {
	row, err := findByID[T](ctx, db, id, entity)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name, err := cleanName(entity, *patch.Name)
		if err != nil {
			return nil, err
		}
		if err := ensureUnique[T](ctx, db, entity, "name", name, id); err != nil {
			return nil, err
		}
		apply(row, name)
	}

	if err := saveRow(ctx, db, row, entity); err != nil {
		return nil, err
	}
	return row, nil
}

// deleteWithDependents removes one taxonomy row. Rows still referenced by pricing rows or
// model components are rejected with a Conflict unless force is set; with force the
// referencing rows are deleted first, all in one transaction.
func deleteWithDependents[T any](ctx context.Context, db *gorm.DB, entity string, id uint, force bool, deps []dependent) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists[T](ctx, tx, id, entity); err != nil {
			return err
		}

		for _, dep := range deps {
			var count int64
			if err := tx.Model(dep.model).Where(dep.column+" = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				continue
			}
			if !force {
				return conflictError("HAS_DEPENDENTS", "%s is referenced by %d %s row(s)", entity, count, dep.label)
			}
			if err := tx.Where(dep.column+" = ?", id).Delete(dep.model).Error; err != nil {
				return err
			}
			zap.L().Info("Cascaded taxonomy delete",
				zap.String("entity", entity),
				zap.Uint("id", id),
				zap.String("dependent", dep.label),
				zap.Int64("rows", count))
		}

		return deleteByID[T](ctx, tx, id, entity)
	})
}
