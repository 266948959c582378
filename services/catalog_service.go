package services

import (
	"context"
	"strings"

	"github.com/kendall-kelly/shower-configurator-api/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// DefaultProfitMargin is applied when a shower type is created without one
	DefaultProfitMargin = 0.2
	// DefaultVATRate is applied when a shower type is created without one
	DefaultVATRate = 0.18
)

// CatalogService manages the catalog entities: shower types, models, taxonomies, addons and gallery
type CatalogService struct {
	db *gorm.DB
}

// NewCatalogService creates a catalog service backed by db
func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// ShowerTypeInput is the payload for creating a shower type
type ShowerTypeInput struct {
	Name             string   `json:"name" binding:"required"`
	Description      string   `json:"description"`
	ProfitMargin     *float64 `json:"profit_margin" binding:"omitempty,gte=0,lte=1"`
	VATRate          *float64 `json:"vat_rate" binding:"omitempty,gte=0,lte=1"`
	NeedsCustomQuote bool     `json:"needs_custom_quote"`
	ImagePath        *string  `json:"image_path"`
}

// ShowerTypePatch holds the fields of a partial shower type update; nil fields are left unchanged
type ShowerTypePatch struct {
	Name             *string  `json:"name"`
	Description      *string  `json:"description"`
	ProfitMargin     *float64 `json:"profit_margin" binding:"omitempty,gte=0,lte=1"`
	VATRate          *float64 `json:"vat_rate" binding:"omitempty,gte=0,lte=1"`
	NeedsCustomQuote *bool    `json:"needs_custom_quote"`
	ImagePath        *string  `json:"image_path"`
}

// ModelInput is the payload for creating a model (JSON or multipart form)
type ModelInput struct {
	Name         string  `json:"name" form:"name" binding:"required"`
	Description  string  `json:"description" form:"description"`
	ImagePath    *string `json:"image_path" form:"image_path"`
	ShowerTypeID uint    `json:"shower_type_id" form:"shower_type_id" binding:"required"`
}

// ModelPatch holds the fields of a partial model update
type ModelPatch struct {
	Name         *string `json:"name" form:"name"`
	Description  *string `json:"description" form:"description"`
	ImagePath    *string `json:"image_path" form:"image_path"`
	ShowerTypeID *uint   `json:"shower_type_id" form:"shower_type_id"`
}

// ListShowerTypes returns all shower types
func (s *CatalogService) ListShowerTypes(ctx context.Context) ([]models.ShowerType, error) {
	return listAll[models.ShowerType](ctx, s.db)
}

// GetShowerType returns one shower type
func (s *CatalogService) GetShowerType(ctx context.Context, id uint) (*models.ShowerType, error) {
	return findByID[models.ShowerType](ctx, s.db, id, "shower type")
}

// CreateShowerType validates and inserts a shower type, defaulting margin and VAT
func (s *CatalogService) CreateShowerType(ctx context.Context, in ShowerTypeInput) (*models.ShowerType, error) {
	name, err := cleanName("shower type", in.Name)
	if err != nil {
		return nil, err
	}
	if err := ensureUnique[models.ShowerType](ctx, s.db, "shower type", "name", name, 0); err != nil {
		return nil, err
	}

	st := &models.ShowerType{
		Name:             name,
		Description:      in.Description,
		ProfitMargin:     DefaultProfitMargin,
		VATRate:          DefaultVATRate,
		NeedsCustomQuote: in.NeedsCustomQuote,
		ImagePath:        nonEmpty(in.ImagePath),
	}
	if in.ProfitMargin != nil {
		st.ProfitMargin = *in.ProfitMargin
	}
	if in.VATRate != nil {
		st.VATRate = *in.VATRate
	}
	if err := validateFractions(st.ProfitMargin, st.VATRate); err != nil {
		return nil, err
	}

	if err := createRow(ctx, s.db, st, "shower type"); err != nil {
		return nil, err
	}
	return st, nil
}

// UpdateShowerType merges the non-nil patch fields into the stored shower type
func (s *CatalogService) UpdateShowerType(ctx context.Context, id uint, patch ShowerTypePatch) (*models.ShowerType, error) {
	st, err := findByID[models.ShowerType](ctx, s.db, id, "shower type")
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name, err := cleanName("shower type", *patch.Name)
		if err != nil {
			return nil, err
		}
		if err := ensureUnique[models.ShowerType](ctx, s.db, "shower type", "name", name, id); err != nil {
			return nil, err
		}
		st.Name = name
	}
	if patch.Description != nil {
		st.Description = *patch.Description
	}
	if patch.ProfitMargin != nil {
		st.ProfitMargin = *patch.ProfitMargin
	}
	if patch.VATRate != nil {
		st.VATRate = *patch.VATRate
	}
	if patch.NeedsCustomQuote != nil {
		st.NeedsCustomQuote = *patch.NeedsCustomQuote
	}
	if patch.ImagePath != nil {
		st.ImagePath = nonEmpty(patch.ImagePath)
	}
	if err := validateFractions(st.ProfitMargin, st.VATRate); err != nil {
		return nil, err
	}

	if err := saveRow(ctx, s.db, st, "shower type"); err != nil {
		return nil, err
	}
	return st, nil
}

// SetShowerTypeImage stores an already ingested image path on a shower type
func (s *CatalogService) SetShowerTypeImage(ctx context.Context, id uint, imagePath string) (*models.ShowerType, error) {
	return s.UpdateShowerType(ctx, id, ShowerTypePatch{ImagePath: &imagePath})
}

// DeleteShowerType removes a shower type. Shower types that still own models are rejected with
// a Conflict unless force is set, in which case the models and their dependents go too.
func (s *CatalogService) DeleteShowerType(ctx context.Context, id uint, force bool) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists[models.ShowerType](ctx, tx, id, "shower type"); err != nil {
			return err
		}

		var modelIDs []uint
		if err := tx.Model(&models.Model{}).Where("shower_type_id = ?", id).Pluck("id", &modelIDs).Error; err != nil {
			return err
		}
		if len(modelIDs) > 0 && !force {
			return conflictError("HAS_DEPENDENTS", "shower type is used by %d model(s)", len(modelIDs))
		}
		for _, modelID := range modelIDs {
			if err := deleteModelTx(tx, modelID); err != nil {
				return err
			}
		}

		if len(modelIDs) > 0 {
			zap.L().Info("Cascading shower type delete",
				zap.Uint("shower_type_id", id),
				zap.Int("models", len(modelIDs)))
		}
		return deleteByID[models.ShowerType](ctx, tx, id, "shower type")
	})
}

// modelQuery preloads everything a model read returns
func (s *CatalogService) modelQuery(ctx context.Context) *gorm.DB {
	byID := func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}
	return s.db.WithContext(ctx).
		Preload("ShowerType").
		Preload("GlassComponents", byID).
		Preload("GlassComponents.GlassType").
		Preload("GlassComponents.Thickness").
		Preload("HardwareComponents", byID).
		Preload("HardwareComponents.HardwareType").
		Preload("HardwareComponents.Finish").
		Preload("SealComponents", byID).
		Preload("SealComponents.SealType").
		Preload("SealComponents.Finish").
		Preload("Addons", byID)
}

// ListModels returns all models with their shower type, components and addons
func (s *CatalogService) ListModels(ctx context.Context) ([]models.Model, error) {
	list := []models.Model{}
	if err := s.modelQuery(ctx).Order("id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// GetModel returns one model with its shower type, components and addons
func (s *CatalogService) GetModel(ctx context.Context, id uint) (*models.Model, error) {
	var m models.Model
	if err := s.modelQuery(ctx).First(&m, id).Error; err != nil {
		return nil, translateDBError(err, "model")
	}
	return &m, nil
}

// CreateModel inserts a model under an existing shower type
func (s *CatalogService) CreateModel(ctx context.Context, in ModelInput) (*models.Model, error) {
	name, err := cleanName("model", in.Name)
	if err != nil {
		return nil, err
	}
	if in.ShowerTypeID == 0 {
		return nil, validationError("shower_type_id is required")
	}
	if err := ensureExists[models.ShowerType](ctx, s.db, in.ShowerTypeID, "shower type"); err != nil {
		return nil, err
	}

	m := &models.Model{
		Name:         name,
		Description:  in.Description,
		ImagePath:    nonEmpty(in.ImagePath),
		ShowerTypeID: in.ShowerTypeID,
	}
	if err := createRow(ctx, s.db, m, "model"); err != nil {
		return nil, err
	}
	return s.GetModel(ctx, m.ID)
}

// UpdateModel merges the non-nil patch fields into the stored model
func (s *CatalogService) UpdateModel(ctx context.Context, id uint, patch ModelPatch) (*models.Model, error) {
	m, err := findByID[models.Model](ctx, s.db, id, "model")
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name, err := cleanName("model", *patch.Name)
		if err != nil {
			return nil, err
		}
		m.Name = name
	}
	if patch.Description != nil {
		m.Description = *patch.Description
	}
	if patch.ImagePath != nil {
		m.ImagePath = nonEmpty(patch.ImagePath)
	}
	if patch.ShowerTypeID != nil {
		if err := ensureExists[models.ShowerType](ctx, s.db, *patch.ShowerTypeID, "shower type"); err != nil {
			return nil, err
		}
		m.ShowerTypeID = *patch.ShowerTypeID
	}

	if err := saveRow(ctx, s.db, m, "model"); err != nil {
		return nil, err
	}
	return s.GetModel(ctx, id)
}

// DeleteModel removes a model together with its components and model-specific addons
func (s *CatalogService) DeleteModel(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists[models.Model](ctx, tx, id, "model"); err != nil {
			return err
		}
		return deleteModelTx(tx, id)
	})
}

func deleteModelTx(tx *gorm.DB, modelID uint) error {
	dependents := []interface{}{
		&models.ModelGlassComponent{},
		&models.ModelHardwareComponent{},
		&models.ModelSealComponent{},
		&models.Addon{},
	}
	for _, dep := range dependents {
		if err := tx.Where("model_id = ?", modelID).Delete(dep).Error; err != nil {
			return err
		}
	}
	return tx.Delete(&models.Model{}, modelID).Error
}

// ensureUnique returns a Conflict when another row of T already has column = value
func ensureUnique[T any](ctx context.Context, db *gorm.DB, entity, column string, value interface{}, excludeID uint) error {
	q := db.WithContext(ctx).Model(new(T)).Where(column+" = ?", value)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return conflictError("DUPLICATE_ENTRY", "%s with %s %v already exists", entity, column, value)
	}
	return nil
}

func cleanName(entity, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", validationError("%s name is required", entity)
	}
	return name, nil
}

func validateFractions(margin, vat float64) error {
	if margin < 0 || margin > 1 {
		return validationError("profit_margin must be a fraction between 0 and 1")
	}
	if vat < 0 || vat > 1 {
		return validationError("vat_rate must be a fraction between 0 and 1")
	}
	return nil
}

// nonEmpty turns an empty string pointer into nil
func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
