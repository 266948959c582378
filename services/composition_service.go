package services

import (
	"context"

	"github.com/kendall-kelly/shower-configurator-api/models"
	"gorm.io/gorm"
)

// CompositionService attaches glass, hardware and seal components to models
type CompositionService struct {
	db *gorm.DB
}

// NewCompositionService creates a composition service backed by db
func NewCompositionService(db *gorm.DB) *CompositionService {
	return &CompositionService{db: db}
}

// GlassComponentInput attaches a glass panel to a model; quantity defaults to 1
type GlassComponentInput struct {
	ModelID     uint `json:"model_id" binding:"required"`
	GlassTypeID uint `json:"glass_type_id" binding:"required"`
	ThicknessID uint `json:"thickness_id" binding:"required"`
	Quantity    *int `json:"quantity" binding:"omitempty,gte=0"`
}

// GlassComponentPatch holds the fields of a partial glass component update
type GlassComponentPatch struct {
	GlassTypeID *uint `json:"glass_type_id"`
	ThicknessID *uint `json:"thickness_id"`
	Quantity    *int  `json:"quantity" binding:"omitempty,gte=0"`
}

// HardwareComponentInput attaches a hardware item to a model; quantity defaults to 1
type HardwareComponentInput struct {
	ModelID        uint `json:"model_id" binding:"required"`
	HardwareTypeID uint `json:"hardware_type_id" binding:"required"`
	FinishID       uint `json:"finish_id" binding:"required"`
	Quantity       *int `json:"quantity" binding:"omitempty,gte=0"`
}

// HardwareComponentPatch holds the fields of a partial hardware component update
type HardwareComponentPatch struct {
	HardwareTypeID *uint `json:"hardware_type_id"`
	FinishID       *uint `json:"finish_id"`
	Quantity       *int  `json:"quantity" binding:"omitempty,gte=0"`
}

// SealComponentInput attaches a seal to a model; quantity defaults to 1
type SealComponentInput struct {
	ModelID    uint `json:"model_id" binding:"required"`
	SealTypeID uint `json:"seal_type_id" binding:"required"`
	FinishID   uint `json:"finish_id" binding:"required"`
	Quantity   *int `json:"quantity" binding:"omitempty,gte=0"`
}

// SealComponentPatch holds the fields of a partial seal component update
type SealComponentPatch struct {
	SealTypeID *uint `json:"seal_type_id"`
	FinishID   *uint `json:"finish_id"`
	Quantity   *int  `json:"quantity" binding:"omitempty,gte=0"`
}

// AddGlassComponent attaches a glass panel to a model
func (s *CompositionService) AddGlassComponent(ctx context.Context, in GlassComponentInput) (*models.ModelGlassComponent, error) {
	qty, err := quantityOrDefault(in.Quantity)
	if err != nil {
		return nil, err
	}
	if err := ensureExists[models.Model](ctx, s.db, in.ModelID, "model"); err != nil {
		return nil, err
	}
	if err := s.checkGlassDimensions(ctx, in.GlassTypeID, in.ThicknessID); err != nil {
		return nil, err
	}

	comp := &models.ModelGlassComponent{
		ModelID:     in.ModelID,
		GlassTypeID: in.GlassTypeID,
		ThicknessID: in.ThicknessID,
		Quantity:    qty,
	}
	if err := createRow(ctx, s.db, comp, "glass component"); err != nil {
		return nil, err
	}
	return comp, nil
}

// ListGlassComponents returns the glass components of a model in insertion order
func (s *CompositionService) ListGlassComponents(ctx context.Context, modelID uint) ([]models.ModelGlassComponent, error) {
	list := []models.ModelGlassComponent{}
	err := s.db.WithContext(ctx).
		Preload("GlassType").
		Preload("Thickness").
		Where("model_id = ?", modelID).
		Order("id ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateGlassComponent merges the non-nil patch fields into the stored component
func (s *CompositionService) UpdateGlassComponent(ctx context.Context, id uint, patch GlassComponentPatch) (*models.ModelGlassComponent, error) {
	comp, err := findByID[models.ModelGlassComponent](ctx, s.db, id, "glass component")
	if err != nil {
		return nil, err
	}

	if patch.GlassTypeID != nil {
		comp.GlassTypeID = *patch.GlassTypeID
	}
	if patch.ThicknessID != nil {
		comp.ThicknessID = *patch.ThicknessID
	}
	if patch.Quantity != nil {
		if *patch.Quantity < 0 {
			return nil, validationError("quantity must not be negative")
		}
		comp.Quantity = *patch.Quantity
	}
	if err := s.checkGlassDimensions(ctx, comp.GlassTypeID, comp.ThicknessID); err != nil {
		return nil, err
	}

	if err := saveRow(ctx, s.db, comp, "glass component"); err != nil {
		return nil, err
	}
	return comp, nil
}

// DeleteGlassComponent detaches a glass component
func (s *CompositionService) DeleteGlassComponent(ctx context.Context, id uint) error {
	return deleteByID[models.ModelGlassComponent](ctx, s.db, id, "glass component")
}

func (s *CompositionService) checkGlassDimensions(ctx context.Context, glassTypeID, thicknessID uint) error {
	if err := ensureExists[models.GlassType](ctx, s.db, glassTypeID, "glass type"); err != nil {
		return err
	}
	return ensureExists[models.GlassThickness](ctx, s.db, thicknessID, "glass thickness")
}

// AddHardwareComponent attaches a hardware item to a model
func (s *CompositionService) AddHardwareComponent(ctx context.Context, in HardwareComponentInput) (*models.ModelHardwareComponent, error) {
	qty, err := quantityOrDefault(in.Quantity)
	if err != nil {
		return nil, err
	}
	if err := ensureExists[models.Model](ctx, s.db, in.ModelID, "model"); err != nil {
		return nil, err
	}
	if err := s.checkHardwareDimensions(ctx, in.HardwareTypeID, in.FinishID); err != nil {
		return nil, err
	}

	comp := &models.ModelHardwareComponent{
		ModelID:        in.ModelID,
		HardwareTypeID: in.HardwareTypeID,
		FinishID:       in.FinishID,
		Quantity:       qty,
	}
	if err := createRow(ctx, s.db, comp, "hardware component"); err != nil {
		return nil, err
	}
	return comp, nil
}

// ListHardwareComponents returns the hardware components of a model in insertion order
func (s *CompositionService) ListHardwareComponents(ctx context.Context, modelID uint) ([]models.ModelHardwareComponent, error) {
	list := []models.ModelHardwareComponent{}
	err := s.db.WithContext(ctx).
		Preload("HardwareType").
		Preload("Finish").
		Where("model_id = ?", modelID).
		Order("id ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateHardwareComponent merges the non-nil patch fields into the stored component
func (s *CompositionService) UpdateHardwareComponent(ctx context.Context, id uint, patch HardwareComponentPatch) (*models.ModelHardwareComponent, error) {
	comp, err := findByID[models.ModelHardwareComponent](ctx, s.db, id, "hardware component")
	if err != nil {
		return nil, err
	}

	if patch.HardwareTypeID != nil {
		comp.HardwareTypeID = *patch.HardwareTypeID
	}
	if patch.FinishID != nil {
		comp.FinishID = *patch.FinishID
	}
	if patch.Quantity != nil {
		if *patch.Quantity < 0 {
			return nil, validationError("quantity must not be negative")
		}
		comp.Quantity = *patch.Quantity
	}
	if err := s.checkHardwareDimensions(ctx, comp.HardwareTypeID, comp.FinishID); err != nil {
		return nil, err
	}

	if err := saveRow(ctx, s.db, comp, "hardware component"); err != nil {
		return nil, err
	}
	return comp, nil
}

// DeleteHardwareComponent detaches a hardware component
func (s *CompositionService) DeleteHardwareComponent(ctx context.Context, id uint) error {
	return deleteByID[models.ModelHardwareComponent](ctx, s.db, id, "hardware component")
}

func (s *CompositionService) checkHardwareDimensions(ctx context.Context, hardwareTypeID, finishID uint) error {
	if err := ensureExists[models.HardwareType](ctx, s.db, hardwareTypeID, "hardware type"); err != nil {
		return err
	}
	return ensureExists[models.Finish](ctx, s.db, finishID, "finish")
}

// AddSealComponent attaches a seal to a model
func (s *CompositionService) AddSealComponent(ctx context.Context, in SealComponentInput) (*models.ModelSealComponent, error) {
	qty, err := quantityOrDefault(in.Quantity)
	if err != nil {
		return nil, err
	}
	if err := ensureExists[models.Model](ctx, s.db, in.ModelID, "model"); err != nil {
		return nil, err
	}
	if err := s.checkSealDimensions(ctx, in.SealTypeID, in.FinishID); err != nil {
		return nil, err
	}

	comp := &models.ModelSealComponent{
		ModelID:    in.ModelID,
		SealTypeID: in.SealTypeID,
		FinishID:   in.FinishID,
		Quantity:   qty,
	}
	if err := createRow(ctx, s.db, comp, "seal component"); err != nil {
		return nil, err
	}
	return comp, nil
}

// ListSealComponents returns the seal components of a model in insertion order
func (s *CompositionService) ListSealComponents(ctx context.Context, modelID uint) ([]models.ModelSealComponent, error) {
	list := []models.ModelSealComponent{}
	err := s.db.WithContext(ctx).
		Preload("SealType").
		Preload("Finish").
		Where("model_id = ?", modelID).
		Order("id ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateSealComponent merges the non-nil patch fields into the stored component
func (s *CompositionService) UpdateSealComponent(ctx context.Context, id uint, patch SealComponentPatch) (*models.ModelSealComponent, error) {
	comp, err := findByID[models.ModelSealComponent](ctx, s.db, id, "seal component")
	if err != nil {
		return nil, err
	}

	if patch.SealTypeID != nil {
		comp.SealTypeID = *patch.SealTypeID
	}
	if patch.FinishID != nil {
		comp.FinishID = *patch.FinishID
	}
	if patch.Quantity != nil {
		if *patch.Quantity < 0 {
			return nil, validationError("quantity must not be negative")
		}
		comp.Quantity = *patch.Quantity
	}
	if err := s.checkSealDimensions(ctx, comp.SealTypeID, comp.FinishID); err != nil {
		return nil, err
	}

	if err := saveRow(ctx, s.db, comp, "seal component"); err != nil {
		return nil, err
	}
	return comp, nil
}

// DeleteSealComponent detaches a seal component
func (s *CompositionService) DeleteSealComponent(ctx context.Context, id uint) error {
	return deleteByID[models.ModelSealComponent](ctx, s.db, id, "seal component")
}

func (s *CompositionService) checkSealDimensions(ctx context.Context, sealTypeID, finishID uint) error {
	if err := ensureExists[models.SealType](ctx, s.db, sealTypeID, "seal type"); err != nil {
		return err
	}
	return ensureExists[models.Finish](ctx, s.db, finishID, "finish")
}

func quantityOrDefault(q *int) (int, error) {
	if q == nil {
		return 1, nil
	}
	if *q < 0 {
		return 0, validationError("quantity must not be negative")
	}
	return *q, nil
}
