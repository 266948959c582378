package services

import (
	"context"
	"strings"

	"github.com/kendall-kelly/shower-configurator-api/models"
	"gorm.io/gorm"
)

// PricingService manages the three price tables and resolves prices for (type, dimension) pairs
type PricingService struct {
	db *gorm.DB
}

// NewPricingService creates a pricing service backed by db
func NewPricingService(db *gorm.DB) *PricingService {
	return &PricingService{db: db}
}

// GlassPricingInput is the payload for creating a glass price row
type GlassPricingInput struct {
	GlassTypeID uint     `json:"glass_type_id" binding:"required"`
	ThicknessID uint     `json:"thickness_id" binding:"required"`
	PricePerM2  *float64 `json:"price_per_m2" binding:"required,gte=0"`
}

// GlassPricingPatch holds the fields of a partial glass price update
type GlassPricingPatch struct {
	GlassTypeID *uint    `json:"glass_type_id"`
	ThicknessID *uint    `json:"thickness_id"`
	PricePerM2  *float64 `json:"price_per_m2" binding:"omitempty,gte=0"`
}

// HardwarePricingInput is the payload for creating a hardware price row
type HardwarePricingInput struct {
	HardwareTypeID uint     `json:"hardware_type_id" binding:"required"`
	FinishID       uint     `json:"finish_id" binding:"required"`
	UnitPrice      *float64 `json:"unit_price" binding:"required,gte=0"`
}

// HardwarePricingPatch holds the fields of a partial hardware price update
type HardwarePricingPatch struct {
	HardwareTypeID *uint    `json:"hardware_type_id"`
	FinishID       *uint    `json:"finish_id"`
	UnitPrice      *float64 `json:"unit_price" binding:"omitempty,gte=0"`
}

// SealPricingInput is the payload for creating a seal price row.
// Seal type and finish may be given by id or by name; unknown names are created.
type SealPricingInput struct {
	SealTypeID *uint    `json:"seal_type_id"`
	SealType   string   `json:"seal_type"`
	FinishID   *uint    `json:"finish_id"`
	Finish     string   `json:"finish"`
	UnitPrice  *float64 `json:"unit_price" binding:"required,gte=0"`
	Quantity   *int     `json:"quantity" binding:"omitempty,gte=0"`
}

// SealPricingPatch holds the fields of a partial seal price update
type SealPricingPatch struct {
	SealTypeID *uint    `json:"seal_type_id"`
	SealType   *string  `json:"seal_type"`
	FinishID   *uint    `json:"finish_id"`
	Finish     *string  `json:"finish"`
	UnitPrice  *float64 `json:"unit_price" binding:"omitempty,gte=0"`
	Quantity   *int     `json:"quantity" binding:"omitempty,gte=0"`
}

// PriceSheet is the full pricing dump used by clients to compute totals
type PriceSheet struct {
	Glass    []models.GlassPricing    `json:"glass"`
	Hardware []models.HardwarePricing `json:"hardware"`
	Seal     []models.SealPricing     `json:"seal"`
}

// PriceForGlass returns the price per square meter of a glass type at a thickness
func (s *PricingService) PriceForGlass(ctx context.Context, glassTypeID, thicknessID uint) (float64, error) {
	var row models.GlassPricing
	err := s.db.WithContext(ctx).
		Where("glass_type_id = ? AND thickness_id = ?", glassTypeID, thicknessID).
		First(&row).Error
	if err != nil {
		return 0, translateDBError(err, "glass pricing")
	}
	return row.PricePerM2, nil
}

// PriceForHardware returns the unit price of a hardware type in a finish
func (s *PricingService) PriceForHardware(ctx context.Context, hardwareTypeID, finishID uint) (float64, error) {
	var row models.HardwarePricing
	err := s.db.WithContext(ctx).
		Where("hardware_type_id = ? AND finish_id = ?", hardwareTypeID, finishID).
		First(&row).Error
	if err != nil {
		return 0, translateDBError(err, "hardware pricing")
	}
	return row.UnitPrice, nil
}

// PriceForSeal returns the unit price and default quantity of a seal type in a finish
func (s *PricingService) PriceForSeal(ctx context.Context, sealTypeID, finishID uint) (float64, int, error) {
	var row models.SealPricing
	err := s.db.WithContext(ctx).
		Where("seal_type_id = ? AND finish_id = ?", sealTypeID, finishID).
		First(&row).Error
	if err != nil {
		return 0, 0, translateDBError(err, "seal pricing")
	}
	return row.UnitPrice, row.Quantity, nil
}

// PriceSheet returns every price row with its dimension records
func (s *PricingService) PriceSheet(ctx context.Context) (*PriceSheet, error) {
	glass, err := s.ListGlassPricing(ctx)
	if err != nil {
		return nil, err
	}
	hardware, err := s.ListHardwarePricing(ctx)
	if err != nil {
		return nil, err
	}
	seal, err := s.ListSealPricing(ctx)
	if err != nil {
		return nil, err
	}
	return &PriceSheet{Glass: glass, Hardware: hardware, Seal: seal}, nil
}

// ListGlassPricing returns all glass price rows
func (s *PricingService) ListGlassPricing(ctx context.Context) ([]models.GlassPricing, error) {
	return listAll[models.GlassPricing](ctx, s.db, "GlassType", "Thickness")
}

// CreateGlassPricing prices a (glass type, thickness) pair that has no price yet
func (s *PricingService) CreateGlassPricing(ctx context.Context, in GlassPricingInput) (*models.GlassPricing, error) {
	if in.PricePerM2 == nil || *in.PricePerM2 < 0 {
		return nil, validationError("price_per_m2 must be a non-negative number")
	}
	if err := s.checkGlassPair(ctx, in.GlassTypeID, in.ThicknessID, 0); err != nil {
		return nil, err
	}

	row := &models.GlassPricing{
		GlassTypeID: in.GlassTypeID,
		ThicknessID: in.ThicknessID,
		PricePerM2:  *in.PricePerM2,
	}
	if err := createRow(ctx, s.db, row, "glass pricing"); err != nil {
		return nil, err
	}
	return row, nil
}

// UpdateGlassPricing merges the non-nil patch fields into the stored glass price row
func (s *PricingService) UpdateGlassPricing(ctx context.Context, id uint, patch GlassPricingPatch) (*models.GlassPricing, error) {
	row, err := findByID[models.GlassPricing](ctx, s.db, id, "glass pricing")
	if err != nil {
		return nil, err
	}

	if patch.GlassTypeID != nil {
		row.GlassTypeID = *patch.GlassTypeID
	}
	if patch.ThicknessID != nil {
		row.ThicknessID = *patch.ThicknessID
	}
	if patch.PricePerM2 != nil {
		if *patch.PricePerM2 < 0 {
			return nil, validationError("price_per_m2 must be a non-negative number")
		}
		row.PricePerM2 = *patch.PricePerM2
	}
	if patch.GlassTypeID != nil || patch.ThicknessID != nil {
		if err := s.checkGlassPair(ctx, row.GlassTypeID, row.ThicknessID, id); err != nil {
			return nil, err
		}
	}

	if err := saveRow(ctx, s.db, row, "glass pricing"); err != nil {
		return nil, err
	}
	return row, nil
}

// DeleteGlassPricing removes a glass price row
func (s *PricingService) DeleteGlassPricing(ctx context.Context, id uint) error {
	return deleteByID[models.GlassPricing](ctx, s.db, id, "glass pricing")
}

func (s *PricingService) checkGlassPair(ctx context.Context, glassTypeID, thicknessID, excludeID uint) error {
	if err := ensureExists[models.GlassType](ctx, s.db, glassTypeID, "glass type"); err != nil {
		return err
	}
	if err := ensureExists[models.GlassThickness](ctx, s.db, thicknessID, "glass thickness"); err != nil {
		return err
	}
	return ensureUniquePair[models.GlassPricing](ctx, s.db, "glass pricing",
		"glass_type_id = ? AND thickness_id = ?", excludeID, glassTypeID, thicknessID)
}

// ListHardwarePricing returns all hardware price rows
func (s *PricingService) ListHardwarePricing(ctx context.Context) ([]models.HardwarePricing, error) {
	return listAll[models.HardwarePricing](ctx, s.db, "HardwareType", "Finish")
}

// CreateHardwarePricing prices a (hardware type, finish) pair that has no price yet
func (s *PricingService) CreateHardwarePricing(ctx context.Context, in HardwarePricingInput) (*models.HardwarePricing, error) {
	if in.UnitPrice == nil || *in.UnitPrice < 0 {
		return nil, validationError("unit_price must be a non-negative number")
	}
	if err := s.checkHardwarePair(ctx, in.HardwareTypeID, in.FinishID, 0); err != nil {
		return nil, err
	}

	row := &models.HardwarePricing{
		HardwareTypeID: in.HardwareTypeID,
		FinishID:       in.FinishID,
		UnitPrice:      *in.UnitPrice,
	}
	if err := createRow(ctx, s.db, row, "hardware pricing"); err != nil {
		return nil, err
	}
	return row, nil
}

// UpdateHardwarePricing merges the non-nil patch fields into the stored hardware price row
func (s *PricingService) UpdateHardwarePricing(ctx context.Context, id uint, patch HardwarePricingPatch) (*models.HardwarePricing, error) {
	row, err := findByID[models.HardwarePricing](ctx, s.db, id, "hardware pricing")
	if err != nil {
		return nil, err
	}

	if patch.HardwareTypeID != nil {
		row.HardwareTypeID = *patch.HardwareTypeID
	}
	if patch.FinishID != nil {
		row.FinishID = *patch.FinishID
	}
	if patch.UnitPrice != nil {
		if *patch.UnitPrice < 0 {
			return nil, validationError("unit_price must be a non-negative number")
		}
		row.UnitPrice = *patch.UnitPrice
	}
	if patch.HardwareTypeID != nil || patch.FinishID != nil {
		if err := s.checkHardwarePair(ctx, row.HardwareTypeID, row.FinishID, id); err != nil {
			return nil, err
		}
	}

	if err := saveRow(ctx, s.db, row, "hardware pricing"); err != nil {
		return nil, err
	}
	return row, nil
}

// DeleteHardwarePricing removes a hardware price row
func (s *PricingService) DeleteHardwarePricing(ctx context.Context, id uint) error {
	return deleteByID[models.HardwarePricing](ctx, s.db, id, "hardware pricing")
}

func (s *PricingService) checkHardwarePair(ctx context.Context, hardwareTypeID, finishID, excludeID uint) error {
	if err := ensureExists[models.HardwareType](ctx, s.db, hardwareTypeID, "hardware type"); err != nil {
		return err
	}
	if err := ensureExists[models.Finish](ctx, s.db, finishID, "finish"); err != nil {
		return err
	}
	return ensureUniquePair[models.HardwarePricing](ctx, s.db, "hardware pricing",
		"hardware_type_id = ? AND finish_id = ?", excludeID, hardwareTypeID, finishID)
}

// ListSealPricing returns all seal price rows
func (s *PricingService) ListSealPricing(ctx context.Context) ([]models.SealPricing, error) {
	return listAll[models.SealPricing](ctx, s.db, "SealType", "Finish")
}

// CreateSealPricing prices a (seal type, finish) pair. Seal type and finish names that do not
// exist yet are created in the same transaction as the price row.
func (s *PricingService) CreateSealPricing(ctx context.Context, in SealPricingInput) (*models.SealPricing, error) {
	if in.UnitPrice == nil || *in.UnitPrice < 0 {
		return nil, validationError("unit_price must be a non-negative number")
	}
	quantity := 1
	if in.Quantity != nil {
		quantity = *in.Quantity
	}
	if quantity < 0 {
		return nil, validationError("quantity must not be negative")
	}

	row := &models.SealPricing{UnitPrice: *in.UnitPrice, Quantity: quantity}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sealTypeID, err := resolveSealType(ctx, tx, in.SealTypeID, in.SealType)
		if err != nil {
			return err
		}
		finishID, err := resolveFinish(ctx, tx, in.FinishID, in.Finish)
		if err != nil {
			return err
		}
		if sealTypeID == 0 {
			return validationError("seal_type_id or seal_type is required")
		}
		if finishID == 0 {
			return validationError("finish_id or finish is required")
		}

		row.SealTypeID = sealTypeID
		row.FinishID = finishID
		if err := ensureUniquePair[models.SealPricing](ctx, tx, "seal pricing",
			"seal_type_id = ? AND finish_id = ?", 0, sealTypeID, finishID); err != nil {
			return err
		}
		return createRow(ctx, tx, row, "seal pricing")
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

// UpdateSealPricing merges the non-nil patch fields into the stored seal price row
func (s *PricingService) UpdateSealPricing(ctx context.Context, id uint, patch SealPricingPatch) (*models.SealPricing, error) {
	var row *models.SealPricing
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		row, err = findByID[models.SealPricing](ctx, tx, id, "seal pricing")
		if err != nil {
			return err
		}

		pairChanged := false
		if patch.SealTypeID != nil || patch.SealType != nil {
			sealTypeID, err := resolveSealType(ctx, tx, patch.SealTypeID, stringValue(patch.SealType))
			if err != nil {
				return err
			}
			if sealTypeID != 0 {
				row.SealTypeID = sealTypeID
				pairChanged = true
			}
		}
		if patch.FinishID != nil || patch.Finish != nil {
			finishID, err := resolveFinish(ctx, tx, patch.FinishID, stringValue(patch.Finish))
			if err != nil {
				return err
			}
			if finishID != 0 {
				row.FinishID = finishID
				pairChanged = true
			}
		}
		if patch.UnitPrice != nil {
			if *patch.UnitPrice < 0 {
				return validationError("unit_price must be a non-negative number")
			}
			row.UnitPrice = *patch.UnitPrice
		}
		if patch.Quantity != nil {
			if *patch.Quantity < 0 {
				return validationError("quantity must not be negative")
			}
			row.Quantity = *patch.Quantity
		}

		if pairChanged {
			if err := ensureUniquePair[models.SealPricing](ctx, tx, "seal pricing",
				"seal_type_id = ? AND finish_id = ?", id, row.SealTypeID, row.FinishID); err != nil {
				return err
			}
		}
		return saveRow(ctx, tx, row, "seal pricing")
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

// DeleteSealPricing removes a seal price row
func (s *PricingService) DeleteSealPricing(ctx context.Context, id uint) error {
	return deleteByID[models.SealPricing](ctx, s.db, id, "seal pricing")
}

// resolveSealType returns the id of an existing seal type, or of the seal type named name,
// creating it when missing. Zero means neither was given.
func resolveSealType(ctx context.Context, tx *gorm.DB, id *uint, name string) (uint, error) {
	if id != nil && *id != 0 {
		if err := ensureExists[models.SealType](ctx, tx, *id, "seal type"); err != nil {
			return 0, err
		}
		return *id, nil
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, nil
	}

	st := models.SealType{Name: name}
	if err := firstOrCreate(ctx, tx, &st, "name = ?", name); err != nil {
		return 0, translateDBError(err, "seal type")
	}
	return st.ID, nil
}

// resolveFinish is resolveSealType for finishes
func resolveFinish(ctx context.Context, tx *gorm.DB, id *uint, name string) (uint, error) {
	if id != nil && *id != 0 {
		if err := ensureExists[models.Finish](ctx, tx, *id, "finish"); err != nil {
			return 0, err
		}
		return *id, nil
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, nil
	}

	finish := models.Finish{Name: name}
	if err := firstOrCreate(ctx, tx, &finish, "name = ?", name); err != nil {
		return 0, translateDBError(err, "finish")
	}
	return finish.ID, nil
}

// firstOrCreate loads the row matching query into row, inserting row as given when none matches
func firstOrCreate[T any](ctx context.Context, tx *gorm.DB, row *T, query string, args ...interface{}) error {
	return tx.WithContext(ctx).Where(query, args...).FirstOrCreate(row).Error
}

// ensureUniquePair returns a Conflict when another row of T already prices the pair
func ensureUniquePair[T any](ctx context.Context, db *gorm.DB, entity, query string, excludeID uint, args ...interface{}) error {
	q := db.WithContext(ctx).Model(new(T)).Where(query, args...)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return conflictError("DUPLICATE_ENTRY", "%s for this combination already exists", entity)
	}
	return nil
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
