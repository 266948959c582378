package services

import (
	"context"

	"github.com/kendall-kelly/shower-configurator-api/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Catalog reference data loaded by Seed
var (
	SeedShowerTypes   = []string{"Demo ShowerType", "Corner Shower", "Frontal Shower", "Bathtub Screen", "CNC-Cut Shower"}
	SeedGlassTypes    = []string{"Clear", "Frosted", "Tempered", "Tinted"}
	SeedThicknesses   = []int{6, 8, 10, 12}
	SeedFinishes      = []string{"Chrome", "Brushed Nickel", "Matte Black", "Gold", "Black", "Nickel", "White", "Rose Gold", "Graphite", "Transparent", "Grey", "Beige"}
	SeedHardwareTypes = []string{"Hinge", "Handle", "Knob", "Channel", "Hardware Type 1", "Hardware Type 2", "Hardware Type 3"}
	SeedSealTypes     = []string{"Straight Seal", "Angled Seal", "Bottom Seal", "Gasket Type 1", "Gasket Type 2", "Gasket Type 3", "Magnet"}
)

// hardware price matrix: rows follow hardwarePriceTypes, columns hardwarePriceFinishes
var (
	hardwarePriceTypes    = []string{"Hardware Type 1", "Hardware Type 2", "Hardware Type 3"}
	hardwarePriceFinishes = []string{"Black", "Gold", "Nickel", "White", "Rose Gold", "Graphite", "Chrome"}
	hardwarePrices        = [][]float64{
		{80, 86, 79, 111, 82, 84, 79},
		{111, 61, 117, 107, 91, 72, 75},
		{95, 110, 59, 56, 69, 56, 109},
	}
)

// seal prices start at these values per finish and rise by 2 per seal type
var sealBasePrices = map[string]float64{"Black": 12, "Transparent": 10}

const (
	demoShowerType = "Demo ShowerType"
	demoModel      = "Demo Model 1"
)

// Seeder loads the reference catalog
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a seeder backed by db
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Seed inserts every missing reference row in one transaction. Existing rows are left
// untouched, so seeding twice yields the same rows.
func (s *Seeder) Seed(ctx context.Context) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		showerTypes, err := seedByName(ctx, tx, SeedShowerTypes, func(name string) *models.ShowerType {
			st := &models.ShowerType{
				Name:         name,
				ProfitMargin: DefaultProfitMargin,
				VATRate:      DefaultVATRate,
			}
			if name == demoShowerType {
				image := "demo_showertype.jpg"
				st.Description = "A demo shower type for testing"
				st.ImagePath = &image
			}
			return st
		}, func(st *models.ShowerType) uint { return st.ID })
		if err != nil {
			return err
		}

		glassTypes, err := seedByName(ctx, tx, SeedGlassTypes, func(name string) *models.GlassType {
			return &models.GlassType{Name: name}
		}, func(g *models.GlassType) uint { return g.ID })
		if err != nil {
			return err
		}

		finishes, err := seedByName(ctx, tx, SeedFinishes, func(name string) *models.Finish {
			return &models.Finish{Name: name}
		}, func(f *models.Finish) uint { return f.ID })
		if err != nil {
			return err
		}

		hardwareTypes, err := seedByName(ctx, tx, SeedHardwareTypes, func(name string) *models.HardwareType {
			return &models.HardwareType{Name: name}
		}, func(h *models.HardwareType) uint { return h.ID })
		if err != nil {
			return err
		}

		sealTypes, err := seedByName(ctx, tx, SeedSealTypes, func(name string) *models.SealType {
			return &models.SealType{Name: name}
		}, func(st *models.SealType) uint { return st.ID })
		if err != nil {
			return err
		}

		thicknesses := make(map[int]uint, len(SeedThicknesses))
		for _, mm := range SeedThicknesses {
			row := &models.GlassThickness{ThicknessMM: mm}
			if err := firstOrCreate(ctx, tx, row, "thickness_mm = ?", mm); err != nil {
				return err
			}
			thicknesses[mm] = row.ID
		}

		if err := seedGlassPricing(ctx, tx, glassTypes, thicknesses); err != nil {
			return err
		}
		if err := seedHardwarePricing(ctx, tx, hardwareTypes, finishes); err != nil {
			return err
		}
		if err := seedSealPricing(ctx, tx, sealTypes, finishes); err != nil {
			return err
		}

		return seedDemoModel(ctx, tx, showerTypes[demoShowerType],
			glassTypes["Clear"], thicknesses[6],
			hardwareTypes["Hardware Type 1"], finishes["Chrome"],
			sealTypes["Straight Seal"], finishes["Black"])
	})
	if err != nil {
		zap.L().Error("Seeding failed", zap.Error(err))
		return err
	}

	zap.L().Info("Catalog seeded")
	return nil
}

// glass price per m2 is 100, plus 10 per glass type step and 5 per thickness step
func seedGlassPricing(ctx context.Context, tx *gorm.DB, glassTypes map[string]uint, thicknesses map[int]uint) error {
	for i, name := range SeedGlassTypes {
		for j, mm := range SeedThicknesses {
			row := &models.GlassPricing{
				GlassTypeID: glassTypes[name],
				ThicknessID: thicknesses[mm],
				PricePerM2:  float64(100 + i*10 + j*5),
			}
			if err := firstOrCreate(ctx, tx, row, "glass_type_id = ? AND thickness_id = ?", row.GlassTypeID, row.ThicknessID); err != nil {
				return err
			}
		}
	}
	return nil
}

func seedHardwarePricing(ctx context.Context, tx *gorm.DB, hardwareTypes, finishes map[string]uint) error {
	for i, hw := range hardwarePriceTypes {
		for j, finish := range hardwarePriceFinishes {
			row := &models.HardwarePricing{
				HardwareTypeID: hardwareTypes[hw],
				FinishID:       finishes[finish],
				UnitPrice:      hardwarePrices[i][j],
			}
			if err := firstOrCreate(ctx, tx, row, "hardware_type_id = ? AND finish_id = ?", row.HardwareTypeID, row.FinishID); err != nil {
				return err
			}
		}
	}
	return nil
}

func seedSealPricing(ctx context.Context, tx *gorm.DB, sealTypes, finishes map[string]uint) error {
	for _, finish := range []string{"Black", "Transparent"} {
		for i, seal := range SeedSealTypes {
			row := &models.SealPricing{
				SealTypeID: sealTypes[seal],
				FinishID:   finishes[finish],
				UnitPrice:  sealBasePrices[finish] + float64(i*2),
				Quantity:   1,
			}
			if err := firstOrCreate(ctx, tx, row, "seal_type_id = ? AND finish_id = ?", row.SealTypeID, row.FinishID); err != nil {
				return err
			}
		}
	}
	return nil
}

// seedDemoModel creates a fully priced demo model; components are only added to a model that has none
func seedDemoModel(ctx context.Context, tx *gorm.DB, showerTypeID, glassTypeID, thicknessID, hardwareTypeID, hardwareFinishID, sealTypeID, sealFinishID uint) error {
	image := "demo_model_1.jpg"
	model := &models.Model{
		Name:         demoModel,
		Description:  "A sample model for testing",
		ImagePath:    &image,
		ShowerTypeID: showerTypeID,
	}
	if err := firstOrCreate(ctx, tx, model, "name = ?", demoModel); err != nil {
		return err
	}

	if n, err := countWhere[models.ModelGlassComponent](ctx, tx, "model_id = ?", model.ID); err != nil {
		return err
	} else if n == 0 {
		comp := &models.ModelGlassComponent{ModelID: model.ID, GlassTypeID: glassTypeID, ThicknessID: thicknessID, Quantity: 2}
		if err := createRow(ctx, tx, comp, "glass component"); err != nil {
			return err
		}
	}

	if n, err := countWhere[models.ModelHardwareComponent](ctx, tx, "model_id = ?", model.ID); err != nil {
		return err
	} else if n == 0 {
		comp := &models.ModelHardwareComponent{ModelID: model.ID, HardwareTypeID: hardwareTypeID, FinishID: hardwareFinishID, Quantity: 3}
		if err := createRow(ctx, tx, comp, "hardware component"); err != nil {
			return err
		}
	}

	if n, err := countWhere[models.ModelSealComponent](ctx, tx, "model_id = ?", model.ID); err != nil {
		return err
	} else if n == 0 {
		comp := &models.ModelSealComponent{ModelID: model.ID, SealTypeID: sealTypeID, FinishID: sealFinishID, Quantity: 4}
		if err := createRow(ctx, tx, comp, "seal component"); err != nil {
			return err
		}
	}
	return nil
}

// seedByName get-or-creates one row per name and returns their ids keyed by name
func seedByName[T any](ctx context.Context, tx *gorm.DB, names []string, build func(name string) *T, id func(*T) uint) (map[string]uint, error) {
	ids := make(map[string]uint, len(names))
	for _, name := range names {
		row := build(name)
		if err := firstOrCreate(ctx, tx, row, "name = ?", name); err != nil {
			return nil, err
		}
		ids[name] = id(row)
	}
	return ids, nil
}
