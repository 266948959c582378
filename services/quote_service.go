package services

import (
	"context"
	"fmt"

	"github.com/kendall-kelly/shower-configurator-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Quote line kinds
const (
	LineGlass    = "glass"
	LineHardware = "hardware"
	LineSeal     = "seal"
	LineAddon    = "addon"
)

// QuoteService prices a model's bill of materials
type QuoteService struct {
	catalog *CatalogService
	pricing *PricingService
}

// NewQuoteService creates a quote service backed by db
func NewQuoteService(db *gorm.DB) *QuoteService {
	return &QuoteService{
		catalog: NewCatalogService(db),
		pricing: NewPricingService(db),
	}
}

// QuoteLine is one priced entry of a quote
type QuoteLine struct {
	Kind        string          `json:"kind"`
	RefID       uint            `json:"ref_id"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// Quote is the priced bill of materials of one model
type Quote struct {
	ModelID          uint            `json:"model_id"`
	ModelName        string          `json:"model_name"`
	ShowerType       string          `json:"shower_type"`
	Lines            []QuoteLine     `json:"lines"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	ProfitMargin     float64         `json:"profit_margin"`
	MarginAmount     decimal.Decimal `json:"margin_amount"`
	VATRate          float64         `json:"vat_rate"`
	VATAmount        decimal.Decimal `json:"vat_amount"`
	Total            decimal.Decimal `json:"total"`
	NeedsCustomQuote bool            `json:"needs_custom_quote"`
}

// QuoteModel prices every component of a model plus the selected addons. The subtotal is
// marked up by the shower type's profit margin and VAT is applied on top. Any component
// without a price fails the whole quote.
func (s *QuoteService) QuoteModel(ctx context.Context, modelID uint, addonIDs []uint) (*Quote, error) {
	m, err := s.catalog.GetModel(ctx, modelID)
	if err != nil {
		return nil, err
	}
	if m.ShowerType == nil {
		return nil, notFoundError("shower type")
	}

	lines := make([]QuoteLine, 0, len(m.GlassComponents)+len(m.HardwareComponents)+len(m.SealComponents)+len(addonIDs))

	for _, c := range m.GlassComponents {
		price, err := s.pricing.PriceForGlass(ctx, c.GlassTypeID, c.ThicknessID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, newQuoteLine(LineGlass, c.ID, glassLabel(c), c.Quantity, price))
	}
	for _, c := range m.HardwareComponents {
		price, err := s.pricing.PriceForHardware(ctx, c.HardwareTypeID, c.FinishID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, newQuoteLine(LineHardware, c.ID, hardwareLabel(c), c.Quantity, price))
	}
	for _, c := range m.SealComponents {
		price, _, err := s.pricing.PriceForSeal(ctx, c.SealTypeID, c.FinishID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, newQuoteLine(LineSeal, c.ID, sealLabel(c), c.Quantity, price))
	}

	addons, err := s.selectedAddons(ctx, m.ID, addonIDs)
	if err != nil {
		return nil, err
	}
	for _, a := range addons {
		lines = append(lines, newQuoteLine(LineAddon, a.ID, a.Name, 1, a.Price))
	}

	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Total)
	}

	st := m.ShowerType
	margin := subtotal.Mul(decimal.NewFromFloat(st.ProfitMargin)).Round(2)
	vat := subtotal.Add(margin).Mul(decimal.NewFromFloat(st.VATRate)).Round(2)

	return &Quote{
		ModelID:          m.ID,
		ModelName:        m.Name,
		ShowerType:       st.Name,
		Lines:            lines,
		Subtotal:         subtotal.Round(2),
		ProfitMargin:     st.ProfitMargin,
		MarginAmount:     margin,
		VATRate:          st.VATRate,
		VATAmount:        vat,
		Total:            subtotal.Add(margin).Add(vat).Round(2),
		NeedsCustomQuote: st.NeedsCustomQuote,
	}, nil
}

// selectedAddons loads the requested addons once each, in request order.
// An addon attached to another model cannot be quoted with this one.
func (s *QuoteService) selectedAddons(ctx context.Context, modelID uint, ids []uint) ([]models.Addon, error) {
	seen := make(map[uint]bool, len(ids))
	out := make([]models.Addon, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		addon, err := s.catalog.GetAddon(ctx, id)
		if err != nil {
			return nil, err
		}
		if addon.ModelID != nil && *addon.ModelID != modelID {
			return nil, validationError("addon %d is not available for model %d", id, modelID)
		}
		out = append(out, *addon)
	}
	return out, nil
}

func newQuoteLine(kind string, refID uint, description string, qty int, unitPrice float64) QuoteLine {
	price := decimal.NewFromFloat(unitPrice)
	return QuoteLine{
		Kind:        kind,
		RefID:       refID,
		Description: description,
		Quantity:    qty,
		UnitPrice:   price.Round(2),
		Total:       price.Mul(decimal.NewFromInt(int64(qty))).Round(2),
	}
}

func glassLabel(c models.ModelGlassComponent) string {
	if c.GlassType == nil || c.Thickness == nil {
		return "glass"
	}
	return fmt.Sprintf("%s glass %dmm", c.GlassType.Name, c.Thickness.ThicknessMM)
}

func hardwareLabel(c models.ModelHardwareComponent) string {
	if c.HardwareType == nil || c.Finish == nil {
		return "hardware"
	}
	return fmt.Sprintf("%s (%s)", c.HardwareType.Name, c.Finish.Name)
}

func sealLabel(c models.ModelSealComponent) string {
	if c.SealType == nil || c.Finish == nil {
		return "seal"
	}
	return fmt.Sprintf("%s (%s)", c.SealType.Name, c.Finish.Name)
}
