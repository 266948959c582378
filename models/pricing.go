package models

import "time"

// GlassPricing is the price per square meter of one glass type at one thickness
type GlassPricing struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	GlassTypeID uint            `gorm:"not null;uniqueIndex:idx_glass_pricing_pair" json:"glass_type_id"`
	GlassType   *GlassType      `gorm:"foreignKey:GlassTypeID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"glass_type,omitempty"`
	ThicknessID uint            `gorm:"not null;uniqueIndex:idx_glass_pricing_pair" json:"thickness_id"`
	Thickness   *GlassThickness `gorm:"foreignKey:ThicknessID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"thickness,omitempty"`
	PricePerM2  float64         `gorm:"column:price_per_m2;not null;check:price_per_m2 >= 0" json:"price_per_m2"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (GlassPricing) TableName() string {
	return "glass_pricings"
}

// HardwarePricing is the unit price of one hardware type in one finish
type HardwarePricing struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	HardwareTypeID uint          `gorm:"not null;uniqueIndex:idx_hardware_pricing_pair" json:"hardware_type_id"`
	HardwareType   *HardwareType `gorm:"foreignKey:HardwareTypeID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"hardware_type,omitempty"`
	FinishID       uint          `gorm:"not null;uniqueIndex:idx_hardware_pricing_pair" json:"finish_id"`
	Finish         *Finish       `gorm:"foreignKey:FinishID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"finish,omitempty"`
	UnitPrice      float64       `gorm:"not null;check:unit_price >= 0" json:"unit_price"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

func (HardwarePricing) TableName() string {
	return "hardware_pricings"
}

// SealPricing is the unit price of one seal type in one finish, with the default quantity
// a configuration uses
type SealPricing struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SealTypeID uint      `gorm:"not null;uniqueIndex:idx_seal_pricing_pair" json:"seal_type_id"`
	SealType   *SealType `gorm:"foreignKey:SealTypeID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"seal_type,omitempty"`
	FinishID   uint      `gorm:"not null;uniqueIndex:idx_seal_pricing_pair" json:"finish_id"`
	Finish     *Finish   `gorm:"foreignKey:FinishID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"finish,omitempty"`
	UnitPrice  float64   `gorm:"not null;check:unit_price >= 0" json:"unit_price"`
	Quantity   int       `gorm:"not null;check:quantity >= 0" json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (SealPricing) TableName() string {
	return "seal_pricings"
}
