package models

import "time"

// GlassType e.g. Clear, Frosted
type GlassType struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:128;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (GlassType) TableName() string {
	return "glass_types"
}

// GlassThickness in millimeters (6, 8, 10, ...)
type GlassThickness struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ThicknessMM int       `gorm:"column:thickness_mm;uniqueIndex;not null;check:thickness_mm > 0" json:"thickness_mm"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (GlassThickness) TableName() string {
	return "glass_thicknesses"
}

// Finish is a hardware/seal material or color (e.g., Chrome, Matte Black)
type Finish struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:128;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Finish) TableName() string {
	return "finishes"
}

// HardwareType e.g. Hinge, Handle, Wall Profile
type HardwareType struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:128;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (HardwareType) TableName() string {
	return "hardware_types"
}

// SealType e.g. Side Seal, Magnetic
type SealType struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:128;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SealType) TableName() string {
	return "seal_types"
}
