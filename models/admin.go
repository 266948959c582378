package models

import "time"

// Admin holds the credentials of a catalog administrator
type Admin struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:80;uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"` // bcrypt hash, never serialized
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Admin model
func (Admin) TableName() string {
	return "admins"
}

// All returns every model of the schema, in dependency order, for migration
func All() []interface{} {
	return []interface{}{
		&Admin{},
		&ShowerType{},
		&GlassType{},
		&GlassThickness{},
		&Finish{},
		&HardwareType{},
		&SealType{},
		&Model{},
		&GlassPricing{},
		&HardwarePricing{},
		&SealPricing{},
		&ModelGlassComponent{},
		&ModelHardwareComponent{},
		&ModelSealComponent{},
		&Addon{},
		&GalleryImage{},
	}
}
