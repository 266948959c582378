package models

import "time"

// ShowerType represents a family of enclosures (e.g., Corner Shower, Bathtub Screen).
// ProfitMargin and VATRate are fractions, not percentages.
type ShowerType struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Name             string    `gorm:"size:128;uniqueIndex;not null" json:"name"`
	Description      string    `gorm:"type:text" json:"description"`
	ProfitMargin     float64   `gorm:"not null" json:"profit_margin"`
	VATRate          float64   `gorm:"column:vat_rate;not null" json:"vat_rate"`
	NeedsCustomQuote bool      `gorm:"not null" json:"needs_custom_quote"`
	ImagePath        *string   `json:"image_path"` // nullable, reference returned by image ingest
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TableName specifies the table name for the ShowerType model
func (ShowerType) TableName() string {
	return "shower_types"
}

// Model represents a purchasable enclosure configuration belonging to one ShowerType
type Model struct {
	ID                 uint                     `gorm:"primaryKey" json:"id"`
	Name               string                   `gorm:"not null" json:"name"`
	Description        string                   `gorm:"type:text" json:"description"`
	ImagePath          *string                  `json:"image_path"`
	ShowerTypeID       uint                     `gorm:"not null;index" json:"shower_type_id"`
	ShowerType         *ShowerType              `gorm:"foreignKey:ShowerTypeID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"shower_type,omitempty"`
	GlassComponents    []ModelGlassComponent    `gorm:"foreignKey:ModelID" json:"glass_components"`
	HardwareComponents []ModelHardwareComponent `gorm:"foreignKey:ModelID" json:"hardware_components"`
	SealComponents     []ModelSealComponent     `gorm:"foreignKey:ModelID" json:"seal_components"`
	Addons             []Addon                  `gorm:"foreignKey:ModelID" json:"addons"`
	CreatedAt          time.Time                `json:"created_at"`
	UpdatedAt          time.Time                `json:"updated_at"`
}

// TableName specifies the table name for the Model model
func (Model) TableName() string {
	return "models"
}

// Addon represents an optional upgrade. A nil ModelID makes it available to every model.
type Addon struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Price     float64   `gorm:"not null;check:price >= 0" json:"price"`
	ModelID   *uint     `gorm:"index" json:"model_id"`
	Model     *Model    `gorm:"foreignKey:ModelID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Addon model
func (Addon) TableName() string {
	return "addons"
}

// GalleryImage is a showcase picture, independent of the catalog
type GalleryImage struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ImagePath   string    `gorm:"not null" json:"image_path"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for the GalleryImage model
func (GalleryImage) TableName() string {
	return "gallery_images"
}
