package models

import "time"

// ModelGlassComponent is one glass panel specification of a model
type ModelGlassComponent struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	ModelID     uint            `gorm:"not null;index" json:"model_id"`
	Model       *Model          `gorm:"foreignKey:ModelID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	GlassTypeID uint            `gorm:"not null;index" json:"glass_type_id"`
	GlassType   *GlassType      `gorm:"foreignKey:GlassTypeID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"glass_type,omitempty"`
	ThicknessID uint            `gorm:"not null;index" json:"thickness_id"`
	Thickness   *GlassThickness `gorm:"foreignKey:ThicknessID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"thickness,omitempty"`
	Quantity    int             `gorm:"not null;check:quantity >= 0" json:"quantity"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (ModelGlassComponent) TableName() string {
	return "model_glass_components"
}

// ModelHardwareComponent is one hardware item (hinge, handle, ...) of a model
type ModelHardwareComponent struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	ModelID        uint          `gorm:"not null;index" json:"model_id"`
	Model          *Model        `gorm:"foreignKey:ModelID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	HardwareTypeID uint          `gorm:"not null;index" json:"hardware_type_id"`
	HardwareType   *HardwareType `gorm:"foreignKey:HardwareTypeID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"hardware_type,omitempty"`
	FinishID       uint          `gorm:"not null;index" json:"finish_id"`
	Finish         *Finish       `gorm:"foreignKey:FinishID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"finish,omitempty"`
	Quantity       int           `gorm:"not null;check:quantity >= 0" json:"quantity"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

func (ModelHardwareComponent) TableName() string {
	return "model_hardware_components"
}

// ModelSealComponent is one seal of a model
type ModelSealComponent struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ModelID    uint      `gorm:"not null;index" json:"model_id"`
	Model      *Model    `gorm:"foreignKey:ModelID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	SealTypeID uint      `gorm:"not null;index" json:"seal_type_id"`
	SealType   *SealType `gorm:"foreignKey:SealTypeID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"seal_type,omitempty"`
	FinishID   uint      `gorm:"not null;index" json:"finish_id"`
	Finish     *Finish   `gorm:"foreignKey:FinishID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"finish,omitempty"`
	Quantity   int       `gorm:"not null;check:quantity >= 0" json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (ModelSealComponent) TableName() string {
	return "model_seal_components"
}
