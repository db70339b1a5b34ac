package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	Name       string          `gorm:"type:varchar(255);not null;index" json:"name" validate:"required,max=255"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price" validate:"gt=0"`
	Barcode    *string         `gorm:"type:varchar(100);uniqueIndex" json:"barcode"` // NULL when absent so the unique index allows many
	CategoryID *uuid.UUID      `gorm:"type:varchar(36);index" json:"category_id"`
	Category   *Category       `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category,omitempty" validate:"-"`
	Stock      int             `gorm:"not null;default:0" json:"stock" validate:"gte=0"`
}
