package model

const DefaultCategoryColor = "#3B82F6"

type Category struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required,max=100"`
	Description string `gorm:"type:text" json:"description"`
	Color       string `gorm:"type:varchar(20);not null" json:"color" validate:"required,max=20"`
}
