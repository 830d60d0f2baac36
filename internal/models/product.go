package models

import "gorm.io/gorm"

// Product represents a game listed in the store catalog.
// Seeded out of band; this service only reads products.
type Product struct {
	ID         string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name       string  `json:"productName" gorm:"type:varchar(100)" validate:"required,min=3,max=100"`
	OldPrice   float64 `json:"oldPrice" validate:"omitempty,gt=0"`
	Price      float64 `json:"price" validate:"required,gt=0"`
	Platform   string  `json:"plataform" gorm:"type:varchar(50)" validate:"required"`
	ImageURL   string  `json:"imagemUrl" gorm:"type:varchar(255)"`
	gorm.Model         // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
