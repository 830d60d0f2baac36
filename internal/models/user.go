package models

import "gorm.io/gorm"

// User represents a registered customer of the store.
// Wire field names follow the original store contract (pt-BR).
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserName   string `json:"userName" gorm:"uniqueIndex;type:varchar(100)" validate:"required,max=100"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"`
	BirthDate  string `json:"dataNascimento" gorm:"type:varchar(10)" validate:"required,datetime=2006-01-02"`
	Phone      string `json:"telefone" gorm:"type:varchar(20)" validate:"required,e164"`
	AvatarURL  string `json:"imagemUrl,omitempty" gorm:"type:varchar(255)"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
