package models

import "time"

// CartItem represents a product added to a user's cart.
// Price is the unit price captured at the time the item was added.
type CartItem struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserName  string    `json:"userName" gorm:"index;type:varchar(100)"`
	ProductID string    `json:"productId" gorm:"type:varchar(36)"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
