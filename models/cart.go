package models

import "time"

type Cart struct {
	CartID    uint       `gorm:"primaryKey" json:"cart_id"`
	UserID    uint       `gorm:"uniqueIndex" json:"user_id"` // Enforces ONE cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type CartItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CartID     uint      `gorm:"index" json:"cart_id"`
	MenuItemID uint      `json:"menu_item_id"`
	ItemName   string    `json:"item_name"`
	ItemImage  string    `json:"item_image"`
	Quantity   int       `json:"quantity"`
	AddedAt    time.Time `json:"added_at"`
}
