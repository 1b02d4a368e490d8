package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Availability string

const (
	Available   Availability = "available"
	Unavailable Availability = "unavailable"
)

type MenuItem struct {
	ID              uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID      uint            `gorm:"index;not null" json:"category_id"`
	Category        Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Name            string          `gorm:"not null" json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Availability    Availability    `gorm:"type:VARCHAR(20);default:'available'" json:"availability"`
	IsFeatured      bool            `json:"is_featured"`
	PrepTimeMinutes int             `json:"prep_time_minutes"`
	Nutrition       string          `json:"nutrition"`
	Allergens       string          `json:"allergens"`
	ImageURL        string          `json:"image_url"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`
}
