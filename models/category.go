package models

type Category struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string     `gorm:"unique;not null" json:"name"`
	Description string     `json:"description"`
	SortOrder   int        `json:"sort_order"`
	Items       []MenuItem `gorm:"foreignKey:CategoryID" json:"items,omitempty"`
}
