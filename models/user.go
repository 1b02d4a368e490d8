package models

import "time"

type UserRole string
type UserStatus string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"

	UserStatusActive   UserStatus = "active"   // Account in good standing
	UserStatusInactive UserStatus = "inactive" // Deactivated, login refused
)

type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"unique;not null" json:"username"`
	Email        string     `gorm:"unique;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Role         UserRole   `gorm:"type:VARCHAR(20);default:'customer'" json:"role"`
	FullName     string     `json:"full_name"`
	Phone        string     `json:"phone"`
	Address      string     `json:"address"`
	Status       UserStatus `gorm:"type:VARCHAR(20);default:'active'" json:"status"`
	Cart         Cart       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Orders       []Order    `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
