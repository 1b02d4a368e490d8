package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string
type PaymentStatus string

const (
	// Order statuses (kitchen fulfilment flow)
	OrderStatusPending   OrderStatus = "pending"   // Order created, awaiting checkout confirmation
	OrderStatusConfirmed OrderStatus = "confirmed" // Accepted, queued for the kitchen
	OrderStatusPreparing OrderStatus = "preparing" // Being cooked
	OrderStatusReady     OrderStatus = "ready"     // Ready for pickup/delivery
	OrderStatusDelivered OrderStatus = "delivered" // Customer received the order
	OrderStatusCancelled OrderStatus = "cancelled" // Cancelled before preparation

	// Payment statuses
	PaymentStatusPending  PaymentStatus = "pending"  // Payment not completed yet
	PaymentStatusPaid     PaymentStatus = "paid"     // Payment settled
	PaymentStatusFailed   PaymentStatus = "failed"   // Payment attempt failed
	PaymentStatusRefunded PaymentStatus = "refunded" // Money returned to customer

	// Payment methods
	PaymentMethodCash   = "cash"   // Cash on delivery
	PaymentMethodOnline = "online" // Settled during checkout
)

type Order struct {
	ID              uint                 `gorm:"primaryKey" json:"id"`
	OrderRef        string               `gorm:"unique;not null" json:"order_ref"`
	UserID          uint                 `gorm:"index;not null" json:"user_id"`
	User            User                 `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items           []OrderItem          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	History         []OrderStatusHistory `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"history,omitempty"`
	Subtotal        decimal.Decimal      `gorm:"type:decimal(10,2)" json:"subtotal"`
	DeliveryFee     decimal.Decimal      `gorm:"type:decimal(10,2)" json:"delivery_fee"`
	Tax             decimal.Decimal      `gorm:"type:decimal(10,2)" json:"tax"`
	TotalAmount     decimal.Decimal      `gorm:"type:decimal(10,2)" json:"total_amount"`
	DeliveryAddress string               `gorm:"not null" json:"delivery_address"`
	Phone           string               `gorm:"not null" json:"phone"`
	Notes           string               `json:"notes"`
	PaymentMethod   string               `gorm:"type:VARCHAR(20)" json:"payment_method"`
	Status          OrderStatus          `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	PaymentStatus   PaymentStatus        `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// OrderItem snapshots name and price at order time; later menu edits
// never touch these columns.
type OrderItem struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	OrderID    uint            `gorm:"index" json:"order_id"`
	MenuItemID uint            `json:"menu_item_id"`
	ItemName   string          `json:"item_name"`
	ItemPrice  decimal.Decimal `gorm:"type:decimal(10,2)" json:"item_price"`
	Quantity   int             `json:"quantity"`
}

// OrderStatusHistory is the append-only audit trail. A nil Status marks a
// payment-only event: informational, no order-status change implied.
type OrderStatusHistory struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	OrderID   uint         `gorm:"index;not null" json:"order_id"`
	Status    *OrderStatus `gorm:"type:VARCHAR(20)" json:"status"`
	Note      string       `json:"note"`
	ChangedBy *uint        `json:"changed_by"`
	CreatedAt time.Time    `json:"created_at"`
}
