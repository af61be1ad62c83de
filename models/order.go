package models

import (
	"time"
)

// Order status constants
const (
	OrderStatusPlaced     = "Placed"
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

// Payment status constants
const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusPaid      = "PAID"
	PaymentStatusFailed    = "FAILED"
	PaymentStatusCancelled = "CANCELLED"
)

type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	UserID      uint        `json:"user_id"`
	User        User        `json:"user" gorm:"foreignKey:UserID"`
	TotalAmount float64     `json:"total_amount"`
	Status      string      `json:"status" gorm:"default:'Placed'"`
	OrderItems  []OrderItem `json:"items" gorm:"foreignKey:OrderID"`

	// Payment projection. TxnRef is assigned at most once and joins the
	// gateway's callbacks back to this order. The gateway fields below are
	// written only on the terminal transition.
	PaymentStatus string     `json:"payment_status" gorm:"default:'PENDING'"`
	TxnRef        string     `json:"txn_ref,omitempty" gorm:"index"`
	GatewayTxnID  string     `json:"gateway_txn_id,omitempty"`
	BankCode      string     `json:"bank_code,omitempty"`
	PaidAmount    float64    `json:"paid_amount,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	FailureReason string     `json:"failure_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `json:"order_id"`
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Total     float64 `json:"total"`
}
