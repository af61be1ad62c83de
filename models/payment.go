package models

import (
	"time"
)

// Callback channel constants
const (
	CallbackChannelReturn = "return"
	CallbackChannelIPN    = "ipn"
)

// PaymentCallbackLog is an append-only audit record of every callback the
// gateway delivers, whether or not it verified or changed anything.
type PaymentCallbackLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Channel      string    `json:"channel"` // return, ipn
	TxnRef       string    `gorm:"index" json:"txn_ref"`
	OrderID      uint      `json:"order_id"`
	ResponseCode string    `json:"response_code"`
	RawQuery     string    `json:"raw_query"`
	Verified     bool      `json:"verified"`
	Outcome      string    `json:"outcome"` // paid, failed, noop, rejected
	CreatedAt    time.Time `json:"created_at"`
}
