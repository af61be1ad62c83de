package gateway

import (
	"fmt"
	"time"
)

// NewTxnRef synthesizes the external transaction reference for an order: a
// date stamp plus the zero-padded order id. Uniqueness comes from the order
// id alone; the date stamp just keeps references readable in the gateway's
// merchant portal. Allocation is once per order, so reissuing a payment link
// on a later day still reuses the originally persisted reference.
func NewTxnRef(now time.Time, orderID uint) string {
	return fmt.Sprintf("%s%08d", now.Format("20060102"), orderID)
}
