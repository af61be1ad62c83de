package gateway

import (
	"github.com/minhle-dev/ShopSphere/models"
)

// OrderStore is the persistence boundary the payment core reads and mutates
// orders through. Implementations must make both methods atomic with respect
// to the order row: when two requests race on the same order, exactly one
// writer wins and the other observes the winner's committed state.
type OrderStore interface {
	// AllocateTxnRef persists candidate as the order's transaction reference
	// unless one is already set, and returns whichever reference won.
	// Returns ErrOrderNotFound when the order does not exist.
	AllocateTxnRef(orderID uint, candidate string) (string, error)

	// ApplyCallback loads the order carrying txnRef under a row lock, calls
	// apply on it, and persists the mutation when apply reports true. The
	// callback always sees the freshest committed state, so a status check
	// inside apply cannot interleave with another writer. Returns
	// ErrOrderNotFound when no order carries txnRef.
	ApplyCallback(txnRef string, apply func(o *models.Order) bool) (*models.Order, error)
}
