package store

import (
	"errors"

	"github.com/minhle-dev/ShopSphere/gateway"
	"github.com/minhle-dev/ShopSphere/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderStore is the GORM-backed order persistence behind the payment core.
// Both mutating methods run inside a transaction holding a FOR UPDATE lock
// on the order row, so concurrent callbacks or allocation attempts for the
// same order serialize on the database and exactly one writer wins.
type OrderStore struct {
	db *gorm.DB
}

var _ gateway.OrderStore = (*OrderStore)(nil)

func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{db: db}
}

// AllocateTxnRef assigns candidate as the order's transaction reference
// unless one is already persisted, and returns the winning reference.
func (s *OrderStore) AllocateTxnRef(orderID uint, candidate string) (string, error) {
	var ref string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return gateway.ErrOrderNotFound
			}
			return err
		}
		if order.TxnRef != "" {
			ref = order.TxnRef
			return nil
		}
		if err := tx.Model(&order).Update("txn_ref", candidate).Error; err != nil {
			return err
		}
		ref = candidate
		return nil
	})
	if err != nil {
		return "", err
	}
	return ref, nil
}

// ApplyCallback locks the order row for txnRef, hands it to apply, and saves
// the order when apply reports a mutation.
func (s *OrderStore) ApplyCallback(txnRef string, apply func(o *models.Order) bool) (*models.Order, error) {
	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("txn_ref = ?", txnRef).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return gateway.ErrOrderNotFound
			}
			return err
		}
		if !apply(&order) {
			return nil
		}
		return tx.Omit(clause.Associations).Save(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}
