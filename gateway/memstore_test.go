package gateway

import (
	"sync"

	"github.com/minhle-dev/ShopSphere/models"
)

// memStore is an in-memory OrderStore for exercising the builder and the
// processor without a database. The mutex stands in for the row lock the
// real store takes.
type memStore struct {
	mu     sync.Mutex
	orders map[uint]*models.Order
}

func newMemStore(orders ...*models.Order) *memStore {
	m := &memStore{orders: make(map[uint]*models.Order)}
	for _, o := range orders {
		m.orders[o.ID] = o
	}
	return m
}

func (m *memStore) AllocateTxnRef(orderID uint, candidate string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[orderID]
	if !ok {
		return "", ErrOrderNotFound
	}
	if order.TxnRef != "" {
		return order.TxnRef, nil
	}
	order.TxnRef = candidate
	return candidate, nil
}

func (m *memStore) ApplyCallback(txnRef string, apply func(o *models.Order) bool) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, order := range m.orders {
		if order.TxnRef == txnRef {
			apply(order)
			snapshot := *order
			return &snapshot, nil
		}
	}
	return nil, ErrOrderNotFound
}

func (m *memStore) order(orderID uint) *models.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.orders[orderID]
}
