// Package memory is the in-process Repository used for dev mode and
// tests. State lives in maps guarded by one RWMutex; every read hands
// out a copy and every write replaces whole values, so callers never
// alias the store's own collections.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ray-remotestate/pos/models"
	"github.com/ray-remotestate/pos/store"
)

type Store struct {
	mu                    sync.RWMutex
	products              map[uuid.UUID]models.Product
	inventory             map[uuid.UUID]map[uuid.UUID]models.InventoryItem // branchID -> itemID
	orders                map[uuid.UUID]models.Order
	tables                map[uuid.UUID]models.Table
	registers             map[uuid.UUID]models.CashRegister
	sessions              map[uuid.UUID]models.RegisterSession
	openSessionByRegister map[uuid.UUID]uuid.UUID
}

func New() *Store {
	return &Store{
		products:              make(map[uuid.UUID]models.Product),
		inventory:             make(map[uuid.UUID]map[uuid.UUID]models.InventoryItem),
		orders:                make(map[uuid.UUID]models.Order),
		tables:                make(map[uuid.UUID]models.Table),
		registers:             make(map[uuid.UUID]models.CashRegister),
		sessions:              make(map[uuid.UUID]models.RegisterSession),
		openSessionByRegister: make(map[uuid.UUID]uuid.UUID),
	}
}

func cloneProduct(p models.Product) models.Product {
	p.Ingredients = append([]models.Ingredient(nil), p.Ingredients...)
	p.ComboItems = append([]models.ComboItem(nil), p.ComboItems...)
	return p
}

func cloneOrder(o models.Order) models.Order {
	items := make([]models.OrderItem, len(o.Items))
	copy(items, o.Items)
	for i := range items {
		items[i].Product = cloneProduct(items[i].Product)
	}
	o.Items = items
	return o
}

func (s *Store) GetProduct(ctx context.Context, id uuid.UUID) (models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return models.Product{}, fmt.Errorf("product %s: %w", id, store.ErrNotFound)
	}
	return cloneProduct(p), nil
}

func (s *Store) UpsertProduct(ctx context.Context, p models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products[p.ID] = cloneProduct(p)
	return nil
}

func (s *Store) GetInventoryItem(ctx context.Context, branchID, itemID uuid.UUID) (models.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.inventory[branchID][itemID]
	if !ok {
		return models.InventoryItem{}, fmt.Errorf("inventory item %s: %w", itemID, store.ErrNotFound)
	}
	return item, nil
}

func (s *Store) ListInventory(ctx context.Context, branchID uuid.UUID) ([]models.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]models.InventoryItem, 0, len(s.inventory[branchID]))
	for _, item := range s.inventory[branchID] {
		items = append(items, item)
	}
	return items, nil
}

func (s *Store) UpsertInventoryItem(ctx context.Context, item models.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.upsertInventoryLocked(item)
	return nil
}

func (s *Store) upsertInventoryLocked(item models.InventoryItem) {
	branch, ok := s.inventory[item.BranchID]
	if !ok {
		branch = make(map[uuid.UUID]models.InventoryItem)
		s.inventory[item.BranchID] = branch
	}
	branch[item.ID] = item
}

func (s *Store) DeductStock(ctx context.Context, branchID uuid.UUID, qty map[uuid.UUID]float64) ([]models.InventoryItem, []uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	touched, missing := s.deductLocked(branchID, qty)
	return touched, missing, nil
}

func (s *Store) deductLocked(branchID uuid.UUID, qty map[uuid.UUID]float64) ([]models.InventoryItem, []uuid.UUID) {
	var touched []models.InventoryItem
	var missing []uuid.UUID

	branch := s.inventory[branchID]
	for itemID, amount := range qty {
		item, ok := branch[itemID]
		if !ok {
			missing = append(missing, itemID)
			continue
		}
		item.Stock -= amount
		branch[itemID] = item
		touched = append(touched, item)
	}
	return touched, missing
}

func (s *Store) CreateOrder(ctx context.Context, order models.Order, deduct map[uuid.UUID]float64) ([]models.InventoryItem, []uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.orders[order.ID]; exists {
		return nil, nil, fmt.Errorf("order %s already exists: %w", order.ID, store.ErrConflict)
	}

	touched, missing := s.deductLocked(order.BranchID, deduct)
	s.orders[order.ID] = cloneOrder(order)
	return touched, missing, nil
}

func (s *Store) GetOrder(ctx context.Context, id uuid.UUID) (models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return models.Order{}, fmt.Errorf("order %s: %w", id, store.ErrNotFound)
	}
	return cloneOrder(o), nil
}

func (s *Store) UpdateOrder(ctx context.Context, id uuid.UUID, mutate func(*models.Order) error) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return models.Order{}, fmt.Errorf("order %s: %w", id, store.ErrNotFound)
	}

	updated := cloneOrder(o)
	if err := mutate(&updated); err != nil {
		return models.Order{}, err
	}
	s.orders[id] = updated
	return cloneOrder(updated), nil
}

func (s *Store) ListOpenOrders(ctx context.Context, branchID uuid.UUID) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var open []models.Order
	for _, o := range s.orders {
		if o.BranchID == branchID && o.IsOpen() {
			open = append(open, cloneOrder(o))
		}
	}
	return open, nil
}

func (s *Store) ListOpenOrdersByTable(ctx context.Context, tableID uuid.UUID) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var open []models.Order
	for _, o := range s.orders {
		if o.TableID != nil && *o.TableID == tableID && o.IsOpen() {
			open = append(open, cloneOrder(o))
		}
	}
	return open, nil
}

func (s *Store) SettleTable(ctx context.Context, tableID uuid.UUID, paymentMethod string) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var completed []models.Order
	for id, o := range s.orders {
		if o.TableID == nil || *o.TableID != tableID || !o.IsOpen() {
			continue
		}
		updated := cloneOrder(o)
		updated.Status = models.StatusCompleted
		pm := paymentMethod
		updated.PaymentMethod = &pm
		s.orders[id] = updated
		completed = append(completed, cloneOrder(updated))
	}

	if t, ok := s.tables[tableID]; ok {
		t.Status = models.TableAvailable
		t.CurrentOrderID = nil
		s.tables[tableID] = t
	}
	return completed, nil
}

func (s *Store) GetTable(ctx context.Context, id uuid.UUID) (models.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tables[id]
	if !ok {
		return models.Table{}, fmt.Errorf("table %s: %w", id, store.ErrNotFound)
	}
	return t, nil
}

func (s *Store) UpsertTable(ctx context.Context, t models.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tables[t.ID] = t
	return nil
}

func (s *Store) UpdateTable(ctx context.Context, id uuid.UUID, mutate func(*models.Table) error) (models.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tables[id]
	if !ok {
		return models.Table{}, fmt.Errorf("table %s: %w", id, store.ErrNotFound)
	}
	if err := mutate(&t); err != nil {
		return models.Table{}, err
	}
	s.tables[id] = t
	return t, nil
}

func (s *Store) GetRegister(ctx context.Context, id uuid.UUID) (models.CashRegister, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.registers[id]
	if !ok {
		return models.CashRegister{}, fmt.Errorf("register %s: %w", id, store.ErrNotFound)
	}
	return r, nil
}

func (s *Store) UpsertRegister(ctx context.Context, r models.CashRegister) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.registers[r.ID] = r
	return nil
}

func (s *Store) OpenSession(ctx context.Context, sess models.RegisterSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, open := s.openSessionByRegister[sess.RegisterID]; open {
		return fmt.Errorf("register %s already has an open session: %w", sess.RegisterID, store.ErrConflict)
	}

	s.sessions[sess.ID] = sess
	s.openSessionByRegister[sess.RegisterID] = sess.ID
	if r, ok := s.registers[sess.RegisterID]; ok {
		r.IsOpen = true
		s.registers[sess.RegisterID] = r
	}
	return nil
}

func (s *Store) CurrentSession(ctx context.Context, registerID uuid.UUID) (models.RegisterSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessID, open := s.openSessionByRegister[registerID]
	if !open {
		return models.RegisterSession{}, fmt.Errorf("no open session for register %s: %w", registerID, store.ErrNotFound)
	}
	return s.sessions[sessID], nil
}

func (s *Store) UpdateSession(ctx context.Context, id uuid.UUID, mutate func(*models.RegisterSession) error) (models.RegisterSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.updateSessionLocked(id, mutate)
}

func (s *Store) updateSessionLocked(id uuid.UUID, mutate func(*models.RegisterSession) error) (models.RegisterSession, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return models.RegisterSession{}, fmt.Errorf("session %s: %w", id, store.ErrNotFound)
	}
	if err := mutate(&sess); err != nil {
		return models.RegisterSession{}, err
	}
	s.sessions[id] = sess
	return sess, nil
}

func (s *Store) CloseSession(ctx context.Context, id uuid.UUID, mutate func(*models.RegisterSession) error) (models.RegisterSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.updateSessionLocked(id, mutate)
	if err != nil {
		return models.RegisterSession{}, err
	}

	delete(s.openSessionByRegister, sess.RegisterID)
	if r, ok := s.registers[sess.RegisterID]; ok {
		r.IsOpen = false
		s.registers[sess.RegisterID] = r
	}
	return sess, nil
}

// compile-time interface check
var _ store.Repository = (*Store)(nil)
