package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"bazaar/domain"
	"bazaar/models"

	"github.com/google/uuid"
)

// MemoryStore is a mutex-guarded map-backed Store. It backs the test
// suite and local runs without a database. Transact applies fn to a
// cloned state and adopts it only on success, so a failed multi-step
// write leaves nothing behind.
type MemoryStore struct {
	mu    sync.Mutex
	state *memState
}

type memState struct {
	users      map[uuid.UUID]models.User
	vendors    map[uuid.UUID]models.Vendor
	products   map[uuid.UUID]models.Product
	orders     map[uint]models.Order
	orderItems map[uint]models.OrderItem

	orderIDIdx  map[string]uint
	nextOrderID uint
	nextItemID  uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: &memState{
		users:       make(map[uuid.UUID]models.User),
		vendors:     make(map[uuid.UUID]models.Vendor),
		products:    make(map[uuid.UUID]models.Product),
		orders:      make(map[uint]models.Order),
		orderItems:  make(map[uint]models.OrderItem),
		orderIDIdx:  make(map[string]uint),
		nextOrderID: 1,
		nextItemID:  1,
	}}
}

func (st *memState) clone() *memState {
	c := &memState{
		users:       make(map[uuid.UUID]models.User, len(st.users)),
		vendors:     make(map[uuid.UUID]models.Vendor, len(st.vendors)),
		products:    make(map[uuid.UUID]models.Product, len(st.products)),
		orders:      make(map[uint]models.Order, len(st.orders)),
		orderItems:  make(map[uint]models.OrderItem, len(st.orderItems)),
		orderIDIdx:  make(map[string]uint, len(st.orderIDIdx)),
		nextOrderID: st.nextOrderID,
		nextItemID:  st.nextItemID,
	}
	for k, v := range st.users {
		c.users[k] = v
	}
	for k, v := range st.vendors {
		c.vendors[k] = v
	}
	for k, v := range st.products {
		c.products[k] = v
	}
	for k, v := range st.orders {
		c.orders[k] = v
	}
	for k, v := range st.orderItems {
		c.orderItems[k] = v
	}
	for k, v := range st.orderIDIdx {
		c.orderIDIdx[k] = v
	}
	return c
}

func (s *MemoryStore) Users() UserStore           { return &memUserStore{s} }
func (s *MemoryStore) Vendors() VendorStore       { return &memVendorStore{s} }
func (s *MemoryStore) Products() ProductStore     { return &memProductStore{s} }
func (s *MemoryStore) Orders() OrderStore         { return &memOrderStore{s} }
func (s *MemoryStore) OrderItems() OrderItemStore { return &memOrderItemStore{s} }

func (s *MemoryStore) Transact(ctx context.Context, fn func(Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	scratch := &MemoryStore{state: s.state.clone()}
	if err := fn(scratch); err != nil {
		return err
	}
	s.state = scratch.state
	return nil
}

type memUserStore struct{ s *MemoryStore }

func (m *memUserStore) Create(ctx context.Context, user *models.User) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, u := range m.s.state.users {
		if u.Email == user.Email {
			return domain.ErrConflict
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	m.s.state.users[user.ID] = *user
	return nil
}

func (m *memUserStore) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if u, ok := m.s.state.users[id]; ok {
		return &u, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, u := range m.s.state.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

type memVendorStore struct{ s *MemoryStore }

func (m *memVendorStore) Create(ctx context.Context, vendor *models.Vendor) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, v := range m.s.state.vendors {
		if v.Email == vendor.Email {
			return domain.ErrConflict
		}
	}
	if vendor.ID == uuid.Nil {
		vendor.ID = uuid.New()
	}
	if vendor.CreatedAt.IsZero() {
		vendor.CreatedAt = time.Now()
	}
	m.s.state.vendors[vendor.ID] = *vendor
	return nil
}

func (m *memVendorStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if v, ok := m.s.state.vendors[id]; ok {
		return &v, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memVendorStore) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Vendor, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, v := range m.s.state.vendors {
		if v.UserID == userID {
			v := v
			return &v, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memVendorStore) FindByEmail(ctx context.Context, email string) (*models.Vendor, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, v := range m.s.state.vendors {
		if v.Email == email {
			v := v
			return &v, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memVendorStore) FindAllByUserID(ctx context.Context, userID uuid.UUID) ([]models.Vendor, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []models.Vendor
	for _, v := range m.s.state.vendors {
		if v.UserID == userID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memVendorStore) Update(ctx context.Context, vendor *models.Vendor) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.state.vendors[vendor.ID]; !ok {
		return domain.ErrNotFound
	}
	m.s.state.vendors[vendor.ID] = *vendor
	return nil
}

type memProductStore struct{ s *MemoryStore }

func (m *memProductStore) Create(ctx context.Context, product *models.Product) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}
	m.s.state.products[product.ID] = *product
	return nil
}

func (m *memProductStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if p, ok := m.s.state.products[id]; ok {
		return &p, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memProductStore) FindByIDForVendor(ctx context.Context, id, vendorID uuid.UUID) (*models.Product, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if p, ok := m.s.state.products[id]; ok && p.VendorID == vendorID {
		return &p, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memProductStore) FindAll(ctx context.Context) ([]models.Product, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	out := make([]models.Product, 0, len(m.s.state.products))
	for _, p := range m.s.state.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memProductStore) FindByVendorID(ctx context.Context, vendorID uuid.UUID) ([]models.Product, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []models.Product
	for _, p := range m.s.state.products {
		if p.VendorID == vendorID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memProductStore) Update(ctx context.Context, product *models.Product) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.state.products[product.ID]; !ok {
		return domain.ErrNotFound
	}
	m.s.state.products[product.ID] = *product
	return nil
}

func (m *memProductStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.state.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.s.state.products, id)
	return nil
}

type memOrderStore struct{ s *MemoryStore }

func (m *memOrderStore) Create(ctx context.Context, order *models.Order) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, exists := m.s.state.orderIDIdx[order.OrderID]; exists {
		return domain.ErrDuplicateOrder
	}
	order.ID = m.s.state.nextOrderID
	m.s.state.nextOrderID++
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	m.s.state.orders[order.ID] = *order
	m.s.state.orderIDIdx[order.OrderID] = order.ID
	return nil
}

func (m *memOrderStore) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if o, ok := m.s.state.orders[id]; ok {
		return &o, nil
	}
	return nil, domain.ErrNotFound
}

// ownedVendorIDs collects the vendor ids belonging to a user. Callers
// must hold the store mutex.
func (st *memState) ownedVendorIDs(userID uuid.UUID) map[uuid.UUID]bool {
	owned := make(map[uuid.UUID]bool)
	for _, v := range st.vendors {
		if v.UserID == userID {
			owned[v.ID] = true
		}
	}
	return owned
}

func (m *memOrderStore) FindByIDForVendorOwner(ctx context.Context, id uint, userID uuid.UUID) (*models.Order, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	owned := m.s.state.ownedVendorIDs(userID)
	if o, ok := m.s.state.orders[id]; ok && owned[o.VendorID] {
		return &o, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memOrderStore) FindByIDForCustomer(ctx context.Context, id uint, customerID uuid.UUID) (*models.Order, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if o, ok := m.s.state.orders[id]; ok && o.CustomerID != nil && *o.CustomerID == customerID {
		return &o, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memOrderStore) findAll(match func(models.Order) bool) []models.Order {
	var out []models.Order
	for _, o := range m.s.state.orders {
		if match(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memOrderStore) FindByVendorID(ctx context.Context, vendorID uuid.UUID) ([]models.Order, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return m.findAll(func(o models.Order) bool { return o.VendorID == vendorID }), nil
}

func (m *memOrderStore) FindByVendorOwner(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	owned := m.s.state.ownedVendorIDs(userID)
	return m.findAll(func(o models.Order) bool { return owned[o.VendorID] }), nil
}

func (m *memOrderStore) FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]models.Order, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return m.findAll(func(o models.Order) bool {
		return o.CustomerID != nil && *o.CustomerID == customerID
	}), nil
}

func (m *memOrderStore) FindCompletedByVendorID(ctx context.Context, vendorID uuid.UUID) ([]models.Order, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return m.findAll(func(o models.Order) bool {
		return o.VendorID == vendorID && o.Status == models.OrderStatusCompleted
	}), nil
}

func (m *memOrderStore) FindCompletedByVendorIDBetween(ctx context.Context, vendorID uuid.UUID, from, to time.Time) ([]models.Order, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return m.findAll(func(o models.Order) bool {
		return o.VendorID == vendorID &&
			o.Status == models.OrderStatusCompleted &&
			!o.CreatedAt.Before(from) && !o.CreatedAt.After(to)
	}), nil
}

func (m *memOrderStore) Update(ctx context.Context, order *models.Order) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	prev, ok := m.s.state.orders[order.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if order.OrderID != prev.OrderID {
		if _, exists := m.s.state.orderIDIdx[order.OrderID]; exists {
			return domain.ErrDuplicateOrder
		}
		delete(m.s.state.orderIDIdx, prev.OrderID)
		m.s.state.orderIDIdx[order.OrderID] = order.ID
	}
	m.s.state.orders[order.ID] = *order
	return nil
}

func (m *memOrderStore) Delete(ctx context.Context, id uint) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	o, ok := m.s.state.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(m.s.state.orderIDIdx, o.OrderID)
	delete(m.s.state.orders, id)
	return nil
}

type memOrderItemStore struct{ s *MemoryStore }

func (m *memOrderItemStore) Create(ctx context.Context, item *models.OrderItem) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	item.ID = m.s.state.nextItemID
	m.s.state.nextItemID++
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	m.s.state.orderItems[item.ID] = *item
	return nil
}

func (m *memOrderItemStore) FindByOrderID(ctx context.Context, orderID uint) ([]models.OrderItem, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []models.OrderItem
	for _, it := range m.s.state.orderItems {
		if it.OrderID == orderID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
