package usecase

import (
	"context"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// テスト用のインメモリストア。
// WithinTxは失敗時にスナップショットへ巻き戻す（DBのロールバック相当）。
type memStore struct {
	categories map[int64]model.Category
	products   map[int64]model.Product
	cartItems  map[int64]model.CartItem
	addresses  map[int64]model.Address
	orders     map[int64]model.Order
	orderItems map[int64]model.OrderItem
	users      map[int64]model.User
	nextID     int64
}

func newMemStore() *memStore {
	return &memStore{
		categories: map[int64]model.Category{},
		products:   map[int64]model.Product{},
		cartItems:  map[int64]model.CartItem{},
		addresses:  map[int64]model.Address{},
		orders:     map[int64]model.Order{},
		orderItems: map[int64]model.OrderItem{},
		users:      map[int64]model.User{},
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	c.nextID = s.nextID
	for k, v := range s.categories {
		c.categories[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.cartItems {
		c.cartItems[k] = v
	}
	for k, v := range s.addresses {
		c.addresses[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.orderItems {
		c.orderItems[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	return c
}

// --- CategoryRepository ---

type fakeCategoryRepo struct{ s *memStore }

func (r *fakeCategoryRepo) List(ctx context.Context) ([]model.Category, error) {
	out := []model.Category{}
	for _, c := range r.s.categories {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCategoryRepo) FindByID(ctx context.Context, id int64) (model.Category, error) {
	c, ok := r.s.categories[id]
	if !ok {
		return model.Category{}, repo.ErrNotFound
	}
	return c, nil
}

func (r *fakeCategoryRepo) Create(ctx context.Context, c model.Category) (model.Category, error) {
	c.ID = r.s.id()
	r.s.categories[c.ID] = c
	return c, nil
}

func (r *fakeCategoryRepo) Update(ctx context.Context, c model.Category) error {
	if _, ok := r.s.categories[c.ID]; !ok {
		return repo.ErrNotFound
	}
	r.s.categories[c.ID] = c
	return nil
}

func (r *fakeCategoryRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.s.categories[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.categories, id)
	return nil
}

// --- ProductRepository ---

type fakeProductRepo struct{ s *memStore }

func (r *fakeProductRepo) List(ctx context.Context) ([]model.Product, error) {
	out := []model.Product{}
	for _, p := range r.s.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProductRepo) FindByID(ctx context.Context, id int64) (model.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) Create(ctx context.Context, p model.Product) (model.Product, error) {
	p.ID = r.s.id()
	r.s.products[p.ID] = p
	return p, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, p model.Product) error {
	old, ok := r.s.products[p.ID]
	if !ok {
		return repo.ErrNotFound
	}
	p.CreatedAt = old.CreatedAt
	r.s.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.s.products[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.products, id)
	return nil
}

func (r *fakeProductRepo) DecrementStock(ctx context.Context, productID int64, qty int64) error {
	p, ok := r.s.products[productID]
	if !ok {
		return repo.ErrNotFound
	}
	p.Stock -= qty
	r.s.products[productID] = p
	return nil
}

// --- CartItemRepository ---

type fakeCartItemRepo struct{ s *memStore }

func (r *fakeCartItemRepo) ListByUserID(ctx context.Context, userID int64) ([]model.CartItem, error) {
	out := []model.CartItem{}
	for _, it := range r.s.cartItems {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeCartItemRepo) FindOwnedByUser(ctx context.Context, cartItemID int64, userID int64) (model.CartItem, error) {
	it, ok := r.s.cartItems[cartItemID]
	if !ok || it.UserID != userID {
		return model.CartItem{}, repo.ErrNotFound
	}
	return it, nil
}

func (r *fakeCartItemRepo) UpsertByUserAndProduct(ctx context.Context, userID int64, productID int64, addQty int64) (model.CartItem, error) {
	for id, it := range r.s.cartItems {
		if it.UserID == userID && it.ProductID == productID {
			it.Quantity += addQty
			r.s.cartItems[id] = it
			return it, nil
		}
	}
	it := model.CartItem{
		ID:        r.s.id(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  addQty,
	}
	r.s.cartItems[it.ID] = it
	return it, nil
}

func (r *fakeCartItemRepo) UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error {
	it, ok := r.s.cartItems[cartItemID]
	if !ok {
		return repo.ErrNotFound
	}
	it.Quantity = qty
	r.s.cartItems[cartItemID] = it
	return nil
}

func (r *fakeCartItemRepo) DeleteByID(ctx context.Context, cartItemID int64) error {
	if _, ok := r.s.cartItems[cartItemID]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.cartItems, cartItemID)
	return nil
}

func (r *fakeCartItemRepo) DeleteAllByUserID(ctx context.Context, userID int64) error {
	for id, it := range r.s.cartItems {
		if it.UserID == userID {
			delete(r.s.cartItems, id)
		}
	}
	return nil
}

// --- AddressRepository ---

type fakeAddressRepo struct{ s *memStore }

func (r *fakeAddressRepo) Create(ctx context.Context, a model.Address) (model.Address, error) {
	a.ID = r.s.id()
	r.s.addresses[a.ID] = a
	return a, nil
}

func (r *fakeAddressRepo) ListByUserID(ctx context.Context, userID int64) ([]model.Address, error) {
	out := []model.Address{}
	for _, a := range r.s.addresses {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAddressRepo) FindByID(ctx context.Context, addressID int64) (model.Address, error) {
	a, ok := r.s.addresses[addressID]
	if !ok {
		return model.Address{}, repo.ErrNotFound
	}
	return a, nil
}

// --- OrderRepository ---

type fakeOrderRepo struct{ s *memStore }

func (r *fakeOrderRepo) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	o, ok := r.s.orders[orderID]
	if !ok {
		return model.Order{}, repo.ErrNotFound
	}
	items := []model.OrderItem{}
	for _, it := range r.s.orderItems {
		if it.OrderID == o.ID {
			items = append(items, it)
		}
	}
	o.Items = items
	return o, nil
}

func (r *fakeOrderRepo) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	out := []model.Order{}
	for id := range r.s.orders {
		if r.s.orders[id].UserID == userID {
			o, _ := r.FindByID(ctx, id)
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) ListAll(ctx context.Context) ([]model.Order, error) {
	out := []model.Order{}
	for id := range r.s.orders {
		o, _ := r.FindByID(ctx, id)
		out = append(out, o)
	}
	return out, nil
}

func (r *fakeOrderRepo) Create(ctx context.Context, order model.Order) (int64, error) {
	order.ID = r.s.id()
	r.s.orders[order.ID] = order
	return order.ID, nil
}

func (r *fakeOrderRepo) UpdateTotalAmount(ctx context.Context, orderID int64, total int64) error {
	o, ok := r.s.orders[orderID]
	if !ok {
		return repo.ErrNotFound
	}
	o.TotalAmount = total
	r.s.orders[orderID] = o
	return nil
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	o, ok := r.s.orders[orderID]
	if !ok {
		return repo.ErrNotFound
	}
	o.Status = status
	r.s.orders[orderID] = o
	return nil
}

func (r *fakeOrderRepo) UpdatePaymentStatus(ctx context.Context, orderID int64, status model.PaymentStatus) error {
	o, ok := r.s.orders[orderID]
	if !ok {
		return repo.ErrNotFound
	}
	o.PaymentStatus = status
	r.s.orders[orderID] = o
	return nil
}

// --- OrderItemRepository ---

type fakeOrderItemRepo struct{ s *memStore }

func (r *fakeOrderItemRepo) Create(ctx context.Context, item model.OrderItem) (model.OrderItem, error) {
	item.ID = r.s.id()
	r.s.orderItems[item.ID] = item
	return item, nil
}

func (r *fakeOrderItemRepo) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	out := []model.OrderItem{}
	for _, it := range r.s.orderItems {
		if it.OrderID == orderID {
			out = append(out, it)
		}
	}
	return out, nil
}

// --- UserRepository ---

type fakeUserRepo struct{ s *memStore }

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	user.ID = r.s.id()
	r.s.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	u, ok := r.s.users[userID]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range r.s.users {
		if u.Username == username {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(ctx context.Context) ([]model.User, error) {
	out := []model.User{}
	for _, u := range r.s.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *model.User) error {
	if _, ok := r.s.users[user.ID]; !ok {
		return repo.ErrUserNotFound
	}
	r.s.users[user.ID] = *user
	return nil
}

// --- TransactionManager ---

type fakeTxRepos struct{ s *memStore }

func (r *fakeTxRepos) Orders() repo.OrderRepository         { return &fakeOrderRepo{s: r.s} }
func (r *fakeTxRepos) OrderItems() repo.OrderItemRepository { return &fakeOrderItemRepo{s: r.s} }
func (r *fakeTxRepos) CartItems() repo.CartItemRepository   { return &fakeCartItemRepo{s: r.s} }
func (r *fakeTxRepos) Products() repo.ProductRepository     { return &fakeProductRepo{s: r.s} }
func (r *fakeTxRepos) Addresses() repo.AddressRepository    { return &fakeAddressRepo{s: r.s} }

type fakeTxManager struct{ s *memStore }

func (tm *fakeTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	snapshot := tm.s.clone()
	if err := fn(&fakeTxRepos{s: tm.s}); err != nil {
		//ロールバック
		*tm.s = *snapshot
		return err
	}
	return nil
}
