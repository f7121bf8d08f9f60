package service

import (
	"sync"

	"go-storefront-api/internal/model"
	"go-storefront-api/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ---- fake user repository ----

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*model.User{}}
}

func (r *fakeUserRepo) add(u *model.User) *model.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return u
}

func (r *fakeUserRepo) Create(u *model.User) error {
	r.add(u)
	return nil
}

func (r *fakeUserRepo) FindByID(id uuid.UUID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) FindByRole(role string) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Update(u *model.User) error {
	r.add(u)
	return nil
}

// ---- fake product repository ----

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*model.Product
	// failIncrement forces IncrementStock to fail for the given product
	failIncrement map[uuid.UUID]error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		products:      map[uuid.UUID]*model.Product{},
		failIncrement: map[uuid.UUID]error{},
	}
}

func (r *fakeProductRepo) add(p *model.Product) *model.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return p
}

func (r *fakeProductRepo) stock(id uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.products[id].Stock
}

func (r *fakeProductRepo) Create(p *model.Product) error {
	r.add(p)
	return nil
}

func (r *fakeProductRepo) FindAll() ([]model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProductRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) Update(p *model.Product) error {
	r.add(p)
	return nil
}

func (r *fakeProductRepo) Delete(id uuid.UUID, deletedBy string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) IncrementStock(tx *gorm.DB, id uuid.UUID, delta int, updatedBy string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.failIncrement[id]; ok {
		return err
	}
	p, ok := r.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	if p.Stock+delta < 0 {
		return repository.ErrInsufficientStock
	}
	p.Stock += delta
	return nil
}

// ---- fake order repository ----

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*model.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[uuid.UUID]*model.Order{}}
}

func (r *fakeOrderRepo) Create(o *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	r.orders[o.ID] = o
	return nil
}

func (r *fakeOrderRepo) FindAll() ([]model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Order
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r *fakeOrderRepo) FindByID(id uuid.UUID) (*model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return o, nil
}

func (r *fakeOrderRepo) FindByUser(userID uuid.UUID) ([]model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(id uuid.UUID, status model.OrderStatus, updatedBy string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return repository.ErrNotFound
	}
	o.Status = status
	return nil
}

// ---- fake supplier order repository ----

type fakeSupplierOrderRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*model.SupplierOrder
	// onFindOwned runs against the stored order after FindOwned snapshots
	// it, to interleave a concurrent write between read and update
	onFindOwned func(stored *model.SupplierOrder)
}

func newFakeSupplierOrderRepo() *fakeSupplierOrderRepo {
	return &fakeSupplierOrderRepo{orders: map[uuid.UUID]*model.SupplierOrder{}}
}

func (r *fakeSupplierOrderRepo) add(o *model.SupplierOrder) *model.SupplierOrder {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	r.orders[o.ID] = o
	return o
}

func (r *fakeSupplierOrderRepo) Create(o *model.SupplierOrder) error {
	r.add(o)
	return nil
}

func (r *fakeSupplierOrderRepo) FindAll() ([]model.SupplierOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.SupplierOrder
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r *fakeSupplierOrderRepo) FindBySupplier(supplierID uuid.UUID) ([]model.SupplierOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.SupplierOrder
	for _, o := range r.orders {
		if o.SupplierID == supplierID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeSupplierOrderRepo) FindByID(id uuid.UUID) (*model.SupplierOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return o, nil
}

func (r *fakeSupplierOrderRepo) FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.SupplierOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeSupplierOrderRepo) FindOwned(id, supplierID uuid.UUID) (*model.SupplierOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.SupplierID != supplierID {
		return nil, repository.ErrNotFound
	}
	cp := *o
	if r.onFindOwned != nil {
		r.onFindOwned(o)
	}
	return &cp, nil
}

func (r *fakeSupplierOrderRepo) UpdateStatus(id, supplierID uuid.UUID, status model.SupplierOrderStatus, updatedBy string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.SupplierID != supplierID {
		return repository.ErrNotFound
	}
	if o.Status == model.SupplierOrderDelivered {
		return repository.ErrConflict
	}
	o.Status = status
	return nil
}

func (r *fakeSupplierOrderRepo) MarkDelivered(tx *gorm.DB, id uuid.UUID, updatedBy string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.Status == model.SupplierOrderDelivered {
		return repository.ErrConflict
	}
	o.Status = model.SupplierOrderDelivered
	return nil
}
