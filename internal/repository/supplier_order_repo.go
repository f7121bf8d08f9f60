package repository

import (
	"errors"

	"go-storefront-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SupplierOrderRepository interface {
	Create(order *model.SupplierOrder) error
	FindAll() ([]model.SupplierOrder, error)
	FindBySupplier(supplierID uuid.UUID) ([]model.SupplierOrder, error)
	FindByID(id uuid.UUID) (*model.SupplierOrder, error)
	FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.SupplierOrder, error)
	FindOwned(id, supplierID uuid.UUID) (*model.SupplierOrder, error)
	UpdateStatus(id, supplierID uuid.UUID, status model.SupplierOrderStatus, updatedBy string) error
	MarkDelivered(tx *gorm.DB, id uuid.UUID, updatedBy string) error
}

type supplierOrderRepo struct {
	db *gorm.DB
}

func NewSupplierOrderRepo(db *gorm.DB) SupplierOrderRepository {
	return &supplierOrderRepo{db}
}

func (r *supplierOrderRepo) Create(order *model.SupplierOrder) error {
	return r.db.Create(order).Error
}

func (r *supplierOrderRepo) FindAll() ([]model.SupplierOrder, error) {
	var orders []model.SupplierOrder
	err := r.db.Preload("Admin").Preload("Supplier").Preload("Items.Product").
		Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// FindBySupplier scopes the read by query predicate so other suppliers'
// orders never leave the database.
func (r *supplierOrderRepo) FindBySupplier(supplierID uuid.UUID) ([]model.SupplierOrder, error) {
	var orders []model.SupplierOrder
	err := r.db.Preload("Admin").Preload("Items.Product").
		Where("supplier_id = ?", supplierID).
		Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *supplierOrderRepo) FindByID(id uuid.UUID) (*model.SupplierOrder, error) {
	var order model.SupplierOrder
	err := r.db.Preload("Items").First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &order, err
}

// FindByIDForUpdate locks the order row so concurrent deliver calls
// serialize on it.
func (r *supplierOrderRepo) FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.SupplierOrder, error) {
	var order model.SupplierOrder
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := tx.Where("supplier_order_id = ?", id).Find(&order.Items).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindOwned returns the order only when it belongs to the given supplier.
// A missing order and a foreign order are indistinguishable to the caller.
func (r *supplierOrderRepo) FindOwned(id, supplierID uuid.UUID) (*model.SupplierOrder, error) {
	var order model.SupplierOrder
	err := r.db.First(&order, "id = ? AND supplier_id = ?", id, supplierID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &order, err
}

// UpdateStatus moves an order the supplier owns to a non-terminal status.
// The delivered guard lives in the WHERE clause, so a deliver that commits
// after the caller's read cannot be overwritten.
func (r *supplierOrderRepo) UpdateStatus(id, supplierID uuid.UUID, status model.SupplierOrderStatus, updatedBy string) error {
	res := r.db.Model(&model.SupplierOrder{}).
		Where("id = ? AND supplier_id = ? AND status <> ?", id, supplierID, model.SupplierOrderDelivered).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_by": updatedBy,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.Model(&model.SupplierOrder{}).
			Where("id = ? AND supplier_id = ?", id, supplierID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrConflict
	}
	return nil
}

// MarkDelivered flips the order to its terminal status with a conditional
// update, re-verifying the already-delivered guard immediately before commit.
func (r *supplierOrderRepo) MarkDelivered(tx *gorm.DB, id uuid.UUID, updatedBy string) error {
	if tx == nil {
		tx = r.db
	}
	res := tx.Model(&model.SupplierOrder{}).
		Where("id = ? AND status <> ?", id, model.SupplierOrderDelivered).
		Updates(map[string]interface{}{
			"status":     model.SupplierOrderDelivered,
			"updated_by": updatedBy,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}
