package repository

import (
	"errors"

	"go-storefront-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(order *model.Order) error
	FindAll() ([]model.Order, error)
	FindByID(id uuid.UUID) (*model.Order, error)
	FindByUser(userID uuid.UUID) ([]model.Order, error)
	UpdateStatus(id uuid.UUID, status model.OrderStatus, updatedBy string) error
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

func (r *orderRepo) Create(order *model.Order) error {
	return r.db.Create(order).Error
}

func (r *orderRepo) FindAll() ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("User").Preload("Items.Product").
		Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepo) FindByID(id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := r.db.Preload("User").Preload("Items.Product").First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &order, err
}

func (r *orderRepo) FindByUser(userID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("Items.Product").Where("user_id = ?", userID).
		Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepo) UpdateStatus(id uuid.UUID, status model.OrderStatus, updatedBy string) error {
	res := r.db.Model(&model.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_by": updatedBy,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
