package repository

import (
	"errors"

	"go-storefront-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	Update(product *model.Product) error
	Delete(id uuid.UUID, deletedBy string) error
	IncrementStock(tx *gorm.DB, id uuid.UUID, delta int, updatedBy string) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Order("created_at DESC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &product, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) Delete(id uuid.UUID, deletedBy string) error {
	res := r.db.Where("id = ?", id).Delete(&model.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementStock applies delta as an atomic conditional update so the
// stock >= 0 invariant is enforced at the storage layer, never via
// read-modify-write in application memory. It accepts a *gorm.DB (tx)
// so callers can run it inside a transaction.
func (r *productRepo) IncrementStock(tx *gorm.DB, id uuid.UUID, delta int, updatedBy string) error {
	if tx == nil {
		tx = r.db
	}

	res := tx.Model(&model.Product{}).
		Where("id = ? AND stock + ? >= 0", id, delta).
		Updates(map[string]interface{}{
			"stock":      gorm.Expr("stock + ?", delta),
			"updated_by": updatedBy,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Either the product is gone or the delta would drive stock negative.
		var count int64
		if err := tx.Model(&model.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrInsufficientStock
	}
	return nil
}
