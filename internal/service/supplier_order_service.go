package service

import (
	"errors"
	"fmt"

	"go-storefront-api/internal/model"
	"go-storefront-api/internal/repository"
	"go-storefront-api/internal/ws"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SupplierOrderItemInput is one procurement line: what to restock, how many,
// and the agreed cost price per unit.
type SupplierOrderItemInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
	CostPrice float64   `json:"cost_price" validate:"gte=0"`
}

type SupplierOrderService interface {
	CreateSupplierOrder(adminID, supplierID uuid.UUID, items []SupplierOrderItemInput, notes string) (*model.SupplierOrder, error)
	ListForAdmin() ([]model.SupplierOrder, error)
	ListForSupplier(supplierID uuid.UUID) ([]model.SupplierOrder, error)
	ListSuppliers() ([]model.UserResponse, error)
	AdvanceStatus(supplierID, orderID uuid.UUID, status model.SupplierOrderStatus) (*model.SupplierOrder, error)
	Deliver(adminID uuid.UUID, orderID uuid.UUID) (*model.SupplierOrder, error)
}

type supplierOrderService struct {
	orderRepo   repository.SupplierOrderRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	db          *gorm.DB
	hub         *ws.Hub
	log         *zap.Logger
}

func NewSupplierOrderService(
	orderRepo repository.SupplierOrderRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	db *gorm.DB,
	hub *ws.Hub,
	log *zap.Logger,
) SupplierOrderService {
	return &supplierOrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		db:          db,
		hub:         hub,
		log:         log,
	}
}

// CreateSupplierOrder opens a procurement batch at status pending. The total
// cost is computed here as the sum of quantity x cost price; a caller-supplied
// total is never trusted.
func (s *supplierOrderService) CreateSupplierOrder(adminID, supplierID uuid.UUID, items []SupplierOrderItemInput, notes string) (*model.SupplierOrder, error) {
	supplier, err := s.userRepo.FindByID(supplierID)
	if err != nil || supplier.Role != model.RoleSupplier {
		return nil, ErrInvalidSupplier
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("%w: supplier order must contain at least one item", ErrValidation)
	}

	order := &model.SupplierOrder{
		AdminID:    adminID,
		SupplierID: supplierID,
		Notes:      notes,
		Status:     model.SupplierOrderPending,
	}

	var totalCost float64
	for _, in := range items {
		if err := validateStruct(&in); err != nil {
			return nil, err
		}
		if _, err := s.productRepo.FindByID(in.ProductID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrProductNotFound
			}
			return nil, err
		}
		totalCost += float64(in.Quantity) * in.CostPrice
		order.Items = append(order.Items, model.SupplierOrderItem{
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			CostPrice: in.CostPrice,
		})
	}

	order.TotalCost = totalCost
	order.CreatedBy = adminID.String()
	order.UpdatedBy = adminID.String()

	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	s.log.Info("supplier order created",
		zap.String("order_id", order.ID.String()),
		zap.String("supplier_id", supplierID.String()),
		zap.Float64("total_cost", order.TotalCost))

	return order, nil
}

func (s *supplierOrderService) ListForAdmin() ([]model.SupplierOrder, error) {
	return s.orderRepo.FindAll()
}

func (s *supplierOrderService) ListForSupplier(supplierID uuid.UUID) ([]model.SupplierOrder, error) {
	return s.orderRepo.FindBySupplier(supplierID)
}

func (s *supplierOrderService) ListSuppliers() ([]model.UserResponse, error) {
	suppliers, err := s.userRepo.FindByRole(model.RoleSupplier)
	if err != nil {
		return nil, err
	}
	out := make([]model.UserResponse, len(suppliers))
	for i, u := range suppliers {
		out[i] = u.ToResponse()
	}
	return out, nil
}

// AdvanceStatus lets the assigned supplier move an order through
// pending/confirmed/shipped. Setting delivered is always rejected here:
// that edge belongs to the admin Deliver operation, the only one that
// credits stock. An order owned by another supplier reports the same
// error as a missing order.
func (s *supplierOrderService) AdvanceStatus(supplierID, orderID uuid.UUID, status model.SupplierOrderStatus) (*model.SupplierOrder, error) {
	if !model.IsSupplierAdvanceStatus(status) {
		if status == model.SupplierOrderDelivered {
			return nil, fmt.Errorf("%w: 'delivered' is set by the admin deliver operation", ErrInvalidStatus)
		}
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidStatus, status)
	}

	order, err := s.orderRepo.FindOwned(orderID, supplierID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSupplierOrderNotFound
		}
		return nil, err
	}
	if order.Delivered() {
		return nil, ErrAlreadyDelivered
	}

	// The conditional write re-checks the terminal guard in the store. A
	// deliver committing after the read above surfaces here as a conflict.
	if err := s.orderRepo.UpdateStatus(orderID, supplierID, status, supplierID.String()); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrSupplierOrderNotFound
		case errors.Is(err, repository.ErrConflict):
			return nil, ErrAlreadyDelivered
		}
		return nil, err
	}
	order.Status = status

	s.hub.Publish(ws.Event{
		Type:   ws.TypeOrderUpdate,
		Action: "supplier_order_status_updated",
		Payload: map[string]interface{}{
			"id":     order.ID,
			"status": order.Status,
		},
	})
	return order, nil
}

// Deliver marks a supplier order delivered and credits each line item's
// quantity to catalog stock. The whole reconciliation runs in one storage
// transaction with the order row locked, so two concurrent deliver calls
// result in exactly one stock credit; the loser observes the terminal
// status and gets ErrAlreadyDelivered.
func (s *supplierOrderService) Deliver(adminID uuid.UUID, orderID uuid.UUID) (*model.SupplierOrder, error) {
	var delivered *model.SupplierOrder
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		delivered, err = s.applyDelivery(tx, orderID, adminID.String())
		return err
	})
	if err != nil {
		if pf := (*PartialFailureError)(nil); errors.As(err, &pf) {
			s.log.Error("delivery reconciliation rolled back",
				zap.String("order_id", orderID.String()),
				zap.Int("applied_items", len(pf.Applied)),
				zap.Error(pf.Err))
		}
		return nil, err
	}

	s.log.Info("supplier order delivered",
		zap.String("order_id", orderID.String()),
		zap.String("admin_id", adminID.String()),
		zap.Int("items_credited", len(delivered.Items)))

	for _, item := range delivered.Items {
		s.hub.Publish(ws.Event{
			Type:   ws.TypeCatalogUpdate,
			Action: "stock_credited",
			Payload: map[string]interface{}{
				"product_id": item.ProductID,
				"quantity":   item.Quantity,
				"order_id":   delivered.ID,
			},
		})
	}
	return delivered, nil
}

// applyDelivery performs the delivery state transition and the per-item
// stock credits. The already-delivered guard runs twice: once after taking
// the row lock and again inside the conditional terminal flip. Each applied
// increment is recorded in a ledger so a failure can report exactly which
// items had been credited before the rollback.
func (s *supplierOrderService) applyDelivery(tx *gorm.DB, orderID uuid.UUID, adminID string) (*model.SupplierOrder, error) {
	order, err := s.orderRepo.FindByIDForUpdate(tx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSupplierOrderNotFound
		}
		return nil, err
	}
	if order.Delivered() {
		return nil, ErrAlreadyDelivered
	}

	applied := make([]uuid.UUID, 0, len(order.Items))
	for i, item := range order.Items {
		if err := s.productRepo.IncrementStock(tx, item.ProductID, item.Quantity, adminID); err != nil {
			return nil, &PartialFailureError{
				Applied:       applied,
				FailedIndex:   i,
				FailedProduct: item.ProductID,
				Err:           err,
			}
		}
		applied = append(applied, item.ProductID)
	}

	if err := s.orderRepo.MarkDelivered(tx, orderID, adminID); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrConflict
		}
		return nil, err
	}

	order.Status = model.SupplierOrderDelivered
	order.UpdatedBy = adminID
	return order, nil
}
