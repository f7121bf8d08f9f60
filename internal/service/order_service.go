package service

import (
	"errors"
	"fmt"

	"go-storefront-api/internal/model"
	"go-storefront-api/internal/repository"
	"go-storefront-api/internal/ws"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderItemInput is one line of the cart snapshot a checkout submits.
// Unit prices are resolved server-side, never trusted from the client.
type OrderItemInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

type OrderService interface {
	CreateOrder(userID uuid.UUID, items []OrderItemInput) (*model.Order, error)
	ListAllOrders() ([]model.Order, error)
	ListOrdersForUser(userID uuid.UUID) ([]model.Order, error)
	UpdateStatus(orderID uuid.UUID, status model.OrderStatus, updatedBy string) (*model.Order, error)
}

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	hub         *ws.Hub
	log         *zap.Logger
}

func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, hub *ws.Hub, log *zap.Logger) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		hub:         hub,
		log:         log,
	}
}

// CreateOrder persists a pending order from a cart snapshot. Each line's
// quantity is checked against current stock; the current price is captured
// on the line item so later catalog changes never rewrite order history.
// Stock itself is not decremented here.
func (s *orderService) CreateOrder(userID uuid.UUID, items []OrderItemInput) (*model.Order, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", ErrValidation)
	}

	order := &model.Order{
		UserID: userID,
		Status: model.OrderPending,
	}

	var total float64
	for _, in := range items {
		if err := validateStruct(&in); err != nil {
			return nil, err
		}

		product, err := s.productRepo.FindByID(in.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrProductNotFound
			}
			return nil, err
		}
		if in.Quantity > product.Stock {
			return nil, fmt.Errorf("%w: product '%s' has %d in stock, %d requested",
				ErrInsufficientStock, product.Name, product.Stock, in.Quantity)
		}

		subtotal := product.Price * float64(in.Quantity)
		total += subtotal
		order.Items = append(order.Items, model.OrderItem{
			ProductID: product.ID,
			Quantity:  in.Quantity,
			UnitPrice: product.Price,
			Subtotal:  subtotal,
		})
	}

	order.Total = total
	order.CreatedBy = userID.String()
	order.UpdatedBy = userID.String()

	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	s.log.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("items", len(order.Items)),
		zap.Float64("total", order.Total))

	s.hub.Publish(ws.Event{
		Type:   ws.TypeOrderUpdate,
		Action: "order_created",
		Payload: map[string]interface{}{
			"id":     order.ID,
			"total":  order.Total,
			"status": order.Status,
		},
	})
	return order, nil
}

func (s *orderService) ListAllOrders() ([]model.Order, error) {
	return s.orderRepo.FindAll()
}

func (s *orderService) ListOrdersForUser(userID uuid.UUID) ([]model.Order, error) {
	return s.orderRepo.FindByUser(userID)
}

// UpdateStatus sets the order status to any value in the status domain.
// No transition graph is enforced, moving backward included.
func (s *orderService) UpdateStatus(orderID uuid.UUID, status model.OrderStatus, updatedBy string) (*model.Order, error) {
	if !model.IsValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidStatus, status)
	}

	if err := s.orderRepo.UpdateStatus(orderID, status, updatedBy); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		return nil, err
	}

	s.hub.Publish(ws.Event{
		Type:   ws.TypeOrderUpdate,
		Action: "order_status_updated",
		Payload: map[string]interface{}{
			"id":     order.ID,
			"status": order.Status,
		},
	})
	return order, nil
}
