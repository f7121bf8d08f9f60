package service

import (
	"testing"

	"go-storefront-api/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newOrderFixture() (*fakeOrderRepo, *fakeProductRepo, OrderService) {
	orderRepo := newFakeOrderRepo()
	productRepo := newFakeProductRepo()
	svc := NewOrderService(orderRepo, productRepo, nil, zap.NewNop())
	return orderRepo, productRepo, svc
}

func TestCreateOrderComputesTotalAndCapturesPrice(t *testing.T) {
	_, productRepo, svc := newOrderFixture()
	shirt := productRepo.add(&model.Product{Name: "Shirt", Price: 19.99, Stock: 10})
	mug := productRepo.add(&model.Product{Name: "Mug", Price: 7.50, Stock: 4})
	userID := uuid.New()

	order, err := svc.CreateOrder(userID, []OrderItemInput{
		{ProductID: shirt.ID, Quantity: 2},
		{ProductID: mug.ID, Quantity: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, model.OrderPending, order.Status)
	assert.Equal(t, userID, order.UserID)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 19.99, order.Items[0].UnitPrice)
	assert.InDelta(t, 2*19.99+7.50, order.Total, 1e-9)

	// Order creation must not touch catalog stock
	assert.Equal(t, 10, productRepo.stock(shirt.ID))
	assert.Equal(t, 4, productRepo.stock(mug.ID))
}

func TestCreateOrderRejectsEmptyCart(t *testing.T) {
	_, _, svc := newOrderFixture()

	_, err := svc.CreateOrder(uuid.New(), nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateOrderRejectsNonPositiveQuantity(t *testing.T) {
	_, productRepo, svc := newOrderFixture()
	p := productRepo.add(&model.Product{Name: "Shirt", Price: 10, Stock: 10})

	_, err := svc.CreateOrder(uuid.New(), []OrderItemInput{{ProductID: p.ID, Quantity: 0}})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateOrderRejectsInsufficientStock(t *testing.T) {
	_, productRepo, svc := newOrderFixture()
	p := productRepo.add(&model.Product{Name: "Shirt", Price: 10, Stock: 3})

	_, err := svc.CreateOrder(uuid.New(), []OrderItemInput{{ProductID: p.ID, Quantity: 4}})
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestCreateOrderRejectsUnknownProduct(t *testing.T) {
	_, _, svc := newOrderFixture()

	_, err := svc.CreateOrder(uuid.New(), []OrderItemInput{{ProductID: uuid.New(), Quantity: 1}})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestUpdateStatusAcceptsAnyDomainValue(t *testing.T) {
	orderRepo, productRepo, svc := newOrderFixture()
	p := productRepo.add(&model.Product{Name: "Shirt", Price: 10, Stock: 10})
	order, err := svc.CreateOrder(uuid.New(), []OrderItemInput{{ProductID: p.ID, Quantity: 1}})
	require.NoError(t, err)

	// No transition graph: forward, backward, terminal all accepted
	for _, status := range []model.OrderStatus{
		model.OrderShipped, model.OrderPending, model.OrderCancelled,
	} {
		updated, err := svc.UpdateStatus(order.ID, status, "admin")
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}

	stored, err := orderRepo.FindByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderCancelled, stored.Status)
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	_, productRepo, svc := newOrderFixture()
	p := productRepo.add(&model.Product{Name: "Shirt", Price: 10, Stock: 10})
	order, err := svc.CreateOrder(uuid.New(), []OrderItemInput{{ProductID: p.ID, Quantity: 1}})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(order.ID, model.OrderStatus("returned"), "admin")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatusMissingOrder(t *testing.T) {
	_, _, svc := newOrderFixture()

	_, err := svc.UpdateStatus(uuid.New(), model.OrderShipped, "admin")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
