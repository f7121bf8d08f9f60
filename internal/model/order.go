package model

import "github.com/google/uuid"

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// OrderStatuses lists every valid customer order status.
var OrderStatuses = []OrderStatus{
	OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled,
}

// IsValidOrderStatus reports whether s is in the customer order status domain.
func IsValidOrderStatus(s OrderStatus) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Order is a customer order created from a cart snapshot.
// Line items capture the unit price at order time, so later product
// edits or deletions never alter historical order data.
type Order struct {
	BaseModel
	UserID uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id"`
	User   *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items  []OrderItem `gorm:"foreignKey:OrderID" json:"items" validate:"required,min=1,dive"`
	Total  float64     `gorm:"not null" json:"total"`
	Status OrderStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
}

type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null" json:"product_id" validate:"uuid_required"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`
	Quantity  int       `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	UnitPrice float64   `gorm:"not null" json:"unit_price"` // Snapshot of product price at order time
	Subtotal  float64   `gorm:"not null" json:"subtotal"`
}
