package model

import "github.com/google/uuid"

type SupplierOrderStatus string

const (
	SupplierOrderPending   SupplierOrderStatus = "pending"
	SupplierOrderConfirmed SupplierOrderStatus = "confirmed"
	SupplierOrderShipped   SupplierOrderStatus = "shipped"
	SupplierOrderDelivered SupplierOrderStatus = "delivered"
)

// SupplierAdvanceStatuses are the values a supplier may set via the status
// update operation. "delivered" is deliberately absent: that transition is
// reserved for the admin deliver operation because it credits stock.
var SupplierAdvanceStatuses = []SupplierOrderStatus{
	SupplierOrderPending, SupplierOrderConfirmed, SupplierOrderShipped,
}

// IsSupplierAdvanceStatus reports whether s is a status the supplier may set.
func IsSupplierAdvanceStatus(s SupplierOrderStatus) bool {
	for _, v := range SupplierAdvanceStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// SupplierOrder is a procurement batch requested by an admin from a supplier.
// Once delivered it is terminal: no further status change, no repeat stock credit.
type SupplierOrder struct {
	BaseModel
	AdminID    uuid.UUID           `gorm:"type:uuid;not null;index" json:"admin_id"`
	Admin      *User               `gorm:"foreignKey:AdminID" json:"admin,omitempty"`
	SupplierID uuid.UUID           `gorm:"type:uuid;not null;index" json:"supplier_id" validate:"uuid_required"`
	Supplier   *User               `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Items      []SupplierOrderItem `gorm:"foreignKey:SupplierOrderID" json:"items" validate:"required,min=1,dive"`
	TotalCost  float64             `gorm:"not null" json:"total_cost"`
	Notes      string              `gorm:"type:text" json:"notes"`
	Status     SupplierOrderStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
}

type SupplierOrderItem struct {
	BaseModel
	SupplierOrderID uuid.UUID `gorm:"type:uuid;not null;index" json:"supplier_order_id"`
	ProductID       uuid.UUID `gorm:"type:uuid;not null" json:"product_id" validate:"uuid_required"`
	Product         *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`
	Quantity        int       `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	CostPrice       float64   `gorm:"not null" json:"cost_price" validate:"gte=0"`
}

// Delivered reports whether the order reached its terminal status.
func (o *SupplierOrder) Delivered() bool {
	return o.Status == SupplierOrderDelivered
}
