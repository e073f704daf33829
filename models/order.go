package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents all possible states of an order's fulfillment lifecycle
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// PaymentMethod is how the customer pays for an order
type PaymentMethod string

const (
	PaymentCOD  PaymentMethod = "cod"
	PaymentCard PaymentMethod = "card"
)

// PaymentStatus tracks payment independently of the order status
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

type Order struct {
	ID            uint                 `json:"id" gorm:"primaryKey"`
	OrderNumber   string               `json:"order_number" gorm:"uniqueIndex;not null"`
	CustomerID    uint                 `json:"customer_id" gorm:"not null"`
	Customer      User                 `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	RestaurantID  uint                 `json:"restaurant_id" gorm:"not null"`
	Restaurant    Restaurant           `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	Status        OrderStatus          `json:"status" gorm:"not null;default:'pending'"`
	PaymentMethod PaymentMethod        `json:"payment_method" gorm:"not null;default:'cod'"`
	PaymentStatus PaymentStatus        `json:"payment_status" gorm:"not null;default:'pending'"`
	Subtotal      decimal.Decimal      `json:"subtotal" gorm:"type:decimal(10,2)"`
	DeliveryFee   decimal.Decimal      `json:"delivery_fee" gorm:"type:decimal(10,2)"`
	Tax           decimal.Decimal      `json:"tax" gorm:"type:decimal(10,2)"`
	Total         decimal.Decimal      `json:"total" gorm:"type:decimal(10,2)"`
	AddressID     uint                 `json:"delivery_address_id" gorm:"not null"`
	Address       Address              `json:"delivery_address,omitempty" gorm:"foreignKey:AddressID"`
	Notes         string               `json:"notes"`
	Items         []OrderItem          `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	StatusHistory []OrderStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// OrderItem is a snapshot of a dish at order time. Name and price are copied,
// not referenced, so historical orders stay accurate if the catalog changes.
type OrderItem struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	OrderID   uint            `json:"order_id" gorm:"not null"`
	DishID    uint            `json:"dish_id" gorm:"not null"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	Quantity  int             `json:"quantity" gorm:"not null"`
}

// OrderStatusHistory tracks every status change for the audit trail
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"order_id" gorm:"not null"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	ChangedBy  uint        `json:"changed_by"`
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}
