// Package notifier turns externally delivered events into user-facing
// notification records. It never opens connections itself; events arrive on
// a channel and the mapping encodes the business meaning (a cancelled order
// is an error, low stock is a warning, everything else is informational).
package notifier

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"restaurant-orders-api/models"
)

// EventKind identifies the kind of a transport event.
type EventKind string

const (
	EventNewOrder        EventKind = "newOrder"
	EventStatusChanged   EventKind = "statusChanged"
	EventLowStock        EventKind = "lowStock"
	EventCustomerMessage EventKind = "customerMessage"
)

// ErrUnknownEvent is returned by Map for an unrecognized event kind.
var ErrUnknownEvent = errors.New("unknown event kind")

// Audience names a class of inbox an event is delivered to.
type Audience string

const (
	AudienceCustomer Audience = "customer"
	AudienceKitchen  Audience = "kitchen"
	AudienceManager  Audience = "manager"
)

// Event is a raw payload delivered by the transport. Audiences and
// CustomerID steer delivery; when Audiences is empty the hub falls back to
// defaults per kind.
type Event struct {
	Kind       EventKind   `json:"kind"`
	Payload    any         `json:"payload"`
	Order      *OrderRef   `json:"order,omitempty"`
	Stock      *StockAlert `json:"stock,omitempty"`
	Message    string      `json:"message,omitempty"`
	CustomerID uint        `json:"customer_id,omitempty"`
	Audiences  []Audience  `json:"audiences,omitempty"`
}

// OrderRef carries the order fields a status event needs.
type OrderRef struct {
	OrderID     uint               `json:"order_id"`
	OrderNumber string             `json:"order_number"`
	Status      models.OrderStatus `json:"status"`
}

// StockAlert carries the inventory fields a low-stock event needs.
type StockAlert struct {
	DishID       uint   `json:"dish_id"`
	DishName     string `json:"dish_name"`
	CurrentStock int    `json:"current_stock"`
	MinimumStock int    `json:"minimum_stock"`
}

// Severity classifies a notification for display.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notification is the uniform record shown to users.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
	Payload   any       `json:"payload,omitempty"`
}

// statusMessages translates a new order status into display text.
var statusMessages = map[models.OrderStatus]string{
	models.StatusConfirmed: "Order confirmed",
	models.StatusPreparing: "Order is being prepared",
	models.StatusReady:     "Order is ready",
	models.StatusDelivered: "Order delivered",
	models.StatusCancelled: "Order cancelled",
}

// Map translates an event into a notification. It is a pure function apart
// from stamping the id and timestamp.
func Map(e Event) (Notification, error) {
	n := Notification{
		ID:        uuid.NewString(),
		Severity:  SeverityInfo,
		Timestamp: time.Now(),
		Payload:   e.Payload,
	}
	switch e.Kind {
	case EventNewOrder:
		if e.Order != nil {
			n.Message = fmt.Sprintf("New order received: %s", e.Order.OrderNumber)
		} else {
			n.Message = "New order received"
		}
	case EventStatusChanged:
		if e.Order == nil {
			return Notification{}, fmt.Errorf("statusChanged event without order reference")
		}
		msg, ok := statusMessages[e.Order.Status]
		if !ok {
			msg = "Order status updated"
		}
		n.Message = fmt.Sprintf("%s: %s", msg, e.Order.OrderNumber)
		if e.Order.Status == models.StatusCancelled {
			n.Severity = SeverityError
		}
	case EventLowStock:
		if e.Stock == nil {
			return Notification{}, fmt.Errorf("lowStock event without stock alert")
		}
		n.Message = fmt.Sprintf("Low stock: %s (%d remaining)", e.Stock.DishName, e.Stock.CurrentStock)
		n.Severity = SeverityWarning
	case EventCustomerMessage:
		n.Message = e.Message
	default:
		return Notification{}, fmt.Errorf("%w: %q", ErrUnknownEvent, e.Kind)
	}
	return n, nil
}
