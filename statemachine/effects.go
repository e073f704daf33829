package statemachine

import "restaurant-orders-api/models"

// Audience identifies who should be told about a status change.
type Audience string

const (
	AudienceCustomer Audience = "customer"
	AudienceKitchen  Audience = "kitchen"
	AudienceManager  Audience = "manager"
)

// Effect describes the side effects of a successful transition. The machine
// never performs them; the caller dispatches notifications and refreshes the
// listed queries after committing the new status.
type Effect struct {
	MessageKey string     `json:"message_key"`
	Notify     []Audience `json:"notify"`
	Refetch    []string   `json:"refetch"`
}

// effects maps each reachable target status to what must happen after the
// transition commits. The customer hears about every change; the kitchen
// cares when an order becomes theirs, management when one is cancelled.
var effects = map[models.OrderStatus]Effect{
	models.StatusConfirmed: {
		MessageKey: "order.confirmed",
		Notify:     []Audience{AudienceCustomer, AudienceKitchen},
		Refetch:    []string{"orders", "kitchen-queue"},
	},
	models.StatusPreparing: {
		MessageKey: "order.preparing",
		Notify:     []Audience{AudienceCustomer},
		Refetch:    []string{"orders", "kitchen-queue"},
	},
	models.StatusReady: {
		MessageKey: "order.ready",
		Notify:     []Audience{AudienceCustomer, AudienceManager},
		Refetch:    []string{"orders"},
	},
	models.StatusDelivered: {
		MessageKey: "order.delivered",
		Notify:     []Audience{AudienceCustomer},
		Refetch:    []string{"orders"},
	},
	models.StatusCancelled: {
		MessageKey: "order.cancelled",
		Notify:     []Audience{AudienceCustomer, AudienceKitchen, AudienceManager},
		Refetch:    []string{"orders", "kitchen-queue"},
	},
}

func effectFor(to models.OrderStatus) Effect {
	return effects[to]
}
