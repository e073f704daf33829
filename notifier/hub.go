package notifier

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"restaurant-orders-api/models"
)

// Hub routes events to per-audience inboxes. Staff roles share one inbox
// per role; every customer gets a private inbox keyed by user id. Manager
// notifications are visible to admins as well.
type Hub struct {
	mu        sync.Mutex
	staff     map[models.UserRole]*Center
	customers map[uint]*Center
	log       *zap.Logger
}

// NewHub creates a hub with empty staff inboxes.
func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		staff: map[models.UserRole]*Center{
			models.RoleChef:    NewCenter(log),
			models.RoleManager: NewCenter(log),
			models.RoleAdmin:   NewCenter(log),
		},
		customers: make(map[uint]*Center),
		log:       log,
	}
}

// CenterFor returns the inbox the given user may read and mutate. Customers
// only ever see their own inbox; staff see the shared inbox for their role.
func (h *Hub) CenterFor(role models.UserRole, userID uint) *Center {
	if c, ok := h.staff[role]; ok {
		return c
	}
	return h.customerCenter(userID)
}

func (h *Hub) customerCenter(userID uint) *Center {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.customers[userID]
	if !ok {
		c = NewCenter(h.log)
		h.customers[userID] = c
	}
	return c
}

// Run consumes events from the channel until it closes or ctx is cancelled.
// Malformed events are logged and skipped, matching the consumer loop on the
// transport side.
func (h *Hub) Run(ctx context.Context, events <-chan Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			h.Deliver(e)
		}
	}
}

// Deliver maps one event and adds the notification to every target inbox.
func (h *Hub) Deliver(e Event) {
	n, err := Map(e)
	if err != nil {
		h.log.Warn("dropping event", zap.String("kind", string(e.Kind)), zap.Error(err))
		return
	}
	for _, a := range audiencesFor(e) {
		switch a {
		case AudienceCustomer:
			if e.CustomerID != 0 {
				h.customerCenter(e.CustomerID).Add(n)
			}
		case AudienceKitchen:
			h.staff[models.RoleChef].Add(n)
		case AudienceManager:
			h.staff[models.RoleManager].Add(n)
			h.staff[models.RoleAdmin].Add(n)
		default:
			h.log.Warn("dropping unknown audience", zap.String("audience", string(a)))
		}
	}
}

// audiencesFor resolves the delivery targets of an event. Explicit audiences
// win; otherwise new orders and stock alerts go to staff, status changes go
// everywhere, and direct messages go to the customer alone.
func audiencesFor(e Event) []Audience {
	if len(e.Audiences) > 0 {
		return e.Audiences
	}
	switch e.Kind {
	case EventNewOrder, EventLowStock:
		return []Audience{AudienceKitchen, AudienceManager}
	case EventStatusChanged:
		return []Audience{AudienceCustomer, AudienceKitchen, AudienceManager}
	case EventCustomerMessage:
		return []Audience{AudienceCustomer}
	}
	return nil
}
