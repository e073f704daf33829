package notifier

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"restaurant-orders-api/models"
)

func statusEvent(status models.OrderStatus) Event {
	return Event{
		Kind: EventStatusChanged,
		Order: &OrderRef{
			OrderID:     7,
			OrderNumber: "ORD-20240101-ABC123",
			Status:      status,
		},
	}
}

func TestMapStatusSeverities(t *testing.T) {
	cases := []struct {
		status models.OrderStatus
		want   Severity
	}{
		{models.StatusConfirmed, SeverityInfo},
		{models.StatusPreparing, SeverityInfo},
		{models.StatusReady, SeverityInfo},
		{models.StatusDelivered, SeverityInfo},
		{models.StatusCancelled, SeverityError},
	}
	for _, tc := range cases {
		n, err := Map(statusEvent(tc.status))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.status, err)
		}
		if n.Severity != tc.want {
			t.Errorf("%s: severity = %s, want %s", tc.status, n.Severity, tc.want)
		}
		if !strings.Contains(n.Message, "ORD-20240101-ABC123") {
			t.Errorf("%s: message %q lacks order number", tc.status, n.Message)
		}
		if n.Read {
			t.Errorf("%s: new notification already read", tc.status)
		}
		if n.ID == "" {
			t.Errorf("%s: empty notification id", tc.status)
		}
	}
}

func TestMapLowStock(t *testing.T) {
	n, err := Map(Event{
		Kind: EventLowStock,
		Stock: &StockAlert{
			DishID:       3,
			DishName:     "Tagine",
			CurrentStock: 2,
			MinimumStock: 5,
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Severity != SeverityWarning {
		t.Errorf("severity = %s, want warning", n.Severity)
	}
	if !strings.Contains(n.Message, "Tagine") || !strings.Contains(n.Message, "2") {
		t.Errorf("message %q lacks dish name or stock count", n.Message)
	}
}

func TestMapNewOrderAndCustomerMessage(t *testing.T) {
	n, err := Map(Event{Kind: EventNewOrder, Order: &OrderRef{OrderNumber: "ORD-X"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Severity != SeverityInfo || !strings.Contains(n.Message, "ORD-X") {
		t.Errorf("new order notification = %+v", n)
	}

	n, err = Map(Event{Kind: EventCustomerMessage, Message: "Your driver is outside"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Message != "Your driver is outside" {
		t.Errorf("message = %q", n.Message)
	}
}

func TestMapUnknownKind(t *testing.T) {
	if _, err := Map(Event{Kind: "driverLocation"}); !errors.Is(err, ErrUnknownEvent) {
		t.Errorf("want ErrUnknownEvent, got %v", err)
	}
}

func TestCenterUnreadAccounting(t *testing.T) {
	c := NewCenter(nil)

	a, _ := Map(statusEvent(models.StatusConfirmed))
	b, _ := Map(statusEvent(models.StatusReady))
	c.Add(a)
	c.Add(b)

	if got := c.Unread(); got != 2 {
		t.Fatalf("unread = %d, want 2", got)
	}
	// Newest first
	if all := c.All(); all[0].ID != b.ID {
		t.Error("notifications not newest-first")
	}

	c.MarkRead(a.ID)
	if got := c.Unread(); got != 1 {
		t.Errorf("unread after read = %d, want 1", got)
	}
	// Marking read twice must not double-decrement
	c.MarkRead(a.ID)
	if got := c.Unread(); got != 1 {
		t.Errorf("unread after repeated read = %d, want 1", got)
	}

	// Removing an unread entry decrements the count
	c.Remove(b.ID)
	if got := c.Unread(); got != 0 {
		t.Errorf("unread after removing unread = %d, want 0", got)
	}
	if got := len(c.All()); got != 1 {
		t.Errorf("notifications = %d, want 1", got)
	}

	c.Clear()
	if c.Unread() != 0 || len(c.All()) != 0 {
		t.Error("clear left state behind")
	}
}

func TestCenterMarkAllRead(t *testing.T) {
	c := NewCenter(nil)
	for i := 0; i < 3; i++ {
		n, _ := Map(statusEvent(models.StatusPreparing))
		c.Add(n)
	}
	c.MarkAllRead()
	if got := c.Unread(); got != 0 {
		t.Errorf("unread = %d, want 0", got)
	}
	for _, n := range c.All() {
		if !n.Read {
			t.Error("notification left unread after MarkAllRead")
		}
	}
}

func TestCenterRunConsumesChannel(t *testing.T) {
	c := NewCenter(nil)
	events := make(chan Event, 4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		c.Run(ctx, events)
		close(done)
	}()

	events <- statusEvent(models.StatusCancelled)
	events <- Event{Kind: "bogus"} // dropped, must not kill the consumer
	events <- statusEvent(models.StatusReady)
	close(events)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after channel close")
	}

	if got := c.Unread(); got != 2 {
		t.Errorf("unread = %d, want 2 (bogus event should be dropped)", got)
	}
	all := c.All()
	if len(all) != 2 {
		t.Fatalf("notifications = %d, want 2", len(all))
	}
	if all[1].Severity != SeverityError {
		t.Errorf("cancelled notification severity = %s, want error", all[1].Severity)
	}
}
