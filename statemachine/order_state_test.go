package statemachine

import (
	"errors"
	"testing"

	"restaurant-orders-api/models"
)

var allStatuses = []models.OrderStatus{
	models.StatusPending,
	models.StatusConfirmed,
	models.StatusPreparing,
	models.StatusReady,
	models.StatusDelivered,
	models.StatusCancelled,
}

var allRoles = []models.UserRole{
	models.RoleCustomer,
	models.RoleChef,
	models.RoleManager,
	models.RoleAdmin,
}

// allowedPairs mirrors the design's transition table, independent of the
// implementation's own table, so the two are checked against each other.
var allowedPairs = map[models.OrderStatus][]models.OrderStatus{
	models.StatusPending:   {models.StatusConfirmed, models.StatusPreparing, models.StatusCancelled},
	models.StatusConfirmed: {models.StatusPreparing, models.StatusCancelled},
	models.StatusPreparing: {models.StatusReady, models.StatusCancelled},
	models.StatusReady:     {models.StatusDelivered},
	models.StatusDelivered: {},
	models.StatusCancelled: {},
}

func pairAllowed(from, to models.OrderStatus) bool {
	for _, s := range allowedPairs[from] {
		if s == to {
			return true
		}
	}
	return false
}

func orderIn(status models.OrderStatus) models.Order {
	return models.Order{ID: 1, OrderNumber: "ORD-20240101-TEST01", Status: status}
}

func TestTransitionCompleteness(t *testing.T) {
	m := New(DefaultPolicy)
	for _, from := range allStatuses {
		if Terminal(from) {
			continue
		}
		for _, to := range allStatuses {
			if pairAllowed(from, to) {
				continue
			}
			_, _, err := m.RequestTransition(orderIn(from), to, models.RoleAdmin)
			if !errors.Is(err, ErrIllegalTransition) {
				t.Errorf("%s → %s: want ErrIllegalTransition, got %v", from, to, err)
			}
		}
	}
}

func TestAllowedPairsReachable(t *testing.T) {
	m := New(DefaultPolicy)
	for _, from := range allStatuses {
		for _, to := range allowedPairs[from] {
			ok := false
			for _, actor := range allRoles {
				if _, _, err := m.RequestTransition(orderIn(from), to, actor); err == nil {
					ok = true
					break
				}
			}
			if !ok {
				t.Errorf("%s → %s: no actor can perform a transition the table allows", from, to)
			}
		}
	}
}

func TestTerminalImmutability(t *testing.T) {
	m := New(DefaultPolicy)
	for _, from := range []models.OrderStatus{models.StatusDelivered, models.StatusCancelled} {
		for _, to := range allStatuses {
			for _, actor := range allRoles {
				_, _, err := m.RequestTransition(orderIn(from), to, actor)
				if !errors.Is(err, ErrAlreadyTerminal) {
					t.Errorf("%s → %s as %s: want ErrAlreadyTerminal, got %v", from, to, actor, err)
				}
			}
		}
	}
}

func TestRoleGatingOnPendingCancel(t *testing.T) {
	m := New(DefaultPolicy)

	if _, _, err := m.RequestTransition(orderIn(models.StatusPending), models.StatusCancelled, models.RoleChef); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("chef cancelling pending: want ErrUnauthorized, got %v", err)
	}
	if _, _, err := m.RequestTransition(orderIn(models.StatusPending), models.StatusCancelled, models.RoleManager); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("manager cancelling pending: want ErrUnauthorized, got %v", err)
	}
	for _, actor := range []models.UserRole{models.RoleCustomer, models.RoleAdmin} {
		if _, _, err := m.RequestTransition(orderIn(models.StatusPending), models.StatusCancelled, actor); err != nil {
			t.Errorf("%s cancelling pending: want success, got %v", actor, err)
		}
	}
}

func TestCustomerCannotAdvanceOrders(t *testing.T) {
	m := New(DefaultPolicy)
	cases := []struct {
		from, to models.OrderStatus
	}{
		{models.StatusPending, models.StatusConfirmed},
		{models.StatusConfirmed, models.StatusPreparing},
		{models.StatusPreparing, models.StatusReady},
		{models.StatusReady, models.StatusDelivered},
	}
	for _, tc := range cases {
		if _, _, err := m.RequestTransition(orderIn(tc.from), tc.to, models.RoleCustomer); !errors.Is(err, ErrUnauthorized) {
			t.Errorf("customer %s → %s: want ErrUnauthorized, got %v", tc.from, tc.to, err)
		}
	}
}

func TestDeliveryIsManagementOnly(t *testing.T) {
	m := New(DefaultPolicy)
	if _, _, err := m.RequestTransition(orderIn(models.StatusReady), models.StatusDelivered, models.RoleChef); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("chef delivering: want ErrUnauthorized, got %v", err)
	}
	for _, actor := range []models.UserRole{models.RoleManager, models.RoleAdmin} {
		updated, _, err := m.RequestTransition(orderIn(models.StatusReady), models.StatusDelivered, actor)
		if err != nil {
			t.Fatalf("%s delivering: want success, got %v", actor, err)
		}
		if updated.Status != models.StatusDelivered {
			t.Errorf("status = %s, want delivered", updated.Status)
		}
	}
}

func TestKitchenShortcutPolicy(t *testing.T) {
	on := New(Policy{KitchenShortcut: true})
	if _, _, err := on.RequestTransition(orderIn(models.StatusPending), models.StatusPreparing, models.RoleChef); err != nil {
		t.Errorf("shortcut on: want success, got %v", err)
	}

	off := New(Policy{KitchenShortcut: false})
	if _, _, err := off.RequestTransition(orderIn(models.StatusPending), models.StatusPreparing, models.RoleChef); !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("shortcut off: want ErrIllegalTransition, got %v", err)
	}
	// The regular confirmed → preparing path is unaffected
	if _, _, err := off.RequestTransition(orderIn(models.StatusConfirmed), models.StatusPreparing, models.RoleChef); err != nil {
		t.Errorf("shortcut off, confirmed → preparing: want success, got %v", err)
	}
	for _, s := range off.NextStates(models.StatusPending) {
		if s == models.StatusPreparing {
			t.Error("shortcut off: preparing still listed as next state of pending")
		}
	}
}

func TestRequestTransitionCopiesOrder(t *testing.T) {
	m := New(DefaultPolicy)
	in := orderIn(models.StatusPending)
	updated, _, err := m.RequestTransition(in, models.StatusConfirmed, models.RoleChef)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Status != models.StatusPending {
		t.Errorf("input order mutated: status = %s", in.Status)
	}
	if updated.Status != models.StatusConfirmed {
		t.Errorf("updated status = %s, want confirmed", updated.Status)
	}
	if updated.ID != in.ID || updated.OrderNumber != in.OrderNumber {
		t.Error("fields other than status were changed")
	}
}

func TestEndToEndKitchenFlow(t *testing.T) {
	m := New(DefaultPolicy)
	order := orderIn(models.StatusPending)

	// Chef takes the shortcut straight to preparing
	order, _, err := m.RequestTransition(order, models.StatusPreparing, models.RoleChef)
	if err != nil {
		t.Fatalf("chef pending → preparing: %v", err)
	}

	// Manager marks it ready
	order, _, err = m.RequestTransition(order, models.StatusReady, models.RoleManager)
	if err != nil {
		t.Fatalf("manager preparing → ready: %v", err)
	}

	// Ready is not terminal, so a customer cancellation attempt fails as an
	// illegal transition, not as a terminal-state error
	_, _, err = m.RequestTransition(order, models.StatusCancelled, models.RoleCustomer)
	if !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("customer cancelling ready order: want ErrIllegalTransition, got %v", err)
	}

	// Delivery closes it out
	order, _, err = m.RequestTransition(order, models.StatusDelivered, models.RoleManager)
	if err != nil {
		t.Fatalf("manager ready → delivered: %v", err)
	}
	if _, _, err := m.RequestTransition(order, models.StatusCancelled, models.RoleAdmin); !errors.Is(err, ErrAlreadyTerminal) {
		t.Errorf("transition after delivery: want ErrAlreadyTerminal, got %v", err)
	}
}

func TestEffects(t *testing.T) {
	m := New(DefaultPolicy)

	_, effect, err := m.RequestTransition(orderIn(models.StatusPending), models.StatusCancelled, models.RoleCustomer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if effect.MessageKey != "order.cancelled" {
		t.Errorf("message key = %q, want order.cancelled", effect.MessageKey)
	}
	found := false
	for _, a := range effect.Notify {
		if a == AudienceKitchen {
			found = true
		}
	}
	if !found {
		t.Error("cancellation effect does not notify the kitchen")
	}

	_, effect, err = m.RequestTransition(orderIn(models.StatusPending), models.StatusConfirmed, models.RoleManager)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if effect.MessageKey != "order.confirmed" {
		t.Errorf("message key = %q, want order.confirmed", effect.MessageKey)
	}
	if len(effect.Notify) == 0 {
		t.Error("confirmation effect notifies nobody")
	}
}

func TestNextStates(t *testing.T) {
	m := New(DefaultPolicy)
	cases := []struct {
		from models.OrderStatus
		want int
	}{
		{models.StatusPending, 3},
		{models.StatusConfirmed, 2},
		{models.StatusPreparing, 2},
		{models.StatusReady, 1},
		{models.StatusDelivered, 0},
		{models.StatusCancelled, 0},
	}
	for _, tc := range cases {
		if got := len(m.NextStates(tc.from)); got != tc.want {
			t.Errorf("NextStates(%s) has %d entries, want %d", tc.from, got, tc.want)
		}
	}
}
