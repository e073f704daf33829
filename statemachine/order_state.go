package statemachine

import (
	"errors"
	"fmt"

	"restaurant-orders-api/models"
)

// Transition failure kinds. Handlers map these to HTTP codes with errors.Is.
var (
	// ErrIllegalTransition means the requested status is not reachable from
	// the current status for any actor.
	ErrIllegalTransition = errors.New("illegal transition")
	// ErrUnauthorized means the transition exists but the actor role may not
	// perform it.
	ErrUnauthorized = errors.New("actor not authorized for transition")
	// ErrAlreadyTerminal means the order is delivered or cancelled and can no
	// longer change state.
	ErrAlreadyTerminal = errors.New("order is in a terminal state")
)

// Policy holds the named configuration choices of the lifecycle.
type Policy struct {
	// KitchenShortcut allows kitchen staff to move a pending order straight
	// to preparing, skipping the explicit confirmed step.
	KitchenShortcut bool
}

// DefaultPolicy matches production behavior: the kitchen shortcut is on.
var DefaultPolicy = Policy{KitchenShortcut: true}

// Transition defines a valid state change and who can perform it
type Transition struct {
	From     models.OrderStatus `json:"from"`
	To       models.OrderStatus `json:"to"`
	Actor    models.UserRole    `json:"actor"`
	Shortcut bool               `json:"shortcut,omitempty"`
}

// validTransitions is the authoritative state machine definition
var validTransitions = []Transition{
	// Kitchen staff or management confirm the order
	{From: models.StatusPending, To: models.StatusConfirmed, Actor: models.RoleChef},
	{From: models.StatusPending, To: models.StatusConfirmed, Actor: models.RoleManager},
	{From: models.StatusPending, To: models.StatusConfirmed, Actor: models.RoleAdmin},
	// Kitchen shortcut: start preparing without an explicit confirmation
	{From: models.StatusPending, To: models.StatusPreparing, Actor: models.RoleChef, Shortcut: true},
	{From: models.StatusPending, To: models.StatusPreparing, Actor: models.RoleManager, Shortcut: true},
	{From: models.StatusPending, To: models.StatusPreparing, Actor: models.RoleAdmin, Shortcut: true},
	// Only the customer or an admin may cancel a PENDING order
	{From: models.StatusPending, To: models.StatusCancelled, Actor: models.RoleCustomer},
	{From: models.StatusPending, To: models.StatusCancelled, Actor: models.RoleAdmin},
	// Kitchen starts preparing a confirmed order
	{From: models.StatusConfirmed, To: models.StatusPreparing, Actor: models.RoleChef},
	{From: models.StatusConfirmed, To: models.StatusPreparing, Actor: models.RoleManager},
	{From: models.StatusConfirmed, To: models.StatusPreparing, Actor: models.RoleAdmin},
	// Management cancels a CONFIRMED or PREPARING order
	{From: models.StatusConfirmed, To: models.StatusCancelled, Actor: models.RoleManager},
	{From: models.StatusConfirmed, To: models.StatusCancelled, Actor: models.RoleAdmin},
	{From: models.StatusPreparing, To: models.StatusCancelled, Actor: models.RoleManager},
	{From: models.StatusPreparing, To: models.StatusCancelled, Actor: models.RoleAdmin},
	// Kitchen marks the order ready
	{From: models.StatusPreparing, To: models.StatusReady, Actor: models.RoleChef},
	{From: models.StatusPreparing, To: models.StatusReady, Actor: models.RoleManager},
	{From: models.StatusPreparing, To: models.StatusReady, Actor: models.RoleAdmin},
	// Delivery confirmation is management-only
	{From: models.StatusReady, To: models.StatusDelivered, Actor: models.RoleManager},
	{From: models.StatusReady, To: models.StatusDelivered, Actor: models.RoleAdmin},
}

// transitionKey is used to look up valid transitions quickly
type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor models.UserRole
}

// Machine evaluates transition requests against the table under a policy.
type Machine struct {
	policy  Policy
	byActor map[transitionKey]bool
	byPair  map[transitionKey]bool // Actor left zero: pair exists for some actor
}

// New builds a machine for the given policy. Shortcut rows are dropped from
// both lookup maps when the policy disables them.
func New(p Policy) *Machine {
	m := &Machine{
		policy:  p,
		byActor: make(map[transitionKey]bool),
		byPair:  make(map[transitionKey]bool),
	}
	for _, t := range validTransitions {
		if t.Shortcut && !p.KitchenShortcut {
			continue
		}
		m.byActor[transitionKey{t.From, t.To, t.Actor}] = true
		m.byPair[transitionKey{From: t.From, To: t.To}] = true
	}
	return m
}

// Terminal reports whether no further transition is possible from status
func Terminal(status models.OrderStatus) bool {
	return status == models.StatusDelivered || status == models.StatusCancelled
}

// NextStates returns all valid next states from a given state
func (m *Machine) NextStates(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.Shortcut && !m.policy.KitchenShortcut {
			continue
		}
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// RequestTransition validates the requested status change and, if legal,
// returns a copy of the order with only Status updated plus the side effects
// the caller must dispatch. The input order is never mutated and no I/O
// happens here; the caller commits the returned order only after the
// downstream write succeeds.
func (m *Machine) RequestTransition(order models.Order, to models.OrderStatus, actor models.UserRole) (models.Order, Effect, error) {
	from := order.Status
	if Terminal(from) {
		return order, Effect{}, fmt.Errorf("%w: order %s is %s", ErrAlreadyTerminal, order.OrderNumber, from)
	}
	if !m.byPair[transitionKey{From: from, To: to}] {
		return order, Effect{}, fmt.Errorf("%w: %s → %s (valid next states: %v)",
			ErrIllegalTransition, from, to, m.NextStates(from))
	}
	if !m.byActor[transitionKey{From: from, To: to, Actor: actor}] {
		return order, Effect{}, fmt.Errorf("%w: role %q may not perform %s → %s",
			ErrUnauthorized, actor, from, to)
	}
	updated := order
	updated.Status = to
	return updated, effectFor(to), nil
}

// Transitions returns the full state machine under this machine's policy,
// for the public documentation endpoint.
func (m *Machine) Transitions() []Transition {
	out := make([]Transition, 0, len(validTransitions))
	for _, t := range validTransitions {
		if t.Shortcut && !m.policy.KitchenShortcut {
			continue
		}
		out = append(out, t)
	}
	return out
}
