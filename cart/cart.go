// Package cart computes order pricing from a list of dish line items. All
// operations are copy-on-write: they take a cart value and return a new one,
// so a failed downstream call never leaves a half-mutated cart behind.
package cart

import (
	"errors"

	"github.com/shopspring/decimal"

	"restaurant-orders-api/models"
)

// ErrInvalidQuantity is returned by AddItem for non-positive quantities.
// Use RemoveItem to take a line out of the cart.
var ErrInvalidQuantity = errors.New("quantity must be greater than zero")

// TaxRate is applied to the subtotal (10%).
var TaxRate = decimal.NewFromFloat(0.10)

// Line is one (dish, quantity) pairing. Name and unit price are captured by
// value at insertion time, mirroring the snapshot semantics of OrderItem.
type Line struct {
	DishID    uint            `json:"dish_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// Cart holds the pre-order line items and the externally supplied delivery
// fee. Totals are never stored on the cart; call Totals to derive them.
type Cart struct {
	Lines       []Line          `json:"lines"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
}

// Totals is the derived pricing snapshot for a cart.
type Totals struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// AddItem merges quantity into an existing line for the dish, or appends a
// new line with the dish's current price snapshotted.
func AddItem(c Cart, dish models.Dish, quantity int) (Cart, error) {
	if quantity <= 0 {
		return c, ErrInvalidQuantity
	}
	out := clone(c)
	for i := range out.Lines {
		if out.Lines[i].DishID == dish.ID {
			out.Lines[i].Quantity += quantity
			return out, nil
		}
	}
	out.Lines = append(out.Lines, Line{
		DishID:    dish.ID,
		Name:      dish.Name,
		UnitPrice: dish.Price,
		Quantity:  quantity,
	})
	return out, nil
}

// SetQuantity replaces a line's quantity. A non-positive quantity removes
// the line, same as RemoveItem.
func SetQuantity(c Cart, dishID uint, quantity int) Cart {
	if quantity <= 0 {
		return RemoveItem(c, dishID)
	}
	out := clone(c)
	for i := range out.Lines {
		if out.Lines[i].DishID == dishID {
			out.Lines[i].Quantity = quantity
			break
		}
	}
	return out
}

// RemoveItem deletes the line for dishID. Removing an absent line is a no-op.
func RemoveItem(c Cart, dishID uint) Cart {
	out := Cart{DeliveryFee: c.DeliveryFee}
	for _, l := range c.Lines {
		if l.DishID != dishID {
			out.Lines = append(out.Lines, l)
		}
	}
	return out
}

// SetDeliveryFee updates the fee sourced from the restaurant configuration.
func SetDeliveryFee(c Cart, fee decimal.Decimal) Cart {
	out := clone(c)
	out.DeliveryFee = fee
	return out
}

// Clear empties the cart and resets the delivery fee.
func Clear(Cart) Cart {
	return Cart{}
}

// ItemCount is the total quantity across all lines.
func ItemCount(c Cart) int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// Totals recomputes pricing from scratch on every call, never incrementally:
// subtotal = Σ(price × qty), tax = subtotal × TaxRate,
// grand total = subtotal + delivery fee + tax.
func (c Cart) Totals() Totals {
	subtotal := decimal.Zero
	for _, l := range c.Lines {
		subtotal = subtotal.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	tax := subtotal.Mul(TaxRate)
	return Totals{
		Subtotal:   subtotal,
		Tax:        tax,
		GrandTotal: subtotal.Add(c.DeliveryFee).Add(tax),
	}
}

func clone(c Cart) Cart {
	out := Cart{DeliveryFee: c.DeliveryFee}
	out.Lines = append(out.Lines, c.Lines...)
	return out
}
