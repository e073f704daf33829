package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"restaurant-orders-api/config"
	"restaurant-orders-api/models"
	"restaurant-orders-api/notifier"
	"restaurant-orders-api/statemachine"
)

// applyTransition runs the lifecycle check for an order, commits the new
// status, records the audit row and dispatches the effect's notifications.
// The commit only matches the row when its status is still the one the
// lifecycle validated against; zero rows affected means another actor moved
// the order first and the caller gets a conflict.
func applyTransition(c *gin.Context, order models.Order, to models.OrderStatus, actor models.UserRole, actorID uint, note string) bool {
	updated, effect, err := config.Lifecycle.RequestTransition(order, to, actor)
	if err != nil {
		switch {
		case errors.Is(err, statemachine.ErrAlreadyTerminal):
			c.JSON(http.StatusConflict, gin.H{
				"error":          "Order is no longer editable",
				"reason":         err.Error(),
				"current_status": order.Status,
			})
		case errors.Is(err, statemachine.ErrUnauthorized):
			c.JSON(http.StatusForbidden, gin.H{
				"error":  "You are not allowed to perform this transition",
				"reason": err.Error(),
			})
		default:
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":             "Invalid state transition",
				"current_status":    order.Status,
				"requested":         to,
				"reason":            err.Error(),
				"valid_next_states": config.Lifecycle.NextStates(order.Status),
			})
		}
		return false
	}

	res := config.DB.Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, order.Status).
		Update("status", updated.Status)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		return false
	}
	if res.RowsAffected == 0 {
		var current models.Order
		config.DB.First(&current, order.ID)
		c.JSON(http.StatusConflict, gin.H{
			"error":          "Order status changed concurrently, please retry",
			"expected":       order.Status,
			"current_status": current.Status,
		})
		return false
	}

	history := models.OrderStatusHistory{
		OrderID:    order.ID,
		FromStatus: order.Status,
		ToStatus:   updated.Status,
		ChangedBy:  actorID,
		Note:       note,
	}
	config.DB.Create(&history)

	audiences := make([]notifier.Audience, 0, len(effect.Notify))
	for _, a := range effect.Notify {
		audiences = append(audiences, notifier.Audience(a))
	}
	config.Publish(notifier.Event{
		Kind: notifier.EventStatusChanged,
		Order: &notifier.OrderRef{
			OrderID:     order.ID,
			OrderNumber: order.OrderNumber,
			Status:      updated.Status,
		},
		CustomerID: order.CustomerID,
		Audiences:  audiences,
		Payload:    effect,
	})

	config.Log.Info("order status updated",
		zap.String("order", order.OrderNumber),
		zap.String("from", string(order.Status)),
		zap.String("to", string(updated.Status)),
		zap.String("actor", string(actor)),
	)

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status updated",
		"order_id":        order.ID,
		"order_number":    order.OrderNumber,
		"previous_status": order.Status,
		"current_status":  updated.Status,
		"effect":          effect,
	})
	return true
}
