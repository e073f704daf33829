package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"restaurant-orders-api/config"
	"restaurant-orders-api/middleware"
	"restaurant-orders-api/models"
)

// GetKitchenQueue returns active orders grouped the way the kitchen works
// through them: pending first, then preparing, then ready.
func GetKitchenQueue(c *gin.Context) {
	var orders []models.Order
	query := config.DB.Preload("Items").
		Where("status IN ?", []models.OrderStatus{
			models.StatusPending, models.StatusConfirmed, models.StatusPreparing, models.StatusReady,
		})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	query.Order("created_at asc").Find(&orders)

	grouped := map[string][]models.Order{}
	for _, o := range orders {
		grouped[string(o.Status)] = append(grouped[string(o.Status)], o)
	}

	c.JSON(http.StatusOK, gin.H{
		"count":  len(orders),
		"queue":  grouped,
		"orders": orders,
	})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	Note   string             `json:"note"`
}

// KitchenUpdateOrderStatus handles the chef's transitions: confirm, start
// preparing (including the pending shortcut when enabled) and mark ready.
func KitchenUpdateOrderStatus(c *gin.Context) {
	chefID := middleware.GetUserID(c)

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	applyTransition(c, order, req.Status, models.RoleChef, chefID, req.Note)
}
