package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"restaurant-orders-api/config"
	"restaurant-orders-api/middleware"
	"restaurant-orders-api/models"
)

// GetRestaurantOrders returns the order board for the manager's restaurant
// with a per-status summary.
func GetRestaurantOrders(c *gin.Context) {
	restaurant, ok := managerRestaurant(c)
	if !ok {
		return
	}

	var orders []models.Order
	query := config.DB.Preload("Items").Preload("Customer").Preload("Address").
		Where("restaurant_id = ?", restaurant.ID)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	query.Order("created_at desc").Find(&orders)

	summary := map[string]int{}
	for _, o := range orders {
		summary[string(o.Status)]++
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurant":    restaurant.Name,
		"order_summary": summary,
		"count":         len(orders),
		"orders":        orders,
	})
}

// ManagerUpdateOrderStatus handles the manager's transitions, including
// delivery confirmation and cancellations of in-flight orders.
func ManagerUpdateOrderStatus(c *gin.Context) {
	managerID := middleware.GetUserID(c)
	restaurant, ok := managerRestaurant(c)
	if !ok {
		return
	}

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.RestaurantID != restaurant.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to your restaurant"})
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	applyTransition(c, order, req.Status, models.RoleManager, managerID, req.Note)
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus models.PaymentStatus `json:"payment_status" binding:"required,oneof=pending paid refunded"`
}

// UpdatePaymentStatus sets the payment state for an order. Payment moves
// independently of the order status; a refund is only sensible for a paid
// order.
func UpdatePaymentStatus(c *gin.Context) {
	restaurant, ok := managerRestaurant(c)
	if !ok {
		return
	}

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.RestaurantID != restaurant.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to your restaurant"})
		return
	}

	var req UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.PaymentStatus == models.PaymentRefunded && order.PaymentStatus != models.PaymentPaid {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Only a paid order can be refunded"})
		return
	}

	config.DB.Model(&order).Update("payment_status", req.PaymentStatus)
	c.JSON(http.StatusOK, gin.H{
		"message":        "Payment status updated",
		"order_id":       order.ID,
		"payment_status": req.PaymentStatus,
	})
}

// GetSalesSummary aggregates delivered-order revenue for the manager's
// restaurant dashboard.
func GetSalesSummary(c *gin.Context) {
	restaurant, ok := managerRestaurant(c)
	if !ok {
		return
	}

	var orders []models.Order
	config.DB.Where("restaurant_id = ? AND status = ?", restaurant.ID, models.StatusDelivered).
		Find(&orders)

	revenue := decimal.Zero
	for _, o := range orders {
		revenue = revenue.Add(o.Total)
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurant":       restaurant.Name,
		"delivered_orders": len(orders),
		"total_revenue":    revenue,
	})
}
