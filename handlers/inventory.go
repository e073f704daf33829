package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"restaurant-orders-api/config"
	"restaurant-orders-api/models"
	"restaurant-orders-api/notifier"
)

// GetInventory lists the stock levels for the manager's restaurant, flagging
// items at or below their minimum.
func GetInventory(c *gin.Context) {
	restaurant, ok := managerRestaurant(c)
	if !ok {
		return
	}

	var items []models.InventoryItem
	query := config.DB.Preload("Dish").Where("restaurant_id = ?", restaurant.ID)
	if c.Query("low") == "true" {
		query = query.Where("is_tracked = ? AND current_stock <= minimum_stock", true)
	}
	query.Find(&items)

	low := 0
	for _, it := range items {
		if it.LowStock() {
			low++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"count":     len(items),
		"low_stock": low,
		"inventory": items,
	})
}

type UpsertInventoryRequest struct {
	DishID       uint  `json:"dish_id" binding:"required"`
	MinimumStock int   `json:"minimum_stock"`
	MaximumStock int   `json:"maximum_stock"`
	IsTracked    *bool `json:"is_tracked"`
}

// UpsertInventory creates or updates stock tracking for a dish
func UpsertInventory(c *gin.Context) {
	restaurant, ok := managerRestaurant(c)
	if !ok {
		return
	}

	var req UpsertInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var dish models.Dish
	if err := config.DB.First(&dish, req.DishID).Error; err != nil || dish.RestaurantID != restaurant.ID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Dish not found in your restaurant"})
		return
	}

	var inv models.InventoryItem
	if err := config.DB.Where("dish_id = ?", req.DishID).First(&inv).Error; err != nil {
		inv = models.InventoryItem{
			DishID:       req.DishID,
			RestaurantID: restaurant.ID,
			MinimumStock: req.MinimumStock,
			MaximumStock: req.MaximumStock,
			IsTracked:    true,
		}
		if req.IsTracked != nil {
			inv.IsTracked = *req.IsTracked
		}
		config.DB.Create(&inv)
		c.JSON(http.StatusCreated, gin.H{"message": "Inventory tracking created", "inventory": inv})
		return
	}

	updates := map[string]interface{}{
		"minimum_stock": req.MinimumStock,
		"maximum_stock": req.MaximumStock,
	}
	if req.IsTracked != nil {
		updates["is_tracked"] = *req.IsTracked
	}
	config.DB.Model(&inv).Updates(updates)
	c.JSON(http.StatusOK, gin.H{"message": "Inventory updated", "inventory": inv})
}

type RestockRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// Restock adds stock for a dish. Restocking is a manager operation separate
// from the order flow, which only ever consumes stock.
func Restock(c *gin.Context) {
	restaurant, ok := managerRestaurant(c)
	if !ok {
		return
	}

	var inv models.InventoryItem
	if err := config.DB.First(&inv, c.Param("id")).Error; err != nil || inv.RestaurantID != restaurant.ID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Inventory item not found"})
		return
	}

	var req RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newStock := inv.CurrentStock + req.Quantity
	if inv.MaximumStock > 0 && newStock > inv.MaximumStock {
		newStock = inv.MaximumStock
	}
	config.DB.Model(&inv).Updates(map[string]interface{}{
		"current_stock":  newStock,
		"last_restocked": time.Now(),
	})

	c.JSON(http.StatusOK, gin.H{
		"message":       "Stock updated",
		"inventory_id":  inv.ID,
		"current_stock": newStock,
	})
}

// NotifyLowStock re-checks every tracked item and emits alerts for those at
// or below minimum, so a manager can trigger a sweep on demand.
func NotifyLowStock(c *gin.Context) {
	restaurant, ok := managerRestaurant(c)
	if !ok {
		return
	}

	var items []models.InventoryItem
	config.DB.Preload("Dish").
		Where("restaurant_id = ? AND is_tracked = ? AND current_stock <= minimum_stock", restaurant.ID, true).
		Find(&items)

	for _, it := range items {
		config.Publish(notifier.Event{
			Kind: notifier.EventLowStock,
			Stock: &notifier.StockAlert{
				DishID:       it.DishID,
				DishName:     it.Dish.Name,
				CurrentStock: it.CurrentStock,
				MinimumStock: it.MinimumStock,
			},
		})
	}

	c.JSON(http.StatusOK, gin.H{"message": "Low stock alerts dispatched", "count": len(items)})
}
