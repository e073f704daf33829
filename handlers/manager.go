package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"restaurant-orders-api/config"
	"restaurant-orders-api/middleware"
	"restaurant-orders-api/models"
)

type RestaurantRequest struct {
	Name        string          `json:"name" binding:"required"`
	Address     string          `json:"address"`
	Phone       string          `json:"phone"`
	Description string          `json:"description"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	IsOpen      *bool           `json:"is_open"`
}

// managerRestaurant loads the restaurant owned by the calling manager
func managerRestaurant(c *gin.Context) (models.Restaurant, bool) {
	managerID := middleware.GetUserID(c)
	var restaurant models.Restaurant
	if err := config.DB.Where("manager_id = ?", managerID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant found for your account"})
		return restaurant, false
	}
	return restaurant, true
}

// CreateRestaurant registers the manager's restaurant
func CreateRestaurant(c *gin.Context) {
	managerID := middleware.GetUserID(c)

	var existing models.Restaurant
	if result := config.DB.Where("manager_id = ?", managerID).First(&existing); result.Error == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "You already manage a restaurant"})
		return
	}

	var req RestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	restaurant := models.Restaurant{
		ManagerID:   managerID,
		Name:        req.Name,
		Address:     req.Address,
		Phone:       req.Phone,
		Description: req.Description,
		DeliveryFee: req.DeliveryFee,
		IsOpen:      true,
	}
	if err := config.DB.Create(&restaurant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create restaurant"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Restaurant created", "restaurant": restaurant})
}

// GetMyRestaurant returns the manager's restaurant with menu
func GetMyRestaurant(c *gin.Context) {
	managerID := middleware.GetUserID(c)
	var restaurant models.Restaurant
	if err := config.DB.Preload("Dishes").Where("manager_id = ?", managerID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant found for your account"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

// UpdateRestaurant updates restaurant details, including the delivery fee
// used by cart pricing.
func UpdateRestaurant(c *gin.Context) {
	restaurant, ok := managerRestaurant(c)
	if !ok {
		return
	}

	var req RestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"name":         req.Name,
		"address":      req.Address,
		"phone":        req.Phone,
		"description":  req.Description,
		"delivery_fee": req.DeliveryFee,
	}
	if req.IsOpen != nil {
		updates["is_open"] = *req.IsOpen
	}
	config.DB.Model(&restaurant).Updates(updates)

	c.JSON(http.StatusOK, gin.H{"message": "Restaurant updated", "restaurant": restaurant})
}

type DishRequest struct {
	Name         string          `json:"name" binding:"required"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price" binding:"required"`
	Category     string          `json:"category"`
	IsAvailable  *bool           `json:"is_available"`
	IsVegetarian bool            `json:"is_vegetarian"`
}

// AddDish adds a menu item to the manager's restaurant
func AddDish(c *gin.Context) {
	restaurant, ok := managerRestaurant(c)
	if !ok {
		return
	}

	var req DishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Price.LessThanOrEqual(decimal.Zero) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be greater than zero"})
		return
	}

	dish := models.Dish{
		RestaurantID: restaurant.ID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Category:     req.Category,
		IsAvailable:  true,
		IsVegetarian: req.IsVegetarian,
	}
	if req.IsAvailable != nil {
		dish.IsAvailable = *req.IsAvailable
	}
	if err := config.DB.Create(&dish).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add dish"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Dish added", "dish": dish})
}

// UpdateDish updates a dish on the manager's menu
func UpdateDish(c *gin.Context) {
	restaurant, ok := managerRestaurant(c)
	if !ok {
		return
	}

	var dish models.Dish
	if err := config.DB.First(&dish, c.Param("dishId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Dish not found"})
		return
	}
	if dish.RestaurantID != restaurant.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This dish does not belong to your restaurant"})
		return
	}

	var req DishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"name":          req.Name,
		"description":   req.Description,
		"price":         req.Price,
		"category":      req.Category,
		"is_vegetarian": req.IsVegetarian,
	}
	if req.IsAvailable != nil {
		updates["is_available"] = *req.IsAvailable
	}
	config.DB.Model(&dish).Updates(updates)

	c.JSON(http.StatusOK, gin.H{"message": "Dish updated", "dish": dish})
}

// DeleteDish removes a dish from the menu. Past orders keep their snapshot
// of its name and price.
func DeleteDish(c *gin.Context) {
	restaurant, ok := managerRestaurant(c)
	if !ok {
		return
	}

	var dish models.Dish
	if err := config.DB.First(&dish, c.Param("dishId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Dish not found"})
		return
	}
	if dish.RestaurantID != restaurant.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This dish does not belong to your restaurant"})
		return
	}

	config.DB.Delete(&dish)
	c.JSON(http.StatusOK, gin.H{"message": "Dish deleted", "dish_id": dish.ID})
}
