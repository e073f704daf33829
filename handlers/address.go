package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"restaurant-orders-api/config"
	"restaurant-orders-api/middleware"
	"restaurant-orders-api/models"
)

type AddressRequest struct {
	Label                string `json:"label" binding:"required"`
	City                 string `json:"city" binding:"required"`
	Sector               string `json:"sector"`
	Latitude             string `json:"latitude"`
	Longitude            string `json:"longitude"`
	ContactName          string `json:"contact_name"`
	ContactPhone         string `json:"contact_phone"`
	DeliveryInstructions string `json:"delivery_instructions"`
	IsDefault            bool   `json:"is_default"`
}

// ownAddress loads an address by path param and checks it belongs to the
// caller. Writes the error response itself on failure.
func ownAddress(c *gin.Context) (models.Address, bool) {
	userID := middleware.GetUserID(c)
	var addr models.Address
	if err := config.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&addr).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return models.Address{}, false
	}
	return addr, true
}

// clearDefault unsets the default flag on every address of the user.
func clearDefault(userID uint) {
	config.DB.Model(&models.Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false)
}

// ListAddresses returns the caller's address book, default first
func ListAddresses(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var addresses []models.Address
	config.DB.Where("user_id = ?", userID).
		Order("is_default desc, created_at asc").
		Find(&addresses)
	c.JSON(http.StatusOK, gin.H{"count": len(addresses), "addresses": addresses})
}

// CreateAddress saves a new address. The first address in the book always
// becomes the default.
func CreateAddress(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var count int64
	config.DB.Model(&models.Address{}).Where("user_id = ?", userID).Count(&count)
	isDefault := req.IsDefault || count == 0
	if isDefault {
		clearDefault(userID)
	}

	addr := models.Address{
		UserID:               userID,
		Label:                req.Label,
		City:                 req.City,
		Sector:               req.Sector,
		Latitude:             req.Latitude,
		Longitude:            req.Longitude,
		ContactName:          req.ContactName,
		ContactPhone:         req.ContactPhone,
		DeliveryInstructions: req.DeliveryInstructions,
		IsDefault:            isDefault,
	}
	if err := config.DB.Create(&addr).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save address"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Address saved", "address": addr})
}

// UpdateAddress edits one of the caller's addresses
func UpdateAddress(c *gin.Context) {
	addr, ok := ownAddress(c)
	if !ok {
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.IsDefault && !addr.IsDefault {
		clearDefault(addr.UserID)
	}

	addr.Label = req.Label
	addr.City = req.City
	addr.Sector = req.Sector
	addr.Latitude = req.Latitude
	addr.Longitude = req.Longitude
	addr.ContactName = req.ContactName
	addr.ContactPhone = req.ContactPhone
	addr.DeliveryInstructions = req.DeliveryInstructions
	addr.IsDefault = addr.IsDefault || req.IsDefault

	if err := config.DB.Save(&addr).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update address"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Address updated", "address": addr})
}

// SetDefaultAddress makes one address the default, unsetting the others
func SetDefaultAddress(c *gin.Context) {
	addr, ok := ownAddress(c)
	if !ok {
		return
	}

	clearDefault(addr.UserID)
	config.DB.Model(&addr).Update("is_default", true)

	c.JSON(http.StatusOK, gin.H{"message": "Default address updated", "address_id": addr.ID})
}

// DeleteAddress removes an address from the book. Past orders keep their
// snapshot reference.
func DeleteAddress(c *gin.Context) {
	addr, ok := ownAddress(c)
	if !ok {
		return
	}

	config.DB.Delete(&addr)
	c.JSON(http.StatusOK, gin.H{"message": "Address deleted"})
}
