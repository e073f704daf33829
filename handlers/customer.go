package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"restaurant-orders-api/cart"
	"restaurant-orders-api/config"
	"restaurant-orders-api/middleware"
	"restaurant-orders-api/models"
	"restaurant-orders-api/notifier"
)

type CheckoutRequest struct {
	RestaurantID      uint                 `json:"restaurant_id" binding:"required"`
	PaymentMethod     models.PaymentMethod `json:"payment_method" binding:"required,oneof=cod card"`
	DeliveryAddressID uint                 `json:"delivery_address_id" binding:"required"`
	Notes             string               `json:"notes"`
	Items             []struct {
		DishID   uint `json:"dish_id" binding:"required"`
		Quantity int  `json:"quantity" binding:"required"`
	} `json:"items" binding:"required,min=1"`
}

func newOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102"), suffix)
}

// Checkout prices the requested items through the cart aggregator and creates
// a pending order with snapshot line items.
func Checkout(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var addr models.Address
	if err := config.DB.Where("id = ? AND user_id = ?", req.DeliveryAddressID, customerID).
		First(&addr).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Delivery address not found in your address book"})
		return
	}

	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, req.RestaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	if !restaurant.IsOpen {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Restaurant is currently closed"})
		return
	}

	// Build the cart server-side; dish price and name are snapshotted by the
	// aggregator at insertion time.
	ck := cart.Cart{}
	for _, reqItem := range req.Items {
		var dish models.Dish
		if err := config.DB.First(&dish, reqItem.DishID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Dish %d not found", reqItem.DishID)})
			return
		}
		if dish.RestaurantID != req.RestaurantID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Dish '" + dish.Name + "' does not belong to this restaurant"})
			return
		}
		if !dish.IsAvailable {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Dish '" + dish.Name + "' is not available"})
			return
		}
		var err error
		ck, err = cart.AddItem(ck, dish, reqItem.Quantity)
		if err != nil {
			if errors.Is(err, cart.ErrInvalidQuantity) {
				c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid quantity for dish '%s'", dish.Name)})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item"})
			return
		}
	}
	ck = cart.SetDeliveryFee(ck, restaurant.DeliveryFee)
	totals := ck.Totals()

	items := make([]models.OrderItem, 0, len(ck.Lines))
	for _, line := range ck.Lines {
		items = append(items, models.OrderItem{
			DishID:    line.DishID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
		})
	}

	order := models.Order{
		OrderNumber:   newOrderNumber(),
		CustomerID:    customerID,
		RestaurantID:  req.RestaurantID,
		Status:        models.StatusPending,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: models.PaymentPending,
		Subtotal:      totals.Subtotal,
		DeliveryFee:   ck.DeliveryFee,
		Tax:           totals.Tax,
		Total:         totals.GrandTotal,
		AddressID:     addr.ID,
		Notes:         req.Notes,
		Items:         items,
	}

	if err := config.DB.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}

	history := models.OrderStatusHistory{
		OrderID:   order.ID,
		ToStatus:  models.StatusPending,
		ChangedBy: customerID,
		Note:      "Order placed by customer",
	}
	config.DB.Create(&history)

	consumeInventory(order)

	config.Publish(notifier.Event{
		Kind: notifier.EventNewOrder,
		Order: &notifier.OrderRef{
			OrderID:     order.ID,
			OrderNumber: order.OrderNumber,
			Status:      order.Status,
		},
	})

	config.DB.Preload("Items").Preload("Restaurant").Preload("Address").First(&order, order.ID)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// consumeInventory decrements tracked stock for each ordered dish and raises
// a low-stock event when a dish crosses its minimum threshold.
func consumeInventory(order models.Order) {
	for _, item := range order.Items {
		var inv models.InventoryItem
		if err := config.DB.Where("dish_id = ?", item.DishID).First(&inv).Error; err != nil {
			continue
		}
		if !inv.IsTracked {
			continue
		}
		inv.CurrentStock -= item.Quantity
		if inv.CurrentStock < 0 {
			inv.CurrentStock = 0
		}
		config.DB.Model(&inv).Update("current_stock", inv.CurrentStock)

		if inv.LowStock() {
			config.Publish(notifier.Event{
				Kind: notifier.EventLowStock,
				Stock: &notifier.StockAlert{
					DishID:       inv.DishID,
					DishName:     item.Name,
					CurrentStock: inv.CurrentStock,
					MinimumStock: inv.MinimumStock,
				},
			})
		}
	}
}

// GetMyOrders returns all orders for the logged-in customer
func GetMyOrders(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	var orders []models.Order
	config.DB.Preload("Items").Preload("Restaurant").
		Where("customer_id = ?", customerID).
		Order("created_at desc").
		Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrderDetail returns a single order's full detail with status history
func GetOrderDetail(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var order models.Order
	if err := config.DB.
		Preload("Items").
		Preload("Restaurant").
		Preload("Address").
		Preload("StatusHistory").
		First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.CustomerID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// CancelOrder cancels the customer's own order. The lifecycle only permits
// this while the order is still pending.
func CancelOrder(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.CustomerID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}

	applyTransition(c, order, models.StatusCancelled, models.RoleCustomer, customerID, "Order cancelled by customer")
}
