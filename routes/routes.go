package routes

import (
	"github.com/gin-gonic/gin"

	"restaurant-orders-api/handlers"
	"restaurant-orders-api/middleware"
	"restaurant-orders-api/models"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		// Restaurants & menus (no auth needed)
		public.GET("/restaurants", handlers.ListRestaurants)
		public.GET("/restaurants/:id", handlers.GetRestaurant)
		public.GET("/restaurants/:id/menu", handlers.GetMenu)

		// Order lifecycle reference
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)

		// Notification inbox; each caller sees their own inbox, resolved
		// per role and user inside the handlers
		auth.GET("/notifications", handlers.GetNotifications)
		auth.PUT("/notifications/read-all", handlers.MarkAllNotificationsRead)
		auth.PUT("/notifications/:id/read", handlers.MarkNotificationRead)
		auth.DELETE("/notifications/:id", handlers.RemoveNotification)
		auth.DELETE("/notifications", handlers.ClearNotifications)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api/customer")
	customer.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleCustomer))
	{
		customer.POST("/orders", handlers.Checkout)
		customer.GET("/orders", handlers.GetMyOrders)
		customer.GET("/orders/:id", handlers.GetOrderDetail)
		customer.PUT("/orders/:id/cancel", handlers.CancelOrder)

		// Address book
		customer.GET("/addresses", handlers.ListAddresses)
		customer.POST("/addresses", handlers.CreateAddress)
		customer.PUT("/addresses/:id", handlers.UpdateAddress)
		customer.PUT("/addresses/:id/default", handlers.SetDefaultAddress)
		customer.DELETE("/addresses/:id", handlers.DeleteAddress)
	}

	// ── Chef routes ────────────────────────────────────────────────
	chef := r.Group("/api/kitchen")
	chef.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleChef))
	{
		chef.GET("/orders", handlers.GetKitchenQueue)
		chef.PUT("/orders/:id/status", handlers.KitchenUpdateOrderStatus)
	}

	// ── Manager routes ─────────────────────────────────────────────
	manager := r.Group("/api/manager")
	manager.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleManager))
	{
		// Restaurant management
		manager.POST("/restaurant", handlers.CreateRestaurant)
		manager.GET("/restaurant", handlers.GetMyRestaurant)
		manager.PUT("/restaurant", handlers.UpdateRestaurant)

		// Menu management
		manager.POST("/menu", handlers.AddDish)
		manager.PUT("/menu/:dishId", handlers.UpdateDish)
		manager.DELETE("/menu/:dishId", handlers.DeleteDish)

		// Order management
		manager.GET("/orders", handlers.GetRestaurantOrders)
		manager.PUT("/orders/:id/status", handlers.ManagerUpdateOrderStatus)
		manager.PUT("/orders/:id/payment", handlers.UpdatePaymentStatus)
		manager.GET("/sales", handlers.GetSalesSummary)

		// Inventory
		manager.GET("/inventory", handlers.GetInventory)
		manager.POST("/inventory", handlers.UpsertInventory)
		manager.PUT("/inventory/:id/restock", handlers.Restock)
		manager.POST("/inventory/alerts", handlers.NotifyLowStock)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/orders", handlers.AdminGetAllOrders)
		admin.PUT("/orders/:id/status", handlers.AdminUpdateOrderStatus)
		admin.GET("/users", handlers.AdminGetAllUsers)
		admin.POST("/users", handlers.AdminCreateUser)
		admin.PUT("/users/:id/active", handlers.AdminSetUserActive)
		admin.GET("/restaurants", handlers.AdminGetAllRestaurants)
	}
}
