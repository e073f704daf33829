package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"restaurant-orders-api/config"
	"restaurant-orders-api/middleware"
	"restaurant-orders-api/notifier"
)

// inbox resolves the caller's own notification inbox. Staff share a per-role
// inbox, customers each get a private one.
func inbox(c *gin.Context) *notifier.Center {
	return config.Hub.CenterFor(middleware.GetRole(c), middleware.GetUserID(c))
}

// GetNotifications returns the caller's notification inbox, newest first
func GetNotifications(c *gin.Context) {
	in := inbox(c)
	c.JSON(http.StatusOK, gin.H{
		"unread":        in.Unread(),
		"notifications": in.All(),
	})
}

// MarkNotificationRead flags a single notification as read
func MarkNotificationRead(c *gin.Context) {
	in := inbox(c)
	in.MarkRead(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read", "unread": in.Unread()})
}

// MarkAllNotificationsRead flags everything as read
func MarkAllNotificationsRead(c *gin.Context) {
	inbox(c).MarkAllRead()
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

// RemoveNotification deletes one notification
func RemoveNotification(c *gin.Context) {
	in := inbox(c)
	in.Remove(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "Notification removed", "unread": in.Unread()})
}

// ClearNotifications empties the caller's inbox
func ClearNotifications(c *gin.Context) {
	inbox(c).Clear()
	c.JSON(http.StatusOK, gin.H{"message": "Notifications cleared"})
}
