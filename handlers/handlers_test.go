package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"restaurant-orders-api/config"
	"restaurant-orders-api/models"
	"restaurant-orders-api/notifier"
	"restaurant-orders-api/statemachine"
)

// setupTestEnv wires the package globals to a fresh in-memory database so
// handlers can run without a server.
func setupTestEnv(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Restaurant{},
		&models.Dish{},
		&models.InventoryItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	config.DB = db
	config.Log = zap.NewNop()
	config.Lifecycle = statemachine.New(statemachine.DefaultPolicy)
	config.Events = make(chan notifier.Event, 64)
	config.Hub = notifier.NewHub(config.Log)
}

// testContext builds a gin context carrying auth claims the way the auth
// middleware would set them.
func testContext(userID uint, role models.UserRole) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("userID", userID)
	c.Set("role", string(role))
	return c, w
}

// testRequest attaches a JSON body to the context.
func testRequest(c *gin.Context, method, path, body string) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
}
