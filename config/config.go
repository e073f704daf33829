package config

import (
	"os"
	"strconv"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"restaurant-orders-api/models"
	"restaurant-orders-api/notifier"
	"restaurant-orders-api/statemachine"
)

var (
	DB  *gorm.DB
	Log *zap.Logger

	// Lifecycle evaluates order status transitions under the configured policy.
	Lifecycle *statemachine.Machine

	// Hub holds the per-audience inboxes; Events is the channel feeding it.
	// Handlers publish transition events here, and the Kafka source (when
	// configured) delivers external events onto the same channel.
	Hub    *notifier.Hub
	Events chan notifier.Event
)

// JWTSecret used to sign tokens — read from env or fallback
var JWTSecret = []byte(getEnv("JWT_SECRET", "restaurant_orders_super_secret_2024"))

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envBool parses a boolean env var, accepting the usual spellings (1, t,
// TRUE, True, ...). Unset or unparsable values yield the fallback.
func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// Init loads .env, sets up logging, the database, the lifecycle machine and
// the notification hub. Must run before routes are registered.
func Init() {
	// .env is optional; real deployments set env vars directly
	_ = godotenv.Load()

	var err error
	Log, err = zap.NewProduction()
	if err != nil {
		panic("failed to build logger: " + err.Error())
	}

	InitDB()

	Lifecycle = statemachine.New(statemachine.Policy{
		KitchenShortcut: envBool("KITCHEN_SHORTCUT", true),
	})

	Events = make(chan notifier.Event, 64)
	Hub = notifier.NewHub(Log)
}

// Publish pushes an event onto the notification channel without blocking a
// request handler when the inbox consumer falls behind.
func Publish(e notifier.Event) {
	select {
	case Events <- e:
	default:
		Log.Warn("event channel full, dropping notification event", zap.String("kind", string(e.Kind)))
	}
}

func InitDB() {
	var err error
	DB, err = gorm.Open(sqlite.Open(getEnv("DB_PATH", "restaurant_orders.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		Log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Auto-migrate all models
	err = DB.AutoMigrate(
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
		Log.Fatal("failed to migrate database", zap.Error(err))
	}

	Log.Info("database connected and migrated")
}
