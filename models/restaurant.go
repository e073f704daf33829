package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Restaurant struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	ManagerID   uint            `json:"manager_id" gorm:"not null"`
	Manager     User            `json:"manager,omitempty" gorm:"foreignKey:ManagerID"`
	Name        string          `json:"name" gorm:"not null"`
	Address     string          `json:"address"`
	Phone       string          `json:"phone"`
	Description string          `json:"description"`
	DeliveryFee decimal.Decimal `json:"delivery_fee" gorm:"type:decimal(10,2)"`
	IsOpen      bool            `json:"is_open" gorm:"default:true"`
	Dishes      []Dish          `json:"dishes,omitempty" gorm:"foreignKey:RestaurantID"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type Dish struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	RestaurantID uint            `json:"restaurant_id" gorm:"not null"`
	Name         string          `json:"name" gorm:"not null"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Category     string          `json:"category"`
	IsAvailable  bool            `json:"is_available" gorm:"default:true"`
	IsVegetarian bool            `json:"is_vegetarian" gorm:"default:false"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
