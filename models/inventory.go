package models

import "time"

// InventoryItem tracks stock per dish per restaurant. The order core never
// mutates it directly; restocking is a separate manager operation.
type InventoryItem struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	DishID        uint      `json:"dish_id" gorm:"not null;uniqueIndex"`
	Dish          Dish      `json:"dish,omitempty" gorm:"foreignKey:DishID"`
	RestaurantID  uint      `json:"restaurant_id" gorm:"not null"`
	CurrentStock  int       `json:"current_stock"`
	MinimumStock  int       `json:"minimum_stock"`
	MaximumStock  int       `json:"maximum_stock"`
	IsTracked     bool      `json:"is_tracked" gorm:"default:true"`
	LastRestocked time.Time `json:"last_restocked"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// LowStock reports whether the item is at or below its minimum threshold
func (i InventoryItem) LowStock() bool {
	return i.IsTracked && i.CurrentStock <= i.MinimumStock
}
