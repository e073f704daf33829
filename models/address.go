package models

import (
	"time"
)

// Address is a saved delivery location in a customer's address book. Orders
// reference an address by id; at most one address per user is the default.
type Address struct {
	ID                   uint      `json:"id" gorm:"primaryKey"`
	UserID               uint      `json:"user_id" gorm:"not null;index"`
	Label                string    `json:"label" gorm:"not null"`
	City                 string    `json:"city" gorm:"not null"`
	Sector               string    `json:"sector"`
	Latitude             string    `json:"latitude"`
	Longitude            string    `json:"longitude"`
	ContactName          string    `json:"contact_name"`
	ContactPhone         string    `json:"contact_phone"`
	DeliveryInstructions string    `json:"delivery_instructions"`
	IsDefault            bool      `json:"is_default" gorm:"default:false"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}
