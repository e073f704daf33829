package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"restaurant-orders-api/config"
	"restaurant-orders-api/models"
)

func TestCreateAddressFirstBecomesDefault(t *testing.T) {
	setupTestEnv(t)

	c, w := testContext(1, models.RoleCustomer)
	testRequest(c, "POST", "/api/customer/addresses", `{"label":"Home","city":"Rabat","sector":"Agdal"}`)
	CreateAddress(c)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}

	var first models.Address
	config.DB.Where("user_id = ?", 1).First(&first)
	if !first.IsDefault {
		t.Error("first address is not the default")
	}

	// a later address marked default takes over
	c, w = testContext(1, models.RoleCustomer)
	testRequest(c, "POST", "/api/customer/addresses", `{"label":"Work","city":"Rabat","is_default":true}`)
	CreateAddress(c)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}

	var defaults []models.Address
	config.DB.Where("user_id = ? AND is_default = ?", 1, true).Find(&defaults)
	if len(defaults) != 1 {
		t.Fatalf("default count = %d, want 1", len(defaults))
	}
	if defaults[0].Label != "Work" {
		t.Errorf("default = %s, want Work", defaults[0].Label)
	}
}

func TestSetDefaultAddressSwitches(t *testing.T) {
	setupTestEnv(t)

	home := models.Address{UserID: 1, Label: "Home", City: "Rabat", IsDefault: true}
	work := models.Address{UserID: 1, Label: "Work", City: "Rabat"}
	config.DB.Create(&home)
	config.DB.Create(&work)

	c, w := testContext(1, models.RoleCustomer)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(work.ID)}}
	SetDefaultAddress(c)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}

	config.DB.First(&home, home.ID)
	config.DB.First(&work, work.ID)
	if home.IsDefault || !work.IsDefault {
		t.Errorf("defaults: home=%v work=%v, want home=false work=true", home.IsDefault, work.IsDefault)
	}
}

func TestAddressOwnershipEnforced(t *testing.T) {
	setupTestEnv(t)

	other := models.Address{UserID: 2, Label: "Home", City: "Rabat"}
	config.DB.Create(&other)

	c, w := testContext(1, models.RoleCustomer)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(other.ID)}}
	DeleteAddress(c)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}

	var count int64
	config.DB.Model(&models.Address{}).Count(&count)
	if count != 1 {
		t.Error("foreign address was deleted")
	}
}

func TestCheckoutUsesAddressBook(t *testing.T) {
	setupTestEnv(t)

	restaurant := models.Restaurant{
		Name:        "La Table",
		ManagerID:   9,
		DeliveryFee: decimal.NewFromInt(10),
		IsOpen:      true,
	}
	config.DB.Create(&restaurant)
	dish := models.Dish{
		RestaurantID: restaurant.ID,
		Name:         "Couscous",
		Price:        decimal.RequireFromString("50.00"),
		IsAvailable:  true,
	}
	config.DB.Create(&dish)
	addr := models.Address{UserID: 1, Label: "Home", City: "Rabat", IsDefault: true}
	config.DB.Create(&addr)

	body := fmt.Sprintf(
		`{"restaurant_id":%d,"payment_method":"cod","delivery_address_id":%d,"items":[{"dish_id":%d,"quantity":2}]}`,
		restaurant.ID, addr.ID, dish.ID,
	)
	c, w := testContext(1, models.RoleCustomer)
	testRequest(c, "POST", "/api/customer/orders", body)
	Checkout(c)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}

	var order models.Order
	if err := config.DB.Where("customer_id = ?", 1).First(&order).Error; err != nil {
		t.Fatalf("order not created: %v", err)
	}
	if order.AddressID != addr.ID {
		t.Errorf("order address = %d, want %d", order.AddressID, addr.ID)
	}
	if !order.Total.Equal(decimal.RequireFromString("120.00")) {
		t.Errorf("total = %s, want 120.00", order.Total)
	}

	// an address from someone else's book is rejected
	foreign := models.Address{UserID: 2, Label: "Home", City: "Rabat"}
	config.DB.Create(&foreign)
	body = fmt.Sprintf(
		`{"restaurant_id":%d,"payment_method":"cod","delivery_address_id":%d,"items":[{"dish_id":%d,"quantity":1}]}`,
		restaurant.ID, foreign.ID, dish.ID,
	)
	c, w = testContext(1, models.RoleCustomer)
	testRequest(c, "POST", "/api/customer/orders", body)
	Checkout(c)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body: %s", w.Code, w.Body.String())
	}
}
