package handlers

import (
	"net/http"
	"testing"

	"restaurant-orders-api/config"
	"restaurant-orders-api/models"
	"restaurant-orders-api/notifier"
)

func TestApplyTransitionCommitsAndAudits(t *testing.T) {
	setupTestEnv(t)

	order := models.Order{
		OrderNumber:  "ORD-20240101-AAA111",
		CustomerID:   1,
		RestaurantID: 1,
		AddressID:    1,
		Status:       models.StatusPending,
	}
	config.DB.Create(&order)

	c, w := testContext(2, models.RoleChef)
	if ok := applyTransition(c, order, models.StatusConfirmed, models.RoleChef, 2, "accepted"); !ok {
		t.Fatalf("transition rejected, body: %s", w.Body.String())
	}
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var stored models.Order
	config.DB.First(&stored, order.ID)
	if stored.Status != models.StatusConfirmed {
		t.Errorf("stored status = %s, want confirmed", stored.Status)
	}

	var history models.OrderStatusHistory
	if err := config.DB.Where("order_id = ? AND to_status = ?", order.ID, models.StatusConfirmed).
		First(&history).Error; err != nil {
		t.Fatalf("audit row missing: %v", err)
	}
	if history.FromStatus != models.StatusPending || history.ChangedBy != 2 {
		t.Errorf("audit row = %+v", history)
	}

	// the published event carries the customer and the effect's audiences
	select {
	case e := <-config.Events:
		if e.Kind != notifier.EventStatusChanged {
			t.Errorf("event kind = %s", e.Kind)
		}
		if e.CustomerID != order.CustomerID {
			t.Errorf("event customer = %d, want %d", e.CustomerID, order.CustomerID)
		}
		if len(e.Audiences) == 0 {
			t.Error("event published without audiences")
		}
	default:
		t.Fatal("no event published")
	}
}

func TestApplyTransitionDetectsConcurrentUpdate(t *testing.T) {
	setupTestEnv(t)

	order := models.Order{
		OrderNumber:  "ORD-20240101-BBB222",
		CustomerID:   1,
		RestaurantID: 1,
		AddressID:    1,
		Status:       models.StatusPreparing,
	}
	config.DB.Create(&order)

	// the handler's snapshot goes stale while another actor moves the order
	stale := order
	config.DB.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("status", models.StatusReady)

	c, w := testContext(3, models.RoleManager)
	if ok := applyTransition(c, stale, models.StatusCancelled, models.RoleManager, 3, ""); ok {
		t.Fatal("stale transition was committed")
	}
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409, body: %s", w.Code, w.Body.String())
	}

	var stored models.Order
	config.DB.First(&stored, order.ID)
	if stored.Status != models.StatusReady {
		t.Errorf("stored status = %s, want ready", stored.Status)
	}

	var count int64
	config.DB.Model(&models.OrderStatusHistory{}).
		Where("order_id = ? AND to_status = ?", order.ID, models.StatusCancelled).
		Count(&count)
	if count != 0 {
		t.Error("audit row written for a rejected transition")
	}

	select {
	case e := <-config.Events:
		t.Errorf("event %s published for a rejected transition", e.Kind)
	default:
	}
}
