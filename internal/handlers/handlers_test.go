package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/borbabeats/sistema-comandas/internal/db"
	"github.com/borbabeats/sistema-comandas/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Use a unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v body=%s", err, w.Body.String())
	}
	return out
}

func seedPlate(t *testing.T, conn *gorm.DB, name string, price float64) models.Plate {
	t.Helper()
	p := models.Plate{Name: name, Description: name + " description", Price: price, Type: models.FoodOther}
	if err := conn.Create(&p).Error; err != nil {
		t.Fatalf("seed plate: %v", err)
	}
	return p
}

func seedBeverage(t *testing.T, conn *gorm.DB, name string, price float64) models.Beverage {
	t.Helper()
	b := models.Beverage{Name: name, Description: name + " description", Price: price, Type: models.BeverageJuice}
	if err := conn.Create(&b).Error; err != nil {
		t.Fatalf("seed beverage: %v", err)
	}
	return b
}

func seedDessert(t *testing.T, conn *gorm.DB, name string, price float64) models.Dessert {
	t.Helper()
	d := models.Dessert{Name: name, Description: name + " description", Price: price}
	if err := conn.Create(&d).Error; err != nil {
		t.Fatalf("seed dessert: %v", err)
	}
	return d
}
