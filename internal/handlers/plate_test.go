package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/borbabeats/sistema-comandas/internal/models"
)

func TestPlateCreateAndList(t *testing.T) {
	conn := setupTestDB(t)
	h := NewPlateHandler(conn)

	req := httptest.NewRequest(http.MethodPost, "/plates", strings.NewReader(
		`{"name":"Burger","description":"House burger","price":12.50,"type":"sandwich"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	created := decode[models.Plate](t, w)
	if created.ID == 0 {
		t.Fatalf("expected generated id")
	}
	if created.Type != models.FoodSandwich {
		t.Fatalf("unexpected type: %s", created.Type)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/plates", nil)
	w2 := httptest.NewRecorder()
	h.List(w2, req2)
	if w2.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w2.Code)
	}
	plates := decode[[]models.Plate](t, w2)
	if len(plates) != 1 || plates[0].Name != "Burger" {
		t.Fatalf("unexpected list: %+v", plates)
	}

	// The created record is re-fetchable under its id.
	req3 := httptest.NewRequest(http.MethodGet, "/plates/1", nil)
	req3.SetPathValue("id", "1")
	w3 := httptest.NewRecorder()
	h.Get(w3, req3)
	if w3.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w3.Code)
	}
	fetched := decode[models.Plate](t, w3)
	if fetched.ID != created.ID {
		t.Fatalf("id changed between create and get: %d vs %d", created.ID, fetched.ID)
	}
}

func TestPlateCreateValidationListsEveryViolation(t *testing.T) {
	conn := setupTestDB(t)
	h := NewPlateHandler(conn)

	req := httptest.NewRequest(http.MethodPost, "/plates", strings.NewReader(
		`{"name":"","description":"","price":-3,"type":"spicy"}`))
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
	body := decode[struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}](t, w)
	if body.Error != "validation_failed" {
		t.Fatalf("unexpected error code: %s", body.Error)
	}
	for _, field := range []string{"name", "description", "price", "type"} {
		if _, ok := body.Details[field]; !ok {
			t.Errorf("expected violation for %s, got %v", field, body.Details)
		}
	}

	// Nothing persisted on rejection.
	var count int64
	conn.Model(&models.Plate{}).Count(&count)
	if count != 0 {
		t.Fatalf("rejected create persisted %d rows", count)
	}
}

func TestPlatePartialUpdate(t *testing.T) {
	conn := setupTestDB(t)
	h := NewPlateHandler(conn)
	p := seedPlate(t, conn, "Moqueca", 64.90)

	req := httptest.NewRequest(http.MethodPatch, "/plates/1", strings.NewReader(`{"price":59.90}`))
	req.SetPathValue("id", "1")
	w := httptest.NewRecorder()
	h.Update(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	updated := decode[models.Plate](t, w)
	if updated.Price != 59.90 {
		t.Fatalf("price not updated: %v", updated.Price)
	}
	if updated.Name != p.Name {
		t.Fatalf("untouched field changed: %s", updated.Name)
	}

	// A present-but-invalid field rejects the whole request.
	req2 := httptest.NewRequest(http.MethodPatch, "/plates/1", strings.NewReader(`{"name":"New","price":0}`))
	req2.SetPathValue("id", "1")
	w2 := httptest.NewRecorder()
	h.Update(w2, req2)
	if w2.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w2.Code)
	}
	var check models.Plate
	conn.First(&check, p.ID)
	if check.Name != "Moqueca" {
		t.Fatalf("rejected update mutated the record: %s", check.Name)
	}
}

func TestPlateNotFoundAndMalformedID(t *testing.T) {
	conn := setupTestDB(t)
	h := NewPlateHandler(conn)

	for _, id := range []string{"99", "abc", "0", "-1"} {
		req := httptest.NewRequest(http.MethodGet, "/plates/"+id, nil)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()
		h.Get(w, req)
		if w.Code != http.StatusNotFound {
			t.Errorf("id %q: expected 404 got %d", id, w.Code)
		}
	}

	req := httptest.NewRequest(http.MethodDelete, "/plates/99", nil)
	req.SetPathValue("id", "99")
	w := httptest.NewRecorder()
	h.Delete(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("delete absent: expected 404 got %d", w.Code)
	}
}

func TestPlateDeleteReturnsNoContent(t *testing.T) {
	conn := setupTestDB(t)
	h := NewPlateHandler(conn)
	seedPlate(t, conn, "Salada", 38)

	req := httptest.NewRequest(http.MethodDelete, "/plates/1", nil)
	req.SetPathValue("id", "1")
	w := httptest.NewRecorder()
	h.Delete(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %s", w.Body.String())
	}
}

func TestBeverageTypeEnum(t *testing.T) {
	conn := setupTestDB(t)
	h := NewBeverageHandler(conn)

	req := httptest.NewRequest(http.MethodPost, "/beverages", strings.NewReader(
		`{"name":"Mystery","description":"unknown kind","price":10,"type":"slushie"}`))
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad enum, got %d", w.Code)
	}

	req2 := httptest.NewRequest(http.MethodPost, "/beverages", strings.NewReader(
		`{"name":"Caipirinha","description":"cachaça and lime","price":24,"type":"cocktail"}`))
	w2 := httptest.NewRecorder()
	h.Create(w2, req2)
	if w2.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w2.Code, w2.Body.String())
	}
}

func TestDessertHasNoTypeField(t *testing.T) {
	conn := setupTestDB(t)
	h := NewDessertHandler(conn)

	req := httptest.NewRequest(http.MethodPost, "/desserts", strings.NewReader(
		`{"name":"Pudim","description":"milk flan","price":16}`))
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
}
