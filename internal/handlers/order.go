package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/borbabeats/sistema-comandas/internal/httpx"
	"github.com/borbabeats/sistema-comandas/internal/models"
	"github.com/borbabeats/sistema-comandas/internal/validation"
	"gorm.io/gorm"
)

const msgAtLeastOneItem = "at least one item (plate, beverage or dessert) must be selected"

type OrderHandler struct {
	DB *gorm.DB
}

func NewOrderHandler(db *gorm.DB) *OrderHandler { return &OrderHandler{DB: db} }

// loadHydrated fetches an order with its catalog relations and computes the
// derived total.
func (h *OrderHandler) loadHydrated(id uint) (*models.Order, error) {
	var o models.Order
	err := h.DB.
		Preload("Plate").
		Preload("Beverage").
		Preload("Dessert").
		First(&o, id).Error
	if err != nil {
		return nil, err
	}
	o.ComputeTotal()
	return &o, nil
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ClientName   string  `json:"clientName"`
		PlateID      *uint   `json:"plateId"`
		BeverageID   *uint   `json:"beverageId"`
		DessertID    *uint   `json:"dessertId"`
		IsPaid       *bool   `json:"isPaid"`
		Observations *string `json:"observations"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("clientName", input.ClientName, v)
	validation.MaxLen("clientName", input.ClientName, 100, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if input.PlateID == nil && input.BeverageID == nil && input.DessertID == nil {
		httpx.JSONMessage(w, http.StatusBadRequest, "validation_failed", msgAtLeastOneItem)
		return
	}

	order := models.Order{
		ClientName:   input.ClientName,
		Status:       models.StatusPending,
		Observations: input.Observations,
	}
	if input.IsPaid != nil {
		order.IsPaid = *input.IsPaid
	}
	if input.PlateID != nil {
		var p models.Plate
		if err := h.DB.First(&p, *input.PlateID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httpx.JSONMessage(w, http.StatusNotFound, "not_found", "plate not found")
				return
			}
			storeError(w, "order_create_failed", err)
			return
		}
		order.PlateID = input.PlateID
	}
	if input.BeverageID != nil {
		var b models.Beverage
		if err := h.DB.First(&b, *input.BeverageID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httpx.JSONMessage(w, http.StatusNotFound, "not_found", "beverage not found")
				return
			}
			storeError(w, "order_create_failed", err)
			return
		}
		order.BeverageID = input.BeverageID
	}
	if input.DessertID != nil {
		var d models.Dessert
		if err := h.DB.First(&d, *input.DessertID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httpx.JSONMessage(w, http.StatusNotFound, "not_found", "dessert not found")
				return
			}
			storeError(w, "order_create_failed", err)
			return
		}
		order.DessertID = input.DessertID
	}

	if err := h.DB.Create(&order).Error; err != nil {
		storeError(w, "order_create_failed", err)
		return
	}
	created, err := h.loadHydrated(order.ID)
	if err != nil {
		storeError(w, "order_load_failed", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	var orders []models.Order
	err := h.DB.
		Preload("Plate").
		Preload("Beverage").
		Preload("Dessert").
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		storeError(w, "failed_to_list_orders", err)
		return
	}
	for i := range orders {
		orders[i].ComputeTotal()
	}
	httpx.JSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	order, err := h.loadHydrated(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		storeError(w, "failed_to_load_order", err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

// Update applies a partial patch. Item references distinguish "absent"
// (unchanged) from explicit null (cleared), so the body is decoded as a raw
// field map. The patch is evaluated as a whole: any violation, including
// ending with zero item references, rejects the entire request and leaves
// the stored order untouched.
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	var order models.Order
	if err := h.DB.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		storeError(w, "failed_to_load_order", err)
		return
	}

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}

	updates := map[string]any{}
	v := validation.Violations{}

	if m, present := raw["clientName"]; present {
		var s *string
		if err := json.Unmarshal(m, &s); err != nil || s == nil {
			v["clientName"] = "invalid_value"
		} else {
			validation.Required("clientName", *s, v)
			validation.MaxLen("clientName", *s, 100, v)
			if v.Empty() {
				updates["client_name"] = *s
			}
		}
	}
	if m, present := raw["isPaid"]; present {
		var b *bool
		if err := json.Unmarshal(m, &b); err != nil || b == nil {
			v["isPaid"] = "invalid_value"
		} else {
			updates["is_paid"] = *b
		}
	}
	if m, present := raw["status"]; present {
		var s *string
		if err := json.Unmarshal(m, &s); err != nil || s == nil || !models.ValidStatus(models.Status(*s)) {
			v["status"] = "invalid_value"
		} else {
			updates["status"] = *s
		}
	}
	if m, present := raw["observations"]; present {
		var s *string
		if err := json.Unmarshal(m, &s); err != nil {
			v["observations"] = "invalid_value"
		} else {
			updates["observations"] = s
		}
	}

	type refPatch struct {
		key    string
		column string
		target **uint
	}
	refs := []refPatch{
		{"plateId", "plate_id", &order.PlateID},
		{"beverageId", "beverage_id", &order.BeverageID},
		{"dessertId", "dessert_id", &order.DessertID},
	}
	type pendingRef struct {
		key    string
		column string
		id     uint
	}
	var resolve []pendingRef
	for _, ref := range refs {
		m, present := raw[ref.key]
		if !present {
			continue
		}
		var rid *uint
		if err := json.Unmarshal(m, &rid); err != nil {
			v[ref.key] = "invalid_value"
			continue
		}
		if rid == nil {
			*ref.target = nil
			updates[ref.column] = nil
			continue
		}
		if *rid == 0 {
			v[ref.key] = "invalid_value"
			continue
		}
		*ref.target = rid
		updates[ref.column] = *rid
		resolve = append(resolve, pendingRef{ref.key, ref.column, *rid})
	}

	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}

	// Resolve newly assigned references before touching the row.
	for _, ref := range resolve {
		var err error
		switch ref.column {
		case "plate_id":
			err = h.DB.First(&models.Plate{}, ref.id).Error
		case "beverage_id":
			err = h.DB.First(&models.Beverage{}, ref.id).Error
		case "dessert_id":
			err = h.DB.First(&models.Dessert{}, ref.id).Error
		}
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httpx.JSONMessage(w, http.StatusNotFound, "not_found", ref.key+" does not reference an existing item")
				return
			}
			storeError(w, "order_update_failed", err)
			return
		}
	}

	if !order.HasItem() {
		httpx.JSONMessage(w, http.StatusBadRequest, "validation_failed", msgAtLeastOneItem)
		return
	}

	if len(updates) > 0 {
		if err := h.DB.Model(&models.Order{ID: id}).Updates(updates).Error; err != nil {
			storeError(w, "order_update_failed", err)
			return
		}
	}
	updated, err := h.loadHydrated(id)
	if err != nil {
		storeError(w, "order_load_failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

// UpdateStatus is the kitchen-board endpoint: it only moves status, and only
// one step forward in the pending -> preparing -> ready -> delivered sequence.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	var input struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	next := models.Status(input.Status)
	if !models.ValidStatus(next) {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", validation.Violations{"status": "invalid_value"})
		return
	}
	var order models.Order
	if err := h.DB.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		storeError(w, "failed_to_load_order", err)
		return
	}
	expected, hasNext := models.NextStatus(order.Status)
	if !hasNext || next != expected {
		httpx.JSONMessage(w, http.StatusBadRequest, "invalid_transition",
			"cannot move order from "+string(order.Status)+" to "+string(next))
		return
	}
	if err := h.DB.Model(&order).Update("status", next).Error; err != nil {
		storeError(w, "order_update_failed", err)
		return
	}
	updated, err := h.loadHydrated(id)
	if err != nil {
		storeError(w, "order_load_failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	res := h.DB.Delete(&models.Order{}, id)
	if res.Error != nil {
		storeError(w, "order_delete_failed", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
