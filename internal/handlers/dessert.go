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

// Desserts carry no type discriminator, otherwise the contract matches the
// other two catalog kinds.
type DessertHandler struct {
	DB *gorm.DB
}

func NewDessertHandler(db *gorm.DB) *DessertHandler { return &DessertHandler{DB: db} }

func (h *DessertHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
		Info        *string `json:"info"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("name", input.Name, v)
	validation.Required("description", input.Description, v)
	validation.PositiveFloat("price", input.Price, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	d := models.Dessert{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Info:        input.Info,
	}
	if err := h.DB.Create(&d).Error; err != nil {
		storeError(w, "dessert_create_failed", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, d)
}

func (h *DessertHandler) List(w http.ResponseWriter, r *http.Request) {
	var desserts []models.Dessert
	if err := h.DB.Find(&desserts).Error; err != nil {
		storeError(w, "failed_to_list_desserts", err)
		return
	}
	httpx.JSON(w, http.StatusOK, desserts)
}

func (h *DessertHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	var d models.Dessert
	if err := h.DB.First(&d, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		storeError(w, "failed_to_load_dessert", err)
		return
	}
	httpx.JSON(w, http.StatusOK, d)
}

func (h *DessertHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	var d models.Dessert
	if err := h.DB.First(&d, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		storeError(w, "failed_to_load_dessert", err)
		return
	}
	var input struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		Info        *string  `json:"info"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	if input.Name != nil {
		validation.Required("name", *input.Name, v)
	}
	if input.Description != nil {
		validation.Required("description", *input.Description, v)
	}
	if input.Price != nil {
		validation.PositiveFloat("price", *input.Price, v)
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if input.Name != nil {
		d.Name = *input.Name
	}
	if input.Description != nil {
		d.Description = *input.Description
	}
	if input.Price != nil {
		d.Price = *input.Price
	}
	if input.Info != nil {
		d.Info = input.Info
	}
	if err := h.DB.Save(&d).Error; err != nil {
		storeError(w, "dessert_update_failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, d)
}

func (h *DessertHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	res := h.DB.Delete(&models.Dessert{}, id)
	if res.Error != nil {
		storeError(w, "dessert_delete_failed", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
