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

type PlateHandler struct {
	DB *gorm.DB
}

func NewPlateHandler(db *gorm.DB) *PlateHandler { return &PlateHandler{DB: db} }

func (h *PlateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
		Info        *string `json:"info"`
		Type        string  `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("name", input.Name, v)
	validation.Required("description", input.Description, v)
	validation.PositiveFloat("price", input.Price, v)
	validation.Required("type", input.Type, v)
	if input.Type != "" {
		validation.OneOf("type", input.Type, models.FoodTypes, v)
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	p := models.Plate{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Info:        input.Info,
		Type:        models.FoodType(input.Type),
	}
	if err := h.DB.Create(&p).Error; err != nil {
		storeError(w, "plate_create_failed", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}

func (h *PlateHandler) List(w http.ResponseWriter, r *http.Request) {
	var plates []models.Plate
	if err := h.DB.Find(&plates).Error; err != nil {
		storeError(w, "failed_to_list_plates", err)
		return
	}
	httpx.JSON(w, http.StatusOK, plates)
}

func (h *PlateHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	var p models.Plate
	if err := h.DB.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		storeError(w, "failed_to_load_plate", err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *PlateHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	var p models.Plate
	if err := h.DB.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		storeError(w, "failed_to_load_plate", err)
		return
	}
	var input struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		Info        *string  `json:"info"`
		Type        *string  `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	// Validate only the fields present in the request, create rules apply.
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
	if input.Type != nil {
		validation.OneOf("type", *input.Type, models.FoodTypes, v)
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.Price != nil {
		p.Price = *input.Price
	}
	if input.Info != nil {
		p.Info = input.Info
	}
	if input.Type != nil {
		p.Type = models.FoodType(*input.Type)
	}
	if err := h.DB.Save(&p).Error; err != nil {
		storeError(w, "plate_update_failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *PlateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	res := h.DB.Delete(&models.Plate{}, id)
	if res.Error != nil {
		storeError(w, "plate_delete_failed", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	// Orders referencing this plate keep their row; the FK is nulled by the store.
	w.WriteHeader(http.StatusNoContent)
}
