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

type BeverageHandler struct {
	DB *gorm.DB
}

func NewBeverageHandler(db *gorm.DB) *BeverageHandler { return &BeverageHandler{DB: db} }

func (h *BeverageHandler) Create(w http.ResponseWriter, r *http.Request) {
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
		validation.OneOf("type", input.Type, models.BeverageTypes, v)
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	b := models.Beverage{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Info:        input.Info,
		Type:        models.BeverageType(input.Type),
	}
	if err := h.DB.Create(&b).Error; err != nil {
		storeError(w, "beverage_create_failed", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, b)
}

func (h *BeverageHandler) List(w http.ResponseWriter, r *http.Request) {
	var beverages []models.Beverage
	if err := h.DB.Find(&beverages).Error; err != nil {
		storeError(w, "failed_to_list_beverages", err)
		return
	}
	httpx.JSON(w, http.StatusOK, beverages)
}

func (h *BeverageHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	var b models.Beverage
	if err := h.DB.First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		storeError(w, "failed_to_load_beverage", err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

func (h *BeverageHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	var b models.Beverage
	if err := h.DB.First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		storeError(w, "failed_to_load_beverage", err)
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
		validation.OneOf("type", *input.Type, models.BeverageTypes, v)
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if input.Name != nil {
		b.Name = *input.Name
	}
	if input.Description != nil {
		b.Description = *input.Description
	}
	if input.Price != nil {
		b.Price = *input.Price
	}
	if input.Info != nil {
		b.Info = input.Info
	}
	if input.Type != nil {
		b.Type = models.BeverageType(*input.Type)
	}
	if err := h.DB.Save(&b).Error; err != nil {
		storeError(w, "beverage_update_failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

func (h *BeverageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	res := h.DB.Delete(&models.Beverage{}, id)
	if res.Error != nil {
		storeError(w, "beverage_delete_failed", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
