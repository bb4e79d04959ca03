package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/diewo77/invoicer/httpx"
	"github.com/diewo77/invoicer/internal/repository"
	"github.com/diewo77/invoicer/validation"
)

const maxCatalogItemNameLen = 256

// CatalogItemHandler serves the /api/catalog-items routes.
type CatalogItemHandler struct {
	repo *repository.CatalogItems
}

// NewCatalogItemHandler returns a handler over the given repository.
func NewCatalogItemHandler(repo *repository.CatalogItems) *CatalogItemHandler {
	return &CatalogItemHandler{repo: repo}
}

type catalogItemInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Unit        string `json:"unit"`
	UnitPrice   *int   `json:"unit_price"`
	TaxRate     *int   `json:"tax_rate"`
}

func (in catalogItemInput) payload() (repository.CatalogItemPayload, validation.Violations) {
	v := validation.Violations{}

	name := strings.TrimSpace(in.Name)
	description := strings.TrimSpace(in.Description)
	unit := strings.TrimSpace(in.Unit)

	validation.Required("name", name, v)
	validation.MaxLen("name", name, maxCatalogItemNameLen, v)
	validation.Required("description", description, v)
	validation.Required("unit", unit, v)

	unitPrice := 0
	if in.UnitPrice == nil {
		v["unit_price"] = "required"
	} else {
		unitPrice = *in.UnitPrice
		validation.NonNegativeInt("unit_price", unitPrice, v)
	}
	if in.TaxRate != nil {
		validation.NonNegativeInt("tax_rate", *in.TaxRate, v)
	}

	return repository.CatalogItemPayload{
		Name:        name,
		Description: description,
		Unit:        unit,
		UnitPrice:   unitPrice,
		TaxRate:     in.TaxRate,
	}, v
}

// List handles GET /api/catalog-items.
func (h *CatalogItemHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.repo.List()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_catalog_items", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, items)
}

// Create handles POST /api/catalog-items.
func (h *CatalogItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in catalogItemInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	p, v := in.payload()
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	item, err := h.repo.Create(p)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "catalog_item_create_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, item)
}

// Get handles GET /api/catalog-items/{id}.
func (h *CatalogItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.repo.Get(r.PathValue("id"))
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_get_catalog_item", nil)
		return
	}
	if item == nil {
		httpx.JSONError(w, http.StatusNotFound, "catalog_item_not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

// Update handles PUT /api/catalog-items/{id}.
func (h *CatalogItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in catalogItemInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	p, v := in.payload()
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	item, err := h.repo.Update(r.PathValue("id"), p)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "catalog_item_update_failed", nil)
		return
	}
	if item == nil {
		httpx.JSONError(w, http.StatusNotFound, "catalog_item_not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

// Delete handles DELETE /api/catalog-items/{id}.
func (h *CatalogItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.repo.SoftDelete(r.PathValue("id"))
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "catalog_item_delete_failed", nil)
		return
	}
	if !deleted {
		httpx.JSONError(w, http.StatusNotFound, "catalog_item_not_found", nil)
		return
	}
	httpx.NoContent(w)
}
