// Package handlers maps HTTP requests onto repository operations: payload
// decoding and validation on the way in, absence/conflict signals onto
// status codes on the way out.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/diewo77/invoicer/httpx"
	"github.com/diewo77/invoicer/internal/models"
	"github.com/diewo77/invoicer/internal/repository"
	"github.com/diewo77/invoicer/validation"
)

// Field length limits for client payloads.
const (
	maxClientNameLen              = 256
	maxClientAddressLen           = 256
	maxClientCityLen              = 128
	maxClientCountryLen           = 128
	maxClientMainContactLen       = 256
	maxClientAdditionalContactLen = 256
	maxClientICOLen               = 32
	maxClientDICLen               = 32
	maxClientNotesLen             = 1024
)

// ClientHandler serves the /api/clients routes.
type ClientHandler struct {
	repo *repository.Clients
}

// NewClientHandler returns a handler over the given repository.
func NewClientHandler(repo *repository.Clients) *ClientHandler {
	return &ClientHandler{repo: repo}
}

type clientInput struct {
	Name              string  `json:"name"`
	Address           string  `json:"address"`
	City              string  `json:"city"`
	Country           string  `json:"country"`
	MainContactMethod string  `json:"main_contact_method"`
	MainContact       string  `json:"main_contact"`
	AdditionalContact *string `json:"additional_contact"`
	ICO               *string `json:"ico"`
	DIC               *string `json:"dic"`
	Notes             *string `json:"notes"`
	Favourite         bool    `json:"favourite"`
}

// payload trims and validates the input, returning the repository payload
// and any violations found.
func (in clientInput) payload() (repository.ClientPayload, validation.Violations) {
	v := validation.Violations{}

	name := strings.TrimSpace(in.Name)
	address := strings.TrimSpace(in.Address)
	city := strings.TrimSpace(in.City)
	country := strings.TrimSpace(in.Country)
	mainContact := strings.TrimSpace(in.MainContact)
	method := models.ContactMethod(strings.ToLower(strings.TrimSpace(in.MainContactMethod)))

	validation.Required("name", name, v)
	validation.MaxLen("name", name, maxClientNameLen, v)
	validation.Required("address", address, v)
	validation.MaxLen("address", address, maxClientAddressLen, v)
	validation.Required("city", city, v)
	validation.MaxLen("city", city, maxClientCityLen, v)
	validation.Required("country", country, v)
	validation.MaxLen("country", country, maxClientCountryLen, v)
	validation.Required("main_contact", mainContact, v)
	validation.MaxLen("main_contact", mainContact, maxClientMainContactLen, v)
	if !method.Valid() {
		v["main_contact_method"] = "invalid_contact_method"
	}

	additionalContact := validation.Optional(in.AdditionalContact)
	ico := validation.Optional(in.ICO)
	dic := validation.Optional(in.DIC)
	notes := validation.Optional(in.Notes)
	validation.OptionalMaxLen("additional_contact", additionalContact, maxClientAdditionalContactLen, v)
	validation.OptionalMaxLen("ico", ico, maxClientICOLen, v)
	validation.OptionalMaxLen("dic", dic, maxClientDICLen, v)
	validation.OptionalMaxLen("notes", notes, maxClientNotesLen, v)

	return repository.ClientPayload{
		Name:              name,
		Address:           address,
		City:              city,
		Country:           country,
		MainContactMethod: method,
		MainContact:       mainContact,
		AdditionalContact: additionalContact,
		ICO:               ico,
		DIC:               dic,
		Notes:             notes,
		Favourite:         in.Favourite,
	}, v
}

// List handles GET /api/clients.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.repo.List()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_clients", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, clients)
}

// Create handles POST /api/clients.
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in clientInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	p, v := in.payload()
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	client, err := h.repo.Create(p)
	if errors.Is(err, repository.ErrConflict) {
		httpx.JSONError(w, http.StatusConflict, "contact_already_exists", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "client_create_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, client)
}

// Get handles GET /api/clients/{id}.
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	client, err := h.repo.Get(r.PathValue("id"))
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_get_client", nil)
		return
	}
	if client == nil {
		httpx.JSONError(w, http.StatusNotFound, "client_not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, client)
}

// Update handles PUT /api/clients/{id}.
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in clientInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	p, v := in.payload()
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	client, err := h.repo.Update(r.PathValue("id"), p)
	if errors.Is(err, repository.ErrConflict) {
		httpx.JSONError(w, http.StatusConflict, "contact_already_exists", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "client_update_failed", nil)
		return
	}
	if client == nil {
		httpx.JSONError(w, http.StatusNotFound, "client_not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, client)
}

// Delete handles DELETE /api/clients/{id}.
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.repo.SoftDelete(r.PathValue("id"))
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "client_delete_failed", nil)
		return
	}
	if !deleted {
		httpx.JSONError(w, http.StatusNotFound, "client_not_found", nil)
		return
	}
	httpx.NoContent(w)
}
