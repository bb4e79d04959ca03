package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/diewo77/invoicer/httpx"
	"github.com/diewo77/invoicer/internal/repository"
	"github.com/diewo77/invoicer/validation"
)

// Field length limits for the operator profile payload.
const (
	maxUserNameLen                 = 256
	maxUserAddressLen              = 256
	maxUserCityLen                 = 128
	maxUserCountryLen              = 128
	maxUserTradeLicensingOfficeLen = 256
	maxUserICOLen                  = 32
	maxUserDICLen                  = 32
	maxUserEmailLen                = 256
	maxUserPhoneLen                = 64
	maxUserBankLen                 = 256
	maxUserIBANLen                 = 34
	maxUserSWIFTLen                = 11
)

// UserHandler serves the /api/users/me routes.
type UserHandler struct {
	repo *repository.Users
}

// NewUserHandler returns a handler over the given repository.
func NewUserHandler(repo *repository.Users) *UserHandler {
	return &UserHandler{repo: repo}
}

type userInput struct {
	Name                 string `json:"name"`
	Address              string `json:"address"`
	City                 string `json:"city"`
	Country              string `json:"country"`
	TradeLicensingOffice string `json:"trade_licensing_office"`
	ICO                  string `json:"ico"`
	DIC                  string `json:"dic"`
	Email                string `json:"email"`
	Phone                string `json:"phone"`
	Bank                 string `json:"bank"`
	IBAN                 string `json:"iban"`
	SWIFT                string `json:"swift"`
}

func (in userInput) payload() (repository.UserPayload, validation.Violations) {
	v := validation.Violations{}
	p := repository.UserPayload{
		Name:                 strings.TrimSpace(in.Name),
		Address:              strings.TrimSpace(in.Address),
		City:                 strings.TrimSpace(in.City),
		Country:              strings.TrimSpace(in.Country),
		TradeLicensingOffice: strings.TrimSpace(in.TradeLicensingOffice),
		ICO:                  strings.TrimSpace(in.ICO),
		DIC:                  strings.TrimSpace(in.DIC),
		Email:                strings.TrimSpace(in.Email),
		Phone:                strings.TrimSpace(in.Phone),
		Bank:                 strings.TrimSpace(in.Bank),
		IBAN:                 strings.TrimSpace(in.IBAN),
		SWIFT:                strings.TrimSpace(in.SWIFT),
	}

	fields := []struct {
		name   string
		value  string
		maxLen int
	}{
		{"name", p.Name, maxUserNameLen},
		{"address", p.Address, maxUserAddressLen},
		{"city", p.City, maxUserCityLen},
		{"country", p.Country, maxUserCountryLen},
		{"trade_licensing_office", p.TradeLicensingOffice, maxUserTradeLicensingOfficeLen},
		{"ico", p.ICO, maxUserICOLen},
		{"dic", p.DIC, maxUserDICLen},
		{"email", p.Email, maxUserEmailLen},
		{"phone", p.Phone, maxUserPhoneLen},
		{"bank", p.Bank, maxUserBankLen},
		{"iban", p.IBAN, maxUserIBANLen},
		{"swift", p.SWIFT, maxUserSWIFTLen},
	}
	for _, f := range fields {
		validation.Required(f.name, f.value, v)
		validation.MaxLen(f.name, f.value, f.maxLen, v)
	}
	return p, v
}

// Get handles GET /api/users/me.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.repo.Get()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_get_user", nil)
		return
	}
	if user == nil {
		httpx.JSONError(w, http.StatusNotFound, "user_not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

// Upsert handles PUT /api/users/me.
func (h *UserHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var in userInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	p, v := in.payload()
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	user, err := h.repo.Upsert(p)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "user_upsert_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}
