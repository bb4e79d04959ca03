package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/diewo77/invoicer/internal/db"
	"github.com/diewo77/invoicer/internal/models"
)

// Users persists the singleton operator profile, keyed by
// models.LocalUserID. There is no conflict path: exactly one logical key
// exists.
type Users struct {
	store *db.Store
}

// NewUsers returns a user profile repository over the given store.
func NewUsers(store *db.Store) *Users { return &Users{store: store} }

// UserPayload carries the caller-supplied profile fields. The validation
// layer guarantees every field arrives trimmed and non-empty.
type UserPayload struct {
	Name                 string
	Address              string
	City                 string
	Country              string
	TradeLicensingOffice string
	ICO                  string
	DIC                  string
	Email                string
	Phone                string
	Bank                 string
	IBAN                 string
	SWIFT                string
}

// fetchUser reads the singleton row. An absent row and an incomplete row
// both read as nil: a profile with blank required fields was never
// configured, even though the row technically exists.
func fetchUser(conn *gorm.DB) (*models.User, error) {
	var u models.User
	err := conn.Where("id = ?", models.LocalUserID).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !u.Complete() {
		return nil, nil
	}
	return &u, nil
}

// Get returns the configured profile, or nil when it is absent or
// incomplete.
func (r *Users) Get() (*models.User, error) {
	conn, closer, err := r.store.Conn()
	if err != nil {
		return nil, err
	}
	defer closer()
	return fetchUser(conn)
}

// Upsert inserts the profile row or updates it in place. created_at is set
// only on first insert; updated_at is refreshed either way. Returns the
// freshly read-back record.
func (r *Users) Upsert(p UserPayload) (*models.User, error) {
	conn, closer, err := r.store.Conn()
	if err != nil {
		return nil, err
	}
	defer closer()

	ts := now()
	u := models.User{
		ID:                   models.LocalUserID,
		Name:                 p.Name,
		Address:              p.Address,
		City:                 p.City,
		Country:              p.Country,
		TradeLicensingOffice: p.TradeLicensingOffice,
		ICO:                  &p.ICO,
		DIC:                  &p.DIC,
		Email:                &p.Email,
		Phone:                &p.Phone,
		Bank:                 &p.Bank,
		IBAN:                 &p.IBAN,
		SWIFT:                &p.SWIFT,
		CreatedAt:            ts,
		UpdatedAt:            ts,
	}
	err = conn.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "address", "city", "country", "trade_licensing_office",
			"ico", "dic", "email", "phone", "bank", "iban", "swift",
			"updated_at",
		}),
	}).Create(&u).Error
	if err != nil {
		return nil, fmt.Errorf("upsert user profile: %w", err)
	}

	saved, err := fetchUser(conn)
	if err != nil {
		return nil, err
	}
	if saved == nil {
		return nil, fmt.Errorf("user profile missing after upsert")
	}
	return saved, nil
}
