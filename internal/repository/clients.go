package repository

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/diewo77/invoicer/internal/db"
	"github.com/diewo77/invoicer/internal/models"
)

// Clients persists client records.
type Clients struct {
	store *db.Store
}

// NewClients returns a client repository over the given store.
func NewClients(store *db.Store) *Clients { return &Clients{store: store} }

// ClientPayload carries the caller-supplied client fields. The validation
// layer guarantees they arrive trimmed and length-bounded.
type ClientPayload struct {
	Name              string
	Address           string
	City              string
	Country           string
	MainContactMethod models.ContactMethod
	MainContact       string
	AdditionalContact *string
	ICO               *string
	DIC               *string
	Notes             *string
	Favourite         bool
}

// List returns all non-deleted clients, newest-created first.
func (r *Clients) List() ([]models.Client, error) {
	conn, closer, err := r.store.Conn()
	if err != nil {
		return nil, err
	}
	defer closer()
	return listActive[models.Client](conn)
}

// Get returns the non-deleted client with the given id, or nil.
func (r *Clients) Get(id string) (*models.Client, error) {
	conn, closer, err := r.store.Conn()
	if err != nil {
		return nil, err
	}
	defer closer()
	return getActive[models.Client](conn, id)
}

// contactInUse checks non-deleted rows for a case-insensitive contact match.
// This is the fast, friendly half of the uniqueness guard; the partial
// unique index is the half that holds under concurrent writes.
func contactInUse(conn *gorm.DB, contact, excludeID string) (bool, error) {
	q := conn.Model(&models.Client{}).
		Where("lower(main_contact) = lower(?) AND deleted_at IS NULL", contact)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// Create inserts a new client and returns the freshly read-back record.
// A contact already used by a non-deleted client yields ErrConflict.
func (r *Clients) Create(p ClientPayload) (*models.Client, error) {
	conn, closer, err := r.store.Conn()
	if err != nil {
		return nil, err
	}
	defer closer()

	inUse, err := contactInUse(conn, p.MainContact, "")
	if err != nil {
		return nil, err
	}
	if inUse {
		return nil, ErrConflict
	}

	ts := now()
	c := models.Client{
		ID:                uuid.NewString(),
		Name:              p.Name,
		Address:           p.Address,
		City:              p.City,
		Country:           p.Country,
		MainContactMethod: p.MainContactMethod,
		MainContact:       p.MainContact,
		AdditionalContact: p.AdditionalContact,
		ICO:               p.ICO,
		DIC:               p.DIC,
		Notes:             p.Notes,
		Favourite:         p.Favourite,
		CreatedBy:         actor,
		CreatedAt:         ts,
		UpdatedAt:         ts,
	}
	if err := conn.Create(&c).Error; err != nil {
		// Two concurrent creates can both pass the pre-check; the unique
		// index rejects the loser and we surface the same conflict.
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("create client: %w", err)
	}

	created, err := getActive[models.Client](conn, c.ID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("client %s missing after insert", c.ID)
	}
	return created, nil
}

// Update replaces the mutable fields of a non-deleted client and refreshes
// updated_at. A missing or deleted id yields (nil, nil).
func (r *Clients) Update(id string, p ClientPayload) (*models.Client, error) {
	conn, closer, err := r.store.Conn()
	if err != nil {
		return nil, err
	}
	defer closer()

	inUse, err := contactInUse(conn, p.MainContact, id)
	if err != nil {
		return nil, err
	}
	if inUse {
		return nil, ErrConflict
	}

	res := conn.Model(&models.Client{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]any{
			"name":                p.Name,
			"address":             p.Address,
			"city":                p.City,
			"country":             p.Country,
			"main_contact_method": p.MainContactMethod,
			"main_contact":        p.MainContact,
			"additional_contact":  p.AdditionalContact,
			"ico":                 p.ICO,
			"dic":                 p.DIC,
			"notes":               p.Notes,
			"favourite":           p.Favourite,
			"updated_at":          now(),
		})
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("update client: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return getActive[models.Client](conn, id)
}

// SoftDelete tombstones a client and reports whether a row was affected.
func (r *Clients) SoftDelete(id string) (bool, error) {
	conn, closer, err := r.store.Conn()
	if err != nil {
		return false, err
	}
	defer closer()
	return softDeleteRecord[models.Client](conn, id)
}
