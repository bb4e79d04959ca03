package repository

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/diewo77/invoicer/internal/db"
	"github.com/diewo77/invoicer/internal/models"
)

// CatalogItems persists catalog item records. Catalog items carry no
// uniqueness constraint, so there is no conflict path.
type CatalogItems struct {
	store *db.Store
}

// NewCatalogItems returns a catalog item repository over the given store.
func NewCatalogItems(store *db.Store) *CatalogItems { return &CatalogItems{store: store} }

// CatalogItemPayload carries the caller-supplied item fields.
type CatalogItemPayload struct {
	Name        string
	Description string
	Unit        string
	UnitPrice   int
	TaxRate     *int
}

// List returns all non-deleted catalog items, newest-created first.
func (r *CatalogItems) List() ([]models.CatalogItem, error) {
	conn, closer, err := r.store.Conn()
	if err != nil {
		return nil, err
	}
	defer closer()
	return listActive[models.CatalogItem](conn)
}

// Get returns the non-deleted catalog item with the given id, or nil.
func (r *CatalogItems) Get(id string) (*models.CatalogItem, error) {
	conn, closer, err := r.store.Conn()
	if err != nil {
		return nil, err
	}
	defer closer()
	return getActive[models.CatalogItem](conn, id)
}

// Create inserts a new catalog item and returns the freshly read-back record.
func (r *CatalogItems) Create(p CatalogItemPayload) (*models.CatalogItem, error) {
	conn, closer, err := r.store.Conn()
	if err != nil {
		return nil, err
	}
	defer closer()

	ts := now()
	item := models.CatalogItem{
		ID:          uuid.NewString(),
		Name:        p.Name,
		Description: p.Description,
		Unit:        p.Unit,
		UnitPrice:   p.UnitPrice,
		TaxRate:     p.TaxRate,
		CreatedBy:   actor,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	if err := conn.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("create catalog item: %w", err)
	}

	created, err := getActive[models.CatalogItem](conn, item.ID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("catalog item %s missing after insert", item.ID)
	}
	return created, nil
}

// Update replaces the mutable fields of a non-deleted catalog item and
// refreshes updated_at. A missing or deleted id yields (nil, nil).
func (r *CatalogItems) Update(id string, p CatalogItemPayload) (*models.CatalogItem, error) {
	conn, closer, err := r.store.Conn()
	if err != nil {
		return nil, err
	}
	defer closer()

	res := conn.Model(&models.CatalogItem{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]any{
			"name":        p.Name,
			"description": p.Description,
			"unit":        p.Unit,
			"unit_price":  p.UnitPrice,
			"tax_rate":    p.TaxRate,
			"updated_at":  now(),
		})
	if res.Error != nil {
		return nil, fmt.Errorf("update catalog item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return getActive[models.CatalogItem](conn, id)
}

// SoftDelete tombstones a catalog item and reports whether a row was
// affected.
func (r *CatalogItems) SoftDelete(id string) (bool, error) {
	conn, closer, err := r.store.Conn()
	if err != nil {
		return false, err
	}
	defer closer()
	return softDeleteRecord[models.CatalogItem](conn, id)
}
