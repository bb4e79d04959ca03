package models

// CatalogItem is a reusable line item for future invoices. The unit price is
// an integer amount in minor currency units; the tax rate is whole
// percentage points and may be absent.
type CatalogItem struct {
	ID          string  `gorm:"column:id;primaryKey" json:"id"`
	Name        string  `gorm:"column:name" json:"name"`
	Description string  `gorm:"column:description" json:"description"`
	Unit        string  `gorm:"column:unit" json:"unit"`
	UnitPrice   int     `gorm:"column:unit_price" json:"unit_price"`
	TaxRate     *int    `gorm:"column:tax_rate" json:"tax_rate"`
	CreatedBy   string  `gorm:"column:created_by" json:"-"`
	CreatedAt   string  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   string  `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt   *string `gorm:"column:deleted_at" json:"-"`
}

// TableName implements the GORM table naming convention.
func (CatalogItem) TableName() string { return "catalog_items" }
