package models

// ContactMethod enumerates the ways a client prefers to be reached.
type ContactMethod string

const (
	ContactEmail    ContactMethod = "email"
	ContactWhatsApp ContactMethod = "whatsapp"
	ContactDiscord  ContactMethod = "discord"
)

// Valid reports whether m is one of the known contact methods.
func (m ContactMethod) Valid() bool {
	switch m {
	case ContactEmail, ContactWhatsApp, ContactDiscord:
		return true
	}
	return false
}

// Client entity. Among non-deleted rows the main contact is unique
// case-insensitively, enforced by a partial unique index.
type Client struct {
	ID                string        `gorm:"column:id;primaryKey" json:"id"`
	Name              string        `gorm:"column:name" json:"name"`
	Address           string        `gorm:"column:address" json:"address"`
	City              string        `gorm:"column:city" json:"city"`
	Country           string        `gorm:"column:country" json:"country"`
	MainContactMethod ContactMethod `gorm:"column:main_contact_method" json:"main_contact_method"`
	MainContact       string        `gorm:"column:main_contact" json:"main_contact"`
	AdditionalContact *string       `gorm:"column:additional_contact" json:"additional_contact"`
	ICO               *string       `gorm:"column:ico" json:"ico"`
	DIC               *string       `gorm:"column:dic" json:"dic"`
	Notes             *string       `gorm:"column:notes" json:"notes"`
	Favourite         bool          `gorm:"column:favourite" json:"favourite"`
	CreatedBy         string        `gorm:"column:created_by" json:"-"`
	CreatedAt         string        `gorm:"column:created_at" json:"created_at"`
	UpdatedAt         string        `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt         *string       `gorm:"column:deleted_at" json:"-"`
}

// TableName implements the GORM table naming convention.
func (Client) TableName() string { return "clients" }
