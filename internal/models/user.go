package models

import "strings"

// LocalUserID keys the single operator profile row.
const LocalUserID = "local-user"

// User is the operator/company profile. It is a singleton: exactly one
// logical row, keyed by LocalUserID. The optional fields may be NULL in
// databases migrated from older schema versions.
type User struct {
	ID                   string  `gorm:"column:id;primaryKey" json:"id"`
	Name                 string  `gorm:"column:name" json:"name"`
	Address              string  `gorm:"column:address" json:"address"`
	City                 string  `gorm:"column:city" json:"city"`
	Country              string  `gorm:"column:country" json:"country"`
	TradeLicensingOffice string  `gorm:"column:trade_licensing_office" json:"trade_licensing_office"`
	ICO                  *string `gorm:"column:ico" json:"ico"`
	DIC                  *string `gorm:"column:dic" json:"dic"`
	Email                *string `gorm:"column:email" json:"email"`
	Phone                *string `gorm:"column:phone" json:"phone"`
	Bank                 *string `gorm:"column:bank" json:"bank"`
	IBAN                 *string `gorm:"column:iban" json:"iban"`
	SWIFT                *string `gorm:"column:swift" json:"swift"`
	CreatedAt            string  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt            string  `gorm:"column:updated_at" json:"updated_at"`
}

// TableName implements the GORM table naming convention.
func (User) TableName() string { return "users" }

// Complete reports whether every required profile field is filled in. A row
// missing any of them is treated as "profile not yet configured".
func (u User) Complete() bool {
	for _, v := range []string{u.Name, u.Address, u.City, u.Country, u.TradeLicensingOffice} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}
