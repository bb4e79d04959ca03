package db

import (
	"fmt"
	"regexp"

	"gorm.io/gorm"
)

const createClients = `
CREATE TABLE IF NOT EXISTS clients (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    address TEXT NOT NULL,
    city TEXT NOT NULL,
    country TEXT NOT NULL,
    main_contact_method TEXT NOT NULL,
    main_contact TEXT NOT NULL,
    additional_contact TEXT,
    ico TEXT,
    dic TEXT,
    notes TEXT,
    favourite INTEGER NOT NULL DEFAULT 0,
    created_by TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    deleted_at TEXT
)`

// The partial index is the authoritative uniqueness guard: the repository
// pre-check can be raced, the index cannot. Scoping it to non-deleted rows
// lets a contact be reused after its previous owner was soft-deleted.
const createClientContactIndex = `
CREATE UNIQUE INDEX IF NOT EXISTS clients_contact_active_idx
ON clients (lower(main_contact))
WHERE deleted_at IS NULL`

const createCatalogItems = `
CREATE TABLE IF NOT EXISTS catalog_items (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL,
    unit TEXT NOT NULL,
    unit_price INTEGER NOT NULL,
    tax_rate INTEGER,
    created_by TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    deleted_at TEXT
)`

const createUsers = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    address TEXT NOT NULL,
    city TEXT NOT NULL,
    country TEXT NOT NULL,
    trade_licensing_office TEXT NOT NULL,
    ico TEXT,
    dic TEXT,
    email TEXT,
    phone TEXT,
    bank TEXT,
    iban TEXT,
    swift TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
)`

// userColumns is the expected column set of the users table and doubles as
// the allow-list for ALTER statements. Older databases predate some of
// these columns.
var userColumns = []struct {
	name    string
	sqlType string
}{
	{"name", "TEXT"},
	{"address", "TEXT"},
	{"city", "TEXT"},
	{"country", "TEXT"},
	{"trade_licensing_office", "TEXT"},
	{"ico", "TEXT"},
	{"dic", "TEXT"},
	{"email", "TEXT"},
	{"phone", "TEXT"},
	{"bank", "TEXT"},
	{"iban", "TEXT"},
	{"swift", "TEXT"},
	{"created_at", "TEXT"},
	{"updated_at", "TEXT"},
}

var safeIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Migrate creates the schema if absent and additively reconciles older
// versions of the users table. Safe to run on every process start; running
// it twice converges to the same schema as running it once.
func Migrate(s *Store) error {
	conn, closer, err := s.Conn()
	if err != nil {
		return err
	}
	defer closer()

	for _, stmt := range []string{createClients, createClientContactIndex, createCatalogItems, createUsers} {
		if err := conn.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	if err := ensureUserColumns(conn); err != nil {
		return fmt.Errorf("migrate users table: %w", err)
	}
	return nil
}

// ensureUserColumns inspects the live users table and adds whatever the
// expected column set is still missing. Historic databases stored the
// profile name under company_name; that value is backfilled into name.
func ensureUserColumns(conn *gorm.DB) error {
	var info []struct {
		Name string
		Type string
	}
	if err := conn.Raw("PRAGMA table_info(users)").Scan(&info).Error; err != nil {
		return err
	}
	existing := make(map[string]bool, len(info))
	for _, col := range info {
		existing[col.Name] = true
	}

	if existing["company_name"] && !existing["name"] {
		if err := conn.Exec(`ALTER TABLE users ADD COLUMN name TEXT`).Error; err != nil {
			return err
		}
		if err := conn.Exec(`UPDATE users SET name = company_name WHERE name IS NULL`).Error; err != nil {
			return err
		}
		existing["name"] = true
	}

	for _, col := range userColumns {
		if existing[col.name] {
			continue
		}
		if err := addUserColumn(conn, col.name); err != nil {
			return err
		}
	}
	return nil
}

// addUserColumn adds a single column by name. The name is interpolated into
// the ALTER statement, so it must come from the allow-list and match the
// safe identifier pattern.
func addUserColumn(conn *gorm.DB, name string) error {
	sqlType := ""
	for _, col := range userColumns {
		if col.name == name {
			sqlType = col.sqlType
			break
		}
	}
	if sqlType == "" {
		return fmt.Errorf("unexpected column %q requested for migration", name)
	}
	if !safeIdentifier.MatchString(name) {
		return fmt.Errorf("invalid column name %q", name)
	}
	return conn.Exec(fmt.Sprintf(`ALTER TABLE users ADD COLUMN %q %s`, name, sqlType)).Error
}
