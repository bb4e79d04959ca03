// Package repository implements the persistence layer: CRUD with soft
// deletion, audit timestamps and uniqueness enforcement over the SQLite
// store. Each operation opens one scoped connection, runs its statements
// and closes the connection before returning.
//
// Absence is signalled by a nil record (or a false affected flag), never by
// an error, so the HTTP layer can map it to a 404 without unwrapping.
package repository

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/invoicer/internal/models"
)

// ErrConflict is returned when a create or update would violate the
// case-insensitive contact uniqueness among non-deleted clients.
var ErrConflict = errors.New("contact already in use")

// actor recorded on created_by columns.
// TODO: derive the actor from the request context once authentication lands.
const actor = "dev"

// now returns the audit timestamp: UTC, second precision, Z suffix.
// Timestamps in this format compare correctly as plain strings.
func now() string {
	return time.Now().UTC().Truncate(time.Second).Format(time.RFC3339)
}

// record constrains the generic CRUD helpers to the soft-deletable entities.
type record interface {
	models.Client | models.CatalogItem
}

// listActive returns all non-deleted records, newest-created first.
func listActive[T record](conn *gorm.DB) ([]T, error) {
	out := []T{}
	if err := conn.Where("deleted_at IS NULL").Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// getActive returns the non-deleted record with the given id, or nil.
func getActive[T record](conn *gorm.DB, id string) (*T, error) {
	var rec T
	err := conn.Where("id = ? AND deleted_at IS NULL", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// softDeleteRecord tombstones a non-deleted record and reports whether a row
// was affected. Deleting a missing or already-deleted id is a no-op.
func softDeleteRecord[T record](conn *gorm.DB, id string) (bool, error) {
	ts := now()
	var rec T
	res := conn.Model(&rec).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]any{"deleted_at": ts, "updated_at": ts})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// isUniqueViolation recognizes a uniqueness error raised by the store so it
// can be translated into ErrConflict at the repository boundary.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate")
}
