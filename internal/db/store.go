// Package db manages the SQLite store: locating the database file, handing
// out scoped connections and keeping the schema up to date.
package db

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store locates the SQLite database file and opens one connection per
// repository call. Connections are never pooled or shared across calls;
// coordination between concurrent writers is left to SQLite's own locking.
type Store struct {
	path  string
	debug bool
}

// Open validates the database URL, ensures the containing directory exists
// and returns a Store bound to the resolved file. No connection is opened
// until the first repository call.
func Open(databaseURL string, debug bool) (*Store, error) {
	path, err := ResolvePath(databaseURL)
	if err != nil {
		return nil, err
	}
	return &Store{path: path, debug: debug}, nil
}

// Path returns the absolute path of the database file.
func (s *Store) Path() string { return s.path }

// Conn opens a fresh connection with foreign key enforcement enabled. The
// returned closer must run on every exit path of the calling operation.
func (s *Store) Conn() (*gorm.DB, func(), error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", s.path)
	level := logger.Silent
	if s.debug {
		level = logger.Info
	}
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(level)})
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	closer := func() {
		if sqlDB, dbErr := conn.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
	}
	return conn, closer, nil
}
