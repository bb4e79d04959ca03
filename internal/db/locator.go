package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Scheme is the only database URL scheme this service supports.
const Scheme = "sqlite:///"

// ErrUnsupportedScheme is returned for database URLs that do not use the
// sqlite:/// scheme. It is fatal at startup.
var ErrUnsupportedScheme = errors.New("unsupported database URL scheme")

// ResolvePath turns a sqlite:/// database URL into an absolute file path.
// Relative paths are resolved against the current working directory and the
// parent directory is created if it does not exist yet.
func ResolvePath(databaseURL string) (string, error) {
	if !strings.HasPrefix(databaseURL, Scheme) {
		return "", fmt.Errorf("%w: %q (only %s is supported)", ErrUnsupportedScheme, databaseURL, Scheme)
	}
	path := strings.TrimPrefix(databaseURL, Scheme)
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve working directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create database directory: %w", err)
	}
	return path, nil
}
