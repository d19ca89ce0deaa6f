// Package shellmenu adds and removes the Explorer "Convert Media To" context menus.
package shellmenu

import (
	"errors"
	"strings"
)

var (
	// ErrKeyNotFound is returned when a key or value does not exist
	ErrKeyNotFound = errors.New("registry key not found")

	// ErrKeyHasChildren is returned by DeleteKey for keys that still have subkeys
	ErrKeyHasChildren = errors.New("registry key has subkeys")

	// ErrAccessDenied is returned when the store refuses a mutation
	ErrAccessDenied = errors.New("registry access denied")
)

// KeyStore is a hierarchical, case-insensitive key space rooted at the current user hive.
// Paths use backslash separators, e.g. `Software\Classes\Directory\shell`.
type KeyStore interface {
	// CreateKey creates the key and any missing parents. Existing keys are kept.
	CreateKey(path string) error
	// SetString sets a string value on an existing key. An empty name sets the default value.
	SetString(path, name, value string) error
	DeleteValue(path, name string) error
	// DeleteKey removes a key without subkeys
	DeleteKey(path string) error
	SubKeys(path string) ([]string, error)
	KeyExists(path string) (bool, error)
}

// JoinKey joins key path elements with backslashes
func JoinKey(elements ...string) string {
	parts := make([]string, 0, len(elements))
	for _, e := range elements {
		e = strings.Trim(e, `\`)
		if e != "" {
			parts = append(parts, e)
		}
	}
	return strings.Join(parts, `\`)
}

// IsNotFound reports whether err means the key or value was already absent
func IsNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound)
}
