//go:build windows

// shellmenu/registry_store_windows.go

package shellmenu

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

// RegistryStore is the KeyStore over HKEY_CURRENT_USER
type RegistryStore struct {
	root registry.Key
}

// NewRegistryStore opens the store on the current user hive
func NewRegistryStore() *RegistryStore {
	return &RegistryStore{root: registry.CURRENT_USER}
}

// NewSystemStore returns the store used by the application on this platform
func NewSystemStore() KeyStore {
	return NewRegistryStore()
}

func mapRegistryError(path string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, registry.ErrNotExist) {
		return fmt.Errorf("%s: %w", path, ErrKeyNotFound)
	}
	if errors.Is(err, windows.ERROR_ACCESS_DENIED) {
		return fmt.Errorf("%s: %w", path, ErrAccessDenied)
	}
	return fmt.Errorf("%s: %w", path, err)
}

// CreateKey implements KeyStore
func (s *RegistryStore) CreateKey(path string) error {
	k, _, err := registry.CreateKey(s.root, path, registry.ALL_ACCESS)
	if err != nil {
		return mapRegistryError(path, err)
	}
	return k.Close()
}

// SetString implements KeyStore
func (s *RegistryStore) SetString(path, name, value string) error {
	k, err := registry.OpenKey(s.root, path, registry.SET_VALUE)
	if err != nil {
		return mapRegistryError(path, err)
	}
	defer k.Close()
	return mapRegistryError(path, k.SetStringValue(name, value))
}

// DeleteValue implements KeyStore
func (s *RegistryStore) DeleteValue(path, name string) error {
	k, err := registry.OpenKey(s.root, path, registry.SET_VALUE)
	if err != nil {
		return mapRegistryError(path, err)
	}
	defer k.Close()
	return mapRegistryError(path, k.DeleteValue(name))
}

// DeleteKey implements KeyStore. The registry refuses to delete keys with subkeys,
// the check here only makes the error distinguishable.
func (s *RegistryStore) DeleteKey(path string) error {
	children, err := s.SubKeys(path)
	if err != nil {
		return err
	}
	if len(children) > 0 {
		return fmt.Errorf("%s: %w", path, ErrKeyHasChildren)
	}
	return mapRegistryError(path, registry.DeleteKey(s.root, path))
}

// SubKeys implements KeyStore
func (s *RegistryStore) SubKeys(path string) ([]string, error) {
	k, err := registry.OpenKey(s.root, path, registry.ENUMERATE_SUB_KEYS)
	if err != nil {
		return nil, mapRegistryError(path, err)
	}
	defer k.Close()

	names, err := k.ReadSubKeyNames(-1)
	if err != nil {
		return nil, mapRegistryError(path, err)
	}
	return names, nil
}

// KeyExists implements KeyStore
func (s *RegistryStore) KeyExists(path string) (bool, error) {
	k, err := registry.OpenKey(s.root, path, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return false, nil
		}
		return false, mapRegistryError(path, err)
	}
	k.Close()
	return true, nil
}
