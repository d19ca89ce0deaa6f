//go:build !windows

package shellmenu

// NewSystemStore returns the store used by the application on this platform.
// There is no registry here, the menu is only simulated in memory.
func NewSystemStore() KeyStore {
	return NewMemoryStore()
}
