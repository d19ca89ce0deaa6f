// shellmenu/memory_store.go

package shellmenu

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Mutation is one successful change applied to a MemoryStore
type Mutation struct {
	Op    string
	Path  string
	Name  string
	Value string
}

// Mutation operations
const (
	OpCreateKey   = "CreateKey"
	OpSetString   = "SetString"
	OpDeleteValue = "DeleteValue"
	OpDeleteKey   = "DeleteKey"
)

type memoryKey struct {
	name     string
	values   map[string]string
	children map[string]*memoryKey
}

func newMemoryKey(name string) *memoryKey {
	return &memoryKey{
		name:     name,
		values:   make(map[string]string),
		children: make(map[string]*memoryKey),
	}
}

// MemoryStore keeps keys in memory. It backs the tests and the dry run on hosts
// without a registry.
type MemoryStore struct {
	mutex     sync.Mutex
	root      *memoryKey
	mutations []Mutation

	// FailOn, when set, is consulted before every mutation. A non-nil result is returned
	// instead of applying it.
	FailOn func(op, path string) error
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{root: newMemoryKey("")}
}

func splitKey(path string) []string {
	var parts []string
	for _, p := range strings.Split(path, `\`) {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

func (s *MemoryStore) lookup(path string) (*memoryKey, bool) {
	node := s.root
	for _, part := range splitKey(path) {
		child, ok := node.children[strings.ToLower(part)]
		if !ok {
			return nil, false
		}
		node = child
	}
	return node, true
}

func (s *MemoryStore) fail(op, path string) error {
	if s.FailOn == nil {
		return nil
	}
	return s.FailOn(op, path)
}

func (s *MemoryStore) record(op, path, name, value string) {
	s.mutations = append(s.mutations, Mutation{Op: op, Path: path, Name: name, Value: value})
}

// CreateKey implements KeyStore
func (s *MemoryStore) CreateKey(path string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := s.fail(OpCreateKey, path); err != nil {
		return err
	}
	parts := splitKey(path)
	if len(parts) == 0 {
		return fmt.Errorf("cannot create the root key")
	}
	node := s.root
	for _, part := range parts {
		child, ok := node.children[strings.ToLower(part)]
		if !ok {
			child = newMemoryKey(part)
			node.children[strings.ToLower(part)] = child
		}
		node = child
	}
	s.record(OpCreateKey, path, "", "")
	return nil
}

// SetString implements KeyStore
func (s *MemoryStore) SetString(path, name, value string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := s.fail(OpSetString, path); err != nil {
		return err
	}
	node, ok := s.lookup(path)
	if !ok {
		return fmt.Errorf("%s: %w", path, ErrKeyNotFound)
	}
	node.values[strings.ToLower(name)] = value
	s.record(OpSetString, path, name, value)
	return nil
}

// DeleteValue implements KeyStore
func (s *MemoryStore) DeleteValue(path, name string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := s.fail(OpDeleteValue, path); err != nil {
		return err
	}
	node, ok := s.lookup(path)
	if !ok {
		return fmt.Errorf("%s: %w", path, ErrKeyNotFound)
	}
	if _, ok := node.values[strings.ToLower(name)]; !ok {
		return fmt.Errorf("%s value %q: %w", path, name, ErrKeyNotFound)
	}
	delete(node.values, strings.ToLower(name))
	s.record(OpDeleteValue, path, name, "")
	return nil
}

// DeleteKey implements KeyStore
func (s *MemoryStore) DeleteKey(path string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := s.fail(OpDeleteKey, path); err != nil {
		return err
	}
	parts := splitKey(path)
	if len(parts) == 0 {
		return fmt.Errorf("cannot delete the root key")
	}
	parent, ok := s.lookup(strings.Join(parts[:len(parts)-1], `\`))
	if !ok {
		return fmt.Errorf("%s: %w", path, ErrKeyNotFound)
	}
	last := strings.ToLower(parts[len(parts)-1])
	node, ok := parent.children[last]
	if !ok {
		return fmt.Errorf("%s: %w", path, ErrKeyNotFound)
	}
	if len(node.children) > 0 {
		return fmt.Errorf("%s: %w", path, ErrKeyHasChildren)
	}
	delete(parent.children, last)
	s.record(OpDeleteKey, path, "", "")
	return nil
}

// SubKeys implements KeyStore. Names keep the case they were created with.
func (s *MemoryStore) SubKeys(path string) ([]string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	node, ok := s.lookup(path)
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrKeyNotFound)
	}
	names := make([]string, 0, len(node.children))
	for _, child := range node.children {
		names = append(names, child.name)
	}
	sort.Strings(names)
	return names, nil
}

// KeyExists implements KeyStore
func (s *MemoryStore) KeyExists(path string) (bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	_, ok := s.lookup(path)
	return ok, nil
}

// Value returns a string value of a key
func (s *MemoryStore) Value(path, name string) (string, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	node, ok := s.lookup(path)
	if !ok {
		return "", false
	}
	v, ok := node.values[strings.ToLower(name)]
	return v, ok
}

// Mutations returns a copy of the mutation log
func (s *MemoryStore) Mutations() []Mutation {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return append([]Mutation(nil), s.mutations...)
}

// ResetMutations clears the mutation log, the keys stay
func (s *MemoryStore) ResetMutations() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.mutations = nil
}

// Keys lists the full path of every key, sorted
func (s *MemoryStore) Keys() []string {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var out []string
	var walk func(prefix string, node *memoryKey)
	walk = func(prefix string, node *memoryKey) {
		for _, child := range node.children {
			path := JoinKey(prefix, child.name)
			out = append(out, path)
			walk(path, child)
		}
	}
	walk("", s.root)
	sort.Strings(out)
	return out
}
