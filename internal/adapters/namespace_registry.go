package adapters

import (
	"sort"
	"sync"

	"overlayns/internal/ports"
)

// NamespaceRegistryAdapter is an in-memory module table. Installing a
// name replaces whatever was registered under it.
type NamespaceRegistryAdapter struct {
	mu      sync.RWMutex
	entries map[string]ports.Target
}

func NewNamespaceRegistryAdapter() *NamespaceRegistryAdapter {
	return &NamespaceRegistryAdapter{entries: make(map[string]ports.Target)}
}

func (a *NamespaceRegistryAdapter) Install(name string, target ports.Target) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries[name] = target
}

func (a *NamespaceRegistryAdapter) Namespace(name string) (ports.Target, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	target, ok := a.entries[name]
	return target, ok
}

func (a *NamespaceRegistryAdapter) Remove(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.entries, name)
}

// Names returns the registered names in sorted order.
func (a *NamespaceRegistryAdapter) Names() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	names := make([]string, 0, len(a.entries))
	for name := range a.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var _ ports.NamespaceRegistryPort = (*NamespaceRegistryAdapter)(nil)
