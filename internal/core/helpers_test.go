package core

import (
	"context"
	"fmt"
	"sync"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"overlayns/internal/ports"
	"overlayns/internal/types"
)

type testBody func(ctx context.Context, target ports.Mutable) error

type testDefinition struct {
	locator types.Locator
	version string
	body    testBody
}

func (d testDefinition) Locator() types.Locator {
	return d.locator
}

func (d testDefinition) Version() string {
	return d.version
}

func (d testDefinition) New(context.Context) (ports.Mutable, error) {
	return NewObject(d.locator.Qualified()), nil
}

func (d testDefinition) Exec(ctx context.Context, target ports.Mutable) error {
	if d.body == nil {
		return nil
	}
	return d.body(ctx, target)
}

// testResolver resolves qualified unit names to bodies and counts how
// often each body ran.
type testResolver struct {
	bodies map[string]testBody
	runs   map[string]int
}

func newTestResolver() *testResolver {
	return &testResolver{bodies: map[string]testBody{}, runs: map[string]int{}}
}

func (r *testResolver) add(name string, body testBody) {
	r.bodies[name] = body
}

func (r *testResolver) Resolve(_ context.Context, locator types.Locator) (ports.Definition, error) {
	name := locator.Qualified()
	body, ok := r.bodies[name]
	if !ok {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("unit not found: %s", name))
	}
	return testDefinition{
		locator: locator,
		version: "1.0",
		body: func(ctx context.Context, target ports.Mutable) error {
			r.runs[name]++
			if body == nil {
				return nil
			}
			return body(ctx, target)
		},
	}, nil
}

// testRegistry is a minimal module table.
type testRegistry struct {
	mu      sync.RWMutex
	entries map[string]ports.Target
}

func newTestRegistry() *testRegistry {
	return &testRegistry{entries: map[string]ports.Target{}}
}

func (r *testRegistry) Install(name string, target ports.Target) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = target
}

func (r *testRegistry) Namespace(name string) (ports.Target, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	target, ok := r.entries[name]
	return target, ok
}

func (r *testRegistry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, name)
}

func (r *testRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []string
	for name := range r.entries {
		out = append(out, name)
	}
	return out
}

// forwarder answers every lookup by asking another target.
type forwarder struct {
	to func() ports.Target
}

func (f forwarder) Lookup(ctx context.Context, name string) (any, error) {
	return f.to().Lookup(ctx, name)
}

func (f forwarder) Names(context.Context) ([]string, error) {
	return nil, nil
}

// countingTarget records lookups before delegating.
type countingTarget struct {
	*Object
	lookups int
}

func (c *countingTarget) Lookup(ctx context.Context, name string) (any, error) {
	c.lookups++
	return c.Object.Lookup(ctx, name)
}

func objectWith(name string, attrs ...any) *Object {
	obj := NewObject(name)
	for i := 0; i+1 < len(attrs); i += 2 {
		_ = obj.Assign(context.Background(), attrs[i].(string), attrs[i+1])
	}
	return obj
}

func lookupIn(ctx context.Context, registry ports.NamespaceRegistryPort, namespace string, name string) (any, error) {
	target, ok := registry.Namespace(namespace)
	if !ok {
		return nil, &NotFoundError{Name: namespace}
	}
	return target.Lookup(ctx, name)
}

var (
	_ ports.LocatorResolverPort   = (*testResolver)(nil)
	_ ports.NamespaceRegistryPort = (*testRegistry)(nil)
)
