package adapters

import (
	"context"
	"fmt"
	"sync"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"overlayns/internal/core"
	"overlayns/internal/ports"
	"overlayns/internal/types"
)

// Body is a Go initialization body for a unit.
type Body func(ctx context.Context, target ports.Mutable) error

// FuncResolverAdapter resolves qualified unit names to Go bodies. Hosts
// embedding the resolver register their units here instead of writing
// a manifest.
type FuncResolverAdapter struct {
	mu     sync.RWMutex
	bodies map[string]FuncDefinition
}

func NewFuncResolverAdapter() *FuncResolverAdapter {
	return &FuncResolverAdapter{bodies: make(map[string]FuncDefinition)}
}

// Register adds or replaces the body for a qualified unit name.
func (a *FuncResolverAdapter) Register(name string, version string, body Body) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.bodies[name] = FuncDefinition{version: version, body: body}
}

func (a *FuncResolverAdapter) Resolve(_ context.Context, locator types.Locator) (ports.Definition, error) {
	name := locator.Qualified()
	a.mu.RLock()
	def, ok := a.bodies[name]
	a.mu.RUnlock()
	if !ok {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("unit not found: %s", name))
	}
	if locator.Requirement != "" {
		scheme, err := core.SchemeFor(types.VersionSchemePep440)
		if err != nil {
			return nil, err
		}
		if _, err := scheme.Select(locator, []string{def.Version()}); err != nil {
			return nil, err
		}
	}
	def.locator = locator
	return def, nil
}

// FuncDefinition is a unit whose body is a Go function.
type FuncDefinition struct {
	locator types.Locator
	version string
	body    Body
}

func (d FuncDefinition) Locator() types.Locator {
	return d.locator
}

func (d FuncDefinition) Version() string {
	if d.version == "" {
		return unversioned
	}
	return d.version
}

func (d FuncDefinition) New(context.Context) (ports.Mutable, error) {
	return core.NewObject(d.locator.Qualified()), nil
}

func (d FuncDefinition) Exec(ctx context.Context, target ports.Mutable) error {
	if d.body == nil {
		return nil
	}
	return d.body(ctx, target)
}

var (
	_ ports.LocatorResolverPort = (*FuncResolverAdapter)(nil)
	_ ports.Definition          = FuncDefinition{}
)
