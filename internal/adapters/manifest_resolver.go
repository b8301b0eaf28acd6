package adapters

import (
	"context"
	"fmt"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"overlayns/internal/core"
	"overlayns/internal/ports"
	"overlayns/internal/types"
)

// unversioned stands in for a definition without a version so that it
// still takes part in version selection.
const unversioned = "0"

// ManifestResolverAdapter implements LocatorResolverPort over the unit
// definitions of one or more manifests. Several definitions may share a
// qualified name; Resolve picks the highest version that satisfies the
// locator's requirement.
type ManifestResolverAdapter struct {
	registry ports.NamespaceRegistryPort

	// definitions holds every definition per qualified name, in load order.
	definitions map[string][]layeredDefinition

	// layers is the manifest load order.
	layers []string
}

// layeredDefinition remembers which manifest contributed a definition.
type layeredDefinition struct {
	def   types.UnitDefinition
	layer string
}

// NewManifestResolverAdapter returns an empty resolver. Script bodies
// read back through registry.
func NewManifestResolverAdapter(registry ports.NamespaceRegistryPort) *ManifestResolverAdapter {
	return &ManifestResolverAdapter{
		registry:    registry,
		definitions: make(map[string][]layeredDefinition),
	}
}

// AddManifest merges the manifest's definitions as the next layer.
// Relative definition names are qualified with the manifest namespace.
func (a *ManifestResolverAdapter) AddManifest(manifest types.Manifest) {
	for _, def := range manifest.Definitions {
		name := types.Locator{Name: def.Name, Package: manifest.Namespace}.Qualified()
		if existing := a.definitions[name]; len(existing) > 0 {
			log.Debug().
				Str("unit", name).
				Str("manifest", manifest.Metadata.Name).
				Int("definitions", len(existing)+1).
				Msg("unit defined more than once")
		}
		a.definitions[name] = append(a.definitions[name], layeredDefinition{def: def, layer: manifest.Metadata.Name})
	}
	a.layers = append(a.layers, manifest.Metadata.Name)
	log.Debug().
		Str("manifest", manifest.Metadata.Name).
		Int("definitions", len(manifest.Definitions)).
		Int("units", len(a.definitions)).
		Msg("manifest definitions loaded")
}

// Units returns the qualified names of all known units, sorted.
func (a *ManifestResolverAdapter) Units() []string {
	names := make([]string, 0, len(a.definitions))
	for name := range a.definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Versions returns the declared versions of a unit in load order.
func (a *ManifestResolverAdapter) Versions(name string) []string {
	var out []string
	for _, entry := range a.definitions[name] {
		out = append(out, entry.def.Version)
	}
	return out
}

// Layers returns the names of the loaded manifests, first loaded first.
func (a *ManifestResolverAdapter) Layers() []string {
	return append([]string(nil), a.layers...)
}

// Origin names the manifest whose definition Resolve would execute.
func (a *ManifestResolverAdapter) Origin(locator types.Locator) (string, error) {
	entry, err := a.selectEntry(locator)
	if err != nil {
		return "", err
	}
	return entry.layer, nil
}

func (a *ManifestResolverAdapter) Resolve(ctx context.Context, locator types.Locator) (ports.Definition, error) {
	entry, err := a.selectEntry(locator)
	if err != nil {
		return nil, err
	}
	def := entry.def
	log.Ctx(ctx).Debug().
		Str("unit", locator.String()).
		Str("version", def.Version).
		Str("layer", entry.layer).
		Msg("unit definition selected")
	return ScriptDefinition{
		locator:  locator,
		version:  def.Version,
		steps:    def.Steps,
		registry: a.registry,
	}, nil
}

// Select returns the definition Resolve would execute for locator.
func (a *ManifestResolverAdapter) Select(locator types.Locator) (types.UnitDefinition, error) {
	entry, err := a.selectEntry(locator)
	if err != nil {
		return types.UnitDefinition{}, err
	}
	return entry.def, nil
}

func (a *ManifestResolverAdapter) selectEntry(locator types.Locator) (layeredDefinition, error) {
	name := locator.Qualified()
	entries := a.definitions[name]
	if len(entries) == 0 {
		return layeredDefinition{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("unit not found: %s", name))
	}
	scheme, err := core.SchemeFor(entries[0].def.Scheme)
	if err != nil {
		return layeredDefinition{}, err
	}
	available := make([]string, 0, len(entries))
	for _, entry := range entries {
		available = append(available, versionOf(entry.def))
	}
	best, err := scheme.Select(locator, available)
	if err != nil {
		return layeredDefinition{}, err
	}
	// Later layers override earlier definitions of the same version.
	for i := len(entries) - 1; i >= 0; i-- {
		if versionOf(entries[i].def) == best {
			return entries[i], nil
		}
	}
	return layeredDefinition{}, errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(fmt.Sprintf("selected version %s of %s has no definition", best, name))
}

func versionOf(def types.UnitDefinition) string {
	if def.Version == "" {
		return unversioned
	}
	return def.Version
}

var _ ports.LocatorResolverPort = (*ManifestResolverAdapter)(nil)
