package core

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"overlayns/internal/ports"
	"overlayns/internal/types"
)

// OverlayLoader installs a CompositeView over a namespace's units as a
// temporary stand-in, materializes every unit through it and finally
// swaps the populated placeholder back in.
type OverlayLoader struct {
	Registry ports.NamespaceRegistryPort
	Resolver ports.LocatorResolverPort
	Policy   ports.ShadowPolicyPort
	MaxDepth int
}

// Overlay is a staged namespace: the placeholder, its lazy units and the
// view currently installed in the registry under Namespace.
type Overlay struct {
	Namespace   string
	Placeholder ports.Mutable
	Units       []*LazyUnit
	View        CompositeView
	Shadows     []types.ShadowRecord
}

func NewOverlayLoader(registry ports.NamespaceRegistryPort, resolver ports.LocatorResolverPort) OverlayLoader {
	return OverlayLoader{
		Registry: registry,
		Resolver: resolver,
	}
}

// Context applies the loader's depth limit to ctx.
func (l OverlayLoader) Context(ctx context.Context) context.Context {
	return WithMaxDepth(ctx, l.MaxDepth)
}

// Stage replaces the placeholder registered under namespace with a view
// over the placeholder followed by one lazy unit per locator. Nothing is
// materialized yet.
func (l OverlayLoader) Stage(ctx context.Context, namespace string, locators []types.Locator) (*Overlay, error) {
	if l.Registry == nil || l.Resolver == nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("overlay loader requires registry and resolver ports")
	}
	current, ok := l.Registry.Namespace(namespace)
	if !ok {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("namespace not registered: %s", namespace))
	}
	if _, staged := current.(CompositeView); staged {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("namespace %s is already staged", namespace))
	}
	placeholder, ok := current.(ports.Mutable)
	if !ok {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("namespace %s is not writable", namespace))
	}

	overlay := &Overlay{Namespace: namespace, Placeholder: placeholder}
	targets := []ports.Target{placeholder}
	for _, locator := range locators {
		if locator.Package == "" {
			locator.Package = namespace
		}
		unit := NewLazyUnit(locator, l.Resolver)
		overlay.Units = append(overlay.Units, unit)
		targets = append(targets, unit)
	}
	overlay.View = NewCompositeView(targets...)
	l.Registry.Install(namespace, overlay.View)
	log.Ctx(ctx).Debug().Str("namespace", namespace).Int("units", len(overlay.Units)).Msg("overlay staged")
	return overlay, nil
}

// Load stages the namespace and commits it.
func (l OverlayLoader) Load(ctx context.Context, namespace string, locators []types.Locator) (*Overlay, error) {
	ctx = l.Context(ctx)
	overlay, err := l.Stage(ctx, namespace, locators)
	if err != nil {
		return nil, err
	}
	if err := l.Commit(ctx, overlay); err != nil {
		return overlay, err
	}
	return overlay, nil
}

// Commit materializes every unit by enumerating the view, applies the
// shadow policy, copies each name onto the placeholder and reinstalls
// the placeholder. The placeholder is reinstalled on failure too; it is
// only written once every name has resolved.
func (l OverlayLoader) Commit(ctx context.Context, overlay *Overlay) error {
	ctx = l.Context(ctx)
	defer l.Registry.Install(overlay.Namespace, overlay.Placeholder)

	names, err := overlay.View.Names(ctx)
	if err != nil {
		return err
	}
	shadows, err := overlay.View.Shadows(ctx)
	if err != nil {
		return err
	}
	overlay.Shadows = shadows
	if l.Policy != nil {
		if err := l.Policy.Check(ctx, shadows); err != nil {
			return err
		}
	}

	values := make(map[string]any, len(names))
	for _, name := range names {
		value, err := overlay.View.Lookup(ctx, name)
		if err != nil {
			return err
		}
		values[name] = value
	}
	for _, name := range names {
		if err := overlay.Placeholder.Assign(ctx, name, values[name]); err != nil {
			return err
		}
	}
	log.Ctx(ctx).Debug().Str("namespace", overlay.Namespace).Int("names", len(names)).Msg("overlay committed")
	return nil
}

// Abort reinstalls the placeholder without materializing anything else.
func (l OverlayLoader) Abort(overlay *Overlay) {
	l.Registry.Install(overlay.Namespace, overlay.Placeholder)
}

// Materialized returns the units that have been materialized so far.
func (o *Overlay) Materialized() []*LazyUnit {
	var out []*LazyUnit
	for _, unit := range o.Units {
		if unit.State() == types.UnitStateMaterialized {
			out = append(out, unit)
		}
	}
	return out
}

// Report summarizes the overlay's units and shadowed names.
func (o *Overlay) Report(ctx context.Context) types.LoadReport {
	report := types.LoadReport{Namespace: o.Namespace, Shadows: o.Shadows}
	if names, err := o.Placeholder.Names(ctx); err == nil {
		report.Names = names
	}
	for _, unit := range o.Units {
		entry := types.UnitReport{
			Locator: unit.Locator().String(),
			Version: unit.Version(),
			State:   unit.State(),
		}
		if value := unit.Value(); value != nil {
			if names, err := value.Names(ctx); err == nil {
				entry.Attributes = len(names)
			}
		}
		if err := unit.Err(); err != nil {
			entry.Error = err.Error()
		}
		report.Units = append(report.Units, entry)
	}
	return report
}
