package adapters

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"overlayns/internal/core"
	"overlayns/internal/ports"
	"overlayns/internal/types"
)

// ScriptDefinition runs the steps of a manifest unit definition. Reads
// (set with ref, require) go through whatever is currently registered
// under the unit's package, which during loading is the overlay itself.
type ScriptDefinition struct {
	locator  types.Locator
	version  string
	steps    []types.Step
	registry ports.NamespaceRegistryPort
}

func (d ScriptDefinition) Locator() types.Locator {
	return d.locator
}

func (d ScriptDefinition) Version() string {
	return d.version
}

func (d ScriptDefinition) New(context.Context) (ports.Mutable, error) {
	return core.NewObject(d.locator.Qualified()), nil
}

func (d ScriptDefinition) Exec(ctx context.Context, target ports.Mutable) error {
	for i, step := range d.steps {
		switch step.Op() {
		case types.StepOpSet:
			value := step.Value
			if step.Ref != "" {
				resolved, err := d.read(ctx, step.Ref)
				if err != nil {
					return err
				}
				value = resolved
			}
			if err := target.Assign(ctx, step.Set, value); err != nil {
				return err
			}
		case types.StepOpRequire:
			if _, err := d.read(ctx, step.Require); err != nil {
				return err
			}
		case types.StepOpDelete:
			if err := target.Remove(ctx, step.Delete); err != nil {
				return err
			}
		case types.StepOpFail:
			return errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(step.Fail)
		default:
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("step %d of %s has no operation", i, d.locator.Qualified()))
		}
	}
	return nil
}

func (d ScriptDefinition) read(ctx context.Context, name string) (any, error) {
	if d.registry == nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("script definition has no namespace registry")
	}
	namespace, ok := d.registry.Namespace(d.locator.Package)
	if !ok {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("namespace not registered: %s", d.locator.Package))
	}
	return namespace.Lookup(ctx, name)
}

var _ ports.Definition = ScriptDefinition{}
