package core

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"overlayns/internal/ports"
	"overlayns/internal/types"
)

// LazyUnit stands in for a sub-unit that has not been initialized yet.
// The first read, write or enumeration materializes it; afterwards every
// operation is forwarded to the materialized value.
//
// A LazyUnit is not safe for concurrent materialization.
type LazyUnit struct {
	locator  types.Locator
	resolver ports.LocatorResolverPort
	state    types.UnitState
	value    ports.Mutable
	version  string
	err      error
}

func NewLazyUnit(locator types.Locator, resolver ports.LocatorResolverPort) *LazyUnit {
	return &LazyUnit{
		locator:  locator,
		resolver: resolver,
		state:    types.UnitStateUnmaterialized,
	}
}

func (u *LazyUnit) Locator() types.Locator {
	return u.locator
}

func (u *LazyUnit) State() types.UnitState {
	return u.state
}

// Value returns the materialized value, or nil before materialization.
func (u *LazyUnit) Value() ports.Mutable {
	return u.value
}

// Version returns the version of the definition that was materialized.
func (u *LazyUnit) Version() string {
	return u.version
}

// Err returns the failure of the initialization body, if it failed.
func (u *LazyUnit) Err() error {
	return u.err
}

func (u *LazyUnit) String() string {
	return u.locator.String()
}

// Materialize resolves, allocates and initializes the unit once. The
// value is recorded before the body runs: a read that re-enters this
// unit from its own body sees the attributes set so far.
func (u *LazyUnit) Materialize(ctx context.Context) (ports.Mutable, error) {
	if u.state == types.UnitStateMaterialized {
		return u.value, nil
	}
	ctx, err := enterFrame(ctx, "materialize "+u.locator.String())
	if err != nil {
		return nil, err
	}
	if u.resolver == nil {
		return nil, &InitializationError{
			Locator: u.locator,
			Cause: errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg("lazy unit has no locator resolver"),
		}
	}
	def, err := u.resolver.Resolve(ctx, u.locator)
	if err != nil {
		return nil, initializationFailure(u.locator, err)
	}
	value, err := def.New(ctx)
	if err != nil {
		return nil, initializationFailure(u.locator, err)
	}

	u.value = value
	u.version = def.Version()
	u.state = types.UnitStateMaterialized

	log.Ctx(ctx).Debug().Str("unit", u.locator.String()).Str("version", u.version).Msg("materializing unit")
	if err := def.Exec(ctx, value); err != nil {
		u.err = initializationFailure(u.locator, err)
		return nil, u.err
	}
	log.Ctx(ctx).Debug().Str("unit", u.locator.String()).Msg("unit materialized")
	return value, nil
}

func (u *LazyUnit) Lookup(ctx context.Context, name string) (any, error) {
	value, err := u.Materialize(ctx)
	if err != nil {
		return nil, err
	}
	return value.Lookup(ctx, name)
}

func (u *LazyUnit) Names(ctx context.Context) ([]string, error) {
	value, err := u.Materialize(ctx)
	if err != nil {
		return nil, err
	}
	return value.Names(ctx)
}

func (u *LazyUnit) Assign(ctx context.Context, name string, v any) error {
	value, err := u.Materialize(ctx)
	if err != nil {
		return err
	}
	return value.Assign(ctx, name, v)
}

func (u *LazyUnit) Remove(ctx context.Context, name string) error {
	value, err := u.Materialize(ctx)
	if err != nil {
		return err
	}
	return value.Remove(ctx, name)
}

var _ ports.Mutable = (*LazyUnit)(nil)
