package ports

import (
	"context"

	"overlayns/internal/types"
)

// Definition is an executable sub-unit: New allocates the empty target
// and Exec runs the initialization body against it. Exec may read back
// through the namespace that is driving the materialization.
type Definition interface {
	Locator() types.Locator
	Version() string
	New(ctx context.Context) (Mutable, error)
	Exec(ctx context.Context, target Mutable) error
}

type LocatorResolverPort interface {
	Resolve(ctx context.Context, locator types.Locator) (Definition, error)
}
