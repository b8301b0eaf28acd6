package ports

import "context"

// Target is a readable, enumerable attribute surface. A miss is reported
// as a *core.NotFoundError so callers can tell it apart from failures.
type Target interface {
	Lookup(ctx context.Context, name string) (any, error)
	Names(ctx context.Context) ([]string, error)
}

// Mutable is a Target whose attributes can be written and removed.
type Mutable interface {
	Target
	Assign(ctx context.Context, name string, value any) error
	Remove(ctx context.Context, name string) error
}
