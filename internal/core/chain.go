package core

import "context"

// DefaultMaxDepth bounds the number of nested lookups and
// materializations on one resolution chain.
const DefaultMaxDepth = 512

type chainKey struct{}

type maxDepthKey struct{}

// frame is one step of a resolution chain. Frames are immutable and
// linked to their parent, so the chain lives in the context rather than
// in the view or the units.
type frame struct {
	parent *frame
	label  string
	depth  int
	limit  int
}

// WithMaxDepth sets the resolution depth limit for lookups made with ctx.
// Values <= 0 keep DefaultMaxDepth.
func WithMaxDepth(ctx context.Context, limit int) context.Context {
	if limit <= 0 {
		return ctx
	}
	return context.WithValue(ctx, maxDepthKey{}, limit)
}

// Chain returns the labels of the resolution chain active in ctx,
// outermost first.
func Chain(ctx context.Context) []string {
	current, _ := ctx.Value(chainKey{}).(*frame)
	return current.labels()
}

func enterFrame(ctx context.Context, label string) (context.Context, error) {
	parent, _ := ctx.Value(chainKey{}).(*frame)
	next := &frame{parent: parent, label: label, depth: 1, limit: DefaultMaxDepth}
	if parent != nil {
		next.depth = parent.depth + 1
		next.limit = parent.limit
	} else if limit, ok := ctx.Value(maxDepthKey{}).(int); ok {
		next.limit = limit
	}
	if next.depth > next.limit {
		return ctx, &CycleError{Chain: next.labels(), Limit: next.limit}
	}
	return context.WithValue(ctx, chainKey{}, next), nil
}

func (f *frame) labels() []string {
	if f == nil {
		return nil
	}
	out := make([]string, f.depth)
	for cur := f; cur != nil; cur = cur.parent {
		out[cur.depth-1] = cur.label
	}
	return out
}
