package core

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"overlayns/internal/ports"
	"overlayns/internal/types"
)

// CompositeView is a read-only overlay of several targets. A read is
// answered by the first target, in construction order, that defines the
// name; enumeration is the union of all targets' names.
//
// The view holds no mutable state after construction. Concurrent reads
// are as safe as the reads of its targets.
type CompositeView struct {
	targets []ports.Target
}

func NewCompositeView(targets ...ports.Target) CompositeView {
	return CompositeView{targets: slices.Clone(targets)}
}

// Len is the number of targets consulted in order.
func (v CompositeView) Len() int {
	return len(v.targets)
}

func (v CompositeView) String() string {
	return fmt.Sprintf("overlay of %d targets", v.Len())
}

func (v CompositeView) Lookup(ctx context.Context, name string) (any, error) {
	ctx, err := enterFrame(ctx, "lookup "+name)
	if err != nil {
		return nil, err
	}
	for _, target := range v.targets {
		value, err := target.Lookup(ctx, name)
		if err == nil {
			return value, nil
		}
		if !IsMiss(err) {
			return nil, err
		}
	}
	return nil, &NotFoundError{Name: name, Consulted: v.labels()}
}

func (v CompositeView) Names(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, target := range v.targets {
		names, err := target.Names(ctx)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			if seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, name)
		}
	}
	return out, nil
}

func (v CompositeView) Assign(_ context.Context, name string, _ any) error {
	return &WriteUnsupportedError{Name: name, Op: "write", Owner: v.String()}
}

func (v CompositeView) Remove(_ context.Context, name string) error {
	return &WriteUnsupportedError{Name: name, Op: "delete", Owner: v.String()}
}

// Shadows lists names defined by more than one target. It enumerates
// every target, so lazy targets get materialized. Resolution is not
// affected: the winner is always the first definer.
func (v CompositeView) Shadows(ctx context.Context) ([]types.ShadowRecord, error) {
	definers := map[string][]string{}
	for _, target := range v.targets {
		names, err := target.Names(ctx)
		if err != nil {
			return nil, err
		}
		label := describe(target)
		for _, name := range names {
			definers[name] = append(definers[name], label)
		}
	}
	var records []types.ShadowRecord
	for name, labels := range definers {
		if len(labels) < 2 {
			continue
		}
		records = append(records, types.ShadowRecord{
			Name:     name,
			Winner:   labels[0],
			Shadowed: labels[1:],
		})
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Name < records[j].Name
	})
	return records, nil
}

func (v CompositeView) labels() []string {
	out := make([]string, 0, len(v.targets))
	for _, target := range v.targets {
		out = append(out, describe(target))
	}
	return out
}

func describe(target ports.Target) string {
	if s, ok := target.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", target)
}

var _ ports.Mutable = CompositeView{}
