package core

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"overlayns/internal/ports"
	"overlayns/internal/types"
)

func TestCompositeViewFirstMatchWins(t *testing.T) {
	view := NewCompositeView(
		objectWith("first", "a", 1),
		objectWith("second", "b", 2),
		objectWith("third", "a", 3),
	)
	ctx := t.Context()

	names, err := view.Names(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, names)

	value, err := view.Lookup(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 1, value)

	value, err = view.Lookup(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, 2, value)
}

func TestCompositeViewOrderingDeterminism(t *testing.T) {
	x := objectWith("x", "name", "x", "onlyX", true)
	y := objectWith("y", "name", "y")
	z := objectWith("z", "name", "z", "onlyZ", true)

	tests := []struct {
		name    string
		targets []ports.Target
		want    string
	}{
		{"xyz", []ports.Target{x, y, z}, "x"},
		{"xzy", []ports.Target{x, z, y}, "x"},
		{"yxz", []ports.Target{y, x, z}, "y"},
		{"yzx", []ports.Target{y, z, x}, "y"},
		{"zxy", []ports.Target{z, x, y}, "z"},
		{"zyx", []ports.Target{z, y, x}, "z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := NewCompositeView(tt.targets...)
			for range 3 {
				value, err := view.Lookup(t.Context(), "name")
				require.NoError(t, err)
				if diff := cmp.Diff(tt.want, value); diff != "" {
					t.Fatalf("unexpected winner (-want +got):\n%s", diff)
				}
			}
			_, err := view.Lookup(t.Context(), "onlyX")
			require.NoError(t, err)
			_, err = view.Lookup(t.Context(), "onlyZ")
			require.NoError(t, err)
		})
	}
}

func TestCompositeViewLaterTargetsNotConsulted(t *testing.T) {
	first := &countingTarget{Object: objectWith("first", "a", 1)}
	second := &countingTarget{Object: objectWith("second", "a", 2)}
	view := NewCompositeView(first, second)

	_, err := view.Lookup(t.Context(), "a")
	require.NoError(t, err)
	assert.Equal(t, 1, first.lookups)
	assert.Equal(t, 0, second.lookups)
}

func TestCompositeViewConstructionOrderIsFixed(t *testing.T) {
	targets := []ports.Target{objectWith("a", "v", "a"), objectWith("b", "v", "b")}
	view := NewCompositeView(targets...)
	targets[0], targets[1] = targets[1], targets[0]

	value, err := view.Lookup(t.Context(), "v")
	require.NoError(t, err)
	assert.Equal(t, "a", value)
	assert.Equal(t, 2, view.Len())
	assert.Equal(t, "overlay of 2 targets", view.String())
}

func TestCompositeViewEmpty(t *testing.T) {
	view := NewCompositeView()
	names, err := view.Names(t.Context())
	require.NoError(t, err)
	assert.Empty(t, names)

	_, err = view.Lookup(t.Context(), "anything")
	require.Error(t, err)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "anything", nf.Name)
	assert.Empty(t, nf.Consulted)
}

func TestCompositeViewNotFoundReportsConsulted(t *testing.T) {
	view := NewCompositeView(objectWith("first"), objectWith("second"))
	_, err := view.Lookup(t.Context(), "missing")

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	if diff := cmp.Diff([]string{"first", "second"}, nf.Consulted); diff != "" {
		t.Fatalf("unexpected consulted targets (-want +got):\n%s", diff)
	}
	assert.Contains(t, err.Error(), "'missing'")
}

func TestCompositeViewRejectsWrites(t *testing.T) {
	first := objectWith("first", "a", 1)
	second := objectWith("second")
	view := NewCompositeView(first, second)
	ctx := t.Context()

	err := view.Assign(ctx, "a", 99)
	require.Error(t, err)
	assert.True(t, IsWriteUnsupported(err))
	assert.False(t, IsNotFound(err))

	err = view.Remove(ctx, "a")
	assert.True(t, IsWriteUnsupported(err))

	err = view.Assign(ctx, "fresh", 1)
	assert.True(t, IsWriteUnsupported(err))

	value, err := first.Lookup(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 1, value)
	assert.Equal(t, 0, second.Len())
}

func TestCompositeViewPropagatesInitializationFailure(t *testing.T) {
	resolver := newTestResolver()
	boom := errors.New("boom")
	resolver.add("wild.bad", func(context.Context, ports.Mutable) error {
		return boom
	})
	view := NewCompositeView(
		objectWith("wild"),
		NewLazyUnit(types.Locator{Name: ".bad", Package: "wild"}, resolver),
		objectWith("fallback", "a", 1),
	)

	_, err := view.Lookup(t.Context(), "a")
	require.ErrorIs(t, err, boom)
	assert.True(t, IsInitializationFailure(err))
}

func TestCompositeViewNestedMissFallsThrough(t *testing.T) {
	inner := NewCompositeView(objectWith("inner"))
	view := NewCompositeView(inner, objectWith("outer", "a", 1))

	value, err := view.Lookup(t.Context(), "a")
	require.NoError(t, err)
	assert.Equal(t, 1, value)
}

func TestCompositeViewShadows(t *testing.T) {
	view := NewCompositeView(
		objectWith("first", "a", 1, "b", 1),
		objectWith("second", "b", 2),
		objectWith("third", "a", 3, "c", 3),
	)
	records, err := view.Shadows(t.Context())
	require.NoError(t, err)
	want := []types.ShadowRecord{
		{Name: "a", Winner: "first", Shadowed: []string{"third"}},
		{Name: "b", Winner: "first", Shadowed: []string{"second"}},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Fatalf("unexpected shadows (-want +got):\n%s", diff)
	}

	value, err := view.Lookup(t.Context(), "b")
	require.NoError(t, err)
	assert.Equal(t, 1, value)
}

func TestCompositeViewConcurrentReads(t *testing.T) {
	view := NewCompositeView(
		objectWith("first", "a", 1),
		objectWith("second", "b", 2),
	)
	ctx := t.Context()

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				value, err := view.Lookup(ctx, "b")
				assert.NoError(t, err)
				assert.Equal(t, 2, value)
			}
		}()
	}
	wg.Wait()
}
