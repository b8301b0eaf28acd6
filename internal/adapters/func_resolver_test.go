package adapters

import (
	"context"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"overlayns/internal/ports"
	"overlayns/internal/types"
)

func TestFuncResolverResolve(t *testing.T) {
	resolver := NewFuncResolverAdapter()
	resolver.Register("wild.core", "1.4", func(ctx context.Context, target ports.Mutable) error {
		return target.Assign(ctx, "answer", 42)
	})

	locator := types.Locator{Name: ".core", Package: "wild"}
	def, err := resolver.Resolve(t.Context(), locator)
	require.NoError(t, err)
	assert.Equal(t, "1.4", def.Version())
	assert.Equal(t, locator, def.Locator())

	target, err := def.New(t.Context())
	require.NoError(t, err)
	require.NoError(t, def.Exec(t.Context(), target))
	value, err := target.Lookup(t.Context(), "answer")
	require.NoError(t, err)
	assert.Equal(t, 42, value)
}

func TestFuncResolverRequirement(t *testing.T) {
	resolver := NewFuncResolverAdapter()
	resolver.Register("wild.core", "1.4", nil)

	_, err := resolver.Resolve(t.Context(), types.Locator{Name: "wild.core", Requirement: ">=1.0"})
	require.NoError(t, err)

	_, err = resolver.Resolve(t.Context(), types.Locator{Name: "wild.core", Requirement: ">=2.0"})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
}

func TestFuncResolverUnknownUnit(t *testing.T) {
	_, err := NewFuncResolverAdapter().Resolve(t.Context(), types.Locator{Name: "wild.none"})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestFuncDefinitionDefaults(t *testing.T) {
	def := FuncDefinition{locator: types.Locator{Name: "x"}}
	assert.Equal(t, "0", def.Version())
	target, err := def.New(t.Context())
	require.NoError(t, err)
	require.NoError(t, def.Exec(t.Context(), target))
}
