package app

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"overlayns/internal/core"
)

func materializedLocators(result GetResult) []string {
	var out []string
	for _, unit := range result.Materialized {
		out = append(out, unit.Locator)
	}
	return out
}

func TestGetApp(t *testing.T) {
	tests := []struct {
		name             string
		attribute        string
		want             any
		wantMaterialized []string
	}{
		{name: "placeholder attribute", attribute: "__name__", want: "wild"},
		{name: "first unit", attribute: "greeting", want: "hello", wantMaterialized: []string{"wild.core>=1.0,<2.0"}},
		{name: "re-entrant read", attribute: "shout", want: "hello", wantMaterialized: []string{"wild.core>=1.0,<2.0", "wild.helpers"}},
		{name: "first definer wins", attribute: "answer", want: 42, wantMaterialized: []string{"wild.core>=1.0,<2.0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewService()
			result, err := service.Get(t.Context(), GetRequest{
				ManifestPath: fixturePath(t, "wild.yaml"),
				Name:         tt.attribute,
			})
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, result.Value); diff != "" {
				t.Fatalf("unexpected value (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantMaterialized, materializedLocators(result)); diff != "" {
				t.Fatalf("unexpected materialized units (-want +got):\n%s", diff)
			}

			installed, ok := service.Registry.Namespace("wild")
			require.True(t, ok)
			_, isObject := installed.(*core.Object)
			assert.True(t, isObject)
		})
	}
}

func TestGetMissingName(t *testing.T) {
	result, err := NewService().Get(t.Context(), GetRequest{
		ManifestPath: fixturePath(t, "wild.yaml"),
		Name:         "nope",
	})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
	assert.Len(t, result.Materialized, 3)
}

func TestGetRequiresName(t *testing.T) {
	_, err := NewService().Get(t.Context(), GetRequest{ManifestPath: fixturePath(t, "wild.yaml")})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}
