package app

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestValidateApp(t *testing.T) {
	service := NewService()
	result, err := service.Validate(t.Context(), ValidateRequest{
		ManifestPath: fixturePath(t, "wild.yaml"),
	})
	require.NoError(t, err)
	want := ValidateResult{ManifestName: "wild", Namespace: "wild", Units: 3, Definitions: 5}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Fatalf("unexpected validate result (-want +got):\n%s", diff)
	}
}

func TestValidateRequiresManifestPath(t *testing.T) {
	_, err := NewService().Validate(t.Context(), ValidateRequest{ManifestPath: "  "})
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestValidateMissingManifest(t *testing.T) {
	_, err := NewService().Validate(t.Context(), ValidateRequest{ManifestPath: fixturePath(t, "absent.yaml")})
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}
