package core

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"overlayns/internal/types"
)

func baseManifest() types.Manifest {
	return types.Manifest{
		APIVersion: "v1",
		Kind:       types.ManifestKindOverlay,
		Metadata:   types.Metadata{Name: "wild", Version: "1.0.0"},
		Namespace:  "wild",
		Units:      []string{".core>=1.0", ".extras"},
		Definitions: []types.UnitDefinition{
			{
				Name:    ".core",
				Version: "1.2.0",
				Steps: []types.Step{
					{Set: "a", Value: 1},
					{Set: "b", Ref: "a"},
				},
			},
			{
				Name:    ".extras",
				Version: "0.1",
				Steps:   []types.Step{{Require: "a"}, {Delete: "tmp"}},
			},
		},
	}
}

func TestManifestCompilerValidateManifestCases(t *testing.T) {
	compiler := NewManifestCompiler()

	tests := []struct {
		name    string
		build   func() types.Manifest
		wantErr bool
	}{
		{
			name:  "valid manifest",
			build: baseManifest,
		},
		{
			name: "wrong kind",
			build: func() types.Manifest {
				manifest := baseManifest()
				manifest.Kind = "product"
				return manifest
			},
			wantErr: true,
		},
		{
			name: "missing namespace",
			build: func() types.Manifest {
				manifest := baseManifest()
				manifest.Namespace = " "
				return manifest
			},
			wantErr: true,
		},
		{
			name: "invalid shadow policy",
			build: func() types.Manifest {
				manifest := baseManifest()
				manifest.Defaults.ShadowPolicy = "loud"
				return manifest
			},
			wantErr: true,
		},
		{
			name: "negative max depth",
			build: func() types.Manifest {
				manifest := baseManifest()
				manifest.Defaults.MaxDepth = -1
				return manifest
			},
			wantErr: true,
		},
		{
			name: "empty layer",
			build: func() types.Manifest {
				manifest := baseManifest()
				manifest.Layers = []string{"base.yaml", " "}
				return manifest
			},
			wantErr: true,
		},
		{
			name: "unit with dangling requirement",
			build: func() types.Manifest {
				manifest := baseManifest()
				manifest.Units = []string{".core>="}
				return manifest
			},
			wantErr: true,
		},
		{
			name: "definition without name",
			build: func() types.Manifest {
				manifest := baseManifest()
				manifest.Definitions[0].Name = ""
				return manifest
			},
			wantErr: true,
		},
		{
			name: "definition name with requirement",
			build: func() types.Manifest {
				manifest := baseManifest()
				manifest.Definitions[0].Name = ".core>=1"
				return manifest
			},
			wantErr: true,
		},
		{
			name: "unknown scheme",
			build: func() types.Manifest {
				manifest := baseManifest()
				manifest.Definitions[0].Scheme = "semver"
				return manifest
			},
			wantErr: true,
		},
		{
			name: "mixed schemes for one unit",
			build: func() types.Manifest {
				manifest := baseManifest()
				manifest.Definitions = append(manifest.Definitions, types.UnitDefinition{
					Name:    "wild.core",
					Version: "2.0.0",
					Scheme:  types.VersionSchemeDeb,
				})
				return manifest
			},
			wantErr: true,
		},
		{
			name: "invalid pep440 version",
			build: func() types.Manifest {
				manifest := baseManifest()
				manifest.Definitions[0].Version = "not-a-pep440!!!"
				return manifest
			},
			wantErr: true,
		},
		{
			name: "step with two operations",
			build: func() types.Manifest {
				manifest := baseManifest()
				manifest.Definitions[0].Steps = []types.Step{{Set: "a", Delete: "b"}}
				return manifest
			},
			wantErr: true,
		},
		{
			name: "empty step",
			build: func() types.Manifest {
				manifest := baseManifest()
				manifest.Definitions[0].Steps = []types.Step{{}}
				return manifest
			},
			wantErr: true,
		},
		{
			name: "ref outside set",
			build: func() types.Manifest {
				manifest := baseManifest()
				manifest.Definitions[0].Steps = []types.Step{{Require: "a", Ref: "b"}}
				return manifest
			},
			wantErr: true,
		},
		{
			name: "set with value and ref",
			build: func() types.Manifest {
				manifest := baseManifest()
				manifest.Definitions[0].Steps = []types.Step{{Set: "a", Value: 1, Ref: "b"}}
				return manifest
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := compiler.ValidateManifest(t.Context(), tt.build())
			if tt.wantErr {
				require.Error(t, err)
				require.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestManifestCompilerDuplicateLayer(t *testing.T) {
	manifest := baseManifest()
	manifest.Layers = []string{"base.yaml", "site.yaml", "base.yaml"}

	err := NewManifestCompiler().ValidateManifest(t.Context(), manifest)
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeAlreadyExists, errbuilder.CodeOf(err))
	require.Contains(t, err.Error(), "duplicate layer: base.yaml")
}

func TestManifestCompilerStepErrorNamesDefinition(t *testing.T) {
	manifest := baseManifest()
	manifest.Definitions[1].Steps = []types.Step{{Require: "a"}, {}}

	err := NewManifestCompiler().ValidateManifest(t.Context(), manifest)
	require.Error(t, err)
	require.Contains(t, err.Error(), "definition .extras step 1")
}

func TestManifestCompilerLocators(t *testing.T) {
	locators, err := NewManifestCompiler().Locators(baseManifest())
	require.NoError(t, err)

	want := []types.Locator{
		{Name: ".core", Package: "wild", Requirement: ">=1.0"},
		{Name: ".extras", Package: "wild"},
	}
	if diff := cmp.Diff(want, locators); diff != "" {
		t.Fatalf("locators mismatch (-want +got):\n%s", diff)
	}
}
