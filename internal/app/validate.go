package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"overlayns/internal/types"
)

func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	stack, err := s.loadStack(ctx, req.ManifestPath)
	if err != nil {
		return ValidateResult{}, err
	}
	manifest := top(stack)
	definitions := 0
	for _, layer := range stack {
		definitions += len(layer.Definitions)
	}
	return ValidateResult{
		ManifestName: manifest.Metadata.Name,
		Namespace:    manifest.Namespace,
		Layers:       layerNames(stack),
		Units:        len(manifest.Units),
		Definitions:  definitions,
	}, nil
}

// loadManifest reads and validates the manifest at path.
func (s Service) loadManifest(ctx context.Context, path string) (types.Manifest, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return types.Manifest{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest path is required")
	}
	manifest, err := s.Manifests.LoadManifest(path)
	if err != nil {
		return types.Manifest{}, err
	}
	if err := s.Compiler.ValidateManifest(ctx, manifest); err != nil {
		return types.Manifest{}, err
	}
	return manifest, nil
}
