package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"overlayns/internal/ports"
	"overlayns/internal/types"
)

type ManifestFileAdapter struct{}

func NewManifestFileAdapter() ManifestFileAdapter {
	return ManifestFileAdapter{}
}

func (a ManifestFileAdapter) LoadManifest(path string) (types.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Manifest{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("manifest file not found").
			WithCause(err)
	}
	var manifest types.Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return types.Manifest{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse manifest yaml").
			WithCause(err)
	}
	if manifest.APIVersion == "" {
		return types.Manifest{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest missing api_version: " + path)
	}
	if manifest.Kind != types.ManifestKindOverlay {
		return types.Manifest{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest kind is not overlay")
	}
	if manifest.Metadata.Name == "" {
		return types.Manifest{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest missing metadata.name: " + path)
	}
	return manifest, nil
}

var _ ports.ManifestPort = ManifestFileAdapter{}
