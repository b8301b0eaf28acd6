package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"overlayns/internal/types"
)

type ManifestCompiler struct{}

var validShadowModes = map[types.ShadowMode]struct{}{
	types.ShadowModeIgnore: {},
	types.ShadowModeWarn:   {},
	types.ShadowModeError:  {},
}

func NewManifestCompiler() ManifestCompiler {
	return ManifestCompiler{}
}

func (c ManifestCompiler) ValidateManifest(ctx context.Context, manifest types.Manifest) error {
	assert.NotEmpty(ctx, manifest.APIVersion, "api_version must be set")
	assert.NotEmpty(ctx, string(manifest.Kind), "kind must be set")
	assert.NotEmpty(ctx, manifest.Metadata.Name, "metadata.name must be set")
	if manifest.Kind != types.ManifestKindOverlay {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest kind must be overlay")
	}
	if strings.TrimSpace(manifest.Namespace) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("namespace must not be empty")
	}
	if err := validateDefaults(manifest.Defaults); err != nil {
		return err
	}
	if err := validateLayers(manifest.Layers); err != nil {
		return err
	}
	if _, err := c.Locators(manifest); err != nil {
		return err
	}
	schemes := map[string]types.VersionScheme{}
	for _, def := range manifest.Definitions {
		if err := validateDefinition(manifest.Namespace, def, schemes); err != nil {
			return err
		}
	}
	log.Ctx(ctx).Debug().
		Str("manifest", manifest.Metadata.Name).
		Int("units", len(manifest.Units)).
		Int("definitions", len(manifest.Definitions)).
		Msg("manifest validated")
	return nil
}

// Locators parses the manifest's unit list in lookup order. Relative
// names are resolved against the manifest namespace.
func (c ManifestCompiler) Locators(manifest types.Manifest) ([]types.Locator, error) {
	locators := make([]types.Locator, 0, len(manifest.Units))
	for _, raw := range manifest.Units {
		locator, err := ParseLocator(raw, manifest.Namespace)
		if err != nil {
			return nil, err
		}
		locators = append(locators, locator)
	}
	return locators, nil
}

func validateDefaults(defaults types.ManifestDefaults) error {
	if defaults.ShadowPolicy != "" {
		if _, ok := validShadowModes[defaults.ShadowPolicy]; !ok {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid shadow_policy: %s", defaults.ShadowPolicy))
		}
	}
	if defaults.MaxDepth < 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("max_depth must not be negative")
	}
	return nil
}

func validateLayers(layers []string) error {
	seen := map[string]struct{}{}
	for _, layer := range layers {
		layer = strings.TrimSpace(layer)
		if layer == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("layers entries must not be empty")
		}
		if _, ok := seen[layer]; ok {
			return errbuilder.New().
				WithCode(errbuilder.CodeAlreadyExists).
				WithMsg(fmt.Sprintf("duplicate layer: %s", layer))
		}
		seen[layer] = struct{}{}
	}
	return nil
}

func validateDefinition(namespace string, def types.UnitDefinition, schemes map[string]types.VersionScheme) error {
	if strings.TrimSpace(def.Name) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("definitions.name must not be empty")
	}
	if strings.ContainsAny(def.Name, "<>=!~,") {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("definition name must not carry a requirement: %s", def.Name))
	}
	scheme, err := SchemeFor(def.Scheme)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("definition %s has invalid scheme %s", def.Name, def.Scheme)).
			WithCause(err)
	}
	qualified := types.Locator{Name: def.Name, Package: namespace}.Qualified()
	if previous, ok := schemes[qualified]; ok && previous != scheme.Name() {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("definitions of %s mix version schemes %s and %s", qualified, previous, scheme.Name()))
	}
	schemes[qualified] = scheme.Name()
	if def.Version != "" {
		if err := scheme.Check(def.Version); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("definition %s has invalid version %s", def.Name, def.Version)).
				WithCause(err)
		}
	}
	for i, step := range def.Steps {
		if err := validateStep(step); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("definition %s step %d: %s", def.Name, i, errMsg(err))).
				WithCause(err)
		}
	}
	return nil
}

func validateStep(step types.Step) error {
	present := 0
	for _, field := range []string{step.Set, step.Require, step.Delete, step.Fail} {
		if field != "" {
			present++
		}
	}
	if present != 1 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("exactly one of set, require, delete or fail must be given")
	}
	if step.Op() != types.StepOpSet && (step.Value != nil || step.Ref != "") {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("value and ref only apply to set")
	}
	if step.Value != nil && step.Ref != "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("set takes either value or ref")
	}
	return nil
}

func errMsg(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && builder.Msg != "" {
		return builder.Msg
	}
	return err.Error()
}
