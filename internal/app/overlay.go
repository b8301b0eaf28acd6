package app

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"

	"overlayns/internal/adapters"
	"overlayns/internal/core"
	"overlayns/internal/policies"
	"overlayns/internal/types"
)

// session is a manifest prepared for loading: the placeholder is
// registered and the loader is configured, nothing is materialized.
type session struct {
	manifest types.Manifest
	locators []types.Locator
	resolver *adapters.ManifestResolverAdapter
	loader   core.OverlayLoader
}

func (s Service) prepare(ctx context.Context, path string, opts OverlayOptions) (*session, error) {
	stack, err := s.loadStack(ctx, path)
	if err != nil {
		return nil, err
	}
	manifest := top(stack)
	locators, err := s.Compiler.Locators(manifest)
	if err != nil {
		return nil, err
	}
	opts = applyManifestDefaults(opts, manifest.Defaults)
	mode, err := policies.ParseShadowMode(opts.ShadowPolicy)
	if err != nil {
		return nil, err
	}
	policy, err := policies.NewShadowPolicy(mode, opts.ShadowAllow)
	if err != nil {
		return nil, err
	}

	resolver := adapters.NewManifestResolverAdapter(s.Registry)
	for _, layer := range stack {
		resolver.AddManifest(layer)
	}

	placeholder := core.NewObject(manifest.Namespace)
	keys := make([]string, 0, len(manifest.Attributes))
	for key := range manifest.Attributes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := placeholder.Assign(ctx, key, manifest.Attributes[key]); err != nil {
			return nil, err
		}
	}
	s.Registry.Install(manifest.Namespace, placeholder)

	loader := core.NewOverlayLoader(s.Registry, resolver)
	loader.Policy = policy
	loader.MaxDepth = opts.MaxDepth
	log.Ctx(ctx).Debug().
		Str("namespace", manifest.Namespace).
		Str("shadow_policy", string(policy.Mode())).
		Int("max_depth", opts.MaxDepth).
		Msg("overlay prepared")
	return &session{
		manifest: manifest,
		locators: locators,
		resolver: resolver,
		loader:   loader,
	}, nil
}

// applyManifestDefaults fills unset options from the manifest defaults.
// Allow patterns from both sources apply.
func applyManifestDefaults(opts OverlayOptions, defaults types.ManifestDefaults) OverlayOptions {
	if opts.ShadowPolicy == "" {
		opts.ShadowPolicy = string(defaults.ShadowPolicy)
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = defaults.MaxDepth
	}
	if len(defaults.ShadowAllow) > 0 {
		allow := append([]string(nil), defaults.ShadowAllow...)
		opts.ShadowAllow = append(allow, opts.ShadowAllow...)
	}
	return opts
}
