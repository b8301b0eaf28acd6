package app

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"overlayns/internal/types"
)

// manifestStack collects a manifest and its layers in load order: every
// layer before the manifest naming it, layers in the order listed.
type manifestStack struct {
	service   Service
	loaded    map[string]struct{}
	manifests []types.Manifest
}

// loadStack reads the manifest at path and every layer beneath it. The
// manifest at path is last. A layer reached twice loads once, at its
// first position.
func (s Service) loadStack(ctx context.Context, path string) ([]types.Manifest, error) {
	stack := &manifestStack{service: s, loaded: map[string]struct{}{}}
	if err := stack.add(ctx, strings.TrimSpace(path), nil); err != nil {
		return nil, err
	}
	return stack.manifests, nil
}

func (m *manifestStack) add(ctx context.Context, path string, chain []string) error {
	key := filepath.Clean(path)
	if slices.Contains(chain, key) {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("manifest layers form a cycle: %s", strings.Join(append(chain, key), " -> ")))
	}
	if _, ok := m.loaded[key]; ok {
		log.Ctx(ctx).Debug().Str("layer", key).Msg("manifest layer already loaded")
		return nil
	}
	manifest, err := m.service.loadManifest(ctx, path)
	if err != nil {
		if len(chain) == 0 {
			return err
		}
		return errbuilder.New().
			WithCode(errbuilder.CodeOf(err)).
			WithMsg(fmt.Sprintf("layer %s of %s: %s", path, chain[len(chain)-1], err.Error())).
			WithCause(err)
	}
	chain = append(slices.Clone(chain), key)
	for _, layer := range manifest.Layers {
		layer = strings.TrimSpace(layer)
		if !filepath.IsAbs(layer) {
			layer = filepath.Join(filepath.Dir(path), layer)
		}
		if err := m.add(ctx, layer, chain); err != nil {
			return err
		}
	}
	m.loaded[key] = struct{}{}
	m.manifests = append(m.manifests, manifest)
	log.Ctx(ctx).Debug().
		Str("manifest", manifest.Metadata.Name).
		Int("layers", len(manifest.Layers)).
		Msg("manifest layer loaded")
	return nil
}

// top returns the manifest the stack was loaded for.
func top(stack []types.Manifest) types.Manifest {
	return stack[len(stack)-1]
}

func layerNames(stack []types.Manifest) []string {
	var names []string
	for _, manifest := range stack[:len(stack)-1] {
		names = append(names, manifest.Metadata.Name)
	}
	return names
}
