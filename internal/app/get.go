package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"overlayns/internal/types"
)

// Get stages the overlay and reads a single name through it. Only the
// units the read reaches are materialized; the placeholder is restored
// afterwards.
func (s Service) Get(ctx context.Context, req GetRequest) (GetResult, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return GetResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("attribute name is required")
	}
	sess, err := s.prepare(ctx, req.ManifestPath, req.OverlayOptions)
	if err != nil {
		return GetResult{}, err
	}
	ctx = sess.loader.Context(ctx)
	overlay, err := sess.loader.Stage(ctx, sess.manifest.Namespace, sess.locators)
	if err != nil {
		return GetResult{}, err
	}
	defer sess.loader.Abort(overlay)

	value, lookupErr := overlay.View.Lookup(ctx, name)
	result := GetResult{Name: name, Value: value}
	report := overlay.Report(ctx)
	for _, unit := range report.Units {
		if unit.State == types.UnitStateMaterialized {
			result.Materialized = append(result.Materialized, unit)
		}
	}
	if lookupErr != nil {
		return result, translateError(lookupErr)
	}
	return result, nil
}
