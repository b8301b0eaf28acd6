package app

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
)

func (s Service) Load(ctx context.Context, req LoadRequest) (LoadResult, error) {
	sess, err := s.prepare(ctx, req.ManifestPath, req.OverlayOptions)
	if err != nil {
		return LoadResult{}, err
	}
	result := LoadResult{
		Namespace: sess.manifest.Namespace,
		Hints:     checkLoadDefaultsHints(req, sess.manifest.Defaults),
	}
	overlay, loadErr := sess.loader.Load(ctx, sess.manifest.Namespace, sess.locators)
	if overlay != nil {
		result.Report = overlay.Report(ctx)
	}
	if outputPath := strings.TrimSpace(req.OutputPath); outputPath != "" && overlay != nil {
		if err := s.ReportWriter.WriteLoadReport(outputPath, result.Report); err != nil {
			return result, err
		}
		result.ReportPath = outputPath
	}
	if loadErr != nil {
		return result, translateError(loadErr)
	}

	values := make(map[string]any, len(result.Report.Names))
	for _, name := range result.Report.Names {
		value, err := overlay.Placeholder.Lookup(ctx, name)
		if err != nil {
			return result, translateError(err)
		}
		values[name] = value
	}
	result.Values = values
	log.Ctx(ctx).Info().
		Str("namespace", result.Namespace).
		Int("names", len(values)).
		Int("units", len(overlay.Units)).
		Msg("namespace loaded")
	return result, nil
}
