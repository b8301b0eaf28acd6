package app

import (
	"context"
	"strings"

	"overlayns/internal/adapters"
	"overlayns/internal/types"
)

// Inspect lists the manifest's units with their available and selected
// versions, and the layer each selection comes from, without
// materializing anything. When a load report is given,
// its unit states, errors and shadow records are merged in.
func (s Service) Inspect(ctx context.Context, req InspectRequest) (InspectResult, error) {
	stack, err := s.loadStack(ctx, req.ManifestPath)
	if err != nil {
		return InspectResult{}, err
	}
	manifest := top(stack)
	locators, err := s.Compiler.Locators(manifest)
	if err != nil {
		return InspectResult{}, err
	}
	resolver := adapters.NewManifestResolverAdapter(s.Registry)
	for _, layer := range stack {
		resolver.AddManifest(layer)
	}

	result := InspectResult{Namespace: manifest.Namespace, Layers: resolver.Layers()}
	for _, locator := range locators {
		unit := InspectUnit{
			Locator:   locator.String(),
			Available: resolver.Versions(locator.Qualified()),
			State:     types.UnitStateUnmaterialized,
		}
		if def, err := resolver.Select(locator); err != nil {
			unit.Error = err.Error()
		} else {
			unit.Selected = def.Version
			unit.Layer, _ = resolver.Origin(locator)
		}
		result.Units = append(result.Units, unit)
	}

	reportPath := strings.TrimSpace(req.ReportPath)
	if reportPath == "" {
		return result, nil
	}
	report, err := s.ReportReader.ReadLoadReport(reportPath)
	if err != nil {
		return InspectResult{}, err
	}
	mergeLoadReport(&result, report)
	return result, nil
}

func mergeLoadReport(result *InspectResult, report types.LoadReport) {
	byLocator := make(map[string]types.UnitReport, len(report.Units))
	for _, unit := range report.Units {
		byLocator[unit.Locator] = unit
	}
	for i := range result.Units {
		loaded, ok := byLocator[result.Units[i].Locator]
		if !ok {
			continue
		}
		result.Units[i].State = loaded.State
		if loaded.Error != "" {
			result.Units[i].Error = loaded.Error
		}
	}
	result.Shadows = report.Shadows
}
