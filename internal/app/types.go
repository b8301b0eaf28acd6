package app

import "overlayns/internal/types"

type ValidateRequest struct {
	ManifestPath string
}

type ValidateResult struct {
	ManifestName string
	Namespace    string

	// Layers names the layer manifests in load order.
	Layers      []string
	Units       int
	Definitions int
}

// OverlayOptions are the loader settings shared by load and get. Zero
// values fall back to the manifest defaults.
type OverlayOptions struct {
	ShadowPolicy string
	ShadowAllow  []string
	MaxDepth     int
}

type LoadRequest struct {
	ManifestPath string
	OutputPath   string
	OverlayOptions
}

type LoadResult struct {
	Namespace  string
	Values     map[string]any
	Report     types.LoadReport
	ReportPath string
	Hints      []string
}

type GetRequest struct {
	ManifestPath string
	Name         string
	OverlayOptions
}

type GetResult struct {
	Name  string
	Value any

	// Materialized lists the units the read had to materialize.
	Materialized []types.UnitReport
}

type InspectRequest struct {
	ManifestPath string

	// ReportPath optionally points at a load report whose unit states
	// and shadow records are merged into the result.
	ReportPath string
}

type InspectUnit struct {
	Locator   string
	Available []string
	Selected  string

	// Layer names the manifest that contributed the selected definition.
	Layer string
	State types.UnitState
	Error string
}

type InspectResult struct {
	Namespace string
	Layers    []string
	Units     []InspectUnit
	Shadows   []types.ShadowRecord
}
