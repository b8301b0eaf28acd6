package types

type Metadata struct {
	Name        string   `yaml:"name"`
	Version     string   `yaml:"version"`
	Owners      []string `yaml:"owners"`
	Description string   `yaml:"description,omitempty"`
}

// ManifestDefaults carries loader settings that apply when the CLI or
// config file does not override them.
type ManifestDefaults struct {
	ShadowPolicy ShadowMode `yaml:"shadow_policy,omitempty"`
	ShadowAllow  []string   `yaml:"shadow_allow,omitempty"`
	MaxDepth     int        `yaml:"max_depth,omitempty"`
}

// Step is one statement of a unit's initialization body. Exactly one of
// Set, Require, Delete or Fail is expected to be present.
type Step struct {
	Set     string `yaml:"set,omitempty"`
	Value   any    `yaml:"value,omitempty"`
	Ref     string `yaml:"ref,omitempty"`
	Require string `yaml:"require,omitempty"`
	Delete  string `yaml:"delete,omitempty"`
	Fail    string `yaml:"fail,omitempty"`
}

func (s Step) Op() StepOp {
	switch {
	case s.Set != "":
		return StepOpSet
	case s.Require != "":
		return StepOpRequire
	case s.Delete != "":
		return StepOpDelete
	case s.Fail != "":
		return StepOpFail
	default:
		return ""
	}
}

type UnitDefinition struct {
	Name    string        `yaml:"name"`
	Version string        `yaml:"version,omitempty"`
	Scheme  VersionScheme `yaml:"scheme,omitempty"`
	Steps   []Step        `yaml:"steps"`
}

type Manifest struct {
	APIVersion string           `yaml:"api_version"`
	Kind       ManifestKind     `yaml:"kind"`
	Metadata   Metadata         `yaml:"metadata"`
	Defaults   ManifestDefaults `yaml:"defaults,omitempty"`

	// Namespace is the grouping context relative unit names are
	// resolved against, and the name the result is installed under.
	Namespace string `yaml:"namespace"`

	// Attributes are pre-populated on the result placeholder before any
	// unit materializes.
	Attributes map[string]any `yaml:"attributes,omitempty"`

	// Layers are manifests, relative to this one, whose definitions load
	// before this manifest's own. Only their definitions are used.
	Layers []string `yaml:"layers,omitempty"`

	// Units lists the locators in lookup order, e.g. ".core>=1.2".
	Units       []string         `yaml:"units"`
	Definitions []UnitDefinition `yaml:"definitions"`
}
