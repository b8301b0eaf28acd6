package types

type UnitReport struct {
	Locator    string    `yaml:"locator"`
	Version    string    `yaml:"version,omitempty"`
	State      UnitState `yaml:"state"`
	Attributes int       `yaml:"attributes"`
	Error      string    `yaml:"error,omitempty"`
}

// ShadowRecord names an attribute defined by more than one backing
// target. Winner is the target consulted first; it is the one reads see.
type ShadowRecord struct {
	Name     string   `yaml:"name"`
	Winner   string   `yaml:"winner"`
	Shadowed []string `yaml:"shadowed"`
}

type LoadReport struct {
	Namespace string         `yaml:"namespace"`
	Names     []string       `yaml:"names"`
	Units     []UnitReport   `yaml:"units"`
	Shadows   []ShadowRecord `yaml:"shadows,omitempty"`
}
