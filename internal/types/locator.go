package types

import "strings"

// Locator identifies a sub-unit by name and the package it is resolved
// against. Names starting with a dot are relative to Package, the same
// way a submodule is named relative to its parent namespace.
type Locator struct {
	Name    string `yaml:"name"`
	Package string `yaml:"package,omitempty"`

	// Requirement is an optional version specifier (e.g. ">=1.2") the
	// resolved definition has to satisfy.
	Requirement string `yaml:"requirement,omitempty"`
}

// Qualified returns the absolute unit name.
func (l Locator) Qualified() string {
	name := strings.TrimSpace(l.Name)
	if !strings.HasPrefix(name, ".") {
		return name
	}
	pkg := strings.TrimSpace(l.Package)
	if pkg == "" {
		return strings.TrimLeft(name, ".")
	}
	return pkg + name
}

func (l Locator) String() string {
	if l.Requirement == "" {
		return l.Qualified()
	}
	return l.Qualified() + l.Requirement
}
