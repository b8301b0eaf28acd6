package ports

// NamespaceRegistryPort is the host lookup table other code uses to find
// a namespace by name.
type NamespaceRegistryPort interface {
	Install(name string, target Target)
	Namespace(name string) (Target, bool)
	Remove(name string)
	Names() []string
}
