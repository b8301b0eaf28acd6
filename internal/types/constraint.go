package types

// Constraint is a parsed "name>=version" unit reference.
type Constraint struct {
	Name    string
	Op      ConstraintOp
	Version string
	Source  string
}
