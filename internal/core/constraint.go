package core

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"overlayns/internal/types"
)

// opTokens is the ordered list of constraint operators tried during
// parsing. Longer tokens must precede shorter ones to avoid false matches
// (e.g. ">=" before ">").
var opTokens = []types.ConstraintOp{
	types.ConstraintOpGte,
	types.ConstraintOpLte,
	types.ConstraintOpCompat,
	types.ConstraintOpNe,
	types.ConstraintOpEq2,
	types.ConstraintOpEq,
	types.ConstraintOpGt,
	types.ConstraintOpLt,
}

// ParseConstraint splits a raw "name>=version" string into a Constraint.
// When no operator is found the constraint is treated as a bare name
// reference with ConstraintOpNone.
func ParseConstraint(raw string, source string) (types.Constraint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return types.Constraint{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("empty constraint")
	}
	for _, op := range opTokens {
		if strings.Contains(raw, string(op)) {
			parts := strings.SplitN(raw, string(op), 2)
			name := strings.TrimSpace(parts[0])
			version := strings.TrimSpace(parts[1])
			if name == "" || version == "" {
				return types.Constraint{}, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("invalid constraint: %s", raw))
			}
			return types.Constraint{
				Name:    name,
				Op:      op,
				Version: version,
				Source:  source,
			}, nil
		}
	}
	return types.Constraint{
		Name:    raw,
		Op:      types.ConstraintOpNone,
		Version: "",
		Source:  source,
	}, nil
}

// ParseLocator splits a unit reference such as ".core>=1.0,<2.0" into
// a Locator resolved against pkg.
func ParseLocator(raw string, pkg string) (types.Locator, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return types.Locator{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("empty unit locator")
	}
	idx := strings.IndexAny(raw, "<>=!~")
	if idx < 0 {
		return types.Locator{Name: raw, Package: pkg}, nil
	}
	name := strings.TrimSpace(raw[:idx])
	if name == "" {
		return types.Locator{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid unit locator: %s", raw))
	}
	locator := types.Locator{Name: name, Package: pkg, Requirement: strings.TrimSpace(raw[idx:])}
	if _, err := ParseRequirement(locator); err != nil {
		return types.Locator{}, err
	}
	return locator, nil
}

// ParseRequirement expands a locator's comma separated requirement into
// constraints on the qualified unit name.
func ParseRequirement(locator types.Locator) ([]types.Constraint, error) {
	if strings.TrimSpace(locator.Requirement) == "" {
		return nil, nil
	}
	name := locator.Qualified()
	var out []types.Constraint
	for _, part := range strings.Split(locator.Requirement, ",") {
		constraint, err := ParseConstraint(name+strings.TrimSpace(part), "locator:"+name)
		if err != nil {
			return nil, err
		}
		if constraint.Op == types.ConstraintOpNone || constraint.Name != name {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid requirement for %s: %s", name, part))
		}
		out = append(out, constraint)
	}
	return out, nil
}
