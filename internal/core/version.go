package core

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"
	debversion "github.com/knqyf263/go-deb-version"

	"overlayns/internal/types"
)

// Scheme orders the versions of one unit's definitions and matches them
// against a locator requirement.
type Scheme struct {
	name types.VersionScheme
}

// unitVersion is a definition version parsed under its scheme.
type unitVersion struct {
	raw string
	deb debversion.Version
	pep pep440.Version
}

// bound is one parsed requirement clause.
type bound func(unitVersion) bool

// SchemeFor returns the scheme named by a definition. The empty name is pep440.
func SchemeFor(name types.VersionScheme) (Scheme, error) {
	switch name {
	case "", types.VersionSchemePep440:
		return Scheme{name: types.VersionSchemePep440}, nil
	case types.VersionSchemeDeb:
		return Scheme{name: types.VersionSchemeDeb}, nil
	}
	return Scheme{}, errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("unsupported version scheme: %s", name))
}

func (s Scheme) Name() types.VersionScheme {
	return s.name
}

// Check reports whether value is a valid version under the scheme.
func (s Scheme) Check(value string) error {
	_, err := s.parse(value)
	return err
}

// Select returns the highest of available that satisfies the locator's
// requirement. Among equal versions the first listed wins.
func (s Scheme) Select(locator types.Locator, available []string) (string, error) {
	name := locator.Qualified()
	if len(available) == 0 {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("no available versions for %s", name))
	}
	bounds, err := s.bounds(locator)
	if err != nil {
		return "", err
	}
	var best unitVersion
	found := false
	for _, raw := range available {
		candidate, err := s.parse(raw)
		if err != nil {
			return "", err
		}
		if !admits(candidate, bounds) {
			continue
		}
		if !found || s.compare(candidate, best) > 0 {
			best = candidate
			found = true
		}
	}
	if !found {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("no compatible version for %s%s", name, locator.Requirement))
	}
	return best.raw, nil
}

func (s Scheme) parse(value string) (unitVersion, error) {
	parsed := unitVersion{raw: value}
	var err error
	if s.name == types.VersionSchemeDeb {
		parsed.deb, err = debversion.NewVersion(value)
	} else {
		parsed.pep, err = pep440.Parse(value)
	}
	if err != nil {
		return unitVersion{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid %s version: %s", s.name, value)).
			WithCause(err)
	}
	return parsed, nil
}

func (s Scheme) compare(a unitVersion, b unitVersion) int {
	if s.name == types.VersionSchemeDeb {
		return a.deb.Compare(b.deb)
	}
	return a.pep.Compare(b.pep)
}

// bounds parses the locator requirement once for all candidates.
func (s Scheme) bounds(locator types.Locator) ([]bound, error) {
	constraints, err := ParseRequirement(locator)
	if err != nil {
		return nil, err
	}
	out := make([]bound, 0, len(constraints))
	for _, constraint := range constraints {
		if constraint.Op == types.ConstraintOpNone {
			continue
		}
		b, err := s.bound(constraint)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func (s Scheme) bound(constraint types.Constraint) (bound, error) {
	if s.name == types.VersionSchemePep440 {
		op := constraint.Op
		if op == types.ConstraintOpEq {
			op = types.ConstraintOpEq2
		}
		specifiers, err := pep440.NewSpecifiers(fmt.Sprintf("%s %s", op, constraint.Version))
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid requirement %s%s", op, constraint.Version)).
				WithCause(err)
		}
		return func(v unitVersion) bool { return specifiers.Check(v.pep) }, nil
	}

	limit, err := s.parse(constraint.Version)
	if err != nil {
		return nil, err
	}
	var accept func(int) bool
	switch constraint.Op {
	case types.ConstraintOpEq, types.ConstraintOpEq2:
		accept = func(c int) bool { return c == 0 }
	case types.ConstraintOpNe:
		accept = func(c int) bool { return c != 0 }
	case types.ConstraintOpGte:
		accept = func(c int) bool { return c >= 0 }
	case types.ConstraintOpLte:
		accept = func(c int) bool { return c <= 0 }
	case types.ConstraintOpGt:
		accept = func(c int) bool { return c > 0 }
	case types.ConstraintOpLt:
		accept = func(c int) bool { return c < 0 }
	default:
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("operator %s is not supported for deb versions", constraint.Op))
	}
	return func(v unitVersion) bool { return accept(v.deb.Compare(limit.deb)) }, nil
}

func admits(v unitVersion, bounds []bound) bool {
	for _, b := range bounds {
		if !b(v) {
			return false
		}
	}
	return true
}
