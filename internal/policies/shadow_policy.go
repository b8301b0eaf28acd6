package policies

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"overlayns/internal/ports"
	"overlayns/internal/types"
)

// ShadowPolicy decides what happens when more than one backing target
// defines the same name. It only reports; the first definer always wins.
type ShadowPolicy struct {
	mode     types.ShadowMode
	exact    map[string]bool
	prefixes []string
	anyName  bool
}

// NewShadowPolicy builds a policy for mode. Names matching one of allow
// ("name", "prefix*" or "*") are never reported.
func NewShadowPolicy(mode types.ShadowMode, allow []string) (ShadowPolicy, error) {
	parsed, err := ParseShadowMode(string(mode))
	if err != nil {
		return ShadowPolicy{}, err
	}
	policy := ShadowPolicy{mode: parsed, exact: map[string]bool{}}
	for _, pattern := range allow {
		name, kind := parseNamePattern(pattern)
		switch kind {
		case patternWildcard:
			policy.anyName = true
		case patternPrefix:
			policy.prefixes = append(policy.prefixes, name)
		case patternExact:
			policy.exact[name] = true
		default:
			return ShadowPolicy{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid shadow allow pattern: %q", pattern))
		}
	}
	return policy, nil
}

func ParseShadowMode(value string) (types.ShadowMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(types.ShadowModeIgnore):
		return types.ShadowModeIgnore, nil
	case string(types.ShadowModeWarn):
		return types.ShadowModeWarn, nil
	case string(types.ShadowModeError):
		return types.ShadowModeError, nil
	default:
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown shadow policy: %s", value))
	}
}

func (p ShadowPolicy) Mode() types.ShadowMode {
	return p.mode
}

// Check applies the policy to records. Under warn every reported name is
// logged; under error the first reported name fails the load.
func (p ShadowPolicy) Check(ctx context.Context, records []types.ShadowRecord) error {
	if p.mode == types.ShadowModeIgnore || p.mode == "" {
		return nil
	}
	for _, record := range p.Reported(records) {
		if p.mode == types.ShadowModeError {
			return errbuilder.New().
				WithCode(errbuilder.CodeAlreadyExists).
				WithMsg(fmt.Sprintf("duplicate definition of %s: %s shadows %s",
					record.Name, record.Winner, strings.Join(record.Shadowed, ", ")))
		}
		log.Ctx(ctx).Warn().
			Str("name", record.Name).
			Str("winner", record.Winner).
			Strs("shadowed", record.Shadowed).
			Msg("attribute defined by more than one target")
	}
	return nil
}

// Reported filters out records whose names are allowed to shadow.
func (p ShadowPolicy) Reported(records []types.ShadowRecord) []types.ShadowRecord {
	var out []types.ShadowRecord
	for _, record := range records {
		if p.allowed(record.Name) {
			continue
		}
		out = append(out, record)
	}
	return out
}

func (p ShadowPolicy) allowed(name string) bool {
	if p.anyName || p.exact[name] {
		return true
	}
	for _, prefix := range p.prefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

type patternKind int

const (
	patternExact patternKind = iota
	patternPrefix
	patternWildcard
	patternInvalid
)

func parseNamePattern(value string) (string, patternKind) {
	pattern := strings.TrimSpace(value)
	if pattern == "" {
		return "", patternInvalid
	}
	if pattern == "*" {
		return "", patternWildcard
	}
	if strings.HasSuffix(pattern, "*") {
		return strings.TrimSuffix(pattern, "*"), patternPrefix
	}
	return pattern, patternExact
}

var _ ports.ShadowPolicyPort = ShadowPolicy{}
