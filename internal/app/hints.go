package app

import (
	"fmt"
	"strings"

	"overlayns/internal/types"
)

// defaultsHint pairs a flag name with a manifest defaults key for hint messages.
type defaultsHint struct {
	FlagName    string
	DefaultsKey string
}

// checkLoadDefaultsHints returns hints for load flags that repeat a
// manifest default. A hint is generated when the user explicitly
// provided the same value the manifest already declares.
func checkLoadDefaultsHints(req LoadRequest, defaults types.ManifestDefaults) []string {
	checks := []struct {
		hint      defaultsHint
		redundant bool
	}{
		{
			hint: defaultsHint{"--shadow-policy", "defaults.shadow_policy"},
			redundant: strings.TrimSpace(req.ShadowPolicy) != "" &&
				strings.EqualFold(strings.TrimSpace(req.ShadowPolicy), string(defaults.ShadowPolicy)),
		},
		{
			hint:      defaultsHint{"--max-depth", "defaults.max_depth"},
			redundant: req.MaxDepth > 0 && req.MaxDepth == defaults.MaxDepth,
		},
	}

	var hints []string
	for _, c := range checks {
		if c.redundant {
			hints = append(hints, fmt.Sprintf(
				"hint: %s is also set in the manifest (%s); you can omit the flag",
				c.hint.FlagName, c.hint.DefaultsKey,
			))
		}
	}
	return hints
}
