package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"overlayns/internal/app"
)

// overlayFlags are shared by load and get. They are read back through
// resolveString and friends rather than bound, so both commands see the
// same config and env keys.
type overlayFlags struct {
	ShadowPolicy string
	ShadowAllow  []string
	MaxDepth     int
}

func addOverlayFlags(cmd *cobra.Command, flags *overlayFlags) {
	cmd.Flags().StringVar(&flags.ShadowPolicy, "shadow-policy", "", "Shadowed name policy (ignore, warn, error)")
	cmd.Flags().StringSliceVar(&flags.ShadowAllow, "shadow-allow", nil, "Names allowed to shadow (name, prefix* or *)")
	cmd.Flags().IntVar(&flags.MaxDepth, "max-depth", 0, "Resolution depth limit (0 keeps the manifest or built-in default)")
}

func (f overlayFlags) options(cmd *cobra.Command) app.OverlayOptions {
	return app.OverlayOptions{
		ShadowPolicy: resolveString(cmd, f.ShadowPolicy, "shadow_policy", "shadow-policy"),
		ShadowAllow:  resolveStrings(cmd, f.ShadowAllow, "shadow_allow", "shadow-allow"),
		MaxDepth:     resolveInt(cmd, f.MaxDepth, "max_depth", "max-depth"),
	}
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveStrings(cmd *cobra.Command, values []string, key string, flagName string) []string {
	if cmd == nil {
		if len(values) > 0 {
			return values
		}
		return viper.GetStringSlice(key)
	}
	if flagChanged(cmd, flagName) {
		return values
	}
	return viper.GetStringSlice(key)
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
}

func resolveInt(cmd *cobra.Command, value int, key string, flagName string) int {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetInt(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
