package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"overlayns/internal/app"
)

func newValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate an overlay manifest",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.Context(), cmd)
		},
	}
	return cmd
}

func runValidate(ctx context.Context, cmd *cobra.Command) error {
	service := newAppService()
	result, err := service.Validate(ctx, app.ValidateRequest{
		ManifestPath: manifestPath(cmd),
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "validated: %s (namespace %s, %d units, %d definitions)\n",
		result.ManifestName, result.Namespace, result.Units, result.Definitions)
	if len(result.Layers) > 0 {
		fmt.Fprintf(out, "layers: %s\n", strings.Join(result.Layers, ", "))
	}
	return nil
}

func manifestPath(cmd *cobra.Command) string {
	if cmd == nil {
		return viper.GetString("manifest")
	}
	value, _ := cmd.Flags().GetString("manifest")
	return resolveString(cmd, value, "manifest", "manifest")
}
