package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"overlayns/internal/app"
)

type inspectOptions struct {
	Report string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect unit versions and, given a load report, shadowed names",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Report, "report", "", "Load report to merge")
	_ = viper.BindPFlag("report", cmd.Flags().Lookup("report"))
	return cmd
}

func runInspect(ctx context.Context, cmd *cobra.Command, opts inspectOptions) error {
	service := newAppService()
	result, err := service.Inspect(ctx, app.InspectRequest{
		ManifestPath: manifestPath(cmd),
		ReportPath:   resolveString(cmd, opts.Report, "report", "report"),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "namespace: %s\n", result.Namespace)
	fmt.Fprintf(out, "layers: %s\n", strings.Join(result.Layers, ", "))
	fmt.Fprintln(out, "units:")
	for _, unit := range result.Units {
		selected := unit.Selected
		if selected == "" {
			selected = "-"
		}
		fmt.Fprintf(out, "- %s selected=%s state=%s", unit.Locator, selected, unit.State)
		if unit.Layer != "" {
			fmt.Fprintf(out, " layer=%s", unit.Layer)
		}
		fmt.Fprintln(out)
		if available := strings.Join(nonEmpty(unit.Available), ", "); available != "" {
			fmt.Fprintf(out, "  available: %s\n", available)
		}
		if unit.Error != "" {
			fmt.Fprintf(out, "  error: %s\n", unit.Error)
		}
	}
	fmt.Fprintf(out, "shadowed names: %d\n", len(result.Shadows))
	for _, shadow := range result.Shadows {
		fmt.Fprintf(out, "- %s: %s shadows %s\n", shadow.Name, shadow.Winner, strings.Join(shadow.Shadowed, ", "))
	}
	return nil
}

func nonEmpty(values []string) []string {
	var out []string
	for _, value := range values {
		if value != "" {
			out = append(out, value)
		}
	}
	return out
}
