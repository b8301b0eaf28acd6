package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"overlayns/internal/app"
)

type loadOptions struct {
	Output string
	Values bool
	overlayFlags
}

func newLoadCommand() *cobra.Command {
	opts := loadOptions{}
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Materialize every unit and populate the namespace",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLoad(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Output, "output", "", "Write the load report to this path")
	cmd.Flags().BoolVar(&opts.Values, "values", false, "Print every resolved name and value")
	addOverlayFlags(cmd, &opts.overlayFlags)
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	return cmd
}

func runLoad(ctx context.Context, cmd *cobra.Command, opts loadOptions) error {
	service := newAppService()
	result, err := service.Load(ctx, app.LoadRequest{
		ManifestPath:   manifestPath(cmd),
		OutputPath:     resolveString(cmd, opts.Output, "output", "output"),
		OverlayOptions: opts.options(cmd),
	})
	out := cmd.OutOrStdout()
	for _, hint := range result.Hints {
		fmt.Fprintln(out, hint)
	}
	if result.ReportPath != "" {
		fmt.Fprintf(out, "report: %s\n", result.ReportPath)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "loaded: %s (%d names, %d units)\n", result.Namespace, len(result.Values), len(result.Report.Units))
	for _, unit := range result.Report.Units {
		version := unit.Version
		if version == "" {
			version = "-"
		}
		fmt.Fprintf(out, "- %s %s: %d attributes\n", unit.Locator, version, unit.Attributes)
	}
	for _, shadow := range result.Report.Shadows {
		fmt.Fprintf(out, "shadowed: %s (winner %s)\n", shadow.Name, shadow.Winner)
	}
	if resolveBool(cmd, opts.Values, "values", "values") {
		names := make([]string, 0, len(result.Values))
		for name := range result.Values {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(out, "%s = %v\n", name, result.Values[name])
		}
	}
	return nil
}
