package cli

import (
	"context"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"overlayns/internal/app"
)

type getOptions struct {
	Dump bool
	overlayFlags
}

func newGetCommand() *cobra.Command {
	opts := getOptions{}
	cmd := &cobra.Command{
		Use:   "get <name>",
		Short: "Resolve one name lazily and show which units it materialized",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd.Context(), cmd, args[0], opts)
		},
	}
	cmd.Flags().BoolVar(&opts.Dump, "dump", false, "Dump the value with its Go type")
	addOverlayFlags(cmd, &opts.overlayFlags)
	return cmd
}

func runGet(ctx context.Context, cmd *cobra.Command, name string, opts getOptions) error {
	service := newAppService()
	result, err := service.Get(ctx, app.GetRequest{
		ManifestPath:   manifestPath(cmd),
		Name:           name,
		OverlayOptions: opts.options(cmd),
	})
	out := cmd.OutOrStdout()
	for _, unit := range result.Materialized {
		fmt.Fprintf(out, "materialized: %s\n", unit.Locator)
	}
	if err != nil {
		return err
	}
	if opts.Dump {
		fmt.Fprintf(out, "%s = %s", result.Name, spew.Sdump(result.Value))
		return nil
	}
	fmt.Fprintf(out, "%s = %v\n", result.Name, result.Value)
	return nil
}
