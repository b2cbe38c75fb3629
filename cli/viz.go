// ABOUTME: Visualization CLI commands
// ABOUTME: Handles the ASCII dashboard and Graphviz graph generation
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harperreed/kinetic/viz"
)

func newDashboardCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show pipeline health and growth trend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := viz.GenerateDashboardStats(app.Store)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), viz.RenderDashboard(stats))
			return nil
		},
	}
}

func newVizCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "viz",
		Short: "Generate Graphviz DOT graphs",
	}

	var output string
	writeDOT := func(cmd *cobra.Command, dot string) error {
		if output != "" {
			return os.WriteFile(output, []byte(dot), 0644)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), dot)
		return nil
	}

	funnel := &cobra.Command{
		Use:   "funnel",
		Short: "Lifecycle funnel with one node per stage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dot, err := viz.NewGraphGenerator(app.Store).GenerateFunnelGraph(cmd.Context())
			if err != nil {
				return err
			}
			return writeDOT(cmd, dot)
		},
	}

	network := &cobra.Command{
		Use:   "network",
		Short: "Contacts grouped by stage and company",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dot, err := viz.NewGraphGenerator(app.Store).GenerateNetworkGraph(cmd.Context())
			if err != nil {
				return err
			}
			return writeDOT(cmd, dot)
		},
	}

	cmd.PersistentFlags().StringVar(&output, "output", "", "Output file (default: stdout)")
	cmd.AddCommand(funnel, network)
	return cmd
}
