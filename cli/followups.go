// ABOUTME: Follow-up tracking CLI commands
// ABOUTME: Prints Today's Follow-up Hub and the conversion statistics
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harperreed/kinetic/db"
)

func newFollowUpsCommand(app *App) *cobra.Command {
	var overdueOnly bool

	cmd := &cobra.Command{
		Use:   "followups",
		Short: "Show Today's Follow-up Hub",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			queue := db.FollowUpQueue(app.Store.Contacts(), app.Store.Today())

			_, _ = fmt.Fprintf(out, "TODAY'S FOLLOW-UP HUB (%s)\n", app.Store.Today())
			_, _ = fmt.Fprintln(out, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

			shown := 0
			for _, item := range queue {
				if overdueOnly && item.OverdueDays == 0 {
					continue
				}
				shown++

				c := item.Contact
				indicator := "🟢"
				label := ""
				switch {
				case item.OverdueDays > 0:
					indicator = "🔴"
					label = fmt.Sprintf("%dd overdue", item.OverdueDays)
				case item.DueToday:
					indicator = "🟡"
					label = "Due today"
				}

				_, _ = fmt.Fprintf(out, "%s %s  %s @ %s", indicator, c.Name, c.Position, c.Company)
				if label != "" {
					_, _ = fmt.Fprintf(out, "  %s", label)
				}
				_, _ = fmt.Fprintln(out)
				for _, e := range item.PendingEvents {
					_, _ = fmt.Fprintf(out, "   🔔 Action needed: %s (%s)\n", e.Name, e.EventDate)
				}
			}

			if shown == 0 {
				_, _ = fmt.Fprintln(out, "All caught up.")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&overdueOnly, "overdue-only", false, "Show only overdue contacts")
	return cmd
}

func newStatsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show invitation success and coffee conversion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats := db.ComputeStats(app.Store.Contacts())
			out := cmd.OutOrStdout()

			_, _ = fmt.Fprintln(out, "NETWORK HEALTH")
			_, _ = fmt.Fprintln(out, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
			_, _ = fmt.Fprintf(out, "  Invitation success: %d%% (%d of %d connected)\n",
				stats.InvitationSuccessRate, stats.Connected, stats.Total)
			_, _ = fmt.Fprintf(out, "  Coffee conversion:  %d%% (%d of %d connected)\n",
				stats.CoffeeConversionRate, stats.Coffee, stats.Connected)
			return nil
		},
	}
}
