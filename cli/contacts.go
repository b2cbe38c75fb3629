// ABOUTME: Contact CLI commands
// ABOUTME: Lists the kanban board and contacts, and shows one contact in detail
package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harperreed/kinetic/db"
	"github.com/harperreed/kinetic/models"
)

func newBoardCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Show the lifecycle kanban board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			today := app.Store.Today()

			for _, col := range db.Board(app.Store.Contacts()) {
				_, _ = fmt.Fprintf(out, "%s (%d)\n", strings.ToUpper(string(col.Status)), len(col.Contacts))
				for _, c := range col.Contacts {
					_, _ = fmt.Fprintf(out, "  %s  %s @ %s%s\n", c.Name, c.Position, c.Company, cardFlags(c, today))
				}
				_, _ = fmt.Fprintln(out)
			}
			return nil
		},
	}
}

func cardFlags(c models.Contact, today string) string {
	var flags []string
	switch {
	case c.IsOverdue(today):
		flags = append(flags, "[overdue]")
	case c.IsDueToday(today):
		flags = append(flags, "[due]")
	}
	if len(c.PendingEvents(today)) > 0 {
		flags = append(flags, "[event]")
	}
	if len(flags) == 0 {
		return ""
	}
	return "  " + strings.Join(flags, " ")
}

func newContactsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "Browse contacts",
	}

	var (
		status string
		query  string
		limit  int
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List contacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var st models.Status
			if status != "" {
				parsed, err := models.ParseStatus(status)
				if err != nil {
					return err
				}
				st = parsed
			}

			contacts := app.Store.FindContacts(query, st, limit)
			if len(contacts) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No contacts found.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "ID\tNAME\tCOMPANY\tSTATUS\tNEXT FOLLOW-UP")
			_, _ = fmt.Fprintln(w, "--\t----\t-------\t------\t--------------")
			for _, c := range contacts {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Company, c.Status, c.NextFollowUpDate)
			}
			return w.Flush()
		},
	}
	list.Flags().StringVar(&status, "status", "", "Filter by lifecycle stage (e.g. \"Coffee Scheduled\" or coffee-scheduled)")
	list.Flags().StringVar(&query, "query", "", "Search by name, company or position")
	list.Flags().IntVar(&limit, "limit", 50, "Maximum results")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a contact with interactions and events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Store.GetContact(args[0])
			if err != nil {
				return err
			}
			printContact(cmd, c, app.Store.Today())
			return nil
		},
	}

	cmd.AddCommand(list, show)
	return cmd
}

func printContact(cmd *cobra.Command, c *models.Contact, today string) {
	out := cmd.OutOrStdout()

	_, _ = fmt.Fprintf(out, "%s\n", c.Name)
	_, _ = fmt.Fprintf(out, "  %s @ %s\n", c.Position, c.Company)
	_, _ = fmt.Fprintf(out, "  Status:     %s\n", c.Status)
	if c.Location != "" {
		_, _ = fmt.Fprintf(out, "  Location:   %s\n", c.Location)
	}
	if c.Education != "" {
		_, _ = fmt.Fprintf(out, "  Education:  %s\n", c.Education)
	}
	if c.LinkedInURL != "" {
		_, _ = fmt.Fprintf(out, "  LinkedIn:   %s\n", c.LinkedInURL)
	}
	if len(c.Commonalities) > 0 {
		_, _ = fmt.Fprintf(out, "  In common:  %s\n", strings.Join(c.Commonalities, ", "))
	}
	_, _ = fmt.Fprintf(out, "  Cadence:    every %d days\n", c.FollowUpInterval)
	_, _ = fmt.Fprintf(out, "  Next:       %s%s\n", c.NextFollowUpDate, cardFlags(*c, today))

	_, _ = fmt.Fprintf(out, "\nInteractions (%d)\n", len(c.Interactions))
	for _, in := range c.Interactions {
		_, _ = fmt.Fprintf(out, "  %s  %dmin  score %d/10  %s\n", in.Date, in.Duration, in.Score, in.Notes)
		if in.Hook != "" {
			_, _ = fmt.Fprintf(out, "    hook: %s\n", in.Hook)
		}
	}

	_, _ = fmt.Fprintf(out, "\nEvents (%d)\n", len(c.OneOffEvents))
	for _, e := range c.OneOffEvents {
		mark := " "
		if e.Completed {
			mark = "x"
		}
		_, _ = fmt.Fprintf(out, "  [%s] %s on %s (notify %s)\n", mark, e.Name, e.EventDate, e.NotifyDate)
	}
}
