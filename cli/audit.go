// ABOUTME: AI audit CLI command
// ABOUTME: Streams staged progress to stderr and prints the report as markdown
package cli

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/harperreed/kinetic/insights"
	"github.com/harperreed/kinetic/models"
	"github.com/harperreed/kinetic/viz"
)

func newAuditCommand(app *App) *cobra.Command {
	var period string

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Run an AI networking audit",
		Long:  "Sends a pruned projection of every contact to the configured model and prints funnel, persona, hit rate, keyword and altruism insights.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := models.ParseReviewPeriod(period)
			if err != nil {
				return err
			}

			report, err := runAuditWithProgress(cmd, app, p)
			if err != nil {
				var auditErr *insights.AuditError
				if errors.As(err, &auditErr) {
					return fmt.Errorf("%s (run `kinetic audit` again to retry)", auditErr.Message)
				}
				return err
			}

			md := viz.AuditMarkdown(report)
			out := cmd.OutOrStdout()
			if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
				width, _, err := term.GetSize(int(f.Fd()))
				if err != nil {
					width = 0
				}
				if styled, err := viz.RenderMarkdown(md, width); err == nil {
					md = styled
				}
			}
			_, _ = fmt.Fprint(out, md)
			return nil
		},
	}
	cmd.Flags().StringVar(&period, "period", string(models.PeriodMonthly), "Review period: W, M, Q or Y")
	return cmd
}

func runAuditWithProgress(cmd *cobra.Command, app *App, period models.ReviewPeriod) (*models.AuditReport, error) {
	errOut := cmd.ErrOrStderr()
	_, _ = fmt.Fprintln(errOut, insights.Stages[0])

	ticker := insights.NewTicker(0)
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case stage := <-ticker.C:
				_, _ = fmt.Fprintln(errOut, insights.Stages[stage])
			case <-done:
				return
			}
		}
	}()

	report, err := app.Auditor.Audit(cmd.Context(), app.Store.Contacts(), period)

	close(done)
	wg.Wait()
	ticker.Stop()

	return report, err
}
