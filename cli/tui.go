// ABOUTME: Interactive terminal dashboard subcommand
// ABOUTME: Launches the bubbletea program on the alternate screen
package cli

import (
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/harperreed/kinetic/tui"
)

func newTUICommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive terminal dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return errors.New("tui requires an interactive terminal")
			}

			p := tea.NewProgram(
				tui.NewModel(app.Store, app.Auditor),
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
			)
			_, err := p.Run()
			return err
		},
	}
}
