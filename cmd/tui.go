package cmd

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/vibrant/pkg/tui"
	"github.com/spf13/cobra"
)

func newTUICmd() *cobra.Command {
	var mode filterFlag

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive task list",
		Long: `Opens the full-screen task list.

Key bindings:
  a / tab        Add a task ("text | due")
  space          Toggle complete
  e / enter      Edit in a form
  x / delete     Delete
  K / J          Move up / down
  m              Grab, then enter drops before the task under the cursor
  f, 1/2/3       Cycle or pick the filter
  c              Clear completed
  t              Toggle theme
  ?              Help
  q              Quit

Keys can be rebound in the [keys] table of the config file. Logs go to
tui.log in the data directory.`,
		GroupID: "view",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd, true)
			if err != nil {
				return err
			}
			defer e.Close()

			ctx := cmd.Context()
			model := tui.New(ctx, e.persist, tui.Options{
				Filter:       mode.resolve(e.cfg),
				KeyOverrides: e.cfg.Keys,
				Logger:       e.logger,
				Now:          now,
			})

			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return fmt.Errorf("error running tui: %w", err)
			}
			return nil
		},
	}

	addFilterFlag(cmd, &mode)
	return cmd
}
