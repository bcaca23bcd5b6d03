package cmd

import (
	"fmt"

	"github.com/marcus/vibrant/internal/dateparse"
	"github.com/marcus/vibrant/internal/input"
	"github.com/marcus/vibrant/internal/output"
	"github.com/spf13/cobra"
)

func newAddCmd() *cobra.Command {
	var due string

	cmd := &cobra.Command{
		Use:     "add [text...]",
		Aliases: []string{"new"},
		Short:   "Add one or more tasks",
		Long: `Adds one task per argument. A trailing "| due" sets the due date.

Due dates accept YYYY-MM-DD, today, tomorrow, +3d, 2w, friday and similar.
"-" reads tasks from stdin and "@file" reads them from a file, one per line.`,
		Example: `  vibrant add "buy milk"
  vibrant add "pay rent | friday" "file taxes | 2026-04-15"
  vibrant add --due tomorrow "call the dentist"
  vibrant add @groceries.txt`,
		GroupID: "core",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := input.Expand(args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			dueFlag := cmd.Flags().Changed("due")
			var flagDue *string
			if dueFlag {
				if flagDue, err = dateparse.ParseDue(due, now()); err != nil {
					return fmt.Errorf("invalid --due: %w", err)
				}
			}

			e, err := openEnv(cmd, false)
			if err != nil {
				return err
			}
			defer e.Close()

			s := e.session(cmd, nil)
			ctx := cmd.Context()

			failed := 0
			for _, line := range lines {
				text, taskDue := line, flagDue
				if !dueFlag {
					var dueInput string
					text, dueInput = input.SplitDue(line)
					if taskDue, err = dateparse.ParseDue(dueInput, now()); err != nil {
						output.Error("%q: %v", text, err)
						failed++
						continue
					}
				}

				task, ok := s.Create(ctx, text, taskDue)
				if !ok {
					output.Warning("skipped blank task")
					continue
				}
				output.Success("ADDED %s", output.TaskOneLiner(task))
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d tasks not added", failed, len(lines))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&due, "due", "d", "", "due date for every task (disables \"| due\" parsing)")
	return cmd
}
