package cmd

import (
	"fmt"

	"github.com/marcus/vibrant/internal/filter"
	"github.com/marcus/vibrant/internal/models"
	"github.com/marcus/vibrant/internal/output"
	"github.com/spf13/cobra"
)

func newToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <id>...",
		Aliases: []string{"done"},
		Short:   "Mark tasks complete, or reopen completed ones",
		GroupID: "core",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd, false)
			if err != nil {
				return err
			}
			defer e.Close()

			s := e.session(cmd, nil)
			failed := 0
			for _, ref := range args {
				id, err := resolveID(s, ref)
				if err != nil {
					output.Error("%v", err)
					failed++
					continue
				}
				s.ToggleComplete(cmd.Context(), id)
				task, _ := s.Get(id)
				if task.Completed {
					output.Success("COMPLETED %s", output.TaskOneLiner(task))
				} else {
					output.Success("REOPENED %s", output.TaskOneLiner(task))
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d tasks not toggled", failed, len(args))
			}
			return nil
		},
	}
}

func newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "clear",
		Short:   "Delete all completed tasks",
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd, false)
			if err != nil {
				return err
			}
			defer e.Close()

			s := e.session(cmd, nil)
			n := len(filter.Project(s.Tasks(), models.FilterCompleted).Tasks)
			s.ClearCompleted(cmd.Context())
			if n == 0 {
				output.Info("No completed tasks")
				return nil
			}
			output.Success("Cleared %d completed %s", n, plural(n, "task", "tasks"))
			return nil
		},
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
