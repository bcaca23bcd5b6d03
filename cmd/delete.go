package cmd

import (
	"fmt"

	"github.com/marcus/vibrant/internal/output"
	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>...",
		Aliases: []string{"rm"},
		Short:   "Delete one or more tasks",
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
				task, _ := s.Get(id)
				s.Remove(cmd.Context(), id)
				output.Success("DELETED %s", output.TaskOneLiner(task))
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d tasks not deleted", failed, len(args))
			}
			return nil
		},
	}
}
