package cmd

import (
	"errors"

	"github.com/marcus/vibrant/internal/output"
	"github.com/spf13/cobra"
)

func newMoveCmd() *cobra.Command {
	var before string

	cmd := &cobra.Command{
		Use:     "move <id> --before <id>",
		Short:   "Move a task in front of another",
		GroupID: "order",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd, false)
			if err != nil {
				return err
			}
			defer e.Close()

			s := e.session(cmd, nil)
			id, err := resolveID(s, args[0])
			if err != nil {
				return err
			}
			target, err := resolveID(s, before)
			if err != nil {
				return err
			}
			if id == target {
				return errors.New("cannot move a task before itself")
			}

			s.ReorderByMove(cmd.Context(), id, target)
			task, _ := s.Get(id)
			targetTask, _ := s.Get(target)
			output.Success("MOVED %s before %s", output.TaskOneLiner(task), output.TaskOneLiner(targetTask))
			return nil
		},
	}

	cmd.Flags().StringVarP(&before, "before", "b", "", "id of the task to move in front of")
	cmd.MarkFlagRequired("before")
	return cmd
}

func newUpCmd() *cobra.Command {
	return newAdjacentCmd("up", "Swap a task with the one above it", -1, "top")
}

func newDownCmd() *cobra.Command {
	return newAdjacentCmd("down", "Swap a task with the one below it", 1, "bottom")
}

func newAdjacentCmd(name, short string, direction int, edge string) *cobra.Command {
	return &cobra.Command{
		Use:     name + " <id>",
		Short:   short,
		GroupID: "order",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd, false)
			if err != nil {
				return err
			}
			defer e.Close()

			s := e.session(cmd, nil)
			id, err := resolveID(s, args[0])
			if err != nil {
				return err
			}

			task, _ := s.Get(id)
			if !s.MoveAdjacent(cmd.Context(), id, direction) {
				output.Info("%s is already at the %s", output.TaskOneLiner(task), edge)
				return nil
			}
			output.Success("MOVED %s %s", output.TaskOneLiner(task), name)
			return nil
		},
	}
}
