package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/marcus/vibrant/internal/app"
	"github.com/marcus/vibrant/internal/dateparse"
	"github.com/marcus/vibrant/internal/output"
	"github.com/marcus/vibrant/pkg/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var errNeedTerminal = errors.New("interactive edit needs a terminal; pass --text, --due or --clear-due")

// stdinIsTerminal gates the interactive form
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func newEditCmd() *cobra.Command {
	var (
		text     string
		due      string
		clearDue bool
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a task's text or due date",
		Long: `Edits a task. With --text, --due or --clear-due the change is applied
directly; without flags an interactive form opens. Blank text keeps the
current text.`,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			textSet := cmd.Flags().Changed("text")
			dueSet := cmd.Flags().Changed("due")

			var newDue *string
			if dueSet {
				var err error
				if newDue, err = dateparse.ParseDue(due, now()); err != nil {
					return fmt.Errorf("invalid --due: %w", err)
				}
			}

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

			var editor app.Editor
			if textSet || dueSet || clearDue {
				editor = app.EditorFunc(func(_ context.Context, current app.Submission) (app.Submission, error) {
					sub := current
					if textSet {
						sub.Text = text
					}
					if dueSet {
						sub.Due = newDue
					}
					if clearDue {
						sub.Due = nil
					}
					return sub, nil
				})
			} else {
				if !stdinIsTerminal() {
					return errNeedTerminal
				}
				editor = tui.FormEditor{Theme: s.Theme(), Now: now}
			}

			applied, err := s.Edit(cmd.Context(), id, editor)
			if err != nil {
				return fmt.Errorf("edit %s: %w", output.ShortID(id), err)
			}
			if !applied {
				output.Info("Edit canceled")
				return nil
			}

			task, _ := s.Get(id)
			output.Success("UPDATED %s", output.TaskOneLiner(task))
			return nil
		},
	}

	cmd.Flags().StringVarP(&text, "text", "t", "", "new task text")
	cmd.Flags().StringVarP(&due, "due", "d", "", "new due date (blank clears)")
	cmd.Flags().BoolVar(&clearDue, "clear-due", false, "remove the due date")
	cmd.MarkFlagsMutuallyExclusive("due", "clear-due")
	return cmd
}
