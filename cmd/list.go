package cmd

import (
	"fmt"

	"github.com/marcus/vibrant/internal/app"
	"github.com/marcus/vibrant/internal/config"
	"github.com/marcus/vibrant/internal/models"
	"github.com/marcus/vibrant/internal/output"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// filterFlag is a --filter value accepting the filter names and their
// aliases (todo, open, done)
type filterFlag struct {
	mode models.FilterMode
}

var _ pflag.Value = (*filterFlag)(nil)

func (f *filterFlag) String() string { return string(f.mode) }

func (f *filterFlag) Set(s string) error {
	mode := models.NormalizeFilterMode(s)
	if !models.IsValidFilterMode(mode) {
		return fmt.Errorf("unknown filter %q (valid: all, active, completed)", s)
	}
	f.mode = mode
	return nil
}

func (f *filterFlag) Type() string { return "filter" }

// resolve returns the flag's mode, or the configured default when unset
func (f *filterFlag) resolve(cfg *config.Config) models.FilterMode {
	if f.mode != "" {
		return f.mode
	}
	return cfg.Filter()
}

func addFilterFlag(cmd *cobra.Command, f *filterFlag) {
	cmd.Flags().VarP(f, "filter", "f", "filter: all, active, completed (default from config)")
	cmd.RegisterFlagCompletionFunc("filter", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"all", "active", "completed"}, cobra.ShellCompDirectiveNoFileComp
	})
}

func newListCmd() *cobra.Command {
	var (
		mode     filterFlag
		jsonOut  bool
		markdown bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Long: `Lists tasks in order with the number still open.

--json prints the view (tasks, active_count, mode, theme); --markdown renders a
task list through the current theme.`,
		GroupID: "view",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd, false)
			if err != nil {
				return err
			}
			defer e.Close()

			printer := output.Printer{Mode: output.ModeShort, Now: now}
			switch {
			case jsonOut:
				printer.Mode = output.ModeJSON
			case markdown:
				printer.Mode = output.ModeMarkdown
			}

			// Opening the session renders the first view through the printer
			e.session(cmd, printer, app.WithFilter(mode.resolve(e.cfg)))
			return nil
		},
	}

	addFilterFlag(cmd, &mode)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the view as JSON")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "render the view as markdown")
	cmd.MarkFlagsMutuallyExclusive("json", "markdown")
	return cmd
}
