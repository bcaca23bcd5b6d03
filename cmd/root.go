package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/marcus/vibrant/internal/config"
	"github.com/marcus/vibrant/internal/output"
	"github.com/spf13/cobra"
)

var (
	version     = "dev"
	globalFlags config.Flags

	// now is the clock relative due dates resolve against
	now = time.Now
)

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
}

const usageTemplate = `Usage:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

Aliases:
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

Examples:
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}{{$cmds := .Commands}}{{if eq (len .Groups) 0}}

Available Commands:{{range $cmds}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad (nameWithAliases .) (add .NamePadding 8)}} {{.Short}}{{end}}{{end}}{{else}}{{range $group := .Groups}}

{{.Title}}{{range $cmds}}{{if (and (eq .GroupID $group.ID) (or .IsAvailableCommand (eq .Name "help")))}}
  {{rpad (nameWithAliases .) (add .NamePadding 8)}} {{.Short}}{{end}}{{end}}{{end}}{{if not .AllChildCommandsHaveGroup}}

Additional Commands:{{range $cmds}}{{if (and (eq .GroupID "") (or .IsAvailableCommand (eq .Name "help")))}}
  {{rpad (nameWithAliases .) (add .NamePadding 8)}} {{.Short}}{{end}}{{end}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

Global Flags:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasHelpSubCommands}}

Additional help topics:{{range .Commands}}{{if .IsAdditionalHelpTopicCommand}}
  {{rpad .CommandPath .CommandPathPadding}} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`

// newRootCmd builds the command tree. Flags bind to fresh state each
// call so repeated executions in one process do not leak values.
func newRootCmd() *cobra.Command {
	globalFlags = config.Flags{}

	root := &cobra.Command{
		Use:   "vibrant",
		Short: "Local task list manager",
		Long: `vibrant - a local task list with due dates, filters and a terminal UI.

Tasks live in the data directory (see --data-dir). Run "vibrant tui" for the
interactive list, or use the commands below from scripts.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&globalFlags.ConfigPath, "config", "", "config file (default <data-dir>/config.toml)")
	pf.StringVar(&globalFlags.DataDir, "data-dir", "", "directory holding tasks and config (env "+config.EnvDataDir+")")
	pf.StringVar(&globalFlags.Backend, "backend", "", "storage backend: sqlite, file, memory (env "+config.EnvBackend+")")
	pf.StringVar(&globalFlags.LogLevel, "log-level", "", "log level: debug, info, warn, error (env "+config.EnvLogLevel+")")
	pf.StringVar(&globalFlags.LogFormat, "log-format", "", "log format: text, json, logfmt (env "+config.EnvLogFormat+")")

	root.SetUsageTemplate(usageTemplate)

	// Define command groups for organized help output
	root.AddGroup(
		&cobra.Group{ID: "core", Title: "Task Commands:"},
		&cobra.Group{ID: "order", Title: "Ordering Commands:"},
		&cobra.Group{ID: "view", Title: "View Commands:"},
		&cobra.Group{ID: "system", Title: "System Commands:"},
	)
	root.SetHelpCommandGroupID("system")
	root.SetCompletionCommandGroupID("system")

	root.AddCommand(
		newAddCmd(),
		newEditCmd(),
		newDeleteCmd(),
		newToggleCmd(),
		newClearCmd(),
		newMoveCmd(),
		newUpCmd(),
		newDownCmd(),
		newListCmd(),
		newTUICmd(),
		newThemeCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		output.Error("%v", err)
		os.Exit(1)
	}
}

// nameWithAliases returns "name, alias1, alias2" if aliases exist, else just "name"
func nameWithAliases(cmd *cobra.Command) string {
	if len(cmd.Aliases) > 0 {
		return cmd.Name() + ", " + strings.Join(cmd.Aliases, ", ")
	}
	return cmd.Name()
}

func init() {
	// Add custom template function for showing aliases
	cobra.AddTemplateFunc("nameWithAliases", nameWithAliases)

	// Need to add the 'add' function for padding calculation
	cobra.AddTemplateFunc("add", func(a, b int) int { return a + b })
}
