package cmd

import (
	"fmt"

	"github.com/marcus/vibrant/internal/models"
	"github.com/marcus/vibrant/internal/output"
	"github.com/spf13/cobra"
)

func newThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark|toggle]",
		Short:     "Show or set the color theme",
		GroupID:   "view",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"light", "dark", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd, false)
			if err != nil {
				return err
			}
			defer e.Close()

			s := e.session(cmd, nil)
			if len(args) == 0 {
				output.Info("%s", s.Theme())
				return nil
			}

			switch arg := args[0]; arg {
			case "toggle":
				s.ToggleTheme(cmd.Context())
			default:
				theme := models.Theme(arg)
				if !models.IsValidTheme(theme) {
					return fmt.Errorf("unknown theme %q (valid: light, dark, toggle)", arg)
				}
				s.SetTheme(cmd.Context(), theme)
			}
			output.Success("Theme set to %s", s.Theme())
			return nil
		},
	}
}
