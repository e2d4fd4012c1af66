package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/famish99/winampmpd/internal/config"
	"github.com/famish99/winampmpd/internal/winamp"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List configured targets and whether they are running",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		sys := winamp.NewSystem()
		printTargets(cmd.OutOrStdout(), cfg, func(window string) bool {
			return winamp.Running(sys, window)
		})
		return nil
	},
}

var targetsAddCmd = &cobra.Command{
	Use:   "add NAME [WINDOW]",
	Short: "Add a target by its main window class",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		window := winamp.DefaultWindow
		if len(args) == 2 {
			window = args[1]
		}
		return editConfig(cmd, func(c *config.Config) error {
			if c.GetTarget(args[0]) != nil {
				return fmt.Errorf("target already exists: %s", args[0])
			}
			c.AddTarget(config.Target{Name: args[0], Window: window})
			return nil
		})
	},
}

var targetsRemoveCmd = &cobra.Command{
	Use:   "remove NAME",
	Short: "Remove a target",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editConfig(cmd, func(c *config.Config) error {
			return c.RemoveTarget(args[0])
		})
	},
}

var targetsUseCmd = &cobra.Command{
	Use:   "use NAME",
	Short: "Make a target the preferred one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editConfig(cmd, func(c *config.Config) error {
			return c.SetPreferredTarget(args[0])
		})
	},
}

func init() {
	targetsCmd.AddCommand(targetsAddCmd, targetsRemoveCmd, targetsUseCmd)
	rootCmd.AddCommand(targetsCmd)
}

// editConfig applies edit to the config file as stored, without the flag
// and environment overrides, and writes it back.
func editConfig(cmd *cobra.Command, edit func(*config.Config) error) error {
	path := viper.GetString("config")
	c, err := config.LoadConfig(path)
	if err != nil {
		return err
	}
	if err := edit(c); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if err := config.SaveConfig(path, c); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %d target(s) to %s\n", len(c.Targets), path)
	return nil
}

func printTargets(w io.Writer, c *config.Config, running func(window string) bool) {
	if len(c.Targets) == 0 {
		fmt.Fprintln(w, render(mutedStyle, "(no targets configured)"))
		return
	}
	preferred := c.GetPreferredTarget()
	for _, t := range c.Targets {
		marker := " "
		if preferred != nil && preferred.Name == t.Name {
			marker = "*"
		}
		state := render(mutedStyle, "not running")
		if running(t.Window) {
			state = render(stateStyles[winamp.StatusPlaying], "running")
		}
		fmt.Fprintf(w, "%s %s  %q  %s\n", marker, render(headerStyle, t.Name), t.Window, state)
	}
}
