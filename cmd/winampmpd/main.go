package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/famish99/winampmpd/internal/config"
	"github.com/famish99/winampmpd/internal/logging"
	"github.com/famish99/winampmpd/internal/winamp"
)

var (
	cfg       *config.Config
	logger    *slog.Logger
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "winampmpd",
	Short: "Control a running Winamp over MPD or from the command line",
	Long: `winampmpd drives a running Winamp instance through its window messages.
Run "winampmpd serve" to expose it to MPD clients, or use the other
commands to control it directly.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func main() {
	err := rootCmd.Execute()
	if logCloser != nil {
		logCloser.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", defaultConfigPath(), "Path to configuration file")
	flags.StringP("target", "t", "", "Override preferred target by name")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag("target", flags.Lookup("target"))
	_ = viper.BindPFlag("logging.level", flags.Lookup("log-level"))

	// e.g. WINAMPMPD_MPD_LISTEN for mpd.listen
	viper.SetEnvPrefix("WINAMPMPD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
}

// loadConfig reads the config file and applies flag and environment
// overrides on top of it.
func loadConfig(_ *cobra.Command, _ []string) error {
	c, err := config.LoadConfig(viper.GetString("config"))
	if err != nil {
		return err
	}
	if err := applyOverrides(c); err != nil {
		return err
	}

	log, closer, err := logging.Open(c.Logging.File, c.Logging.Level, c.Logging.Format)
	if err != nil {
		return err
	}
	cfg, logger, logCloser = c, log, closer
	return nil
}

func applyOverrides(c *config.Config) error {
	if t := viper.GetString("target"); t != "" {
		if err := c.SetPreferredTarget(t); err != nil {
			return fmt.Errorf("invalid target: %w", err)
		}
	}
	if v := viper.GetString("logging.level"); v != "" {
		c.Logging.Level = v
	}
	if v := viper.GetString("logging.format"); v != "" {
		c.Logging.Format = v
	}
	if v := viper.GetString("logging.file"); v != "" {
		c.Logging.File = v
	}
	if v := viper.GetString("mpd.listen"); v != "" {
		c.MPD.Listen = v
	}
	if v := viper.GetString("strings.codepage"); v != "" {
		c.Strings.Codepage = v
	}
	return c.Validate()
}

func defaultConfigPath() string {
	locations := []string{
		"./winampmpd.yaml",
		"./config.yaml",
	}
	if dir, err := os.UserConfigDir(); err == nil {
		locations = append(locations, filepath.Join(dir, "winampmpd", "config.yaml"))
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	// Default to first location if none exist
	return locations[0]
}

// attach opens a session to the preferred target.
func attach() (*winamp.Session, error) {
	window, err := cfg.Window("")
	if err != nil {
		return nil, err
	}
	codec, err := winamp.NewCodec(cfg.Strings.Codepage)
	if err != nil {
		return nil, err
	}
	return winamp.Attach(winamp.NewSystem(), window, winamp.WithLogger(logger), winamp.WithCodec(codec))
}

// withSession runs fn against a fresh session and detaches afterwards.
func withSession(fn func(s *winamp.Session) error) error {
	s, err := attach()
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Detach(); err != nil {
			logger.Warn("failed to detach", "error", err)
		}
	}()
	return fn(s)
}
