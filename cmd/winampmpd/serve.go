package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/famish99/winampmpd/internal/art"
	"github.com/famish99/winampmpd/internal/mpd"
	"github.com/famish99/winampmpd/internal/player"
	"github.com/famish99/winampmpd/internal/winamp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MPD server",
	Long: `Serve the MPD protocol for the preferred target. The player attaches
when Winamp starts and detaches when it exits; MPD clients stay connected
in between.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("listen", "l", "", "MPD server listen address (default from config)")
	serveCmd.Flags().Bool("always", false, "Start the player once instead of following the Winamp process")
	_ = viper.BindPFlag("mpd.listen", serveCmd.Flags().Lookup("listen"))
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	window, err := cfg.Window("")
	if err != nil {
		return err
	}
	codec, err := winamp.NewCodec(cfg.Strings.Codepage)
	if err != nil {
		return err
	}
	sys := winamp.NewSystem()

	p := player.NewPlayer(
		player.Attacher(sys, window, winamp.WithLogger(logger), winamp.WithCodec(codec)),
		player.Options{
			MaxResults:   cfg.Query.MaxResults,
			InfoCapacity: cfg.Query.ExtendedInfoCapacity,
			Art: &art.Finder{
				ThumbnailDir:    cfg.Art.ThumbnailDir,
				PreferThumbnail: cfg.Art.PreferThumbnail,
				Log:             logger,
			},
			Log: logger,
		},
	)

	server := mpd.NewServer(cfg.MPD.Listen, p, logger)
	if err := server.Start(); err != nil {
		return fmt.Errorf("failed to start MPD server: %w", err)
	}
	defer server.Stop()

	m := &player.Manager{
		Service:  p,
		Interval: cfg.Manager.PollInterval,
		Log:      logger,
	}
	if always, _ := cmd.Flags().GetBool("always"); !always {
		m.Running = func() bool { return winamp.Running(sys, window) }
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("winampmpd running", "listen", server.Addr(), "window", window)
	err = m.Run(ctx)
	logger.Info("shutting down")
	return err
}
