package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/famish99/winampmpd/internal/winamp"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show playback status",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

var volumeCmd = &cobra.Command{
	Use:   "volume [N]",
	Short: "Show or set the volume (0-255)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runVolume,
}

var seekCmd = &cobra.Command{
	Use:   "seek MS",
	Short: "Jump to MS milliseconds into the playing track",
	Args:  cobra.ExactArgs(1),
	RunE:  runSeek,
}

var ratingCmd = &cobra.Command{
	Use:   "rating [N]",
	Short: "Show or set the rating of the playing track (0-5)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRating,
}

func transportCmd(use, short string, op func(*winamp.Session) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return withSession(op)
		},
	}
}

func init() {
	rootCmd.AddCommand(
		statusCmd,
		volumeCmd,
		seekCmd,
		ratingCmd,
		transportCmd("play", "Start playback", (*winamp.Session).Play),
		transportCmd("pause", "Toggle pause", (*winamp.Session).Pause),
		transportCmd("stop", "Stop playback", (*winamp.Session).Stop),
		transportCmd("next", "Play the next playlist entry", (*winamp.Session).Next),
		transportCmd("prev", "Play the previous playlist entry", (*winamp.Session).Previous),
		transportCmd("fullscreen", "Toggle fullscreen video or visualization", (*winamp.Session).ToggleFullscreen),
	)
}

type statusReport struct {
	state    winamp.PlaybackStatus
	title    string
	position int // ms
	length   int // seconds
	listPos  int
	listLen  int
	volume   int
	shuffle  bool
	repeat   bool
}

func readStatus(s *winamp.Session) (statusReport, error) {
	var r statusReport
	var err error
	if r.state, err = s.Status(); err != nil {
		return r, err
	}
	if r.title, err = s.PlayingTitle(); err != nil {
		return r, err
	}
	if r.position, err = s.TrackPosition(); err != nil {
		return r, err
	}
	if r.length, err = s.TrackLength(); err != nil {
		return r, err
	}
	if r.listPos, err = s.ListPosition(); err != nil {
		return r, err
	}
	if r.listLen, err = s.ListLength(); err != nil {
		return r, err
	}
	if r.volume, err = s.Volume(); err != nil {
		return r, err
	}
	if r.shuffle, err = s.Shuffle(); err != nil {
		return r, err
	}
	r.repeat, err = s.Repeat()
	return r, err
}

func (r statusReport) print(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	if r.title != "" {
		fmt.Fprintln(out, render(headerStyle, r.title))
	} else {
		fmt.Fprintln(out, render(mutedStyle, "(nothing playing)"))
	}

	state := r.state.String()
	if st, ok := stateStyles[r.state]; ok {
		state = render(st, state)
	}
	field(out, "state", state)
	if r.length > 0 {
		field(out, "time", clock(r.position)+" / "+clock(r.length*1000))
	}
	if r.listLen > 0 {
		field(out, "playlist", fmt.Sprintf("%d/%d", r.listPos+1, r.listLen))
	} else {
		field(out, "playlist", "empty")
	}
	field(out, "volume", fmt.Sprintf("%d/255", r.volume))
	field(out, "shuffle", onOff(r.shuffle))
	field(out, "repeat", onOff(r.repeat))
}

func runStatus(cmd *cobra.Command, _ []string) error {
	return withSession(func(s *winamp.Session) error {
		r, err := readStatus(s)
		if err != nil {
			return err
		}
		r.print(cmd)
		return nil
	})
}

func runVolume(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid volume: %s", args[0])
		}
		return withSession(func(s *winamp.Session) error { return s.SetVolume(v) })
	}
	return withSession(func(s *winamp.Session) error {
		v, err := s.Volume()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), v)
		return nil
	})
}

func runSeek(_ *cobra.Command, args []string) error {
	ms, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid position: %s", args[0])
	}
	return withSession(func(s *winamp.Session) error { return s.Seek(ms) })
}

func runRating(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		r, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid rating: %s", args[0])
		}
		// Delivery only; the target does not confirm the change.
		return withSession(func(s *winamp.Session) error { return s.SetRating(r) })
	}
	return withSession(func(s *winamp.Session) error {
		r, err := s.Rating()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), r)
		return nil
	})
}
