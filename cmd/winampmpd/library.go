package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/famish99/winampmpd/internal/winamp"
)

var enqueueCmd = &cobra.Command{
	Use:   "enqueue FILE...",
	Short: "Append files or URLs to the playlist",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withSession(func(s *winamp.Session) error {
			for _, f := range args {
				if err := s.Enqueue(f); err != nil {
					return fmt.Errorf("enqueue %s: %w", f, err)
				}
			}
			return nil
		})
	},
}

var playlistCmd = &cobra.Command{
	Use:   "playlist",
	Short: "List the playlist",
	Args:  cobra.NoArgs,
	RunE:  runPlaylist,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the playlist",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		return withSession((*winamp.Session).ClearPlaylist)
	},
}

var queryCmd = &cobra.Command{
	Use:   "query TEXT",
	Short: "Query the media library",
	Long: `Run a media library query such as 'artist has "blur"', or with
--keyword search every field for TEXT.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

var browseCmd = &cobra.Command{
	Use:   "browse [LABEL...]",
	Short: "List the media library tree below a path of labels",
	RunE:  runBrowse,
}

var infoCmd = &cobra.Command{
	Use:   "info FILE FIELD",
	Short: "Show one metadata field of a file, e.g. artist or bitrate",
	Args:  cobra.ExactArgs(2),
	RunE:  runInfo,
}

var albumCmd = &cobra.Command{
	Use:   "album NAME",
	Short: "Replace the playlist with an album from the library and play it",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withSession(func(s *winamp.Session) error { return s.PlayAlbum(args[0]) })
	},
}

func init() {
	queryCmd.Flags().BoolP("keyword", "k", false, "Search every field for TEXT")
	queryCmd.Flags().IntP("max", "n", 0, "Maximum number of results, 0 for all")
	rootCmd.AddCommand(enqueueCmd, playlistCmd, clearCmd, queryCmd, browseCmd, infoCmd, albumCmd)
}

func runPlaylist(cmd *cobra.Command, _ []string) error {
	return withSession(func(s *winamp.Session) error {
		titles, err := s.PlaylistTitles()
		if err != nil {
			return err
		}
		current, err := s.ListPosition()
		if err != nil {
			return err
		}
		printPlaylist(cmd.OutOrStdout(), titles, current, lineWidth())
		return nil
	})
}

func printPlaylist(w io.Writer, titles []string, current, width int) {
	if len(titles) == 0 {
		fmt.Fprintln(w, render(mutedStyle, "(playlist is empty)"))
		return
	}
	for i, t := range titles {
		line := fit(fmt.Sprintf("%4d  %s", i+1, t), width)
		if i == current {
			line = render(currentStyle, line)
		}
		fmt.Fprintln(w, line)
	}
}

func runQuery(cmd *cobra.Command, args []string) error {
	keyword, _ := cmd.Flags().GetBool("keyword")
	limit, _ := cmd.Flags().GetInt("max")
	if limit <= 0 {
		limit = cfg.Query.MaxResults
	}

	return withSession(func(s *winamp.Session) error {
		var items []winamp.Item
		var err error
		if keyword {
			items, err = s.QueryKeyword(args[0], limit)
		} else {
			items, err = s.Query(args[0], limit)
		}
		if err != nil {
			return err
		}
		printItems(cmd.OutOrStdout(), items, lineWidth())
		return nil
	})
}

func printItems(w io.Writer, items []winamp.Item, width int) {
	if len(items) == 0 {
		fmt.Fprintln(w, render(mutedStyle, "(no results)"))
		return
	}
	for _, it := range items {
		line := it.DisplayTitle()
		if it.Artist != "" {
			line = it.Artist + " - " + line
		}
		if it.Length >= 0 {
			line += " (" + clock(it.Length*1000) + ")"
		}
		fmt.Fprintln(w, fit(line, width))
		fmt.Fprintln(w, fit("    "+render(mutedStyle, it.Filename), width))
	}
}

func runBrowse(cmd *cobra.Command, args []string) error {
	return withSession(func(s *winamp.Session) error {
		children, err := s.ListChildren(args)
		var noChildren *winamp.NoChildrenError
		if errors.As(err, &noChildren) {
			fmt.Fprintln(cmd.OutOrStdout(), render(mutedStyle, "(no children)"))
			return nil
		}
		if err != nil {
			return err
		}
		for _, c := range children {
			fmt.Fprintln(cmd.OutOrStdout(), c.Label)
		}
		return nil
	})
}

func runInfo(cmd *cobra.Command, args []string) error {
	return withSession(func(s *winamp.Session) error {
		v, err := s.ExtendedFileInfo(args[0], args[1], cfg.Query.ExtendedInfoCapacity)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), v)
		return nil
	})
}
