package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"spiderquest/internal/app"
	"spiderquest/internal/books"
	"spiderquest/internal/shell"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "spiderquest:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg, envErr := app.LoadConfig()
	noAudio := false

	root := &cobra.Command{
		Use:           "spiderquest",
		Short:         "Build webs, catch bugs and learn spider facts in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if envErr != nil {
				return envErr
			}
			if noAudio {
				cfg.Audio = "off"
			}
			return cfg.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(&cfg)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory holding the progress database")
	pf.StringVar(&cfg.LogPath, "log", cfg.LogPath, "append JSON event log to this file")
	pf.StringVar(&cfg.BundleDir, "bundle", cfg.BundleDir, "directory with the offline bundle (books, assets)")
	pf.StringVar(&cfg.DownloadDir, "download-dir", cfg.DownloadDir, "where exported books are written")
	pf.BoolVar(&cfg.Debug, "debug", cfg.Debug, "verbose logging")

	f := root.Flags()
	f.BoolVar(&noAudio, "no-audio", false, "disable sound")
	f.StringVar(&cfg.Audio, "audio", cfg.Audio, "audio: auto, on or off")
	f.StringVar(&cfg.UI.StyleVariant, "style", cfg.UI.StyleVariant, "color theme: silk, meadow or retro")
	f.StringVar(&cfg.UI.MotionLevel, "motion", cfg.UI.MotionLevel, "overlay animation: full, reduced or off")
	f.BoolVar(&cfg.ASCIIOnly, "ascii", cfg.ASCIIOnly, "draw panels with ASCII only")
	f.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 picks one)")
	f.StringVar(&cfg.ContentPath, "content", cfg.ContentPath, "YAML content pack with tips and quiz questions")
	f.StringVar(&cfg.StartMode, "mode", cfg.StartMode, "starting game: web_builder, bug_catcher or quiz")
	f.BoolVar(&cfg.Dev, "dev", cfg.Dev, "serve the dev endpoint")
	f.StringVar(&cfg.DevHTTP, "dev-http", cfg.DevHTTP, "dev endpoint address")
	f.StringVar(&cfg.DemoScenario, "demo", cfg.DemoScenario, "start in a named demo scenario")

	root.AddCommand(
		newStatsCmd(&cfg),
		newResetCmd(&cfg),
		newBooksCmd(&cfg),
	)
	return root
}

func runPlay(cfg *app.Config) error {
	a, err := app.New(*cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		a.Stop()
	}()
	return a.Run(ctx)
}

func newStatsCmd(cfg *app.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the progress dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := app.ReadDashboard(cmd.Context(), *cfg)
			if err != nil {
				return err
			}
			printDashboard(cmd.OutOrStdout(), d)
			return nil
		},
	}
}

func printDashboard(w io.Writer, d app.Dashboard) {
	for _, line := range d.Lines() {
		fmt.Fprintln(w, line)
	}
	audio := "off"
	if d.AudioOn {
		audio = "on"
	}
	fmt.Fprintf(w, "Audio:       %s\n", audio)
}

func newResetCmd(cfg *app.Config) *cobra.Command {
	yes := false
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all progress and badges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("reset erases all progress; pass --yes to confirm")
			}
			if err := app.ResetProgress(cmd.Context(), *cfg); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Progress reset.")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the reset")
	return cmd
}

func newBooksCmd(cfg *app.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "List, open or export the spider books",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, b := range books.Catalog {
				fmt.Fprintf(cmd.OutOrStdout(), "%-9s %s (%s)\n", b.ID, b.Title, b.Filename)
			}
			return nil
		},
	}

	export := &cobra.Command{
		Use:   "export <book> [dir]",
		Short: "Copy a book out of the bundle",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := cfg.DownloadDir
			if len(args) == 2 {
				dir = args[1]
			}
			path, err := library(cfg).Download(cmd.Context(), args[0], dir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	open := &cobra.Command{
		Use:   "open <book>",
		Short: "Open a book in the system viewer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := library(cfg).Open(cmd.Context(), args[0])
			if errors.Is(err, books.ErrOpenBlocked) {
				return fmt.Errorf("%w (the file is at %s)", err, path)
			}
			return err
		},
	}
	cmd.AddCommand(export, open)
	return cmd
}

func library(cfg *app.Config) *books.Library {
	cacheDir := filepath.Join(cfg.DataDir, "cache")
	if cfg.BundleDir == "" {
		return books.NewLibrary(nil, books.SystemOpener{}, cacheDir)
	}
	return books.NewLibrary(shell.NewFetcher(shell.DirOrigin{Root: cfg.BundleDir}), books.SystemOpener{}, cacheDir)
}
