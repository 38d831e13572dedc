package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/setlistsync/internal/shared"
	"github.com/desertthunder/setlistsync/internal/tasks"
	"github.com/urfave/cli/v3"
)

// trackCount reads --tracks, falling back to [sync].tracks when the flag is unset.
func (r *Runner) trackCount(cmd *cli.Command) int {
	if !cmd.IsSet("tracks") && r.config.Sync.Tracks > 0 {
		return r.config.Sync.Tracks
	}
	return cmd.Int("tracks")
}

// maxPages reads --max-pages, falling back to [setlistfm].max_pages when it is not positive.
func (r *Runner) maxPages(cmd *cli.Command) int {
	if n := cmd.Int("max-pages"); n > 0 {
		return n
	}
	return r.config.SetlistFM.MaxPages
}

// rankOpts reads and validates the ranking flags shared by sync and setlist top.
func (r *Runner) rankOpts(cmd *cli.Command) (tasks.RankOpts, error) {
	opts := tasks.RankOpts{
		Artist:   cmd.String("artist"),
		Year:     cmd.Int("year"),
		Tracks:   r.trackCount(cmd),
		MaxPages: r.maxPages(cmd),
	}

	if opts.Artist == "" {
		return opts, fmt.Errorf("%w: --artist is required", shared.ErrMissingArgument)
	}
	if err := validateTracks(opts.Tracks); err != nil {
		return opts, err
	}
	if err := validateYear(opts.Year); err != nil {
		return opts, err
	}
	return opts, nil
}

// Sync ranks the artist's most played songs of a year and publishes them as a playlist.
func (r *Runner) Sync(ctx context.Context, cmd *cli.Command) error {
	opts, err := r.rankOpts(cmd)
	if err != nil {
		return err
	}

	pub := tasks.PublishOpts{Public: r.config.Sync.Public}
	if cmd.IsSet("public") {
		pub.Public = cmd.Bool("public")
	}

	if cmd.Bool("interactive") {
		return r.runTUI(ctx, opts, pub)
	}

	engine, err := r.newEngine(ctx, true)
	if err != nil {
		return err
	}

	r.logger.Info("starting sync", "artist", opts.Artist, "year", opts.Year, "tracks", opts.Tracks, "public", pub.Public)

	progress, stop := r.progressPrinter()
	result, err := engine.Run(ctx, opts, pub, progress)
	stop()
	if err != nil {
		return err
	}
	r.printSyncResult(result)
	return nil
}

func (r *Runner) printSyncResult(result *tasks.SyncResult) {
	if result.Playlist == nil {
		return
	}
	added := len(result.VideoIDs())
	failed := result.Failed()

	verb := "created"
	if result.Existing {
		verb = "updated"
	}

	r.writePlainln("✓ Playlist %s: %s", verb, result.Playlist.Name)
	r.writePlain("  URL: %s\n", result.URL())
	r.writePlain("  Tracks added: %d/%d\n", added, len(result.Matches))

	if len(failed) > 0 {
		r.writePlainln("⚠ %d %s could not be found on YouTube Music:", len(failed), shared.Pluralize(len(failed), "track"))
		for _, m := range failed {
			r.writePlain("  - %s\n", m.Query)
		}
	}
}
