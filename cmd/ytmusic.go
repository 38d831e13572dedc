package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/setlistsync/internal/services"
	"github.com/desertthunder/setlistsync/internal/shared"
	"github.com/urfave/cli/v3"
)

// YTMusicSearch resolves a query to a track the way sync does.
func (r *Runner) YTMusicSearch(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: search query", shared.ErrMissingArgument)
	}
	if err := r.authYouTube(ctx); err != nil {
		return err
	}

	r.logger.Info("searching youtube music", "query", query)

	track, err := r.youtube.SearchTrack(ctx, query)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(track, cmd.Bool("pretty"))
	}

	r.writePlain("Found track:\n\n")
	r.writePlain("Title: %s\n", track.Title)
	if track.Artist != "" {
		r.writePlain("Artist: %s\n", track.Artist)
	}
	if track.Album != "" {
		r.writePlain("Album: %s\n", track.Album)
	}
	r.writePlain("ID: %s\n", track.ID)
	if track.Duration > 0 {
		minutes := track.Duration / 60
		seconds := track.Duration % 60
		r.writePlain("Duration: %d:%02d\n", minutes, seconds)
	}
	return nil
}

// YTMusicPlaylists lists the playlists in the library.
func (r *Runner) YTMusicPlaylists(ctx context.Context, cmd *cli.Command) error {
	if err := r.authYouTube(ctx); err != nil {
		return err
	}

	playlists, err := r.youtube.GetPlaylists(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlists, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("%d %s", len(playlists), shared.Pluralize(len(playlists), "playlist")))
	for _, pl := range playlists {
		r.writePlain("%s\n", pl.Name)
		r.writePlain("  %d %s · %s\n", pl.TrackCount, shared.Pluralize(pl.TrackCount, "track"), shared.VisibilityString(pl.Public))
		r.writePlain("  "+services.PlaylistURL+"\n", pl.ID)
	}
	return nil
}
