package main

import (
	"context"
	"time"

	"github.com/desertthunder/setlistsync/internal/models"
	"github.com/desertthunder/setlistsync/internal/repositories"
	"github.com/desertthunder/setlistsync/internal/services"
	"github.com/urfave/cli/v3"
)

type syncRunOutput struct {
	ID            string        `json:"id"`
	Artist        models.Artist `json:"artist"`
	Year          int           `json:"year"`
	PlaylistID    string        `json:"playlist_id"`
	PlaylistTitle string        `json:"playlist_title"`
	Performances  int           `json:"performances"`
	Ranked        int           `json:"ranked"`
	Matched       int           `json:"matched"`
	CreatedAt     time.Time     `json:"created_at"`
}

func newSyncRunOutput(run *models.SyncRun) syncRunOutput {
	return syncRunOutput{
		ID:            run.ID(),
		Artist:        run.Artist(),
		Year:          run.Year(),
		PlaylistID:    run.PlaylistID(),
		PlaylistTitle: run.PlaylistTitle(),
		Performances:  run.Performances(),
		Ranked:        run.Ranked(),
		Matched:       run.Matched(),
		CreatedAt:     run.CreatedAt(),
	}
}

// History lists recorded syncs, newest first.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	db, err := r.database()
	if err != nil {
		return err
	}

	runs, err := repositories.NewSyncRunRepository(db).List(map[string]any{
		"artist_mbid": cmd.String("mbid"),
		"year":        cmd.Int("year"),
		"limit":       cmd.Int("limit"),
	})
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		out := make([]syncRunOutput, 0, len(runs))
		for _, run := range runs {
			out = append(out, newSyncRunOutput(run))
		}
		return r.writeJSON(out, cmd.Bool("pretty"))
	}

	if len(runs) == 0 {
		r.writePlain("No syncs recorded yet.\n")
		return nil
	}

	r.writePlainHeader("Sync history")
	for _, run := range runs {
		r.writePlain("%s  %s (%d)\n", run.CreatedAt().Local().Format(time.DateTime), run.ArtistName(), run.Year())
		r.writePlain("  %s\n", run.PlaylistTitle())
		r.writePlain("  %d/%d matched from %d performances\n", run.Matched(), run.Ranked(), run.Performances())
		r.writePlain("  "+services.PlaylistURL+"\n", run.PlaylistID())
	}
	return nil
}
