package main

import (
	"context"

	"github.com/desertthunder/setlistsync/internal/models"
	"github.com/desertthunder/setlistsync/internal/repositories"
	"github.com/urfave/cli/v3"
)

type cachedTrackOutput struct {
	Service string       `json:"service"`
	Query   string       `json:"query"`
	Track   models.Track `json:"track"`
}

// CacheTracks lists tracks cached by previous syncs, oldest first.
func (r *Runner) CacheTracks(ctx context.Context, cmd *cli.Command) error {
	db, err := r.database()
	if err != nil {
		return err
	}

	tracks, err := repositories.NewTrackRepository(db).List(map[string]any{
		"service": cmd.String("service"),
		"query":   cmd.String("query"),
		"limit":   cmd.Int("limit"),
	})
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		out := make([]cachedTrackOutput, 0, len(tracks))
		for _, t := range tracks {
			out = append(out, cachedTrackOutput{Service: t.Service(), Query: t.Query(), Track: t.Track()})
		}
		return r.writeJSON(out, cmd.Bool("pretty"))
	}

	if len(tracks) == 0 {
		r.writePlain("No cached tracks.\n")
		return nil
	}

	for _, t := range tracks {
		r.writePlain("%q\n", t.Query())
		r.writePlain("  → %s · %s [%s:%s]\n", t.Title(), t.Artist(), t.Service(), t.ServiceID())
	}
	return nil
}
