package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/desertthunder/setlistsync/internal/formatter"
	"github.com/desertthunder/setlistsync/internal/models"
	"github.com/desertthunder/setlistsync/internal/ranking"
	"github.com/desertthunder/setlistsync/internal/setlistfm"
	"github.com/desertthunder/setlistsync/internal/shared"
	"github.com/desertthunder/setlistsync/internal/tasks"
	"github.com/urfave/cli/v3"
)

type artistSearchOutput struct {
	Query      string             `json:"query"`
	Selected   setlistfm.Artist   `json:"selected"`
	Match      string             `json:"match"`
	Candidates []setlistfm.Artist `json:"candidates"`
}

type songsOutput struct {
	Artist models.Artist `json:"artist"`
	Year   int           `json:"year"`
	Songs  []string      `json:"songs"`
}

// SetlistArtist searches setlist.fm for artists and marks the one a sync would use.
func (r *Runner) SetlistArtist(ctx context.Context, cmd *cli.Command) error {
	if err := r.config.ValidateSetlistFM(); err != nil {
		return err
	}

	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: artist name", shared.ErrMissingArgument)
	}

	candidates, err := r.setlists.SearchArtists(ctx, name)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		return fmt.Errorf("artist %w: %q", shared.ErrNotFound, name)
	}

	selected, how := setlistfm.SelectArtist(name, candidates)
	if cmd.Bool("json") {
		return r.writeJSON(artistSearchOutput{
			Query:      name,
			Selected:   selected,
			Match:      how,
			Candidates: candidates,
		}, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Artists matching %q", name))
	for _, a := range candidates {
		marker := " "
		if a.MBID == selected.MBID {
			marker = "*"
		}
		r.writePlain("%s %s", marker, a.Name)
		if a.Disambiguation != "" {
			r.writePlain(" (%s)", a.Disambiguation)
		}
		r.writePlain("\n    %s\n", a.MBID)
	}
	r.writePlainln("Selected %s (%s match)", selected.Name, how)
	return nil
}

// SetlistSongs lists every song performance of an artist in a year, in setlist order.
func (r *Runner) SetlistSongs(ctx context.Context, cmd *cli.Command) error {
	if err := r.config.ValidateSetlistFM(); err != nil {
		return err
	}

	name := cmd.String("artist")
	year := cmd.Int("year")
	if err := validateYear(year); err != nil {
		return err
	}
	maxPages := cmd.Int("max-pages")
	if maxPages <= 0 {
		maxPages = r.config.SetlistFM.MaxPages
	}

	artist, err := r.setlists.SearchArtist(ctx, name)
	if err != nil {
		return err
	}

	songs, err := r.setlists.FetchSetlistsForYear(ctx, artist.MBID, year, maxPages)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(songsOutput{Artist: *artist, Year: year, Songs: songs}, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("%s in %d", artist.Name, year))
	for _, song := range songs {
		r.writePlain("%s\n", song)
	}
	tally := ranking.Count(songs)
	r.writePlainln("%d %s, %d distinct", tally.Total(), shared.Pluralize(tally.Total(), "performance"), len(tally))
	return nil
}

// SetlistTop ranks the most played songs without touching YouTube Music.
//
// The report goes to stdout unless --output names a file.
func (r *Runner) SetlistTop(ctx context.Context, cmd *cli.Command) error {
	opts, err := r.rankOpts(cmd)
	if err != nil {
		return err
	}

	format := cmd.String("format")
	if _, err := formatter.Render(&formatter.Report{}, format); err != nil {
		return err
	}

	engine, err := r.newEngine(ctx, false)
	if err != nil {
		return err
	}

	result, err := engine.Rank(ctx, opts, nil)
	if err != nil {
		return err
	}
	report := result.Report()

	if output := cmd.String("output"); output != "" {
		path, err := formatter.WriteReport(report, format, output)
		if err != nil {
			return err
		}
		r.logger.Info("report written", "path", path, "songs", len(report.Songs))
		r.writePlain("✓ Report written to %s\n", path)
		return nil
	}

	data, err := formatter.Render(report, format)
	if err != nil {
		return err
	}
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// SetlistReport writes one ranked report per year of a range plus a manifest.
func (r *Runner) SetlistReport(ctx context.Context, cmd *cli.Command) error {
	opts := tasks.ReportOpts{
		Artist:    cmd.String("artist"),
		From:      cmd.Int("from"),
		To:        cmd.Int("to"),
		Tracks:    r.trackCount(cmd),
		MaxPages:  r.maxPages(cmd),
		Format:    cmd.String("format"),
		OutputDir: cmd.String("output-dir"),
	}
	if err := validateTracks(opts.Tracks); err != nil {
		return err
	}
	for _, year := range []int{opts.From, opts.To} {
		if err := validateYear(year); err != nil {
			return err
		}
	}

	engine, err := r.newEngine(ctx, false)
	if err != nil {
		return err
	}

	r.logger.Info("starting report", "artist", opts.Artist, "from", opts.From, "to", opts.To, "format", opts.Format)

	progress, stop := r.progressPrinter()
	result, err := engine.Report(ctx, opts, progress)
	stop()
	if err != nil {
		return err
	}

	m := result.Manifest
	r.writePlainln("✓ Report complete: %d succeeded, %d failed", m.Succeeded, m.Failed)
	r.writePlain("  Output: %s\n", m.OutputDir)
	r.writePlain("  Manifest: %s\n", result.ManifestPath)
	for _, entry := range m.Entries {
		if entry.Error != "" {
			r.writePlain("  ✗ %d: %s\n", entry.Year, entry.Error)
		}
	}
	return nil
}

// SetlistPage fetches one page of an artist's setlists.
func (r *Runner) SetlistPage(ctx context.Context, cmd *cli.Command) error {
	if err := r.config.ValidateSetlistFM(); err != nil {
		return err
	}

	page := cmd.Int("page")
	if page < 1 {
		return fmt.Errorf("%w: --page must be at least 1, got %d", shared.ErrInvalidFlag, page)
	}

	data, err := r.setlists.Setlists(ctx, cmd.String("mbid"), page)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(data, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Page %d (%d setlists total)", data.Page, data.Total))
	for _, setlist := range data.Setlists {
		venue := "unknown venue"
		if setlist.Venue != nil {
			venue = setlist.Venue.Name
			if setlist.Venue.City != nil {
				venue += ", " + setlist.Venue.City.Name
			}
		}
		songs := len(setlistfm.ExtractSongs(setlist))
		r.writePlain("%s  %s (%d %s)\n", setlist.EventDate, venue, songs, shared.Pluralize(songs, "song"))
	}
	return nil
}

// SetlistRaw prints the indented JSON body of a GET request to path.
func (r *Runner) SetlistRaw(ctx context.Context, cmd *cli.Command) error {
	if err := r.config.ValidateSetlistFM(); err != nil {
		return err
	}

	path := strings.TrimPrefix(cmd.StringArg("path"), "/")
	if path == "" {
		return fmt.Errorf("%w: API path", shared.ErrMissingArgument)
	}

	body, err := r.setlists.Raw(ctx, path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		buf.Reset()
		buf.Write(body)
	}
	buf.WriteByte('\n')

	if _, err := r.output.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
