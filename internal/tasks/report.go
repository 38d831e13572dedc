package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/desertthunder/setlistsync/internal/formatter"
	"github.com/desertthunder/setlistsync/internal/shared"
)

// ManifestFile is the name of the summary written next to the yearly reports.
const ManifestFile = "report_manifest.json"

// ReportOpts contains configuration for multi-year reports.
type ReportOpts struct {
	Artist    string // Artist name as typed by the user
	From, To  int    // Inclusive year range
	Tracks    int    // Songs per year (default: [ranking.DefaultLimit])
	MaxPages  int    // Setlist page cap per year
	Format    string // Report format: json, csv, markdown, txt
	OutputDir string // Base output directory (default: <artist>_report_{epoch})
}

// ReportResult summarizes a multi-year report.
type ReportResult struct {
	Manifest     *formatter.Manifest
	ManifestPath string
}

// Report ranks every year in opts.From..opts.To and writes one report file per year.
//
// Years run one after another since the setlist source serializes its requests.
// A year without data or with a failed fetch is recorded in the manifest and the run continues.
// Only cancellation of ctx and output errors abort.
func (e *PlaylistEngine) Report(ctx context.Context, opts ReportOpts, progress chan<- ProgressUpdate) (*ReportResult, error) {
	if e.setlists == nil {
		return nil, fmt.Errorf("%w: setlist source not initialized", shared.ErrServiceUnavailable)
	}
	if opts.From > opts.To {
		return nil, fmt.Errorf("%w: year range %d..%d is empty", shared.ErrInvalidArgument, opts.From, opts.To)
	}
	if _, err := formatter.Render(&formatter.Report{}, opts.Format); err != nil {
		return nil, err
	}

	e.sendProgress(progress, searchArtistUpdate(opts.Artist))
	artist, err := e.setlists.SearchArtist(ctx, opts.Artist)
	if err != nil {
		return nil, err
	}
	e.sendProgress(progress, foundArtistUpdate(artist))

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("%s_report_%d", formatter.Slug(artist.Name), time.Now().Unix())
	}
	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	total := opts.To - opts.From + 1
	manifest := &formatter.Manifest{
		Artist:      *artist,
		Format:      opts.Format,
		OutputDir:   opts.OutputDir,
		GeneratedAt: time.Now().UTC(),
		Entries:     make([]formatter.ManifestEntry, 0, total),
	}

	for i, year := 0, opts.From; year <= opts.To; i, year = i+1, year+1 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		e.sendProgress(progress, reportYearUpdate(i+1, total, year))

		entry := formatter.ManifestEntry{Year: year}
		rank, err := e.rankArtist(ctx, *artist, RankOpts{Year: year, Tracks: opts.Tracks, MaxPages: opts.MaxPages}, nil)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			e.logger.Warn("skipping year", "year", year, "error", err)
			entry.Error = err.Error()
			manifest.Failed++
			manifest.Entries = append(manifest.Entries, entry)
			e.sendProgress(progress, reportFailedUpdate(i+1, total, year, err))
			continue
		}

		report := rank.Report()
		path := filepath.Join(opts.OutputDir, formatter.Filename(report, opts.Format))
		if _, err := formatter.WriteReport(report, opts.Format, path); err != nil {
			return nil, err
		}

		entry.Performances = rank.Performances
		entry.Songs = len(rank.Ranked)
		entry.File = filepath.Base(path)
		manifest.Succeeded++
		manifest.Entries = append(manifest.Entries, entry)
		e.sendProgress(progress, reportCompletedUpdate(i+1, total, year, entry.File))
	}

	manifestPath := filepath.Join(opts.OutputDir, ManifestFile)
	if err := formatter.WriteManifest(manifest, manifestPath); err != nil {
		return nil, fmt.Errorf("report completed but failed to write manifest: %w", err)
	}
	return &ReportResult{Manifest: manifest, ManifestPath: manifestPath}, nil
}
