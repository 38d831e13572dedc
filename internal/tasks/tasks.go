// package tasks builds playlists from the songs an artist played live in a year.
//
// The core abstraction is SyncEngine, which ranks setlist data and publishes the result to a streaming service.
// Operations emit progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/setlistsync/internal/formatter"
	"github.com/desertthunder/setlistsync/internal/models"
	"github.com/desertthunder/setlistsync/internal/ranking"
	"github.com/desertthunder/setlistsync/internal/services"
	"github.com/desertthunder/setlistsync/internal/shared"
	"golang.org/x/time/rate"
)

// DefaultSearchRate is the number of track searches allowed per second.
const DefaultSearchRate = 10.0

// SetlistSource resolves artists and collects the songs they played in a year.
// Satisfied by *setlistfm.Client.
type SetlistSource interface {
	SearchArtist(ctx context.Context, name string) (*models.Artist, error)
	FetchSetlistsForYear(ctx context.Context, mbid string, year, maxPages int) ([]string, error)
}

// TrackCacher persists and looks up the track a search query resolved to.
type TrackCacher interface {
	CachedTrack(service, query string) (*models.Track, bool)
	CacheTrack(service, query string, track models.Track) error
}

// RunRecorder persists a completed sync.
type RunRecorder interface {
	RecordRun(run *models.SyncRun) error
}

// SyncEngine defines the operations that turn setlist data into playlists.
type SyncEngine interface {
	// Rank resolves the artist, collects the year's performances and ranks them.
	Rank(ctx context.Context, opts RankOpts, progress chan<- ProgressUpdate) (*RankResult, error)

	// Publish creates or reuses a playlist and fills it with the ranked songs.
	Publish(ctx context.Context, rank *RankResult, opts PublishOpts, progress chan<- ProgressUpdate) (*SyncResult, error)

	// Run performs Rank followed by Publish.
	Run(ctx context.Context, opts RankOpts, pub PublishOpts, progress chan<- ProgressUpdate) (*SyncResult, error)

	// Report ranks a range of years and writes one file per year plus a manifest.
	Report(ctx context.Context, opts ReportOpts, progress chan<- ProgressUpdate) (*ReportResult, error)
}

// RankOpts selects what to rank.
type RankOpts struct {
	Artist   string // Artist name as typed by the user
	Year     int    // Year of the performances
	Tracks   int    // Number of songs to keep (default: [ranking.DefaultLimit])
	MaxPages int    // Setlist page cap, zero uses the retriever default
}

// RankResult contains the ranked songs of an artist in one year.
type RankResult struct {
	Artist       models.Artist
	Year         int
	Performances int             // Song performances found in the year
	Ranked       []ranking.Entry // Most played first
}

// Title returns the playlist title for the ranking.
func (r *RankResult) Title() string {
	return fmt.Sprintf("%s – Top %d Live (%d, setlist.fm)", r.Artist.Name, len(r.Ranked), r.Year)
}

// Description returns the playlist description for the ranking.
func (r *RankResult) Description() string {
	return fmt.Sprintf(
		"Auto-generated from setlist.fm data for %s in %d. Based on %d song performances from live shows.",
		r.Artist.Name, r.Year, r.Performances,
	)
}

// Queries returns one "<Artist> - <Title>" search query per ranked song, in order.
func (r *RankResult) Queries() []string {
	queries := make([]string, len(r.Ranked))
	for i, entry := range r.Ranked {
		queries[i] = fmt.Sprintf("%s - %s", r.Artist.Name, entry.Title)
	}
	return queries
}

// Report converts the ranking to an exportable report.
func (r *RankResult) Report() *formatter.Report {
	return &formatter.Report{
		Artist:       r.Artist,
		Year:         r.Year,
		Performances: r.Performances,
		Songs:        r.Ranked,
	}
}

// PublishOpts controls playlist creation.
type PublishOpts struct {
	Public bool // Visibility of a newly created playlist
}

// TrackMatch is the outcome of searching one query.
type TrackMatch struct {
	Query string
	Song  string        // Ranked song title
	Track *models.Track // nil when the search failed
	Err   error
}

// SyncResult contains all data from a full sync.
type SyncResult struct {
	Rank     *RankResult
	Playlist *models.Playlist
	Existing bool // true when an existing playlist was reused
	Matches  []TrackMatch
}

// VideoIDs returns the ids of matched tracks in query order.
func (r *SyncResult) VideoIDs() []string {
	ids := make([]string, 0, len(r.Matches))
	for _, m := range r.Matches {
		if m.Track != nil {
			ids = append(ids, m.Track.ID)
		}
	}
	return ids
}

// MatchedQueries returns the queries that resolved to a track, in order.
func (r *SyncResult) MatchedQueries() []string {
	queries := make([]string, 0, len(r.Matches))
	for _, m := range r.Matches {
		if m.Track != nil {
			queries = append(queries, m.Query)
		}
	}
	return queries
}

// Failed returns the matches that did not resolve.
func (r *SyncResult) Failed() []TrackMatch {
	var failed []TrackMatch
	for _, m := range r.Matches {
		if m.Track == nil {
			failed = append(failed, m)
		}
	}
	return failed
}

// URL returns the playlist's YouTube Music address.
func (r *SyncResult) URL() string {
	if r.Playlist == nil {
		return ""
	}
	return fmt.Sprintf(services.PlaylistURL, r.Playlist.ID)
}

// EngineOpts wires the collaborators of a [PlaylistEngine].
//
// Streaming is only needed for Publish. Cache and Recorder are optional.
type EngineOpts struct {
	Setlists   SetlistSource
	Streaming  services.Service
	Cache      TrackCacher
	Recorder   RunRecorder
	SearchRate float64 // Track searches per second (default: [DefaultSearchRate])
	Logger     *log.Logger
}

// PlaylistEngine implements SyncEngine.
type PlaylistEngine struct {
	setlists   SetlistSource
	streaming  services.Service
	cache      TrackCacher
	recorder   RunRecorder
	searchRate float64
	logger     *log.Logger
}

// NewPlaylistEngine creates a new PlaylistEngine from opts.
func NewPlaylistEngine(opts EngineOpts) *PlaylistEngine {
	if opts.SearchRate <= 0 {
		opts.SearchRate = DefaultSearchRate
	}
	if opts.Logger == nil {
		opts.Logger = shared.DiscardLogger()
	}
	return &PlaylistEngine{
		setlists:   opts.Setlists,
		streaming:  opts.Streaming,
		cache:      opts.Cache,
		recorder:   opts.Recorder,
		searchRate: opts.SearchRate,
		logger:     opts.Logger,
	}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *PlaylistEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Rank resolves the artist and ranks the songs played in opts.Year.
//
// Returns an error wrapping [shared.ErrNoData] when the year has no performances.
func (e *PlaylistEngine) Rank(ctx context.Context, opts RankOpts, progress chan<- ProgressUpdate) (*RankResult, error) {
	if e.setlists == nil {
		return nil, fmt.Errorf("%w: setlist source not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, searchArtistUpdate(opts.Artist))
	artist, err := e.setlists.SearchArtist(ctx, opts.Artist)
	if err != nil {
		return nil, err
	}
	e.sendProgress(progress, foundArtistUpdate(artist))
	e.logger.Debug("resolved artist", "query", opts.Artist, "name", artist.Name, "mbid", artist.MBID)

	return e.rankArtist(ctx, *artist, opts, progress)
}

func (e *PlaylistEngine) rankArtist(ctx context.Context, artist models.Artist, opts RankOpts, progress chan<- ProgressUpdate) (*RankResult, error) {
	if opts.Tracks <= 0 {
		opts.Tracks = ranking.DefaultLimit
	}

	e.sendProgress(progress, fetchSetlistsUpdate(opts.Year))
	songs, err := e.setlists.FetchSetlistsForYear(ctx, artist.MBID, opts.Year, opts.MaxPages)
	if err != nil {
		return nil, err
	}
	if len(songs) == 0 {
		return nil, fmt.Errorf("%w: no songs found for %s in %d", shared.ErrNoData, artist.Name, opts.Year)
	}

	result := &RankResult{
		Artist:       artist,
		Year:         opts.Year,
		Performances: len(songs),
		Ranked:       ranking.Top(songs, opts.Tracks),
	}
	e.sendProgress(progress, rankedUpdate(result.Performances, len(result.Ranked)))
	return result, nil
}

// Publish finds the playlist named after rank (case-insensitively) or creates it,
// then adds every track the ranked songs resolve to.
//
// Queries already resolved by a previous sync are taken from the cache without searching.
// Failed searches are logged and recorded in the result; they never abort the batch.
// Cancellation or a failed add returns no result.
// Persistence through the cacher and recorder is best effort.
func (e *PlaylistEngine) Publish(ctx context.Context, rank *RankResult, opts PublishOpts, progress chan<- ProgressUpdate) (*SyncResult, error) {
	if e.streaming == nil {
		return nil, fmt.Errorf("%w: streaming service not initialized", shared.ErrServiceUnavailable)
	}
	if rank == nil || len(rank.Ranked) == 0 {
		return nil, fmt.Errorf("%w: nothing to publish", shared.ErrNoData)
	}

	title := rank.Title()
	result := &SyncResult{Rank: rank}

	e.sendProgress(progress, findPlaylistUpdate(title))
	if pl := e.findPlaylist(ctx, title); pl != nil {
		result.Playlist = pl
		result.Existing = true
	} else {
		pl, err := e.streaming.CreatePlaylist(ctx, title, rank.Description(), opts.Public)
		if err != nil {
			return nil, fmt.Errorf("failed to create playlist: %w", err)
		}
		result.Playlist = pl
	}
	e.sendProgress(progress, playlistReadyUpdate(result.Playlist, result.Existing))

	queries := rank.Queries()
	limiter := rate.NewLimiter(rate.Limit(e.searchRate), 1)
	result.Matches = make([]TrackMatch, len(queries))

	for i, query := range queries {
		result.Matches[i] = TrackMatch{Query: query, Song: rank.Ranked[i].Title}
		if track, ok := e.cachedTrack(query); ok {
			e.logger.Debug("track cache hit", "query", query, "id", track.ID)
			result.Matches[i].Track = track
			continue
		}

		if err := limiter.Wait(ctx); err != nil {
			return nil, err
		}
		e.sendProgress(progress, searchTrackUpdate(i+1, len(queries), query))

		track, err := e.streaming.SearchTrack(ctx, query)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			e.logger.Warn("track search failed", "query", query, "error", err)
			result.Matches[i].Err = err
			continue
		}
		result.Matches[i].Track = track
		e.cacheTrack(query, *track)
	}

	if ids := result.VideoIDs(); len(ids) > 0 {
		e.sendProgress(progress, addTracksUpdate(len(ids)))
		if err := e.streaming.AddTracks(ctx, result.Playlist.ID, ids); err != nil {
			return nil, fmt.Errorf("failed to add tracks to %q: %w", result.Playlist.Name, err)
		}
	} else {
		e.logger.Warn("no tracks matched", "playlist", title)
	}

	e.recordRun(result, progress)
	return result, nil
}

// Run ranks and publishes in one step.
func (e *PlaylistEngine) Run(ctx context.Context, opts RankOpts, pub PublishOpts, progress chan<- ProgressUpdate) (*SyncResult, error) {
	rank, err := e.Rank(ctx, opts, progress)
	if err != nil {
		return nil, err
	}
	return e.Publish(ctx, rank, pub, progress)
}

// findPlaylist returns the library playlist titled title, ignoring case.
// A failed listing is logged and treated as no match.
func (e *PlaylistEngine) findPlaylist(ctx context.Context, title string) *models.Playlist {
	playlists, err := e.streaming.GetPlaylists(ctx)
	if err != nil {
		e.logger.Warn("could not list playlists, a new one will be created", "error", err)
		return nil
	}

	for _, pl := range playlists {
		if strings.EqualFold(pl.Name, title) {
			return &pl
		}
	}
	return nil
}

func (e *PlaylistEngine) cachedTrack(query string) (*models.Track, bool) {
	if e.cache == nil {
		return nil, false
	}
	return e.cache.CachedTrack(e.streaming.Name(), query)
}

func (e *PlaylistEngine) cacheTrack(query string, track models.Track) {
	if e.cache == nil {
		return
	}
	if err := e.cache.CacheTrack(e.streaming.Name(), query, track); err != nil {
		e.logger.Warn("failed to cache track", "query", query, "error", err)
	}
}

func (e *PlaylistEngine) recordRun(result *SyncResult, progress chan<- ProgressUpdate) {
	if e.recorder == nil {
		return
	}
	e.sendProgress(progress, recordRunUpdate())

	run := models.NewSyncRun(0, result.Rank.Artist, result.Rank.Year)
	run.SetPlaylist(result.Playlist.ID, result.Playlist.Name)
	run.SetCounts(result.Rank.Performances, len(result.Rank.Ranked), len(result.VideoIDs()))

	if err := e.recorder.RecordRun(run); err != nil {
		e.logger.Warn("failed to record sync run", "error", err)
	}
}
