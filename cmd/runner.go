package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/setlistsync/internal/repositories"
	"github.com/desertthunder/setlistsync/internal/services"
	"github.com/desertthunder/setlistsync/internal/setlistfm"
	"github.com/desertthunder/setlistsync/internal/shared"
	"github.com/desertthunder/setlistsync/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Bounds accepted by --tracks and --year.
const (
	minTracks = 1
	maxTracks = 100
	minYear   = 1950
	maxYear   = 2030
)

// SetlistClient is the part of [setlistfm.Client] the commands use.
type SetlistClient interface {
	tasks.SetlistSource
	SearchArtists(ctx context.Context, name string) ([]setlistfm.Artist, error)
	Setlists(ctx context.Context, mbid string, page int) (*setlistfm.SetlistPage, error)
	Raw(ctx context.Context, path string) ([]byte, error)
}

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	setlists   SetlistClient
	youtube    services.Service
	db         *sql.DB
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer

	ytReady      bool
	ownsSetlists bool // setlists was built from the config
	ownsYouTube  bool // youtube was built from the config
}

// RunnerOpts contains configuration options for creating a Runner.
//
// A nil Config is resolved from the --config flag when a command runs.
// Nil clients are built from the config.
type RunnerOpts struct {
	Config     *shared.Config
	Setlists   SetlistClient
	YouTube    services.Service
	DB         *sql.DB
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		setlists:   opts.Setlists,
		youtube:    opts.YouTube,
		db:         opts.DB,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

func (r *Runner) app() *cli.Command {
	return &cli.Command{
		Name:    "setlistsync",
		Usage:   "Build YouTube Music playlists from the songs an artist played live",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
		},
		Before:   r.Before,
		Commands: r.register(),
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		syncCommand, setlistCommand, ytmusicCommand, historyCommand, cacheCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Before resolves the configuration and builds the clients that were not injected.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool("verbose") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}

	if r.config == nil {
		config, err := shared.ResolveConfig(cmd.String("config"))
		if err != nil {
			return ctx, err
		}
		r.config = config
		r.logger.Debug("configuration loaded", "path", cmd.String("config"))
	}

	r.buildClients()
	return ctx, nil
}

// buildClients creates the setlist.fm and YouTube Music clients that were not injected.
func (r *Runner) buildClients() {
	if r.setlists == nil {
		r.setlists = setlistfm.NewClient(setlistfm.ClientOpts{
			APIKey:      r.config.SetlistFM.APIKey,
			Language:    r.config.SetlistFM.Language,
			BaseURL:     r.config.SetlistFM.BaseURL,
			UserAgent:   "setlistsync/" + Version,
			HTTPClient:  r.httpClient,
			BaseDelay:   r.config.RequestDelay(),
			MaxAttempts: r.config.SetlistFM.MaxAttempts,
			Logger:      shared.WithLogger(r.logger, "component", "setlistfm"),
		})
		r.ownsSetlists = true
	}
	if r.youtube == nil {
		r.youtube = services.NewYouTubeService(r.config.YouTube.ProxyURL, shared.WithLogger(r.logger, "component", "ytmusic"))
		r.ownsYouTube = true
	}
}

// Close releases the database connection, if one was opened.
func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

// database opens and migrates the configured database on first use.
func (r *Runner) database() (*sql.DB, error) {
	if r.db != nil {
		return r.db, nil
	}
	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return nil, err
	}
	r.db = db
	return db, nil
}

// authYouTube validates the YouTube Music settings and authenticates once per process.
func (r *Runner) authYouTube(ctx context.Context) error {
	if r.ytReady {
		return nil
	}
	if err := r.config.ValidateYouTube(); err != nil {
		return err
	}

	err := r.youtube.Authenticate(ctx, map[string]string{
		services.CredOAuthFile:    r.config.YouTube.OAuthFile,
		services.CredClientID:     r.config.YouTube.ClientID,
		services.CredClientSecret: r.config.YouTube.ClientSecret,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrAuthFailed, err)
	}
	r.ytReady = true
	return nil
}

// newEngine builds a sync engine. Publishing engines also get the streaming
// service and, when the database opens, the track cache and run history.
func (r *Runner) newEngine(ctx context.Context, publish bool) (*tasks.PlaylistEngine, error) {
	if err := r.config.ValidateSetlistFM(); err != nil {
		return nil, err
	}

	opts := tasks.EngineOpts{
		Setlists:   r.setlists,
		SearchRate: r.config.Sync.SearchRate,
		Logger:     shared.WithLogger(r.logger, "component", "engine"),
	}

	if publish {
		if err := r.authYouTube(ctx); err != nil {
			return nil, err
		}
		opts.Streaming = r.youtube

		if db, err := r.database(); err != nil {
			r.logger.Warn("sync history disabled", "error", err)
		} else {
			opts.Cache = repositories.NewTrackCacheAdapter(repositories.NewTrackRepository(db))
			opts.Recorder = repositories.NewSyncRunRepository(db)
		}
	}
	return tasks.NewPlaylistEngine(opts), nil
}

// progressPrinter prints engine updates until the returned stop func is called.
func (r *Runner) progressPrinter() (chan<- tasks.ProgressUpdate, func()) {
	ch := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for update := range ch {
			r.writePlain("%s %s\n", phaseIcon(update.Phase), update.Message)
		}
	}()

	return ch, func() {
		close(ch)
		<-done
	}
}

func phaseIcon(p tasks.Phase) string {
	switch p {
	case tasks.SearchArtist:
		return "🔍"
	case tasks.FetchSetlists:
		return "📋"
	case tasks.RankSongs:
		return "📊"
	case tasks.FindPlaylist, tasks.CreatePlaylist:
		return "🎧"
	case tasks.AddTracks:
		return "➕"
	case tasks.RecordRun:
		return "💾"
	case tasks.WriteReport:
		return "📝"
	default:
		return "  "
	}
}

func validateTracks(n int) error {
	if n < minTracks || n > maxTracks {
		return fmt.Errorf("%w: --tracks must be between %d and %d, got %d", shared.ErrInvalidFlag, minTracks, maxTracks, n)
	}
	return nil
}

func validateYear(year int) error {
	if year < minYear || year > maxYear {
		return fmt.Errorf("%w: --year must be between %d and %d, got %d", shared.ErrInvalidFlag, minYear, maxYear, year)
	}
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

// SetLogger replaces the logger used by subsequent actions and rebuilds the clients created from the config.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
	if r.config == nil {
		return
	}
	if r.ownsSetlists {
		r.setlists = nil
	}
	if r.ownsYouTube {
		r.youtube = nil
		r.ytReady = false
	}
	r.buildClients()
}
