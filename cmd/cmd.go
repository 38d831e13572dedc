// submodule cmd contains command definitions
package main

import (
	"github.com/desertthunder/setlistsync/internal/formatter"
	"github.com/desertthunder/setlistsync/internal/ranking"
	"github.com/urfave/cli/v3"
)

func artistFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "artist",
		Aliases:  []string{"a"},
		Usage:    "Artist name to search for (e.g. 'Megadeth')",
		Required: true,
	}
}

func yearFlag() cli.Flag {
	return &cli.IntFlag{
		Name:     "year",
		Aliases:  []string{"y"},
		Usage:    "Year to fetch setlists from (e.g. 2024)",
		Required: true,
	}
}

func tracksFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "tracks",
		Aliases: []string{"n"},
		Usage:   "Number of top tracks to include (1-100)",
		Value:   ranking.DefaultLimit,
	}
}

func maxPagesFlag() cli.Flag {
	return &cli.IntFlag{
		Name:  "max-pages",
		Usage: "Maximum setlist pages to fetch (0 uses the configured value)",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: json, csv, markdown, txt",
		Value:   formatter.FormatText,
	}
}

func jsonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print output",
			Value: true,
		},
	}
}

// syncCommand builds or updates the playlist for an artist and year
func syncCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Create a YouTube Music playlist from an artist's most played live songs",
		Flags: []cli.Flag{
			artistFlag(),
			yearFlag(),
			tracksFlag(),
			maxPagesFlag(),
			&cli.BoolFlag{
				Name:  "public",
				Usage: "Make a newly created playlist public (default from config)",
			},
			&cli.BoolFlag{
				Name:    "interactive",
				Aliases: []string{"i"},
				Usage:   "Review the ranking in a terminal UI before publishing",
			},
		},
		Action: r.Sync,
	}
}

// setlistCommand handles setlist.fm lookups that do not touch YouTube Music
func setlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "setlist",
		Aliases: []string{"sl"},
		Usage:   "setlist.fm operations",
		Commands: []*cli.Command{
			{
				Name:  "artist",
				Usage: "Search artists and show which one would be selected",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Flags:  jsonFlags(),
				Action: r.SetlistArtist,
			},
			{
				Name:   "songs",
				Usage:  "List every song performance of an artist in a year",
				Flags:  append([]cli.Flag{artistFlag(), yearFlag(), maxPagesFlag()}, jsonFlags()...),
				Action: r.SetlistSongs,
			},
			{
				Name:  "top",
				Usage: "Rank the most played songs of an artist in a year",
				Flags: []cli.Flag{
					artistFlag(),
					yearFlag(),
					tracksFlag(),
					maxPagesFlag(),
					formatFlag(),
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write the report to a file instead of stdout",
					},
				},
				Action: r.SetlistTop,
			},
			{
				Name:  "report",
				Usage: "Write one ranked report per year for a range of years",
				Flags: []cli.Flag{
					artistFlag(),
					&cli.IntFlag{
						Name:     "from",
						Usage:    "First year of the range",
						Required: true,
					},
					&cli.IntFlag{
						Name:     "to",
						Usage:    "Last year of the range",
						Required: true,
					},
					tracksFlag(),
					maxPagesFlag(),
					formatFlag(),
					&cli.StringFlag{
						Name:    "output-dir",
						Aliases: []string{"o"},
						Usage:   "Directory for the reports (default: <artist>_report_<epoch>)",
					},
				},
				Action: r.SetlistReport,
			},
			{
				Name:  "page",
				Usage: "Fetch a single page of an artist's setlists",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "mbid",
						Usage:    "MusicBrainz ID of the artist",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "page",
						Usage: "Page number, starting at 1",
						Value: 1,
					},
				}, jsonFlags()...),
				Action: r.SetlistPage,
			},
			{
				Name:  "raw",
				Usage: "GET an API path and print the raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Action: r.SetlistRaw,
			},
		},
	}
}

// ytmusicCommand handles YouTube Music operations
func ytmusicCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "ytmusic",
		Aliases: []string{"ytm", "yt"},
		Usage:   "YouTube Music operations",
		Commands: []*cli.Command{
			{
				Name:  "search",
				Usage: "Resolve a query to a YouTube Music track",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Flags:  jsonFlags(),
				Action: r.YTMusicSearch,
			},
			{
				Name:   "playlists",
				Usage:  "List library playlists",
				Flags:  jsonFlags(),
				Action: r.YTMusicPlaylists,
			},
		},
	}
}

// historyCommand lists recorded syncs
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show previous syncs",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:  "mbid",
				Usage: "Only show syncs for this artist",
			},
			&cli.IntFlag{
				Name:  "year",
				Usage: "Only show syncs for this year",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of syncs to show",
				Value: 20,
			},
		}, jsonFlags()...),
		Action: r.History,
	}
}

// cacheCommand inspects the resolved-track cache
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect locally cached data",
		Commands: []*cli.Command{
			{
				Name:  "tracks",
				Usage: "List tracks resolved by previous syncs",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "service",
						Usage: "Only show tracks resolved on this service",
					},
					&cli.StringFlag{
						Name:  "query",
						Usage: "Only show the track a search query resolved to",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of tracks to show",
						Value: 50,
					},
				}, jsonFlags()...),
				Action: r.CacheTracks,
			},
		},
	}
}

// setupCommand handles setup operations for configuration and database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Write a config.toml template to the --config path",
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "rollback",
						Usage: "Roll back the most recently applied migration instead",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}
