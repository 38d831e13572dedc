package tasks

import (
	"fmt"

	"github.com/desertthunder/setlistsync/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	SearchArtist Phase = iota
	FetchSetlists
	RankSongs
	FindPlaylist
	CreatePlaylist
	SearchTracks
	AddTracks
	RecordRun
	WriteReport
)

func (p Phase) String() string {
	switch p {
	case SearchArtist:
		return "search_artist"
	case FetchSetlists:
		return "fetch_setlists"
	case RankSongs:
		return "rank_songs"
	case FindPlaylist:
		return "find_playlist"
	case CreatePlaylist:
		return "create_playlist"
	case SearchTracks:
		return "search_tracks"
	case AddTracks:
		return "add_tracks"
	case RecordRun:
		return "record_run"
	case WriteReport:
		return "write_report"
	default:
		return ""
	}
}

func searchArtistUpdate(name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SearchArtist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Searching for artist: %s", name),
	}
}

func foundArtistUpdate(artist *models.Artist) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SearchArtist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found: %s", artist.Name),
		Data:    artist,
	}
}

func fetchSetlistsUpdate(year int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSetlists,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetching setlists for %d...", year),
	}
}

func rankedUpdate(performances, ranked int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RankSongs,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d song performances, top %d selected", performances, ranked),
	}
}

func findPlaylistUpdate(title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FindPlaylist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Looking for playlist: %s", title),
	}
}

func playlistReadyUpdate(pl *models.Playlist, existing bool) ProgressUpdate {
	msg := fmt.Sprintf("Playlist created: %s (ID: %s)", pl.Name, pl.ID)
	if existing {
		msg = fmt.Sprintf("Updating existing playlist: %s (ID: %s)", pl.Name, pl.ID)
	}
	return ProgressUpdate{
		Phase:   CreatePlaylist,
		Step:    1,
		Total:   1,
		Message: msg,
		Data:    pl,
	}
}

func searchTrackUpdate(step, total int, query string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SearchTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s", step, total, query),
	}
}

func addTracksUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AddTracks,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Adding %d tracks...", count),
	}
}

func recordRunUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   RecordRun,
		Step:    1,
		Total:   1,
		Message: "Saving sync history...",
	}
}

func reportYearUpdate(step, total, year int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteReport,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Ranking %d...", step, total, year),
	}
}

func reportCompletedUpdate(step, total, year int, file string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteReport,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %d → %s", step, total, year, file),
	}
}

func reportFailedUpdate(step, total, year int, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteReport,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %d: %v", step, total, year, err),
	}
}
