package models

import (
	"fmt"
	"strings"

	"github.com/desertthunder/setlistsync/internal/shared"
)

// SyncRun records one playlist published from an artist's setlists for a year.
type SyncRun struct {
	record
	artistName    string
	artistMBID    string
	year          int
	playlistID    string
	playlistTitle string
	performances  int // song performances counted across matching setlists
	ranked        int // songs selected for the playlist
	matched       int // songs resolved to a video
}

// NewSyncRun creates a SyncRun for the artist and year.
func NewSyncRun(sequence int, artist Artist, year int) *SyncRun {
	return &SyncRun{
		record:     newRecord(sequence),
		artistName: artist.Name,
		artistMBID: artist.MBID,
		year:       year,
	}
}

func (s *SyncRun) ArtistName() string    { return s.artistName }
func (s *SyncRun) ArtistMBID() string    { return s.artistMBID }
func (s *SyncRun) Year() int             { return s.year }
func (s *SyncRun) PlaylistID() string    { return s.playlistID }
func (s *SyncRun) PlaylistTitle() string { return s.playlistTitle }
func (s *SyncRun) Performances() int     { return s.performances }
func (s *SyncRun) Ranked() int           { return s.ranked }
func (s *SyncRun) Matched() int          { return s.matched }

// SetPlaylist records the playlist the run published to.
func (s *SyncRun) SetPlaylist(id, title string) {
	s.playlistID = id
	s.playlistTitle = title
}

// SetCounts records the performance, ranked and matched totals.
func (s *SyncRun) SetCounts(performances, ranked, matched int) {
	s.performances = performances
	s.ranked = ranked
	s.matched = matched
}

// Validate checks that the run identifies an artist and a plausible year.
func (s *SyncRun) Validate() error {
	if strings.TrimSpace(s.artistName) == "" {
		return fmt.Errorf("%w: artist name is required", shared.ErrInvalidInput)
	}
	if s.artistMBID == "" {
		return fmt.Errorf("%w: artist mbid is required", shared.ErrInvalidInput)
	}
	if s.year <= 0 {
		return fmt.Errorf("%w: year must be positive, got %d", shared.ErrInvalidInput, s.year)
	}
	if s.matched > s.ranked {
		return fmt.Errorf("%w: matched (%d) cannot exceed ranked (%d)", shared.ErrInvalidInput, s.matched, s.ranked)
	}
	return nil
}

// Artist returns the run's artist identity.
func (s *SyncRun) Artist() Artist {
	return Artist{Name: s.artistName, MBID: s.artistMBID}
}
