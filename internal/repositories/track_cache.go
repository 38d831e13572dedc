package repositories

import (
	"fmt"
	"strings"

	"github.com/desertthunder/setlistsync/internal/models"
)

// TrackCacheAdapter implements tasks.TrackCacher using TrackRepository.
//
// Duplicate tracks are silently ignored (UNIQUE constraint violations).
// Lookups that fail for any reason count as a miss.
type TrackCacheAdapter struct {
	repo *TrackRepository
}

// NewTrackCacheAdapter creates a new TrackCacheAdapter with the given repository
func NewTrackCacheAdapter(repo *TrackRepository) *TrackCacheAdapter {
	return &TrackCacheAdapter{repo: repo}
}

// CacheTrack stores the track a query resolved to on a service.
// Returns nil if the track already exists.
func (a *TrackCacheAdapter) CacheTrack(service, query string, track models.Track) error {
	if existing, err := a.repo.GetByServiceID(service, track.ID); err == nil && existing != nil {
		return nil
	}

	if err := a.repo.Create(models.NewPersistedTrack(0, service, query, track)); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil
		}
		return fmt.Errorf("failed to cache track: %w", err)
	}
	return nil
}

// CachedTrack returns the track a previous sync resolved query to on service.
func (a *TrackCacheAdapter) CachedTrack(service, query string) (*models.Track, bool) {
	found, err := a.repo.GetByQuery(service, query)
	if err != nil {
		return nil, false
	}
	track := found.Track()
	return &track, true
}
