package models

import (
	"fmt"

	"github.com/desertthunder/setlistsync/internal/shared"
)

// PersistedTrack is a streaming track cached together with the query that resolved it.
type PersistedTrack struct {
	record
	service   string
	serviceID string
	query     string
	title     string
	artist    string
	album     string
	duration  int
}

// NewPersistedTrack creates a PersistedTrack from a resolved [Track].
func NewPersistedTrack(sequence int, service, query string, track Track) *PersistedTrack {
	return &PersistedTrack{
		record:    newRecord(sequence),
		service:   service,
		serviceID: track.ID,
		query:     query,
		title:     track.Title,
		artist:    track.Artist,
		album:     track.Album,
		duration:  track.Duration,
	}
}

func (t *PersistedTrack) Service() string   { return t.service }
func (t *PersistedTrack) ServiceID() string { return t.serviceID }
func (t *PersistedTrack) Query() string     { return t.query }
func (t *PersistedTrack) Title() string     { return t.title }
func (t *PersistedTrack) Artist() string    { return t.artist }
func (t *PersistedTrack) Album() string     { return t.album }
func (t *PersistedTrack) Duration() int     { return t.duration }

func (t *PersistedTrack) SetQuery(query string) { t.query = query }

// Track converts back to the DTO form.
func (t *PersistedTrack) Track() Track {
	return Track{ID: t.serviceID, Title: t.title, Artist: t.artist, Album: t.album, Duration: t.duration}
}

func (t *PersistedTrack) Validate() error {
	if t.service == "" {
		return fmt.Errorf("%w: service is required", shared.ErrInvalidInput)
	}
	if t.serviceID == "" {
		return fmt.Errorf("%w: service id is required", shared.ErrInvalidInput)
	}
	if t.title == "" {
		return fmt.Errorf("%w: title is required", shared.ErrInvalidInput)
	}
	if t.duration < 0 {
		return fmt.Errorf("%w: duration cannot be negative", shared.ErrInvalidInput)
	}
	return nil
}
