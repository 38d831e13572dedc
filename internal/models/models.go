// package models defines the data model for the setlist sync service
package models

import (
	"time"
)

// Model defines the base interface for all persistent models.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// Artist is the minimal identity record of a setlist.fm artist.
type Artist struct {
	Name string `json:"name"`
	MBID string `json:"mbid"`
}

// Playlist represents a playlist on the streaming service.
type Playlist struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	TrackCount  int    `json:"track_count"`
	Public      bool   `json:"public"`
}

// Track represents a streaming track (video) resolved from a search.
type Track struct {
	ID       string `json:"id"` // platform video ID
	Title    string `json:"title"`
	Artist   string `json:"artist,omitempty"`
	Album    string `json:"album,omitempty"`
	Duration int    `json:"duration,omitempty"` // Duration in seconds
}

// record holds the fields shared by persisted entities.
type record struct {
	id        string
	sequence  int
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

func newRecord(sequence int) record {
	now := time.Now()
	return record{sequence: sequence, createdAt: now, updatedAt: now}
}

func (r *record) ID() string { return r.id }

func (r *record) Sequence() int { return r.sequence }

func (r *record) CreatedAt() time.Time { return r.createdAt }

func (r *record) UpdatedAt() time.Time { return r.updatedAt }

func (r *record) DeletedAt() *time.Time { return r.deletedAt }

func (r *record) SetID(id string) { r.id = id }

func (r *record) SetSequence(sequence int) { r.sequence = sequence }

func (r *record) SetCreatedAt(t time.Time) { r.createdAt = t }

func (r *record) SetUpdatedAt(t time.Time) { r.updatedAt = t }

func (r *record) SetDeletedAt(t *time.Time) { r.deletedAt = t }

// IsDeleted reports whether the entity has been soft-deleted.
func (r *record) IsDeleted() bool { return r.deletedAt != nil }
