package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/setlistsync/internal/models"
	"github.com/desertthunder/setlistsync/internal/shared"
)

const trackColumns = `id, sequence, service, service_id, query, title, artist, album, duration, created_at, updated_at, deleted_at`

// TrackRepository implements models.Repository[*models.PersistedTrack] for resolved tracks.
//
// A (service, service_id) pair is unique: the same video resolved by two queries keeps the first query.
type TrackRepository struct {
	db *sql.DB
}

// NewTrackRepository creates a new TrackRepository with the given database connection
func NewTrackRepository(db *sql.DB) *TrackRepository {
	return &TrackRepository{db: db}
}

// Create inserts a new [models.PersistedTrack] into the database with generated ID and sequence
func (r *TrackRepository) Create(track *models.PersistedTrack) error {
	if err := track.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "tracks")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	track.SetID(id)
	track.SetSequence(sequence)

	query := `
		INSERT INTO tracks (id, sequence, service, service_id, query, title, artist, album, duration, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		track.Service(),
		track.ServiceID(),
		track.Query(),
		track.Title(),
		track.Artist(),
		track.Album(),
		track.Duration(),
		track.CreatedAt(),
		track.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert track: %w", err)
	}
	return nil
}

// Get retrieves a track by ID, excluding soft-deleted tracks
func (r *TrackRepository) Get(id string) (*models.PersistedTrack, error) {
	query := `SELECT ` + trackColumns + ` FROM tracks WHERE id = ? AND deleted_at IS NULL`
	return r.scanOne(r.db.QueryRow(query, id), id)
}

// GetByServiceID retrieves a track by service and service_id
func (r *TrackRepository) GetByServiceID(service, serviceID string) (*models.PersistedTrack, error) {
	query := `SELECT ` + trackColumns + ` FROM tracks WHERE service = ? AND service_id = ? AND deleted_at IS NULL`
	return r.scanOne(r.db.QueryRow(query, service, serviceID), serviceID)
}

// GetByQuery retrieves the most recent track a search query resolved to on service
func (r *TrackRepository) GetByQuery(service, query string) (*models.PersistedTrack, error) {
	stmt := `SELECT ` + trackColumns + ` FROM tracks WHERE service = ? AND query = ? AND deleted_at IS NULL ORDER BY sequence DESC LIMIT 1`
	return r.scanOne(r.db.QueryRow(stmt, service, query), query)
}

// Update modifies an existing track in the database
func (r *TrackRepository) Update(track *models.PersistedTrack) error {
	if err := track.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	track.SetUpdatedAt(now)

	query := `
		UPDATE tracks
		SET query = ?, title = ?, artist = ?, album = ?, duration = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		track.Query(),
		track.Title(),
		track.Artist(),
		track.Album(),
		track.Duration(),
		now,
		track.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update track: %w", err)
	}
	return checkAffected(result, "track", track.ID())
}

// Delete soft-deletes a track by ID
func (r *TrackRepository) Delete(id string) error {
	result, err := r.db.Exec(`UPDATE tracks SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete track: %w", err)
	}
	return checkAffected(result, "track", id)
}

// List retrieves all tracks matching the given criteria, excluding soft-deleted tracks
//
// Recognized criteria: "service" (string), "query" (string) and "limit" (int).
func (r *TrackRepository) List(criteria map[string]any) ([]*models.PersistedTrack, error) {
	query := `SELECT ` + trackColumns + ` FROM tracks WHERE deleted_at IS NULL`
	args := []any{}

	if service, ok := criteria["service"].(string); ok && service != "" {
		query += " AND service = ?"
		args = append(args, service)
	}

	if q, ok := criteria["query"].(string); ok && q != "" {
		query += " AND query = ?"
		args = append(args, q)
	}

	query += " ORDER BY sequence ASC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks: %w", err)
	}
	defer rows.Close()

	var tracks []*models.PersistedTrack
	for rows.Next() {
		track, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, track)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return tracks, nil
}

// scanOne scans a single [sql.Row], mapping no rows to a not-found error naming key
func (r *TrackRepository) scanOne(row *sql.Row, key string) (*models.PersistedTrack, error) {
	track, err := r.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("track %w: %s", errNotFound, key)
	}
	return track, err
}

func (r *TrackRepository) scan(row scanner) (*models.PersistedTrack, error) {
	var (
		id        string
		sequence  int
		service   string
		serviceID string
		query     string
		title     string
		artist    string
		album     string
		duration  int
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := row.Scan(&id, &sequence, &service, &serviceID, &query, &title, &artist, &album, &duration, &createdAt, &updatedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan track: %w", err)
	}

	dto := models.Track{
		ID:       serviceID,
		Title:    title,
		Artist:   artist,
		Album:    album,
		Duration: duration,
	}

	track := models.NewPersistedTrack(sequence, service, query, dto)
	track.SetID(id)
	track.SetCreatedAt(createdAt)
	track.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		track.SetDeletedAt(&deletedAt.Time)
	}
	return track, nil
}
