package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/setlistsync/internal/models"
	"github.com/desertthunder/setlistsync/internal/shared"
)

const syncRunColumns = `id, sequence, artist_name, artist_mbid, year, playlist_id, playlist_title,
	performances, ranked, matched, created_at, updated_at, deleted_at`

// SyncRunRepository implements models.Repository[*models.SyncRun] for sync history.
type SyncRunRepository struct {
	db *sql.DB
}

// NewSyncRunRepository creates a new SyncRunRepository with the given database connection
func NewSyncRunRepository(db *sql.DB) *SyncRunRepository {
	return &SyncRunRepository{db: db}
}

// Create inserts a new run with generated ID and sequence
func (r *SyncRunRepository) Create(run *models.SyncRun) error {
	if err := run.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "sync_runs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	run.SetID(id)
	run.SetSequence(sequence)

	query := `
		INSERT INTO sync_runs (` + syncRunColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		run.ArtistName(),
		run.ArtistMBID(),
		run.Year(),
		run.PlaylistID(),
		run.PlaylistTitle(),
		run.Performances(),
		run.Ranked(),
		run.Matched(),
		run.CreatedAt(),
		run.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert sync run: %w", err)
	}
	return nil
}

// RecordRun stores a finished run. It lets the repository act as the engine's run recorder.
func (r *SyncRunRepository) RecordRun(run *models.SyncRun) error {
	return r.Create(run)
}

// Get retrieves a run by ID, excluding soft-deleted runs
func (r *SyncRunRepository) Get(id string) (*models.SyncRun, error) {
	query := `SELECT ` + syncRunColumns + ` FROM sync_runs WHERE id = ? AND deleted_at IS NULL`

	run, err := r.scan(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("sync run %w: %s", errNotFound, id)
	}
	return run, err
}

// Update rewrites the playlist and counts of an existing run
func (r *SyncRunRepository) Update(run *models.SyncRun) error {
	if err := run.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	run.SetUpdatedAt(now)

	query := `
		UPDATE sync_runs
		SET playlist_id = ?, playlist_title = ?, performances = ?, ranked = ?, matched = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		run.PlaylistID(),
		run.PlaylistTitle(),
		run.Performances(),
		run.Ranked(),
		run.Matched(),
		now,
		run.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update sync run: %w", err)
	}
	return checkAffected(result, "sync run", run.ID())
}

// Delete soft-deletes a run by ID
func (r *SyncRunRepository) Delete(id string) error {
	result, err := r.db.Exec(`UPDATE sync_runs SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete sync run: %w", err)
	}
	return checkAffected(result, "sync run", id)
}

// List retrieves runs newest first.
//
// Recognized criteria: "artist_mbid" (string), "year" (int) and "limit" (int).
func (r *SyncRunRepository) List(criteria map[string]any) ([]*models.SyncRun, error) {
	query := `SELECT ` + syncRunColumns + ` FROM sync_runs WHERE deleted_at IS NULL`
	args := []any{}

	if mbid, ok := criteria["artist_mbid"].(string); ok && mbid != "" {
		query += " AND artist_mbid = ?"
		args = append(args, mbid)
	}

	if year, ok := criteria["year"].(int); ok && year > 0 {
		query += " AND year = ?"
		args = append(args, year)
	}

	query += " ORDER BY sequence DESC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sync runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.SyncRun
	for rows.Next() {
		run, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return runs, nil
}

func (r *SyncRunRepository) scan(row scanner) (*models.SyncRun, error) {
	var (
		id            string
		sequence      int
		artistName    string
		artistMBID    string
		year          int
		playlistID    string
		playlistTitle string
		performances  int
		ranked        int
		matched       int
		createdAt     time.Time
		updatedAt     time.Time
		deletedAt     sql.NullTime
	)

	err := row.Scan(
		&id, &sequence, &artistName, &artistMBID, &year, &playlistID, &playlistTitle,
		&performances, &ranked, &matched, &createdAt, &updatedAt, &deletedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan sync run: %w", err)
	}

	run := models.NewSyncRun(sequence, models.Artist{Name: artistName, MBID: artistMBID}, year)
	run.SetID(id)
	run.SetPlaylist(playlistID, playlistTitle)
	run.SetCounts(performances, ranked, matched)
	run.SetCreatedAt(createdAt)
	run.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		run.SetDeletedAt(&deletedAt.Time)
	}
	return run, nil
}
