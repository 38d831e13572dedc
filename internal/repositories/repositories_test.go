package repositories

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/desertthunder/setlistsync/internal/models"
	"github.com/desertthunder/setlistsync/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	shared.ConfigureDatabase(db, 1, 1)

	if _, err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

var radiohead = models.Artist{Name: "Radiohead", MBID: "a74b1b7f-71a5-4011-9441-d0b5e4122711"}

func newRun(year int) *models.SyncRun {
	run := models.NewSyncRun(0, radiohead, year)
	run.SetPlaylist("PL123", "Radiohead – Top 20 Live (2024, setlist.fm)")
	run.SetCounts(240, 20, 19)
	return run
}

func TestSyncRunRepository(t *testing.T) {
	t.Run("Create & Get", func(t *testing.T) {
		repo := NewSyncRunRepository(setupTestDB(t))
		run := newRun(2024)

		if err := repo.Create(run); err != nil {
			t.Fatalf("failed to create run: %v", err)
		}
		if run.ID() == "" {
			t.Error("run ID should be set after creation")
		}
		if run.Sequence() != 1 {
			t.Errorf("expected sequence 1, got %d", run.Sequence())
		}

		got, err := repo.Get(run.ID())
		if err != nil {
			t.Fatalf("failed to get run: %v", err)
		}
		if got.Artist() != radiohead {
			t.Errorf("expected artist %+v, got %+v", radiohead, got.Artist())
		}
		if got.PlaylistID() != "PL123" || got.Matched() != 19 || got.Performances() != 240 {
			t.Errorf("unexpected run %+v", got)
		}
	})

	t.Run("RecordRun", func(t *testing.T) {
		repo := NewSyncRunRepository(setupTestDB(t))
		if err := repo.RecordRun(newRun(2023)); err != nil {
			t.Fatalf("RecordRun() error = %v", err)
		}

		runs, err := repo.List(nil)
		if err != nil {
			t.Fatalf("failed to list runs: %v", err)
		}
		if len(runs) != 1 {
			t.Fatalf("expected 1 run, got %d", len(runs))
		}
	})

	t.Run("Update", func(t *testing.T) {
		repo := NewSyncRunRepository(setupTestDB(t))
		run := newRun(2024)
		if err := repo.Create(run); err != nil {
			t.Fatalf("failed to create run: %v", err)
		}

		run.SetCounts(240, 20, 20)
		if err := repo.Update(run); err != nil {
			t.Fatalf("failed to update run: %v", err)
		}

		got, err := repo.Get(run.ID())
		if err != nil {
			t.Fatalf("failed to get run: %v", err)
		}
		if got.Matched() != 20 {
			t.Errorf("expected matched 20, got %d", got.Matched())
		}
	})

	t.Run("List Newest First With Filters", func(t *testing.T) {
		repo := NewSyncRunRepository(setupTestDB(t))
		for _, year := range []int{2022, 2023, 2024} {
			if err := repo.Create(newRun(year)); err != nil {
				t.Fatalf("failed to create run: %v", err)
			}
		}

		runs, err := repo.List(map[string]any{})
		if err != nil {
			t.Fatalf("failed to list runs: %v", err)
		}
		if len(runs) != 3 || runs[0].Year() != 2024 || runs[2].Year() != 2022 {
			t.Fatalf("expected runs newest first, got %d runs", len(runs))
		}

		limited, err := repo.List(map[string]any{"limit": 2})
		if err != nil {
			t.Fatalf("failed to list runs: %v", err)
		}
		if len(limited) != 2 {
			t.Errorf("expected 2 runs, got %d", len(limited))
		}

		byYear, err := repo.List(map[string]any{"year": 2023, "artist_mbid": radiohead.MBID})
		if err != nil {
			t.Fatalf("failed to list runs: %v", err)
		}
		if len(byYear) != 1 || byYear[0].Year() != 2023 {
			t.Errorf("expected one 2023 run, got %d", len(byYear))
		}
	})
}

func TestSyncRunRepositoryErrors(t *testing.T) {
	t.Run("ValidationError", func(t *testing.T) {
		repo := NewSyncRunRepository(setupTestDB(t))
		if err := repo.Create(models.NewSyncRun(0, models.Artist{}, 2024)); err == nil {
			t.Fatal("expected validation error")
		}
	})

	t.Run("Get NotFound", func(t *testing.T) {
		repo := NewSyncRunRepository(setupTestDB(t))
		if _, err := repo.Get("missing"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Update NotFound", func(t *testing.T) {
		repo := NewSyncRunRepository(setupTestDB(t))
		run := newRun(2024)
		run.SetID("missing")
		if err := repo.Update(run); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Delete Twice", func(t *testing.T) {
		repo := NewSyncRunRepository(setupTestDB(t))
		run := newRun(2024)
		if err := repo.Create(run); err != nil {
			t.Fatalf("failed to create run: %v", err)
		}
		if err := repo.Delete(run.ID()); err != nil {
			t.Fatalf("failed to delete run: %v", err)
		}
		if err := repo.Delete(run.ID()); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound on second delete, got %v", err)
		}

		runs, err := repo.List(nil)
		if err != nil {
			t.Fatalf("failed to list runs: %v", err)
		}
		if len(runs) != 0 {
			t.Errorf("deleted runs should be excluded, got %d", len(runs))
		}
	})
}

func TestTrackRepository(t *testing.T) {
	creep := models.Track{ID: "XFkzRNyygfk", Title: "Creep", Artist: "Radiohead", Duration: 238}

	t.Run("Create & Get", func(t *testing.T) {
		repo := NewTrackRepository(setupTestDB(t))
		track := models.NewPersistedTrack(0, "YouTube Music", "Radiohead - Creep", creep)

		if err := repo.Create(track); err != nil {
			t.Fatalf("failed to create track: %v", err)
		}

		got, err := repo.Get(track.ID())
		if err != nil {
			t.Fatalf("failed to get track: %v", err)
		}
		if got.Track() != creep {
			t.Errorf("expected %+v, got %+v", creep, got.Track())
		}
		if got.Query() != "Radiohead - Creep" {
			t.Errorf("expected query to round trip, got %q", got.Query())
		}
	})

	t.Run("GetByServiceID & GetByQuery", func(t *testing.T) {
		repo := NewTrackRepository(setupTestDB(t))
		if err := repo.Create(models.NewPersistedTrack(0, "YouTube Music", "Radiohead - Creep", creep)); err != nil {
			t.Fatalf("failed to create track: %v", err)
		}

		if _, err := repo.GetByServiceID("YouTube Music", creep.ID); err != nil {
			t.Errorf("GetByServiceID() error = %v", err)
		}
		got, err := repo.GetByQuery("YouTube Music", "Radiohead - Creep")
		if err != nil {
			t.Fatalf("GetByQuery() error = %v", err)
		}
		if got.ServiceID() != creep.ID {
			t.Errorf("expected %s, got %s", creep.ID, got.ServiceID())
		}
	})

	t.Run("Update & List", func(t *testing.T) {
		repo := NewTrackRepository(setupTestDB(t))
		track := models.NewPersistedTrack(0, "YouTube Music", "q", creep)
		if err := repo.Create(track); err != nil {
			t.Fatalf("failed to create track: %v", err)
		}
		track.SetQuery("Radiohead - Creep")
		if err := repo.Update(track); err != nil {
			t.Fatalf("failed to update track: %v", err)
		}

		tracks, err := repo.List(map[string]any{"query": "Radiohead - Creep"})
		if err != nil {
			t.Fatalf("failed to list tracks: %v", err)
		}
		if len(tracks) != 1 {
			t.Errorf("expected 1 track, got %d", len(tracks))
		}
	})
}

func TestTrackRepositoryErrors(t *testing.T) {
	t.Run("DuplicateServiceID", func(t *testing.T) {
		repo := NewTrackRepository(setupTestDB(t))
		track := models.Track{ID: "abc", Title: "Creep"}
		if err := repo.Create(models.NewPersistedTrack(0, "YouTube Music", "a", track)); err != nil {
			t.Fatalf("failed to create first track: %v", err)
		}
		if err := repo.Create(models.NewPersistedTrack(0, "YouTube Music", "b", track)); err == nil {
			t.Fatal("expected unique constraint error")
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := NewTrackRepository(setupTestDB(t))
		if _, err := repo.GetByQuery("YouTube Music", "nothing"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if err := repo.Delete("missing"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestTrackCacheAdapter_CacheTrack(t *testing.T) {
	repo := NewTrackRepository(setupTestDB(t))
	adapter := NewTrackCacheAdapter(repo)
	track := models.Track{ID: "XFkzRNyygfk", Title: "Creep", Artist: "Radiohead"}

	if err := adapter.CacheTrack("YouTube Music", "Radiohead - Creep", track); err != nil {
		t.Fatalf("failed to cache track: %v", err)
	}
	if err := adapter.CacheTrack("YouTube Music", "Radiohead - Creep (live)", track); err != nil {
		t.Fatalf("duplicate cache should be ignored: %v", err)
	}

	tracks, err := repo.List(nil)
	if err != nil {
		t.Fatalf("failed to list tracks: %v", err)
	}
	if len(tracks) != 1 {
		t.Errorf("expected 1 cached track, got %d", len(tracks))
	}

	if err := adapter.CacheTrack("YouTube Music", "q", models.Track{ID: "x"}); err == nil {
		t.Error("expected validation failure for track without title")
	}
}

func TestTrackCacheAdapter_CachedTrack(t *testing.T) {
	adapter := NewTrackCacheAdapter(NewTrackRepository(setupTestDB(t)))
	track := models.Track{ID: "XFkzRNyygfk", Title: "Creep", Artist: "Radiohead"}

	if _, ok := adapter.CachedTrack("YouTube Music", "Radiohead - Creep"); ok {
		t.Fatal("empty cache should miss")
	}
	if err := adapter.CacheTrack("YouTube Music", "Radiohead - Creep", track); err != nil {
		t.Fatalf("failed to cache track: %v", err)
	}

	got, ok := adapter.CachedTrack("YouTube Music", "Radiohead - Creep")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if *got != track {
		t.Errorf("expected %+v, got %+v", track, *got)
	}

	if _, ok := adapter.CachedTrack("Spotify", "Radiohead - Creep"); ok {
		t.Error("lookup should be scoped to the service")
	}
}

func TestNextSequence(t *testing.T) {
	db := setupTestDB(t)
	for want := 1; want <= 3; want++ {
		got, err := NextSequence(db, "tracks")
		if err != nil {
			t.Fatalf("NextSequence() error = %v", err)
		}
		if got != want {
			t.Errorf("expected sequence %d, got %d", want, got)
		}
	}

	if _, err := NextSequence(db, "nonexistent"); err == nil {
		t.Error("expected error for missing sequence table")
	}
}
