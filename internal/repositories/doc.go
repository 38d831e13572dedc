// Package repositories implements SQLite persistence for sync history and resolved tracks.
//
// Each repository handles CRUD operations with atomic sequence generation for human-readable ordering.
// All repositories support soft deletes via deleted_at timestamps and exclude deleted records from queries by default.
//
// Key Implementations:
//   - [SyncRunRepository] : Published playlists with the counts behind them, newest first
//   - [TrackRepository] : Search query to video resolutions, unique per service + video ID
//   - [TrackCacheAdapter] : Fire-and-forget caching used by the sync engine
//
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
