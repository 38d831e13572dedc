// Package tasks turns setlist.fm data into YouTube Music playlists with real-time progress reporting.
//
// # Core Operations
//
// The [SyncEngine] interface defines four operations:
//
//  1. [SyncEngine.Rank] : Most played songs of an artist in one year
//     - Resolves the artist name to a MusicBrainz identity
//     - Collects every song performance of the year across setlist pages
//     - Ranks titles by frequency with a deterministic tie-break
//
//  2. [SyncEngine.Publish] : Ranked songs → playlist
//     - Reuses a library playlist with the same title (case-insensitive) or creates a private one
//     - Searches each "<Artist> - <Title>" query, throttled by a rate limiter
//     - Adds matched videos in ranked order, failed searches are reported, not fatal
//
//  3. [SyncEngine.Run] : Rank followed by Publish
//
//  4. [SyncEngine.Report] : One ranked report file per year plus a JSON manifest
//
// # Progress Reporting
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
//
// # Persistence
//
// The optional [TrackCacher] and [RunRecorder] interfaces store resolved tracks and completed syncs
// (see repositories.TrackCacheAdapter and repositories.SyncRunRepository).
// Their errors are logged and never interrupt a sync.
package tasks
