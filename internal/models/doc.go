// Package models defines domain entities and persistence interfaces for setlistsync.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs passed between the setlist.fm client, the sync engine and the streaming service
//   - [Artist] : Minimal identity of a setlist.fm artist (display name + MusicBrainz ID)
//   - [Playlist] : Basic playlist metadata from the streaming service
//   - [Track] : A streaming track resolved from a search query
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [SyncRun] : One published playlist and the numbers behind it
//   - [PersistedTrack] : A resolved search query cached for later inspection
//
// All persistent entities implement the [Model] interface providing ID, timestamps and validation.
// The [Repository] interface defines standard CRUD operations for database access.
package models
