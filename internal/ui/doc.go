// Package ui implements an interactive sync using bubbletea's Elm architecture.
//
// The TUI walks through one sync:
//  1. [RankingView] : Spinner while setlists are fetched and ranked
//  2. [SongListView] : Browse the ranked songs with their play counts
//  3. [ConfirmView] : Confirm playlist creation
//  4. [PublishView] : Monitor real-time progress updates
//  5. [ResultView] : Playlist URL, match count and songs that could not be found
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Progress updates flow through a channel from the sync engine, providing non-blocking status reporting while publishing.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, r, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
