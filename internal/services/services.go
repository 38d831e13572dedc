package services

import (
	"context"

	"github.com/desertthunder/setlistsync/internal/models"
)

// Service defines what the sync engine needs from a streaming service.
type Service interface {
	// Authenticate loads credentials for subsequent requests.
	Authenticate(ctx context.Context, credentials map[string]string) error

	// GetPlaylists retrieves the playlists in the user's library.
	GetPlaylists(ctx context.Context) ([]models.Playlist, error)

	// CreatePlaylist creates an empty playlist.
	CreatePlaylist(ctx context.Context, title, description string, public bool) (*models.Playlist, error)

	// AddTracks appends videos to a playlist in the given order.
	AddTracks(ctx context.Context, playlistID string, videoIDs []string) error

	// SearchTrack resolves a free-text query to a single track.
	// Returns an error wrapping [shared.ErrTrackNotFound] when nothing matches.
	SearchTrack(ctx context.Context, query string) (*models.Track, error)

	// Name returns the name of the service (e.g. "YouTube Music")
	Name() string
}

// Credential keys understood by [YouTubeService.Authenticate].
const (
	CredOAuthFile    = "oauth_file"
	CredClientID     = "client_id"
	CredClientSecret = "client_secret"
	CredTokenURL     = "token_url"
)
