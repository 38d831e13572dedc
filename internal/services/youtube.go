package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/setlistsync/internal/models"
	"github.com/desertthunder/setlistsync/internal/shared"
	"golang.org/x/oauth2"
)

const (
	defaultYTBaseURL = "http://127.0.0.1:8080"
	googleTokenURL   = "https://oauth2.googleapis.com/token"
	youtubeScope     = "https://www.googleapis.com/auth/youtube"

	// PlaylistURL is the public web address of a playlist, formatted with its ID.
	PlaylistURL = "https://music.youtube.com/playlist?list=%s"

	libraryLimit = 200
)

// YouTubeArtist represents an artist in YouTube Music responses.
type YouTubeArtist struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

type youtubeAlbum struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// YouTubeTrack represents a song or video search result.
type YouTubeTrack struct {
	VideoID     string          `json:"videoId"`
	Title       string          `json:"title"`
	Artists     []YouTubeArtist `json:"artists"`
	Album       *youtubeAlbum   `json:"album"`
	Duration    string          `json:"duration"`
	DurationSec int             `json:"duration_seconds"`
	ResultType  string          `json:"resultType"`
}

// Track converts the result to a [models.Track].
func (t YouTubeTrack) Track() models.Track {
	track := models.Track{ID: t.VideoID, Title: t.Title, Duration: t.DurationSec}
	if len(t.Artists) > 0 {
		track.Artist = t.Artists[0].Name
	}
	if t.Album != nil {
		track.Album = t.Album.Name
	}
	return track
}

// tokenFile is the token file written by `ytmusicapi oauth`.
type tokenFile struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresAt    int64  `json:"expires_at"`
	Scope        string `json:"scope"`
}

// LoadToken reads an oauth.json token file.
func LoadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read token file: %w", shared.ErrMissingCredentials, err)
	}

	var tf tokenFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("%w: invalid token file %s: %w", shared.ErrInvalidCredentials, path, err)
	}
	if tf.AccessToken == "" && tf.RefreshToken == "" {
		return nil, fmt.Errorf("%w: token file %s has no tokens", shared.ErrInvalidCredentials, path)
	}

	token := &oauth2.Token{
		AccessToken:  tf.AccessToken,
		RefreshToken: tf.RefreshToken,
		TokenType:    tf.TokenType,
	}
	if tf.ExpiresAt > 0 {
		token.Expiry = time.Unix(tf.ExpiresAt, 0)
	}
	return token, nil
}

// YouTubeService implements the Service interface for YouTube Music via proxy.
type YouTubeService struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// NewYouTubeService creates a new YouTube Music service instance.
//
// Requests are unauthenticated until [YouTubeService.Authenticate] succeeds.
func NewYouTubeService(baseURL string, logger *log.Logger) *YouTubeService {
	if baseURL == "" {
		baseURL = defaultYTBaseURL
	}
	if logger == nil {
		logger = shared.DiscardLogger()
	}

	return &YouTubeService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		logger:     logger,
	}
}

// Name returns the service name.
func (y *YouTubeService) Name() string {
	return "YouTube Music"
}

// Authenticate builds an OAuth2 client from the token file and client credentials.
//
// Requires [CredOAuthFile], [CredClientID] and [CredClientSecret]; [CredTokenURL] overrides
// Google's token endpoint. The base transport can be supplied via the [oauth2.HTTPClient] context key.
func (y *YouTubeService) Authenticate(ctx context.Context, credentials map[string]string) error {
	for _, key := range []string{CredOAuthFile, CredClientID, CredClientSecret} {
		if credentials[key] == "" {
			return fmt.Errorf("%w: %s", shared.ErrMissingCredentials, key)
		}
	}

	token, err := LoadToken(credentials[CredOAuthFile])
	if err != nil {
		return err
	}

	tokenURL := credentials[CredTokenURL]
	if tokenURL == "" {
		tokenURL = googleTokenURL
	}

	config := &oauth2.Config{
		ClientID:     credentials[CredClientID],
		ClientSecret: credentials[CredClientSecret],
		Scopes:       []string{youtubeScope},
		Endpoint:     oauth2.Endpoint{TokenURL: tokenURL},
	}

	y.httpClient = config.Client(ctx, token)
	y.logger.Debug("authenticated", "service", y.Name(), "expires", token.Expiry)
	return nil
}

func (y *YouTubeService) doRequest(ctx context.Context, method, endpoint string, body, result any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, y.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := fmt.Errorf("%w: youtube music API error: status %d", shared.ErrAPIRequest, resp.StatusCode)
		var errResp struct {
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Detail != "" {
			apiErr = fmt.Errorf("%w: youtube music API error (status %d): %s", shared.ErrAPIRequest, resp.StatusCode, errResp.Detail)
		}
		if resp.StatusCode == http.StatusUnauthorized {
			return fmt.Errorf("%w: %w", shared.ErrNotAuthenticated, apiErr)
		}
		return apiErr
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// GetPlaylists retrieves up to 200 playlists from the user's library.
//
// Calls GET /api/library/playlists on the proxy.
func (y *YouTubeService) GetPlaylists(ctx context.Context) ([]models.Playlist, error) {
	var ytPlaylists []struct {
		PlaylistID  string `json:"playlistId"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Privacy     string `json:"privacy"`
		Count       int    `json:"count"`
	}

	endpoint := "/api/library/playlists?limit=" + strconv.Itoa(libraryLimit)
	if err := y.doRequest(ctx, http.MethodGet, endpoint, nil, &ytPlaylists); err != nil {
		return nil, err
	}

	playlists := make([]models.Playlist, len(ytPlaylists))
	for i, ytp := range ytPlaylists {
		playlists[i] = models.Playlist{
			ID:          ytp.PlaylistID,
			Name:        ytp.Title,
			Description: ytp.Description,
			TrackCount:  ytp.Count,
			Public:      ytp.Privacy == "PUBLIC",
		}
	}
	return playlists, nil
}

// CreatePlaylist creates an empty playlist, PRIVATE unless public is set.
//
// Calls POST /api/playlists on the proxy.
func (y *YouTubeService) CreatePlaylist(ctx context.Context, title, description string, public bool) (*models.Playlist, error) {
	createReq := struct {
		Title         string `json:"title"`
		Description   string `json:"description"`
		PrivacyStatus string `json:"privacy_status"`
	}{
		Title:         title,
		Description:   description,
		PrivacyStatus: privacyStatus(public),
	}

	var createResp struct {
		PlaylistID string `json:"playlist_id"`
	}
	if err := y.doRequest(ctx, http.MethodPost, "/api/playlists", createReq, &createResp); err != nil {
		return nil, fmt.Errorf("failed to create playlist: %w", err)
	}
	if createResp.PlaylistID == "" {
		return nil, fmt.Errorf("%w: create playlist returned no id", shared.ErrAPIRequest)
	}

	return &models.Playlist{
		ID:          createResp.PlaylistID,
		Name:        title,
		Description: description,
		Public:      public,
	}, nil
}

// AddTracks appends videoIDs to the playlist, keeping duplicates.
//
// Calls POST /api/playlists/{id}/items on the proxy.
func (y *YouTubeService) AddTracks(ctx context.Context, playlistID string, videoIDs []string) error {
	if len(videoIDs) == 0 {
		return nil
	}

	addReq := struct {
		VideoIDs   []string `json:"video_ids"`
		Duplicates bool     `json:"duplicates"`
	}{
		VideoIDs:   videoIDs,
		Duplicates: true,
	}

	endpoint := fmt.Sprintf("/api/playlists/%s/items", url.PathEscape(playlistID))
	if err := y.doRequest(ctx, http.MethodPost, endpoint, addReq, nil); err != nil {
		return fmt.Errorf("failed to add tracks to playlist %s: %w", playlistID, err)
	}
	return nil
}

// Search runs one search with the given filter ("songs" or "videos").
//
// Calls GET /api/search?q={query}&filter={filter} on the proxy.
func (y *YouTubeService) Search(ctx context.Context, query, filter string) ([]YouTubeTrack, error) {
	params := url.Values{"q": {query}}
	if filter != "" {
		params.Set("filter", filter)
	}

	var results []YouTubeTrack
	if err := y.doRequest(ctx, http.MethodGet, "/api/search?"+params.Encode(), nil, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// SearchTrack searches songs first and falls back to videos when there are no song results.
// The first result carrying a video ID wins.
func (y *YouTubeService) SearchTrack(ctx context.Context, query string) (*models.Track, error) {
	results, err := y.Search(ctx, query, "songs")
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		y.logger.Debug("no song results, trying videos", "query", query)
		if results, err = y.Search(ctx, query, "videos"); err != nil {
			return nil, err
		}
	}

	for _, result := range results {
		if result.VideoID != "" {
			track := result.Track()
			return &track, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", shared.ErrTrackNotFound, query)
}

func privacyStatus(public bool) string {
	return strings.ToUpper(shared.VisibilityString(public))
}
