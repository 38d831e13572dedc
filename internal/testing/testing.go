// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/desertthunder/setlistsync/internal/models"
	"github.com/desertthunder/setlistsync/internal/shared"
)

// MockService is a test double for [services.Service].
//
// Searches resolve through Results keyed by query; anything else fails with [shared.ErrTrackNotFound].
type MockService struct {
	Playlists    []models.Playlist
	Results      map[string]*models.Track
	AuthErr      error
	PlaylistsErr error
	CreateErr    error
	AddErr       error
	OnSearch     func(query string) // called before each search resolves

	Created  []models.Playlist   // playlists passed to CreatePlaylist
	Added    map[string][]string // video ids passed to AddTracks, by playlist id
	Searches []string            // queries passed to SearchTrack
	AuthWith map[string]string   // credentials passed to Authenticate
}

func (m *MockService) Authenticate(ctx context.Context, credentials map[string]string) error {
	m.AuthWith = credentials
	return m.AuthErr
}

func (m *MockService) GetPlaylists(ctx context.Context) ([]models.Playlist, error) {
	if m.PlaylistsErr != nil {
		return nil, m.PlaylistsErr
	}
	return m.Playlists, nil
}

func (m *MockService) CreatePlaylist(ctx context.Context, title, description string, public bool) (*models.Playlist, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	pl := models.Playlist{
		ID:          fmt.Sprintf("PL%d", len(m.Created)+1),
		Name:        title,
		Description: description,
		Public:      public,
	}
	m.Created = append(m.Created, pl)
	return &pl, nil
}

func (m *MockService) AddTracks(ctx context.Context, playlistID string, videoIDs []string) error {
	if m.AddErr != nil {
		return m.AddErr
	}
	if m.Added == nil {
		m.Added = make(map[string][]string)
	}
	m.Added[playlistID] = append(m.Added[playlistID], videoIDs...)
	return nil
}

func (m *MockService) SearchTrack(ctx context.Context, query string) (*models.Track, error) {
	m.Searches = append(m.Searches, query)
	if m.OnSearch != nil {
		m.OnSearch(query)
	}
	if track, ok := m.Results[query]; ok {
		return track, nil
	}
	return nil, fmt.Errorf("%w: %s", shared.ErrTrackNotFound, query)
}

func (m *MockService) Name() string { return "mock" }

// MockSetlistSource is a test double for tasks.SetlistSource.
//
// Songs and FetchErrs are keyed by year.
type MockSetlistSource struct {
	Artist    *models.Artist
	ArtistErr error
	Songs     map[int][]string
	FetchErrs map[int]error
	OnFetch   func(year int) // called before each fetch resolves

	Fetches []int // years passed to FetchSetlistsForYear
}

func (m *MockSetlistSource) SearchArtist(ctx context.Context, name string) (*models.Artist, error) {
	if m.ArtistErr != nil {
		return nil, m.ArtistErr
	}
	if m.Artist == nil {
		return nil, fmt.Errorf("%w: artist %q", shared.ErrNotFound, name)
	}
	artist := *m.Artist
	return &artist, nil
}

func (m *MockSetlistSource) FetchSetlistsForYear(ctx context.Context, mbid string, year, maxPages int) ([]string, error) {
	m.Fetches = append(m.Fetches, year)
	if m.OnFetch != nil {
		m.OnFetch(year)
	}
	if err := m.FetchErrs[year]; err != nil {
		return nil, err
	}
	return m.Songs[year], nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
