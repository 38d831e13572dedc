package setlistfm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/desertthunder/setlistsync/internal/models"
	"github.com/desertthunder/setlistsync/internal/shared"
)

// SearchArtists returns the first page of artist candidates for name.
func (c *Client) SearchArtists(ctx context.Context, name string) ([]Artist, error) {
	query := url.Values{"artistName": {name}, "p": {"1"}}
	body, err := c.Get(ctx, "search/artists", query, searchTimeout)
	if err != nil {
		return nil, err
	}

	var results ArtistResults
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("failed to decode artist search: %w", err)
	}
	return results.Artists, nil
}

// SearchArtist resolves name to a single artist.
//
// A 404 or an empty result set is reported as [shared.ErrNotFound].
func (c *Client) SearchArtist(ctx context.Context, name string) (*models.Artist, error) {
	c.logger.Info("searching for artist", "name", name)

	candidates, err := c.SearchArtists(ctx, name)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("artist %w: %q", shared.ErrNotFound, name)
	}

	artist, how := SelectArtist(name, candidates)
	c.logger.Info("selected artist", "name", artist.Name, "mbid", artist.MBID, "match", how, "candidates", len(candidates))
	return &models.Artist{Name: artist.Name, MBID: artist.MBID}, nil
}

// SelectArtist picks the best candidate for query and reports how it matched:
// "exact" for a case-insensitive name match, "closest" for the first candidate that
// is neither a "feat." credit nor a tribute act, and "fallback" for the first candidate.
//
// candidates must not be empty.
func SelectArtist(query string, candidates []Artist) (Artist, string) {
	for _, a := range candidates {
		if strings.EqualFold(a.Name, query) {
			return a, "exact"
		}
	}

	for _, a := range candidates {
		if !strings.Contains(strings.ToLower(a.Name), "feat.") &&
			!strings.Contains(strings.ToLower(a.Disambiguation), "tribute") {
			return a, "closest"
		}
	}

	return candidates[0], "fallback"
}
