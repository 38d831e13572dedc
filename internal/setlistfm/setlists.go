package setlistfm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/desertthunder/setlistsync/internal/shared"
)

const (
	DefaultMaxPages     = 50
	defaultItemsPerPage = 20
)

// Setlists fetches one page of an artist's setlists, newest first.
func (c *Client) Setlists(ctx context.Context, mbid string, page int) (*SetlistPage, error) {
	path := "artist/" + url.PathEscape(mbid) + "/setlists"
	body, err := c.Get(ctx, path, url.Values{"p": {strconv.Itoa(page)}}, setlistTimeout)
	if err != nil {
		return nil, err
	}

	var out SetlistPage
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode setlists page %d: %w", page, err)
	}
	return &out, nil
}

// FetchSetlistsForYear collects the performed songs of every setlist mbid played in year.
//
// Songs keep page order, then setlist order. A 404 ends pagination without error.
// Iteration also stops on an empty page, on the last page, after maxPages pages
// (50 when maxPages <= 0), or after the first page holding a setlist older than year.
func (c *Client) FetchSetlistsForYear(ctx context.Context, mbid string, year, maxPages int) ([]string, error) {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	target := strconv.Itoa(year)
	songs := []string{}
	c.logger.Info("fetching setlists", "mbid", mbid, "year", year, "max_pages", maxPages)

	for page := 1; page <= maxPages; page++ {
		data, err := c.Setlists(ctx, mbid, page)
		if errors.Is(err, shared.ErrNotFound) {
			c.logger.Debug("no more pages", "page", page)
			break
		}
		if err != nil {
			return nil, err
		}

		if len(data.Setlists) == 0 {
			c.logger.Debug("empty page", "page", page)
			break
		}

		olderReached := false
		pageSongs := 0
		for _, setlist := range data.Setlists {
			y := setlist.Year()
			if y == "" {
				continue
			}
			if y == target {
				extracted := ExtractSongs(setlist)
				songs = append(songs, extracted...)
				pageSongs += len(extracted)
			} else if n, ok := parseYear(y); ok && n < year {
				olderReached = true
			}
		}

		c.logger.Debug("page processed", "page", page, "setlists", len(data.Setlists), "songs", pageSongs)

		if olderReached {
			c.logger.Debug("reached setlists older than target year", "page", page)
			break
		}

		itemsPerPage := data.ItemsPerPage
		if itemsPerPage == 0 {
			itemsPerPage = defaultItemsPerPage
		}
		if page*itemsPerPage >= data.Total {
			c.logger.Debug("reached last page", "page", page, "total", data.Total)
			break
		}
	}

	c.logger.Info("collected songs", "year", year, "count", len(songs))
	return songs, nil
}

// parseYear reads a four digit year; signs and other non-digits are rejected.
func parseYear(s string) (int, bool) {
	if len(s) != 4 {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
		n = n*10 + int(s[i]-'0')
	}
	return n, true
}

// ExtractSongs returns the performed song titles of setlist in set order.
// Unnamed entries and entries played from tape are skipped.
func ExtractSongs(setlist Setlist) []string {
	songs := []string{}
	for _, set := range setlist.Sets.Set {
		for _, song := range set.Songs {
			if song.Name == "" || song.Tape {
				continue
			}
			songs = append(songs, song.Name)
		}
	}
	return songs
}
