package setlistfm

import (
	"bytes"
	"encoding/json"
)

// SetlistPage is one page of an artist's setlists.
type SetlistPage struct {
	Setlists     []Setlist `json:"setlist"`
	Total        int       `json:"total"`
	Page         int       `json:"page"`
	ItemsPerPage int       `json:"itemsPerPage"`
}

// Setlist is a single performance.
type Setlist struct {
	ID          string `json:"id"`
	VersionID   string `json:"versionId,omitempty"`
	EventDate   string `json:"eventDate"` // dd-MM-yyyy
	LastUpdated string `json:"lastUpdated,omitempty"`
	Info        string `json:"info,omitempty"`
	URL         string `json:"url,omitempty"`
	Artist      Artist `json:"artist"`
	Venue       *Venue `json:"venue,omitempty"`
	Tour        *Tour  `json:"tour,omitempty"`
	Sets        Sets   `json:"sets"`
}

// Year returns the trailing four characters of the event date, or "" when the date is too short.
func (s Setlist) Year() string {
	if len(s.EventDate) < 10 {
		return ""
	}
	return s.EventDate[len(s.EventDate)-4:]
}

// Sets wraps the set groups of a setlist.
type Sets struct {
	Set SetList `json:"set"`
}

// UnmarshalJSON accepts any value for "sets"; anything but an object decodes to no sets.
func (s *Sets) UnmarshalJSON(data []byte) error {
	type plain Sets
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		*s = Sets{}
		return nil
	}
	*s = Sets(p)
	return nil
}

// SetList is the normalized sequence of sets. setlist.fm sends a single object when there is one set.
type SetList []Set

// UnmarshalJSON accepts an object, an array, null or a malformed value (decoded as empty).
func (l *SetList) UnmarshalJSON(data []byte) error {
	*l = normalize[Set](data)
	return nil
}

// Set is a main set or an encore.
type Set struct {
	Name   string   `json:"name,omitempty"`
	Encore int      `json:"encore,omitempty"`
	Songs  SongList `json:"song"`
}

// SongList is the normalized sequence of songs in a set.
type SongList []Song

// UnmarshalJSON accepts an object, an array, null or a malformed value (decoded as empty).
func (l *SongList) UnmarshalJSON(data []byte) error {
	*l = normalize[Song](data)
	return nil
}

// Song is one entry in a set. Tape marks material that was played from tape rather than performed.
type Song struct {
	Name  string  `json:"name"`
	Info  string  `json:"info,omitempty"`
	Tape  bool    `json:"tape,omitempty"`
	Cover *Artist `json:"cover,omitempty"`
	With  *Artist `json:"with,omitempty"`
}

// Artist is a setlist.fm artist record.
type Artist struct {
	MBID           string `json:"mbid"`
	Name           string `json:"name"`
	SortName       string `json:"sortName,omitempty"`
	Disambiguation string `json:"disambiguation,omitempty"`
	URL            string `json:"url,omitempty"`
}

// ArtistResults is a page of artist search results.
type ArtistResults struct {
	Artists      []Artist `json:"artist"`
	Total        int      `json:"total"`
	Page         int      `json:"page"`
	ItemsPerPage int      `json:"itemsPerPage"`
}

// Venue is where a setlist was played.
type Venue struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	City *City  `json:"city,omitempty"`
	URL  string `json:"url,omitempty"`
}

// City has name, state and country.
type City struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	StateCode string   `json:"stateCode,omitempty"`
	State     string   `json:"state,omitempty"`
	Country   *Country `json:"country,omitempty"`
}

// Country has code and name.
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Tour has an optional tour name.
type Tour struct {
	Name string `json:"name"`
}

// normalize decodes data as either a single T or a sequence of T.
// Null, malformed and non-object entries are dropped.
func normalize[T any](data []byte) []T {
	data = bytes.TrimSpace(data)
	out := []T{}

	switch {
	case len(data) == 0:
		return out
	case data[0] == '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return out
		}
		for _, item := range raw {
			if v, ok := decodeObject[T](item); ok {
				out = append(out, v)
			}
		}
	default:
		if v, ok := decodeObject[T](data); ok {
			out = append(out, v)
		}
	}
	return out
}

func decodeObject[T any](data []byte) (T, bool) {
	var v T
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return v, false
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, false
	}
	return v, true
}
