// Package ranking turns a flat list of song performances into a most-played list.
//
// Titles are counted by exact string. The order is count descending, then
// case-insensitive title ascending, then exact title ascending, which is total:
// ranking the same input always yields the same list, and a shorter list is
// always a prefix of a longer one.
package ranking

import (
	"slices"
	"strings"
)

// DefaultLimit is the number of songs returned when no limit is given.
const DefaultLimit = 20

// Tally maps an exact song title to its number of performances.
type Tally map[string]int

// Entry is a ranked title with its count.
type Entry struct {
	Title string `json:"title"`
	Count int    `json:"count"`
}

// Count tallies songs. The counts sum to len(songs).
func Count(songs []string) Tally {
	tally := make(Tally, len(songs))
	for _, s := range songs {
		tally[s]++
	}
	return tally
}

// Total returns the number of performances counted.
func (t Tally) Total() int {
	total := 0
	for _, n := range t {
		total += n
	}
	return total
}

// Ranked returns every distinct title of songs with its count, most played first.
func Ranked(songs []string) []Entry {
	tally := Count(songs)
	entries := make([]Entry, 0, len(tally))
	for title, count := range tally {
		entries = append(entries, Entry{Title: title, Count: count})
	}

	slices.SortFunc(entries, compare)
	return entries
}

// Top returns the first n entries of [Ranked]; empty when n <= 0.
func Top(songs []string, n int) []Entry {
	if n <= 0 || len(songs) == 0 {
		return []Entry{}
	}
	entries := Ranked(songs)
	return entries[:min(n, len(entries))]
}

// TopSongs returns the n most performed titles.
func TopSongs(songs []string, n int) []string {
	return Titles(Top(songs, n))
}

// Titles extracts the titles of entries in order.
func Titles(entries []Entry) []string {
	titles := make([]string, len(entries))
	for i, e := range entries {
		titles[i] = e.Title
	}
	return titles
}

func compare(a, b Entry) int {
	if a.Count != b.Count {
		return b.Count - a.Count
	}
	if c := strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)); c != 0 {
		return c
	}
	return strings.Compare(a.Title, b.Title)
}
