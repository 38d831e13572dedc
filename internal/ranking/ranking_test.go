package ranking

import (
	"fmt"
	"math/rand"
	"reflect"
	"slices"
	"testing"
)

func TestTopSongs(t *testing.T) {
	tests := []struct {
		name  string
		songs []string
		n     int
		want  []string
	}{
		{
			name:  "Frequency Order",
			songs: []string{"Song A", "Song B", "Song A", "Song C", "Song A", "Song B"},
			n:     DefaultLimit,
			want:  []string{"Song A", "Song B", "Song C"},
		},
		{
			name:  "Unique Titles Alphabetical",
			songs: []string{"Song C", "Song A", "Song B", "Song D"},
			n:     DefaultLimit,
			want:  []string{"Song A", "Song B", "Song C", "Song D"},
		},
		{name: "Empty Input", songs: []string{}, n: 5, want: []string{}},
		{name: "Nil Input", songs: nil, n: 5, want: []string{}},
		{name: "Zero Limit", songs: []string{"X"}, n: 0, want: []string{}},
		{name: "Negative Limit", songs: []string{"X"}, n: -3, want: []string{}},
		{
			name:  "Case-Insensitive Ties",
			songs: []string{"banana", "Apple", "cherry"},
			n:     3,
			want:  []string{"Apple", "banana", "cherry"},
		},
		{
			name:  "Case Variants Counted Separately",
			songs: []string{"song b", "Song B", "Song B", "song b", "Other"},
			n:     3,
			want:  []string{"Song B", "song b", "Other"},
		},
		{
			name:  "Truncates",
			songs: []string{"a", "a", "a", "b", "b", "c"},
			n:     2,
			want:  []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TopSongs(tt.songs, tt.n)
			if got == nil {
				t.Fatal("TopSongs() returned nil")
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TopSongs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCount(t *testing.T) {
	songs := []string{"A", "B", "A", "a"}
	tally := Count(songs)

	if tally["A"] != 2 || tally["B"] != 1 || tally["a"] != 1 {
		t.Errorf("unexpected tally %v", tally)
	}
	if tally.Total() != len(songs) {
		t.Errorf("Total() = %d, want %d", tally.Total(), len(songs))
	}
}

func TestRanked(t *testing.T) {
	got := Ranked([]string{"b", "a", "b"})
	want := []Entry{{Title: "b", Count: 2}, {Title: "a", Count: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Ranked() = %v, want %v", got, want)
	}
	if titles := Titles(got); !reflect.DeepEqual(titles, []string{"b", "a"}) {
		t.Errorf("Titles() = %v", titles)
	}
}

// randomSongs draws from a small pool so duplicates and case variants are common.
func randomSongs(r *rand.Rand) []string {
	pool := []string{"Intro", "intro", "Creep", "CREEP", "Airbag", "Lucky", "Nude", "Reckoner", "Idioteque", "Bodysnatchers"}
	songs := make([]string, r.Intn(60))
	for i := range songs {
		songs[i] = pool[r.Intn(len(pool))]
	}
	return songs
}

func TestTopSongsProperties(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		songs := randomSongs(r)
		distinct := len(Count(songs))
		n := r.Intn(15)

		t.Run(fmt.Sprintf("case %d", i), func(t *testing.T) {
			got := TopSongs(songs, n)

			if len(got) != min(n, distinct) {
				t.Fatalf("len = %d, want min(%d, %d)", len(got), n, distinct)
			}

			seen := map[string]bool{}
			for _, title := range got {
				if !slices.Contains(songs, title) {
					t.Errorf("%q not in input", title)
				}
				if seen[title] {
					t.Errorf("%q appears twice", title)
				}
				seen[title] = true
			}

			if again := TopSongs(songs, n); !reflect.DeepEqual(got, again) {
				t.Errorf("not deterministic: %v vs %v", got, again)
			}

			longer := TopSongs(songs, n+r.Intn(5))
			if !reflect.DeepEqual(got, longer[:len(got)]) {
				t.Errorf("%v is not a prefix of %v", got, longer)
			}

			shuffled := slices.Clone(songs)
			r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
			if perm := TopSongs(shuffled, n); !reflect.DeepEqual(got, perm) {
				t.Errorf("order depends on input order: %v vs %v", got, perm)
			}
		})
	}
}
