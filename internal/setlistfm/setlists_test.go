package setlistfm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"testing"

	"github.com/desertthunder/setlistsync/internal/shared"
)

func setlistJSON(date string, songs ...string) map[string]any {
	entries := make([]map[string]any, len(songs))
	for i, s := range songs {
		entries[i] = map[string]any{"name": s}
	}
	return map[string]any{
		"id":        date,
		"eventDate": date,
		"sets":      map[string]any{"set": []any{map[string]any{"song": entries}}},
	}
}

// pagedHandler serves pages by number and counts the requests per page.
func pagedHandler(t *testing.T, pages map[int]map[string]any, requested *[]int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := strconv.Atoi(r.URL.Query().Get("p"))
		if err != nil {
			t.Errorf("missing page parameter: %v", err)
		}
		*requested = append(*requested, page)

		body, ok := pages[page]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(body)
	}
}

func TestFetchSetlistsForYear(t *testing.T) {
	t.Run("Aggregates Two Pages Then Stops On Total", func(t *testing.T) {
		pages := map[int]map[string]any{
			1: {"total": 40, "itemsPerPage": 20, "page": 1, "setlist": []any{setlistJSON("12-08-2024", "A", "B")}},
			2: {"total": 40, "itemsPerPage": 20, "page": 2, "setlist": []any{setlistJSON("01-03-2024", "C")}},
			3: {"total": 40, "itemsPerPage": 20, "page": 3, "setlist": []any{setlistJSON("01-01-2024", "D")}},
		}
		var requested []int
		client, _ := newTestClient(t, pagedHandler(t, pages, &requested))

		songs, err := client.FetchSetlistsForYear(context.Background(), "mbid", 2024, 0)
		if err != nil {
			t.Fatalf("FetchSetlistsForYear() error = %v", err)
		}
		if !reflect.DeepEqual(songs, []string{"A", "B", "C"}) {
			t.Errorf("unexpected songs %v", songs)
		}
		if !reflect.DeepEqual(requested, []int{1, 2}) {
			t.Errorf("expected exactly pages [1 2], got %v", requested)
		}
	})

	t.Run("Stops After Page With Older Setlist", func(t *testing.T) {
		pages := map[int]map[string]any{
			1: {"total": 200, "itemsPerPage": 20, "setlist": []any{setlistJSON("05-01-2025", "New")}},
			2: {"total": 200, "itemsPerPage": 20, "setlist": []any{
				setlistJSON("10-10-2024", "X"),
				setlistJSON("20-12-2023", "Old"),
			}},
			3: {"total": 200, "itemsPerPage": 20, "setlist": []any{setlistJSON("01-06-2024", "Never")}},
		}
		var requested []int
		client, _ := newTestClient(t, pagedHandler(t, pages, &requested))

		songs, err := client.FetchSetlistsForYear(context.Background(), "mbid", 2024, 50)
		if err != nil {
			t.Fatalf("FetchSetlistsForYear() error = %v", err)
		}
		if !reflect.DeepEqual(songs, []string{"X"}) {
			t.Errorf("unexpected songs %v", songs)
		}
		if !reflect.DeepEqual(requested, []int{1, 2}) {
			t.Errorf("expected pages [1 2], got %v", requested)
		}
	})

	t.Run("404 Ends Without Error", func(t *testing.T) {
		pages := map[int]map[string]any{
			1: {"total": 100, "itemsPerPage": 20, "setlist": []any{setlistJSON("01-01-2024", "A")}},
		}
		var requested []int
		client, _ := newTestClient(t, pagedHandler(t, pages, &requested))

		songs, err := client.FetchSetlistsForYear(context.Background(), "mbid", 2024, 10)
		if err != nil {
			t.Fatalf("expected no error on 404, got %v", err)
		}
		if !reflect.DeepEqual(songs, []string{"A"}) {
			t.Errorf("unexpected songs %v", songs)
		}
		if len(requested) != 2 {
			t.Errorf("expected 2 requests, got %v", requested)
		}
	})

	t.Run("Empty Page Ends", func(t *testing.T) {
		pages := map[int]map[string]any{
			1: {"total": 100, "itemsPerPage": 20, "setlist": []any{}},
		}
		var requested []int
		client, _ := newTestClient(t, pagedHandler(t, pages, &requested))

		songs, err := client.FetchSetlistsForYear(context.Background(), "mbid", 2024, 10)
		if err != nil {
			t.Fatalf("FetchSetlistsForYear() error = %v", err)
		}
		if len(songs) != 0 || songs == nil {
			t.Errorf("expected empty non-nil result, got %#v", songs)
		}
		if len(requested) != 1 {
			t.Errorf("expected 1 request, got %v", requested)
		}
	})

	t.Run("Page Cap", func(t *testing.T) {
		pages := map[int]map[string]any{}
		for i := 1; i <= 5; i++ {
			pages[i] = map[string]any{"total": 1000, "itemsPerPage": 20, "setlist": []any{setlistJSON("01-01-2024", fmt.Sprint(i))}}
		}
		var requested []int
		client, _ := newTestClient(t, pagedHandler(t, pages, &requested))

		songs, err := client.FetchSetlistsForYear(context.Background(), "mbid", 2024, 3)
		if err != nil {
			t.Fatalf("FetchSetlistsForYear() error = %v", err)
		}
		if !reflect.DeepEqual(songs, []string{"1", "2", "3"}) {
			t.Errorf("unexpected songs %v", songs)
		}
	})

	t.Run("Default Items Per Page", func(t *testing.T) {
		pages := map[int]map[string]any{
			1: {"total": 20, "setlist": []any{setlistJSON("01-01-2024", "A")}},
			2: {"total": 20, "setlist": []any{setlistJSON("01-01-2024", "B")}},
		}
		var requested []int
		client, _ := newTestClient(t, pagedHandler(t, pages, &requested))

		if _, err := client.FetchSetlistsForYear(context.Background(), "mbid", 2024, 0); err != nil {
			t.Fatalf("FetchSetlistsForYear() error = %v", err)
		}
		if len(requested) != 1 {
			t.Errorf("expected itemsPerPage to default to 20 and stop after page 1, got %v", requested)
		}
	})

	t.Run("Skips Short And Non-Numeric Dates", func(t *testing.T) {
		pages := map[int]map[string]any{
			1: {"total": 3, "itemsPerPage": 20, "setlist": []any{
				setlistJSON("2024", "Short"),
				setlistJSON("01-01-abcd", "Odd"),
				setlistJSON("02-02-2024", "Good"),
			}},
		}
		var requested []int
		client, _ := newTestClient(t, pagedHandler(t, pages, &requested))

		songs, err := client.FetchSetlistsForYear(context.Background(), "mbid", 2024, 0)
		if err != nil {
			t.Fatalf("FetchSetlistsForYear() error = %v", err)
		}
		if !reflect.DeepEqual(songs, []string{"Good"}) {
			t.Errorf("unexpected songs %v", songs)
		}
	})

	t.Run("Signed Year Does Not Stop Pagination", func(t *testing.T) {
		pages := map[int]map[string]any{
			1: {"total": 2, "itemsPerPage": 1, "setlist": []any{
				setlistJSON("01-01--201", "Garbled"),
			}},
			2: {"total": 2, "itemsPerPage": 1, "setlist": []any{
				setlistJSON("02-02-2024", "Good"),
			}},
		}
		var requested []int
		client, _ := newTestClient(t, pagedHandler(t, pages, &requested))

		songs, err := client.FetchSetlistsForYear(context.Background(), "mbid", 2024, 0)
		if err != nil {
			t.Fatalf("FetchSetlistsForYear() error = %v", err)
		}
		if !reflect.DeepEqual(songs, []string{"Good"}) {
			t.Errorf("unexpected songs %v", songs)
		}
		if !reflect.DeepEqual(requested, []int{1, 2}) {
			t.Errorf("expected both pages requested, got %v", requested)
		}
	})

	t.Run("Propagates Other Errors", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := client.FetchSetlistsForYear(context.Background(), "mbid", 2024, 0)
		var statusErr *StatusError
		if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusInternalServerError {
			t.Errorf("expected 500 StatusError, got %v", err)
		}
		if errors.Is(err, shared.ErrNotFound) {
			t.Error("500 must not match ErrNotFound")
		}
	})
}

func TestExtractSongs(t *testing.T) {
	tests := []struct {
		name string
		json string
		want []string
	}{
		{
			name: "Two Songs",
			json: `{"eventDate":"01-01-2024","sets":{"set":[{"song":[{"name":"First"},{"name":"Second"}]}]}}`,
			want: []string{"First", "Second"},
		},
		{
			name: "Single Set Object",
			json: `{"sets":{"set":{"song":[{"name":"Only"}]}}}`,
			want: []string{"Only"},
		},
		{
			name: "Single Song Object",
			json: `{"sets":{"set":[{"song":{"name":"Lone"}}]}}`,
			want: []string{"Lone"},
		},
		{
			name: "Sets And Songs In Order",
			json: `{"sets":{"set":[{"song":[{"name":"A"},{"name":"B"}]},{"encore":1,"song":[{"name":"C"}]}]}}`,
			want: []string{"A", "B", "C"},
		},
		{
			name: "Skips Tape And Unnamed",
			json: `{"sets":{"set":[{"song":[{"name":"Intro","tape":true},{"name":""},{"info":"jam"},{"name":"Real"}]}]}}`,
			want: []string{"Real"},
		},
		{name: "Empty Sets", json: `{"sets":{}}`, want: []string{}},
		{name: "Empty Object", json: `{}`, want: []string{}},
		{name: "Null Set", json: `{"sets":{"set":null}}`, want: []string{}},
		{name: "Null Sets", json: `{"sets":null}`, want: []string{}},
		{name: "Malformed Sets", json: `{"sets":"nope"}`, want: []string{}},
		{name: "Malformed Set", json: `{"sets":{"set":42}}`, want: []string{}},
		{name: "Null Entries", json: `{"sets":{"set":[null,{"song":[null,{"name":"X"}]}]}}`, want: []string{"X"}},
		{name: "Malformed Songs", json: `{"sets":{"set":[{"song":"nope"}]}}`, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var setlist Setlist
			if err := json.Unmarshal([]byte(tt.json), &setlist); err != nil {
				t.Fatalf("failed to decode setlist: %v", err)
			}

			got := ExtractSongs(setlist)
			if got == nil {
				t.Fatal("ExtractSongs() returned nil")
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractSongs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetlistYear(t *testing.T) {
	tests := map[string]string{
		"23-08-1994": "1994",
		"1994":       "",
		"":           "",
	}
	for date, want := range tests {
		if got := (Setlist{EventDate: date}).Year(); got != want {
			t.Errorf("Year(%q) = %q, want %q", date, got, want)
		}
	}
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"1994", 1994, true},
		{"0000", 0, true},
		{"-201", 0, false},
		{"+201", 0, false},
		{"abcd", 0, false},
		{"199", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseYear(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseYear(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
