package formatter

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/setlistsync/internal/models"
	"github.com/desertthunder/setlistsync/internal/ranking"
	"github.com/desertthunder/setlistsync/internal/shared"
	th "github.com/desertthunder/setlistsync/internal/testing"
)

func testReport() *Report {
	return &Report{
		Artist:       models.Artist{Name: "Iron Maiden", MBID: "ca891d65-d9b0-4258-89f7-e6ba29d83767"},
		Year:         2023,
		Performances: 6,
		Songs: []ranking.Entry{
			{Title: "The Trooper", Count: 3},
			{Title: "Aces High", Count: 2},
			{Title: "Fear | Dark", Count: 1},
		},
	}
}

func TestExporters(t *testing.T) {
	t.Run("ToCSV", func(t *testing.T) {
		data, err := ToCSV(testReport())
		if err != nil {
			t.Fatalf("ToCSV failed: %v", err)
		}

		records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		if err != nil {
			t.Fatalf("output is not valid CSV: %v", err)
		}
		if len(records) != 4 {
			t.Fatalf("expected header + 3 rows, got %d", len(records))
		}
		if strings.Join(records[0], ",") != "Rank,Title,Count" {
			t.Errorf("unexpected headers %v", records[0])
		}
		if strings.Join(records[1], ",") != "1,The Trooper,3" {
			t.Errorf("unexpected first row %v", records[1])
		}
	})

	t.Run("ToMarkdown", func(t *testing.T) {
		data, err := ToMarkdown(testReport())
		if err != nil {
			t.Fatalf("ToMarkdown failed: %v", err)
		}
		output := string(data)

		for _, want := range []string{
			"# Iron Maiden – Top 3 Live (2023)",
			"**Performances**: 6",
			"| 1 | The Trooper | 3 |",
			`| 3 | Fear \| Dark | 1 |`,
		} {
			if !strings.Contains(output, want) {
				t.Errorf("markdown missing %q, got:\n%s", want, output)
			}
		}
	})

	t.Run("ToText", func(t *testing.T) {
		data, err := ToText(testReport())
		if err != nil {
			t.Fatalf("ToText failed: %v", err)
		}
		output := string(data)

		if !strings.Contains(output, " 1. The Trooper (3 plays)") {
			t.Errorf("text missing first song, got:\n%s", output)
		}
		if !strings.Contains(output, " 3. Fear | Dark (1 play)") {
			t.Errorf("text should use singular for one play, got:\n%s", output)
		}
	})

	t.Run("ToJSON", func(t *testing.T) {
		data, err := ToJSON(testReport(), false)
		if err != nil {
			t.Fatalf("ToJSON failed: %v", err)
		}

		var decoded Report
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if decoded.Artist.Name != "Iron Maiden" || len(decoded.Songs) != 3 || decoded.Songs[0].Count != 3 {
			t.Errorf("unexpected decoded report %+v", decoded)
		}
	})
}

func TestRender(t *testing.T) {
	tests := []struct {
		format  string
		prefix  string
		wantErr bool
	}{
		{format: "", prefix: "{"},
		{format: FormatJSON, prefix: "{"},
		{format: FormatCSV, prefix: "Rank,"},
		{format: FormatMarkdown, prefix: "# "},
		{format: "md", prefix: "# "},
		{format: FormatText, prefix: "Artist:"},
		{format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			data, err := Render(testReport(), tt.format)
			if tt.wantErr {
				if !errors.Is(err, shared.ErrInvalidFlag) {
					t.Errorf("expected ErrInvalidFlag, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if !strings.HasPrefix(string(data), tt.prefix) {
				t.Errorf("expected prefix %q, got %q", tt.prefix, string(data)[:min(20, len(data))])
			}
		})
	}
}

func TestFilenames(t *testing.T) {
	tests := []struct {
		name   string
		artist string
		format string
		want   string
	}{
		{name: "json", artist: "Iron Maiden", format: FormatJSON, want: "iron-maiden_2023.json"},
		{name: "csv", artist: "AC/DC", format: FormatCSV, want: "ac-dc_2023.csv"},
		{name: "markdown", artist: "Sigur Rós", format: FormatMarkdown, want: "sigur-ros_2023.md"},
		{name: "empty slug", artist: "!!!", format: FormatText, want: "artist_2023.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := testReport()
			r.Artist.Name = tt.artist
			if got := Filename(r, tt.format); got != tt.want {
				t.Errorf("Filename() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteReport(t *testing.T) {
	t.Run("creates directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "report.csv")

		written, err := WriteReport(testReport(), FormatCSV, path)
		if err != nil {
			t.Fatalf("WriteReport() error = %v", err)
		}
		th.AssertFileExists(t, written)
		if content := th.MustReadFile(t, written); !strings.HasPrefix(content, "Rank,Title,Count") {
			t.Errorf("unexpected content %q", content)
		}
	})

	t.Run("invalid format writes nothing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.xml")
		if _, err := WriteReport(testReport(), "xml", path); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestWriteManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	m := &Manifest{
		Artist:    models.Artist{Name: "Iron Maiden"},
		Format:    FormatCSV,
		Succeeded: 1,
		Failed:    1,
		Entries: []ManifestEntry{
			{Year: 2023, Performances: 6, Songs: 3, File: "iron-maiden_2023.csv"},
			{Year: 2022, Error: "no data"},
		},
	}

	if err := WriteManifest(m, path); err != nil {
		t.Fatalf("WriteManifest() error = %v", err)
	}

	var decoded Manifest
	if err := json.Unmarshal([]byte(th.MustReadFile(t, path)), &decoded); err != nil {
		t.Fatalf("manifest is not valid JSON: %v", err)
	}
	if len(decoded.Entries) != 2 || decoded.Entries[1].Error != "no data" {
		t.Errorf("unexpected manifest %+v", decoded)
	}

	if err := WriteManifest(m, filepath.Join(t.TempDir(), "missing", "dir", "m.json")); err == nil {
		t.Error("expected error writing into a missing directory")
	}
}
