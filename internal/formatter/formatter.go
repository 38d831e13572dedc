// package formatter renders ranked song reports to JSON, CSV, Markdown and plain text
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/desertthunder/setlistsync/internal/models"
	"github.com/desertthunder/setlistsync/internal/ranking"
	"github.com/desertthunder/setlistsync/internal/shared"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Supported report formats.
const (
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatText     = "txt"
)

// Formats lists the accepted values of a --format flag.
var Formats = []string{FormatJSON, FormatCSV, FormatMarkdown, FormatText}

// Report is the most-played songs of an artist in one year.
type Report struct {
	Artist       models.Artist   `json:"artist"`
	Year         int             `json:"year"`
	Performances int             `json:"performances"` // song performances counted
	Songs        []ranking.Entry `json:"songs"`
}

// ToJSON encodes the report, indented when pretty is set.
func ToJSON(r *Report, pretty bool) ([]byte, error) {
	return shared.MarshalJSON(r, pretty)
}

// ToCSV renders the report with columns: Rank, Title, Count
func ToCSV(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Rank", "Title", "Count"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, song := range r.Songs {
		if err := writer.Write([]string{strconv.Itoa(i + 1), song.Title, strconv.Itoa(song.Count)}); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}

// ToMarkdown renders the report as a heading, a summary and a numbered table.
func ToMarkdown(r *Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s – Top %d Live (%d)\n\n", r.Artist.Name, len(r.Songs), r.Year)
	fmt.Fprintf(&buf, "**Performances**: %d\n", r.Performances)
	if r.Artist.MBID != "" {
		fmt.Fprintf(&buf, "**MusicBrainz ID**: %s\n", r.Artist.MBID)
	}
	buf.WriteString("\n| # | Song | Plays |\n|---|------|-------|\n")

	for i, song := range r.Songs {
		title := strings.ReplaceAll(song.Title, "|", `\|`)
		fmt.Fprintf(&buf, "| %d | %s | %d |\n", i+1, title, song.Count)
	}
	return buf.Bytes(), nil
}

// ToText renders the report as a numbered plain-text list.
func ToText(r *Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Artist: %s\n", r.Artist.Name)
	fmt.Fprintf(&buf, "Year: %d\n", r.Year)
	fmt.Fprintf(&buf, "Performances: %d\n\n", r.Performances)

	for i, song := range r.Songs {
		fmt.Fprintf(&buf, "%2d. %s (%d %s)\n", i+1, song.Title, song.Count, shared.Pluralize(song.Count, "play"))
	}
	return buf.Bytes(), nil
}

// Render renders the report in format. JSON output is indented.
func Render(r *Report, format string) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		return ToJSON(r, true)
	case FormatCSV:
		return ToCSV(r)
	case FormatMarkdown, "md":
		return ToMarkdown(r)
	case FormatText, "text":
		return ToText(r)
	default:
		return nil, fmt.Errorf("%w: unknown format %q (want one of %s)", shared.ErrInvalidFlag, format, strings.Join(Formats, ", "))
	}
}

// Extension returns the file extension for format, including the dot.
func Extension(format string) string {
	switch format {
	case FormatCSV:
		return ".csv"
	case FormatMarkdown, "md":
		return ".md"
	case FormatText, "text":
		return ".txt"
	default:
		return ".json"
	}
}

// Filename builds "<artist-slug>_<year><ext>" for a report.
func Filename(r *Report, format string) string {
	return fmt.Sprintf("%s_%d%s", Slug(r.Artist.Name), r.Year, Extension(format))
}

// Slug folds s to lowercase ASCII and joins its alphanumeric runs with hyphens.
// Diacritics are stripped, so "Sigur Rós" becomes "sigur-ros".
func Slug(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		folded = s
	}

	fields := strings.FieldsFunc(strings.ToLower(folded), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	if len(fields) == 0 {
		return "artist"
	}
	return strings.Join(fields, "-")
}

// WriteReport renders r in format and writes it to path, creating parent directories.
func WriteReport(r *Report, format, path string) (string, error) {
	data, err := Render(r, format)
	if err != nil {
		return "", err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}
