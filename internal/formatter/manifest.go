package formatter

import (
	"fmt"
	"os"
	"time"

	"github.com/desertthunder/setlistsync/internal/models"
	"github.com/desertthunder/setlistsync/internal/shared"
)

// ManifestEntry is the outcome of one year of a multi-year report.
type ManifestEntry struct {
	Year         int    `json:"year"`
	Performances int    `json:"performances"`
	Songs        int    `json:"songs"`
	File         string `json:"file,omitempty"`
	Error        string `json:"error,omitempty"`
}

// Manifest summarizes a multi-year report run.
type Manifest struct {
	Artist      models.Artist   `json:"artist"`
	Format      string          `json:"format"`
	OutputDir   string          `json:"output_dir"`
	GeneratedAt time.Time       `json:"generated_at"`
	Succeeded   int             `json:"succeeded"`
	Failed      int             `json:"failed"`
	Entries     []ManifestEntry `json:"entries"`
}

// WriteManifest writes m as indented JSON to path.
func WriteManifest(m *Manifest, path string) error {
	data, err := shared.MarshalJSON(m, true)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
