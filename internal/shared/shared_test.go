package shared

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestLoggers(t *testing.T) {
	t.Run("NewLogger writes to buffer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		WithLogger(logger, "component", "test").Info("hello")

		if !strings.Contains(buf.String(), "hello") || !strings.Contains(buf.String(), "component=test") {
			t.Errorf("unexpected log output: %q", buf.String())
		}
	})

	t.Run("SetLogLevel filters debug", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		SetLogLevel(logger, log.InfoLevel)
		logger.Debug("hidden")

		if buf.Len() != 0 {
			t.Errorf("expected debug line to be filtered, got %q", buf.String())
		}
	})

	t.Run("NewFileLogger creates directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "app.log")
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("NewFileLogger() error = %v", err)
		}
		logger.Info("written")
	})
}

func TestHelpers(t *testing.T) {
	if id := GenerateID(); len(id) != 36 {
		t.Errorf("expected 36 character uuid, got %q", id)
	}

	if got := VisibilityString(true); got != "Public" {
		t.Errorf("VisibilityString(true) = %s", got)
	}
	if got := VisibilityString(false); got != "Private" {
		t.Errorf("VisibilityString(false) = %s", got)
	}

	if got := Pluralize(1, "song"); got != "song" {
		t.Errorf("Pluralize(1) = %s", got)
	}
	if got := Pluralize(3, "song"); got != "songs" {
		t.Errorf("Pluralize(3) = %s", got)
	}

	data, err := MarshalJSON(map[string]int{"a": 1}, false)
	if err != nil || string(data) != `{"a":1}` {
		t.Errorf("MarshalJSON() = %s, %v", data, err)
	}
}
