package shared

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNormalizeTrackKey(t *testing.T) {
	tc := []struct {
		name   string
		title  string
		artist string
		want   string
	}{
		{
			name:   "basic normalization",
			title:  "Song Title",
			artist: "Artist Name",
			want:   "song title|artist name",
		},
		{
			name:   "whitespace kept",
			title:  "Let  It Be ",
			artist: " The Beatles",
			want:   "let  it be | the beatles",
		},
		{
			name:   "mixed case",
			title:  "BrEeD",
			artist: "NIRVANA",
			want:   "breed|nirvana",
		},
		{
			name:   "empty artist",
			title:  "Breed",
			artist: "",
			want:   "breed|",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTrackKey(tt.title, tt.artist); got != tt.want {
				t.Errorf("NormalizeTrackKey() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLogger(t *testing.T) {
	t.Run("NewLogger writes to the given writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		logger.Info("song added", "title", "Breed")

		if !strings.Contains(buf.String(), "song added") {
			t.Errorf("expected log output, got %q", buf.String())
		}
		if !strings.Contains(buf.String(), "title=Breed") {
			t.Errorf("expected key/value pair, got %q", buf.String())
		}
	})

	t.Run("SetLogLevel filters lower levels", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		SetLogLevel(logger, log.WarnLevel)
		logger.Info("hidden")

		if buf.Len() != 0 {
			t.Errorf("expected no output below warn level, got %q", buf.String())
		}
	})

	t.Run("ParseLevel", func(t *testing.T) {
		tests := map[string]log.Level{
			"debug":   log.DebugLevel,
			" WARN ":  log.WarnLevel,
			"error":   log.ErrorLevel,
			"":        log.InfoLevel,
			"chatty!": log.InfoLevel,
		}
		for in, want := range tests {
			if got := ParseLevel(in); got != want {
				t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
			}
		}
	})

	t.Run("NewFileLogger creates the log directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "woodshed.log")
		logger, err := NewFileLogger(path, FileLogOpts{MaxSizeMB: 1})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		logger.Info("hello")

		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected log file to exist: %v", err)
		}
	})

	t.Run("NewFileLogger rejects empty path", func(t *testing.T) {
		if _, err := NewFileLogger("", FileLogOpts{}); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestGenerateID(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id := GenerateID()
		if len(id) != 36 {
			t.Fatalf("expected uuid string, got %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}

func TestOpenBrowser(t *testing.T) {
	origRuntime, origStart := getRuntime, startCommand
	t.Cleanup(func() { getRuntime, startCommand = origRuntime, origStart })

	var started *exec.Cmd
	startCommand = func(cmd *exec.Cmd) error {
		started = cmd
		return nil
	}

	t.Run("linux uses xdg-open", func(t *testing.T) {
		getRuntime = func() string { return "linux" }
		if err := OpenBrowser("https://open.spotify.com/search/Breed%20Nirvana"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if started == nil || started.Args[0] != "xdg-open" {
			t.Errorf("expected xdg-open command, got %+v", started)
		}
	})

	t.Run("rejects non-http URLs", func(t *testing.T) {
		if err := OpenBrowser("file:///etc/passwd"); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("unsupported platform", func(t *testing.T) {
		getRuntime = func() string { return "plan9" }
		if err := OpenBrowser("https://example.com"); err == nil {
			t.Error("expected error for unsupported platform")
		}
	})
}

func TestMarshalJSON(t *testing.T) {
	v := map[string]string{"title": "Breed"}

	compact, err := MarshalJSON(v, false)
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}
	if string(compact) != `{"title":"Breed"}` {
		t.Errorf("unexpected compact output %s", compact)
	}

	pretty, err := MarshalJSON(v, true)
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}
	if string(pretty) != "{\n  \"title\": \"Breed\"\n}" {
		t.Errorf("unexpected pretty output %s", pretty)
	}
}
