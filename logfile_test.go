package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestFileHook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "speedtracker.log")

	logger := log.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(log.DebugLevel)
	logger.AddHook(newFileHook(path, 8096))

	logger.Debug("loaded config")
	logger.Errorf("Speed test failed: %s", "exit status 3")

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(b)
	for _, want := range []string{"level=debug", `msg="loaded config"`, "level=error", "exit status 3"} {
		if !strings.Contains(content, want) {
			t.Errorf("log file does not contain %q:\n%s", want, content)
		}
	}
}

func TestMaxSizeMB(t *testing.T) {
	tests := []struct {
		kb, want int
	}{
		{1, 1},
		{1024, 1},
		{2048, 2},
		{8096, 7},
	}
	for _, tt := range tests {
		if got := maxSizeMB(tt.kb); got != tt.want {
			t.Errorf("maxSizeMB(%d) = %d, want %d", tt.kb, got, tt.want)
		}
	}
}
