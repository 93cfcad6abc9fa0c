package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestForRun(t *testing.T) {
	workDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(workDir, "data"), 0755); err != nil {
		t.Fatal(err)
	}
	cfg := Default()
	cfg.DataDir = "data"

	s, err := ForRun(cfg, workDir, time.Date(2022, 1, 15, 10, 30, 0, 0, time.Local))
	if err != nil {
		t.Fatalf("ForRun() error = %v", err)
	}
	if want := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC); !s.From.Equal(want) {
		t.Errorf("From = %v, want %v", s.From, want)
	}
	if want := time.Date(2022, 1, 15, 0, 0, 0, 0, time.UTC); !s.To.Equal(want) {
		t.Errorf("To = %v, want %v", s.To, want)
	}
	if want := filepath.Join(workDir, "data", "2022-01-DATA.json"); s.DataFile != want {
		t.Errorf("DataFile = %q, want %q", s.DataFile, want)
	}
	if want := filepath.Join(workDir, "index.html"); s.OutputFile != want {
		t.Errorf("OutputFile = %q, want %q", s.OutputFile, want)
	}
	if s.FirstFile() != "2022-01-DATA.json" || s.LastFile() != "2022-01-DATA.json" {
		t.Errorf("file range = %s..%s", s.FirstFile(), s.LastFile())
	}
}

func TestForRunMissingDataDir(t *testing.T) {
	cfg := Default()
	cfg.DataDir = "missing"
	if _, err := ForRun(cfg, t.TempDir(), time.Now()); !errors.Is(err, ErrNoAccess) {
		t.Errorf("ForRun() error = %v, want ErrNoAccess", err)
	}
}

func TestForRange(t *testing.T) {
	workDir := t.TempDir()
	output := filepath.Join(workDir, "report.html")

	tests := []struct {
		name     string
		from, to string
		wantErr  error
	}{
		{"valid", "2021-12-20", "2022-02-03", nil},
		{"single day", "2022-01-15", "2022-01-15", nil},
		{"bad from", "2022-13-01", "2022-02-03", ErrInvalidDate},
		{"bad to", "2022-01-01", "03.02.2022", ErrInvalidDate},
		{"reversed", "2022-02-03", "2022-01-01", ErrDateOrder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ForRange(Default(), workDir, tt.from, tt.to, output)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ForRange() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ForRange() error = %v", err)
			}
			if s.From.Format("2006-01-02") != tt.from || s.To.Format("2006-01-02") != tt.to {
				t.Errorf("range = %v..%v", s.From, s.To)
			}
			if s.OutputFile != output || s.DataFile != "" {
				t.Errorf("unexpected setup: %+v", s)
			}
		})
	}
}

func TestForRangeWithoutDataDir(t *testing.T) {
	workDir := t.TempDir()
	cfg := Default()
	cfg.DataDir = "data"

	s, err := ForRange(cfg, workDir, "2022-01-01", "2022-01-31", filepath.Join(workDir, "out.html"))
	if err != nil {
		t.Fatalf("ForRange() error = %v", err)
	}
	if want := filepath.Join(workDir, "data"); s.DataDir != want {
		t.Errorf("DataDir = %q, want %q", s.DataDir, want)
	}
}

func TestForRangeUnwritableOutput(t *testing.T) {
	output := filepath.Join(t.TempDir(), "missing", "out.html")
	if _, err := ForRange(Default(), t.TempDir(), "2022-01-01", "2022-01-31", output); !errors.Is(err, ErrNoAccess) {
		t.Errorf("ForRange() error = %v, want ErrNoAccess", err)
	}
}

func TestForRangeFileBounds(t *testing.T) {
	s, err := ForRange(Default(), t.TempDir(), "2021-12-20", "2022-02-03", filepath.Join(t.TempDir(), "out.html"))
	if err != nil {
		t.Fatal(err)
	}
	if s.FirstFile() != "2021-12-DATA.json" || s.LastFile() != "2022-02-DATA.json" {
		t.Errorf("file range = %s..%s", s.FirstFile(), s.LastFile())
	}
}

func TestResolveCmd(t *testing.T) {
	workDir := t.TempDir()
	if got := resolveCmd(workDir, "speedtestJson"); got != "speedtestJson" {
		t.Errorf("resolveCmd() = %q, want PATH lookup", got)
	}
	if got := resolveCmd(workDir, "bin/speedtestJson"); got != filepath.Join(workDir, "bin", "speedtestJson") {
		t.Errorf("resolveCmd() = %q, want path below work dir", got)
	}

	local := filepath.Join(workDir, "speedtestJson")
	if err := os.WriteFile(local, nil, 0755); err != nil {
		t.Fatal(err)
	}
	if got := resolveCmd(workDir, "speedtestJson"); got != local {
		t.Errorf("resolveCmd() = %q, want %q", got, local)
	}
}
