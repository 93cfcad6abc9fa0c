package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fmantz/speedtracker/datafile"
	"github.com/fmantz/speedtracker/defs"
)

// Setup holds everything a single invocation needs, with all paths resolved
// and checked.
type Setup struct {
	DataDir string
	// DataFile receives the new sample, empty when nothing is measured
	DataFile     string
	OutputFile   string
	TemplateFile string
	SpeedTestCmd string
	// From and To are the inclusive civil dates of the report
	From   time.Time
	To     time.Time
	Charts defs.Charts
}

// ForRun derives the setup of a run: measure now and report the last
// OutputXDays days up to today.
func ForRun(cfg *Config, workDir string, now time.Time) (*Setup, error) {
	today := civilDate(now)
	s := &Setup{
		DataDir:      Resolve(workDir, cfg.DataDir),
		OutputFile:   Resolve(workDir, cfg.OutputFile),
		TemplateFile: Resolve(workDir, cfg.TemplateFile),
		SpeedTestCmd: resolveCmd(workDir, cfg.SpeedTestCmd),
		From:         today.AddDate(0, 0, -cfg.OutputXDays),
		To:           today,
		Charts:       cfg.Charts,
	}
	s.DataFile = filepath.Join(s.DataDir, datafile.FileName(now))

	if err := CheckDirAccess(s.DataDir, true); err != nil {
		return nil, err
	}
	if err := CheckFileAccess(s.DataFile); err != nil {
		return nil, err
	}
	if err := CheckFileAccess(s.OutputFile); err != nil {
		return nil, err
	}
	return s, nil
}

// ForRange derives the setup of a report over [from, to] written to output.
// The dates are given as YYYY-MM-DD. The data dir is not checked, a missing
// one renders an empty report.
func ForRange(cfg *Config, workDir, from, to, output string) (*Setup, error) {
	f, err := ParseDate(from)
	if err != nil {
		return nil, err
	}
	t, err := ParseDate(to)
	if err != nil {
		return nil, err
	}
	if f.After(t) {
		return nil, fmt.Errorf("%w: %s > %s", ErrDateOrder, from, to)
	}

	s := &Setup{
		DataDir:      Resolve(workDir, cfg.DataDir),
		OutputFile:   output,
		TemplateFile: Resolve(workDir, cfg.TemplateFile),
		From:         f,
		To:           t,
		Charts:       cfg.Charts,
	}
	if err := CheckFileAccess(s.OutputFile); err != nil {
		return nil, err
	}
	return s, nil
}

// FirstFile and LastFile bound the data file names of the report range
func (s *Setup) FirstFile() string { return datafile.FileName(s.From) }
func (s *Setup) LastFile() string  { return datafile.FileName(s.To) }

// ParseDate parses a YYYY-MM-DD command line date
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(defs.DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q, expected format %s", ErrInvalidDate, s, defs.DateFormat)
	}
	return t, nil
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Resolve returns path relative to workDir unless it is absolute
func Resolve(workDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(workDir, path)
}

// resolveCmd prefers an executable next to the config file, a bare command
// name is looked up in PATH otherwise
func resolveCmd(workDir, cmd string) string {
	p := Resolve(workDir, cmd)
	if _, err := os.Stat(p); err == nil || filepath.Base(cmd) != cmd {
		return p
	}
	return cmd
}
