// Package datafile manages the monthly NDJSON files the measurements are
// appended to. All records of one calendar month live in one file named
// after defs.DataFileNameFormat.
package datafile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/fmantz/speedtracker/defs"
)

// FileName returns the name of the data file that holds the records of the
// month t falls in.
func FileName(t time.Time) string {
	return t.Format(defs.DataFileNameFormat)
}

// Select returns the paths of the entries directly under dir whose name
// satisfies first <= name <= last, sorted by name. A directory that cannot be
// listed yields no paths, a freshly set up tracker has no data yet.
func Select(dir, first, last string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Warnf("Could not list data dir %s: %s", dir, err)
		return nil
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if name := e.Name(); first <= name && name <= last {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	paths := make([]string, 0, len(names))
	for _, name := range names {
		paths = append(paths, filepath.Join(dir, name))
	}
	return paths
}

// Append appends data to the file at path, creating it if needed. A missing
// trailing newline is added so that each append is exactly one line block.
func Append(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open data file: %w", err)
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("append to data file: %w", err)
	}
	return f.Close()
}
