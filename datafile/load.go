package datafile

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"

	"github.com/fmantz/speedtracker/defs"
)

// Load reads the records of all files in paths, in the given order, and keeps
// those whose day lies within [from, to]. Unreadable files, unreadable lines
// and lines that cannot be parsed are logged and skipped.
func Load(paths []string, from, to time.Time) []defs.Record {
	from, to = day(from), day(to)

	var records []defs.Record
	for _, path := range paths {
		records = append(records, loadFile(path, from, to)...)
	}
	log.Debugf("Loaded %s records from %d files", humanize.Comma(int64(len(records))), len(paths))
	return records
}

func loadFile(path string, from, to time.Time) []defs.Record {
	f, err := os.Open(path)
	if err != nil {
		log.Errorf("Could not open data file %s: %s", path, err)
		return nil
	}
	defer f.Close()

	if fi, err := f.Stat(); err == nil {
		log.Debugf("Reading %s (%s)", path, humanize.Bytes(uint64(fi.Size())))
	}

	var records []defs.Record
	reader := bufio.NewReader(f)
	for n := 1; ; n++ {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			log.Errorf("Could not read line %d of %s: %s", n, path, err)
			break
		}

		if rec, ok := parseLine(path, n, line); ok {
			if d := rec.Date(); !d.Before(from) && !d.After(to) {
				records = append(records, *rec)
			}
		}

		if err != nil {
			// io.EOF
			break
		}
	}
	return records
}

func parseLine(path string, n int, line string) (*defs.Record, bool) {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		log.Debugf("Skipping empty line %d of %s", n, path)
		return nil, false
	}
	rec, err := defs.ParseRecord(line)
	if err != nil {
		log.Errorf("Could not parse json: '%s' (%s:%d), message = '%s'", line, path, n, err)
		return nil, false
	}
	return rec, true
}

// day truncates t to its calendar day
func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
