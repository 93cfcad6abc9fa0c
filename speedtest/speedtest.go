// Package speedtest takes a new sample by running the external speed test
// executable and appending its output to the data file of the month.
package speedtest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"

	"github.com/fmantz/speedtracker/datafile"
	"github.com/fmantz/speedtracker/defs"
)

// Outcome tells what a run appended to the data file
type Outcome int

const (
	// Failed means nothing was appended
	Failed Outcome = iota
	// Measured means the output of the speed test was appended
	Measured
	// Probed means the speed test failed and a ping probe record was appended
	Probed
)

func (o Outcome) String() string {
	switch o {
	case Measured:
		return "measured"
	case Probed:
		return "probed"
	default:
		return "failed"
	}
}

var errNoOutput = errors.New("speed test printed nothing")

// Runner executes the speed test tool
type Runner struct {
	// Cmd is the speed test executable, it prints one JSON record on stdout
	Cmd     string
	Timeout time.Duration
	// DataFile receives the record
	DataFile string
	// PingHost is probed when the speed test fails, empty disables the probe
	PingHost  string
	PingCount int
	// Silent disables the spinner
	Silent bool
	// Now defaults to time.Now
	Now func() time.Time
}

// Run takes one sample. A failing speed test is not an error, it is logged
// and reported as outcome; only a sample that could not be stored is.
func (r *Runner) Run(ctx context.Context) (Outcome, error) {
	start := r.now()

	out, err := r.execute(ctx)
	if err == nil {
		if err := datafile.Append(r.DataFile, out); err != nil {
			return Failed, err
		}
		log.Debugf("Appended %s to %s", humanize.Bytes(uint64(len(out))), r.DataFile)
		return Measured, nil
	}

	log.Errorf("Speed test failed (started %s, stopped %s): %s",
		start.Format(defs.DateTimeFormat), r.now().Format(defs.DateTimeFormat), err)
	if r.PingHost == "" {
		return Failed, nil
	}

	latency, jitter, err := Probe(ctx, r.PingHost, r.PingCount)
	if err != nil {
		log.Errorf("Failed to ping %s: %s", r.PingHost, err)
		return Failed, nil
	}
	rec := probeRecord(start, latency, jitter)
	b, err := rec.MarshalJSON()
	if err != nil {
		return Failed, fmt.Errorf("marshal probe record: %w", err)
	}
	if err := datafile.Append(r.DataFile, b); err != nil {
		return Failed, err
	}
	log.Infof("Recorded latency %d ms (%d ms jitter) of %s", rec.Performance.Latency, *rec.Performance.Jitter, r.PingHost)
	return Probed, nil
}

// execute runs the tool and returns its trimmed stdout
func (r *Runner) execute(ctx context.Context) ([]byte, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	var pb *spinner.Spinner
	if !r.Silent {
		pb = spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		pb.Prefix = "Testing...  "
		pb.Start()
		defer pb.Stop()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.Cmd)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// children of the tool may keep the pipes open after a kill
	cmd.WaitDelay = time.Second

	log.Debugf("Running %s", r.Cmd)
	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("timed out after %s", r.Timeout)
		}
		return nil, commandError(err, stderr.String())
	}

	// the tool ran but e.g. found no server
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		log.Errorf("Speed test reported: %s", msg)
	}

	out := bytes.TrimSpace(stdout.Bytes())
	if len(out) == 0 {
		return nil, errNoOutput
	}
	return out, nil
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}
