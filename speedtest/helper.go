package speedtest

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/fmantz/speedtracker/defs"
)

func commandError(err error, stderr string) error {
	if msg := strings.TrimSpace(stderr); msg != "" {
		return fmt.Errorf("%w: %s", err, msg)
	}
	return err
}

// probeRecord builds the latency only record of a ping probe taken at t
func probeRecord(t time.Time, latency, jitter float64) *defs.Record {
	l := toMillis(latency)
	j := toMillis(jitter)
	return &defs.Record{
		Timestamp:   wallClock(t),
		Performance: &defs.Performance{Latency: l, Jitter: &j},
	}
}

func toMillis(v float64) uint32 {
	if v <= 0 {
		return 0
	}
	if v >= math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(math.Round(v))
}

// wallClock drops the location of t, data files hold naive local times
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}
