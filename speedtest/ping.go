package speedtest

import (
	"context"
	"errors"
	"math"
	"runtime"
	"time"

	"github.com/go-ping/ping"
	log "github.com/sirupsen/logrus"
)

var errNoReply = errors.New("no ICMP echo reply")

// Probe pings host via ICMP echos and returns the average round trip time and
// the jitter, both in milliseconds
func Probe(ctx context.Context, host string, count int) (float64, float64, error) {
	p, err := ping.NewPinger(host)
	if err != nil {
		return 0, 0, err
	}

	if runtime.GOOS == "windows" {
		p.SetPrivileged(true)
	}

	p.Count = count
	p.Timeout = time.Duration(count) * time.Second
	if log.GetLevel() == log.DebugLevel {
		p.Debug = true
	}

	stop := context.AfterFunc(ctx, p.Stop)
	defer stop()

	if err := p.Run(); err != nil {
		return 0, 0, err
	}

	stats := p.Statistics()
	if len(stats.Rtts) == 0 {
		return 0, 0, errNoReply
	}
	log.Debugf("Ping %s: %d/%d replies, avg %s", host, stats.PacketsRecv, stats.PacketsSent, stats.AvgRtt)
	return float64(stats.AvgRtt.Milliseconds()), Jitter(stats.Rtts), nil
}

// Jitter smooths the differences of consecutive round trip times: a falling
// difference is weighted 0.3, a rising one 0.2. The first difference only
// seeds the comparison.
func Jitter(rtts []time.Duration) float64 {
	var lastPing, jitter float64
	for idx, rtt := range rtts {
		ms := float64(rtt.Milliseconds())
		if idx != 0 {
			instJitter := math.Abs(lastPing - ms)
			if idx > 1 {
				if jitter > instJitter {
					jitter = jitter*0.7 + instJitter*0.3
				} else {
					jitter = instJitter*0.2 + jitter*0.8
				}
			}
		}
		lastPing = ms
	}
	return jitter
}
