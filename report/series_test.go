package report

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/fmantz/speedtracker/defs"
)

func u32(v uint32) *uint32    { return &v }
func f64(v float64) *float64 { return &v }

func record(hour int, p *defs.Performance) defs.Record {
	return defs.Record{
		Timestamp:   time.Date(2022, 1, 15, hour, 0, 0, 0, time.UTC),
		Performance: p,
	}
}

func TestBuildChartDownloadUnits(t *testing.T) {
	records := []defs.Record{
		record(10, &defs.Performance{Latency: 10, Download: f64(250000000.0)}),
	}
	c := BuildChart(records, DownloadMetric(defs.DefaultCharts().Download))

	if got := c.Datasets[0].Data[0].Y; got != 250.0 {
		t.Errorf("plotted download = %v, want 250", got)
	}
	if c.Stats == nil {
		t.Fatal("Stats = nil, want statistics")
	}
	if c.Stats.Median != 250.0 || c.Stats.Average != 250.0 || c.Stats.StandardDeviation != 0 {
		t.Errorf("Stats = %+v, want 250 Mbit/s", *c.Stats)
	}
}

func TestBuildChartDefaults(t *testing.T) {
	spec := defs.DefaultCharts().Jitter
	spec.DefaultValue = 99
	records := []defs.Record{
		record(10, &defs.Performance{Latency: 10, Jitter: u32(2)}),
		record(11, &defs.Performance{Latency: 20}),
		record(12, nil),
		record(13, &defs.Performance{Latency: 30, Jitter: u32(4)}),
	}
	c := BuildChart(records, JitterMetric(spec))

	var ys []float64
	for _, p := range c.Datasets[0].Data {
		ys = append(ys, p.Y)
	}
	want := []float64{2, 99, 99, 4}
	for i := range want {
		if ys[i] != want[i] {
			t.Fatalf("plotted jitter = %v, want %v", ys, want)
		}
	}
	if x := c.Datasets[0].Data[1].X; x != "2022-01-15 11:00:00" {
		t.Errorf("x = %q, want formatted timestamp", x)
	}
	// defaults never count
	if c.Stats == nil || c.Stats.Average != 3 || c.Stats.Median != 4 {
		t.Errorf("Stats = %+v, want average 3 and median 4", c.Stats)
	}
}

func TestBuildChartLatencyDefaultOnlyWithoutPerformance(t *testing.T) {
	spec := defs.DefaultCharts().Latency
	records := []defs.Record{
		record(10, &defs.Performance{Latency: 0}),
		record(11, nil),
	}
	c := BuildChart(records, LatencyMetric(spec))
	if y := c.Datasets[0].Data[0].Y; y != 0 {
		t.Errorf("latency of a present block = %v, want 0", y)
	}
	if y := c.Datasets[0].Data[1].Y; y != float64(spec.DefaultValue) {
		t.Errorf("latency of a missing block = %v, want default %d", y, spec.DefaultValue)
	}
	if c.Stats == nil || c.Stats.Average != 0 {
		t.Errorf("Stats = %+v, want a single 0 value", c.Stats)
	}
}

func TestBuildChartExpectedLine(t *testing.T) {
	spec := defs.DefaultCharts().Upload
	records := []defs.Record{
		record(8, &defs.Performance{Latency: 10, Upload: f64(20000000)}),
		record(9, nil),
		record(10, &defs.Performance{Latency: 10, Upload: f64(30000000)}),
	}
	c := BuildChart(records, UploadMetric(spec))
	if len(c.Datasets) != 2 {
		t.Fatalf("got %d datasets, want actual and expected", len(c.Datasets))
	}
	e := c.Datasets[1]
	if e.Label != spec.Expected.Label || e.BorderColor != spec.Expected.BorderColor || len(e.Data) != 2 {
		t.Fatalf("unexpected expected dataset: %+v", e)
	}
	if e.Data[0].X != "2022-01-15 08:00:00" || e.Data[1].X != "2022-01-15 10:00:00" {
		t.Errorf("expected line spans %q..%q", e.Data[0].X, e.Data[1].X)
	}
	if e.Data[0].Y != 25 || e.Data[1].Y != 25 {
		t.Errorf("expected line at %v/%v, want 25", e.Data[0].Y, e.Data[1].Y)
	}
}

func TestBuildChartEmpty(t *testing.T) {
	spec := defs.DefaultCharts().Download
	c := BuildChart(nil, DownloadMetric(spec))

	if c.Stats != nil {
		t.Errorf("Stats = %+v, want nil", c.Stats)
	}
	if len(c.Datasets) != 2 || len(c.Datasets[0].Data) != 0 {
		t.Fatalf("unexpected datasets: %+v", c.Datasets)
	}
	e := c.Datasets[1].Data
	if len(e) != 2 || e[0].X != "" || e[1].X != "" || e[0].Y != spec.Expected.Value || e[1].Y != spec.Expected.Value {
		t.Errorf("expected line of empty series = %+v", e)
	}

	// no expected line configured
	if c := BuildChart(nil, LatencyMetric(defs.DefaultCharts().Latency)); len(c.Datasets) != 1 {
		t.Errorf("got %d datasets, want 1", len(c.Datasets))
	}
}

func TestBuildCharts(t *testing.T) {
	records := []defs.Record{
		record(10, &defs.Performance{Latency: 10, Jitter: u32(1), Download: f64(100e6), Upload: f64(10e6)}),
	}
	charts := BuildCharts(records, defs.DefaultCharts())

	if got := len(charts.ResponseTimes()); got != 2 {
		t.Errorf("ResponseTimes() has %d datasets, want 2", got)
	}
	// download and upload both have an expected line
	if got := len(charts.Throughput()); got != 4 {
		t.Errorf("Throughput() has %d datasets, want 4", got)
	}

	b, err := json.Marshal(charts.Latency.Datasets[0])
	if err != nil {
		t.Fatal(err)
	}
	want := `{"label":"latency","data":[{"x":"2022-01-15 10:00:00","y":10}],"fill":false,"borderColor":"green"}`
	if string(b) != want {
		t.Errorf("dataset JSON = %s, want %s", b, want)
	}
}
