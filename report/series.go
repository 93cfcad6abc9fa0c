package report

import (
	log "github.com/sirupsen/logrus"

	"github.com/fmantz/speedtracker/defs"
)

// Point is one plotted sample
type Point struct {
	X string  `json:"x"`
	Y float64 `json:"y"`
}

// Dataset is one line of a chart, in the shape the chart library expects
type Dataset struct {
	Label       string  `json:"label"`
	Data        []Point `json:"data"`
	Fill        bool    `json:"fill"`
	BorderColor string  `json:"borderColor"`
}

// Chart holds the datasets of one metric and their statistics. Stats is nil
// when no record carried the metric.
type Chart struct {
	ID       string
	Label    string
	Datasets []Dataset
	Stats    *Statistics
}

// Charts holds the charts of all four metrics
type Charts struct {
	Latency  Chart
	Jitter   Chart
	Download Chart
	Upload   Chart
}

// ResponseTimes returns the latency and jitter datasets
func (c *Charts) ResponseTimes() []Dataset {
	return append(append([]Dataset{}, c.Latency.Datasets...), c.Jitter.Datasets...)
}

// Throughput returns the download and upload datasets
func (c *Charts) Throughput() []Dataset {
	return append(append([]Dataset{}, c.Download.Datasets...), c.Upload.Datasets...)
}

// All returns the charts in report order
func (c *Charts) All() []Chart {
	return []Chart{c.Latency, c.Jitter, c.Download, c.Upload}
}

// Metric describes how a chart reads its value from a record
type Metric[N defs.Number] struct {
	Spec defs.ChartSpec[N]
	// Value returns the raw value of the metric and whether it is present
	Value func(p *defs.Performance) (N, bool)
	// Divisor converts raw values to display units
	Divisor float64
}

// LatencyMetric reads the latency in milliseconds
func LatencyMetric(spec defs.ChartSpec[uint32]) Metric[uint32] {
	return Metric[uint32]{
		Spec:    spec,
		Value:   func(p *defs.Performance) (uint32, bool) { return p.Latency, true },
		Divisor: defs.NeutralDivisor,
	}
}

// JitterMetric reads the jitter in milliseconds
func JitterMetric(spec defs.ChartSpec[uint32]) Metric[uint32] {
	return Metric[uint32]{
		Spec:    spec,
		Value:   func(p *defs.Performance) (uint32, bool) { return deref(p.Jitter) },
		Divisor: defs.NeutralDivisor,
	}
}

// DownloadMetric reads the download speed and displays it in megabits
func DownloadMetric(spec defs.ChartSpec[float64]) Metric[float64] {
	return Metric[float64]{
		Spec:    spec,
		Value:   func(p *defs.Performance) (float64, bool) { return deref(p.Download) },
		Divisor: defs.MegaBitFactor,
	}
}

// UploadMetric reads the upload speed and displays it in megabits
func UploadMetric(spec defs.ChartSpec[float64]) Metric[float64] {
	return Metric[float64]{
		Spec:    spec,
		Value:   func(p *defs.Performance) (float64, bool) { return deref(p.Upload) },
		Divisor: defs.MegaBitFactor,
	}
}

func deref[N defs.Number](v *N) (N, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}

// BuildChart maps records to the plotted datasets of metric m and computes
// the statistics of the values that are actually present. Records lacking
// the value are plotted with the default value of the chart but never
// counted in the statistics.
func BuildChart[N defs.Number](records []defs.Record, m Metric[N]) Chart {
	points := make([]Point, 0, len(records))
	values := make([]float64, 0, len(records))

	for i := range records {
		r := &records[i]
		p := Point{
			X: r.Timestamp.Format(defs.DateTimeFormat),
			Y: float64(m.Spec.DefaultValue),
		}
		if r.Performance != nil {
			if v, ok := m.Value(r.Performance); ok {
				p.Y = float64(v) / m.Divisor
				values = append(values, float64(v))
			}
		}
		points = append(points, p)
	}

	chart := Chart{
		ID:    m.Spec.ID,
		Label: m.Spec.Label,
		Datasets: []Dataset{{
			Label:       m.Spec.Label,
			Data:        points,
			Fill:        m.Spec.Fill,
			BorderColor: m.Spec.BorderColor,
		}},
	}
	if e := m.Spec.Expected; e != nil {
		chart.Datasets = append(chart.Datasets, expectedDataset(e, points))
	}

	stats, err := Compute(values)
	if err != nil {
		// ErrEmptyInput, Stats stays nil
		log.Debugf("No %s values in the selected range: %s", m.Spec.ID, err)
		return chart
	}
	scaled := stats.Scale(m.Divisor)
	chart.Stats = &scaled
	return chart
}

// expectedDataset returns a flat line at the expected value spanning the
// actual data
func expectedDataset[N defs.Number](e *defs.ExpectedConfig[N], points []Point) Dataset {
	var first, last string
	if len(points) > 0 {
		first, last = points[0].X, points[len(points)-1].X
	}
	return Dataset{
		Label: e.Label,
		Data: []Point{
			{X: first, Y: float64(e.Value)},
			{X: last, Y: float64(e.Value)},
		},
		Fill:        e.Fill,
		BorderColor: e.BorderColor,
	}
}

// BuildCharts builds the charts of all four metrics
func BuildCharts(records []defs.Record, cfg defs.Charts) Charts {
	return Charts{
		Latency:  BuildChart(records, LatencyMetric(cfg.Latency)),
		Jitter:   BuildChart(records, JitterMetric(cfg.Jitter)),
		Download: BuildChart(records, DownloadMetric(cfg.Download)),
		Upload:   BuildChart(records, UploadMetric(cfg.Upload)),
	}
}
