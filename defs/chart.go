package defs

// Number is a value type a chart can be configured with
type Number interface {
	~uint32 | ~float64
}

// ChartSpec configures one chart of the report
type ChartSpec[N Number] struct {
	// ID positions the chart output in the template
	ID          string `yaml:"id"`
	Label       string `yaml:"label"`
	Fill        bool   `yaml:"fill"`
	BorderColor string `yaml:"border_color"`
	// DefaultValue is plotted when a record lacks the value, in display units
	DefaultValue N                  `yaml:"default_value"`
	Expected     *ExpectedConfig[N] `yaml:"expected_value,omitempty"`
}

// ExpectedConfig configures a flat reference line, e.g. the bandwidth of the
// internet contract
type ExpectedConfig[N Number] struct {
	Label       string `yaml:"label"`
	Fill        bool   `yaml:"fill"`
	BorderColor string `yaml:"border_color"`
	Value       N      `yaml:"value"`
}

// Charts holds the configuration of all four charts
type Charts struct {
	Latency  ChartSpec[uint32]  `yaml:"latency_chart"`
	Jitter   ChartSpec[uint32]  `yaml:"jitter_chart"`
	Download ChartSpec[float64] `yaml:"download_chart"`
	Upload   ChartSpec[float64] `yaml:"upload_chart"`
}

// DefaultCharts returns the chart configuration used when the config file
// does not override it.
func DefaultCharts() Charts {
	return Charts{
		Latency: ChartSpec[uint32]{
			ID:           IDLatency,
			Label:        DefaultLatencyLabel,
			Fill:         DefaultFill,
			BorderColor:  DefaultLatencyColor,
			DefaultValue: DefaultLatencyValue,
		},
		Jitter: ChartSpec[uint32]{
			ID:           IDJitter,
			Label:        DefaultJitterLabel,
			Fill:         DefaultFill,
			BorderColor:  DefaultJitterColor,
			DefaultValue: DefaultJitterValue,
		},
		Download: ChartSpec[float64]{
			ID:           IDDownload,
			Label:        DefaultDownloadLabel,
			Fill:         DefaultFill,
			BorderColor:  DefaultDownloadColor,
			DefaultValue: DefaultDownloadValue,
			Expected: &ExpectedConfig[float64]{
				Label:       DefaultExpectedDownloadLabel,
				Fill:        DefaultFill,
				BorderColor: DefaultExpectedDownloadColor,
				Value:       DefaultExpectedDownloadValue,
			},
		},
		Upload: ChartSpec[float64]{
			ID:           IDUpload,
			Label:        DefaultUploadLabel,
			Fill:         DefaultFill,
			BorderColor:  DefaultUploadColor,
			DefaultValue: DefaultUploadValue,
			Expected: &ExpectedConfig[float64]{
				Label:       DefaultExpectedUploadLabel,
				Fill:        DefaultFill,
				BorderColor: DefaultExpectedUploadColor,
				Value:       DefaultExpectedUploadValue,
			},
		},
	}
}
