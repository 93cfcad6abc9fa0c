package defs

var (
	BuildDate   string
	ProgName    = "speedtracker"
	ProgVersion = "dev"
)

// file names
const (
	ConfigFileName   = "speedtracker.yaml"
	TemplateFileName = "template.html"
	SpeedTestCmd     = "speedtestJson"
)

// date formats, all naive wall-clock times
const (
	// DataFileNameFormat names the monthly data files, e.g. 2022-01-DATA.json.
	// The names sort lexicographically in chronological order.
	DataFileNameFormat = "2006-01-DATA.json"
	DateFormat         = "2006-01-02"
	DateTimeFormat     = "2006-01-02 15:04:05"
)

// config defaults
const (
	DefaultDataDir              = "./"
	DefaultOutputFile           = "./index.html"
	DefaultOutputXDays          = 14
	DefaultLogFile              = "./speedtracker.log"
	DefaultLogFileMaxLengthInKB = 8096
	DefaultSpeedTestTimeout     = "5m"
	DefaultPingCount            = 5
	DefaultSchedule             = "*/30 * * * *"
)

// chart defaults
const (
	DefaultFill = false

	// MegaBitFactor converts bits per second to megabits per second.
	MegaBitFactor = 1000000.0
	// NeutralDivisor leaves a value unchanged.
	NeutralDivisor = 1.0

	// in milliseconds
	DefaultLatencyLabel        = "latency"
	DefaultLatencyColor        = "green"
	DefaultLatencyValue uint32 = 100

	// in milliseconds
	DefaultJitterLabel        = "jitter"
	DefaultJitterColor        = "red"
	DefaultJitterValue uint32 = 100

	// in megabits per second
	DefaultDownloadLabel                 = "download"
	DefaultDownloadColor                 = "green"
	DefaultDownloadValue         float64 = 0.0
	DefaultExpectedDownloadLabel         = "expected download"
	DefaultExpectedDownloadColor         = "lime"
	DefaultExpectedDownloadValue float64 = 250.0

	// in megabits per second
	DefaultUploadLabel                 = "upload"
	DefaultUploadColor                 = "red"
	DefaultUploadValue         float64 = 0.0
	DefaultExpectedUploadLabel         = "expected upload"
	DefaultExpectedUploadColor         = "orange"
	DefaultExpectedUploadValue float64 = 25.0
)

// chart ids
const (
	IDLatency  = "latency"
	IDJitter   = "jitter"
	IDDownload = "download"
	IDUpload   = "upload"
)
