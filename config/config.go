// Package config loads the speedtracker configuration file and derives the
// settings of a single invocation from it.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	yaml "go.yaml.in/yaml/v3"

	"github.com/fmantz/speedtracker/defs"
)

const header = "# speedtracker configuration, relative paths are resolved against the directory of this file\n"

// Config is the content of the configuration file
type Config struct {
	DataDir    string `yaml:"data_dir"`
	OutputFile string `yaml:"output_file"`
	// OutputXDays is the number of days before today the report of a run covers
	OutputXDays          int    `yaml:"output_xdays"`
	LogFile              string `yaml:"log_file"`
	LogFileMaxLengthInKB int    `yaml:"log_file_max_length_in_kb"`
	TemplateFile         string `yaml:"template_file"`
	SpeedTestCmd         string `yaml:"speedtest_cmd"`
	SpeedTestTimeout     string `yaml:"speedtest_timeout"`
	// PingHost is probed via ICMP when the speed test fails, empty disables
	// the probe
	PingHost  string `yaml:"ping_host"`
	PingCount int    `yaml:"ping_count"`
	// Schedule is the cron spec of the watch command
	Schedule string `yaml:"schedule"`

	Charts defs.Charts `yaml:",inline"`

	timeout time.Duration
}

// Default returns the configuration written on first start
func Default() *Config {
	return &Config{
		DataDir:              defs.DefaultDataDir,
		OutputFile:           defs.DefaultOutputFile,
		OutputXDays:          defs.DefaultOutputXDays,
		LogFile:              defs.DefaultLogFile,
		LogFileMaxLengthInKB: defs.DefaultLogFileMaxLengthInKB,
		TemplateFile:         defs.TemplateFileName,
		SpeedTestCmd:         defs.SpeedTestCmd,
		SpeedTestTimeout:     defs.DefaultSpeedTestTimeout,
		PingCount:            defs.DefaultPingCount,
		Schedule:             defs.DefaultSchedule,
		Charts:               defs.DefaultCharts(),
	}
}

// Load reads the configuration at path. A missing file is created with the
// default configuration. Keys the configuration does not know are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Infof("Config file %s does not exist, writing defaults", path)
		if err := cfg.Save(path); err != nil {
			return nil, err
		}
		return cfg, cfg.Validate()
	}
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	// an empty file keeps the defaults
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s: %s", ErrInvalidConfig, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Debugf("Loaded config %s", path)
	return cfg, nil
}

// Save writes the configuration to path
func (c *Config) Save(path string) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, append([]byte(header), b...), 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate checks the values that cannot be checked by decoding alone
func (c *Config) Validate() error {
	if c.OutputXDays <= 0 {
		return invalid("output_xdays must be > 0, got %d", c.OutputXDays)
	}
	if c.LogFileMaxLengthInKB <= 0 {
		return invalid("log_file_max_length_in_kb must be > 0, got %d", c.LogFileMaxLengthInKB)
	}
	if c.PingCount <= 0 {
		return invalid("ping_count must be > 0, got %d", c.PingCount)
	}
	if strings.TrimSpace(c.SpeedTestCmd) == "" {
		return invalid("speedtest_cmd must not be empty")
	}

	d, err := parseDurationOrDefault("speedtest_timeout", c.SpeedTestTimeout, 5*time.Minute)
	if err != nil {
		return invalid("%s", err)
	}
	c.timeout = d

	if c.Schedule != "" {
		if _, err := cron.ParseStandard(c.Schedule); err != nil {
			return invalid("schedule: %s", err)
		}
	}

	for _, id := range []string{c.Charts.Latency.ID, c.Charts.Jitter.ID, c.Charts.Download.ID, c.Charts.Upload.ID} {
		if id == "" {
			return invalid("every chart needs an id")
		}
	}
	return nil
}

// Timeout returns the time a speed test may take
func (c *Config) Timeout() time.Duration {
	if c.timeout <= 0 {
		return 5 * time.Minute
	}
	return c.timeout
}

func parseDurationOrDefault(field, raw string, def time.Duration) (time.Duration, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", field, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s: duration must be > 0", field)
	}
	return d, nil
}

func invalid(format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, a...))
}
