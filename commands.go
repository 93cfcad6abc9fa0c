package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"
	"unicode/utf8"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/fmantz/speedtracker/config"
	"github.com/fmantz/speedtracker/datafile"
	"github.com/fmantz/speedtracker/defs"
	"github.com/fmantz/speedtracker/report"
	"github.com/fmantz/speedtracker/speedtest"
)

var errDelimiter = errors.New("delimiter must be a single character")

func setLogLevel(c *cli.Context) error {
	if c.Bool(defs.OptionSilent) {
		log.SetLevel(log.WarnLevel)
	}
	if c.Bool(defs.OptionDebug) {
		log.SetLevel(log.DebugLevel)
	}
	return nil
}

// usageError prints the usage, a wrong command line is not a failure
func usageError(c *cli.Context, err error, _ bool) error {
	log.Warnf("%s", err)
	return cli.ShowAppHelp(c)
}

// fatal turns err into the exit code 1
func fatal(err error) error {
	if err == nil {
		return nil
	}
	return cli.Exit(fmt.Sprintf("Terminated due to error: %s", err), 1)
}

// loadConfig loads the configuration file and starts logging to the log
// file it names. It returns the directory relative paths are resolved against.
func loadConfig(c *cli.Context) (*config.Config, string, error) {
	path := c.String(defs.OptionConfig)
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	workDir := filepath.Dir(path)

	if cfg.LogFile != "" {
		log.AddHook(newFileHook(config.Resolve(workDir, cfg.LogFile), cfg.LogFileMaxLengthInKB))
	}
	return cfg, workDir, nil
}

// renderRange renders the report of a date range, or prints the usage when
// not called with exactly three arguments
func renderRange(c *cli.Context) error {
	// print version
	if c.Bool(defs.OptionVersion) {
		log.SetOutput(os.Stdout)
		log.Warnf("%s %s (built on %s)", defs.ProgName, defs.ProgVersion, defs.BuildDate)
		return nil
	}

	if c.NArg() != 3 {
		return cli.ShowAppHelp(c)
	}

	cfg, workDir, err := loadConfig(c)
	if err != nil {
		return fatal(err)
	}
	args := c.Args()
	s, err := config.ForRange(cfg, workDir, args.Get(0), args.Get(1), args.Get(2))
	if err != nil {
		return fatal(err)
	}
	return fatal(render(s))
}

func runOnce(c *cli.Context) error {
	cfg, workDir, err := loadConfig(c)
	if err != nil {
		return fatal(err)
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return fatal(run(ctx, cfg, workDir, c.Bool(defs.OptionSilent)))
}

func export(c *cli.Context) error {
	if c.NArg() != 3 {
		return cli.ShowSubcommandHelp(c)
	}
	delimiter, size := utf8.DecodeRuneInString(c.String(defs.OptionDelimiter))
	if size == 0 || size != len(c.String(defs.OptionDelimiter)) {
		return fatal(fmt.Errorf("%w: %q", errDelimiter, c.String(defs.OptionDelimiter)))
	}

	cfg, workDir, err := loadConfig(c)
	if err != nil {
		return fatal(err)
	}
	args := c.Args()
	s, err := config.ForRange(cfg, workDir, args.Get(0), args.Get(1), args.Get(2))
	if err != nil {
		return fatal(err)
	}
	return fatal(writeCSV(s, delimiter))
}

func watch(c *cli.Context) error {
	cfg, workDir, err := loadConfig(c)
	if err != nil {
		return fatal(err)
	}
	if cfg.Schedule == "" {
		return fatal(fmt.Errorf("%w: schedule is empty", config.ErrInvalidConfig))
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := cron.PrintfLogger(log.StandardLogger())
	scheduler := cron.New(cron.WithLogger(logger), cron.WithChain(cron.SkipIfStillRunning(logger)))
	if _, err := scheduler.AddFunc(cfg.Schedule, func() {
		if err := run(ctx, cfg, workDir, true); err != nil {
			log.Errorf("Run failed: %s", err)
		}
	}); err != nil {
		return fatal(err)
	}

	scheduler.Start()
	log.Infof("Running speed tests on schedule %q, stop with Ctrl+C", cfg.Schedule)
	<-ctx.Done()
	log.Info("Waiting for the running speed test to finish")
	<-scheduler.Stop().Done()
	return nil
}

// run takes a sample and renders the report of the last days
func run(ctx context.Context, cfg *config.Config, workDir string, silent bool) error {
	s, err := config.ForRun(cfg, workDir, time.Now())
	if err != nil {
		return err
	}

	runner := &speedtest.Runner{
		Cmd:       s.SpeedTestCmd,
		Timeout:   cfg.Timeout(),
		DataFile:  s.DataFile,
		PingHost:  cfg.PingHost,
		PingCount: cfg.PingCount,
		Silent:    silent,
	}
	outcome, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	log.Debugf("Speed test %s", outcome)

	return render(s)
}

func load(s *config.Setup) []defs.Record {
	paths := datafile.Select(s.DataDir, s.FirstFile(), s.LastFile())
	return datafile.Load(paths, s.From, s.To)
}

func render(s *config.Setup) error {
	records := load(s)
	charts := report.BuildCharts(records, s.Charts)

	r := &report.Renderer{TemplateFile: s.TemplateFile}
	if err := r.WriteFile(s.OutputFile, records, charts); err != nil {
		return err
	}
	log.Infof("Report of %d records from %s to %s written to %s", len(records),
		s.From.Format(defs.DateFormat), s.To.Format(defs.DateFormat), s.OutputFile)
	return nil
}

func writeCSV(s *config.Setup, delimiter rune) error {
	records := load(s)

	if err := report.WriteCSVFile(s.OutputFile, records, delimiter); err != nil {
		return err
	}
	log.Infof("Exported %d records to %s", len(records), s.OutputFile)
	return nil
}
