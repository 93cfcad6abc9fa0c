package main

import (
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/fmantz/speedtracker/defs"
)

// init sets up the essential bits on start up
func init() {
	// set logrus formatter and default log level
	formatter := &defs.NoFormatter{}

	// debug level is for --debug messages
	// info level is for non-silent mode
	// warn level is for silent mode
	// error level is for errors

	log.SetOutput(os.Stderr)
	log.SetFormatter(formatter)
	log.SetLevel(log.InfoLevel)
}

func main() {
	// define cli options
	app := &cli.App{
		Name:  defs.ProgName,
		Usage: "Record internet speed tests and render them as HTML report",
		UsageText: defs.ProgName + " [options] " + defs.CommandRun + "\n" +
			defs.ProgName + " [options] <from_date> <to_date> <output_file>\n" +
			defs.ProgName + " [options] " + defs.CommandExport + " <from_date> <to_date> <csv_file>\n" +
			defs.ProgName + " [options] " + defs.CommandWatch + "\n\n" +
			"Dates are given as YYYY-MM-DD, both are included in the report.",
		Action:       renderRange,
		Before:       setLogLevel,
		OnUsageError: usageError,
		HideHelp:     true,
		Flags: []cli.Flag{
			cli.HelpFlag,
			&cli.BoolFlag{
				Name:    defs.OptionVersion,
				Aliases: []string{defs.OptionVersionAlt},
				Usage:   "Show the version number and exit",
			},
			&cli.StringFlag{
				Name:    defs.OptionConfig,
				Aliases: []string{defs.OptionConfigAlt},
				Usage: "Configuration `FILE`, created with defaults if missing.\n" +
					"\tRelative paths in it are resolved against its directory",
				Value: defaultConfigPath(),
			},
			&cli.BoolFlag{
				Name:    defs.OptionSilent,
				Aliases: []string{defs.OptionSilentAlt},
				Usage:   "Suppress the progress spinner and informational output",
			},
			&cli.BoolFlag{
				Name:    defs.OptionDebug,
				Aliases: []string{"verbose"},
				Usage:   "Debug mode (verbose logging)",
				Hidden:  true,
			},
		},
		Commands: []*cli.Command{
			{
				Name:   defs.CommandRun,
				Usage:  "Take a speed test and render the report of the last days",
				Action: runOnce,
			},
			{
				Name:      defs.CommandExport,
				Usage:     "Export the records between two dates as CSV",
				ArgsUsage: "<from_date> <to_date> <csv_file>",
				Action:    export,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  defs.OptionDelimiter,
						Usage: "Single character delimiter to use in CSV output",
						Value: ",",
					},
				},
			},
			{
				Name:   defs.CommandWatch,
				Usage:  "Run the speed test on the configured schedule until interrupted",
				Action: watch,
			},
		},
	}

	// run main function with cli options
	err := app.Run(os.Args)
	if err != nil {
		log.Fatal("Terminated due to error")
	}
}

// defaultConfigPath places the config next to the executable
func defaultConfigPath() string {
	exe, err := os.Executable()
	if err != nil {
		return defs.ConfigFileName
	}
	return filepath.Join(filepath.Dir(exe), defs.ConfigFileName)
}
