// rinexcn0 reads a RINEX 3 observation file and extracts the Carrier to
// Noise density ratio (C/N0) values recorded on a given day.  The result is
// a text file with two header lines and one comma-separated line for each
// value, giving the epoch (yyyymmddhhmmss), the satellite, the signal and
// the value exactly as it appears in the RINEX file:
//
//	% RINEX Date: 20231102, Type: OBSERVATION DATA
//	% Epoch, PRN, Sig, CNO
//	20231102000000,G01,1C,44.750
//	20231102000000,G01,2W,40.500
//
// The C/N0 fields are found using the SYS / # / OBS TYPES line in the RINEX
// header.  If there is more than one such line, the last one is used.
//
// Usage:
//
//	rinexcn0 -i file -d yyyy-mm-dd [-o output] [-c config.json] [-v]
//	rinexcn0 file yyyy-mm-dd
//
// Examples:
//
//	rinexcn0 -i cat20010.16o -d 2016-01-01
//
//	rinexcn0 - 2023-11-02 < cat23060.23o # take input from stdin.
//
// By default the output file is called yyyymmdd_CN0_data_.txt, for example
// 20231102_CN0_data_.txt, and is written in the current directory.  The
// optional JSON config file can specify an output directory and turn on a
// daily event log:
//
//	{
//	    "log_events": true,
//	    "event_log_directory": "logs",
//	    "output_directory": "cn0"
//	}
//
// An epoch line that can't be decoded stops the run and no output file is
// written.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	AppCore "github.com/goblimey/go-rinex-cn0/apps/appcore"
	"github.com/goblimey/go-rinex-cn0/jsonconfig"
	"github.com/goblimey/go-rinex-cn0/rinex/utils"
)

const appName = "rinexcn0"

// arguments holds the command line arguments.
type arguments struct {
	inputFileName  string
	dateStr        string
	outputFileName string
	configFileName string
	verbose        bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	status := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(status)
}

// run does the work of main and returns the exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {

	// Until we have the config, problems are reported on stderr.
	bootLogger := slog.New(slog.NewTextHandler(stderr, nil))

	a, argError := getArguments(args, stderr)
	if argError != nil {
		fmt.Fprintln(stderr, argError.Error())
		return 1
	}

	targetDate, dateError := utils.ParseDate(a.dateStr)
	if dateError != nil {
		fmt.Fprintf(stderr, "usage: %s file yyyy-mm-dd\n", appName)
		fmt.Fprintf(stderr, "bad date %s - %v\n", a.dateStr, dateError)
		return 1
	}

	config := &jsonconfig.Config{}
	if len(a.configFileName) > 0 {
		var configError error
		config, configError = jsonconfig.GetJSONConfigFromFile(a.configFileName, bootLogger)
		if configError != nil {
			return 1
		}
	}
	if a.verbose {
		config.Verbose = true
	}

	eventLogger := config.EventLogger(appName, stderr)

	result, err := convert(ctx, config, eventLogger, a.inputFileName, targetDate, a.outputFileName)
	if err != nil {
		eventLogger.Error(err.Error())
		if config.LogEvents {
			// The event log is in a file, so tell the user too.
			fmt.Fprintln(stderr, err.Error())
		}
		return 1
	}

	if config.Verbose {
		fmt.Fprint(stderr, result.Header.String())
	}

	fmt.Fprintln(stdout, result.Summary())

	return 0
}

// convert runs the conversion.
func convert(ctx context.Context, config *jsonconfig.Config, logger *slog.Logger, inputFileName string, targetDate time.Time, outputFileName string) (*AppCore.Result, error) {
	appCore := AppCore.New(config, logger)
	return appCore.ConvertFile(ctx, inputFileName, targetDate, outputFileName)
}

// getArguments gets the input file name, the date and the other settings
// from the command line.  The file name and date can be given by flags or
// as two positional arguments.
func getArguments(args []string, errorWriter io.Writer) (*arguments, error) {
	var a arguments

	flagSet := flag.NewFlagSet(appName, flag.ContinueOnError)
	flagSet.SetOutput(errorWriter)

	flagSet.StringVar(&a.inputFileName, "i", "", "RINEX observation file (\"-\" for stdin)")
	flagSet.StringVar(&a.inputFileName, "input", "", "RINEX observation file (\"-\" for stdin)")
	flagSet.StringVar(&a.dateStr, "d", "", "date of interest, yyyy-mm-dd")
	flagSet.StringVar(&a.dateStr, "date", "", "date of interest, yyyy-mm-dd")
	flagSet.StringVar(&a.outputFileName, "o", "", "output file (default yyyymmdd_CN0_data_.txt)")
	flagSet.StringVar(&a.outputFileName, "output", "", "output file (default yyyymmdd_CN0_data_.txt)")
	flagSet.StringVar(&a.configFileName, "c", "", "JSON config file")
	flagSet.StringVar(&a.configFileName, "config", "", "JSON config file")
	flagSet.BoolVar(&a.verbose, "v", false, "display the RINEX header on stderr")
	flagSet.BoolVar(&a.verbose, "verbose", false, "display the RINEX header on stderr")

	if err := flagSet.Parse(args); err != nil {
		return nil, err
	}

	positional := flagSet.Args()
	if len(a.inputFileName) == 0 && len(positional) > 0 {
		a.inputFileName = positional[0]
		positional = positional[1:]
	}
	if len(a.dateStr) == 0 && len(positional) > 0 {
		a.dateStr = positional[0]
		positional = positional[1:]
	}

	if len(positional) > 0 {
		return nil, fmt.Errorf("usage: %s file yyyy-mm-dd - unexpected argument %s", appName, positional[0])
	}
	if len(a.inputFileName) == 0 {
		return nil, fmt.Errorf("usage: %s file yyyy-mm-dd - missing input file: -i or --input", appName)
	}
	if len(a.dateStr) == 0 {
		return nil, fmt.Errorf("usage: %s file yyyy-mm-dd - missing date: -d or --date", appName)
	}

	return &a, nil
}
