// This is the core of the rinexcn0 applications.  It reads a RINEX 3
// observation file, extracts the C/N0 values recorded on one day and writes
// them to a flat text file.  The work is done in three stages, each of
// which runs to completion before the next starts:
//
//	header decoder -> handler (extractor) -> flat writer
//
// If the input can't be read or contains a bad epoch line, the run stops
// before the output file is created.
package appcore

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dolmen-go/contextio"

	flatwriter "github.com/goblimey/go-rinex-cn0/flat_writer"
	"github.com/goblimey/go-rinex-cn0/jsonconfig"
	"github.com/goblimey/go-rinex-cn0/rinex/handler"
	"github.com/goblimey/go-rinex-cn0/rinex/header"
	"github.com/goblimey/go-rinex-cn0/rinex/utils"
)

// StdinName is the input file name that means "read the standard input".
const StdinName = "-"

type AppCore struct {
	Conf   *jsonconfig.Config
	Logger *slog.Logger
}

// Result holds the outcome of a run.
type Result struct {
	TargetDate time.Time
	Header     *header.Header
	Rows       []handler.Row
	Stats      handler.Stats
	OutputFile string
}

// Summary returns the completion message, for example "C/N0 data parsing
// completed for 2023-11-02. Data saved to 20231102_CN0_data_.txt."
func (result *Result) Summary() string {
	return fmt.Sprintf("C/N0 data parsing completed for %s. Data saved to %s.",
		result.TargetDate.Format(utils.DateLayout), result.OutputFile)
}

func New(conf *jsonconfig.Config, logger *slog.Logger) *AppCore {
	appCore := AppCore{Conf: conf, Logger: logger}
	return &appCore
}

// Convert reads the RINEX data from the reader and returns the header and
// the C/N0 rows for the target date.  It stops with an error if the context
// is cancelled.
func (appCore *AppCore) Convert(ctx context.Context, reader io.Reader, targetDate time.Time) (*Result, error) {

	scanner := bufio.NewScanner(contextio.NewReader(ctx, reader))

	hdr, headerError := header.Decode(scanner, appCore.Logger)
	if headerError != nil {
		return nil, headerError
	}

	appCore.Logger.Info("header decoded",
		"type", hdr.FormatTypeText(), "date", hdr.CreationDateText(),
		"lines", hdr.Lines, "cn0_types", len(hdr.Layout))

	h := handler.New(targetDate, hdr.Layout, appCore.Logger)
	h.LineOffset = hdr.Lines

	rows, handlerError := h.Handle(scanner)
	if handlerError != nil {
		return nil, handlerError
	}

	appCore.Logger.Info("body read",
		"epochs", h.Stats.Epochs, "matching_epochs", h.Stats.MatchingEpochs,
		"records", h.Stats.Records, "rows", h.Stats.Rows)

	result := Result{
		TargetDate: targetDate,
		Header:     hdr,
		Rows:       rows,
		Stats:      h.Stats,
	}

	return &result, nil
}

// ConvertFile reads the named RINEX file ("-" for the standard input),
// extracts the C/N0 values for the target date and writes them to the output
// file.  If outputFileName is empty, the name is made from the date, in the
// configured output directory.
func (appCore *AppCore) ConvertFile(ctx context.Context, inputFileName string, targetDate time.Time, outputFileName string) (*Result, error) {

	reader, openError := openFile(inputFileName)
	if openError != nil {
		return nil, fmt.Errorf("cannot open %s - %w", inputFileName, openError)
	}
	defer reader.Close()

	result, convertError := appCore.Convert(ctx, reader, targetDate)
	if convertError != nil {
		return nil, fmt.Errorf("%s: %w", inputFileName, convertError)
	}

	result.OutputFile = appCore.OutputFileName(targetDate, outputFileName)

	writeError := flatwriter.WriteFile(result.OutputFile, &result.Header.Metadata, result.Rows)
	if writeError != nil {
		return nil, writeError
	}

	appCore.Logger.Info("output written", "file", result.OutputFile, "rows", len(result.Rows))

	return result, nil
}

// OutputFileName returns the given name if it's not empty, otherwise the
// default name for the date in the configured output directory.
func (appCore *AppCore) OutputFileName(targetDate time.Time, outputFileName string) string {
	if len(outputFileName) > 0 {
		return outputFileName
	}

	name := flatwriter.FileName(targetDate)
	if appCore.Conf != nil && len(appCore.Conf.OutputDirectory) > 0 {
		return filepath.Join(appCore.Conf.OutputDirectory, name)
	}
	return name
}

// openFile opens the given file.  If the file name is "-" it returns
// os.Stdin, which the caller may safely close.
func openFile(fileName string) (io.ReadCloser, error) {
	if fileName == StdinName {
		return io.NopCloser(os.Stdin), nil
	}

	return os.Open(fileName)
}
