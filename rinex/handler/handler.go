package handler

import (
	"bufio"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/goblimey/go-rinex-cn0/rinex/epoch"
	"github.com/goblimey/go-rinex-cn0/rinex/header"
	"github.com/goblimey/go-rinex-cn0/rinex/utils"
)

// The handler package extracts C/N0 observations from the body of a RINEX 3
// observation file.  The body is a series of epochs, each an epoch line
// followed by one observation record per satellite:
//
//	> 2023 11 02 12 30  0.0000000  0  2
//	G01  22915780.724 6   120426622.169 6      2345.123 6        45.250
//	E11  23345103.037 7   122677706.869 7     -1234.567 7        47.500
//
// The handler is created with the date of interest and the Layout from the
// header:
//
//	h := handler.New(targetDate, hdr.Layout, logger)
//	rows, err := h.Handle(scanner)
//
// Handle reads the rest of the input and returns a Row for each C/N0 value
// in each record of each epoch on the target date, in the order that they
// appear in the file.

// Row is one C/N0 value.
type Row struct {
	EpochKey    string // The time of the epoch, yyyymmddhhmmss.
	SatelliteID string // For example "G01".
	SignalCode  string // For example "1C".
	Value       string // The value exactly as it appears in the file.
}

// String returns the row in the output format, for example
// "20231102123000,G01,1C,45.250".
func (row Row) String() string {
	return strings.Join([]string{row.EpochKey, row.SatelliteID, row.SignalCode, row.Value}, ",")
}

// Stats counts what the handler has seen.
type Stats struct {
	Lines          int // Lines read from the body.
	Epochs         int // Epoch lines.
	MatchingEpochs int // Epoch lines on the target date.
	Records        int // Observation records in matching epochs.
	Rows           int // Rows produced.
	SkippedRecords int // Lines outside a matching epoch.
	ShortRecords   int // Records with fewer values than the layout needs.
}

// Handler is the object used to extract C/N0 values.
type Handler struct {
	// TargetDate is the day of interest.  The time of day is ignored.
	TargetDate time.Time

	// Layout gives the positions of the C/N0 values in each record.
	Layout header.Layout

	// Stats is updated by Handle.
	Stats Stats

	// LineOffset is the number of lines read before the body, used to give
	// the correct line number in error messages.
	LineOffset int

	logger *slog.Logger

	// activeEpochKey is the key of the current epoch if it's on the target
	// date, otherwise empty.
	activeEpochKey string
}

// New creates a Handler.
func New(targetDate time.Time, layout header.Layout, logger *slog.Logger) *Handler {
	handler := Handler{TargetDate: targetDate, Layout: layout, logger: logger}
	return &handler
}

// Handle reads the body of the file from the scanner and returns the rows.
// An epoch line that can't be decoded is fatal.  The error returned gives
// the line number and wraps an epoch.DecodeError.
func (handler *Handler) Handle(scanner *bufio.Scanner) ([]Row, error) {
	rows := make([]Row, 0)

	for scanner.Scan() {
		handler.Stats.Lines++
		line := scanner.Text()

		if len(line) > 0 && line[0] == utils.EpochMarker {
			err := handler.handleEpochLine(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", handler.lineNumber(), err)
			}
			continue
		}

		if len(handler.activeEpochKey) == 0 {
			handler.Stats.SkippedRecords++
			continue
		}

		rows = handler.handleRecord(line, rows)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", handler.lineNumber()+1, err)
	}

	handler.Stats.Rows = len(rows)
	return rows, nil
}

// handleEpochLine decodes an epoch line and sets or clears the active epoch.
func (handler *Handler) handleEpochLine(line string) error {
	handler.activeEpochKey = ""

	e, err := epoch.Parse(line)
	if err != nil {
		return err
	}

	handler.Stats.Epochs++

	if e.OnDate(handler.TargetDate) {
		handler.activeEpochKey = e.Key()
		handler.Stats.MatchingEpochs++
		handler.logger.Debug("epoch", "key", handler.activeEpochKey)
	}

	return nil
}

// handleRecord extracts the C/N0 values from an observation record, appends
// them to the given rows and returns the result.  A value that's missing
// from the end of a short record is skipped.
func (handler *Handler) handleRecord(line string, rows []Row) []Row {
	handler.Stats.Records++

	satelliteID := utils.Field(line, 0, utils.SatelliteIDLength)
	values := strings.Fields(utils.Substring(line, utils.SatelliteIDLength, -1))

	short := false
	for _, column := range handler.Layout {
		if column.Index >= len(values) {
			short = true
			continue
		}
		row := Row{
			EpochKey:    handler.activeEpochKey,
			SatelliteID: satelliteID,
			SignalCode:  column.SignalCode(),
			Value:       values[column.Index],
		}
		rows = append(rows, row)
	}

	if short {
		handler.Stats.ShortRecords++
	}

	return rows
}

// lineNumber returns the line number within the whole file of the last line
// read.
func (handler *Handler) lineNumber() int {
	return handler.LineOffset + handler.Stats.Lines
}
