// the utils package contains general-purpose functions and constants for the
// RINEX software.
package utils

import (
	"log/slog"
	"strings"
	"time"

	"github.com/goblimey/go-tools/dailylogger"
)

// Header labels.  In a RINEX 3 observation file the label occupies columns
// 61-80 of each header line.  The decoder looks for the label anywhere in the
// line.
const LabelVersionType = "RINEX VERSION / TYPE"
const LabelProgramRunByDate = "PGM / RUN BY / DATE"
const LabelObservationTypes = "SYS / # / OBS TYPES"
const LabelEndOfHeader = "END OF HEADER"

// EpochMarker is the first character of an epoch line in the body of a
// RINEX 3 observation file, for example:
//
//	> 2023 11 02 12 30  0.0000000  0 18
const EpochMarker = '>'

// CN0Sentinel is the first character of the observation type codes that are
// extracted, for example "C1C" and "C2W".
const CN0Sentinel = 'C'

// ObservationTypePrefixTokens is the number of whitespace-separated tokens
// dropped from the front of a SYS / # / OBS TYPES line before the remaining
// tokens are taken as the list of observation types.
const ObservationTypePrefixTokens = 3

// SatelliteIDLength is the width of the satellite ID at the start of an
// observation record, for example "G01".
const SatelliteIDLength = 3

// DateLayout is the layout of the target date given on the command line.
const DateLayout = "2006-01-02"

// CompactDateLayout is the layout of the date in the output file name.
const CompactDateLayout = "20060102"

// EpochKeyLayout is the layout of the epoch key in the output rows,
// yyyymmddhhmmss.
const EpochKeyLayout = "20060102150405"

// NoValue is shown in the output header in place of a value that was not
// found in the RINEX header.
const NoValue = "None"

// Substring returns line[start:end] with both bounds clamped to the length
// of the line, so a short line gives a short (possibly empty) result rather
// than a panic.  An end value less than zero means "to the end of the line".
func Substring(line string, start, end int) string {
	if end < 0 || end > len(line) {
		end = len(line)
	}
	if start > end {
		return ""
	}
	return line[start:end]
}

// Field returns line[start:end], clamped as for Substring, with surrounding
// white space removed.
func Field(line string, start, end int) string {
	return strings.TrimSpace(Substring(line, start, end))
}

// ParseDate converts a date in the form yyyy-mm-dd into a time at midnight
// UTC at the start of that day.
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(DateLayout, dateStr)
}

// GetDailyLogger gets a structured logger writing to a daily log file in
// the given directory.  A new file with a datestamped name such as
// "rinexcn0.2023-11-02.log" is started each day.
func GetDailyLogger(directory, appName string) *slog.Logger {
	dailyLog := dailylogger.New(directory, appName+".", ".log")
	return slog.New(slog.NewTextHandler(dailyLog, nil))
}
