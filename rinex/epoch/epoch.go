// The epoch package decodes the epoch lines in the body of a RINEX 3
// observation file.  An epoch line starts with ">" and gives the time of
// the observation records that follow it, for example:
//
//	> 2023 11 02 12 30  0.0000000  0 18
//
// The fields are at fixed character offsets:
//
//	year    2-5
//	month   7-8
//	day     10-11
//	hour    13-14
//	minute  16-17
//	second  19-28 (floating point)
//
// The epoch flag and the number of satellites that follow are not used.
package epoch

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/goblimey/go-rinex-cn0/rinex/utils"
)

// Character offsets of the fields of an epoch line.
const (
	yearStart   = 2
	yearEnd     = 6
	monthStart  = 7
	monthEnd    = 9
	dayStart    = 10
	dayEnd      = 12
	hourStart   = 13
	hourEnd     = 15
	minuteStart = 16
	minuteEnd   = 18
	secondStart = 19
	secondEnd   = 29
)

// DecodeError is returned by Parse when an epoch line can't be decoded.
type DecodeError struct {
	Field string // The name of the field, for example "month".
	Text  string // The text found in the field.
	Err   error  // The underlying error, if any.
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("bad epoch %s \"%s\" - %v", e.Field, e.Text, e.Err)
	}
	return fmt.Sprintf("bad epoch %s \"%s\"", e.Field, e.Text)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Epoch is the time given by an epoch line.
type Epoch struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second float64 // Seconds including the fractional part.
}

// Parse decodes an epoch line.  If any field is missing, is not a number or
// is out of range, it returns a DecodeError.
func Parse(line string) (*Epoch, error) {
	var epoch Epoch

	var intFields = []struct {
		name  string
		start int
		end   int
		value *int
	}{
		{"year", yearStart, yearEnd, &epoch.Year},
		{"month", monthStart, monthEnd, &epoch.Month},
		{"day", dayStart, dayEnd, &epoch.Day},
		{"hour", hourStart, hourEnd, &epoch.Hour},
		{"minute", minuteStart, minuteEnd, &epoch.Minute},
	}

	for _, f := range intFields {
		text := utils.Field(line, f.start, f.end)
		n, err := strconv.Atoi(text)
		if err != nil {
			return nil, &DecodeError{Field: f.name, Text: text, Err: err}
		}
		*f.value = n
	}

	secondText := utils.Field(line, secondStart, secondEnd)
	second, err := strconv.ParseFloat(secondText, 64)
	if err != nil {
		return nil, &DecodeError{Field: "second", Text: secondText, Err: err}
	}
	if math.IsNaN(second) || math.IsInf(second, 0) {
		return nil, &DecodeError{Field: "second", Text: secondText}
	}
	epoch.Second = second

	if err := epoch.validate(); err != nil {
		return nil, err
	}

	return &epoch, nil
}

// validate checks that the fields make a real time of day on a real date.
func (epoch *Epoch) validate() error {
	if epoch.Year < 1 || epoch.Year > 9999 {
		return &DecodeError{Field: "year", Text: strconv.Itoa(epoch.Year)}
	}
	if epoch.Month < 1 || epoch.Month > 12 {
		return &DecodeError{Field: "month", Text: strconv.Itoa(epoch.Month)}
	}
	if epoch.Day < 1 || epoch.Day > daysIn(time.Month(epoch.Month), epoch.Year) {
		return &DecodeError{Field: "day", Text: strconv.Itoa(epoch.Day)}
	}
	if epoch.Hour < 0 || epoch.Hour > 23 {
		return &DecodeError{Field: "hour", Text: strconv.Itoa(epoch.Hour)}
	}
	if epoch.Minute < 0 || epoch.Minute > 59 {
		return &DecodeError{Field: "minute", Text: strconv.Itoa(epoch.Minute)}
	}
	if s := epoch.WholeSeconds(); s < 0 || s > 59 {
		return &DecodeError{Field: "second", Text: strconv.FormatFloat(epoch.Second, 'f', -1, 64)}
	}
	return nil
}

// WholeSeconds returns the seconds truncated towards zero.
func (epoch *Epoch) WholeSeconds() int {
	return int(epoch.Second)
}

// Time returns the epoch as a time in UTC, truncated to the second.
func (epoch *Epoch) Time() time.Time {
	return time.Date(epoch.Year, time.Month(epoch.Month), epoch.Day,
		epoch.Hour, epoch.Minute, epoch.WholeSeconds(), 0, time.UTC)
}

// Key returns the epoch as yyyymmddhhmmss, for example "20231102123000".
func (epoch *Epoch) Key() string {
	return epoch.Time().Format(utils.EpochKeyLayout)
}

// OnDate returns true if the epoch falls on the same calendar day as the
// given date.  The time of day of the date is ignored.
func (epoch *Epoch) OnDate(date time.Time) bool {
	year, month, day := date.Date()
	return epoch.Year == year && time.Month(epoch.Month) == month && epoch.Day == day
}

// String returns the epoch in the same form as a RINEX epoch line, without
// the flag and satellite count.
func (epoch *Epoch) String() string {
	return fmt.Sprintf("> %4d %02d %02d %02d %02d %10.7f",
		epoch.Year, epoch.Month, epoch.Day, epoch.Hour, epoch.Minute, epoch.Second)
}

// daysIn returns the number of days in the given month.
func daysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
