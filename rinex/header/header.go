// The header package decodes the header of a RINEX 3 observation file.
//
// The header is a series of 80-character lines, each with a label in
// columns 61-80.  The decoder reads lines up to and including the line
// labelled END OF HEADER and collects three things:
//
//	RINEX VERSION / TYPE  the file type, columns 21-40
//	PGM / RUN BY / DATE   the date the file was created, the first word
//	                      from column 41 onwards
//	SYS / # / OBS TYPES   the observation type codes, for example
//
//	G    8 C1C L1C D1C S1C C2W L2W D2W S2W                      SYS / # / OBS TYPES
//
// The observation types are used to build a Layout which gives the position
// of each C/N0 field within the observation records in the body of the file.
package header

import (
	"bufio"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goblimey/go-rinex-cn0/rinex/utils"
)

// Character offsets of the fields in the header lines.
const (
	formatTypeStart   = 20
	formatTypeEnd     = 40
	creationDateStart = 40
)

// Metadata holds the values from the header that are copied into the output.
// The Have flags are false if the value was not found.
type Metadata struct {
	FormatType       string
	HaveFormatType   bool
	CreationDate     string
	HaveCreationDate bool
}

// FormatTypeText returns the format type or "None" if there wasn't one.
func (metadata *Metadata) FormatTypeText() string {
	if !metadata.HaveFormatType {
		return utils.NoValue
	}
	return metadata.FormatType
}

// CreationDateText returns the creation date or "None" if there wasn't one.
func (metadata *Metadata) CreationDateText() string {
	if !metadata.HaveCreationDate {
		return utils.NoValue
	}
	return metadata.CreationDate
}

// Column gives the position of one C/N0 field in an observation record.
type Column struct {
	// Index is the position of the field in the list of whitespace
	// separated values that follows the satellite ID.
	Index int
	// TypeCode is the observation type, for example "C1C".
	TypeCode string
}

// SignalCode returns the type code without its leading type character,
// for example "1C" for "C1C".
func (column Column) SignalCode() string {
	if len(column.TypeCode) == 0 {
		return ""
	}
	return column.TypeCode[1:]
}

// Layout lists the C/N0 fields in declaration order.
type Layout []Column

// Header holds the decoded RINEX header.
type Header struct {
	Metadata
	Layout Layout

	// Complete is true if the END OF HEADER line was found.
	Complete bool

	// Lines is the number of lines read, including END OF HEADER.
	Lines int
}

// String returns a readable version of the header.
func (header *Header) String() string {
	line := fmt.Sprintf("RINEX type %s, created %s\n",
		header.FormatTypeText(), header.CreationDateText())
	if header.Complete {
		line += fmt.Sprintf("%d header lines\n", header.Lines)
	} else {
		line += fmt.Sprintf("%d lines read, no END OF HEADER\n", header.Lines)
	}
	line += fmt.Sprintf("%d C/N0 observation types\n", len(header.Layout))
	for _, column := range header.Layout {
		line += fmt.Sprintf("%3d %s\n", column.Index, column.TypeCode)
	}
	return line
}

// Decode reads the header from the scanner, leaving it positioned at the
// first line of the body.  If there is no END OF HEADER line, the whole of
// the input is consumed and whatever was found is returned.  That's not an
// error.  The only error returned is one from the scanner.
func Decode(scanner *bufio.Scanner, logger *slog.Logger) (*Header, error) {
	var header Header

	for scanner.Scan() {
		header.Lines++
		line := scanner.Text()

		if strings.Contains(line, utils.LabelEndOfHeader) {
			header.Complete = true
			break
		}

		if strings.Contains(line, utils.LabelVersionType) {
			header.FormatType = utils.Field(line, formatTypeStart, formatTypeEnd)
			header.HaveFormatType = true
		} else if strings.Contains(line, utils.LabelProgramRunByDate) {
			header.CreationDate = getCreationDate(line)
			header.HaveCreationDate = true
		}

		if strings.Contains(line, utils.LabelObservationTypes) {
			// A later declaration replaces an earlier one.
			header.Layout = getLayout(line)
			logger.Debug("observation types", "line", header.Lines,
				"cn0_types", len(header.Layout))
		}
	}

	if err := scanner.Err(); err != nil {
		return &header, fmt.Errorf("error in header line %d: %w", header.Lines+1, err)
	}

	if !header.Complete {
		logger.Warn("no END OF HEADER found", "lines", header.Lines)
	}

	return &header, nil
}

// getCreationDate gets the date from a PGM / RUN BY / DATE line, dropping
// any time of day and time zone that follows it.
func getCreationDate(line string) string {
	words := strings.Fields(utils.Substring(line, creationDateStart, -1))
	if len(words) == 0 {
		return ""
	}
	return words[0]
}

// getLayout gets the C/N0 columns from a SYS / # / OBS TYPES line.
func getLayout(line string) Layout {
	layout := make(Layout, 0)

	tokens := strings.Fields(line)
	if len(tokens) <= utils.ObservationTypePrefixTokens {
		return layout
	}

	for i, typeCode := range tokens[utils.ObservationTypePrefixTokens:] {
		if typeCode[0] == utils.CN0Sentinel {
			layout = append(layout, Column{Index: i, TypeCode: typeCode})
		}
	}

	return layout
}
