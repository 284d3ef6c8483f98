package flatwriter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goblimey/go-rinex-cn0/rinex/handler"
	"github.com/goblimey/go-rinex-cn0/rinex/header"
	"github.com/goblimey/go-rinex-cn0/rinex/utils"
)

// The flatwriter package writes C/N0 rows to a text file, one comma-separated
// row per line after two header lines, for example:
//
//	% RINEX Date: 20231102, Type: OBSERVATION DATA
//	% Epoch, PRN, Sig, CNO
//	20231102123000,G01,1C,45.250
//	20231102123000,G01,2W,38.000

// FileNameSuffix follows the date in the name of the output file.
const FileNameSuffix = "_CN0_data_.txt"

// ColumnHeadings is the second line of the output.
const ColumnHeadings = "% Epoch, PRN, Sig, CNO"

// FileName returns the name of the output file for the given date, for
// example "20231102_CN0_data_.txt".
func FileName(date time.Time) string {
	return date.Format(utils.CompactDateLayout) + FileNameSuffix
}

// MetadataLine returns the first line of the output (without a newline).
func MetadataLine(metadata *header.Metadata) string {
	return fmt.Sprintf("%% RINEX Date: %s, Type: %s",
		metadata.CreationDateText(), metadata.FormatTypeText())
}

// Write writes the header lines and the rows to the writer.
func Write(writer io.Writer, metadata *header.Metadata, rows []handler.Row) error {
	bufferedWriter := bufio.NewWriter(writer)

	_, err := fmt.Fprintf(bufferedWriter, "%s\n%s\n", MetadataLine(metadata), ColumnHeadings)
	if err != nil {
		return err
	}

	for _, row := range rows {
		_, err = bufferedWriter.WriteString(row.String() + "\n")
		if err != nil {
			return err
		}
	}

	return bufferedWriter.Flush()
}

// WriteFile creates the named file, replacing any existing file, and writes
// the header lines and the rows to it.
func WriteFile(fileName string, metadata *header.Metadata, rows []handler.Row) error {
	file, err := os.Create(fileName)
	if err != nil {
		return err
	}

	writeError := Write(file, metadata, rows)
	closeError := file.Close()
	if writeError != nil {
		return fmt.Errorf("writing %s: %w", fileName, writeError)
	}
	if closeError != nil {
		return fmt.Errorf("closing %s: %w", fileName, closeError)
	}

	return nil
}
