package header

import (
	"bufio"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/goblimey/go-tools/switchwriter"
	"github.com/google/go-cmp/cmp"
	"github.com/kylelemons/godebug/diff"
)

var logger *slog.Logger

func init() {
	writer := switchwriter.New()
	logger = slog.New(slog.NewTextHandler(writer, nil))
}

// headerLine creates a RINEX header line with the value in columns 1-60 and
// the label in columns 61-80.
func headerLine(value, label string) string {
	return fmt.Sprintf("%-60s%-20s", value, label)
}

var versionLine = headerLine(
	fmt.Sprintf("%9.2f%11s%-20s%-20s", 3.04, "", "OBSERVATION DATA", "M (MIXED)"),
	"RINEX VERSION / TYPE")

var programLine = headerLine(
	fmt.Sprintf("%-20s%-20s%-20s", "sbf2rin-13.4.3", "", "20231102 000541 UTC"),
	"PGM / RUN BY / DATE")

var gpsTypesLine = headerLine("G    8 C1C L1C D1C S1C C2W L2W D2W S2W", "SYS / # / OBS TYPES")

var galileoTypesLine = headerLine("E    4 L1C L5Q C1C C5Q", "SYS / # / OBS TYPES")

var endLine = headerLine("", "END OF HEADER")

func scannerFor(lines ...string) *bufio.Scanner {
	return bufio.NewScanner(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

// TestDecode checks that the metadata and layout are extracted and that the
// scanner is left at the start of the body.
func TestDecode(t *testing.T) {
	wantLayout := Layout{{Index: 3, TypeCode: "C2W"}}

	scanner := scannerFor(
		versionLine,
		programLine,
		headerLine("site", "MARKER NAME"),
		gpsTypesLine,
		endLine,
		"> 2023 11 02 00 00  0.0000000  0  1",
	)

	header, err := Decode(scanner, logger)
	if err != nil {
		t.Fatal(err)
	}

	if !header.Complete {
		t.Error("want complete header")
	}

	if header.Lines != 5 {
		t.Errorf("want 5 lines, got %d", header.Lines)
	}

	if !header.HaveFormatType || header.FormatType != "OBSERVATION DATA" {
		t.Errorf("want format type \"OBSERVATION DATA\", got \"%s\"", header.FormatType)
	}

	if !header.HaveCreationDate || header.CreationDate != "20231102" {
		t.Errorf("want creation date \"20231102\", got \"%s\"", header.CreationDate)
	}

	if !cmp.Equal(wantLayout, header.Layout) {
		t.Error(cmp.Diff(wantLayout, header.Layout))
	}

	// The next line from the scanner should be the first line of the body.
	if !scanner.Scan() {
		t.Fatal("expected the body to follow the header")
	}
	if !strings.HasPrefix(scanner.Text(), ">") {
		t.Errorf("want the epoch line, got \"%s\"", scanner.Text())
	}
}

// TestGetLayout checks the selection of the C/N0 columns.  The first three
// tokens of the line are dropped, so the first declared type is never part
// of the list.
func TestGetLayout(t *testing.T) {
	var testData = []struct {
		description string
		line        string
		want        Layout
	}{
		{
			"one C type",
			headerLine("G    4 L1C L2C D1C C1C", "SYS / # / OBS TYPES"),
			Layout{{2, "C1C"}},
		},
		{
			"several C types in declaration order",
			headerLine("G    6 L1C C1C S1C C2W L2W C5Q", "SYS / # / OBS TYPES"),
			Layout{{0, "C1C"}, {2, "C2W"}, {4, "C5Q"}},
		},
		{
			"first declared type is dropped",
			gpsTypesLine,
			Layout{{3, "C2W"}},
		},
		{
			"no C types",
			headerLine("G    4 L1C L1C D1C S1C", "SYS / # / OBS TYPES"),
			Layout{},
		},
		{
			"too few tokens",
			"G 1",
			Layout{},
		},
	}

	for _, td := range testData {
		got := getLayout(td.line)
		if !cmp.Equal(td.want, got) {
			t.Errorf("%s: %s", td.description, cmp.Diff(td.want, got))
		}
	}
}

// TestDecodeLastDeclarationWins checks that a second SYS / # / OBS TYPES line
// replaces the layout from the first rather than adding to it.
func TestDecodeLastDeclarationWins(t *testing.T) {
	want := Layout{{Index: 1, TypeCode: "C1C"}, {Index: 2, TypeCode: "C5Q"}}

	scanner := scannerFor(versionLine, gpsTypesLine, galileoTypesLine, endLine)

	header, err := Decode(scanner, logger)
	if err != nil {
		t.Fatal(err)
	}

	if !cmp.Equal(want, header.Layout) {
		t.Error(cmp.Diff(want, header.Layout))
	}
}

// TestDecodeWithNoEndOfHeader checks that the whole input is consumed and
// that the values found so far are returned without an error.
func TestDecodeWithNoEndOfHeader(t *testing.T) {
	scanner := scannerFor(
		programLine,
		"> 2023 11 02 00 00  0.0000000  0  1",
		"G01  20000000.000 45.000",
	)

	header, err := Decode(scanner, logger)
	if err != nil {
		t.Fatal(err)
	}

	if header.Complete {
		t.Error("want incomplete header")
	}

	if header.Lines != 3 {
		t.Errorf("want 3 lines, got %d", header.Lines)
	}

	if header.HaveFormatType {
		t.Error("want no format type")
	}

	if header.CreationDate != "20231102" {
		t.Errorf("want creation date \"20231102\", got \"%s\"", header.CreationDate)
	}

	if len(header.Layout) != 0 {
		t.Errorf("want empty layout, got %v", header.Layout)
	}

	if scanner.Scan() {
		t.Errorf("want the input exhausted, got \"%s\"", scanner.Text())
	}
}

// TestDecodeEmptyInput checks that empty input gives an empty header.
func TestDecodeEmptyInput(t *testing.T) {
	header, err := Decode(bufio.NewScanner(strings.NewReader("")), logger)
	if err != nil {
		t.Fatal(err)
	}

	if header.Complete || header.Lines != 0 || header.HaveFormatType ||
		header.HaveCreationDate || len(header.Layout) != 0 {
		t.Errorf("want empty header, got %+v", header)
	}

	if header.FormatTypeText() != "None" || header.CreationDateText() != "None" {
		t.Errorf("want None, got %s and %s",
			header.FormatTypeText(), header.CreationDateText())
	}
}

// TestGetCreationDate checks that only the first word after column 40 is taken.
func TestGetCreationDate(t *testing.T) {
	var testData = []struct {
		description string
		line        string
		want        string
	}{
		{"date time zone", programLine, "20231102"},
		{
			"date only",
			headerLine(fmt.Sprintf("%-40s%-20s", "teqc", "2016-01-01"), "PGM / RUN BY / DATE"),
			"2016-01-01",
		},
		// With no date the first word is the start of the label.
		{"no date", headerLine("teqc", "PGM / RUN BY / DATE"), "PGM"},
		{"short line", "teqc", ""},
	}

	for _, td := range testData {
		got := getCreationDate(td.line)
		if got != td.want {
			t.Errorf("%s: want \"%s\", got \"%s\"", td.description, td.want, got)
		}
	}
}

func TestColumnSignalCode(t *testing.T) {
	var testData = []struct {
		column Column
		want   string
	}{
		{Column{0, "C1C"}, "1C"},
		{Column{0, "C"}, ""},
		{Column{0, ""}, ""},
	}

	for _, td := range testData {
		got := td.column.SignalCode()
		if got != td.want {
			t.Errorf("%s: want \"%s\", got \"%s\"", td.column.TypeCode, td.want, got)
		}
	}
}

func TestString(t *testing.T) {
	const want = `RINEX type OBSERVATION DATA, created 20231102
4 header lines
1 C/N0 observation types
  3 C2W
`
	scanner := scannerFor(versionLine, programLine, gpsTypesLine, endLine)

	header, err := Decode(scanner, logger)
	if err != nil {
		t.Fatal(err)
	}

	got := header.String()
	if got != want {
		t.Error(diff.Diff(want, got))
	}
}
