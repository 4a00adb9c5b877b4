// Package csv reads the raw rows of a GTFS static file for the positional row parsers.
//
// Rows are handed out unsplit: splitting and field validation belong to the row parsers.
package csv

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/stopshape/gtfs/constants"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

type File struct {
	name          constants.StaticFile
	scanner       *bufio.Scanner
	headerContent []string
	lineNumber    int
	currentRow    string
	ioErr         error
	closer        func() error
}

func New(name constants.StaticFile, reader io.ReadCloser) (*File, error) {
	scanner := bufio.NewScanner(BOMAwareReader(reader))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	if !scanner.Scan() {
		reader.Close()
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%s contains no rows", name)
	}
	header := strings.TrimRight(scanner.Text(), "\r")
	return &File{
		name:          name,
		scanner:       scanner,
		headerContent: strings.Split(header, constants.Delimiter),
		lineNumber:    1,
		closer:        reader.Close,
	}, nil
}

func (f *File) Name() constants.StaticFile {
	return f.name
}

func (f *File) HeaderContent() []string {
	return f.headerContent
}

// HeaderMatches reports whether the header is exactly the expected column order of the file.
func (f *File) HeaderMatches() bool {
	expected := constants.Columns(f.name)
	if len(expected) != len(f.headerContent) {
		return false
	}
	for i := range expected {
		if strings.TrimSpace(f.headerContent[i]) != expected[i] {
			return false
		}
	}
	return true
}

// NextRow advances to the next non-blank row.
func (f *File) NextRow() bool {
	for f.scanner.Scan() {
		f.lineNumber += 1
		line := strings.TrimRight(f.scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		f.currentRow = line
		return true
	}
	f.currentRow = ""
	f.ioErr = f.scanner.Err()
	return false
}

func (f *File) Row() string {
	return f.currentRow
}

// LineNumber is the 1-based line of the current row; the header is line 1.
func (f *File) LineNumber() int {
	return f.lineNumber
}

// ReadAll returns the remaining rows together with the line number of each.
func (f *File) ReadAll() ([]string, []int, error) {
	var rows []string
	var lines []int
	for f.NextRow() {
		rows = append(rows, f.Row())
		lines = append(lines, f.LineNumber())
	}
	return rows, lines, f.ioErr
}

func (f *File) Close() error {
	closeErr := f.closer()
	if f.ioErr != nil {
		return f.ioErr
	}
	return closeErr
}

// From: https://stackoverflow.com/a/76023436
//
// BOMAwareReader will detect a UTF BOM (Byte Order Mark) at the
// start of the data and transform to UTF8 accordingly.
// If there is no BOM, it will read the data without any transformation.
func BOMAwareReader(reader io.Reader) io.Reader {
	var transformer = unicode.BOMOverride(encoding.Nop.NewDecoder())
	return transform.NewReader(reader, transformer)
}
