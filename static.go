// Package gtfs contains validated record types and row parsers for the stops and shapes of a GTFS static feed.
package gtfs

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/stopshape/gtfs/constants"
	"github.com/stopshape/gtfs/csv"
	"github.com/stopshape/gtfs/warnings"
)

// Static contains the parsed stops and shapes of a single GTFS static feed.
type Static struct {
	Stops       []Stop
	ShapePoints []ShapePoint
	Shapes      []*Shape
	Warnings    []warnings.StaticWarning
}

// Stop corresponds to a single row in the stops.txt file.
type Stop struct {
	Id                 string
	Code               string
	Name               string
	Description        *string
	Latitude           Latitude
	Longitude          Longitude
	ZoneId             string
	Url                *URL
	LocationType       LocationType
	ParentStation      string
	WheelchairBoarding WheelchairBoarding
}

// ShapePoint corresponds to a single row in the shapes.txt file.
//
// A point does not know its successor; points are linked into a path by NewShape.
type ShapePoint struct {
	ShapeId   string
	Latitude  Latitude
	Longitude Longitude
	Sequence  int
	// DistTraveled is the distance declared in the feed, if any. It is never recomputed.
	DistTraveled *float64
}

// RowParser converts one raw row into a record.
type RowParser[T any] func(row string) (T, error)

// ParseStopRow parses a row of stops.txt in the column order of constants.StopColumns.
func ParseStopRow(row string) (Stop, error) {
	var stop Stop
	cells, err := splitRow(row, constants.StopColumns)
	if err != nil {
		return stop, err
	}
	fieldErr := func(i int, err error) error {
		return &ParseError{Row: row, Field: i, Column: constants.StopColumns[i], Err: err}
	}
	stop.Id = cells[0]
	stop.Code = cells[1]
	stop.Name = cells[2]
	if cells[3] != "" {
		desc := cells[3]
		stop.Description = &desc
	}
	if stop.Latitude, err = ParseLatitude(cells[4]); err != nil {
		return Stop{}, fieldErr(4, err)
	}
	if stop.Longitude, err = ParseLongitude(cells[5]); err != nil {
		return Stop{}, fieldErr(5, err)
	}
	stop.ZoneId = cells[6]
	if stop.Url, err = ParseURL(cells[7]); err != nil {
		return Stop{}, fieldErr(7, err)
	}
	if stop.LocationType, err = ParseLocationType(cells[8]); err != nil {
		return Stop{}, fieldErr(8, err)
	}
	stop.ParentStation = cells[9]
	if stop.WheelchairBoarding, err = ParseWheelchairBoarding(cells[10]); err != nil {
		return Stop{}, fieldErr(10, err)
	}
	return stop, nil
}

// ParseShapeRow parses a row of shapes.txt in the column order of constants.ShapeColumns.
func ParseShapeRow(row string) (ShapePoint, error) {
	var point ShapePoint
	cells, err := splitRow(row, constants.ShapeColumns)
	if err != nil {
		return point, err
	}
	fieldErr := func(i int, err error) error {
		return &ParseError{Row: row, Field: i, Column: constants.ShapeColumns[i], Err: err}
	}
	point.ShapeId = cells[0]
	if point.Latitude, err = ParseLatitude(cells[1]); err != nil {
		return ShapePoint{}, fieldErr(1, err)
	}
	if point.Longitude, err = ParseLongitude(cells[2]); err != nil {
		return ShapePoint{}, fieldErr(2, err)
	}
	if point.Sequence, err = strconv.Atoi(cells[3]); err != nil {
		return ShapePoint{}, fieldErr(3, err)
	}
	if cells[4] != "" {
		d, err := parseFiniteFloat(cells[4])
		if err != nil {
			return ShapePoint{}, fieldErr(4, err)
		}
		point.DistTraveled = &d
	}
	return point, nil
}

func splitRow(row string, columns []string) ([]string, error) {
	row = strings.TrimRight(row, "\r\n")
	cells := strings.Split(row, constants.Delimiter)
	if len(cells) != len(columns) {
		return nil, &ParseError{
			Row:   row,
			Field: -1,
			Err:   fmt.Errorf("expected %d fields, got %d", len(columns), len(cells)),
		}
	}
	return cells, nil
}

// ErrorStrategy determines how ParseRows handles rows that fail to parse.
type ErrorStrategy int32

const (
	// FailFast aborts the batch at the first failing row.
	FailFast ErrorStrategy = 0
	// CollectErrors parses every row, returning the successful records and a *BatchError.
	CollectErrors ErrorStrategy = 1
)

func (s ErrorStrategy) String() string {
	switch s {
	case CollectErrors:
		return "COLLECT_ERRORS"
	default:
		return "FAIL_FAST"
	}
}

type ParseOptions struct {
	Strategy ErrorStrategy
	// File is attached to every returned *ParseError.
	File constants.StaticFile
	// FirstLine is the line number of rows[0]; when zero, rows are numbered from 1.
	FirstLine int
	// LineNumbers, if set, gives the line number of each row and takes precedence over FirstLine.
	LineNumbers []int
}

func (opts *ParseOptions) lineNumber(i int) int {
	if i < len(opts.LineNumbers) {
		return opts.LineNumbers[i]
	}
	if opts.FirstLine == 0 {
		return i + 1
	}
	return opts.FirstLine + i
}

// ParseRows parses every row with the given parser.
//
// With FailFast the first failure is returned and no records are. With CollectErrors all
// records that parsed are returned in row order, together with a *BatchError if any row failed.
func ParseRows[T any](rows []string, parse RowParser[T], opts ParseOptions) ([]T, error) {
	records := make([]T, 0, len(rows))
	var failures []*ParseError
	for i, row := range rows {
		record, err := parse(row)
		if err != nil {
			parseErr := annotate(err, row, opts.File, opts.lineNumber(i))
			if opts.Strategy != CollectErrors {
				return nil, parseErr
			}
			failures = append(failures, parseErr)
			continue
		}
		records = append(records, record)
	}
	if len(failures) > 0 {
		return records, &BatchError{Errors: failures}
	}
	return records, nil
}

func annotate(err error, row string, file constants.StaticFile, line int) *ParseError {
	parseErr, ok := err.(*ParseError)
	if !ok {
		parseErr = &ParseError{Row: row, Field: -1, Err: err}
	}
	parseErr.File = file
	parseErr.Line = line
	return parseErr
}

type ParseStaticOptions struct {
	Strategy ErrorStrategy
}

// ParseStatic parses the stops.txt and shapes.txt files of a zipped GTFS static feed.
//
// Either file may be missing, but not both.
func ParseStatic(content []byte, opts ParseStaticOptions) (*Static, error) {
	reader, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, err
	}
	fileNameToFile := map[string]*zip.File{}
	for _, file := range reader.File {
		fileNameToFile[file.Name] = file
	}
	if fileNameToFile[string(constants.StopsFile)] == nil && fileNameToFile[string(constants.ShapesFile)] == nil {
		return nil, fmt.Errorf("no %q or %q file in GTFS static feed", constants.StopsFile, constants.ShapesFile)
	}
	result := &Static{}
	if zipFile := fileNameToFile[string(constants.StopsFile)]; zipFile != nil {
		content, err := zipFile.Open()
		if err != nil {
			return nil, err
		}
		stops, w, err := ParseStopsFile(content, opts)
		if err != nil {
			return nil, err
		}
		result.Stops = stops
		result.Warnings = append(result.Warnings, w...)
	}
	if zipFile := fileNameToFile[string(constants.ShapesFile)]; zipFile != nil {
		content, err := zipFile.Open()
		if err != nil {
			return nil, err
		}
		points, w, err := ParseShapesFile(content, opts)
		if err != nil {
			return nil, err
		}
		result.ShapePoints = points
		result.Warnings = append(result.Warnings, w...)
		if result.Shapes, err = LinkShapes(points); err != nil {
			return nil, fmt.Errorf("failed to link %q: %w", constants.ShapesFile, err)
		}
	}
	return result, nil
}

// ParseStopsFile parses an uncompressed stops.txt. The reader is closed before returning.
func ParseStopsFile(r io.ReadCloser, opts ParseStaticOptions) ([]Stop, []warnings.StaticWarning, error) {
	return parseFile(constants.StopsFile, r, ParseStopRow, opts)
}

// ParseShapesFile parses an uncompressed shapes.txt. The reader is closed before returning.
func ParseShapesFile(r io.ReadCloser, opts ParseStaticOptions) ([]ShapePoint, []warnings.StaticWarning, error) {
	return parseFile(constants.ShapesFile, r, ParseShapeRow, opts)
}

func parseFile[T any](name constants.StaticFile, r io.ReadCloser, parse RowParser[T], opts ParseStaticOptions) ([]T, []warnings.StaticWarning, error) {
	file, err := csv.New(name, r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %q: %w", name, err)
	}
	var staticWarnings []warnings.StaticWarning
	if !file.HeaderMatches() {
		w := warnings.HeaderMismatch{
			FileName: name,
			Expected: constants.Columns(name),
			Actual:   file.HeaderContent(),
		}
		log.Printf("%s", w)
		staticWarnings = append(staticWarnings, w)
	}
	rows, lines, readErr := file.ReadAll()
	if err := file.Close(); err != nil && readErr == nil {
		readErr = err
	}
	if readErr != nil {
		return nil, nil, fmt.Errorf("failed to read %q: %w", name, readErr)
	}
	records, err := ParseRows(rows, parse, ParseOptions{
		Strategy:    opts.Strategy,
		File:        name,
		LineNumbers: lines,
	})
	if batchErr, ok := err.(*BatchError); ok {
		for _, parseErr := range batchErr.Errors {
			w := warnings.RowSkipped{FileName: name, Line: parseErr.Line, Err: parseErr}
			log.Printf("%s", w)
			staticWarnings = append(staticWarnings, w)
		}
		return records, staticWarnings, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return records, staticWarnings, nil
}
