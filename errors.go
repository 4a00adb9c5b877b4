package gtfs

import (
	"fmt"
	"strings"

	"github.com/stopshape/gtfs/constants"
)

// RangeError is returned when a value falls outside of a closed interval.
type RangeError struct {
	Value float64
	Min   float64
	Max   float64
}

func (err *RangeError) Error() string {
	return fmt.Sprintf("value %v is out of range [%v, %v]", err.Value, err.Min, err.Max)
}

// DomainError is returned when an integer code does not belong to a closed enum.
type DomainError struct {
	// Enum is the GTFS column the code was read from, e.g. location_type.
	Enum string
	Code int
}

func (err *DomainError) Error() string {
	return fmt.Sprintf("%d is not a valid %s", err.Code, err.Enum)
}

// FormatError is returned when a string does not have the expected shape.
type FormatError struct {
	Kind  string
	Value string
}

func (err *FormatError) Error() string {
	return fmt.Sprintf("%q is not a valid %s", err.Value, err.Kind)
}

// ParseError describes a row that could not be converted into a record.
//
// Field is -1 when the row as a whole is malformed (e.g. the wrong number of fields).
// Line is 0 when the row was parsed outside of a batch.
type ParseError struct {
	File   constants.StaticFile
	Line   int
	Row    string
	Field  int
	Column string
	Err    error
}

func (err *ParseError) Error() string {
	var b strings.Builder
	if err.File != "" {
		b.WriteString(string(err.File))
		if err.Line > 0 {
			fmt.Fprintf(&b, ":%d", err.Line)
		}
		b.WriteString(": ")
	} else if err.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", err.Line)
	}
	if err.Field >= 0 {
		fmt.Fprintf(&b, "field %d (%s): ", err.Field, err.Column)
	}
	fmt.Fprintf(&b, "%s; row %q", err.Err, err.Row)
	return b.String()
}

func (err *ParseError) Unwrap() error {
	return err.Err
}

// LookupError is returned when a query refers to a field the record type does not have.
type LookupError struct {
	Record string
	Field  string
}

func (err *LookupError) Error() string {
	return fmt.Sprintf("%s has no field %q", err.Record, err.Field)
}

// BatchError collects the row failures of a batch parsed with CollectErrors.
type BatchError struct {
	Errors []*ParseError
}

func (err *BatchError) Error() string {
	if len(err.Errors) == 1 {
		return err.Errors[0].Error()
	}
	return fmt.Sprintf("%d rows failed to parse; first: %s", len(err.Errors), err.Errors[0])
}

func (err *BatchError) Unwrap() []error {
	errs := make([]error, len(err.Errors))
	for i, e := range err.Errors {
		errs[i] = e
	}
	return errs
}
