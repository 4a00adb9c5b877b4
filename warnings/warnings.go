package warnings

import (
	"fmt"

	"github.com/stopshape/gtfs/constants"
)

type StaticWarning interface {
	File() constants.StaticFile
	Error() string
}

// RowSkipped is reported when a row fails to parse and the feed is parsed with error collection enabled.
type RowSkipped struct {
	FileName constants.StaticFile
	Line     int
	Err      error
}

func (w RowSkipped) File() constants.StaticFile {
	return w.FileName
}

func (w RowSkipped) Error() string {
	return fmt.Sprintf("skipping row %d of %s: %s", w.Line, w.FileName, w.Err)
}

func (w RowSkipped) Unwrap() error {
	return w.Err
}

// HeaderMismatch is reported when a file's header differs from the positional column order the
// parser assumes. Rows are still parsed positionally.
type HeaderMismatch struct {
	FileName constants.StaticFile
	Expected []string
	Actual   []string
}

func (w HeaderMismatch) File() constants.StaticFile {
	return w.FileName
}

func (w HeaderMismatch) Error() string {
	return fmt.Sprintf("header of %s is %q, expected %q", w.FileName, w.Actual, w.Expected)
}
