// Package export renders parsed stops back to text.
package export

import (
	"bytes"
	_ "embed"
	"text/template"

	"github.com/stopshape/gtfs"
)

//go:embed stops.txt.tmpl
var stopsCsvTmpl string

//go:embed stop.tmpl
var stopTextTmpl string

var funcMap = template.FuncMap{
	"NullableString": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"OrNA": func(s *string) string {
		if s == nil {
			return "N/A"
		}
		return *s
	},
	"URL": func(u *gtfs.URL) string {
		return u.String()
	},
	"URLOrNA": func(u *gtfs.URL) string {
		if u == nil {
			return "N/A"
		}
		return u.String()
	},
}

var stopsCsv = template.Must(template.New("stops.txt.tmpl").Funcs(funcMap).Parse(stopsCsvTmpl))
var stopText = template.Must(template.New("stop.tmpl").Funcs(funcMap).Parse(stopTextTmpl))

// StopsCsv writes the stops as a stops.txt file, header included, in the positional column order
// the row parser reads.
func StopsCsv(stops []gtfs.Stop) ([]byte, error) {
	var b bytes.Buffer
	if err := stopsCsv.Execute(&b, stops); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// StopsText renders each stop as a block of "Label: value" lines, using N/A for absent fields.
func StopsText(stops []gtfs.Stop) ([]byte, error) {
	var b bytes.Buffer
	for i := range stops {
		if i > 0 {
			b.WriteString("\n")
		}
		if err := stopText.Execute(&b, &stops[i]); err != nil {
			return nil, err
		}
	}
	return b.Bytes(), nil
}

