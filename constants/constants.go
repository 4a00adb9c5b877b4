package constants

type StaticFile string

const (
	StopsFile  StaticFile = "stops.txt"
	ShapesFile StaticFile = "shapes.txt"
)

// Delimiter separates the fields of a row. Quoting is not supported, so a field may not contain it.
const Delimiter = ","

// StopColumns is the fixed, positional column order of stops.txt rows.
var StopColumns = []string{
	"stop_id",
	"stop_code",
	"stop_name",
	"stop_desc",
	"stop_lat",
	"stop_lon",
	"zone_id",
	"stop_url",
	"location_type",
	"parent_station",
	"wheelchair_boarding",
}

// ShapeColumns is the fixed, positional column order of shapes.txt rows.
var ShapeColumns = []string{
	"shape_id",
	"shape_pt_lat",
	"shape_pt_lon",
	"shape_pt_sequence",
	"shape_dist_traveled",
}

// Columns returns the expected column order of the file, or nil for an unknown file.
func Columns(file StaticFile) []string {
	switch file {
	case StopsFile:
		return StopColumns
	case ShapesFile:
		return ShapeColumns
	}
	return nil
}
