package testutil

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stopshape/gtfs"
)

const (
	StopsHeader  = "stop_id,stop_code,stop_name,stop_desc,stop_lat,stop_lon,zone_id,stop_url,location_type,parent_station,wheelchair_boarding"
	ShapesHeader = "shape_id,shape_pt_lat,shape_pt_lon,shape_pt_sequence,shape_dist_traveled"
)

// MustParseStops parses stops.txt rows, failing the test on any error.
func MustParseStops(t *testing.T, rows ...string) []gtfs.Stop {
	t.Helper()
	stops, err := gtfs.ParseRows(rows, gtfs.ParseStopRow, gtfs.ParseOptions{})
	if err != nil {
		t.Fatalf("failed to parse stops: %s", err)
	}
	return stops
}

// WriteFile writes the header and rows to a file in a temporary directory and returns its path.
func WriteFile(t *testing.T, name, header string, rows ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	content := strings.Join(append([]string{header}, rows...), "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %s", path, err)
	}
	return path
}

// Zip builds an in-memory zip archive from file name to content.
func Zip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var b bytes.Buffer
	zipWriter := zip.NewWriter(&b)
	for fileName, fileContent := range files {
		fileWriter, err := zipWriter.Create(fileName)
		if err != nil {
			t.Fatalf("failed to create %s in zip: %s", fileName, err)
		}
		if _, err := io.Copy(fileWriter, bytes.NewBufferString(fileContent)); err != nil {
			t.Fatalf("failed to write %s in zip: %s", fileName, err)
		}
	}
	if err := zipWriter.Close(); err != nil {
		t.Fatalf("failed to close zip: %s", err)
	}
	return b.Bytes()
}
