package export

import (
	"os"
	"testing"

	"github.com/stopshape/gtfs"
)

func readStops(t *testing.T, path string) []gtfs.Stop {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open %s: %s", path, err)
	}
	stops, staticWarnings, err := gtfs.ParseStopsFile(f, gtfs.ParseStaticOptions{})
	if err != nil {
		t.Fatalf("failed to parse %s: %s", path, err)
	}
	if len(staticWarnings) != 0 {
		t.Errorf("unexpected warnings: %v", staticWarnings)
	}
	return stops
}
