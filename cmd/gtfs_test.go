package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stopshape/gtfs/internal/testutil"
)

var stopRows = []string{
	"1,50001,Westbound Davie St @ Bidwell St,,49.286458,-123.140424,BUS ZN,,0,,1",
	"2,50002,Westbound Davie St @ Denman St,,49.287264,-123.142027,BUS ZN,,0,,1",
	"3,50003,Westbound Davie St @ Bidwell St,Bay 2,49.2865,-123.1405,BUS ZN,,0,,2",
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	var out bytes.Buffer
	err := newApp(&out).Run(append([]string{"gtfs"}, args...))
	return out.String(), err
}

func TestStopsCommand(t *testing.T) {
	path := testutil.WriteFile(t, "stops.txt", testutil.StopsHeader, stopRows...)
	for _, tc := range []struct {
		desc     string
		args     []string
		contains []string
		excludes []string
	}{
		{
			desc:     "all stops",
			args:     []string{"stops", path},
			contains: []string{"3 stops:", "Stop Code: 50001", "Stop Code: 50002", "Stop Code: 50003"},
		},
		{
			desc:     "filter by name",
			args:     []string{"stops", "--filter", "stop_name=Westbound Davie St @ Bidwell St", path},
			contains: []string{"2 stops:", "Stop Code: 50001", "Stop Code: 50003"},
			excludes: []string{"Stop Code: 50002"},
		},
		{
			desc:     "filters are conjunctive",
			args:     []string{"stops", "-f", "stop_name=Westbound Davie St @ Bidwell St", "-f", "wheelchair_boarding=2", path},
			contains: []string{"1 stops:", "Stop Code: 50003"},
			excludes: []string{"Stop Code: 50001"},
		},
		{
			desc:     "csv output",
			args:     []string{"stops", "--output", "csv", "--filter", "stop_code=50002", path},
			contains: []string{testutil.StopsHeader, stopRows[1]},
			excludes: []string{"stops:"},
		},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			out, err := run(t, tc.args...)
			if err != nil {
				t.Fatalf("command failed: %s", err)
			}
			for _, s := range tc.contains {
				if !strings.Contains(out, s) {
					t.Errorf("output does not contain %q:\n%s", s, out)
				}
			}
			for _, s := range tc.excludes {
				if strings.Contains(out, s) {
					t.Errorf("output contains %q:\n%s", s, out)
				}
			}
		})
	}
}

func TestStopsCommand_Errors(t *testing.T) {
	path := testutil.WriteFile(t, "stops.txt", testutil.StopsHeader, append(stopRows, "4,50004,bad,,49,-123,Z,,9,,1")...)
	for _, tc := range []struct {
		desc string
		args []string
	}{
		{"no path", []string{"stops"}},
		{"unknown field", []string{"stops", "--filter", "route_id=1", path}},
		{"malformed filter", []string{"stops", "--filter", "stop_code", path}},
		{"bad row fails fast", []string{"stops", path}},
		{"unknown output", []string{"stops", "--output", "xml", "--collect-errors", path}},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			if _, err := run(t, tc.args...); err == nil {
				t.Errorf("expected an error")
			}
		})
	}

	out, err := run(t, "stops", "--collect-errors", path)
	if err != nil {
		t.Fatalf("command failed with --collect-errors: %s", err)
	}
	if !strings.Contains(out, "warning:") || !strings.Contains(out, "3 stops:") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestStopsCommand_Config(t *testing.T) {
	path := testutil.WriteFile(t, "stops.txt", testutil.StopsHeader, append(stopRows, stopRows[0])...)
	configPath := filepath.Join(t.TempDir(), "config.yml")
	config := "unique: true\nfilters:\n  zone_id: BUS ZN\n"
	if err := os.WriteFile(configPath, []byte(config), 0644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "stops", "--config", configPath, path)
	if err != nil {
		t.Fatalf("command failed: %s", err)
	}
	if !strings.Contains(out, "3 stops:") {
		t.Errorf("duplicate stop was not dropped:\n%s", out)
	}
}

func TestShapesCommand(t *testing.T) {
	path := testutil.WriteFile(t, "shapes.txt", testutil.ShapesHeader,
		"a,49.2,-123.2,3,",
		"a,49.0,-123.0,1,",
		"a,49.1,-123.1,2,",
		"b,49.0,-123.0,1,",
	)
	out, err := run(t, "shapes", path)
	if err != nil {
		t.Fatalf("command failed: %s", err)
	}
	for _, s := range []string{"2 shapes:", "ShapeID a  Points 3  From (49, -123)  To (49.2, -123.2)  Length 0.282843 deg", "ShapeID b  Points 1"} {
		if !strings.Contains(out, s) {
			t.Errorf("output does not contain %q:\n%s", s, out)
		}
	}

	out, err = run(t, "shapes", "--filter", "shape_id=b", path)
	if err != nil {
		t.Fatalf("command failed: %s", err)
	}
	if !strings.Contains(out, "1 shapes:") || strings.Contains(out, "ShapeID a") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestStaticCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gtfs.zip")
	content := testutil.Zip(t, map[string]string{
		"stops.txt":  strings.Join(append([]string{testutil.StopsHeader}, stopRows...), "\n"),
		"shapes.txt": testutil.ShapesHeader + "\na,49.0,-123.0,1,\na,49.1,-123.1,2,\n",
	})
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "static", path)
	if err != nil {
		t.Fatalf("command failed: %s", err)
	}
	for _, s := range []string{"Num stops 3", "Num shape points 2", "Num shapes 1"} {
		if !strings.Contains(out, s) {
			t.Errorf("output does not contain %q:\n%s", s, out)
		}
	}

	out, err = run(t, "stops", "--filter", "stop_code=50001", path)
	if err != nil {
		t.Fatalf("command failed: %s", err)
	}
	if !strings.Contains(out, "1 stops:") {
		t.Errorf("unexpected output:\n%s", out)
	}
}
