package gtfs

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func queryTestStops(t *testing.T) []Stop {
	t.Helper()
	stops, err := ParseRows([]string{
		"1,50001,Westbound Davie St @ Bidwell St,,49.286458,-123.140424,BUS ZN,,0,,1",
		"2,50002,Westbound Davie St @ Denman St,,49.287264,-123.142027,BUS ZN,,0,,1",
		"3,50003,Westbound Davie St @ Bidwell St,Bay 2,49.286500,-123.140500,BUS ZN,,0,,2",
		"4,50004,Davie Station,,49.2866,-123.1405,RAIL ZN,https://example.com/davie,1,,1",
	}, ParseStopRow, ParseOptions{})
	if err != nil {
		t.Fatalf("failed to parse stops: %s", err)
	}
	return stops
}

func stopIds(stops []Stop) []string {
	var ids []string
	for _, stop := range stops {
		ids = append(ids, stop.Id)
	}
	return ids
}

func TestQuery(t *testing.T) {
	stops := queryTestStops(t)
	for _, tc := range []struct {
		desc     string
		filter   Filter
		expected []string
	}{
		{
			desc:     "no filters",
			filter:   Filter{},
			expected: []string{"1", "2", "3", "4"},
		},
		{
			desc:     "exact name",
			filter:   Filter{"stop_name": "Westbound Davie St @ Bidwell St"},
			expected: []string{"1", "3"},
		},
		{
			desc:   "no partial matches",
			filter: Filter{"stop_name": "Westbound Davie St"},
		},
		{
			desc:     "conjunction",
			filter:   Filter{"stop_name": "Westbound Davie St @ Bidwell St", "wheelchair_boarding": WheelchairBoarding_Inaccessible},
			expected: []string{"3"},
		},
		{
			desc:     "absent description",
			filter:   Filter{"stop_desc": nil, "zone_id": "BUS ZN"},
			expected: []string{"1", "2"},
		},
		{
			desc:     "location type",
			filter:   Filter{"location_type": LocationType_Station},
			expected: []string{"4"},
		},
		{
			desc:     "url",
			filter:   Filter{"stop_url": "https://example.com/davie"},
			expected: []string{"4"},
		},
		{
			desc:     "latitude",
			filter:   Filter{"stop_lat": 49.287264},
			expected: []string{"2"},
		},
		{
			desc:   "value of the wrong type never matches",
			filter: Filter{"location_type": 1},
		},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			actual, err := Query(stops, tc.filter)
			if err != nil {
				t.Fatalf("query failed: %s", err)
			}
			if diff := cmp.Diff(stopIds(actual), tc.expected); diff != "" {
				t.Errorf("unexpected stops: %s", diff)
			}
		})
	}
}

func TestQuery_UnknownField(t *testing.T) {
	for _, stops := range [][]Stop{queryTestStops(t), nil} {
		_, err := Query(stops, Filter{"nonexistent_field": "x"})
		var lookupErr *LookupError
		if !errors.As(err, &lookupErr) {
			t.Fatalf("error = %v, want *LookupError", err)
		}
		if lookupErr.Field != "nonexistent_field" {
			t.Errorf("unexpected field %q", lookupErr.Field)
		}
	}
}

func TestQuery_ShapePoints(t *testing.T) {
	points, err := ParseRows([]string{
		"a,49.0,-123.0,1,0",
		"a,49.1,-123.1,2,",
		"b,49.0,-123.0,1,0",
	}, ParseShapeRow, ParseOptions{})
	if err != nil {
		t.Fatalf("failed to parse shape points: %s", err)
	}
	actual, err := Query(points, Filter{"shape_pt_sequence": 1, "shape_dist_traveled": 0.0})
	if err != nil {
		t.Fatalf("query failed: %s", err)
	}
	if len(actual) != 2 || actual[0].ShapeId != "a" || actual[1].ShapeId != "b" {
		t.Errorf("unexpected points %+v", actual)
	}
	actual, err = Query(points, Filter{"shape_dist_traveled": nil})
	if err != nil {
		t.Fatalf("query failed: %s", err)
	}
	if len(actual) != 1 || actual[0].Sequence != 2 {
		t.Errorf("unexpected points %+v", actual)
	}
}

func TestParseStopFilter(t *testing.T) {
	filter, err := ParseStopFilter(map[string]string{
		"stop_code":           "50003",
		"stop_desc":           "",
		"location_type":       "1",
		"wheelchair_boarding": "2",
		"stop_lat":            "91",
	})
	if err != nil {
		t.Fatalf("ParseStopFilter failed: %s", err)
	}
	expected := Filter{
		"stop_code":           "50003",
		"stop_desc":           nil,
		"location_type":       LocationType_Station,
		"wheelchair_boarding": WheelchairBoarding_Inaccessible,
		"stop_lat":            89.0,
	}
	if diff := cmp.Diff(filter, expected); diff != "" {
		t.Errorf("unexpected filter: %s", diff)
	}

	stops := queryTestStops(t)
	actual, err := ParseStopFilter(map[string]string{"stop_code": "50002"})
	if err != nil {
		t.Fatalf("ParseStopFilter failed: %s", err)
	}
	matches, err := Query(stops, actual)
	if err != nil || len(matches) != 1 || matches[0].Id != "2" {
		t.Errorf("query by parsed filter = %v, %v", stopIds(matches), err)
	}
}

func TestParseStopFilter_Errors(t *testing.T) {
	_, err := ParseStopFilter(map[string]string{"route_id": "1"})
	var lookupErr *LookupError
	if !errors.As(err, &lookupErr) {
		t.Errorf("error = %v, want *LookupError", err)
	}
	_, err = ParseStopFilter(map[string]string{"location_type": "9"})
	var domainErr *DomainError
	if !errors.As(err, &domainErr) {
		t.Errorf("error = %v, want *DomainError", err)
	}
	_, err = ParseShapePointFilter(map[string]string{"shape_pt_sequence": "first"})
	var numErr *strconv.NumError
	if !errors.As(err, &numErr) {
		t.Errorf("error = %v, want *strconv.NumError", err)
	}
	if err != nil && !strings.HasPrefix(err.Error(), "filter shape_pt_sequence: ") {
		t.Errorf("error %q does not name the filter column", err)
	}
}

func TestQuery_FieldTypedValues(t *testing.T) {
	stops := queryTestStops(t)
	for _, tc := range []struct {
		desc     string
		filter   Filter
		expected []string
	}{
		{
			desc:     "latitude",
			filter:   Filter{"stop_lat": stops[1].Latitude},
			expected: []string{"2"},
		},
		{
			desc:     "longitude",
			filter:   Filter{"stop_lon": stops[1].Longitude},
			expected: []string{"2"},
		},
		{
			desc:     "url",
			filter:   Filter{"stop_url": stops[3].Url},
			expected: []string{"4"},
		},
		{
			desc:     "absent url",
			filter:   Filter{"stop_url": stops[0].Url},
			expected: []string{"1", "2", "3"},
		},
		{
			desc:     "description",
			filter:   Filter{"stop_desc": stops[2].Description},
			expected: []string{"3"},
		},
		{
			desc:     "every field of a stop",
			filter:   stopFilter(t, stops[2]),
			expected: []string{"3"},
		},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			actual, err := Query(stops, tc.filter)
			if err != nil {
				t.Fatalf("query failed: %s", err)
			}
			if diff := cmp.Diff(stopIds(actual), tc.expected); diff != "" {
				t.Errorf("unexpected stops: %s", diff)
			}
		})
	}
}

func TestQuery_ShapePointTypedValues(t *testing.T) {
	points, err := ParseRows([]string{
		"a,49.0,-123.0,1,0",
		"a,49.1,-123.1,2,1.5",
	}, ParseShapeRow, ParseOptions{})
	if err != nil {
		t.Fatalf("failed to parse shape points: %s", err)
	}
	actual, err := Query(points, Filter{
		"shape_pt_lat":        points[1].Latitude,
		"shape_pt_lon":        points[1].Longitude,
		"shape_dist_traveled": points[1].DistTraveled,
	})
	if err != nil {
		t.Fatalf("query failed: %s", err)
	}
	if len(actual) != 1 || actual[0].Sequence != 2 {
		t.Errorf("unexpected points %+v", actual)
	}
}

func stopFilter(t *testing.T, stop Stop) Filter {
	t.Helper()
	return Filter{
		"stop_id":             stop.Id,
		"stop_code":           stop.Code,
		"stop_name":           stop.Name,
		"stop_desc":           stop.Description,
		"stop_lat":            stop.Latitude,
		"stop_lon":            stop.Longitude,
		"zone_id":             stop.ZoneId,
		"stop_url":            stop.Url,
		"location_type":       stop.LocationType,
		"parent_station":      stop.ParentStation,
		"wheelchair_boarding": stop.WheelchairBoarding,
	}
}

func TestFieldNames(t *testing.T) {
	if len(StopFieldNames()) != 11 {
		t.Errorf("stops have %d queryable fields, want 11", len(StopFieldNames()))
	}
	if len(ShapePointFieldNames()) != 5 {
		t.Errorf("shape points have %d queryable fields, want 5", len(ShapePointFieldNames()))
	}
}
