package gtfs

import (
	"fmt"
	"sort"
	"strconv"
)

// Record is a parsed row whose fields can be read by GTFS column name.
//
// Field must work on the zero value of the record and return a *LookupError for an unknown name.
// Absent optional fields read as an untyped nil.
type Record interface {
	Field(name string) (any, error)
}

// Filter maps GTFS column names to the exact value a record must have in that column.
type Filter map[string]any

// Query returns the items for which every filter entry equals the record's field, in input order.
//
// An empty filter returns items unchanged. Filter names are checked before any item is inspected,
// so an unknown name is reported even for an empty collection. Filter values may be given either as
// the record's own field types (Latitude, Longitude, *URL, *string, *float64) or as the plain values
// Field returns.
func Query[T Record](items []T, filter Filter) ([]T, error) {
	names := make([]string, 0, len(filter))
	values := make(map[string]any, len(filter))
	for name, v := range filter {
		names = append(names, name)
		values[name] = fieldValue(v)
	}
	sort.Strings(names)
	var zero T
	for _, name := range names {
		if _, err := zero.Field(name); err != nil {
			return nil, err
		}
	}
	if len(filter) == 0 {
		return items, nil
	}
	results := make([]T, 0)
	for _, item := range items {
		matches := true
		for _, name := range names {
			v, err := item.Field(name)
			if err != nil {
				return nil, err
			}
			if v != values[name] {
				matches = false
				break
			}
		}
		if matches {
			results = append(results, item)
		}
	}
	return results, nil
}

// fieldValue converts a record field type into the plain value Field returns for it.
func fieldValue(v any) any {
	switch v := v.(type) {
	case Latitude:
		return v.Degrees()
	case Longitude:
		return v.Degrees()
	case URL:
		return v.String()
	case *URL:
		if v == nil {
			return nil
		}
		return v.String()
	case *string:
		if v == nil {
			return nil
		}
		return *v
	case *float64:
		if v == nil {
			return nil
		}
		return *v
	}
	return v
}

type field[T any] struct {
	get   func(r *T) any
	parse func(s string) (any, error)
}

// fieldTable is the accessor table of one record type, keyed by GTFS column name.
type fieldTable[T any] struct {
	record string
	fields map[string]field[T]
}

func (t *fieldTable[T]) get(r *T, name string) (any, error) {
	f, ok := t.fields[name]
	if !ok {
		return nil, &LookupError{Record: t.record, Field: name}
	}
	return f.get(r), nil
}

func (t *fieldTable[T]) parseFilter(raw map[string]string) (Filter, error) {
	filter := Filter{}
	for name, s := range raw {
		f, ok := t.fields[name]
		if !ok {
			return nil, &LookupError{Record: t.record, Field: name}
		}
		v, err := f.parse(s)
		if err != nil {
			return nil, fmt.Errorf("filter %s: %w", name, err)
		}
		filter[name] = v
	}
	return filter, nil
}

func (t *fieldTable[T]) names() []string {
	names := make([]string, 0, len(t.fields))
	for name := range t.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func stringField[T any](get func(r *T) string) field[T] {
	return field[T]{
		get: func(r *T) any {
			return get(r)
		},
		parse: func(s string) (any, error) {
			return s, nil
		},
	}
}

var stopFields = &fieldTable[Stop]{
	record: "stop",
	fields: map[string]field[Stop]{
		"stop_id":        stringField(func(s *Stop) string { return s.Id }),
		"stop_code":      stringField(func(s *Stop) string { return s.Code }),
		"stop_name":      stringField(func(s *Stop) string { return s.Name }),
		"zone_id":        stringField(func(s *Stop) string { return s.ZoneId }),
		"parent_station": stringField(func(s *Stop) string { return s.ParentStation }),
		"stop_desc": {
			get: func(s *Stop) any {
				if s.Description == nil {
					return nil
				}
				return *s.Description
			},
			parse: func(s string) (any, error) {
				if s == "" {
					return nil, nil
				}
				return s, nil
			},
		},
		"stop_lat": {
			get: func(s *Stop) any { return s.Latitude.Degrees() },
			parse: func(s string) (any, error) {
				lat, err := ParseLatitude(s)
				return lat.Degrees(), err
			},
		},
		"stop_lon": {
			get: func(s *Stop) any { return s.Longitude.Degrees() },
			parse: func(s string) (any, error) {
				lon, err := ParseLongitude(s)
				return lon.Degrees(), err
			},
		},
		"stop_url": {
			get: func(s *Stop) any {
				if s.Url == nil {
					return nil
				}
				return s.Url.String()
			},
			parse: func(s string) (any, error) {
				u, err := ParseURL(s)
				if err != nil || u == nil {
					return nil, err
				}
				return u.String(), nil
			},
		},
		"location_type": {
			get: func(s *Stop) any { return s.LocationType },
			parse: func(s string) (any, error) {
				return ParseLocationType(s)
			},
		},
		"wheelchair_boarding": {
			get: func(s *Stop) any { return s.WheelchairBoarding },
			parse: func(s string) (any, error) {
				return ParseWheelchairBoarding(s)
			},
		},
	},
}

var shapePointFields = &fieldTable[ShapePoint]{
	record: "shape point",
	fields: map[string]field[ShapePoint]{
		"shape_id": stringField(func(p *ShapePoint) string { return p.ShapeId }),
		"shape_pt_lat": {
			get: func(p *ShapePoint) any { return p.Latitude.Degrees() },
			parse: func(s string) (any, error) {
				lat, err := ParseLatitude(s)
				return lat.Degrees(), err
			},
		},
		"shape_pt_lon": {
			get: func(p *ShapePoint) any { return p.Longitude.Degrees() },
			parse: func(s string) (any, error) {
				lon, err := ParseLongitude(s)
				return lon.Degrees(), err
			},
		},
		"shape_pt_sequence": {
			get: func(p *ShapePoint) any { return p.Sequence },
			parse: func(s string) (any, error) {
				return strconv.Atoi(s)
			},
		},
		"shape_dist_traveled": {
			get: func(p *ShapePoint) any {
				if p.DistTraveled == nil {
					return nil
				}
				return *p.DistTraveled
			},
			parse: func(s string) (any, error) {
				if s == "" {
					return nil, nil
				}
				return parseFiniteFloat(s)
			},
		},
	},
}

func (stop Stop) Field(name string) (any, error) {
	return stopFields.get(&stop, name)
}

func (point ShapePoint) Field(name string) (any, error) {
	return shapePointFields.get(&point, name)
}

// StopFieldNames lists the column names a stop can be queried by.
func StopFieldNames() []string {
	return stopFields.names()
}

// ShapePointFieldNames lists the column names a shape point can be queried by.
func ShapePointFieldNames() []string {
	return shapePointFields.names()
}

// ParseStopFilter converts textual filter values, e.g. from a command line, into a typed stop Filter.
// An empty value for an optional column matches records where the column is absent.
func ParseStopFilter(raw map[string]string) (Filter, error) {
	return stopFields.parseFilter(raw)
}

// ParseShapePointFilter is ParseStopFilter for shape points.
func ParseShapePointFilter(raw map[string]string) (Filter, error) {
	return shapePointFields.parseFilter(raw)
}
