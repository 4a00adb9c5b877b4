package gtfs

import (
	"fmt"
	"math"
	"strconv"
)

// Range is a closed interval [Min, Max].
type Range struct {
	Min float64
	Max float64
}

// Validate returns v unchanged if it lies in the range, and a *RangeError otherwise.
// NaN is never in range.
func (r Range) Validate(v float64) (float64, error) {
	if !(r.Min <= v && v <= r.Max) {
		return 0, &RangeError{Value: v, Min: r.Min, Max: r.Max}
	}
	return v, nil
}

var (
	latitudeRange  = Range{Min: -90, Max: 90}
	longitudeRange = Range{Min: -180, Max: 180}
)

// Latitude is a latitude in degrees, in [-90, 90] for any finite input.
//
// Out of range values are not rejected. Instead they are reflected back across the pole,
// so 91 becomes 89 and -91 becomes -89, which models a path crossing the pole.
type Latitude struct {
	deg float64
}

// NewLatitude builds a latitude, reflecting v into [-90, 90] if needed.
//
// Non-finite input has no reflection and yields a NaN latitude; ParseLatitude rejects such text.
func NewLatitude(v float64) Latitude {
	return Latitude{deg: reflectLatitude(v)}
}

// reflectLatitude applies 90-(v-90) and -90-(v+90) until v is in range.
// Reflection has a period of 360 degrees, so this is computed in closed form.
func reflectLatitude(v float64) float64 {
	if _, err := latitudeRange.Validate(v); err == nil {
		return v
	}
	m := math.Mod(v+90, 360)
	if m < 0 {
		m += 360
	}
	if m <= 180 {
		return m - 90
	}
	return 270 - m
}

// Degrees returns the normalized value.
func (l Latitude) Degrees() float64 {
	return l.deg
}

// Add sums the raw values and reflects the result back into [-90, 90].
func (l Latitude) Add(o Latitude) Latitude {
	return NewLatitude(l.deg + o.deg)
}

// Sub subtracts the raw values and reflects the result back into [-90, 90].
func (l Latitude) Sub(o Latitude) Latitude {
	return NewLatitude(l.deg - o.deg)
}

// Abs returns the magnitude in degrees.
func (l Latitude) Abs() float64 {
	return math.Abs(l.deg)
}

func (l Latitude) String() string {
	return strconv.FormatFloat(l.deg, 'f', -1, 64)
}

// Longitude is a longitude in degrees, always in [-180, 180].
//
// Unlike Latitude, construction rejects out of range values. Arithmetic wraps around the antimeridian.
type Longitude struct {
	deg float64
}

// NewLongitude builds a longitude, returning a *RangeError if v is not in [-180, 180].
func NewLongitude(v float64) (Longitude, error) {
	v, err := longitudeRange.Validate(v)
	if err != nil {
		return Longitude{}, err
	}
	return Longitude{deg: v}, nil
}

// wrapLongitude maps v into [-180, 180) with a non-negative modulus.
func wrapLongitude(v float64) Longitude {
	m := math.Mod(v+180, 360)
	if m < 0 {
		m += 360
	}
	return Longitude{deg: m - 180}
}

// Degrees returns the stored value.
func (l Longitude) Degrees() float64 {
	return l.deg
}

// Add sums the values and wraps the result around the antimeridian. It never fails.
func (l Longitude) Add(o Longitude) Longitude {
	return wrapLongitude(l.deg + o.deg)
}

// Sub subtracts the values and wraps the result around the antimeridian, so the difference
// of two longitudes either side of 180 is small.
func (l Longitude) Sub(o Longitude) Longitude {
	return wrapLongitude(l.deg - o.deg)
}

// Abs returns the magnitude in degrees.
func (l Longitude) Abs() float64 {
	return math.Abs(l.deg)
}

func (l Longitude) String() string {
	return strconv.FormatFloat(l.deg, 'f', -1, 64)
}

// ParseLatitude parses a decimal latitude such as "49.286458".
func ParseLatitude(s string) (Latitude, error) {
	f, err := parseFiniteFloat(s)
	if err != nil {
		return Latitude{}, fmt.Errorf("latitude: %w", err)
	}
	return NewLatitude(f), nil
}

// ParseLongitude parses a decimal longitude such as "-123.140424".
func ParseLongitude(s string) (Longitude, error) {
	f, err := parseFiniteFloat(s)
	if err != nil {
		return Longitude{}, fmt.Errorf("longitude: %w", err)
	}
	return NewLongitude(f)
}

// parseFiniteFloat is strconv.ParseFloat without the "Inf" and "NaN" spellings.
func parseFiniteFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, &strconv.NumError{Func: "ParseFloat", Num: s, Err: strconv.ErrSyntax}
	}
	return f, nil
}
