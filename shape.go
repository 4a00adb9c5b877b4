package gtfs

import (
	"fmt"
	"math"
	"sort"

	"github.com/golang/geo/s2"
)

// earthRadiusInMeters is the Earth's volumetric mean radius.
const earthRadiusInMeters = 6371000

// PointHandle refers to a point within a Shape.
type PointHandle int

// NoPoint is the successor of the last point of a shape.
const NoPoint PointHandle = -1

// Shape is the path of points sharing a shape ID, ordered by sequence.
//
// The points live in a single slice and each point refers to its successor by handle.
// Successor handles are strictly increasing, so the chain is acyclic and ends at the last point.
type Shape struct {
	Id     string
	points []ShapePoint
	next   []PointHandle
}

// NewShape links the points into a path ordered by sequence number.
//
// All points must share a shape ID and have distinct sequence numbers. The input slice is not modified.
func NewShape(points []ShapePoint) (*Shape, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("a shape needs at least one point")
	}
	sorted := append([]ShapePoint(nil), points...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Sequence < sorted[j].Sequence
	})
	shape := &Shape{
		Id:     sorted[0].ShapeId,
		points: sorted,
		next:   make([]PointHandle, len(sorted)),
	}
	for i := range sorted {
		if sorted[i].ShapeId != shape.Id {
			return nil, fmt.Errorf("point with shape ID %q cannot be linked into shape %q", sorted[i].ShapeId, shape.Id)
		}
		if i > 0 && sorted[i].Sequence == sorted[i-1].Sequence {
			return nil, fmt.Errorf("shape %q has more than one point with sequence %d", shape.Id, sorted[i].Sequence)
		}
		shape.next[i] = NoPoint
		if i+1 < len(sorted) {
			shape.next[i] = PointHandle(i + 1)
		}
	}
	return shape, nil
}

// LinkShapes groups points by shape ID and links each group.
// Shapes are returned in the order their IDs first appear.
func LinkShapes(points []ShapePoint) ([]*Shape, error) {
	var ids []string
	idToPoints := map[string][]ShapePoint{}
	for _, point := range points {
		if _, ok := idToPoints[point.ShapeId]; !ok {
			ids = append(ids, point.ShapeId)
		}
		idToPoints[point.ShapeId] = append(idToPoints[point.ShapeId], point)
	}
	shapes := make([]*Shape, 0, len(ids))
	for _, id := range ids {
		shape, err := NewShape(idToPoints[id])
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, shape)
	}
	return shapes, nil
}

// Len is the number of points in the shape.
func (s *Shape) Len() int {
	return len(s.points)
}

// First is the handle of the point with the lowest sequence number.
func (s *Shape) First() PointHandle {
	return 0
}

// Last is the handle of the point with the highest sequence number.
func (s *Shape) Last() PointHandle {
	return PointHandle(len(s.points) - 1)
}

// Point returns the point at h. It panics if h is not a handle of this shape.
func (s *Shape) Point(h PointHandle) ShapePoint {
	return s.points[h]
}

// Next returns the successor of h, or false if h is the last point.
func (s *Shape) Next(h PointHandle) (PointHandle, bool) {
	n := s.next[h]
	return n, n != NoPoint
}

// Points returns a copy of the points in path order.
func (s *Shape) Points() []ShapePoint {
	return append([]ShapePoint(nil), s.points...)
}

// DistanceToNext is the planar distance in degrees between h and its successor, or 0 for the last point.
//
// The coordinate differences are normalized, so a step across the antimeridian is short.
func (s *Shape) DistanceToNext(h PointHandle) float64 {
	n, ok := s.Next(h)
	if !ok {
		return 0
	}
	return planarDistance(s.points[h], s.points[n])
}

// DistanceToEnd is the sum of DistanceToNext from h to the last point.
func (s *Shape) DistanceToEnd(h PointHandle) float64 {
	var total float64
	for {
		n, ok := s.Next(h)
		if !ok {
			return total
		}
		total += planarDistance(s.points[h], s.points[n])
		h = n
	}
}

// Length is the planar length of the whole path in degrees.
func (s *Shape) Length() float64 {
	return s.DistanceToEnd(s.First())
}

// GreatCircleDistanceToEnd is the distance in meters along the path from h to the last point,
// summing great-circle distances between consecutive points.
func (s *Shape) GreatCircleDistanceToEnd(h PointHandle) float64 {
	var radians float64
	for {
		n, ok := s.Next(h)
		if !ok {
			return radians * earthRadiusInMeters
		}
		radians += latLng(s.points[h]).Distance(latLng(s.points[n])).Radians()
		h = n
	}
}

func planarDistance(a, b ShapePoint) float64 {
	dlat := a.Latitude.Sub(b.Latitude).Abs()
	dlon := a.Longitude.Sub(b.Longitude).Abs()
	return math.Sqrt(dlat*dlat + dlon*dlon)
}

func latLng(p ShapePoint) s2.LatLng {
	return s2.LatLngFromDegrees(p.Latitude.Degrees(), p.Longitude.Degrees())
}
