package gtfs

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash"
	"hash/fnv"
)

// Hash calculates a hash of a stop using the provided hash function.
func (s *Stop) Hash(h hash.Hash) {
	st := hasher{h: h}
	st.stop(s)
	st.flush()
}

// Hash calculates a hash of a shape point using the provided hash function.
func (p *ShapePoint) Hash(h hash.Hash) {
	st := hasher{h: h}
	st.shapePoint(p)
	st.flush()
}

// Hashable is implemented by pointers to records that can be hashed.
type Hashable[T any] interface {
	*T
	Hash(h hash.Hash)
}

// Deduplicate returns the records with repeated records removed, keeping the first occurrence.
func Deduplicate[T any, PT Hashable[T]](records []T) []T {
	seen := map[string]bool{}
	result := make([]T, 0, len(records))
	for i := range records {
		h := fnv.New128a()
		PT(&records[i]).Hash(h)
		key := string(h.Sum(nil))
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, records[i])
	}
	return result
}

type hasher struct {
	h hash.Hash
	b bytes.Buffer
}

func (h *hasher) flush() {
	h.h.Write(h.b.Bytes())
	h.b.Reset()
}

func (h *hasher) stop(s *Stop) {
	h.string(s.Id)
	h.string(s.Code)
	h.string(s.Name)
	h.stringPtr(s.Description)
	h.number(s.Latitude.Degrees())
	h.number(s.Longitude.Degrees())
	h.string(s.ZoneId)
	h.number(s.Url == nil)
	if s.Url != nil {
		h.string(s.Url.String())
	}
	h.number(s.LocationType)
	h.string(s.ParentStation)
	h.number(s.WheelchairBoarding)
}

func (h *hasher) shapePoint(p *ShapePoint) {
	h.string(p.ShapeId)
	h.number(p.Latitude.Degrees())
	h.number(p.Longitude.Degrees())
	h.number(int64(p.Sequence))
	hashNumberPtr(h, p.DistTraveled)
}

func (h *hasher) string(s string) {
	h.number(uint64(len(s)))
	h.flush()
	h.h.Write([]byte(s))
}

func hashNumberPtr[T any](h *hasher, a *T) {
	h.number(a == nil)
	if a != nil {
		h.number(*a)
	}
}

func (h *hasher) stringPtr(a *string) {
	h.number(a == nil)
	if a != nil {
		h.string(*a)
	}
}

func (h *hasher) number(a any) {
	err := binary.Write(&h.b, binary.LittleEndian, a)
	if err != nil {
		panic(fmt.Sprintf("failed to hash %T", a))
	}
}
