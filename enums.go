package gtfs

import (
	"fmt"
	"strconv"
)

// LocationType describes the type of a stop.
//
// This is a Go representation of the enum described in the `location_type` field of `stops.txt`.
type LocationType int32

const (
	// A location where passengers board or disembark from a transit vehicle.
	LocationType_Stop LocationType = 0
	// A physical structure or area that contains one or more stops.
	LocationType_Station LocationType = 1
	// A location where passengers can enter or exit a station.
	LocationType_Entrance LocationType = 2
	// A location within a station used to link together pathways.
	LocationType_GenericNode LocationType = 3
	// A specific location on a platform where passengers can board and/or alight vehicles.
	LocationType_BoardingArea LocationType = 4
)

// NewLocationType converts a GTFS integer code into a LocationType.
// The boolean is false if the code is not one of the five known types.
func NewLocationType(i int) (LocationType, bool) {
	var t LocationType
	switch i {
	case 0:
		t = LocationType_Stop
	case 1:
		t = LocationType_Station
	case 2:
		t = LocationType_Entrance
	case 3:
		t = LocationType_GenericNode
	case 4:
		t = LocationType_BoardingArea
	default:
		return LocationType_Stop, false
	}
	return t, true
}

// ParseLocationType parses the raw `location_type` column.
//
// Text that is not an integer fails with the strconv error. An integer outside of the enum fails with
// a *DomainError.
func ParseLocationType(s string) (LocationType, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return LocationType_Stop, fmt.Errorf("location_type: %w", err)
	}
	t, ok := NewLocationType(i)
	if !ok {
		return LocationType_Stop, &DomainError{Enum: "location_type", Code: i}
	}
	return t, nil
}

func (t LocationType) String() string {
	switch t {
	case LocationType_Stop:
		return "STOP"
	case LocationType_Station:
		return "STATION"
	case LocationType_Entrance:
		return "ENTRANCE"
	case LocationType_GenericNode:
		return "GENERIC"
	case LocationType_BoardingArea:
		return "BOARDING"
	default:
		return "UNKNOWN"
	}
}

// WheelchairBoarding describes whether wheelchair boarding is available at a stop.
//
// This is a Go representation of the enum described in the `wheelchair_boarding` field of `stops.txt`.
type WheelchairBoarding int32

const (
	// For a stop without a parent, no information. Otherwise the value is inherited from the parent station.
	WheelchairBoarding_Inherit WheelchairBoarding = 0
	// Some accessible path or vehicles.
	WheelchairBoarding_Accessible WheelchairBoarding = 1
	// No accessible paths or vehicles.
	WheelchairBoarding_Inaccessible WheelchairBoarding = 2
)

func NewWheelchairBoarding(i int) (WheelchairBoarding, bool) {
	var t WheelchairBoarding
	switch i {
	case 0:
		t = WheelchairBoarding_Inherit
	case 1:
		t = WheelchairBoarding_Accessible
	case 2:
		t = WheelchairBoarding_Inaccessible
	default:
		return WheelchairBoarding_Inherit, false
	}
	return t, true
}

// ParseWheelchairBoarding parses the raw `wheelchair_boarding` column, with the same error
// semantics as ParseLocationType.
func ParseWheelchairBoarding(s string) (WheelchairBoarding, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return WheelchairBoarding_Inherit, fmt.Errorf("wheelchair_boarding: %w", err)
	}
	t, ok := NewWheelchairBoarding(i)
	if !ok {
		return WheelchairBoarding_Inherit, &DomainError{Enum: "wheelchair_boarding", Code: i}
	}
	return t, nil
}

func (w WheelchairBoarding) String() string {
	switch w {
	case WheelchairBoarding_Inherit:
		return "INHERIT"
	case WheelchairBoarding_Accessible:
		return "ACCESSIBLE"
	case WheelchairBoarding_Inaccessible:
		return "INACCESSIBLE"
	default:
		return "UNKNOWN"
	}
}
