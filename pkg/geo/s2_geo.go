package geo

import (
	"github.com/lintang-b-s/navsampler/pkg/datastructure"

	"github.com/golang/geo/s2"
)

func toS2Point(c datastructure.Coordinate) s2.Point {
	return s2.PointFromLatLng(s2.LatLngFromDegrees(c.Lat, c.Lon))
}

// DistanceS2 is the spherical distance between a and b in meters, computed with s2 angles.
func DistanceS2(a, b datastructure.Coordinate) float64 {
	angle := s2.LatLngFromDegrees(a.Lat, a.Lon).Distance(s2.LatLngFromDegrees(b.Lat, b.Lon))
	return angle.Radians() * earthRadiusM
}

// PointLinePerpendicularDistance returns the distance in meters from p to the great-circle segment (start, end).
func PointLinePerpendicularDistance(start, end, p datastructure.Coordinate) float64 {
	if start == end {
		return DistanceS2(start, p)
	}
	angle := s2.DistanceFromSegment(toS2Point(p), toS2Point(start), toS2Point(end))
	return angle.Radians() * earthRadiusM
}
