package geo

import (
	"math"

	"github.com/lintang-b-s/navsampler/pkg/datastructure"
)

/*
Bearing. initial bearing (forward azimuth) dari a ke b di great circle, dalam derajat [0, 360).

	θ = atan2(sin Δλ ⋅ cos φ2 , cos φ1 ⋅ sin φ2 − sin φ1 ⋅ cos φ2 ⋅ cos Δλ)

a == b menghasilkan 0 karena atan2(0, 0) = 0.
*/ // nolint: gofmt
func Bearing(a, b datastructure.Coordinate) float64 {
	return BearingTo(a.Lat, a.Lon, b.Lat, b.Lon)
}

func BearingTo(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := degreeToRadians(lat1)
	phi2 := degreeToRadians(lat2)
	deltaLambda := degreeToRadians(lon2 - lon1)

	y := math.Sin(deltaLambda) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(deltaLambda)
	theta := radiansToDegree(math.Atan2(y, x))

	return math.Mod(theta+360, 360)
}

// BearingDelta is the smallest angle between two bearings, in [0, 180].
func BearingDelta(bearingOne, bearingTwo float64) float64 {
	diff := math.Abs(bearingTwo - bearingOne)
	if diff > 180 {
		diff = 360 - diff
	}
	return diff
}

// SignedBearingDelta is the turn from bearingIn to bearingOut in (-180, 180]. Positive turns clockwise (right).
func SignedBearingDelta(bearingIn, bearingOut float64) float64 {
	delta := math.Mod(bearingOut-bearingIn+540, 360) - 180
	if delta == -180 {
		delta = 180
	}
	return delta
}
