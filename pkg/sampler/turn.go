package sampler

import (
	"math"

	"github.com/lintang-b-s/navsampler/pkg/datastructure"
	"github.com/lintang-b-s/navsampler/pkg/geo"
)

/*
DetectTurns. scan semua titik interior (1 <= i <= n-2) dan catat titik dimana arah route berubah signifikan. Misalkan:

	points[i-1] --inBearing--> points[i] --outBearing--> points[i+1]

angle = selisih terkecil antara inBearing & outBearing (0°-180°, 359° -> 1° = 2°).
sign = arah belokan (kiri/kanan) dari selisih bertanda, lihat turnSign.
points[i] dianggap turn jika angle >= minAngleChange.
bearing NaN tidak pernah jadi turn karena perbandingan dengan NaN selalu false.
*/ // nolint: gofmt
func DetectTurns(points []datastructure.Coordinate, minAngleChange float64) []datastructure.Turn {
	turns := make([]datastructure.Turn, 0)
	if len(points) < 3 {
		return turns
	}

	for i := 1; i < len(points)-1; i++ {
		inBearing := geo.Bearing(points[i-1], points[i])
		outBearing := geo.Bearing(points[i], points[i+1])

		angle := geo.BearingDelta(inBearing, outBearing)
		if angle >= minAngleChange {
			turns = append(turns, datastructure.Turn{
				Index: i,
				Angle: angle,
				Sign:  turnSign(geo.SignedBearingDelta(inBearing, outBearing)),
			})
		}
	}
	return turns
}

// FindSignificantTurns returns the ascending input indices where the bearing changes by at least minAngleChange degrees.
func FindSignificantTurns(points []datastructure.Coordinate, minAngleChange float64) []int {
	turns := DetectTurns(points, minAngleChange)
	indices := make([]int, len(turns))
	for i, turn := range turns {
		indices[i] = turn.Index
	}
	return indices
}

// turnSign buckets a signed bearing change into continue / slight / regular / sharp turns, negative is left.
func turnSign(delta float64) int {
	absDelta := math.Abs(delta)
	if absDelta < 12 {
		// 12°
		return datastructure.CONTINUE_ON_STREET
	} else if absDelta < 40 {
		if delta < 0 {
			return datastructure.TURN_SLIGHT_LEFT
		}
		return datastructure.TURN_SLIGHT_RIGHT
	} else if absDelta < 105 {
		if delta < 0 {
			return datastructure.TURN_LEFT
		}
		return datastructure.TURN_RIGHT
	} else if delta < 0 {
		return datastructure.TURN_SHARP_LEFT
	}
	return datastructure.TURN_SHARP_RIGHT
}
