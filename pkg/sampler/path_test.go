package sampler

import (
	"math"

	"github.com/lintang-b-s/navsampler/pkg/datastructure"
)

const gridStep = 0.0005

type move int

const (
	north move = iota
	east
	south
	west
)

// straightPath walks due north along a meridian, every bearing is exactly 0.
func straightPath(n int) []datastructure.Coordinate {
	path := make([]datastructure.Coordinate, n)
	for i := 0; i < n; i++ {
		path[i] = datastructure.NewCoordinate(51.5+float64(i)*gridStep, -0.13)
	}
	return path
}

func gridPath(start datastructure.Coordinate, moves []move) []datastructure.Coordinate {
	path := []datastructure.Coordinate{start}
	curr := start
	for _, m := range moves {
		switch m {
		case north:
			curr.Lat += gridStep
		case east:
			curr.Lon += gridStep
		case south:
			curr.Lat -= gridStep
		case west:
			curr.Lon -= gridStep
		}
		path = append(path, curr)
	}
	return path
}

func repeatMove(m move, n int) []move {
	moves := make([]move, n)
	for i := range moves {
		moves[i] = m
	}
	return moves
}

// zigzagPath alternates left/right of north with a varying swing, so every interior point is a turn of at least 40°.
func zigzagPath(turns int) []datastructure.Coordinate {
	const d = 0.001
	path := []datastructure.Coordinate{datastructure.NewCoordinate(0, 0)}
	curr := path[0]
	for k := 0; k <= turns; k++ {
		swing := 20.0 + float64((k*7)%60)
		heading := swing
		if k%2 == 1 {
			heading = -swing
		}
		rad := heading * math.Pi / 180
		curr.Lat += d * math.Cos(rad)
		curr.Lon += d * math.Sin(rad)
		path = append(path, curr)
	}
	return path
}
