package sampler

import (
	"math"
	"testing"

	"github.com/lintang-b-s/navsampler/pkg/datastructure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func fiveTurnPath() []datastructure.Coordinate {
	moves := make([]move, 0, 49)
	moves = append(moves, repeatMove(north, 8)...)
	moves = append(moves, repeatMove(east, 8)...)
	moves = append(moves, repeatMove(north, 8)...)
	moves = append(moves, repeatMove(east, 8)...)
	moves = append(moves, repeatMove(north, 8)...)
	moves = append(moves, repeatMove(east, 9)...)
	return gridPath(datastructure.NewCoordinate(51.5, -0.13), moves)
}

func assertSubsequence(t *testing.T, input []datastructure.Coordinate, res Result) {
	t.Helper()
	require.Len(t, res.Indices, len(res.Waypoints))
	for i, idx := range res.Indices {
		if i > 0 {
			assert.Greater(t, idx, res.Indices[i-1], "indices must be strictly increasing")
		}
		require.True(t, idx >= 0 && idx < len(input))
		assert.Equal(t, input[idx], res.Waypoints[i])
	}
}

func TestSampleRouteWaypoints(t *testing.T) {
	tests := []struct {
		name         string
		input        []datastructure.Coordinate
		maxWaypoints int
		wantLen      int
		strategy     Strategy
	}{
		{"empty input", nil, 23, 0, StrategyEmpty},
		{"zero budget", straightPath(10), 0, 0, StrategyEmpty},
		{"negative budget", straightPath(10), -3, 0, StrategyEmpty},
		{"within budget", straightPath(10), 23, 10, StrategyPassThrough},
		{"exactly budget", straightPath(23), 23, 23, StrategyPassThrough},
		{"straight line", straightPath(100), 23, 23, StrategyEven},
		{"five turns", fiveTurnPath(), 23, 23, StrategyTurnsWithFiller},
		{"zigzag", zigzagPath(40), 23, 23, StrategySharpestTurns},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := selectWaypoints(tt.input, tt.maxWaypoints, DefaultMinTurnAngle)
			assert.Len(t, res.Waypoints, tt.wantLen)
			assert.Equal(t, tt.strategy, res.Strategy)
			assert.Equal(t, len(tt.input), res.OriginalCount)
			assertSubsequence(t, tt.input, res)

			assert.Equal(t, res.Waypoints, SampleRouteWaypoints(tt.input, tt.maxWaypoints))
		})
	}
}

func TestSampleRouteWaypointsPassThrough(t *testing.T) {
	input := straightPath(10)
	got := SampleRouteWaypoints(input, 23)
	assert.Equal(t, input, got)

	got[0].Lat = 0
	assert.Equal(t, 51.5, input[0].Lat, "output must be a copy")
}

func TestSampleRouteWaypointsStraightLine(t *testing.T) {
	input := straightPath(100)
	got := SampleRouteWaypoints(input, 23)

	require.Len(t, got, 23)
	assert.Equal(t, input[0], got[0])
	assert.Equal(t, input[95], got[22])
	assert.Equal(t, SampleEvenly(input, 23), got)
}

func TestSampleRouteWaypointsKeepsEveryTurn(t *testing.T) {
	input := fiveTurnPath()
	require.Len(t, input, 50)
	require.Equal(t, []int{8, 16, 24, 32, 40}, FindSignificantTurns(input, DefaultMinTurnAngle))

	res := selectWaypoints(input, 23, DefaultMinTurnAngle)
	require.Len(t, res.Waypoints, 23)
	assert.Equal(t, 5, res.TurnCount)
	for _, turn := range []int{8, 16, 24, 32, 40} {
		assert.Contains(t, res.Indices, turn)
	}
	assert.Equal(t, 0, res.Indices[0], "first filler point is the first non-turn point")
	assertSubsequence(t, input, res)
}

func TestSampleRouteWaypointsTurnsOnly(t *testing.T) {
	input := fiveTurnPath()

	res := selectWaypoints(input, 5, DefaultMinTurnAngle)
	assert.Equal(t, StrategyTurnsWithFiller, res.Strategy)
	assert.Equal(t, []int{8, 16, 24, 32, 40}, res.Indices)
}

func TestSampleRouteWaypointsSharpestTurns(t *testing.T) {
	input := zigzagPath(40)
	require.Len(t, input, 42)

	turns := DetectTurns(input, DefaultMinTurnAngle)
	require.Len(t, turns, 40)

	res := selectWaypoints(input, 23, DefaultMinTurnAngle)
	require.Len(t, res.Waypoints, 23)
	assertSubsequence(t, input, res)

	angleAt := make(map[int]float64, len(turns))
	for _, turn := range turns {
		angleAt[turn.Index] = turn.Angle
	}
	selected := make(map[int]bool, len(res.Indices))
	minSelected := math.Inf(1)
	for _, idx := range res.Indices {
		angle, ok := angleAt[idx]
		require.True(t, ok, "index %d is not a turn", idx)
		selected[idx] = true
		minSelected = math.Min(minSelected, angle)
	}

	maxExcluded := math.Inf(-1)
	for _, turn := range turns {
		if !selected[turn.Index] {
			maxExcluded = math.Max(maxExcluded, turn.Angle)
		}
	}
	assert.GreaterOrEqual(t, minSelected, maxExcluded)
}

func TestSampleRouteWaypointsStairs(t *testing.T) {
	moves := make([]move, 0)
	for i := 0; i < 6; i++ {
		moves = append(moves, north, east)
	}
	input := gridPath(datastructure.NewCoordinate(0, 0), moves)
	require.Len(t, FindSignificantTurns(input, DefaultMinTurnAngle), 11)

	res := selectWaypoints(input, 4, DefaultMinTurnAngle)
	require.Len(t, res.Indices, 4)
	assertSubsequence(t, input, res)
}

func TestSampleRouteWaypointsDuplicateCoordinates(t *testing.T) {
	// out and back: index i and 30-i hold the same coordinate
	out := straightPath(16)
	input := append([]datastructure.Coordinate{}, out...)
	for i := 14; i >= 0; i-- {
		input = append(input, out[i])
	}
	require.Len(t, input, 31)
	require.Equal(t, input[3], input[27])
	require.Equal(t, []int{15}, FindSignificantTurns(input, DefaultMinTurnAngle))

	res := selectWaypoints(input, 10, DefaultMinTurnAngle)
	require.Len(t, res.Waypoints, 10)
	assert.Contains(t, res.Indices, 15)
	assertSubsequence(t, input, res)
}

func TestSampleRouteWaypointsRandomRoutes(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 200; run++ {
		n := rng.Intn(300)
		input := make([]datastructure.Coordinate, n)
		lat, lon := -6.2+rng.Float64(), 106.8+rng.Float64()
		for i := range input {
			lat += (rng.Float64() - 0.5) * 0.002
			lon += (rng.Float64() - 0.5) * 0.002
			input[i] = datastructure.NewCoordinate(lat, lon)
		}
		maxWaypoints := rng.Intn(40) + 1

		res := selectWaypoints(input, maxWaypoints, DefaultMinTurnAngle)
		if n <= maxWaypoints {
			assert.Equal(t, input, res.Waypoints)
			continue
		}
		assert.Len(t, res.Waypoints, maxWaypoints)
		assertSubsequence(t, input, res)
	}
}

func TestSampleRouteWaypointsNaN(t *testing.T) {
	input := straightPath(40)
	input[10] = datastructure.NewCoordinate(math.NaN(), 0)
	input[20] = datastructure.NewCoordinate(math.Inf(1), math.NaN())

	assert.NotPanics(t, func() {
		got := SampleRouteWaypoints(input, 23)
		assert.Len(t, got, 23)
	})
}

func TestWaypointSampler(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		s := NewWaypointSampler()
		assert.Equal(t, DefaultMaxWaypoints, s.MaxWaypoints())
		assert.Equal(t, DefaultMinTurnAngle, s.MinTurnAngle())
	})

	t.Run("options", func(t *testing.T) {
		s := NewWaypointSampler(WithMaxWaypoints(5), WithMinTurnAngle(100))
		assert.Equal(t, 5, s.MaxWaypoints())

		res := s.Sample(fiveTurnPath())
		assert.Equal(t, StrategyEven, res.Strategy, "right angles are below a 100° threshold")
		assert.Len(t, res.Waypoints, 5)
	})

	t.Run("reporter receives counts", func(t *testing.T) {
		var calls [][3]int
		reporter := ReporterFunc(func(originalCount, sampledCount, turnCount int) {
			calls = append(calls, [3]int{originalCount, sampledCount, turnCount})
		})
		s := NewWaypointSampler(WithStatsReporter(MultiReporter{nil, reporter}))

		s.Sample(fiveTurnPath())
		s.Sample(straightPath(3))
		s.Sample(nil)

		assert.Equal(t, [][3]int{{50, 23, 5}, {3, 3, 0}, {0, 0, 0}}, calls)
	})

	t.Run("nil reporter", func(t *testing.T) {
		s := NewWaypointSampler(WithStatsReporter(nil))
		assert.NotPanics(t, func() { s.Sample(straightPath(40)) })
	})
}

func TestStrategyString(t *testing.T) {
	assert.Equal(t, "SHARPEST_TURNS", StrategySharpestTurns.String())
	assert.Equal(t, "UNKNOWN", Strategy(99).String())
}
