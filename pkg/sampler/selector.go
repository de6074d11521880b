package sampler

import (
	"github.com/lintang-b-s/navsampler/pkg/datastructure"

	"golang.org/x/exp/slices"
)

type Strategy int

const (
	// StrategyEmpty: no input or a non-positive budget.
	StrategyEmpty Strategy = iota
	// StrategyPassThrough: input already within budget, returned as is.
	StrategyPassThrough
	// StrategyEven: no turns, evenly spaced points.
	StrategyEven
	// StrategyTurnsWithFiller: every turn plus evenly spaced non-turn points.
	StrategyTurnsWithFiller
	// StrategySharpestTurns: more turns than budget, the sharpest ones win.
	StrategySharpestTurns
)

func (s Strategy) String() string {
	switch s {
	case StrategyEmpty:
		return "EMPTY"
	case StrategyPassThrough:
		return "PASS_THROUGH"
	case StrategyEven:
		return "EVEN"
	case StrategyTurnsWithFiller:
		return "TURNS_WITH_FILLER"
	case StrategySharpestTurns:
		return "SHARPEST_TURNS"
	default:
		return "UNKNOWN"
	}
}

type Result struct {
	Waypoints     []datastructure.Coordinate
	Indices       []int // Indices[i] is the position of Waypoints[i] in the input
	OriginalCount int
	TurnCount     int
	// Turns are every significant turn of the input, selected or not. Empty when detection was skipped.
	Turns         []datastructure.Turn
	Strategy      Strategy
}

// WaypointSampler compresses a dense route into at most MaxWaypoints intermediate stops.
// It holds no mutable state and is safe for concurrent use.
type WaypointSampler struct {
	opts options
}

func NewWaypointSampler(opts ...Option) *WaypointSampler {
	o := defaultOptions()
	for _, opt := range opts {
		o = opt(o)
	}
	return &WaypointSampler{opts: o}
}

func (s *WaypointSampler) MaxWaypoints() int {
	return s.opts.maxWaypoints
}

func (s *WaypointSampler) MinTurnAngle() float64 {
	return s.opts.minTurnAngle
}

// Sample runs the selection policy with the sampler's budget and threshold, then reports the stats.
func (s *WaypointSampler) Sample(coordinates []datastructure.Coordinate) Result {
	res := selectWaypoints(coordinates, s.opts.maxWaypoints, s.opts.minTurnAngle)
	s.opts.reporter.ReportSamplingStats(res.OriginalCount, len(res.Waypoints), res.TurnCount)
	return res
}

// SampleRouteWaypoints reduces coordinates to at most maxWaypoints points using the default turn threshold.
func SampleRouteWaypoints(coordinates []datastructure.Coordinate, maxWaypoints int) []datastructure.Coordinate {
	return selectWaypoints(coordinates, maxWaypoints, DefaultMinTurnAngle).Waypoints
}

func selectWaypoints(coordinates []datastructure.Coordinate, maxWaypoints int, minTurnAngle float64) Result {
	res := Result{
		OriginalCount: len(coordinates),
		Turns:         make([]datastructure.Turn, 0),
		Strategy:      StrategyEmpty,
	}
	if len(coordinates) == 0 || maxWaypoints <= 0 {
		res.Waypoints = make([]datastructure.Coordinate, 0)
		res.Indices = make([]int, 0)
		return res
	}

	indexed := datastructure.NewIndexedCoordinates(coordinates)
	if len(coordinates) <= maxWaypoints {
		res.Strategy = StrategyPassThrough
		res.fill(indexed)
		return res
	}

	turns := DetectTurns(coordinates, minTurnAngle)
	res.TurnCount = len(turns)
	res.Turns = turns

	switch {
	case len(turns) == 0:
		res.Strategy = StrategyEven
		res.fill(sampleEvenlyG(indexed, maxWaypoints))
	case len(turns) <= maxWaypoints:
		res.Strategy = StrategyTurnsWithFiller
		res.fill(turnsWithFiller(indexed, turns, maxWaypoints))
	default:
		res.Strategy = StrategySharpestTurns
		res.fill(sharpestTurns(indexed, turns, maxWaypoints))
	}
	return res
}

func (res *Result) fill(selected []datastructure.IndexedCoordinate) {
	res.Waypoints = datastructure.UnwrapIndexedCoordinates(selected)
	res.Indices = make([]int, len(selected))
	for i, s := range selected {
		res.Indices[i] = s.Index
	}
}

// turnsWithFiller keeps every turn and spends the remaining budget on evenly spaced non-turn points.
func turnsWithFiller(indexed []datastructure.IndexedCoordinate, turns []datastructure.Turn,
	maxWaypoints int) []datastructure.IndexedCoordinate {
	isTurn := make([]bool, len(indexed))
	selected := make([]datastructure.IndexedCoordinate, 0, maxWaypoints)
	for _, turn := range turns {
		isTurn[turn.Index] = true
		selected = append(selected, indexed[turn.Index])
	}

	remainingSlots := maxWaypoints - len(turns)
	if remainingSlots <= 0 {
		return selected
	}

	nonTurns := make([]datastructure.IndexedCoordinate, 0, len(indexed)-len(turns))
	for i, ic := range indexed {
		if !isTurn[i] {
			nonTurns = append(nonTurns, ic)
		}
	}

	selected = append(selected, sampleEvenlyG(nonTurns, remainingSlots)...)
	sortByIndex(selected)
	return selected
}

// sharpestTurns keeps the maxWaypoints turns with the largest angle. Equal angles keep input order.
func sharpestTurns(indexed []datastructure.IndexedCoordinate, turns []datastructure.Turn,
	maxWaypoints int) []datastructure.IndexedCoordinate {
	ranked := make([]datastructure.Turn, len(turns))
	copy(ranked, turns)
	slices.SortStableFunc(ranked, func(a, b datastructure.Turn) int {
		if a.Angle > b.Angle {
			return -1
		} else if a.Angle < b.Angle {
			return 1
		}
		return 0
	})

	selected := make([]datastructure.IndexedCoordinate, 0, maxWaypoints)
	for _, turn := range ranked[:maxWaypoints] {
		selected = append(selected, indexed[turn.Index])
	}
	sortByIndex(selected)
	return selected
}

func sortByIndex(selected []datastructure.IndexedCoordinate) {
	slices.SortFunc(selected, func(a, b datastructure.IndexedCoordinate) int {
		return a.Index - b.Index
	})
}
