package sampler

import (
	"math"

	"github.com/lintang-b-s/navsampler/pkg/datastructure"
)

// SampleEvenly picks count points spread by index over the whole input, always starting at index 0.
// Inputs that already fit are returned whole.
func SampleEvenly(points []datastructure.Coordinate, count int) []datastructure.Coordinate {
	return sampleEvenlyG(points, count)
}

func sampleEvenlyG[T any](items []T, count int) []T {
	if count <= 0 {
		return make([]T, 0)
	}
	if len(items) <= count {
		copyItems := make([]T, len(items))
		copy(copyItems, items)
		return copyItems
	}

	step := float64(len(items)) / float64(count)
	sampled := make([]T, 0, count)
	for i := 0; i < count; i++ {
		sampled = append(sampled, items[int(math.Floor(float64(i)*step))])
	}
	return sampled
}
