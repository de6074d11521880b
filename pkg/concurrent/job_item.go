package concurrent

import (
	"context"
)

// SampleRouteJobItem is one route of a batch request. Index is its position in the request.
type SampleRouteJobItem[P any] struct {
	Index  int
	Ctx    context.Context
	Params P
}

func NewSampleRouteJobItem[P any](ctx context.Context, index int, params P) SampleRouteJobItem[P] {
	return SampleRouteJobItem[P]{
		Index:  index,
		Ctx:    ctx,
		Params: params,
	}
}

type JobI = any

type Job[T JobI] struct {
	ID      int
	JobItem T
}
type JobFunc[T JobI, G any] func(job T) G
