package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lintang-b-s/navsampler/pkg/concurrent"
	"github.com/lintang-b-s/navsampler/pkg/datastructure"
	"github.com/lintang-b-s/navsampler/pkg/geo"
	"github.com/lintang-b-s/navsampler/pkg/kv"
	"github.com/lintang-b-s/navsampler/pkg/routegeom"
	"github.com/lintang-b-s/navsampler/pkg/sampler"
	"github.com/lintang-b-s/navsampler/pkg/server"
	"github.com/lintang-b-s/navsampler/pkg/util"

	"go.uber.org/zap"
)

const (
	MaxBatchRoutes = 50
)

var (
	ErrCacheDisabled = errors.New("waypoint cache is disabled")
)

type SampleRouteParams struct {
	// exactly one of Coordinates, Polyline, GeoJSON
	Coordinates []datastructure.Coordinate
	Polyline    string
	GeoJSON     []byte

	MaxWaypoints int      // 0: service default
	MinTurnAngle *float64 // nil: service default
	// IncludeEndpoints also samples the origin and destination instead of keeping them aside.
	IncludeEndpoints  bool
	SimplifyTolerance float64 // meter, 0 disables douglas-peucker
	SkipCache         bool
}

type SampleRouteResult struct {
	Origin      datastructure.Coordinate
	Destination datastructure.Coordinate
	Waypoints   []datastructure.Coordinate
	// Indices of the waypoints in the sampled sequence (after endpoint stripping and simplification).
	Indices           []int
	Polyline          string // origin + waypoints + destination
	OriginalCount     int
	TurnCount         int
	Turns             []datastructure.Turn // every detected turn, selected or not, indexed into the sampled sequence
	Strategy          string
	RouteLengthMeters float64
	Cached            bool
}

type BatchItemResult struct {
	Result SampleRouteResult
	Err    error
}

type WaypointService struct {
	cache        WaypointCache
	reporter     sampler.StatsReporter
	log          *zap.Logger
	maxWaypoints int
	minTurnAngle float64
	workers      int
}

// NewWaypointService. cache may be nil when caching is disabled.
func NewWaypointService(cache WaypointCache, reporter sampler.StatsReporter, log *zap.Logger,
	maxWaypoints int, minTurnAngle float64, workers int) *WaypointService {
	if log == nil {
		log = zap.NewNop()
	}
	if reporter == nil {
		reporter = sampler.NopReporter{}
	}
	if maxWaypoints <= 0 {
		maxWaypoints = sampler.DefaultMaxWaypoints
	}
	if workers <= 0 {
		workers = 1
	}
	return &WaypointService{
		cache:        cache,
		reporter:     reporter,
		log:          log,
		maxWaypoints: maxWaypoints,
		minTurnAngle: minTurnAngle,
		workers:      workers,
	}
}

func (uc *WaypointService) SampleRoute(ctx context.Context, params SampleRouteParams) (SampleRouteResult, error) {
	if err := ctx.Err(); err != nil {
		return SampleRouteResult{}, server.WrapErrorf(err, server.ErrInternalServerError, "request cancelled")
	}

	maxWaypoints, minTurnAngle, err := uc.resolveOptions(params)
	if err != nil {
		return SampleRouteResult{}, err
	}

	route, err := buildRoute(params)
	if err != nil {
		return SampleRouteResult{}, err
	}

	input := route.Interior
	if params.IncludeEndpoints {
		input = route.Coordinates()
	}
	if params.SimplifyTolerance > 0 {
		input = geo.RamerDouglasPeucker(input, params.SimplifyTolerance)
	}

	var cacheKey []byte
	if uc.cache != nil && !params.SkipCache {
		cacheKey = uc.cache.Key(route.Origin, kv.RouteDigest(input, maxWaypoints, minTurnAngle))
		cs, err := uc.cache.Get(ctx, cacheKey)
		switch {
		case err == nil:
			return newSampleRouteResult(route, sampler.Result{
				Waypoints:     cs.Waypoints,
				Indices:       cs.Indices,
				OriginalCount: cs.OriginalCount,
				TurnCount:     cs.TurnCount,
				Turns:         cs.Turns,
				Strategy:      sampler.Strategy(cs.Strategy),
			}, true), nil
		case !errors.Is(err, kv.ErrCacheMiss):
			uc.log.Warn("waypoint cache lookup failed", zap.Error(err))
		}
	}

	ws := sampler.NewWaypointSampler(
		sampler.WithMaxWaypoints(maxWaypoints),
		sampler.WithMinTurnAngle(minTurnAngle),
		sampler.WithStatsReporter(uc.reporter),
	)
	res := ws.Sample(input)

	if cacheKey != nil {
		err := uc.cache.Put(ctx, cacheKey, kv.CachedSampling{
			Waypoints:     res.Waypoints,
			Indices:       res.Indices,
			OriginalCount: res.OriginalCount,
			TurnCount:     res.TurnCount,
			Turns:         res.Turns,
			Strategy:      int(res.Strategy),
		})
		if err != nil {
			uc.log.Warn("waypoint cache store failed", zap.Error(err))
		}
	}

	return newSampleRouteResult(route, res, false), nil
}

func (uc *WaypointService) resolveOptions(params SampleRouteParams) (int, float64, error) {
	maxWaypoints := uc.maxWaypoints
	if params.MaxWaypoints < 0 {
		return 0, 0, server.NewErrorf(server.ErrBadParamInput, "max_waypoints must not be negative, got %d", params.MaxWaypoints)
	}
	if params.MaxWaypoints > 0 {
		maxWaypoints = params.MaxWaypoints
	}

	minTurnAngle := uc.minTurnAngle
	if params.MinTurnAngle != nil {
		minTurnAngle = *params.MinTurnAngle
		if minTurnAngle < 0 || minTurnAngle > 180 {
			return 0, 0, server.NewErrorf(server.ErrBadParamInput, "min_turn_angle must be 0-180, got %g", minTurnAngle)
		}
	}

	if params.SimplifyTolerance < 0 {
		return 0, 0, server.NewErrorf(server.ErrBadParamInput, "simplify_tolerance must not be negative")
	}
	return maxWaypoints, minTurnAngle, nil
}

func buildRoute(params SampleRouteParams) (routegeom.Route, error) {
	sources := 0
	if len(params.Coordinates) > 0 {
		sources++
	}
	if params.Polyline != "" {
		sources++
	}
	if len(params.GeoJSON) > 0 {
		sources++
	}
	if sources != 1 {
		return routegeom.Route{}, server.NewErrorf(server.ErrBadParamInput,
			"exactly one of coordinates, polyline or geojson is required")
	}

	switch {
	case params.Polyline != "":
		return routegeom.FromPolyline(params.Polyline)
	case len(params.GeoJSON) > 0:
		return routegeom.FromGeoJSON(params.GeoJSON)
	default:
		return routegeom.FromCoordinates(params.Coordinates)
	}
}

func newSampleRouteResult(route routegeom.Route, res sampler.Result, cached bool) SampleRouteResult {
	downstream := route.WithWaypoints(res.Waypoints)
	return SampleRouteResult{
		Origin:            route.Origin,
		Destination:       route.Destination,
		Waypoints:         res.Waypoints,
		Indices:           res.Indices,
		Polyline:          datastructure.CreatePolyline(downstream.Coordinates()),
		OriginalCount:     res.OriginalCount,
		TurnCount:         res.TurnCount,
		Turns:             res.Turns,
		Strategy:          res.Strategy.String(),
		RouteLengthMeters: util.RoundFloat(route.LengthMeters(), 2),
		Cached:            cached,
	}
}

type sampleRouteJobResult struct {
	index int
	res   SampleRouteResult
	err   error
}

// SampleRoutes samples every route on the worker pool. Results keep the request order.
func (uc *WaypointService) SampleRoutes(ctx context.Context, params []SampleRouteParams) ([]BatchItemResult, error) {
	if len(params) == 0 || len(params) > MaxBatchRoutes {
		return nil, server.NewErrorf(server.ErrBadParamInput, "batch needs 1-%d routes, got %d", MaxBatchRoutes, len(params))
	}

	workers := concurrent.NewWorkerPool[concurrent.SampleRouteJobItem[SampleRouteParams], sampleRouteJobResult](uc.workers, len(params))
	for i, p := range params {
		workers.AddJob(concurrent.NewSampleRouteJobItem(ctx, i, p))
	}
	workers.Close()
	workers.Start(uc.sampleRouteJob)
	workers.Wait()

	results := make([]BatchItemResult, len(params))
	for item := range workers.CollectResults() {
		results[item.index] = BatchItemResult{Result: item.res, Err: item.err}
	}

	if err := ctx.Err(); err != nil {
		return nil, server.WrapErrorf(err, server.ErrInternalServerError, "batch cancelled")
	}
	return results, nil
}

func (uc *WaypointService) sampleRouteJob(job concurrent.SampleRouteJobItem[SampleRouteParams]) sampleRouteJobResult {
	res, err := uc.SampleRoute(job.Ctx, job.Params)
	if err != nil {
		err = fmt.Errorf("route %d: %w", job.Index, err)
	}
	return sampleRouteJobResult{index: job.Index, res: res, err: err}
}

func (uc *WaypointService) ClearCache(ctx context.Context) error {
	if uc.cache == nil {
		return server.WrapErrorf(ErrCacheDisabled, server.ErrNotFound, "waypoint cache is disabled")
	}
	if err := uc.cache.Clear(ctx); err != nil {
		return server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}
	return nil
}

func (uc *WaypointService) ClearCacheRegion(ctx context.Context, lat, lon, radiusKm float64) (int, error) {
	if uc.cache == nil {
		return 0, server.WrapErrorf(ErrCacheDisabled, server.ErrNotFound, "waypoint cache is disabled")
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 || radiusKm < 0 {
		return 0, server.NewErrorf(server.ErrBadParamInput, "invalid region %g,%g radius %g km", lat, lon, radiusKm)
	}

	deleted, err := uc.cache.ClearRegion(ctx, lat, lon, radiusKm)
	if err != nil {
		return deleted, server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}
	return deleted, nil
}
