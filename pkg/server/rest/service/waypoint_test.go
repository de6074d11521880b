package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lintang-b-s/navsampler/pkg/datastructure"
	"github.com/lintang-b-s/navsampler/pkg/kv"
	"github.com/lintang-b-s/navsampler/pkg/sampler"
	"github.com/lintang-b-s/navsampler/pkg/server"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cornerRoute goes north then east, one right angle turn at index 20.
func cornerRoute(n int) []datastructure.Coordinate {
	path := make([]datastructure.Coordinate, 0, n)
	lat, lon := -7.55, 110.77
	for i := 0; i < n; i++ {
		path = append(path, datastructure.NewCoordinate(lat, lon))
		if i < 20 {
			lat += 0.0005
		} else {
			lon += 0.0005
		}
	}
	return path
}

type countingReporter struct {
	calls int
}

func (r *countingReporter) ReportSamplingStats(originalCount, sampledCount, turnCount int) {
	r.calls++
}

func newTestService(t *testing.T, reporter sampler.StatsReporter) (*WaypointService, *kv.WaypointCache) {
	t.Helper()
	db, err := kv.OpenBadger("", true, nil)
	require.NoError(t, err)
	cache := kv.NewWaypointCache(db)
	t.Cleanup(func() { _ = cache.Close() })

	return NewWaypointService(cache, reporter, nil, sampler.DefaultMaxWaypoints, sampler.DefaultMinTurnAngle, 4), cache
}

func TestSampleRoute(t *testing.T) {
	reporter := &countingReporter{}
	svc, _ := newTestService(t, reporter)
	ctx := context.Background()
	full := cornerRoute(60)

	res, err := svc.SampleRoute(ctx, SampleRouteParams{Coordinates: full, MaxWaypoints: 10})
	require.NoError(t, err)

	assert.Equal(t, full[0], res.Origin)
	assert.Equal(t, full[59], res.Destination)
	assert.Len(t, res.Waypoints, 10)
	assert.Equal(t, 58, res.OriginalCount)
	assert.Equal(t, 1, res.TurnCount)
	assert.Equal(t, sampler.StrategyTurnsWithFiller.String(), res.Strategy)
	assert.Contains(t, res.Indices, 19, "the corner is interior index 19 once the origin is stripped")
	assert.False(t, res.Cached)
	assert.Greater(t, res.RouteLengthMeters, 0.0)

	decoded, err := datastructure.DecodePolyline(res.Polyline)
	require.NoError(t, err)
	assert.Len(t, decoded, 12)

	again, err := svc.SampleRoute(ctx, SampleRouteParams{Coordinates: full, MaxWaypoints: 10})
	require.NoError(t, err)
	assert.True(t, again.Cached)
	assert.Equal(t, res.Waypoints, again.Waypoints)
	assert.Equal(t, res.Indices, again.Indices)
	assert.Equal(t, res.Turns, again.Turns)
	assert.Equal(t, res.Polyline, again.Polyline)
	assert.Equal(t, 1, reporter.calls, "cache hits do not sample")

	skipped, err := svc.SampleRoute(ctx, SampleRouteParams{Coordinates: full, MaxWaypoints: 10, SkipCache: true})
	require.NoError(t, err)
	assert.False(t, skipped.Cached)
	assert.Equal(t, 2, reporter.calls)
}

func assertWaypointsFrom(t *testing.T, input []datastructure.Coordinate, waypoints []datastructure.Coordinate) {
	t.Helper()
	seen := make(map[datastructure.Coordinate]bool, len(input))
	for _, c := range input {
		seen[c] = true
	}
	for i, wp := range waypoints {
		assert.True(t, seen[wp], "waypoint %d %v is not a point of the request", i, wp)
	}
}

func TestSampleRouteCacheKeyScope(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()
	full := cornerRoute(60)

	first, err := svc.SampleRoute(ctx, SampleRouteParams{Coordinates: full})
	require.NoError(t, err)
	require.False(t, first.Cached)

	// a couple of 1e-6 deg off, same polyline at precision 5
	shifted := make([]datastructure.Coordinate, len(full))
	for i, c := range full {
		shifted[i] = datastructure.NewCoordinate(c.Lat+2e-6, c.Lon+2e-6)
	}
	require.Equal(t, datastructure.CreatePolyline(full), datastructure.CreatePolyline(shifted))

	near, err := svc.SampleRoute(ctx, SampleRouteParams{Coordinates: shifted})
	require.NoError(t, err)
	assert.False(t, near.Cached)
	assertWaypointsFrom(t, shifted, near.Waypoints)

	t.Run("endpoints on and off", func(t *testing.T) {
		without, err := svc.SampleRoute(ctx, SampleRouteParams{Coordinates: full, MaxWaypoints: 10})
		require.NoError(t, err)
		assert.False(t, without.Cached)

		with, err := svc.SampleRoute(ctx, SampleRouteParams{Coordinates: full, MaxWaypoints: 10, IncludeEndpoints: true})
		require.NoError(t, err)
		assert.False(t, with.Cached)
		assert.Equal(t, 60, with.OriginalCount)
		assert.Equal(t, 58, without.OriginalCount)
		assertWaypointsFrom(t, full, with.Waypoints)
		assertWaypointsFrom(t, full[1:59], without.Waypoints)

		again, err := svc.SampleRoute(ctx, SampleRouteParams{Coordinates: full, MaxWaypoints: 10, IncludeEndpoints: true})
		require.NoError(t, err)
		assert.True(t, again.Cached)
		assert.Equal(t, with.Waypoints, again.Waypoints)
		assertWaypointsFrom(t, full, again.Waypoints)
	})
}

func TestSampleRouteInputs(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()
	full := cornerRoute(30)

	fromPolyline, err := svc.SampleRoute(ctx, SampleRouteParams{Polyline: datastructure.CreatePolyline(full), SkipCache: true})
	require.NoError(t, err)
	assert.Equal(t, 28, fromPolyline.OriginalCount)
	assert.Len(t, fromPolyline.Waypoints, sampler.DefaultMaxWaypoints)

	geojson := `{"type":"LineString","coordinates":[[110.77,-7.55],[110.771,-7.55],[110.772,-7.55],[110.773,-7.55]]}`
	fromGeoJSON, err := svc.SampleRoute(ctx, SampleRouteParams{GeoJSON: []byte(geojson)})
	require.NoError(t, err)
	assert.Equal(t, sampler.StrategyPassThrough.String(), fromGeoJSON.Strategy)
	assert.Len(t, fromGeoJSON.Waypoints, 2)

	withEndpoints, err := svc.SampleRoute(ctx, SampleRouteParams{Coordinates: full, IncludeEndpoints: true, MaxWaypoints: 50})
	require.NoError(t, err)
	assert.Equal(t, full, withEndpoints.Waypoints)

	// collinear legs collapse to the corner
	simplified, err := svc.SampleRoute(ctx, SampleRouteParams{Coordinates: full, IncludeEndpoints: true, SimplifyTolerance: 5})
	require.NoError(t, err)
	assert.Equal(t, []datastructure.Coordinate{full[0], full[20], full[29]}, simplified.Waypoints)
}

func TestSampleRouteBadParams(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()
	full := cornerRoute(30)
	negative := -1.0

	tests := []struct {
		name   string
		params SampleRouteParams
	}{
		{"no source", SampleRouteParams{}},
		{"two sources", SampleRouteParams{Coordinates: full, Polyline: "_p~iF~ps|U"}},
		{"single point", SampleRouteParams{Coordinates: full[:1]}},
		{"negative budget", SampleRouteParams{Coordinates: full, MaxWaypoints: -2}},
		{"negative angle", SampleRouteParams{Coordinates: full, MinTurnAngle: &negative}},
		{"negative tolerance", SampleRouteParams{Coordinates: full, SimplifyTolerance: -1}},
		{"broken geojson", SampleRouteParams{GeoJSON: []byte(`{"type":`)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SampleRoute(ctx, tt.params)
			assert.ErrorIs(t, err, server.ErrBadParamInput)
		})
	}
}

func TestSampleRouteCustomAngle(t *testing.T) {
	svc, _ := newTestService(t, nil)
	angle := 120.0

	res, err := svc.SampleRoute(context.Background(), SampleRouteParams{Coordinates: cornerRoute(60), MinTurnAngle: &angle})
	require.NoError(t, err)
	assert.Equal(t, 0, res.TurnCount)
	assert.Equal(t, sampler.StrategyEven.String(), res.Strategy)
}

func TestSampleRoutes(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	params := make([]SampleRouteParams, 0, 12)
	for i := 0; i < 12; i++ {
		params = append(params, SampleRouteParams{Coordinates: cornerRoute(25 + i), MaxWaypoints: 5})
	}
	params = append(params, SampleRouteParams{})

	results, err := svc.SampleRoutes(ctx, params)
	require.NoError(t, err)
	require.Len(t, results, 13)

	for i := 0; i < 12; i++ {
		require.NoError(t, results[i].Err)
		assert.Equal(t, 23+i, results[i].Result.OriginalCount, "results keep request order")
		assert.Len(t, results[i].Result.Waypoints, 5)
	}
	assert.ErrorIs(t, results[12].Err, server.ErrBadParamInput)
}

func TestSampleRoutesLimits(t *testing.T) {
	svc, _ := newTestService(t, nil)

	_, err := svc.SampleRoutes(context.Background(), nil)
	assert.ErrorIs(t, err, server.ErrBadParamInput)

	_, err = svc.SampleRoutes(context.Background(), make([]SampleRouteParams, MaxBatchRoutes+1))
	assert.ErrorIs(t, err, server.ErrBadParamInput)
}

func TestSampleRoutesCancelled(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.SampleRoutes(ctx, []SampleRouteParams{{Coordinates: cornerRoute(30)}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClearCache(t *testing.T) {
	svc, cache := newTestService(t, nil)
	ctx := context.Background()
	full := cornerRoute(60)

	_, err := svc.SampleRoute(ctx, SampleRouteParams{Coordinates: full})
	require.NoError(t, err)

	deleted, err := svc.ClearCacheRegion(ctx, full[0].Lat, full[0].Lon, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	res, err := svc.SampleRoute(ctx, SampleRouteParams{Coordinates: full})
	require.NoError(t, err)
	assert.False(t, res.Cached)

	require.NoError(t, svc.ClearCache(ctx))
	_, err = cache.Get(ctx, cache.Key(full[0], kv.RouteDigest(full[1:59], sampler.DefaultMaxWaypoints, sampler.DefaultMinTurnAngle)))
	assert.ErrorIs(t, err, kv.ErrCacheMiss)

	_, err = svc.ClearCacheRegion(ctx, 100, 0, 0)
	assert.ErrorIs(t, err, server.ErrBadParamInput)
}

func TestCacheDisabled(t *testing.T) {
	svc := NewWaypointService(nil, nil, nil, 0, sampler.DefaultMinTurnAngle, 0)

	res, err := svc.SampleRoute(context.Background(), SampleRouteParams{Coordinates: cornerRoute(60)})
	require.NoError(t, err)
	assert.Len(t, res.Waypoints, sampler.DefaultMaxWaypoints)

	assert.ErrorIs(t, svc.ClearCache(context.Background()), server.ErrNotFound)
	_, err = svc.ClearCacheRegion(context.Background(), 0, 0, 0)
	assert.ErrorIs(t, err, server.ErrNotFound)
}

type brokenCache struct{ WaypointCache }

func (brokenCache) Key(origin datastructure.Coordinate, digest uint64) []byte {
	return []byte(fmt.Sprintf("%x", digest))
}

func (brokenCache) Get(ctx context.Context, key []byte) (kv.CachedSampling, error) {
	return kv.CachedSampling{}, errors.New("disk on fire")
}

func (brokenCache) Put(ctx context.Context, key []byte, cs kv.CachedSampling) error {
	return errors.New("disk on fire")
}

func TestSampleRouteCacheFailureIsNotFatal(t *testing.T) {
	svc := NewWaypointService(brokenCache{}, nil, nil, 10, sampler.DefaultMinTurnAngle, 1)

	res, err := svc.SampleRoute(context.Background(), SampleRouteParams{Coordinates: cornerRoute(60)})
	require.NoError(t, err)
	assert.False(t, res.Cached)
	assert.Len(t, res.Waypoints, 10)
}
