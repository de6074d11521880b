package service

import (
	"context"

	"github.com/lintang-b-s/navsampler/pkg/datastructure"
	"github.com/lintang-b-s/navsampler/pkg/kv"
)

type WaypointCache interface {
	Key(origin datastructure.Coordinate, digest uint64) []byte
	Get(ctx context.Context, key []byte) (kv.CachedSampling, error)
	Put(ctx context.Context, key []byte, cs kv.CachedSampling) error
	ClearRegion(ctx context.Context, lat, lon, radiusKm float64) (int, error)
	Clear(ctx context.Context) error
}
