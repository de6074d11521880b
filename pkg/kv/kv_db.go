package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/lintang-b-s/navsampler/pkg/datastructure"
	"go.uber.org/zap"
)

var (
	ErrCacheMiss = errors.New("sampling not cached")
)

const (
	DefaultH3Resolution = 7
	deleteBatchSize     = 1000
)

// WaypointCache stores sampling results in badger, keyed by the h3 cell of the route origin.
type WaypointCache struct {
	db         *badger.DB
	ttl        time.Duration
	resolution int
	log        *zap.Logger
}

type CacheOption func(*WaypointCache)

// WithTTL expires entries after ttl. Zero keeps them forever.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *WaypointCache) {
		c.ttl = ttl
	}
}

func WithH3Resolution(res int) CacheOption {
	return func(c *WaypointCache) {
		c.resolution = res
	}
}

func WithLogger(log *zap.Logger) CacheOption {
	return func(c *WaypointCache) {
		if log != nil {
			c.log = log
		}
	}
}

func NewWaypointCache(db *badger.DB, opts ...CacheOption) *WaypointCache {
	c := &WaypointCache{
		db:         db,
		resolution: DefaultH3Resolution,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OpenBadger opens the badger store at path, or a purely in-memory one.
func OpenBadger(path string, inMemory bool, log *zap.Logger) (*badger.DB, error) {
	opts := badger.DefaultOptions(path)
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	if log != nil {
		opts = opts.WithLogger(newBadgerLogger(log))
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger %q: %w", path, err)
	}
	return db, nil
}

// Key returns the cache key of a route starting at origin with the given digest (see RouteDigest).
func (c *WaypointCache) Key(origin datastructure.Coordinate, digest uint64) []byte {
	return entryKey(cellOf(origin.Lat, origin.Lon, c.resolution), digest)
}

func (c *WaypointCache) Get(ctx context.Context, key []byte) (CachedSampling, error) {
	select {
	case <-ctx.Done():
		return CachedSampling{}, ctx.Err()
	default:
	}

	var val []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}

		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return CachedSampling{}, ErrCacheMiss
	}
	if err != nil {
		return CachedSampling{}, fmt.Errorf("get %s: %w", key, err)
	}

	return loadSampling(val)
}

func (c *WaypointCache) Put(ctx context.Context, key []byte, cs CachedSampling) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	val, err := encodeSampling(cs)
	if err != nil {
		return err
	}

	return c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(key, val)
		if c.ttl > 0 {
			e = e.WithTTL(c.ttl)
		}
		return txn.SetEntry(e)
	})
}

// ClearRegion drops every entry whose route origin lies in the h3 cells covering radiusKm around (lat, lon).
// radiusKm <= 0 clears the single cell containing the point. Returns the number of deleted entries.
func (c *WaypointCache) ClearRegion(ctx context.Context, lat, lon, radiusKm float64) (int, error) {
	keys := make([][]byte, 0)
	for _, cell := range kRingIndexesArea(lat, lon, radiusKm, c.resolution) {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}

		cellKeys, err := c.keysWithPrefix(regionPrefix(cell))
		if err != nil {
			return 0, err
		}
		keys = append(keys, cellKeys...)
	}

	deleted := 0
	for start := 0; start < len(keys); start += deleteBatchSize {
		end := start + deleteBatchSize
		if end > len(keys) {
			end = len(keys)
		}
		if err := c.deleteBatch(ctx, keys[start:end]); err != nil {
			return deleted, err
		}
		deleted += end - start
	}

	c.log.Info("cleared cached samplings", zap.Float64("lat", lat), zap.Float64("lon", lon),
		zap.Float64("radius_km", radiusKm), zap.Int("deleted", deleted))
	return deleted, nil
}

func (c *WaypointCache) keysWithPrefix(prefix []byte) ([][]byte, error) {
	keys := make([][]byte, 0)
	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	return keys, err
}

func (c *WaypointCache) deleteBatch(ctx context.Context, keys [][]byte) error {
	batch := c.db.NewWriteBatch()
	defer batch.Cancel()

	for _, key := range keys {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := batch.Delete(key); err != nil {
			return err
		}
	}

	if err := batch.Flush(); err != nil {
		c.log.Error("error deleting cached samplings", zap.Error(err))
		return err
	}
	return nil
}

func (c *WaypointCache) Clear(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := c.db.DropAll(); err != nil {
		return fmt.Errorf("drop cache: %w", err)
	}
	c.log.Info("cleared all cached samplings")
	return nil
}

func (c *WaypointCache) Close() error {
	return c.db.Close()
}

type badgerLogger struct {
	s *zap.SugaredLogger
}

func newBadgerLogger(log *zap.Logger) badger.Logger {
	return badgerLogger{s: log.Named("badger").WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

func (l badgerLogger) Errorf(f string, v ...interface{})   { l.s.Errorf(f, v...) }
func (l badgerLogger) Warningf(f string, v ...interface{}) { l.s.Warnf(f, v...) }
func (l badgerLogger) Infof(f string, v ...interface{})    { l.s.Debugf(f, v...) }
func (l badgerLogger) Debugf(f string, v ...interface{})   { l.s.Debugf(f, v...) }
