package kv

import (
	"fmt"

	"github.com/kelindar/binary"
	"github.com/lintang-b-s/navsampler/pkg/datastructure"
)

// CachedSampling is the stored form of one sampling run.
type CachedSampling struct {
	Waypoints     []datastructure.Coordinate
	Indices       []int
	OriginalCount int
	TurnCount     int
	Turns         []datastructure.Turn
	Strategy      int
}

func encodeSampling(cs CachedSampling) ([]byte, error) {
	bb, err := binary.Marshal(cs)
	if err != nil {
		return nil, fmt.Errorf("encode sampling: %w", err)
	}

	bbCompressed, err := compress(bb)
	if err != nil {
		return nil, fmt.Errorf("compress sampling: %w", err)
	}
	return bbCompressed, nil
}

func loadSampling(bbCompressed []byte) (CachedSampling, error) {
	var cs CachedSampling

	bb, err := decompress(bbCompressed)
	if err != nil {
		return cs, fmt.Errorf("decompress sampling: %w", err)
	}

	if err := binary.Unmarshal(bb, &cs); err != nil {
		return cs, fmt.Errorf("decode sampling: %w", err)
	}
	return cs, nil
}
