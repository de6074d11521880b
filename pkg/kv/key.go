package kv

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/lintang-b-s/navsampler/pkg/datastructure"
	"github.com/uber/h3-go/v4"
)

const keySeparator = "/"

// RouteDigest fingerprints a route together with the sampling parameters that shape its result.
// Coordinates are hashed by their exact float bits, so routes that differ below polyline precision
// never share an entry.
func RouteDigest(path []datastructure.Coordinate, maxWaypoints int, minTurnAngle float64) uint64 {
	d := xxhash.New()
	var buf [16]byte
	for _, c := range path {
		binary.LittleEndian.PutUint64(buf[:8], math.Float64bits(c.Lat))
		binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(c.Lon))
		_, _ = d.Write(buf[:])
	}
	_, _ = d.WriteString(keySeparator)
	_, _ = d.WriteString(strconv.Itoa(maxWaypoints))
	_, _ = d.WriteString(keySeparator)
	_, _ = d.WriteString(strconv.FormatFloat(minTurnAngle, 'g', -1, 64))
	return d.Sum64()
}

func cellOf(lat, lon float64, resolution int) h3.Cell {
	return h3.LatLngToCell(h3.NewLatLng(lat, lon), resolution)
}

func regionPrefix(cell h3.Cell) []byte {
	return []byte(cell.String() + keySeparator)
}

func entryKey(cell h3.Cell, digest uint64) []byte {
	return []byte(fmt.Sprintf("%s%s%016x", cell.String(), keySeparator, digest))
}

// kRingIndexesArea returns the origin cell plus enough rings around it to cover a circle of searchRadiusKm.
func kRingIndexesArea(lat, lon, searchRadiusKm float64, resolution int) []h3.Cell {
	origin := cellOf(lat, lon, resolution)
	if searchRadiusKm <= 0 {
		return []h3.Cell{origin}
	}
	originArea := h3.CellAreaKm2(origin)
	searchArea := math.Pi * searchRadiusKm * searchRadiusKm

	radius := 0
	diskArea := originArea

	for diskArea < searchArea {
		radius++
		cellCount := float64(3*radius*(radius+1) + 1)
		diskArea = cellCount * originArea
	}

	return h3.GridDisk(origin, radius)
}
