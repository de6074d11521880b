package datastructure

import "math"

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// 16 byte (128bit)

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Lat: lat,
		Lon: lon,
	}
}

// NewCoordinateLonLat builds a coordinate from a geojson-ordered (lon, lat) pair.
func NewCoordinateLonLat(lon, lat float64) Coordinate {
	return Coordinate{
		Lat: lat,
		Lon: lon,
	}
}

// LonLat returns the coordinate in geojson order.
func (c Coordinate) LonLat() [2]float64 {
	return [2]float64{c.Lon, c.Lat}
}

func (c Coordinate) IsFinite() bool {
	return !math.IsNaN(c.Lat) && !math.IsNaN(c.Lon) && !math.IsInf(c.Lat, 0) && !math.IsInf(c.Lon, 0)
}

func NewCoordinates(lat, lon []float64) []Coordinate {
	coords := make([]Coordinate, len(lat))
	for i := range lat {
		coords[i] = NewCoordinate(lat[i], lon[i])
	}
	return coords
}

/*
IndexedCoordinate. coordinate yang dibawa bersama posisi aslinya di input route.

waypoint selector mengurutkan ulang titik belokan + titik filler berdasarkan Index ini,
bukan berdasarkan pencarian nilai koordinat. route yang lewat titik yang sama dua kali
(loop) tetap punya urutan yang benar.
*/ // nolint: gofmt
type IndexedCoordinate struct {
	Index int
	Coordinate
}

func NewIndexedCoordinates(coords []Coordinate) []IndexedCoordinate {
	indexed := make([]IndexedCoordinate, len(coords))
	for i, c := range coords {
		indexed[i] = IndexedCoordinate{Index: i, Coordinate: c}
	}
	return indexed
}

func UnwrapIndexedCoordinates(indexed []IndexedCoordinate) []Coordinate {
	coords := make([]Coordinate, len(indexed))
	for i, ic := range indexed {
		coords[i] = ic.Coordinate
	}
	return coords
}

// Turn is a significant change of direction at Index. Angle is the absolute bearing change in degrees, [0, 180].
// Sign is one of the TURN_* constants.
type Turn struct {
	Index int
	Angle float64
	Sign  int
}
