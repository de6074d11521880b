package routegeom

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lintang-b-s/navsampler/pkg/datastructure"
	"github.com/lintang-b-s/navsampler/pkg/geo"
	"github.com/lintang-b-s/navsampler/pkg/server"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

var (
	ErrTooFewPoints  = errors.New("route needs at least 2 points")
	ErrNoLineString  = errors.New("geojson has no LineString geometry")
	ErrUnsupportedGJ = errors.New("unsupported geojson geometry")
)

// Route is a full trip: origin and destination are tracked apart from the interior points fed to the sampler.
type Route struct {
	Origin      datastructure.Coordinate
	Destination datastructure.Coordinate
	Interior    []datastructure.Coordinate
}

// Coordinates returns origin, interior and destination as one path.
func (r Route) Coordinates() []datastructure.Coordinate {
	path := make([]datastructure.Coordinate, 0, len(r.Interior)+2)
	path = append(path, r.Origin)
	path = append(path, r.Interior...)
	path = append(path, r.Destination)
	return path
}

func (r Route) LengthMeters() float64 {
	return geo.PathLengthMeters(r.Coordinates())
}

// WithWaypoints builds the route sent downstream: origin, the given waypoints, destination.
func (r Route) WithWaypoints(waypoints []datastructure.Coordinate) Route {
	interior := make([]datastructure.Coordinate, len(waypoints))
	copy(interior, waypoints)
	return Route{Origin: r.Origin, Destination: r.Destination, Interior: interior}
}

func FromCoordinates(full []datastructure.Coordinate) (Route, error) {
	if len(full) < 2 {
		return Route{}, server.WrapErrorf(ErrTooFewPoints, server.ErrBadParamInput, "route has %d points", len(full))
	}

	interior := make([]datastructure.Coordinate, len(full)-2)
	copy(interior, full[1:len(full)-1])
	return Route{
		Origin:      full[0],
		Destination: full[len(full)-1],
		Interior:    interior,
	}, nil
}

func FromPolyline(encoded string) (Route, error) {
	path, err := datastructure.DecodePolyline(encoded)
	if err != nil {
		return Route{}, server.WrapErrorf(err, server.ErrBadParamInput, "invalid polyline")
	}
	return FromCoordinates(path)
}

/*
FromGeoJSON. terima salah satu dari:

  - LineString geometry
  - MultiLineString geometry (semua line digabung berurutan)
  - Feature dengan geometry di atas
  - FeatureCollection, dipakai feature pertama yang geometry-nya LineString/MultiLineString
*/ // nolint: gofmt
func FromGeoJSON(raw []byte) (Route, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return Route{}, server.WrapErrorf(err, server.ErrBadParamInput, "invalid geojson")
	}

	var (
		path []datastructure.Coordinate
		err  error
	)
	switch probe.Type {
	case "FeatureCollection":
		path, err = pathFromFeatureCollection(raw)
	case "Feature":
		var f *geojson.Feature
		f, err = geojson.UnmarshalFeature(raw)
		if err == nil {
			path, err = pathFromGeometry(f.Geometry)
		}
	default:
		var g *geojson.Geometry
		g, err = geojson.UnmarshalGeometry(raw)
		if err == nil {
			path, err = pathFromGeometry(g.Geometry())
		}
	}
	if err != nil {
		return Route{}, server.WrapErrorf(err, server.ErrBadParamInput, "invalid geojson route")
	}

	return FromCoordinates(path)
}

func pathFromFeatureCollection(raw []byte) ([]datastructure.Coordinate, error) {
	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, err
	}
	for _, f := range fc.Features {
		switch f.Geometry.(type) {
		case orb.LineString, orb.MultiLineString:
			return pathFromGeometry(f.Geometry)
		}
	}
	return nil, ErrNoLineString
}

func pathFromGeometry(g orb.Geometry) ([]datastructure.Coordinate, error) {
	switch geom := g.(type) {
	case orb.LineString:
		return fromLineString(nil, geom), nil
	case orb.MultiLineString:
		var path []datastructure.Coordinate
		for _, ls := range geom {
			path = fromLineString(path, ls)
		}
		return path, nil
	case nil:
		return nil, ErrNoLineString
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedGJ, geom.GeoJSONType())
	}
}

func fromLineString(path []datastructure.Coordinate, ls orb.LineString) []datastructure.Coordinate {
	for _, p := range ls {
		path = append(path, datastructure.NewCoordinateLonLat(p.Lon(), p.Lat()))
	}
	return path
}

// ToFeatureCollection renders the route as a LineString feature plus one Point feature per stop.
func (r Route) ToFeatureCollection() *geojson.FeatureCollection {
	coords := r.Coordinates()
	ls := make(orb.LineString, 0, len(coords))
	for _, c := range coords {
		ls = append(ls, orb.Point(c.LonLat()))
	}

	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(ls))

	for i, c := range coords {
		f := geojson.NewFeature(orb.Point(c.LonLat()))
		switch i {
		case 0:
			f.Properties["role"] = "origin"
		case len(coords) - 1:
			f.Properties["role"] = "destination"
		default:
			f.Properties["role"] = "waypoint"
			f.Properties["order"] = i
		}
		fc.Append(f)
	}
	return fc
}
