package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/lintang-b-s/navsampler/pkg/datastructure"
	"github.com/lintang-b-s/navsampler/pkg/logger"
	"github.com/lintang-b-s/navsampler/pkg/routegeom"
	"github.com/lintang-b-s/navsampler/pkg/sampler"
	"github.com/lintang-b-s/navsampler/pkg/server/rest/service"
)

var (
	geojsonFile      = flag.String("f", "", "geojson file berisi LineString route")
	encodedPolyline  = flag.String("polyline", "", "encoded polyline route (precision 5)")
	maxWaypoints     = flag.Int("max", sampler.DefaultMaxWaypoints, "maksimal jumlah waypoint, harus > 0")
	minTurnAngle     = flag.Float64("angle", sampler.DefaultMinTurnAngle, "minimal perubahan bearing (derajat) untuk dianggap belokan")
	simplify         = flag.Float64("simplify", 0, "toleransi douglas-peucker dalam meter, 0 = off")
	includeEndpoints = flag.Bool("endpoints", false, "ikut sampling titik origin & destination")
	output           = flag.String("o", "json", "output format: json, polyline, geojson")
	verbose          = flag.Bool("v", false, "log sampling stats ke stderr")
)

type sampleOutput struct {
	Origin        datastructure.Coordinate   `json:"origin"`
	Destination   datastructure.Coordinate   `json:"destination"`
	Waypoints     []datastructure.Coordinate `json:"waypoints"`
	OriginalCount int                        `json:"original_count"`
	TurnCount     int                        `json:"turn_count"`
	Strategy      string                     `json:"strategy"`
	LengthMeters  float64                    `json:"route_length_meters"`
}

// checkMaxWaypoints rejects a non positive budget. The service reads 0 as "use the default".
func checkMaxWaypoints(n int) error {
	if n <= 0 {
		return fmt.Errorf("-max must be greater than 0, got %d", n)
	}
	return nil
}

func main() {
	flag.Parse()

	if err := checkMaxWaypoints(*maxWaypoints); err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	params := service.SampleRouteParams{
		Polyline:          *encodedPolyline,
		MaxWaypoints:      *maxWaypoints,
		MinTurnAngle:      minTurnAngle,
		IncludeEndpoints:  *includeEndpoints,
		SimplifyTolerance: *simplify,
	}
	if *geojsonFile != "" {
		raw, err := os.ReadFile(*geojsonFile)
		if err != nil {
			log.Fatal(err)
		}
		params.GeoJSON = raw
	}

	level := "info"
	if *verbose {
		level = "debug"
	}
	lg, err := logger.New(level, "console")
	if err != nil {
		log.Fatal(err)
	}
	defer lg.Sync()

	svc := service.NewWaypointService(nil, logger.NewStatsReporter(lg), lg, *maxWaypoints, *minTurnAngle, 1)
	res, err := svc.SampleRoute(context.Background(), params)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	switch *output {
	case "polyline":
		fmt.Println(res.Polyline)
	case "geojson":
		route := routegeom.Route{Origin: res.Origin, Destination: res.Destination, Interior: res.Waypoints}
		writeJSON(route.ToFeatureCollection())
	default:
		writeJSON(sampleOutput{
			Origin:        res.Origin,
			Destination:   res.Destination,
			Waypoints:     res.Waypoints,
			OriginalCount: res.OriginalCount,
			TurnCount:     res.TurnCount,
			Strategy:      res.Strategy,
			LengthMeters:  res.RouteLengthMeters,
		})
	}
}

func writeJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatal(err)
	}
}
