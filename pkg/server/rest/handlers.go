package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/lintang-b-s/navsampler/pkg/datastructure"
	"github.com/lintang-b-s/navsampler/pkg/server/rest/service"
	"github.com/lintang-b-s/navsampler/pkg/util"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"go.uber.org/zap"
)

type WaypointService interface {
	SampleRoute(ctx context.Context, params service.SampleRouteParams) (service.SampleRouteResult, error)
	SampleRoutes(ctx context.Context, params []service.SampleRouteParams) ([]service.BatchItemResult, error)
	ClearCache(ctx context.Context) error
	ClearCacheRegion(ctx context.Context, lat, lon, radiusKm float64) (int, error)
}

type WaypointHandler struct {
	svc      WaypointService
	validate *validator.Validate
	trans    ut.Translator
	log      *zap.Logger
}

func WaypointRouter(r *chi.Mux, svc WaypointService, log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	validate := validator.New()
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	handler := &WaypointHandler{svc: svc, validate: validate, trans: trans, log: log}

	r.Group(func(r chi.Router) {
		r.Route("/api/waypoints", func(r chi.Router) {
			r.Post("/sample", handler.SampleRoute)
			r.Post("/batch", handler.SampleRoutes)
			r.Delete("/cache", handler.ClearCache)
		})
	})
}

// Coord model info
//
//	@Description	model untuk koordinat
type Coord struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon float64 `json:"lon" validate:"gte=-180,lte=180"`
}

func newCoord(c datastructure.Coordinate) Coord {
	return Coord{Lat: c.Lat, Lon: c.Lon}
}

func newCoords(cs []datastructure.Coordinate) []Coord {
	coords := make([]Coord, 0, len(cs))
	for _, c := range cs {
		coords = append(coords, newCoord(c))
	}
	return coords
}

// SampleRouteRequest model info
//
//	@Description	request body untuk sampling waypoint. isi salah satu dari coordinates, polyline, atau geojson
type SampleRouteRequest struct {
	Coordinates       []Coord         `json:"coordinates" validate:"omitempty,min=2,dive"`
	Polyline          string          `json:"polyline"`
	GeoJSON           json.RawMessage `json:"geojson" swaggertype:"object"`
	MaxWaypoints      int             `json:"max_waypoints" validate:"gte=0,lte=1000"`
	MinTurnAngle      *float64        `json:"min_turn_angle" validate:"omitempty,gte=0,lte=180"`
	IncludeEndpoints  bool            `json:"include_endpoints"`
	SimplifyTolerance float64         `json:"simplify_tolerance" validate:"gte=0"`
	SkipCache         bool            `json:"skip_cache"`
}

func (s *SampleRouteRequest) hasGeoJSON() bool {
	return len(s.GeoJSON) > 0 && string(s.GeoJSON) != "null"
}

func (s *SampleRouteRequest) Bind(r *http.Request) error {
	if len(s.Coordinates) == 0 && s.Polyline == "" && !s.hasGeoJSON() {
		return errors.New("invalid request: coordinates, polyline or geojson is required")
	}
	return nil
}

func (s *SampleRouteRequest) toParams() service.SampleRouteParams {
	coords := make([]datastructure.Coordinate, 0, len(s.Coordinates))
	for _, c := range s.Coordinates {
		coords = append(coords, datastructure.NewCoordinate(c.Lat, c.Lon))
	}
	var geojson []byte
	if s.hasGeoJSON() {
		geojson = s.GeoJSON
	}
	return service.SampleRouteParams{
		Coordinates:       coords,
		Polyline:          s.Polyline,
		GeoJSON:           geojson,
		MaxWaypoints:      s.MaxWaypoints,
		MinTurnAngle:      s.MinTurnAngle,
		IncludeEndpoints:  s.IncludeEndpoints,
		SimplifyTolerance: s.SimplifyTolerance,
		SkipCache:         s.SkipCache,
	}
}

// TurnResponse model info
//
//	@Description	belokan signifikan di route
type TurnResponse struct {
	Index     int     `json:"index"`
	Angle     float64 `json:"angle"`
	Direction string  `json:"direction"`
}

func newTurns(turns []datastructure.Turn) []TurnResponse {
	resp := make([]TurnResponse, 0, len(turns))
	for _, t := range turns {
		resp = append(resp, TurnResponse{
			Index:     t.Index,
			Angle:     util.RoundFloat(t.Angle, 2),
			Direction: datastructure.TurnSignName(t.Sign),
		})
	}
	return resp
}

// SampleRouteResponse model info
//
//	@Description	response body untuk sampling waypoint
type SampleRouteResponse struct {
	Origin            Coord          `json:"origin"`
	Destination       Coord          `json:"destination"`
	Waypoints         []Coord        `json:"waypoints"`
	Indices           []int          `json:"indices"`
	Polyline          string         `json:"polyline"`
	OriginalCount     int            `json:"original_count"`
	TurnCount         int            `json:"turn_count"`
	Turns             []TurnResponse `json:"turns"`
	Strategy          string         `json:"strategy"`
	RouteLengthMeters float64        `json:"route_length_meters"`
	Cached            bool           `json:"cached"`
}

func RenderSampleRouteResponse(res service.SampleRouteResult) *SampleRouteResponse {
	indices := res.Indices
	if indices == nil {
		indices = []int{}
	}
	return &SampleRouteResponse{
		Origin:            newCoord(res.Origin),
		Destination:       newCoord(res.Destination),
		Waypoints:         newCoords(res.Waypoints),
		Indices:           indices,
		Polyline:          res.Polyline,
		OriginalCount:     res.OriginalCount,
		TurnCount:         res.TurnCount,
		Turns:             newTurns(res.Turns),
		Strategy:          res.Strategy,
		RouteLengthMeters: res.RouteLengthMeters,
		Cached:            res.Cached,
	}
}

// SampleRoute
//
//	@Summary		kompres route GPS yang padat jadi maksimal max_waypoints waypoint, titik belokan diprioritaskan
//	@Description	kompres route GPS yang padat jadi maksimal max_waypoints waypoint. titik pertama & terakhir jadi origin/destination, sisanya di-sampling. belokan >= min_turn_angle derajat selalu diprioritaskan.
//	@Tags			waypoints
//	@Param			body	body	SampleRouteRequest	true	"request body sampling waypoint"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/waypoints/sample [post]
//	@Success		200	{object}	SampleRouteResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *WaypointHandler) SampleRoute(w http.ResponseWriter, r *http.Request) {
	data := &SampleRouteRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if err := h.validate.Struct(*data); err != nil {
		render.Render(w, r, ErrValidation(err, translateError(err, h.trans)))
		return
	}

	res, err := h.svc.SampleRoute(r.Context(), data.toParams())
	if err != nil {
		h.logError(r, err)
		render.Render(w, r, ErrRenderer(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, RenderSampleRouteResponse(res))
}

// BatchSampleRouteRequest model info
//
//	@Description	request body untuk sampling banyak route sekaligus
type BatchSampleRouteRequest struct {
	Routes []SampleRouteRequest `json:"routes" validate:"required,min=1,max=50,dive"`
}

func (s *BatchSampleRouteRequest) Bind(r *http.Request) error {
	for i := range s.Routes {
		if err := s.Routes[i].Bind(r); err != nil {
			return errors.New("invalid request: route " + strconv.Itoa(i) + " has no coordinates, polyline or geojson")
		}
	}
	return nil
}

// BatchItemResponse model info
//
//	@Description	hasil sampling satu route di batch, route atau error
type BatchItemResponse struct {
	Route *SampleRouteResponse `json:"route,omitempty"`
	Error string               `json:"error,omitempty"`
}

// BatchSampleRouteResponse model info
//
//	@Description	response body untuk batch sampling, urutannya sama dengan request
type BatchSampleRouteResponse struct {
	Routes []BatchItemResponse `json:"routes"`
}

func RenderBatchSampleRouteResponse(items []service.BatchItemResult) *BatchSampleRouteResponse {
	routes := make([]BatchItemResponse, 0, len(items))
	for _, item := range items {
		if item.Err != nil {
			routes = append(routes, BatchItemResponse{Error: item.Err.Error()})
			continue
		}
		routes = append(routes, BatchItemResponse{Route: RenderSampleRouteResponse(item.Result)})
	}
	return &BatchSampleRouteResponse{Routes: routes}
}

// SampleRoutes
//
//	@Summary		sampling waypoint untuk banyak route sekaligus (maks 50)
//	@Description	sampling waypoint untuk banyak route sekaligus (maks 50). route yang gagal diisi error, route lain tetap diproses.
//	@Tags			waypoints
//	@Param			body	body	BatchSampleRouteRequest	true	"request body batch sampling waypoint"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/waypoints/batch [post]
//	@Success		200	{object}	BatchSampleRouteResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *WaypointHandler) SampleRoutes(w http.ResponseWriter, r *http.Request) {
	data := &BatchSampleRouteRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if err := h.validate.Struct(*data); err != nil {
		render.Render(w, r, ErrValidation(err, translateError(err, h.trans)))
		return
	}

	params := make([]service.SampleRouteParams, 0, len(data.Routes))
	for i := range data.Routes {
		params = append(params, data.Routes[i].toParams())
	}

	items, err := h.svc.SampleRoutes(r.Context(), params)
	if err != nil {
		h.logError(r, err)
		render.Render(w, r, ErrRenderer(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, RenderBatchSampleRouteResponse(items))
}

// ClearCacheResponse model info
//
//	@Description	response body hapus cache
type ClearCacheResponse struct {
	Cleared bool `json:"cleared"`
	Deleted *int `json:"deleted,omitempty"`
}

// ClearCache
//
//	@Summary		hapus cache hasil sampling. tanpa query hapus semua, dengan lat & lon hapus region h3 di sekitar titik itu
//	@Description	hapus cache hasil sampling. tanpa query hapus semua, dengan lat & lon hapus region h3 di sekitar titik itu (radius_km opsional)
//	@Tags			waypoints
//	@Param			lat			query	number	false	"latitude pusat region"
//	@Param			lon			query	number	false	"longitude pusat region"
//	@Param			radius_km	query	number	false	"radius region dalam km"
//	@Produce		application/json
//	@Router			/waypoints/cache [delete]
//	@Success		200	{object}	ClearCacheResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *WaypointHandler) ClearCache(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	latStr, lonStr := q.Get("lat"), q.Get("lon")

	if latStr == "" && lonStr == "" {
		if err := h.svc.ClearCache(r.Context()); err != nil {
			h.logError(r, err)
			render.Render(w, r, ErrRenderer(err))
			return
		}
		render.Status(r, http.StatusOK)
		render.JSON(w, r, &ClearCacheResponse{Cleared: true})
		return
	}

	lat, errLat := strconv.ParseFloat(latStr, 64)
	lon, errLon := strconv.ParseFloat(lonStr, 64)
	if errLat != nil || errLon != nil {
		render.Render(w, r, ErrInvalidRequest(errors.New("lat and lon must both be numbers")))
		return
	}
	radiusKm := 0.0
	if rs := q.Get("radius_km"); rs != "" {
		var err error
		radiusKm, err = strconv.ParseFloat(rs, 64)
		if err != nil {
			render.Render(w, r, ErrInvalidRequest(errors.New("radius_km must be a number")))
			return
		}
	}

	deleted, err := h.svc.ClearCacheRegion(r.Context(), lat, lon, radiusKm)
	if err != nil {
		h.logError(r, err)
		render.Render(w, r, ErrRenderer(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, &ClearCacheResponse{Cleared: true, Deleted: &deleted})
}

func (h *WaypointHandler) logError(r *http.Request, err error) {
	h.log.Warn("request failed", zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Error(err))
}
