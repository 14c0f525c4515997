// SPDX-License-Identifier: MIT

package openapi_server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/natevvv/campus-routing/pkg/campus"
)

// maxDatasetSize limits the body of a graph upload
const maxDatasetSize = 64 << 20

// DefaultApiController binds http requests to an api service and writes the service results to the http response
type DefaultApiController struct {
	service      DefaultApiServicer
	errorHandler ErrorHandler
}

// DefaultApiOption for how the controller is set up.
type DefaultApiOption func(*DefaultApiController)

// WithDefaultApiErrorHandler inject ErrorHandler into controller
func WithDefaultApiErrorHandler(h ErrorHandler) DefaultApiOption {
	return func(c *DefaultApiController) {
		c.errorHandler = h
	}
}

// NewDefaultApiController creates a default api controller
func NewDefaultApiController(s DefaultApiServicer, opts ...DefaultApiOption) Router {
	controller := &DefaultApiController{
		service:      s,
		errorHandler: DefaultErrorHandler,
	}

	for _, opt := range opts {
		opt(controller)
	}

	return controller
}

// Routes returns all of the api route for the DefaultApiController
func (c *DefaultApiController) Routes() Routes {
	return Routes{
		{
			"ComputeRoute",
			strings.ToUpper("Post"),
			"/routes",
			c.ComputeRoute,
		},
		{
			"GetNodes",
			strings.ToUpper("Get"),
			"/nodes",
			c.GetNodes,
		},
		{
			"FindNearestPOI",
			strings.ToUpper("Get"),
			"/pois/nearest",
			c.FindNearestPOI,
		},
		{
			"GetBuildingPOIs",
			strings.ToUpper("Get"),
			"/buildings/{buildingId}/pois",
			c.GetBuildingPOIs,
		},
		{
			"GetOpenSpacePOIs",
			strings.ToUpper("Get"),
			"/openspaces/{openSpaceId}/pois",
			c.GetOpenSpacePOIs,
		},
		{
			"BuildGraph",
			strings.ToUpper("Post"),
			"/graph",
			c.BuildGraph,
		},
		{
			"SetNavigator",
			strings.ToUpper("Post"),
			"/navigator",
			c.SetNavigator,
		},
	}
}

func (c *DefaultApiController) encode(w http.ResponseWriter, r *http.Request, method string, result ImplResponse, err error) {
	// If an error occurred, encode the error with the status code
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	// If no error, encode the body and the result code
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", method)
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	EncodeJSONResponse(result.Body, &result.Code, w)
}

// ComputeRoute - Compute a new route
func (c *DefaultApiController) ComputeRoute(w http.ResponseWriter, r *http.Request) {
	routeRequestParam := RouteRequest{}
	d := json.NewDecoder(r.Body)
	d.DisallowUnknownFields()
	if err := d.Decode(&routeRequestParam); err != nil {
		c.errorHandler(w, r, &ParsingError{Err: err}, nil)
		return
	}
	if err := AssertRouteRequestRequired(routeRequestParam); err != nil {
		c.errorHandler(w, r, err, nil)
		return
	}
	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "geojson" {
		c.errorHandler(w, r, &ParsingError{Err: fmt.Errorf("unknown format %q", format)}, nil)
		return
	}
	result, err := c.service.ComputeRoute(r.Context(), routeRequestParam, format)
	c.encode(w, r, "POST", result, err)
}

func (c *DefaultApiController) GetNodes(w http.ResponseWriter, r *http.Request) {
	result, err := c.service.GetNodes(r.Context())
	c.encode(w, r, "GET", result, err)
}

// FindNearestPOI - Find the POI closest to a coordinate
func (c *DefaultApiController) FindNearestPOI(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	lonParam, err := parseFloatParameter(query.Get("lon"), true)
	if err != nil {
		c.errorHandler(w, r, &ParsingError{Err: fmt.Errorf("lon: %w", err)}, nil)
		return
	}
	latParam, err := parseFloatParameter(query.Get("lat"), true)
	if err != nil {
		c.errorHandler(w, r, &ParsingError{Err: fmt.Errorf("lat: %w", err)}, nil)
		return
	}
	point := Point{Lon: lonParam, Lat: latParam}
	if err := AssertPointValid(point); err != nil {
		c.errorHandler(w, r, err, nil)
		return
	}
	result, err := c.service.FindNearestPOI(r.Context(), point, query.Get("buildingId"), query.Get("openSpaceId"))
	c.encode(w, r, "GET", result, err)
}

func (c *DefaultApiController) GetBuildingPOIs(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	result, err := c.service.GetBuildingPOIs(r.Context(), params["buildingId"])
	c.encode(w, r, "GET", result, err)
}

func (c *DefaultApiController) GetOpenSpacePOIs(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	result, err := c.service.GetOpenSpacePOIs(r.Context(), params["openSpaceId"])
	c.encode(w, r, "GET", result, err)
}

// BuildGraph - Replace the graph with one built from the posted dataset
func (c *DefaultApiController) BuildGraph(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxDatasetSize))
	if err != nil {
		c.errorHandler(w, r, &ParsingError{Err: err}, nil)
		return
	}
	dataset, err := campus.ParseDataset(body)
	if err != nil {
		c.errorHandler(w, r, &ParsingError{Err: err}, nil)
		return
	}
	result, err := c.service.BuildGraph(r.Context(), dataset)
	c.encode(w, r, "POST", result, err)
}

func (c *DefaultApiController) SetNavigator(w http.ResponseWriter, r *http.Request) {
	navigatorRequestParam := NavigatorRequest{}
	d := json.NewDecoder(r.Body)
	d.DisallowUnknownFields()
	if err := d.Decode(&navigatorRequestParam); err != nil {
		c.errorHandler(w, r, &ParsingError{Err: err}, nil)
		return
	}
	if err := AssertNavigatorRequestRequired(navigatorRequestParam); err != nil {
		c.errorHandler(w, r, err, nil)
		return
	}
	result, err := c.service.SetNavigator(r.Context(), navigatorRequestParam)
	c.encode(w, r, "POST", result, err)
}
