// SPDX-License-Identifier: MIT

package openapi_server

import (
	"context"
	"net/http"

	"github.com/natevvv/campus-routing/pkg/campus"
	"github.com/natevvv/campus-routing/pkg/routing"
)

// DefaultApiService is a service that implements the logic for the DefaultApiServicer
// This service should implement the business logic for every endpoint for the DefaultApi API.
// Include any external packages or services that will be required by this service.
type DefaultApiService struct {
	router *routing.Router
}

// NewDefaultApiService creates a default api service
func NewDefaultApiService(router *routing.Router) DefaultApiServicer {
	return &DefaultApiService{router: router}
}

// ComputeRoute - Compute a new route
func (s *DefaultApiService) ComputeRoute(ctx context.Context, routeRequest RouteRequest, format string) (ImplResponse, error) {
	options := routing.RouteOptions{Accessible: routeRequest.Accessible, AvoidStairs: routeRequest.AvoidStairs}
	route := s.router.FindRoute(routeRequest.Origin.Orb(), routeRequest.Destination.Orb(),
		routeRequest.OriginName, routeRequest.DestinationName, options)

	if format == "geojson" {
		return Response(http.StatusOK, route.GeoJSON()), nil
	}
	return Response(http.StatusOK, route), nil
}

func (s *DefaultApiService) GetNodes(ctx context.Context) (ImplResponse, error) {
	nodes := s.router.Graph().GetNodes()

	vertices := make([]Point, 0, len(nodes))
	for _, node := range nodes {
		vertices = append(vertices, pointFromOrb(node.Coordinates))
	}
	return Response(http.StatusOK, Nodes{Waypoints: vertices}), nil
}

func (s *DefaultApiService) FindNearestPOI(ctx context.Context, point Point, buildingID, openSpaceID string) (ImplResponse, error) {
	poi, ok := s.router.FindNearestPOI(point.Orb(), buildingID, openSpaceID)
	if !ok {
		return Response(http.StatusNotFound, ErrorBody{Message: "no POI found"}), nil
	}
	return Response(http.StatusOK, poi), nil
}

func (s *DefaultApiService) GetBuildingPOIs(ctx context.Context, buildingID string) (ImplResponse, error) {
	return Response(http.StatusOK, nonNil(s.router.FindPOIsForBuilding(buildingID))), nil
}

func (s *DefaultApiService) GetOpenSpacePOIs(ctx context.Context, openSpaceID string) (ImplResponse, error) {
	return Response(http.StatusOK, nonNil(s.router.FindPOIsForOpenSpace(openSpaceID))), nil
}

func (s *DefaultApiService) BuildGraph(ctx context.Context, dataset *campus.Dataset) (ImplResponse, error) {
	stats := s.router.BuildGraph(dataset.POIs, dataset.Paths)
	return Response(http.StatusOK, stats), nil
}

func (s *DefaultApiService) SetNavigator(ctx context.Context, navigatorRequest NavigatorRequest) (ImplResponse, error) {
	if err := s.router.SetNavigator(navigatorRequest.Navigator); err != nil {
		return Response(http.StatusBadRequest, nil), err
	}
	return Response(http.StatusOK, navigatorRequest), nil
}

// encode empty results as [] instead of null
func nonNil(pois []campus.POI) []campus.POI {
	if pois == nil {
		return []campus.POI{}
	}
	return pois
}
