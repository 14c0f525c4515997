package openapi_server

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/natevvv/campus-routing/pkg/routing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const campusDataset = `{
	"pois": [
		{"id": 1, "name": "Main Entrance", "buildingId": "b1", "longitude": -7.9360, "latitude": 32.2190},
		{"id": "fountain", "name": "Fountain", "openSpaceId": "park", "coordinates": [-7.9350, 32.2180]},
		{"id": "broken", "name": "Nowhere"}
	],
	"paths": [
		{"id": "walk", "coordinates": [[-7.9370, 32.2192], [-7.9360, 32.2192], [-7.9340, 32.2192]]},
		{"id": "stairs", "type": "stairs", "isAccessible": false, "coordinates": [[-7.9340, 32.2192], [-7.9340, 32.2180]]}
	]
}`

// logBuffer is written by the server goroutines and read by the test
type logBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *logBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *logBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestServer(t *testing.T) (*httptest.Server, *logBuffer) {
	t.Helper()
	logs := &logBuffer{}
	logger := slog.New(slog.NewJSONHandler(logs, nil))
	router := routing.NewRouter(routing.WithLogger(logger))
	controller := NewDefaultApiController(NewDefaultApiService(router))
	server := httptest.NewServer(NewRouter(logger, controller))
	t.Cleanup(server.Close)

	resp, err := http.Post(server.URL+"/graph", "application/json", strings.NewReader(campusDataset))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats map[string]int
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, 1, stats["skippedPois"])
	assert.Equal(t, 2, stats["attachedPois"])
	return server, logs
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestComputeRoute(t *testing.T) {
	server, logs := newTestServer(t)

	resp := post(t, server.URL+"/routes", `{
		"origin": {"lon": -7.9360, "lat": 32.2185},
		"destination": {"lon": -7.9340, "lat": 32.2181},
		"destinationName": "Lab"
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	var route routing.Route
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&route))
	assert.False(t, route.Direct)
	assert.Equal(t, "1", route.From.ID)
	assert.Equal(t, "Lab", route.To.Name)
	assert.Greater(t, route.Distance, 0.0)
	assert.Len(t, route.Instructions, len(route.Coordinates))

	assert.Contains(t, logs.String(), `"route":"ComputeRoute"`)
}

func TestComputeRouteAvoidingStairs(t *testing.T) {
	server, _ := newTestServer(t)
	resp := post(t, server.URL+"/graph", `{"paths": [
		{"id": "walk", "coordinates": [[-7.9370, 32.2192], [-7.9340, 32.2192]]},
		{"id": "stairs", "type": "stairs", "coordinates": [[-7.9340, 32.2192], [-7.9340, 32.2180]]}
	]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	request := `{
		"origin": {"lon": -7.9370, "lat": 32.2192},
		"destination": {"lon": -7.9340, "lat": 32.2180}
	}`
	resp = post(t, server.URL+"/routes", request)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var route routing.Route
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&route))
	assert.False(t, route.Direct)

	resp = post(t, server.URL+"/routes", `{
		"origin": {"lon": -7.9370, "lat": 32.2192},
		"destination": {"lon": -7.9340, "lat": 32.2180},
		"avoidStairs": true
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	route = routing.Route{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&route))
	assert.True(t, route.Direct)
	assert.Len(t, route.Coordinates, 2)
}

func TestComputeRouteGeoJSON(t *testing.T) {
	server, _ := newTestServer(t)

	resp := post(t, server.URL+"/routes?format=geojson", `{
		"origin": {"lon": -7.9360, "lat": 32.2185},
		"destination": {"lon": -7.9340, "lat": 32.2181}
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var feature struct {
		Type     string `json:"type"`
		Geometry struct {
			Type string `json:"type"`
		} `json:"geometry"`
		Properties map[string]interface{} `json:"properties"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&feature))
	assert.Equal(t, "Feature", feature.Type)
	assert.Equal(t, "LineString", feature.Geometry.Type)
	assert.Equal(t, false, feature.Properties["direct"])
}

func TestComputeRouteBadRequests(t *testing.T) {
	server, _ := newTestServer(t)

	tests := []struct {
		name   string
		url    string
		body   string
		status int
	}{
		{"malformed json", "/routes", `{"origin":`, http.StatusBadRequest},
		{"unknown field", "/routes", `{"origin": {"lon": 1, "lat": 1}, "destination": {"lon": 1, "lat": 1}, "speed": 3}`, http.StatusBadRequest},
		{"missing destination", "/routes", `{"origin": {"lon": 1, "lat": 1}}`, http.StatusUnprocessableEntity},
		{"invalid coordinate", "/routes", `{"origin": {"lon": 200, "lat": 1}, "destination": {"lon": 1, "lat": 1}}`, http.StatusBadRequest},
		{"unknown format", "/routes?format=kml", `{"origin": {"lon": 1, "lat": 1}, "destination": {"lon": 1, "lat": 1}}`, http.StatusBadRequest},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			resp := post(t, server.URL+test.url, test.body)
			assert.Equal(t, test.status, resp.StatusCode)

			var body ErrorBody
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestGetNodes(t *testing.T) {
	server, _ := newTestServer(t)

	resp := get(t, server.URL+"/nodes")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var nodes Nodes
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&nodes))
	// two POIs and four path nodes
	assert.Len(t, nodes.Waypoints, 6)
}

func TestFindNearestPOI(t *testing.T) {
	server, _ := newTestServer(t)

	resp := get(t, server.URL+"/pois/nearest?lon=-7.9351&lat=32.2181")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var poi map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&poi))
	assert.Equal(t, "fountain", poi["id"])

	resp = get(t, server.URL+"/pois/nearest?lon=-7.9351&lat=32.2181&buildingId=b1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&poi))
	assert.Equal(t, "1", poi["id"])

	resp = get(t, server.URL+"/pois/nearest?lon=-7.9351&lat=32.2181&buildingId=b9")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = get(t, server.URL+"/pois/nearest?lat=32.2181")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPOIsByArea(t *testing.T) {
	server, _ := newTestServer(t)

	var pois []map[string]interface{}
	resp := get(t, server.URL+"/buildings/b1/pois")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pois))
	require.Len(t, pois, 1)
	assert.Equal(t, "Main Entrance", pois[0]["name"])

	resp = get(t, server.URL+"/openspaces/park/pois")
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pois))
	require.Len(t, pois, 1)
	assert.Equal(t, "fountain", pois[0]["id"])

	resp = get(t, server.URL+"/openspaces/square/pois")
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pois))
	assert.Empty(t, pois)
}

func TestBuildGraphRejectsUnknownFormat(t *testing.T) {
	server, _ := newTestServer(t)

	resp := post(t, server.URL+"/graph", `[1, 2, 3]`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = get(t, server.URL+"/nodes")
	var nodes Nodes
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&nodes))
	assert.Len(t, nodes.Waypoints, 6, "the previous graph stays active")
}

func TestSetNavigator(t *testing.T) {
	server, _ := newTestServer(t)

	resp := post(t, server.URL+"/navigator", `{"navigator": "dijkstra"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = post(t, server.URL+"/navigator", `{"navigator": "contraction-hierarchies"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = post(t, server.URL+"/navigator", `{}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}
