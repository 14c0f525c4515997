// SPDX-License-Identifier: MIT

package openapi_server

// NavigatorRequest selects the search algorithm, "astar" or "dijkstra"
type NavigatorRequest struct {
	Navigator string `json:"navigator"`
}

// AssertNavigatorRequestRequired checks if the required fields are not zero-ed
func AssertNavigatorRequestRequired(obj NavigatorRequest) error {
	if IsZeroValue(obj.Navigator) {
		return &RequiredError{Field: "navigator"}
	}
	return nil
}
