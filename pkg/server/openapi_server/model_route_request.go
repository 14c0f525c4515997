// SPDX-License-Identifier: MIT

package openapi_server

type RouteRequest struct {
	Origin          *Point `json:"origin"`
	Destination     *Point `json:"destination"`
	OriginName      string `json:"originName,omitempty"`
	DestinationName string `json:"destinationName,omitempty"`
	Accessible      bool   `json:"accessible,omitempty"`
	AvoidStairs     bool   `json:"avoidStairs,omitempty"`
}

// AssertRouteRequestRequired checks if the required fields are not zero-ed
func AssertRouteRequestRequired(obj RouteRequest) error {
	elements := map[string]interface{}{
		"origin":      obj.Origin,
		"destination": obj.Destination,
	}
	for name, el := range elements {
		if isZero := IsZeroValue(el); isZero {
			return &RequiredError{Field: name}
		}
	}

	if err := AssertPointValid(*obj.Origin); err != nil {
		return err
	}
	return AssertPointValid(*obj.Destination)
}
