package campus

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// The decoders below never fail. Records come from loosely validated sources,
// so a value which cannot be interpreted is reported as absent and the
// record is dropped later by the graph builder.

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func looseString(raw json.RawMessage) (string, bool) {
	if isNull(raw) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), true
	}
	return "", false
}

func looseFloat(raw json.RawMessage) (float64, bool) {
	if isNull(raw) {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return f, err == nil
	}
	return 0, false
}

func looseInt(raw json.RawMessage) (int, bool) {
	f, ok := looseFloat(raw)
	if !ok {
		return 0, false
	}
	return int(f), true
}

func looseBool(raw json.RawMessage) *bool {
	if isNull(raw) {
		return nil
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return &b
	}
	if s, ok := looseString(raw); ok {
		if parsed, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return &parsed
		}
	}
	return nil
}

func looseFloats(raw json.RawMessage) ([]float64, bool) {
	if isNull(raw) {
		return nil, false
	}
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, false
	}
	values := make([]float64, 0, len(elements))
	for _, e := range elements {
		f, ok := looseFloat(e)
		if !ok {
			return nil, false
		}
		values = append(values, f)
	}
	return values, true
}

// looseLine decodes an array of coordinate pairs. Malformed pairs become nil
// entries so that the remaining points keep their order.
func looseLine(raw json.RawMessage) [][]float64 {
	if isNull(raw) {
		return nil
	}
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil
	}
	line := make([][]float64, 0, len(elements))
	for _, e := range elements {
		pair, ok := looseFloats(e)
		if !ok {
			pair = nil
		}
		line = append(line, pair)
	}
	return line
}

func looseGeometry(raw json.RawMessage) orb.Geometry {
	if isNull(raw) {
		return nil
	}
	g, err := geojson.UnmarshalGeometry(raw)
	if err != nil || g == nil {
		return nil
	}
	return g.Geometry()
}
