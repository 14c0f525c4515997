package graph

import (
	"bytes"
	"strings"
	"testing"

	"github.com/natevvv/campus-routing/pkg/campus"
	"github.com/natevvv/campus-routing/pkg/geometry"
)

func TestGraphAsString(t *testing.T) {
	pois := []campus.POI{campus.NewPOI("gate", "North Gate", pA.Lon(), pA.Lat())}
	// the gate lies on top of the first path node, the connector goes to the next one
	g := BuildGraph(pois, []campus.Path{campus.NewPath("p", pA, pB, pC)})
	if g.NodeCount() != 3 {
		t.Fatalf("node count is %v, should be 3", g.NodeCount())
	}
	if g.ArcCount() != 6 {
		t.Errorf("arc count is %v, should be 6", g.ArcCount())
	}
	lines := strings.Split(g.AsString(), "\n")
	expectedHead := []string{
		"3",
		"6",
		"#Nodes",
		`0 32.2185 -7.9365 -7.936500,32.218500 poi="gate"`,
		"1 32.2185 -7.936 -7.936000,32.218500",
		"2 32.2185 -7.9355 -7.935500,32.218500",
		"#Edges",
	}
	for i, expected := range expectedHead {
		if lines[i] != expected {
			t.Errorf("line %v is %q, should be %q", i, lines[i], expected)
		}
	}
	// six edge lines and the trailing newline
	if len(lines) != len(expectedHead)+6+1 {
		t.Errorf("unexpected number of lines: %v", len(lines))
	}

	var buf bytes.Buffer
	if err := WriteFmi(g, &buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != g.AsString() {
		t.Errorf("fmi output differs from AsString")
	}
}

func TestFormatOfEmptyGraph(t *testing.T) {
	g := BuildGraph(nil, nil)
	if g.AsString() != "0\n0\n#Nodes\n#Edges\n" {
		t.Errorf("unexpected output %q", g.AsString())
	}
	if ids := g.Within(pA, 1000, nil); len(ids) != 0 {
		t.Errorf("empty graph returned nodes %v", ids)
	}
	if _, _, ok := g.Nearest(pA, nil); ok {
		t.Errorf("empty graph returned a nearest node")
	}
}

func TestWithinAndNearest(t *testing.T) {
	g := BuildGraph(nil, []campus.Path{campus.NewPath("p", pA, pB, pC, pD)})

	// pA -> pB is about 47 m
	ids := g.Within(pA, 50, nil)
	if len(ids) != 2 {
		t.Fatalf("expected 2 nodes within 50 m, got %v", ids)
	}
	ids = g.Within(pA, 10, nil)
	if len(ids) != 1 || g.GetNode(ids[0]).Coordinates != pA {
		t.Errorf("expected only pA within 10 m, got %v", ids)
	}
	ids = g.Within(pA, 1000, func(n *PathNode) bool { return n.Coordinates != pA })
	if len(ids) != 3 {
		t.Errorf("filter not applied, got %v", ids)
	}

	id, d, ok := g.Nearest(geometry.MakePoint(-7.93551, 32.21801), nil)
	if !ok || g.GetNode(id).Coordinates != pD {
		t.Errorf("nearest node should be pD, got %v", id)
	}
	if d <= 0 || d > 2 {
		t.Errorf("unexpected distance %v", d)
	}
}

func TestGetNodePanicsOutOfRange(t *testing.T) {
	g := BuildGraph(nil, []campus.Path{campus.NewPath("p", pA, pB)})
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic")
		}
	}()
	g.GetNode(2)
}
