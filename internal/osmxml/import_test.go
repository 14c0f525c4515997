package osmxml

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/natevvv/campus-routing/internal/walkways"
	"github.com/natevvv/campus-routing/pkg/campus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const campusXML = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="test">
  <node id="1" lat="32.2190" lon="-7.9370"/>
  <node id="2" lat="32.2190" lon="-7.9360">
    <tag k="entrance" v="main"/>
  </node>
  <node id="3" lat="32.2200" lon="-7.9360"/>
  <node id="4" lat="32.2185" lon="-7.9360"/>
  <node id="5" lat="32.2185" lon="-7.9340"/>
  <way id="100">
    <nd ref="1"/>
    <nd ref="2"/>
    <nd ref="3"/>
    <nd ref="1"/>
    <tag k="building" v="yes"/>
  </way>
  <way id="300">
    <nd ref="2"/>
    <nd ref="4"/>
    <tag k="highway" v="footway"/>
    <tag k="level" v="1"/>
  </way>
  <way id="301">
    <nd ref="4"/>
    <nd ref="5"/>
    <tag k="highway" v="steps"/>
  </way>
</osm>`

func TestDecode(t *testing.T) {
	c := walkways.NewCollector()
	xi := NewImporter("campus.osm")
	require.NoError(t, xi.decode(context.Background(), strings.NewReader(campusXML), c))

	nodes, ways := xi.Counts()
	assert.Equal(t, 5, nodes)
	assert.Equal(t, 3, ways)

	d, stats := c.Dataset()
	assert.Equal(t, 1, stats.Buildings)
	require.Len(t, d.Paths, 2)
	assert.Equal(t, 1, d.Paths[0].Floor)
	assert.Equal(t, campus.TypeStairs, d.Paths[1].EdgeType())

	require.Len(t, d.POIs, 1)
	assert.Equal(t, "node/2", d.POIs[0].ID)
	assert.Equal(t, "way/100", d.POIs[0].BuildingID)
}

func TestCollectFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "campus.osm")
	require.NoError(t, os.WriteFile(filename, []byte(campusXML), 0o644))

	c := walkways.NewCollector()
	require.NoError(t, NewImporter(filename).Collect(context.Background(), c))
	d, _ := c.Dataset()
	assert.Len(t, d.Paths, 2)

	err := NewImporter(filepath.Join(t.TempDir(), "missing.osm")).Collect(context.Background(), c)
	assert.Error(t, err)
}

func TestDecodeMalformed(t *testing.T) {
	c := walkways.NewCollector()
	err := NewImporter("broken.osm").decode(context.Background(), strings.NewReader(`<osm><node id="1" lat=`), c)
	assert.Error(t, err)
}
