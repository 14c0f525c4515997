package pbf

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/natevvv/campus-routing/internal/walkways"
	"github.com/stretchr/testify/assert"
)

func TestCollectMissingFile(t *testing.T) {
	err := NewImporter(filepath.Join(t.TempDir(), "missing.osm.pbf")).Collect(context.Background(), walkways.NewCollector())
	assert.Error(t, err)
}

func TestDecodeGarbage(t *testing.T) {
	pi := NewImporter("garbage.osm.pbf")
	err := pi.decode(context.Background(), strings.NewReader("this is not a protobuf file"), walkways.NewCollector())
	assert.Error(t, err)

	nodes, ways := pi.Counts()
	assert.Zero(t, nodes)
	assert.Zero(t, ways)
}
