package campus

import (
	"github.com/natevvv/campus-routing/pkg/geometry"
	"github.com/paulmach/orb"
)

// Merger joins consecutive paths with identical attributes, so imported
// OSM ways don't end up as one record per way fragment.
// Every coordinate is kept, which leaves the resulting graph unchanged.
type Merger struct {
	paths           []Path
	mergeCount      int
	unmergableCount int
}

func NewMerger(paths []Path) *Merger {
	return &Merger{
		paths: paths,
	}
}

func (m *Merger) Merge() {
	points := make([][]orb.Point, len(m.paths))
	// index the paths by the key of their first point
	startToPaths := make(map[string][]int)

	for i, p := range m.paths {
		points[i] = p.Points()
		if len(points[i]) < 2 {
			m.unmergableCount++
			continue
		}
		start := geometry.Key(points[i][0])
		startToPaths[start] = append(startToPaths[start], i)
	}

	used := make([]bool, len(m.paths))
	var newPaths []Path

	for i, p := range m.paths {
		if used[i] {
			continue
		}
		used[i] = true
		if len(points[i]) < 2 {
			newPaths = append(newPaths, p)
			continue
		}

		current := p
		currentPoints := points[i]
		mergedAny := false
		for {
			end := geometry.Key(currentPoints[len(currentPoints)-1])

			foundNext := false
			for _, next := range startToPaths[end] {
				if used[next] {
					continue
				}
				if canMerge(current, m.paths[next]) {
					currentPoints = append(currentPoints, points[next][1:]...) // skip the first point, it equals the current end
					used[next] = true
					m.mergeCount++
					foundNext = true
					mergedAny = true
					break
				}
			}

			if !foundNext {
				break
			}
		}

		if mergedAny {
			current = mergeInto(current, currentPoints)
		}
		newPaths = append(newPaths, current)
	}

	m.paths = newPaths
}

func canMerge(p1, p2 Path) bool {
	return p1.EdgeType() == p2.EdgeType() &&
		p1.Accessible() == p2.Accessible() &&
		p1.Floor == p2.Floor &&
		p1.Name == p2.Name
}

func mergeInto(p Path, points []orb.Point) Path {
	merged := NewPath(p.ID, points...)
	merged.Name = p.Name
	merged.Type = p.Type
	merged.Floor = p.Floor
	merged.IsAccessible = p.IsAccessible
	return merged
}

func (m *Merger) Paths() []Path {
	return m.paths
}

func (m *Merger) MergeCount() int {
	return m.mergeCount
}

func (m *Merger) UnmergablePathCount() int {
	return m.unmergableCount
}
