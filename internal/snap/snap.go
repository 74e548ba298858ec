// Package snap finds precise cursor targets among a view's projected line
// segments: endpoints, midpoints, pairwise intersections, circle centers,
// and grid crossings. Candidates are recomputed from the current segment set
// and never persisted.
package snap

import (
	"math"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"

	"draft-engine/pkg/geometry"
)

// Category identifies what a snap point locks onto.
type Category string

const (
	CategoryEndpoint     Category = "endpoint"
	CategoryMidpoint     Category = "midpoint"
	CategoryIntersection Category = "intersection"
	CategoryCenter       Category = "center"
	CategoryGrid         Category = "grid"
)

// priority orders categories for equidistant candidates; lower wins.
func (c Category) priority() int {
	switch c {
	case CategoryEndpoint:
		return 0
	case CategoryIntersection:
		return 1
	case CategoryMidpoint:
		return 2
	case CategoryCenter:
		return 3
	case CategoryGrid:
		return 4
	}
	return 5
}

// Point is a candidate snap target. SourceLines holds the indices of the
// segments that produced it: one for endpoints and midpoints, two for
// intersections, none for centers and grid crossings.
type Point struct {
	Position    geometry.Point2D `json:"position"`
	Category    Category         `json:"type"`
	SourceLines []int            `json:"source_lines,omitempty"`
}

// Config selects which snap categories are active. The set is tool
// dependent: the angle tool, for example, suppresses midpoints.
type Config struct {
	Vertices      bool    `json:"vertices"`
	Midpoints     bool    `json:"midpoints"`
	Intersections bool    `json:"intersections"`
	Centers       bool    `json:"centers"`
	Grid          bool    `json:"grid"`
	GridSpacing   float64 `json:"grid_spacing"`
}

// DefaultConfig enables every geometric category and leaves grid snapping
// off.
func DefaultConfig() Config {
	return Config{
		Vertices:      true,
		Midpoints:     true,
		Intersections: true,
		Centers:       true,
		GridSpacing:   10,
	}
}

func (c Config) enabled(cat Category) bool {
	switch cat {
	case CategoryEndpoint:
		return c.Vertices
	case CategoryMidpoint:
		return c.Midpoints
	case CategoryIntersection:
		return c.Intersections
	case CategoryCenter:
		return c.Centers
	case CategoryGrid:
		return c.Grid
	}
	return false
}

// equidistantTol treats candidates this close in distance as tied.
const equidistantTol = 1e-9

// Engine extracts snap candidates from one view's segments. Segment-derived
// candidates are precomputed on SetSegments; grid crossings depend on the
// query point and are computed per query.
type Engine struct {
	static  []Point
	centers []geometry.Point2D
}

// NewEngine returns an empty engine.
func NewEngine() *Engine {
	return &Engine{}
}

// indexedSegment adapts a segment for the spatial index.
type indexedSegment struct {
	seg   geometry.Segment
	index int
}

func (s *indexedSegment) Bounds() *geom.Bounds {
	return &geom.Bounds{
		Min: geom.Point{X: math.Min(s.seg.Start.X, s.seg.End.X), Y: math.Min(s.seg.Start.Y, s.seg.End.Y)},
		Max: geom.Point{X: math.Max(s.seg.Start.X, s.seg.End.X), Y: math.Max(s.seg.Start.Y, s.seg.End.Y)},
	}
}

// SetSegments replaces the segment set and recomputes endpoint, midpoint,
// and intersection candidates. Intersections are bounded-segment tests over
// pairs whose bounding boxes overlap, found through an R-tree rather than by
// testing all pairs.
func (e *Engine) SetSegments(segments []geometry.Segment) {
	e.static = e.static[:0]
	for i, s := range segments {
		e.static = append(e.static,
			Point{Position: s.Start, Category: CategoryEndpoint, SourceLines: []int{i}},
			Point{Position: s.End, Category: CategoryEndpoint, SourceLines: []int{i}},
			Point{Position: s.Midpoint(), Category: CategoryMidpoint, SourceLines: []int{i}},
		)
	}

	tree := rtree.NewTree(25, 50)
	indexed := make([]*indexedSegment, len(segments))
	for i, s := range segments {
		indexed[i] = &indexedSegment{seg: s, index: i}
		tree.Insert(indexed[i])
	}
	for i, is := range indexed {
		for _, hit := range tree.SearchIntersect(is.Bounds()) {
			other := hit.(*indexedSegment)
			if other.index <= i {
				continue
			}
			if p, ok := is.seg.Intersection(other.seg); ok {
				e.static = append(e.static, Point{
					Position:    p,
					Category:    CategoryIntersection,
					SourceLines: []int{i, other.index},
				})
			}
		}
	}
}

// SetCenters replaces the center candidates (circle centers or view
// bounding-box centers, as the caller chooses).
func (e *Engine) SetCenters(centers []geometry.Point2D) {
	e.centers = append(e.centers[:0], centers...)
}

// Candidates lists every active candidate for a query point. The query
// matters only for the grid category, whose candidate is the grid crossing
// nearest the query.
func (e *Engine) Candidates(query geometry.Point2D, cfg Config) []Point {
	out := make([]Point, 0, len(e.static)+len(e.centers)+1)
	for _, c := range e.static {
		if cfg.enabled(c.Category) {
			out = append(out, c)
		}
	}
	if cfg.Centers {
		for _, c := range e.centers {
			out = append(out, Point{Position: c, Category: CategoryCenter})
		}
	}
	if cfg.Grid && cfg.GridSpacing > 0 {
		out = append(out, Point{Position: gridCrossing(query, cfg.GridSpacing), Category: CategoryGrid})
	}
	return out
}

// Nearest returns the closest active candidate within tol of the query.
// Equidistant candidates resolve by category: endpoint beats intersection
// beats midpoint beats center beats grid, so a cursor over coincident
// candidates does not flicker between them.
func (e *Engine) Nearest(query geometry.Point2D, tol float64, cfg Config) (Point, bool) {
	if tol <= 0 {
		return Point{}, false
	}

	var best Point
	bestDist := math.Inf(1)
	found := false
	for _, c := range e.Candidates(query, cfg) {
		d := c.Position.Distance(query)
		switch {
		case d > tol:
		case !found || d < bestDist-equidistantTol:
			best, bestDist, found = c, d, true
		case d <= bestDist+equidistantTol && c.Category.priority() < best.Category.priority():
			best, bestDist, found = c, d, true
		}
	}
	return best, found
}

// gridCrossing is the grid-line crossing nearest to q.
func gridCrossing(q geometry.Point2D, spacing float64) geometry.Point2D {
	return geometry.Point2D{
		X: math.Round(q.X/spacing) * spacing,
		Y: math.Round(q.Y/spacing) * spacing,
	}
}
