// Package picking resolves what a paper-space query point lands on: a view,
// a dimension, or an annotation. Every picker takes a paper-space tolerance;
// callers derive it from a fixed screen-pixel radius through
// viewport.PaperTolerance so the catch radius is stable under zoom.
package picking

import (
	"math"

	"draft-engine/internal/dimension"
	"draft-engine/internal/document"
	"draft-engine/pkg/geometry"
)

// anchorCatchFactor widens the catch radius for dimension text and
// annotation anchors, the smaller and more common drag targets.
const anchorCatchFactor = 1.5

// PickView returns the ID of the first visible view whose tolerance-expanded
// bounding box contains the query point. Iteration order is list order, so
// with overlapping views the earliest wins; callers that need topmost-wins
// must order the list accordingly.
func PickView(views []document.View, query geometry.Point2D, tol float64) (string, bool) {
	for _, v := range views {
		if !v.Visible {
			continue
		}
		box := v.Bounds.Translate(v.Position).Expand(tol)
		if box.Contains(query) {
			return v.ID, true
		}
	}
	return "", false
}

// PickDimension returns the index of the picked dimension. Text anchors are
// tested across all dimensions first, at a widened radius, so grabbing a
// label never selects another dimension's line passing under it; dimension
// and extension lines are tested in a second pass. Both passes run in
// document order.
func PickDimension(dimensions []dimension.Dimension, views []document.View, query geometry.Point2D, tol float64) (int, bool) {
	for i, d := range dimensions {
		local := query.Sub(viewPosition(views, d.ViewID))
		if local.Distance(d.TextPosition) <= tol*anchorCatchFactor {
			return i, true
		}
	}
	for i, d := range dimensions {
		local := query.Sub(viewPosition(views, d.ViewID))
		if dimensionLineHit(d, local, tol) {
			return i, true
		}
	}
	return 0, false
}

// PickAnnotation returns the ID of the picked annotation. Leader anchors are
// tested across all annotations first, at a widened radius, before the
// tolerance-expanded text boxes.
func PickAnnotation(annotations []document.Annotation, views []document.View, query geometry.Point2D, tol float64) (string, bool) {
	for _, a := range annotations {
		local := query.Sub(viewPosition(views, a.ViewID))
		if local.Distance(a.AnchorPoint) <= tol*anchorCatchFactor {
			return a.ID, true
		}
	}
	for _, a := range annotations {
		local := query.Sub(viewPosition(views, a.ViewID))
		if a.Box().Expand(tol).Contains(local) {
			return a.ID, true
		}
	}
	return "", false
}

// dimensionLineHit tests the dimension line (the arc, for angular) and the
// extension lines against a view-local query point.
func dimensionLineHit(d dimension.Dimension, query geometry.Point2D, tol float64) bool {
	if d.Kind == dimension.KindAngular {
		if arcHit(d, query, tol) {
			return true
		}
	} else {
		line := geometry.NewSegment(d.Line.Start, d.Line.End)
		if line.DistanceToPoint(query) <= tol {
			return true
		}
	}
	for _, e := range d.Extensions {
		ext := geometry.NewSegment(e.Start, e.End)
		if ext.DistanceToPoint(query) <= tol {
			return true
		}
	}
	return false
}

// arcHit tests proximity to an angular dimension's arc, within its swept
// span only.
func arcHit(d dimension.Dimension, query geometry.Point2D, tol float64) bool {
	start, sweep, ok := d.ArcAngles()
	if !ok {
		return false
	}
	radial := query.Sub(d.Point2)
	if math.Abs(radial.Length()-d.ArcRadius) > tol {
		return false
	}
	return geometry.SweepCCW(start, radial.Angle()) <= sweep
}

// viewPosition resolves the sheet offset a view-attached item's geometry is
// stored relative to. Items with no view, or a stale view ID, stay in sheet
// coordinates.
func viewPosition(views []document.View, viewID string) geometry.Point2D {
	if viewID == "" {
		return geometry.Point2D{}
	}
	for _, v := range views {
		if v.ID == viewID {
			return v.Position
		}
	}
	return geometry.Point2D{}
}
