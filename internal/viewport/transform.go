// Package viewport implements the screen-to-paper coordinate pipeline and
// the per-drawing viewport session state.
//
// Four spaces, outer to inner: screen (raw pointer coordinates, device
// pixels) -> canvas-logical (device pixel ratio divided out) -> viewport
// (pan and zoom undone around the canvas midpoint) -> paper (millimeters,
// origin at the sheet center, Y up).
package viewport

import (
	"fmt"
	"math"

	"draft-engine/pkg/geometry"
)

// ScreenPoint is a raw pointer position in device pixels.
type ScreenPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CanvasPoint is a position in canvas-logical pixels.
type CanvasPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PaperPoint is a position on the sheet in millimeters, origin at the sheet
// center, Y up.
type PaperPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// XY returns the paper point as a bare geometry point for downstream math.
func (p PaperPoint) XY() geometry.Point2D {
	return geometry.Point2D{X: p.X, Y: p.Y}
}

// PaperAt wraps a bare geometry point known to be in paper space.
func PaperAt(p geometry.Point2D) PaperPoint {
	return PaperPoint{X: p.X, Y: p.Y}
}

// Sheet fitting constants. The sheet is fit into the canvas with a small
// margin, and the usable drawing area excludes the grid-reference border.
const (
	fitFactor          = 0.95
	innerAreaFraction  = 0.92
	gridMarginFraction = 0.04
)

// DegenerateTransformError reports canvas or paper dimensions that make the
// paper-to-screen scale undefined.
type DegenerateTransformError struct {
	PaperWidth, PaperHeight   float64
	CanvasWidth, CanvasHeight float64
}

func (e *DegenerateTransformError) Error() string {
	return fmt.Sprintf("degenerate transform: paper %gx%g mm on canvas %gx%g px",
		e.PaperWidth, e.PaperHeight, e.CanvasWidth, e.CanvasHeight)
}

// DrawingArea describes where the sheet lands on the canvas for one layout
// pass. It is the single source of the paper-to-screen scale shared by the
// renderer and every hit test.
type DrawingArea struct {
	// Scale is the paper-to-screen scale in logical pixels per millimeter.
	Scale float64
	// Center is the canvas midpoint the sheet is centered on.
	Center CanvasPoint
	// Paper dimensions in millimeters.
	PaperWidth, PaperHeight float64
	// Inner drawing area in millimeters, inside the grid-reference margin.
	InnerWidth, InnerHeight float64
}

// ComputeDrawingArea derives the drawing area from the paper and canvas
// dimensions (logical pixels) and an outer margin. It is a pure function;
// calling it with the same inputs always yields the same scale.
func ComputeDrawingArea(paperWidth, paperHeight, canvasWidth, canvasHeight, outerMargin float64) (DrawingArea, error) {
	if paperWidth <= 0 || paperHeight <= 0 || canvasWidth <= 0 || canvasHeight <= 0 {
		return DrawingArea{}, &DegenerateTransformError{
			PaperWidth: paperWidth, PaperHeight: paperHeight,
			CanvasWidth: canvasWidth, CanvasHeight: canvasHeight,
		}
	}

	availW := canvasWidth - 2*outerMargin
	availH := canvasHeight - 2*outerMargin
	if availW <= 0 || availH <= 0 {
		return DrawingArea{}, &DegenerateTransformError{
			PaperWidth: paperWidth, PaperHeight: paperHeight,
			CanvasWidth: canvasWidth, CanvasHeight: canvasHeight,
		}
	}

	scale := math.Min(availW/paperWidth, availH/paperHeight) * fitFactor
	return DrawingArea{
		Scale:       scale,
		Center:      CanvasPoint{X: canvasWidth / 2, Y: canvasHeight / 2},
		PaperWidth:  paperWidth,
		PaperHeight: paperHeight,
		InnerWidth:  paperWidth * innerAreaFraction,
		InnerHeight: paperHeight * innerAreaFraction,
	}, nil
}

// GridMargin returns the width of the grid-reference border in millimeters
// for one side.
func (a DrawingArea) GridMargin() float64 {
	return a.PaperWidth * gridMarginFraction
}

// Transform maps paper millimeters to screen device pixels and back.
// The inverse is derived algebraically from the forward matrix, so the
// round trip is exact to floating-point precision.
type Transform struct {
	forward geometry.AffineTransform
	inverse geometry.AffineTransform
	scale   float64
	dpr     float64
}

// NewTransform composes the forward paper-to-screen mapping for one drawing
// area and session, and inverts it. A degenerate area or session yields the
// identity transform so downstream geometry never sees NaN or infinity.
func NewTransform(area DrawingArea, s Session) Transform {
	zoom := clampZoom(s.Zoom)
	dpr := s.DPR
	if dpr <= 0 {
		dpr = 1
	}

	// Paper stage: canvas = areaCenter + (paperX*scale, -paperY*scale).
	paper := geometry.Translation(area.Center.X, area.Center.Y).
		Compose(geometry.Scale(area.Scale, -area.Scale))

	// Viewport stage: out = (canvas - mid)*zoom + mid + pan + origin.
	midX := s.CanvasWidth / 2
	midY := s.CanvasHeight / 2
	view := geometry.Translation(s.CanvasOrigin.X+s.Pan.X+midX, s.CanvasOrigin.Y+s.Pan.Y+midY).
		Compose(geometry.Scale(zoom, zoom)).
		Compose(geometry.Translation(-midX, -midY))

	forward := view.Compose(paper)
	inverse, ok := forward.Inverse()
	if !ok {
		return Transform{forward: geometry.Identity(), inverse: geometry.Identity(), scale: 1, dpr: 1}
	}
	return Transform{forward: forward, inverse: inverse, scale: area.Scale, dpr: dpr}
}

// PaperToScreen maps a paper point to device pixels.
func (t Transform) PaperToScreen(p PaperPoint) ScreenPoint {
	lp := t.forward.Apply(p.XY())
	return ScreenPoint{X: lp.X * t.dpr, Y: lp.Y * t.dpr}
}

// ScreenToPaper maps a raw pointer position to paper millimeters.
func (t Transform) ScreenToPaper(p ScreenPoint) PaperPoint {
	lp := t.inverse.Apply(geometry.Point2D{X: p.X / t.dpr, Y: p.Y / t.dpr})
	return PaperPoint{X: lp.X, Y: lp.Y}
}

// Scale returns the paper-to-screen scale the transform was built with.
func (t Transform) Scale() float64 {
	return t.scale
}

// PaperTolerance converts a screen-pixel catch radius into paper millimeters
// so the visual radius stays constant under zoom. Every snap query and picker
// derives its tolerance through this one function.
func PaperTolerance(screenPixels, paperToScreenScale, zoom float64) float64 {
	if paperToScreenScale <= 0 || zoom <= 0 {
		return 0
	}
	return screenPixels / (paperToScreenScale * zoom)
}
