// Package dimension builds and recalculates measurement annotation geometry:
// dimension lines, extension lines, arc sweeps, and text anchors for the six
// dimension kinds used on a drawing sheet.
//
// All geometry is in view-local coordinates. Values are stored in the input
// coordinate scale; conversion to display units happens only at readback.
package dimension

import (
	"fmt"
	"math"

	"draft-engine/pkg/geometry"
)

// Kind identifies the dimension variant.
type Kind string

const (
	KindHorizontal Kind = "horizontal"
	KindVertical   Kind = "vertical"
	KindAligned    Kind = "aligned"
	KindAngular    Kind = "angular"
	KindRadial     Kind = "radial"
	KindDiameter   Kind = "diameter"
)

// IsLinear reports whether the kind measures a straight span with a
// perpendicular offset (horizontal, vertical, or aligned).
func (k Kind) IsLinear() bool {
	return k == KindHorizontal || k == KindVertical || k == KindAligned
}

// PointsNeeded returns how many picked points the kind requires: three for
// angular (leg, vertex, leg), two for everything else. ok is false for an
// unknown kind.
func (k Kind) PointsNeeded() (n int, ok bool) {
	switch k {
	case KindAngular:
		return 3, true
	case KindHorizontal, KindVertical, KindAligned, KindRadial, KindDiameter:
		return 2, true
	}
	return 0, false
}

// Arrow is the terminator style at a dimension line end.
type Arrow string

const (
	ArrowFilled Arrow = "filled"
	ArrowOpen   Arrow = "open"
	ArrowTick   Arrow = "tick"
	ArrowDot    Arrow = "dot"
	ArrowNone   Arrow = "none"
)

// Line is the dimension line (or arc chord endpoints, for angular) with its
// arrow terminators.
type Line struct {
	Start      geometry.Point2D `json:"start"`
	End        geometry.Point2D `json:"end"`
	StartArrow Arrow            `json:"start_arrow"`
	EndArrow   Arrow            `json:"end_arrow"`
}

// ExtensionLine runs from near a reference point out past the dimension line.
type ExtensionLine struct {
	Start geometry.Point2D `json:"start"`
	End   geometry.Point2D `json:"end"`
}

// Dimension is one measurement annotation on a drawing.
//
// Value is always expressed in the same coordinate scale as Point1/Point2
// (paper units for sheet dimensions, degrees for angular). The builder
// creates it, the recalculator mutates only its drawn geometry, and the
// document store owns its lifecycle.
type Dimension struct {
	Kind   Kind              `json:"kind"`
	Value  float64           `json:"value"`
	Point1 geometry.Point2D  `json:"point1"`
	Point2 geometry.Point2D  `json:"point2"`
	Point3 *geometry.Point2D `json:"point3,omitempty"` // angular: point on leg B

	// Offset is the signed perpendicular distance of the dimension line
	// from the measured span (linear kinds only).
	Offset float64 `json:"offset,omitempty"`
	// ArcRadius is the arc radius in paper units (angular only).
	ArcRadius float64 `json:"arc_radius,omitempty"`
	// Reflex selects the exterior (360 minus interior) angle (angular only).
	Reflex bool `json:"reflex,omitempty"`

	Line         Line             `json:"dimension_line"`
	Extensions   []ExtensionLine  `json:"extension_lines,omitempty"`
	TextPosition geometry.Point2D `json:"text_position"`

	// TextRotation is the label rotation in radians, counter-clockwise.
	TextRotation float64 `json:"text_rotation,omitempty"`

	// ViewID attaches the dimension to a view; its geometry is then
	// relative to that view's position on the sheet.
	ViewID string `json:"view_id,omitempty"`

	Prefix        string `json:"prefix,omitempty"`
	Suffix        string `json:"suffix,omitempty"`
	LabelOverride string `json:"label_override,omitempty"`
}

// Config is the dimension style: distances in paper millimeters.
type Config struct {
	// Offset is the default distance from geometry to the dimension line.
	Offset float64 `json:"offset"`
	// ExtensionGap is the gap between a reference point and its extension line.
	ExtensionGap float64 `json:"extension_gap"`
	// ExtensionOvershoot extends extension lines past the dimension line.
	ExtensionOvershoot float64 `json:"extension_overshoot"`
	ArrowSize          float64 `json:"arrow_size"`
	TextHeight         float64 `json:"text_height"`
	Precision          int     `json:"precision"`
	Unit               string  `json:"unit"`
	ShowUnit           bool    `json:"show_unit"`
	ArrowStyle         Arrow   `json:"arrow_style"`
	// MinArcRadius and MaxArcRadius bound angular arc radii.
	MinArcRadius float64 `json:"min_arc_radius"`
	MaxArcRadius float64 `json:"max_arc_radius"`
}

// DefaultConfig returns the standard drafting style.
func DefaultConfig() Config {
	return Config{
		Offset:             10,
		ExtensionGap:       2,
		ExtensionOvershoot: 2,
		ArrowSize:          3,
		TextHeight:         3.5,
		Precision:          2,
		Unit:               "mm",
		ShowUnit:           false,
		ArrowStyle:         ArrowFilled,
		MinArcRadius:       5,
		MaxArcRadius:       100,
	}
}

// textOffsetFactor scales TextHeight into the perpendicular text clearance.
const textOffsetFactor = 1.2

// minSpan is the smallest point separation accepted as non-coincident.
const minSpan = 1e-9

// DegenerateInputError reports picked points that cannot span a dimension:
// coincident points for linear and radial kinds, or a zero-length leg for
// angular.
type DegenerateInputError struct {
	Kind Kind
}

func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("degenerate input for %s dimension: coincident points", e.Kind)
}

// ArcAngles derives the arc start angle and counter-clockwise sweep from the
// stored leg points. Returns false for non-angular dimensions or degenerate
// legs.
func (d Dimension) ArcAngles() (start, sweep float64, ok bool) {
	if d.Kind != KindAngular || d.Point3 == nil {
		return 0, 0, false
	}
	legA := d.Point1.Sub(d.Point2)
	legB := d.Point3.Sub(d.Point2)
	if legA.Length() < minSpan || legB.Length() < minSpan {
		return 0, 0, false
	}

	a1 := legA.Angle()
	a2 := legB.Angle()
	sweep = geometry.SweepCCW(a1, a2)
	start = a1
	if sweep > math.Pi {
		// Swap legs so the drawn arc stays at or below 180 degrees.
		sweep = 2*math.Pi - sweep
		start = a2
	}
	if d.Reflex {
		start = geometry.NormalizeAngle(start + sweep)
		sweep = 2*math.Pi - sweep
	}
	return start, sweep, true
}
