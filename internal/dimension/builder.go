package dimension

import (
	"fmt"
	"math"

	"draft-engine/pkg/geometry"
)

// Builder constructs dimension geometry from picked points and a style
// config. Input points are view-local; positive linear offsets place the
// dimension line on the negative side of the measured axis (below for
// horizontal, left for vertical), matching drag behavior where the line
// follows the cursor.
type Builder struct {
	cfg Config
}

// NewBuilder creates a Builder with the given style.
func NewBuilder(cfg Config) *Builder {
	return &Builder{cfg: cfg}
}

// Config returns the style the builder was created with.
func (b *Builder) Config() Config {
	return b.cfg
}

// Build constructs a dimension of the given kind from picked points, using
// the configured default offset and arc radius. Point order follows the pick
// flow: the two measured points for linear kinds, leg-vertex-leg for angular,
// center then rim for radial and diameter.
func (b *Builder) Build(kind Kind, points []geometry.Point2D) (Dimension, error) {
	need, ok := kind.PointsNeeded()
	if !ok {
		return Dimension{}, fmt.Errorf("build: unknown dimension kind %q", kind)
	}
	if len(points) != need {
		return Dimension{}, fmt.Errorf("build %s: got %d points, need %d", kind, len(points), need)
	}

	switch kind {
	case KindHorizontal:
		return b.BuildHorizontal(points[0], points[1], b.cfg.Offset)
	case KindVertical:
		return b.BuildVertical(points[0], points[1], b.cfg.Offset)
	case KindAligned:
		return b.BuildAligned(points[0], points[1], b.cfg.Offset)
	case KindAngular:
		return b.BuildAngular(points[0], points[1], points[2], 0, false)
	case KindRadial:
		return b.BuildRadial(points[0], points[1])
	default:
		return b.BuildDiameter(points[0], points[1])
	}
}

// sign returns +1 for non-negative values and -1 otherwise.
func sign(v float64) float64 {
	return math.Copysign(1, v)
}

// BuildHorizontal measures the horizontal span |p2.x - p1.x|. The dimension
// line sits at the points' vertical midpoint shifted down by offset.
func (b *Builder) BuildHorizontal(p1, p2 geometry.Point2D, offset float64) (Dimension, error) {
	if p1.Distance(p2) < minSpan {
		return Dimension{}, &DegenerateInputError{Kind: KindHorizontal}
	}

	dimY := (p1.Y+p2.Y)/2 - offset
	line := Line{
		Start:      geometry.Point2D{X: p1.X, Y: dimY},
		End:        geometry.Point2D{X: p2.X, Y: dimY},
		StartArrow: b.cfg.ArrowStyle,
		EndArrow:   b.cfg.ArrowStyle,
	}

	exts := []ExtensionLine{
		b.verticalExtension(p1, dimY),
		b.verticalExtension(p2, dimY),
	}

	textDir := -sign(offset)
	text := geometry.Point2D{
		X: (p1.X + p2.X) / 2,
		Y: dimY + textDir*textOffsetFactor*b.cfg.TextHeight,
	}

	return Dimension{
		Kind:         KindHorizontal,
		Value:        math.Abs(p2.X - p1.X),
		Point1:       p1,
		Point2:       p2,
		Offset:       offset,
		Line:         line,
		Extensions:   exts,
		TextPosition: text,
		TextRotation: 0,
	}, nil
}

// BuildVertical measures the vertical span |p2.y - p1.y|. The dimension line
// sits at the points' horizontal midpoint shifted left by offset.
func (b *Builder) BuildVertical(p1, p2 geometry.Point2D, offset float64) (Dimension, error) {
	if p1.Distance(p2) < minSpan {
		return Dimension{}, &DegenerateInputError{Kind: KindVertical}
	}

	dimX := (p1.X+p2.X)/2 - offset
	line := Line{
		Start:      geometry.Point2D{X: dimX, Y: p1.Y},
		End:        geometry.Point2D{X: dimX, Y: p2.Y},
		StartArrow: b.cfg.ArrowStyle,
		EndArrow:   b.cfg.ArrowStyle,
	}

	exts := []ExtensionLine{
		b.horizontalExtension(p1, dimX),
		b.horizontalExtension(p2, dimX),
	}

	textDir := -sign(offset)
	text := geometry.Point2D{
		X: dimX + textDir*textOffsetFactor*b.cfg.TextHeight,
		Y: (p1.Y + p2.Y) / 2,
	}

	return Dimension{
		Kind:         KindVertical,
		Value:        math.Abs(p2.Y - p1.Y),
		Point1:       p1,
		Point2:       p2,
		Offset:       offset,
		Line:         line,
		Extensions:   exts,
		TextPosition: text,
		TextRotation: math.Pi / 2,
	}, nil
}

// BuildAligned measures the Euclidean distance |p2 - p1|. The dimension line
// is parallel to p1->p2 at perpendicular distance offset; the offset sign
// selects the side.
func (b *Builder) BuildAligned(p1, p2 geometry.Point2D, offset float64) (Dimension, error) {
	span := p2.Sub(p1)
	length := span.Length()
	if length < minSpan {
		return Dimension{}, &DegenerateInputError{Kind: KindAligned}
	}

	u := span.Scale(1 / length)
	perp := u.Perp()
	// Shift by -offset along the perpendicular so that an aligned dimension
	// over a horizontal segment matches BuildHorizontal's placement.
	shift := perp.Scale(-offset)

	start := p1.Add(shift)
	end := p2.Add(shift)
	line := Line{Start: start, End: end, StartArrow: b.cfg.ArrowStyle, EndArrow: b.cfg.ArrowStyle}

	// Extension lines run from each point toward the dimension line.
	extDir := perp.Scale(-sign(offset))
	exts := []ExtensionLine{
		{
			Start: p1.Add(extDir.Scale(b.cfg.ExtensionGap)),
			End:   start.Add(extDir.Scale(b.cfg.ExtensionOvershoot)),
		},
		{
			Start: p2.Add(extDir.Scale(b.cfg.ExtensionGap)),
			End:   end.Add(extDir.Scale(b.cfg.ExtensionOvershoot)),
		},
	}

	text := start.Midpoint(end).Add(extDir.Scale(textOffsetFactor * b.cfg.TextHeight))

	return Dimension{
		Kind:         KindAligned,
		Value:        length,
		Point1:       p1,
		Point2:       p2,
		Offset:       offset,
		Line:         line,
		Extensions:   exts,
		TextPosition: text,
		TextRotation: uprightRotation(u.Angle()),
	}, nil
}

// BuildAngular measures the angle at vertex between legs through p1 and p3.
// The interior angle (at most 180 degrees) is measured unless reflex is set,
// in which case the exterior angle is. A non-positive radius defaults to the
// shorter leg length; the radius is clamped to the configured range.
func (b *Builder) BuildAngular(p1, vertex, p3 geometry.Point2D, radius float64, reflex bool) (Dimension, error) {
	legA := p1.Sub(vertex)
	legB := p3.Sub(vertex)
	lenA := legA.Length()
	lenB := legB.Length()
	if lenA < minSpan || lenB < minSpan {
		return Dimension{}, &DegenerateInputError{Kind: KindAngular}
	}

	if radius <= 0 {
		radius = math.Min(lenA, lenB)
	}
	radius = b.clampRadius(radius)

	a1 := legA.Angle()
	a2 := legB.Angle()
	sweep := geometry.SweepCCW(a1, a2)
	start := a1
	interior := sweep
	if sweep > math.Pi {
		// Swap legs so the drawn arc never exceeds 180 degrees.
		interior = 2*math.Pi - sweep
		start = a2
	}

	value := geometry.Degrees(interior)
	arcStart := start
	arcSweep := interior
	if reflex {
		value = 360 - value
		arcStart = geometry.NormalizeAngle(start + interior)
		arcSweep = 2*math.Pi - interior
	}

	p3Copy := p3
	d := Dimension{
		Kind:      KindAngular,
		Value:     value,
		Point1:    p1,
		Point2:    vertex,
		Point3:    &p3Copy,
		ArcRadius: radius,
		Reflex:    reflex,
	}
	b.applyAngularGeometry(&d, vertex, arcStart, arcSweep, radius, lenA, lenB, legA.Scale(1/lenA), legB.Scale(1/lenB))
	return d, nil
}

// applyAngularGeometry fills the drawn fields of an angular dimension from
// its arc parameters.
func (b *Builder) applyAngularGeometry(d *Dimension, vertex geometry.Point2D, arcStart, arcSweep, radius, lenA, lenB float64, unitA, unitB geometry.Point2D) {
	d.Line = Line{
		Start:      geometry.PointOnCircle(vertex, radius, arcStart),
		End:        geometry.PointOnCircle(vertex, radius, geometry.NormalizeAngle(arcStart+arcSweep)),
		StartArrow: b.cfg.ArrowStyle,
		EndArrow:   b.cfg.ArrowStyle,
	}
	d.TextPosition = geometry.PointOnCircle(vertex, radius, geometry.NormalizeAngle(arcStart+arcSweep/2))
	d.TextRotation = 0

	// A leg shorter than the arc radius gets an extension line from just past
	// the picked point out past the arc.
	d.Extensions = d.Extensions[:0]
	for _, leg := range []struct {
		unit geometry.Point2D
		len  float64
	}{{unitA, lenA}, {unitB, lenB}} {
		inner := leg.len + b.cfg.ExtensionGap
		outer := radius + b.cfg.ExtensionOvershoot
		if outer <= inner {
			continue
		}
		d.Extensions = append(d.Extensions, ExtensionLine{
			Start: vertex.Add(leg.unit.Scale(inner)),
			End:   vertex.Add(leg.unit.Scale(outer)),
		})
	}
}

// BuildRadial measures the radius from center to rim. The dimension line
// runs from the center to the rim point with a single arrow at the rim.
func (b *Builder) BuildRadial(center, rim geometry.Point2D) (Dimension, error) {
	r := rim.Distance(center)
	if r < minSpan {
		return Dimension{}, &DegenerateInputError{Kind: KindRadial}
	}

	u := rim.Sub(center).Scale(1 / r)
	return Dimension{
		Kind:   KindRadial,
		Value:  r,
		Point1: center,
		Point2: rim,
		Line: Line{
			Start:      center,
			End:        rim,
			StartArrow: ArrowNone,
			EndArrow:   b.cfg.ArrowStyle,
		},
		TextPosition: center.Add(u.Scale(r * 0.7)),
		Prefix:       "R",
	}, nil
}

// BuildDiameter measures the full diameter through the center. The dimension
// line runs rim to rim through the center with arrows at both ends.
func (b *Builder) BuildDiameter(center, rim geometry.Point2D) (Dimension, error) {
	r := rim.Distance(center)
	if r < minSpan {
		return Dimension{}, &DegenerateInputError{Kind: KindDiameter}
	}

	u := rim.Sub(center).Scale(1 / r)
	opposite := center.Sub(u.Scale(r))
	return Dimension{
		Kind:   KindDiameter,
		Value:  2 * r,
		Point1: opposite,
		Point2: rim,
		Line: Line{
			Start:      opposite,
			End:        rim,
			StartArrow: b.cfg.ArrowStyle,
			EndArrow:   b.cfg.ArrowStyle,
		},
		TextPosition: center,
		Prefix:       "∅",
	}, nil
}

// BuildRadialFit fits a circle through three or more rim picks and builds a
// radial dimension anchored at the first pick's direction.
func (b *Builder) BuildRadialFit(points []geometry.Point2D) (Dimension, error) {
	center, radius, err := FitCircle(points)
	if err != nil {
		return Dimension{}, err
	}
	rim := center.Add(points[0].Sub(center).Normalize().Scale(radius))
	return b.BuildRadial(center, rim)
}

func (b *Builder) clampRadius(r float64) float64 {
	if r < b.cfg.MinArcRadius {
		return b.cfg.MinArcRadius
	}
	if r > b.cfg.MaxArcRadius {
		return b.cfg.MaxArcRadius
	}
	return r
}

// verticalExtension builds the extension line for a horizontal dimension:
// from just off the point, vertically to just past the dimension line.
func (b *Builder) verticalExtension(p geometry.Point2D, dimY float64) ExtensionLine {
	dir := sign(dimY - p.Y)
	return ExtensionLine{
		Start: geometry.Point2D{X: p.X, Y: p.Y + dir*b.cfg.ExtensionGap},
		End:   geometry.Point2D{X: p.X, Y: dimY + dir*b.cfg.ExtensionOvershoot},
	}
}

// horizontalExtension builds the extension line for a vertical dimension.
func (b *Builder) horizontalExtension(p geometry.Point2D, dimX float64) ExtensionLine {
	dir := sign(dimX - p.X)
	return ExtensionLine{
		Start: geometry.Point2D{X: p.X + dir*b.cfg.ExtensionGap, Y: p.Y},
		End:   geometry.Point2D{X: dimX + dir*b.cfg.ExtensionOvershoot, Y: p.Y},
	}
}

// uprightRotation folds a text angle into (-90, 90] degrees so labels read
// left to right.
func uprightRotation(angle float64) float64 {
	for angle > math.Pi/2 {
		angle -= math.Pi
	}
	for angle <= -math.Pi/2 {
		angle += math.Pi
	}
	return angle
}
