package dimension

import (
	"fmt"

	"draft-engine/pkg/geometry"
)

// GeometryPatch is a partial update to a dimension's drawn geometry. Nil
// fields are left untouched by Apply. Recalculation never changes a
// dimension's value or measured points, so those have no patch fields.
type GeometryPatch struct {
	Line         *Line             `json:"line,omitempty"`
	Extensions   []ExtensionLine   `json:"extensions,omitempty"`
	TextPosition *geometry.Point2D `json:"text_position,omitempty"`
	TextRotation *float64          `json:"text_rotation,omitempty"`
	Offset       *float64          `json:"offset,omitempty"`
	ArcRadius    *float64          `json:"arc_radius,omitempty"`
}

// Apply writes the patch's non-nil fields onto d.
func (p GeometryPatch) Apply(d *Dimension) {
	if p.Line != nil {
		d.Line = *p.Line
	}
	if p.Extensions != nil {
		d.Extensions = p.Extensions
	}
	if p.TextPosition != nil {
		d.TextPosition = *p.TextPosition
	}
	if p.TextRotation != nil {
		d.TextRotation = *p.TextRotation
	}
	if p.Offset != nil {
		d.Offset = *p.Offset
	}
	if p.ArcRadius != nil {
		d.ArcRadius = *p.ArcRadius
	}
}

// RecalculateOffset derives a new offset from the cursor position so the
// dimension line tracks the cursor, then rebuilds the drawn geometry around
// the unchanged measured points. Only linear kinds have an offset.
func (b *Builder) RecalculateOffset(d Dimension, cursor geometry.Point2D) (GeometryPatch, error) {
	if !d.Kind.IsLinear() {
		return GeometryPatch{}, fmt.Errorf("recalculate offset: %s dimension has no offset", d.Kind)
	}

	var offset float64
	switch d.Kind {
	case KindHorizontal:
		offset = (d.Point1.Y+d.Point2.Y)/2 - cursor.Y
	case KindVertical:
		offset = (d.Point1.X+d.Point2.X)/2 - cursor.X
	case KindAligned:
		span := d.Point2.Sub(d.Point1)
		length := span.Length()
		if length < minSpan {
			return GeometryPatch{}, &DegenerateInputError{Kind: d.Kind}
		}
		perp := span.Scale(1 / length).Perp()
		offset = -cursor.Sub(d.Point1).Dot(perp)
	}

	rebuilt, err := b.rebuildLinear(d, offset)
	if err != nil {
		return GeometryPatch{}, err
	}
	return patchFrom(rebuilt, &offset, nil), nil
}

// RecalculateRadius derives a new arc radius from the cursor's distance to
// the vertex and rebuilds the arc geometry. Only angular dimensions have an
// arc radius.
func (b *Builder) RecalculateRadius(d Dimension, cursor geometry.Point2D) (GeometryPatch, error) {
	if d.Kind != KindAngular {
		return GeometryPatch{}, fmt.Errorf("recalculate radius: %s dimension has no arc radius", d.Kind)
	}
	if d.Point3 == nil {
		return GeometryPatch{}, &DegenerateInputError{Kind: d.Kind}
	}

	radius := b.clampRadius(cursor.Distance(d.Point2))

	rebuilt, err := b.BuildAngular(d.Point1, d.Point2, *d.Point3, radius, d.Reflex)
	if err != nil {
		return GeometryPatch{}, err
	}
	return patchFrom(rebuilt, nil, &radius), nil
}

// rebuildLinear reruns the appropriate linear builder with a new offset,
// keeping the measured points.
func (b *Builder) rebuildLinear(d Dimension, offset float64) (Dimension, error) {
	switch d.Kind {
	case KindHorizontal:
		return b.BuildHorizontal(d.Point1, d.Point2, offset)
	case KindVertical:
		return b.BuildVertical(d.Point1, d.Point2, offset)
	case KindAligned:
		return b.BuildAligned(d.Point1, d.Point2, offset)
	}
	return Dimension{}, fmt.Errorf("rebuild: unsupported kind %s", d.Kind)
}

// patchFrom extracts the drawn geometry of a rebuilt dimension into a patch.
func patchFrom(d Dimension, offset, radius *float64) GeometryPatch {
	line := d.Line
	text := d.TextPosition
	rot := d.TextRotation
	p := GeometryPatch{
		Line:         &line,
		Extensions:   d.Extensions,
		TextPosition: &text,
		TextRotation: &rot,
		Offset:       offset,
		ArcRadius:    radius,
	}
	if p.Extensions == nil {
		p.Extensions = []ExtensionLine{}
	}
	return p
}

// Recalculate dispatches on the patched parameter: linear dimensions track
// the cursor with their offset, angular dimensions with their arc radius.
// Radial and diameter dimensions are fully determined by their points and
// return an empty patch.
func (b *Builder) Recalculate(d Dimension, cursor geometry.Point2D) (GeometryPatch, error) {
	switch {
	case d.Kind.IsLinear():
		return b.RecalculateOffset(d, cursor)
	case d.Kind == KindAngular:
		return b.RecalculateRadius(d, cursor)
	default:
		return GeometryPatch{}, nil
	}
}

// Rebuild derives fresh drawn geometry for a stored dimension from its
// measured points and parameters, for when the style config changed after
// the dimension was built. The measured value and points are untouched.
func (b *Builder) Rebuild(d Dimension) (Dimension, error) {
	switch d.Kind {
	case KindHorizontal, KindVertical, KindAligned:
		return b.rebuildLinear(d, d.Offset)
	case KindAngular:
		if d.Point3 == nil {
			return Dimension{}, &DegenerateInputError{Kind: d.Kind}
		}
		return b.BuildAngular(d.Point1, d.Point2, *d.Point3, d.ArcRadius, d.Reflex)
	case KindRadial:
		return b.BuildRadial(d.Point1, d.Point2)
	case KindDiameter:
		// Point1 is the rim opposite Point2; the center is their midpoint.
		return b.BuildDiameter(d.Point1.Midpoint(d.Point2), d.Point2)
	}
	return Dimension{}, fmt.Errorf("rebuild: unknown kind %q", d.Kind)
}

// RebuildPatch is Rebuild packaged as a store patch.
func (b *Builder) RebuildPatch(d Dimension) (GeometryPatch, error) {
	rebuilt, err := b.Rebuild(d)
	if err != nil {
		return GeometryPatch{}, err
	}
	offset := rebuilt.Offset
	radius := rebuilt.ArcRadius
	return patchFrom(rebuilt, &offset, &radius), nil
}
