package geometry

import "math"

// Segment is a bounded line segment between two points.
type Segment struct {
	Start Point2D `json:"start"`
	End   Point2D `json:"end"`
}

// NewSegment creates a new Segment.
func NewSegment(start, end Point2D) Segment {
	return Segment{Start: start, End: end}
}

// Length returns the segment length.
func (s Segment) Length() float64 {
	return s.Start.Distance(s.End)
}

// Midpoint returns the point halfway along the segment.
func (s Segment) Midpoint() Point2D {
	return s.Start.Midpoint(s.End)
}

// Bounds returns the axis-aligned bounding box of the segment.
func (s Segment) Bounds() Bounds {
	return NewBounds(s.Start, s.End)
}

// Direction returns the unit vector from Start to End.
// Zero-length segments yield the zero vector.
func (s Segment) Direction() Point2D {
	return s.End.Sub(s.Start).Normalize()
}

// ClosestPoint returns the point on the segment nearest to p.
func (s Segment) ClosestPoint(p Point2D) Point2D {
	d := s.End.Sub(s.Start)
	lenSq := d.Dot(d)
	if lenSq == 0 {
		return s.Start
	}
	t := p.Sub(s.Start).Dot(d) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return s.Start.Add(d.Scale(t))
}

// DistanceToPoint returns the distance from p to the nearest point on the segment.
func (s Segment) DistanceToPoint(p Point2D) float64 {
	return p.Distance(s.ClosestPoint(p))
}

// Intersection computes the intersection of two bounded segments.
// Parallel or non-crossing segments return false.
func (s Segment) Intersection(other Segment) (Point2D, bool) {
	x1, y1 := s.Start.X, s.Start.Y
	x2, y2 := s.End.X, s.End.Y
	x3, y3 := other.Start.X, other.Start.Y
	x4, y4 := other.End.X, other.End.Y

	denom := (x1-x2)*(y3-y4) - (y1-y2)*(x3-x4)
	if math.Abs(denom) < 1e-10 {
		// Parallel or degenerate
		return Point2D{}, false
	}

	t := ((x1-x3)*(y3-y4) - (y1-y3)*(x3-x4)) / denom
	u := -((x1-x2)*(y1-y3) - (y1-y2)*(x1-x3)) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Point2D{}, false
	}

	return Point2D{
		X: x1 + t*(x2-x1),
		Y: y1 + t*(y2-y1),
	}, true
}
