// Package document owns the drawing state: the sheet configuration,
// projected views, dimensions, and annotations. The geometry engine reads
// this state and writes back through the store's explicit update calls.
package document

import (
	"time"

	"github.com/google/uuid"

	"draft-engine/internal/dimension"
	"draft-engine/internal/sheet"
	"draft-engine/pkg/geometry"
)

// Line is one projected edge in a view's local coordinate space. The line
// type affects rendering only, never geometry.
type Line struct {
	Start geometry.Point2D `json:"start"`
	End   geometry.Point2D `json:"end"`
	Type  sheet.LineType   `json:"line_type"`
}

// Segment converts the line for geometric queries.
func (l Line) Segment() geometry.Segment {
	return geometry.NewSegment(l.Start, l.End)
}

// ProjectionType identifies the direction a view was projected from.
type ProjectionType string

const (
	ProjectionTop         ProjectionType = "top"
	ProjectionBottom      ProjectionType = "bottom"
	ProjectionFront       ProjectionType = "front"
	ProjectionBack        ProjectionType = "back"
	ProjectionRight       ProjectionType = "right"
	ProjectionLeft        ProjectionType = "left"
	ProjectionIsometric   ProjectionType = "isometric"
	ProjectionIsometricSW ProjectionType = "isometric_sw"
	ProjectionIsometricSE ProjectionType = "isometric_se"
	ProjectionIsometricNE ProjectionType = "isometric_ne"
	ProjectionIsometricNW ProjectionType = "isometric_nw"
	ProjectionCustom      ProjectionType = "custom"
)

// IsIsometric reports whether lengths measured in this projection are
// foreshortened and need the sqrt(2/3) display correction.
func (p ProjectionType) IsIsometric() bool {
	switch p {
	case ProjectionIsometric, ProjectionIsometricSW, ProjectionIsometricSE,
		ProjectionIsometricNE, ProjectionIsometricNW:
		return true
	}
	return false
}

// View is one projected view placed on the sheet. Position is in paper
// millimeters relative to the sheet center; Bounds and Lines are in the
// view's local space, produced by the projection collaborator. The engine
// reads them and writes only Position.
type View struct {
	ID         string           `json:"id"`
	Label      string           `json:"label,omitempty"`
	Projection ProjectionType   `json:"projection_type"`
	Position   geometry.Point2D `json:"position"`
	Bounds     geometry.Bounds  `json:"bounding_box"`
	Lines      []Line           `json:"lines"`
	Visible    bool             `json:"visible"`
}

// Segments returns the view's lines as bare segments for the snap and pick
// queries.
func (v View) Segments() []geometry.Segment {
	segments := make([]geometry.Segment, len(v.Lines))
	for i, l := range v.Lines {
		segments[i] = l.Segment()
	}
	return segments
}

// AnnotationStyle sizes an annotation's text box.
type AnnotationStyle struct {
	TextHeight float64 `json:"text_height"`
	BoxWidth   float64 `json:"box_width"`
	BoxHeight  float64 `json:"box_height"`
}

// Annotation is a note with a leader line. Position is the center of the
// text box and AnchorPoint the leader target; both are view-relative when
// ViewID is set.
type Annotation struct {
	ID          string           `json:"id"`
	Text        string           `json:"text"`
	Position    geometry.Point2D `json:"position"`
	AnchorPoint geometry.Point2D `json:"anchor_point"`
	ViewID      string           `json:"view_id,omitempty"`
	Style       AnnotationStyle  `json:"style"`
}

// Box is the annotation's text box rectangle centered on Position.
func (a Annotation) Box() geometry.Rect {
	return geometry.RectAround(a.Position, a.Style.BoxWidth, a.Style.BoxHeight)
}

// Drawing is the full persistent document.
type Drawing struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Sheet       sheet.Config          `json:"sheet"`
	Views       []View                `json:"views"`
	Dimensions  []dimension.Dimension `json:"dimensions"`
	Annotations []Annotation          `json:"annotations,omitempty"`
	Created     time.Time             `json:"created"`
	Modified    time.Time             `json:"modified"`
}

// NewDrawing creates an empty drawing on the default sheet.
func NewDrawing(name string) *Drawing {
	now := time.Now().UTC()
	return &Drawing{
		ID:       uuid.NewString(),
		Name:     name,
		Sheet:    sheet.DefaultConfig(),
		Created:  now,
		Modified: now,
	}
}
