package sheet

// LineType classifies a projected edge for rendering and filtering.
// Hidden variants are drawn dashed and excluded from snapping by default.
type LineType string

const (
	VisibleSharp   LineType = "visible_sharp"
	HiddenSharp    LineType = "hidden_sharp"
	VisibleSmooth  LineType = "visible_smooth"
	HiddenSmooth   LineType = "hidden_smooth"
	VisibleOutline LineType = "visible_outline"
	HiddenOutline  LineType = "hidden_outline"
	SectionCut     LineType = "section_cut"
	Centerline     LineType = "centerline"
)

// IsVisible reports whether edges of this type represent visible geometry.
func (t LineType) IsVisible() bool {
	switch t {
	case VisibleSharp, VisibleSmooth, VisibleOutline, SectionCut, Centerline:
		return true
	default:
		return false
	}
}

// DashPattern returns the dash/gap lengths in millimeters, or nil for a
// continuous line.
func (t LineType) DashPattern() []float64 {
	switch t {
	case HiddenSharp, HiddenSmooth, HiddenOutline:
		return []float64{4, 2}
	case Centerline:
		// Chain line: long dash, gap, short dash, gap
		return []float64{6, 2, 1, 2}
	default:
		return nil
	}
}

// StrokeWidth returns the default stroke width in millimeters.
func (t LineType) StrokeWidth() float64 {
	switch t {
	case VisibleSharp, SectionCut:
		return 0.5
	case VisibleOutline:
		return 0.7
	case HiddenSharp:
		return 0.25
	case Centerline:
		return 0.18
	default:
		return 0.35
	}
}
