package viewport

const (
	// MinZoom and MaxZoom bound the user zoom factor.
	MinZoom = 0.1
	MaxZoom = 5.0
	// ZoomStep is the multiplier applied per zoom-in/out step.
	ZoomStep = 1.25
)

func clampZoom(zoom float64) float64 {
	if zoom < MinZoom {
		return MinZoom
	}
	if zoom > MaxZoom {
		return MaxZoom
	}
	return zoom
}

// Session holds the viewport state for one open drawing: pan offset, zoom,
// device pixel ratio, and the canvas geometry. It is an explicit value
// passed into every transform; there is no ambient viewport state.
type Session struct {
	// Pan is the user pan offset in canvas-logical pixels.
	Pan CanvasPoint `json:"pan"`
	// Zoom is the user zoom factor, kept within [MinZoom, MaxZoom].
	Zoom float64 `json:"zoom"`
	// DPR is the device pixel ratio between raw pointer coordinates and
	// canvas-logical pixels.
	DPR float64 `json:"dpr"`
	// CanvasWidth and CanvasHeight are the canvas size in logical pixels.
	CanvasWidth  float64 `json:"canvas_width"`
	CanvasHeight float64 `json:"canvas_height"`
	// CanvasOrigin is the canvas origin offset within the window.
	CanvasOrigin CanvasPoint `json:"canvas_origin"`
}

// NewSession creates a session at zoom 1 with no pan.
func NewSession(canvasWidth, canvasHeight float64) Session {
	return Session{
		Zoom:         1,
		DPR:          1,
		CanvasWidth:  canvasWidth,
		CanvasHeight: canvasHeight,
	}
}

// SetZoom sets the zoom factor, clamped to the valid range.
func (s *Session) SetZoom(zoom float64) {
	s.Zoom = clampZoom(zoom)
}

// ZoomIn increases the zoom by one step.
func (s *Session) ZoomIn() {
	s.SetZoom(s.Zoom * ZoomStep)
}

// ZoomOut decreases the zoom by one step.
func (s *Session) ZoomOut() {
	s.SetZoom(s.Zoom / ZoomStep)
}

// PanBy shifts the pan offset by a delta in logical pixels.
func (s *Session) PanBy(dx, dy float64) {
	s.Pan.X += dx
	s.Pan.Y += dy
}

// Reset restores the fit-to-sheet view: no pan, zoom 1.
func (s *Session) Reset() {
	s.Pan = CanvasPoint{}
	s.Zoom = 1
}

// SetCanvasSize updates the canvas dimensions after a resize.
func (s *Session) SetCanvasSize(width, height float64) {
	s.CanvasWidth = width
	s.CanvasHeight = height
}
