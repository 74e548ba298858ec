package viewport

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestComputeDrawingArea(t *testing.T) {
	// A4 landscape on a 1200x800 canvas with a 20px margin: height limits.
	area, err := ComputeDrawingArea(297, 210, 1200, 800, 20)
	if err != nil {
		t.Fatalf("ComputeDrawingArea: %v", err)
	}

	wantScale := (800.0 - 40) / 210 * 0.95
	if !scalar.EqualWithinAbs(area.Scale, wantScale, 1e-12) {
		t.Errorf("Scale = %v, want %v", area.Scale, wantScale)
	}
	if area.Center.X != 600 || area.Center.Y != 400 {
		t.Errorf("Center = %+v, want (600,400)", area.Center)
	}
	if !scalar.EqualWithinAbs(area.InnerWidth, 297*0.92, 1e-12) {
		t.Errorf("InnerWidth = %v, want %v", area.InnerWidth, 297*0.92)
	}
	if !scalar.EqualWithinAbs(area.InnerHeight, 210*0.92, 1e-12) {
		t.Errorf("InnerHeight = %v, want %v", area.InnerHeight, 210*0.92)
	}
	if !scalar.EqualWithinAbs(area.GridMargin(), 297*0.04, 1e-12) {
		t.Errorf("GridMargin = %v, want %v", area.GridMargin(), 297*0.04)
	}
}

func TestComputeDrawingAreaDegenerate(t *testing.T) {
	tests := []struct {
		name                             string
		paperW, paperH, canvasW, canvasH float64
		margin                           float64
	}{
		{"zero canvas", 297, 210, 0, 0, 0},
		{"zero paper", 0, 0, 1200, 800, 0},
		{"negative canvas height", 297, 210, 1200, -5, 0},
		{"margin swallows canvas", 297, 210, 100, 100, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeDrawingArea(tt.paperW, tt.paperH, tt.canvasW, tt.canvasH, tt.margin)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var dte *DegenerateTransformError
			if !errors.As(err, &dte) {
				t.Errorf("error type = %T, want *DegenerateTransformError", err)
			}
		})
	}
}

func TestForwardContract(t *testing.T) {
	// Hand-computed against the forward chain:
	// canvas = center + (paperX*scale, -paperY*scale)
	// logical = (canvas - mid)*zoom + mid + pan + origin
	// screen = logical * dpr
	area := DrawingArea{Scale: 2, Center: CanvasPoint{X: 600, Y: 400}, PaperWidth: 297, PaperHeight: 210}
	s := Session{
		Pan:          CanvasPoint{X: 5, Y: -7},
		Zoom:         2,
		DPR:          2,
		CanvasWidth:  1200,
		CanvasHeight: 800,
	}
	tr := NewTransform(area, s)

	got := tr.PaperToScreen(PaperPoint{X: 10, Y: 20})
	// canvas = (620, 360); logical = ((620-600)*2+600+5, (360-400)*2+400-7) = (645, 313)
	want := ScreenPoint{X: 1290, Y: 626}
	if !scalar.EqualWithinAbs(got.X, want.X, 1e-9) || !scalar.EqualWithinAbs(got.Y, want.Y, 1e-9) {
		t.Errorf("PaperToScreen = %+v, want %+v", got, want)
	}

	back := tr.ScreenToPaper(want)
	if !scalar.EqualWithinAbs(back.X, 10, 1e-9) || !scalar.EqualWithinAbs(back.Y, 20, 1e-9) {
		t.Errorf("ScreenToPaper = %+v, want (10,20)", back)
	}
}

func TestRoundTripExhaustive(t *testing.T) {
	area, err := ComputeDrawingArea(420, 297, 1600, 900, 24)
	if err != nil {
		t.Fatalf("ComputeDrawingArea: %v", err)
	}

	sessions := []Session{
		{Zoom: 1, DPR: 1, CanvasWidth: 1600, CanvasHeight: 900},
		{Zoom: 0.5, DPR: 1, CanvasWidth: 1600, CanvasHeight: 900, Pan: CanvasPoint{X: 120, Y: -40}},
		{Zoom: 2, DPR: 2, CanvasWidth: 1600, CanvasHeight: 900, Pan: CanvasPoint{X: -33.5, Y: 7.25}},
		{Zoom: 5, DPR: 1.5, CanvasWidth: 1600, CanvasHeight: 900, CanvasOrigin: CanvasPoint{X: 250, Y: 60}},
		{Zoom: 0.1, DPR: 3, CanvasWidth: 1600, CanvasHeight: 900, Pan: CanvasPoint{X: 999, Y: 999}},
	}

	for _, s := range sessions {
		tr := NewTransform(area, s)
		for sx := -200.0; sx <= 2000; sx += 314.7 {
			for sy := -200.0; sy <= 1200; sy += 217.3 {
				p := tr.ScreenToPaper(ScreenPoint{X: sx, Y: sy})
				back := tr.PaperToScreen(p)
				if math.Abs(back.X-sx) > 1e-6 || math.Abs(back.Y-sy) > 1e-6 {
					t.Fatalf("round trip (%g,%g) zoom=%g dpr=%g: got (%g,%g)",
						sx, sy, s.Zoom, s.DPR, back.X, back.Y)
				}
			}
		}
	}
}

func TestDegenerateTransformFallsBackToIdentity(t *testing.T) {
	tr := NewTransform(DrawingArea{}, Session{Zoom: 1, DPR: 1})

	p := tr.PaperToScreen(PaperPoint{X: 3, Y: 4})
	if p.X != 3 || p.Y != 4 {
		t.Errorf("identity fallback PaperToScreen = %+v, want (3,4)", p)
	}
	back := tr.ScreenToPaper(ScreenPoint{X: 3, Y: 4})
	if back.X != 3 || back.Y != 4 {
		t.Errorf("identity fallback ScreenToPaper = %+v, want (3,4)", back)
	}
	if math.IsNaN(p.X) || math.IsInf(p.X, 0) {
		t.Error("identity fallback produced non-finite output")
	}
}

func TestSessionZoomClamping(t *testing.T) {
	s := NewSession(800, 600)

	s.SetZoom(50)
	if s.Zoom != MaxZoom {
		t.Errorf("SetZoom(50) = %g, want %g", s.Zoom, MaxZoom)
	}
	s.SetZoom(0.001)
	if s.Zoom != MinZoom {
		t.Errorf("SetZoom(0.001) = %g, want %g", s.Zoom, MinZoom)
	}

	s.SetZoom(MaxZoom)
	s.ZoomIn()
	if s.Zoom != MaxZoom {
		t.Errorf("ZoomIn at ceiling = %g, want %g", s.Zoom, MaxZoom)
	}
	s.SetZoom(MinZoom)
	s.ZoomOut()
	if s.Zoom != MinZoom {
		t.Errorf("ZoomOut at floor = %g, want %g", s.Zoom, MinZoom)
	}

	s.SetZoom(1)
	s.ZoomIn()
	if !scalar.EqualWithinAbs(s.Zoom, 1.25, 1e-12) {
		t.Errorf("ZoomIn from 1 = %g, want 1.25", s.Zoom)
	}
}

func TestSessionReset(t *testing.T) {
	s := NewSession(800, 600)
	s.PanBy(40, -20)
	s.SetZoom(3)

	s.Reset()
	if s.Pan != (CanvasPoint{}) || s.Zoom != 1 {
		t.Errorf("Reset left pan=%+v zoom=%g", s.Pan, s.Zoom)
	}
}

func TestPaperTolerance(t *testing.T) {
	tests := []struct {
		name  string
		px    float64
		scale float64
		zoom  float64
		want  float64
	}{
		{"unit scale", 10, 1, 1, 10},
		{"scale and zoom divide", 10, 2, 2, 2.5},
		{"zoomed out grows catch radius", 8, 4, 0.5, 4},
		{"zero scale yields zero", 10, 0, 1, 0},
		{"zero zoom yields zero", 10, 2, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PaperTolerance(tt.px, tt.scale, tt.zoom); got != tt.want {
				t.Errorf("PaperTolerance = %g, want %g", got, tt.want)
			}
		})
	}

	// The screen-space catch radius is zoom-invariant by construction:
	// tolerance * scale * zoom recovers the pixel radius at any zoom.
	for _, zoom := range []float64{0.5, 1, 2} {
		tol := PaperTolerance(10, 3.2, zoom)
		if !scalar.EqualWithinAbs(tol*3.2*zoom, 10, 1e-12) {
			t.Errorf("zoom %g: tolerance does not invert to 10px", zoom)
		}
	}
}
