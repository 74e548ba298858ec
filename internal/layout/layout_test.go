package layout

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"draft-engine/internal/document"
	"draft-engine/internal/viewport"
	"draft-engine/pkg/geometry"
)

const epsilon = 1e-9

func pointsEqual(a, b geometry.Point2D) bool {
	return scalar.EqualWithinAbs(a.X, b.X, epsilon) && scalar.EqualWithinAbs(a.Y, b.Y, epsilon)
}

func TestGridFor(t *testing.T) {
	tests := []struct {
		n, cols, rows int
	}{
		{1, 1, 1},
		{2, 2, 1},
		{3, 2, 2},
		{4, 2, 2},
		{5, 3, 2},
		{6, 3, 2},
		{7, 3, 3},
		{9, 3, 3},
		{10, 4, 3},
		{17, 5, 4},
	}
	for _, tt := range tests {
		cols, rows := GridFor(tt.n)
		if cols != tt.cols || rows != tt.rows {
			t.Errorf("GridFor(%d) = (%d, %d), want (%d, %d)", tt.n, cols, rows, tt.cols, tt.rows)
		}
	}
}

func viewWithBounds(id string, min, max geometry.Point2D) document.View {
	return document.View{ID: id, Bounds: geometry.NewBounds(min, max), Visible: true}
}

func TestLayoutSingleView(t *testing.T) {
	area := viewport.DrawingArea{InnerWidth: 200, InnerHeight: 100}
	views := []document.View{
		viewWithBounds("front", geometry.Point2D{X: -10, Y: -5}, geometry.Point2D{X: 10, Y: 5}),
	}

	positions := LayoutViews(views, area, 10)
	if len(positions) != 1 {
		t.Fatalf("LayoutViews() returned %d positions, want 1", len(positions))
	}
	// Block 20x10; left = -10 - 5%*200 = -20, top = 5 + 8%*100 = 13;
	// the cell center lands at (-10, 8) and the view bbox is origin-centered.
	want := geometry.Point2D{X: -10, Y: 8}
	if got := positions["front"]; !pointsEqual(got, want) {
		t.Errorf("position = %+v, want %+v", got, want)
	}
}

func TestLayoutGrid(t *testing.T) {
	area := viewport.DrawingArea{InnerWidth: 200, InnerHeight: 100}
	views := []document.View{
		viewWithBounds("front", geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 40, Y: 20}),
		viewWithBounds("right", geometry.Point2D{X: -15, Y: -15}, geometry.Point2D{X: 15, Y: 15}),
		viewWithBounds("top", geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 10, Y: 10}),
	}

	positions := LayoutViews(views, area, 10)
	if len(positions) != 3 {
		t.Fatalf("LayoutViews() returned %d positions, want 3", len(positions))
	}

	// Grid (2,2) row-major: front (0,0), right (0,1), top (1,0).
	// Column widths 40, 30; row heights 30, 10; block 80x50 at left -50, top 33.
	want := map[string]geometry.Point2D{
		"front": {X: -50, Y: 8},
		"right": {X: 15, Y: 18},
		"top":   {X: -35, Y: -17},
	}
	for id, wantPos := range want {
		if got := positions[id]; !pointsEqual(got, wantPos) {
			t.Errorf("position[%q] = %+v, want %+v", id, got, wantPos)
		}
	}

	// Placed boxes must not overlap.
	placed := make([]geometry.Bounds, 0, len(views))
	for _, v := range views {
		placed = append(placed, v.Bounds.Translate(positions[v.ID]))
	}
	for i := 0; i < len(placed); i++ {
		for j := i + 1; j < len(placed); j++ {
			if placed[i].Overlaps(placed[j]) {
				t.Errorf("laid-out views %d and %d overlap: %+v vs %+v", i, j, placed[i], placed[j])
			}
		}
	}
}

func TestLayoutSkipsHidden(t *testing.T) {
	area := viewport.DrawingArea{InnerWidth: 200, InnerHeight: 100}
	hidden := viewWithBounds("iso", geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 50, Y: 50})
	hidden.Visible = false
	views := []document.View{
		viewWithBounds("front", geometry.Point2D{X: -10, Y: -5}, geometry.Point2D{X: 10, Y: 5}),
		hidden,
	}

	positions := LayoutViews(views, area, 10)
	if len(positions) != 1 {
		t.Fatalf("LayoutViews() returned %d positions, want 1", len(positions))
	}
	if _, ok := positions["iso"]; ok {
		t.Error("hidden view was laid out")
	}
	// With the hidden view skipped the layout matches the single-view case.
	if got, want := positions["front"], (geometry.Point2D{X: -10, Y: 8}); !pointsEqual(got, want) {
		t.Errorf("position = %+v, want %+v", got, want)
	}
}

func TestLayoutEmpty(t *testing.T) {
	area := viewport.DrawingArea{InnerWidth: 200, InnerHeight: 100}
	if positions := LayoutViews(nil, area, 10); len(positions) != 0 {
		t.Fatalf("LayoutViews(nil) returned %d positions, want 0", len(positions))
	}
}
