package interaction

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"draft-engine/internal/dimension"
	"draft-engine/internal/document"
	"draft-engine/pkg/geometry"
)

const epsilon = 1e-9

func newTestStore() *document.Store {
	store := document.NewStore(document.NewDrawing("test"))
	store.AddView(document.View{
		ID: "v1",
		Bounds: geometry.NewBounds(
			geometry.Point2D{X: -50, Y: -30},
			geometry.Point2D{X: 50, Y: 30},
		),
		Visible: true,
	})
	return store
}

func testBuilder() *dimension.Builder {
	return dimension.NewBuilder(dimension.DefaultConfig())
}

func TestDimensionPickCommit(t *testing.T) {
	store := newTestStore()
	pick, err := NewDimensionPick(store, testBuilder(), dimension.KindHorizontal, "v1")
	if err != nil {
		t.Fatalf("NewDimensionPick() error: %v", err)
	}
	if pick.Needed() != 2 {
		t.Fatalf("Needed() = %d, want 2", pick.Needed())
	}

	if _, done, err := pick.Add(geometry.Point2D{X: -50, Y: -30}); done || err != nil {
		t.Fatalf("first Add() = done %v, err %v", done, err)
	}
	if pick.Picked() != 1 {
		t.Fatalf("Picked() = %d, want 1", pick.Picked())
	}

	index, done, err := pick.Add(geometry.Point2D{X: 50, Y: -30})
	if err != nil || !done {
		t.Fatalf("second Add() = done %v, err %v", done, err)
	}
	if index != 0 {
		t.Fatalf("committed index = %d, want 0", index)
	}
	if pick.Picked() != 0 {
		t.Errorf("Picked() after commit = %d, want 0", pick.Picked())
	}

	d, err := store.Dimension(0)
	if err != nil {
		t.Fatalf("Dimension(0) error: %v", err)
	}
	if d.Kind != dimension.KindHorizontal || d.ViewID != "v1" {
		t.Errorf("committed dimension = %s on %q, want horizontal on v1", d.Kind, d.ViewID)
	}
	if !scalar.EqualWithinAbs(d.Value, 100, epsilon) {
		t.Errorf("Value = %g, want 100", d.Value)
	}
	if !scalar.EqualWithinAbs(d.Line.Start.Y, -40, epsilon) {
		t.Errorf("dimension line y = %g, want -40", d.Line.Start.Y)
	}

	// The sequence resets and the next pick commits a second dimension.
	pick.Add(geometry.Point2D{X: -50, Y: 10})
	index, done, err = pick.Add(geometry.Point2D{X: 20, Y: 10})
	if err != nil || !done || index != 1 {
		t.Fatalf("second pick = index %d, done %v, err %v, want 1, true, nil", index, done, err)
	}
}

func TestDimensionPickAngular(t *testing.T) {
	store := newTestStore()
	pick, err := NewDimensionPick(store, testBuilder(), dimension.KindAngular, "")
	if err != nil {
		t.Fatalf("NewDimensionPick() error: %v", err)
	}
	if pick.Needed() != 3 {
		t.Fatalf("Needed() = %d, want 3", pick.Needed())
	}

	pick.Add(geometry.Point2D{X: 20, Y: 0})
	if _, done, _ := pick.Add(geometry.Point2D{X: 0, Y: 0}); done {
		t.Fatal("pick complete after two of three points")
	}
	index, done, err := pick.Add(geometry.Point2D{X: 0, Y: 20})
	if err != nil || !done {
		t.Fatalf("third Add() = done %v, err %v", done, err)
	}

	d, _ := store.Dimension(index)
	if d.Kind != dimension.KindAngular {
		t.Fatalf("Kind = %s, want angular", d.Kind)
	}
	if !scalar.EqualWithinAbs(d.Value, 90, epsilon) {
		t.Errorf("Value = %g, want 90", d.Value)
	}
	if !scalar.EqualWithinAbs(d.ArcRadius, 20, epsilon) {
		t.Errorf("ArcRadius = %g, want 20 (shorter leg)", d.ArcRadius)
	}
}

func TestDimensionPickDegenerateKeepsSelection(t *testing.T) {
	store := newTestStore()
	pick, _ := NewDimensionPick(store, testBuilder(), dimension.KindHorizontal, "v1")

	pick.Add(geometry.Point2D{X: 0, Y: 0})
	_, done, err := pick.Add(geometry.Point2D{X: 0, Y: 0})
	var degenerate *dimension.DegenerateInputError
	if done || !errors.As(err, &degenerate) {
		t.Fatalf("coincident Add() = done %v, err %v, want DegenerateInputError", done, err)
	}
	if pick.Picked() != 1 {
		t.Fatalf("Picked() after rejected point = %d, want 1", pick.Picked())
	}
	if n := len(store.Dimensions()); n != 0 {
		t.Fatalf("store has %d dimensions after rejected pick, want 0", n)
	}

	// A different second point completes the pick.
	if _, done, err := pick.Add(geometry.Point2D{X: 30, Y: 0}); !done || err != nil {
		t.Fatalf("retry Add() = done %v, err %v", done, err)
	}
}

func TestDimensionPickCancelWritesNothing(t *testing.T) {
	store := newTestStore()
	changes := 0
	store.On(document.EventDimensionsChanged, func(interface{}) { changes++ })

	pick, _ := NewDimensionPick(store, testBuilder(), dimension.KindVertical, "v1")
	pick.Add(geometry.Point2D{X: 5, Y: 5})
	pick.Cancel()

	if pick.Picked() != 0 {
		t.Errorf("Picked() after cancel = %d, want 0", pick.Picked())
	}
	if changes != 0 {
		t.Errorf("cancelled pick emitted %d dimension changes, want 0", changes)
	}
}

func TestDimensionPickViewValidation(t *testing.T) {
	store := newTestStore()
	var notFound *document.ViewNotFoundError

	if _, err := NewDimensionPick(store, testBuilder(), dimension.KindHorizontal, "ghost"); !errors.As(err, &notFound) {
		t.Fatalf("NewDimensionPick(ghost view) error = %v, want ViewNotFoundError", err)
	}
	if _, err := NewDimensionPick(store, testBuilder(), dimension.Kind("bogus"), ""); err == nil {
		t.Fatal("NewDimensionPick(bogus kind) succeeded")
	}

	// The view vanishing mid-pick aborts the commit and clears the selection.
	pick, _ := NewDimensionPick(store, testBuilder(), dimension.KindHorizontal, "v1")
	pick.Add(geometry.Point2D{X: -50, Y: -30})
	if err := store.RemoveView("v1"); err != nil {
		t.Fatalf("RemoveView() error: %v", err)
	}
	_, done, err := pick.Add(geometry.Point2D{X: 50, Y: -30})
	if done || !errors.As(err, &notFound) {
		t.Fatalf("commit after view removal = done %v, err %v, want ViewNotFoundError", done, err)
	}
	if pick.Picked() != 0 {
		t.Errorf("Picked() after aborted commit = %d, want 0", pick.Picked())
	}
	if n := len(store.Dimensions()); n != 0 {
		t.Errorf("store has %d dimensions after aborted commit, want 0", n)
	}
}

func TestRadialFitPick(t *testing.T) {
	store := newTestStore()
	pick, err := NewRadialFitPick(store, testBuilder(), "v1")
	if err != nil {
		t.Fatalf("NewRadialFitPick() error: %v", err)
	}

	pick.Add(geometry.Point2D{X: 7, Y: -1})
	pick.Add(geometry.Point2D{X: 2, Y: 4})
	if _, err := pick.Finish(); err == nil {
		t.Fatal("Finish() with two points succeeded")
	}
	if pick.Picked() != 2 {
		t.Fatalf("Picked() after failed fit = %d, want 2", pick.Picked())
	}

	pick.Add(geometry.Point2D{X: -3, Y: -1})
	index, err := pick.Finish()
	if err != nil {
		t.Fatalf("Finish() error: %v", err)
	}
	d, _ := store.Dimension(index)
	if d.Kind != dimension.KindRadial {
		t.Fatalf("Kind = %s, want radial", d.Kind)
	}
	if !scalar.EqualWithinAbs(d.Value, 5, 1e-6) {
		t.Errorf("fitted radius = %g, want 5", d.Value)
	}
	if pick.Picked() != 0 {
		t.Errorf("Picked() after finish = %d, want 0", pick.Picked())
	}
}

func addHorizontal(t *testing.T, store *document.Store, b *dimension.Builder) int {
	t.Helper()
	d, err := b.BuildHorizontal(geometry.Point2D{X: -50, Y: -30}, geometry.Point2D{X: 50, Y: -30}, 10)
	if err != nil {
		t.Fatalf("BuildHorizontal() error: %v", err)
	}
	index, err := store.AddDimension(d)
	if err != nil {
		t.Fatalf("AddDimension() error: %v", err)
	}
	return index
}

func TestDimensionDragTracksCursor(t *testing.T) {
	store := newTestStore()
	builder := testBuilder()
	index := addHorizontal(t, store, builder)

	drag, err := BeginDimensionDrag(store, builder, index)
	if err != nil {
		t.Fatalf("BeginDimensionDrag() error: %v", err)
	}

	if err := drag.Move(geometry.Point2D{X: 0, Y: -55}); err != nil {
		t.Fatalf("Move() error: %v", err)
	}
	d, _ := store.Dimension(index)
	if !scalar.EqualWithinAbs(d.Offset, 25, epsilon) {
		t.Errorf("Offset after move = %g, want 25", d.Offset)
	}
	if !scalar.EqualWithinAbs(d.Line.Start.Y, -55, epsilon) {
		t.Errorf("line y after move = %g, want -55", d.Line.Start.Y)
	}
	if !scalar.EqualWithinAbs(d.Value, 100, epsilon) {
		t.Errorf("Value changed during drag: %g", d.Value)
	}

	drag.Move(geometry.Point2D{X: 10, Y: -70})
	drag.Commit()
	d, _ = store.Dimension(index)
	if !scalar.EqualWithinAbs(d.Line.Start.Y, -70, epsilon) {
		t.Errorf("line y after commit = %g, want -70", d.Line.Start.Y)
	}

	if err := drag.Move(geometry.Point2D{X: 0, Y: 0}); !errors.Is(err, ErrInactive) {
		t.Errorf("Move() after commit = %v, want ErrInactive", err)
	}
}

func TestDimensionDragCancelRestores(t *testing.T) {
	store := newTestStore()
	builder := testBuilder()
	index := addHorizontal(t, store, builder)
	before, _ := store.Dimension(index)

	drag, _ := BeginDimensionDrag(store, builder, index)
	drag.Move(geometry.Point2D{X: 0, Y: -60})
	drag.Move(geometry.Point2D{X: 0, Y: -75})
	if err := drag.Cancel(); err != nil {
		t.Fatalf("Cancel() error: %v", err)
	}

	after, _ := store.Dimension(index)
	if !scalar.EqualWithinAbs(after.Offset, before.Offset, epsilon) {
		t.Errorf("Offset after cancel = %g, want %g", after.Offset, before.Offset)
	}
	if !scalar.EqualWithinAbs(after.Line.Start.Y, before.Line.Start.Y, epsilon) {
		t.Errorf("line y after cancel = %g, want %g", after.Line.Start.Y, before.Line.Start.Y)
	}
	if !scalar.EqualWithinAbs(after.TextPosition.Y, before.TextPosition.Y, epsilon) {
		t.Errorf("text y after cancel = %g, want %g", after.TextPosition.Y, before.TextPosition.Y)
	}

	if err := drag.Cancel(); err != nil {
		t.Errorf("second Cancel() = %v, want nil", err)
	}
}

func TestDimensionDragCancelWithoutMove(t *testing.T) {
	store := newTestStore()
	builder := testBuilder()
	index := addHorizontal(t, store, builder)

	changes := 0
	store.On(document.EventDimensionsChanged, func(interface{}) { changes++ })

	drag, _ := BeginDimensionDrag(store, builder, index)
	if err := drag.Cancel(); err != nil {
		t.Fatalf("Cancel() error: %v", err)
	}
	if changes != 0 {
		t.Errorf("unmoved drag emitted %d dimension changes, want 0", changes)
	}
}

func TestDimensionDragAbortsWhenRemoved(t *testing.T) {
	store := newTestStore()
	builder := testBuilder()
	index := addHorizontal(t, store, builder)

	drag, _ := BeginDimensionDrag(store, builder, index)
	if err := store.RemoveDimension(index); err != nil {
		t.Fatalf("RemoveDimension() error: %v", err)
	}

	var outOfRange *document.DimensionIndexOutOfRangeError
	if err := drag.Move(geometry.Point2D{X: 0, Y: -55}); !errors.As(err, &outOfRange) {
		t.Fatalf("Move() after removal = %v, want DimensionIndexOutOfRangeError", err)
	}
	if err := drag.Move(geometry.Point2D{X: 0, Y: -55}); !errors.Is(err, ErrInactive) {
		t.Errorf("Move() on aborted drag = %v, want ErrInactive", err)
	}
}

func TestDimensionDragRadius(t *testing.T) {
	store := newTestStore()
	builder := testBuilder()
	d, err := builder.BuildAngular(
		geometry.Point2D{X: 20, Y: 0},
		geometry.Point2D{X: 0, Y: 0},
		geometry.Point2D{X: 0, Y: 20},
		0, false,
	)
	if err != nil {
		t.Fatalf("BuildAngular() error: %v", err)
	}
	index, _ := store.AddDimension(d)

	drag, err := BeginDimensionDrag(store, builder, index)
	if err != nil {
		t.Fatalf("BeginDimensionDrag() error: %v", err)
	}

	drag.Move(geometry.Point2D{X: 50, Y: 0})
	got, _ := store.Dimension(index)
	if !scalar.EqualWithinAbs(got.ArcRadius, 50, epsilon) {
		t.Errorf("ArcRadius = %g, want 50", got.ArcRadius)
	}

	// The radius clamps rather than following the cursor off the sheet.
	drag.Move(geometry.Point2D{X: 500, Y: 0})
	got, _ = store.Dimension(index)
	if !scalar.EqualWithinAbs(got.ArcRadius, 100, epsilon) {
		t.Errorf("ArcRadius = %g, want 100", got.ArcRadius)
	}

	if err := drag.Cancel(); err != nil {
		t.Fatalf("Cancel() error: %v", err)
	}
	got, _ = store.Dimension(index)
	if !scalar.EqualWithinAbs(got.ArcRadius, 20, epsilon) {
		t.Errorf("ArcRadius after cancel = %g, want 20", got.ArcRadius)
	}
}

func TestDimensionDragRejectsRadial(t *testing.T) {
	store := newTestStore()
	builder := testBuilder()
	d, err := builder.BuildRadial(geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 30, Y: 0})
	if err != nil {
		t.Fatalf("BuildRadial() error: %v", err)
	}
	index, _ := store.AddDimension(d)

	if _, err := BeginDimensionDrag(store, builder, index); err == nil {
		t.Fatal("BeginDimensionDrag() on radial dimension succeeded")
	}
}

func TestViewDrag(t *testing.T) {
	store := newTestStore()
	if err := store.SetViewPosition("v1", geometry.Point2D{X: 10, Y: 5}); err != nil {
		t.Fatalf("SetViewPosition() error: %v", err)
	}

	drag, err := BeginViewDrag(store, "v1", geometry.Point2D{X: 12, Y: 6})
	if err != nil {
		t.Fatalf("BeginViewDrag() error: %v", err)
	}
	drag.Move(geometry.Point2D{X: 20, Y: 10})

	v, _ := store.View("v1")
	want := geometry.Point2D{X: 18, Y: 9}
	if !scalar.EqualWithinAbs(v.Position.X, want.X, epsilon) || !scalar.EqualWithinAbs(v.Position.Y, want.Y, epsilon) {
		t.Errorf("position after move = %+v, want %+v", v.Position, want)
	}

	if err := drag.Cancel(); err != nil {
		t.Fatalf("Cancel() error: %v", err)
	}
	v, _ = store.View("v1")
	if !scalar.EqualWithinAbs(v.Position.X, 10, epsilon) || !scalar.EqualWithinAbs(v.Position.Y, 5, epsilon) {
		t.Errorf("position after cancel = %+v, want (10, 5)", v.Position)
	}

	if _, err := BeginViewDrag(store, "ghost", geometry.Point2D{}); err == nil {
		t.Error("BeginViewDrag(ghost) succeeded")
	}
}

func TestAnnotationDrag(t *testing.T) {
	store := newTestStore()
	id, err := store.AddAnnotation(document.Annotation{
		Text:        "DEBURR ALL EDGES",
		Position:    geometry.Point2D{X: 0, Y: 0},
		AnchorPoint: geometry.Point2D{X: -20, Y: -20},
		Style:       document.AnnotationStyle{TextHeight: 3.5, BoxWidth: 40, BoxHeight: 10},
	})
	if err != nil {
		t.Fatalf("AddAnnotation() error: %v", err)
	}

	drag, err := BeginAnnotationDrag(store, id, geometry.Point2D{X: 2, Y: 1})
	if err != nil {
		t.Fatalf("BeginAnnotationDrag() error: %v", err)
	}
	drag.Move(geometry.Point2D{X: 10, Y: 10})

	a, _ := store.Annotation(id)
	if !scalar.EqualWithinAbs(a.Position.X, 8, epsilon) || !scalar.EqualWithinAbs(a.Position.Y, 9, epsilon) {
		t.Errorf("position after move = %+v, want (8, 9)", a.Position)
	}
	if !scalar.EqualWithinAbs(a.AnchorPoint.X, -20, epsilon) {
		t.Errorf("anchor moved during box drag: %+v", a.AnchorPoint)
	}

	if err := drag.Cancel(); err != nil {
		t.Fatalf("Cancel() error: %v", err)
	}
	a, _ = store.Annotation(id)
	if !scalar.EqualWithinAbs(a.Position.X, 0, epsilon) || !scalar.EqualWithinAbs(a.Position.Y, 0, epsilon) {
		t.Errorf("position after cancel = %+v, want origin", a.Position)
	}

	drag.Commit()
	if err := drag.Move(geometry.Point2D{}); !errors.Is(err, ErrInactive) {
		t.Errorf("Move() after commit = %v, want ErrInactive", err)
	}
}
