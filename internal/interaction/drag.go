package interaction

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"draft-engine/internal/dimension"
	"draft-engine/internal/document"
	"draft-engine/pkg/geometry"
)

// DimensionDrag tracks a dimension's draggable parameter (the offset for
// linear kinds, the arc radius for angular) against the cursor. Every Move
// is one atomic store update; Cancel restores the geometry captured when the
// drag began.
type DimensionDrag struct {
	store    *document.Store
	builder  *dimension.Builder
	index    int
	snapshot dimension.GeometryPatch
	active   bool
	moved    bool

	Log logrus.FieldLogger
}

// BeginDimensionDrag snapshots the dimension's drawn geometry and starts the
// drag. Radial and diameter dimensions are fully determined by their points
// and cannot be dragged.
func BeginDimensionDrag(store *document.Store, builder *dimension.Builder, index int) (*DimensionDrag, error) {
	d, err := store.Dimension(index)
	if err != nil {
		return nil, err
	}
	if !d.Kind.IsLinear() && d.Kind != dimension.KindAngular {
		return nil, fmt.Errorf("interaction: %s dimension has no draggable geometry", d.Kind)
	}
	return &DimensionDrag{
		store:    store,
		builder:  builder,
		index:    index,
		snapshot: snapshotGeometry(d),
		active:   true,
		Log:      logrus.StandardLogger(),
	}, nil
}

// Move recalculates the dragged parameter from the cursor and writes the
// patch to the store. If the dimension vanished mid-drag the drag aborts
// cleanly and becomes inactive.
func (d *DimensionDrag) Move(cursor geometry.Point2D) error {
	if !d.active {
		return ErrInactive
	}
	current, err := d.store.Dimension(d.index)
	if err != nil {
		d.active = false
		return err
	}
	patch, err := d.builder.Recalculate(current, cursor)
	if err != nil {
		return err
	}
	if err := d.store.UpdateDimensionGeometry(d.index, patch); err != nil {
		d.active = false
		return err
	}
	d.moved = true
	return nil
}

// Cancel ends the drag and restores the starting geometry. A drag that never
// moved leaves the store untouched.
func (d *DimensionDrag) Cancel() error {
	if !d.active {
		return nil
	}
	d.active = false
	if !d.moved {
		return nil
	}
	d.Log.WithFields(logrus.Fields{"index": d.index}).Debug("dimension drag cancelled")
	return d.store.UpdateDimensionGeometry(d.index, d.snapshot)
}

// Commit ends the drag keeping the last written geometry.
func (d *DimensionDrag) Commit() {
	d.active = false
}

// snapshotGeometry captures the drawn geometry of a dimension as a patch
// that restores it.
func snapshotGeometry(d dimension.Dimension) dimension.GeometryPatch {
	line := d.Line
	text := d.TextPosition
	rotation := d.TextRotation
	offset := d.Offset
	radius := d.ArcRadius
	extensions := make([]dimension.ExtensionLine, len(d.Extensions))
	copy(extensions, d.Extensions)
	return dimension.GeometryPatch{
		Line:         &line,
		Extensions:   extensions,
		TextPosition: &text,
		TextRotation: &rotation,
		Offset:       &offset,
		ArcRadius:    &radius,
	}
}

// ViewDrag moves a view on the sheet, keeping the point grabbed under the
// cursor. Cancel restores the position the view had when the drag began.
type ViewDrag struct {
	store  *document.Store
	id     string
	start  geometry.Point2D
	offset geometry.Point2D
	active bool
	moved  bool
}

// BeginViewDrag starts dragging the view grabbed at the given paper point.
func BeginViewDrag(store *document.Store, id string, grab geometry.Point2D) (*ViewDrag, error) {
	v, err := store.View(id)
	if err != nil {
		return nil, err
	}
	return &ViewDrag{
		store:  store,
		id:     id,
		start:  v.Position,
		offset: v.Position.Sub(grab),
		active: true,
	}, nil
}

// Move places the view so the grabbed point follows the cursor.
func (d *ViewDrag) Move(cursor geometry.Point2D) error {
	if !d.active {
		return ErrInactive
	}
	if err := d.store.SetViewPosition(d.id, cursor.Add(d.offset)); err != nil {
		d.active = false
		return err
	}
	d.moved = true
	return nil
}

// Cancel ends the drag and restores the starting position.
func (d *ViewDrag) Cancel() error {
	if !d.active {
		return nil
	}
	d.active = false
	if !d.moved {
		return nil
	}
	return d.store.SetViewPosition(d.id, d.start)
}

// Commit ends the drag keeping the last position.
func (d *ViewDrag) Commit() {
	d.active = false
}

// AnnotationDrag moves an annotation's text box, keeping the grabbed point
// under the cursor. The leader anchor stays put.
type AnnotationDrag struct {
	store  *document.Store
	id     string
	start  geometry.Point2D
	offset geometry.Point2D
	active bool
	moved  bool
}

// BeginAnnotationDrag starts dragging the annotation grabbed at the given
// paper point.
func BeginAnnotationDrag(store *document.Store, id string, grab geometry.Point2D) (*AnnotationDrag, error) {
	a, err := store.Annotation(id)
	if err != nil {
		return nil, err
	}
	return &AnnotationDrag{
		store:  store,
		id:     id,
		start:  a.Position,
		offset: a.Position.Sub(grab),
		active: true,
	}, nil
}

// Move places the annotation box so the grabbed point follows the cursor.
func (d *AnnotationDrag) Move(cursor geometry.Point2D) error {
	if !d.active {
		return ErrInactive
	}
	if err := d.store.SetAnnotationPosition(d.id, cursor.Add(d.offset)); err != nil {
		d.active = false
		return err
	}
	d.moved = true
	return nil
}

// Cancel ends the drag and restores the starting position.
func (d *AnnotationDrag) Cancel() error {
	if !d.active {
		return nil
	}
	d.active = false
	if !d.moved {
		return nil
	}
	return d.store.SetAnnotationPosition(d.id, d.start)
}

// Commit ends the drag keeping the last position.
func (d *AnnotationDrag) Commit() {
	d.active = false
}
