// Package interaction drives the interactive dimensioning flows: multi-point
// pick sequences that end in a committed dimension, and drag sessions that
// stream geometry patches into the document store and can be cancelled back
// to their starting state.
//
// Sessions are driven from a single event-dispatch goroutine; they are not
// safe for concurrent use. Cursor positions are paper-space points, already
// converted from screen coordinates by the caller's viewport transform.
package interaction

import (
	"errors"

	"github.com/sirupsen/logrus"

	"draft-engine/internal/dimension"
	"draft-engine/internal/document"
	"draft-engine/pkg/geometry"
)

// ErrInactive is returned by session methods called after the session ended.
var ErrInactive = errors.New("interaction: session is no longer active")

// DimensionPick collects the picked points for one dimension tool and
// commits the built dimension to the store when the pick completes. A
// degenerate pick keeps the selection so the user can choose a different
// point; Cancel discards the selection without any store write.
type DimensionPick struct {
	store   *document.Store
	builder *dimension.Builder
	kind    dimension.Kind
	viewID  string
	needed  int
	points  []geometry.Point2D

	Log logrus.FieldLogger
}

// NewDimensionPick starts a pick sequence for the given dimension kind. A
// non-empty viewID attaches the dimension to that view and must name an
// existing view; an empty viewID places the dimension in sheet coordinates.
func NewDimensionPick(store *document.Store, builder *dimension.Builder, kind dimension.Kind, viewID string) (*DimensionPick, error) {
	needed, ok := kind.PointsNeeded()
	if !ok {
		return nil, errors.New("interaction: unknown dimension kind " + string(kind))
	}
	if viewID != "" {
		if _, err := store.View(viewID); err != nil {
			return nil, err
		}
	}
	return &DimensionPick{
		store:   store,
		builder: builder,
		kind:    kind,
		viewID:  viewID,
		needed:  needed,
		Log:     logrus.StandardLogger(),
	}, nil
}

// Kind returns the dimension kind being picked.
func (p *DimensionPick) Kind() dimension.Kind {
	return p.kind
}

// Needed returns the total number of points the pick requires.
func (p *DimensionPick) Needed() int {
	return p.needed
}

// Picked returns the number of points collected so far.
func (p *DimensionPick) Picked() int {
	return len(p.points)
}

// Add records one picked point. When the pick is complete the dimension is
// built and committed; Add then returns its index and true, and the sequence
// resets for the next pick. A degenerate build rejects the offending point,
// keeps the earlier selection, and writes nothing. A failed commit (the view
// vanished mid-pick) discards the selection and writes nothing.
func (p *DimensionPick) Add(point geometry.Point2D) (int, bool, error) {
	p.points = append(p.points, point)
	if len(p.points) < p.needed {
		return 0, false, nil
	}

	d, err := p.builder.Build(p.kind, p.points)
	if err != nil {
		p.points = p.points[:len(p.points)-1]
		return 0, false, err
	}
	d.ViewID = p.viewID

	index, err := p.store.AddDimension(d)
	if err != nil {
		p.points = nil
		return 0, false, err
	}
	p.points = nil
	p.Log.WithFields(logrus.Fields{
		"kind":  p.kind,
		"index": index,
	}).Debug("dimension pick committed")
	return index, true, nil
}

// Cancel discards the collected points without touching the store. The
// sequence stays usable for a fresh pick.
func (p *DimensionPick) Cancel() {
	p.points = nil
}

// RadialFitPick collects rim points and commits a radial dimension around
// the circle fit through them. Unlike DimensionPick there is no fixed point
// count; the caller ends the pick with Finish once at least three points are
// in.
type RadialFitPick struct {
	store   *document.Store
	builder *dimension.Builder
	viewID  string
	points  []geometry.Point2D

	Log logrus.FieldLogger
}

// NewRadialFitPick starts a circle-fit pick sequence.
func NewRadialFitPick(store *document.Store, builder *dimension.Builder, viewID string) (*RadialFitPick, error) {
	if viewID != "" {
		if _, err := store.View(viewID); err != nil {
			return nil, err
		}
	}
	return &RadialFitPick{
		store:   store,
		builder: builder,
		viewID:  viewID,
		Log:     logrus.StandardLogger(),
	}, nil
}

// Add records one rim point.
func (p *RadialFitPick) Add(point geometry.Point2D) {
	p.points = append(p.points, point)
}

// Picked returns the number of rim points collected so far.
func (p *RadialFitPick) Picked() int {
	return len(p.points)
}

// Finish fits a circle through the collected points and commits the radial
// dimension, returning its index. A failed fit (too few points, collinear
// points) keeps the selection so more points can be added.
func (p *RadialFitPick) Finish() (int, error) {
	d, err := p.builder.BuildRadialFit(p.points)
	if err != nil {
		return 0, err
	}
	d.ViewID = p.viewID

	index, err := p.store.AddDimension(d)
	if err != nil {
		p.points = nil
		return 0, err
	}
	p.points = nil
	p.Log.WithFields(logrus.Fields{
		"index":  index,
		"radius": d.Value,
	}).Debug("radial fit committed")
	return index, nil
}

// Cancel discards the collected points without touching the store.
func (p *RadialFitPick) Cancel() {
	p.points = nil
}
