package document

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"draft-engine/internal/dimension"
	"draft-engine/internal/sheet"
	"draft-engine/pkg/geometry"
)

// EventType identifies document change events.
type EventType int

const (
	EventSheetChanged EventType = iota
	EventViewsChanged
	EventDimensionsChanged
	EventAnnotationsChanged
	EventDrawingLoaded
	EventDrawingSaved
	EventModified
)

// EventListener is called after a change has been committed to the drawing.
type EventListener func(data interface{})

// Store owns a drawing and serializes access to it. All reads return copies
// of the stored values; all writes go through explicit update calls that
// emit change events after committing.
type Store struct {
	mu      sync.RWMutex
	drawing *Drawing

	modified  bool
	listeners map[EventType][]EventListener

	Log logrus.FieldLogger
}

// NewStore wraps a drawing. A nil drawing starts an empty untitled one.
func NewStore(d *Drawing) *Store {
	if d == nil {
		d = NewDrawing("untitled")
	}
	return &Store{
		drawing:   d,
		listeners: make(map[EventType][]EventListener),
		Log:       logrus.StandardLogger(),
	}
}

// On registers a listener for the given event type.
func (s *Store) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit calls every listener registered for the event type.
func (s *Store) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Modified reports whether the drawing changed since the last save or load.
func (s *Store) Modified() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modified
}

// touch must be called with the write lock held.
func (s *Store) touch() {
	s.drawing.Modified = time.Now().UTC()
	s.modified = true
}

// Sheet returns the current sheet configuration.
func (s *Store) Sheet() sheet.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.drawing.Sheet
}

// SetSheet replaces the sheet configuration after validating it.
func (s *Store) SetSheet(cfg sheet.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.drawing.Sheet = cfg
	s.touch()
	s.mu.Unlock()

	s.Emit(EventSheetChanged, cfg)
	s.Emit(EventModified, nil)
	return nil
}

// Name returns the drawing name.
func (s *Store) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.drawing.Name
}

// Views returns a copy of the view list. Callers must not mutate the views'
// line slices.
func (s *Store) Views() []View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]View, len(s.drawing.Views))
	copy(out, s.drawing.Views)
	return out
}

// View returns the view with the given ID.
func (s *Store) View(id string) (View, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.drawing.Views {
		if v.ID == id {
			return v, nil
		}
	}
	return View{}, &ViewNotFoundError{ID: id}
}

// AddView appends a view, assigning an ID if it has none.
func (s *Store) AddView(v View) string {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}

	s.mu.Lock()
	s.drawing.Views = append(s.drawing.Views, v)
	s.touch()
	s.mu.Unlock()

	s.Log.WithFields(logrus.Fields{
		"view":       v.ID,
		"projection": v.Projection,
	}).Debug("view added")
	s.Emit(EventViewsChanged, v.ID)
	s.Emit(EventModified, nil)
	return v.ID
}

// SetViewPosition moves a view on the sheet.
func (s *Store) SetViewPosition(id string, position geometry.Point2D) error {
	s.mu.Lock()
	idx := s.viewIndex(id)
	if idx < 0 {
		s.mu.Unlock()
		return &ViewNotFoundError{ID: id}
	}
	s.drawing.Views[idx].Position = position
	s.touch()
	s.mu.Unlock()

	s.Emit(EventViewsChanged, id)
	s.Emit(EventModified, nil)
	return nil
}

// SetViewVisible shows or hides a view.
func (s *Store) SetViewVisible(id string, visible bool) error {
	s.mu.Lock()
	idx := s.viewIndex(id)
	if idx < 0 {
		s.mu.Unlock()
		return &ViewNotFoundError{ID: id}
	}
	s.drawing.Views[idx].Visible = visible
	s.touch()
	s.mu.Unlock()

	s.Emit(EventViewsChanged, id)
	s.Emit(EventModified, nil)
	return nil
}

// RemoveView deletes a view along with the dimensions and annotations
// attached to it, which are meaningless without their view's coordinate
// frame.
func (s *Store) RemoveView(id string) error {
	s.mu.Lock()
	idx := s.viewIndex(id)
	if idx < 0 {
		s.mu.Unlock()
		return &ViewNotFoundError{ID: id}
	}
	s.drawing.Views = append(s.drawing.Views[:idx], s.drawing.Views[idx+1:]...)

	dims := s.drawing.Dimensions[:0]
	for _, d := range s.drawing.Dimensions {
		if d.ViewID != id {
			dims = append(dims, d)
		}
	}
	s.drawing.Dimensions = dims

	annotations := s.drawing.Annotations[:0]
	for _, a := range s.drawing.Annotations {
		if a.ViewID != id {
			annotations = append(annotations, a)
		}
	}
	s.drawing.Annotations = annotations
	s.touch()
	s.mu.Unlock()

	s.Log.WithFields(logrus.Fields{"view": id}).Debug("view removed")
	s.Emit(EventViewsChanged, id)
	s.Emit(EventDimensionsChanged, nil)
	s.Emit(EventAnnotationsChanged, nil)
	s.Emit(EventModified, nil)
	return nil
}

// Dimensions returns a copy of the dimension list.
func (s *Store) Dimensions() []dimension.Dimension {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]dimension.Dimension, len(s.drawing.Dimensions))
	copy(out, s.drawing.Dimensions)
	return out
}

// Dimension returns the dimension at the given index.
func (s *Store) Dimension(index int) (dimension.Dimension, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.drawing.Dimensions) {
		return dimension.Dimension{}, &DimensionIndexOutOfRangeError{Index: index, Count: len(s.drawing.Dimensions)}
	}
	return s.drawing.Dimensions[index], nil
}

// AddDimension appends a dimension and returns its index. A dimension
// attached to a view requires that view to exist.
func (s *Store) AddDimension(d dimension.Dimension) (int, error) {
	s.mu.Lock()
	if d.ViewID != "" && s.viewIndex(d.ViewID) < 0 {
		s.mu.Unlock()
		return 0, &ViewNotFoundError{ID: d.ViewID}
	}
	s.drawing.Dimensions = append(s.drawing.Dimensions, d)
	index := len(s.drawing.Dimensions) - 1
	s.touch()
	s.mu.Unlock()

	s.Log.WithFields(logrus.Fields{
		"index": index,
		"kind":  d.Kind,
		"value": d.Value,
	}).Debug("dimension added")
	s.Emit(EventDimensionsChanged, index)
	s.Emit(EventModified, nil)
	return index, nil
}

// UpdateDimensionGeometry applies a recalculation patch to the dimension at
// the given index. The patch never changes the measured value or points.
func (s *Store) UpdateDimensionGeometry(index int, patch dimension.GeometryPatch) error {
	s.mu.Lock()
	if index < 0 || index >= len(s.drawing.Dimensions) {
		count := len(s.drawing.Dimensions)
		s.mu.Unlock()
		return &DimensionIndexOutOfRangeError{Index: index, Count: count}
	}
	patch.Apply(&s.drawing.Dimensions[index])
	s.touch()
	s.mu.Unlock()

	s.Emit(EventDimensionsChanged, index)
	s.Emit(EventModified, nil)
	return nil
}

// SetDimensionLabelOverride replaces the displayed text of the dimension at
// the given index; an empty override restores the computed label.
func (s *Store) SetDimensionLabelOverride(index int, override string) error {
	s.mu.Lock()
	if index < 0 || index >= len(s.drawing.Dimensions) {
		count := len(s.drawing.Dimensions)
		s.mu.Unlock()
		return &DimensionIndexOutOfRangeError{Index: index, Count: count}
	}
	s.drawing.Dimensions[index].LabelOverride = override
	s.touch()
	s.mu.Unlock()

	s.Emit(EventDimensionsChanged, index)
	s.Emit(EventModified, nil)
	return nil
}

// RemoveDimension deletes the dimension at the given index.
func (s *Store) RemoveDimension(index int) error {
	s.mu.Lock()
	if index < 0 || index >= len(s.drawing.Dimensions) {
		count := len(s.drawing.Dimensions)
		s.mu.Unlock()
		return &DimensionIndexOutOfRangeError{Index: index, Count: count}
	}
	s.drawing.Dimensions = append(s.drawing.Dimensions[:index], s.drawing.Dimensions[index+1:]...)
	s.touch()
	s.mu.Unlock()

	s.Log.WithFields(logrus.Fields{"index": index}).Debug("dimension removed")
	s.Emit(EventDimensionsChanged, index)
	s.Emit(EventModified, nil)
	return nil
}

// Annotations returns a copy of the annotation list.
func (s *Store) Annotations() []Annotation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Annotation, len(s.drawing.Annotations))
	copy(out, s.drawing.Annotations)
	return out
}

// Annotation returns the annotation with the given ID.
func (s *Store) Annotation(id string) (Annotation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.drawing.Annotations {
		if a.ID == id {
			return a, nil
		}
	}
	return Annotation{}, &AnnotationNotFoundError{ID: id}
}

// AddAnnotation appends an annotation, assigning an ID if it has none. An
// annotation attached to a view requires that view to exist.
func (s *Store) AddAnnotation(a Annotation) (string, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	s.mu.Lock()
	if a.ViewID != "" && s.viewIndex(a.ViewID) < 0 {
		s.mu.Unlock()
		return "", &ViewNotFoundError{ID: a.ViewID}
	}
	s.drawing.Annotations = append(s.drawing.Annotations, a)
	s.touch()
	s.mu.Unlock()

	s.Emit(EventAnnotationsChanged, a.ID)
	s.Emit(EventModified, nil)
	return a.ID, nil
}

// SetAnnotationPosition moves an annotation's text box.
func (s *Store) SetAnnotationPosition(id string, position geometry.Point2D) error {
	return s.updateAnnotation(id, func(a *Annotation) {
		a.Position = position
	})
}

// SetAnnotationAnchor moves an annotation's leader target.
func (s *Store) SetAnnotationAnchor(id string, anchor geometry.Point2D) error {
	return s.updateAnnotation(id, func(a *Annotation) {
		a.AnchorPoint = anchor
	})
}

// RemoveAnnotation deletes the annotation with the given ID.
func (s *Store) RemoveAnnotation(id string) error {
	s.mu.Lock()
	idx := -1
	for i, a := range s.drawing.Annotations {
		if a.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return &AnnotationNotFoundError{ID: id}
	}
	s.drawing.Annotations = append(s.drawing.Annotations[:idx], s.drawing.Annotations[idx+1:]...)
	s.touch()
	s.mu.Unlock()

	s.Emit(EventAnnotationsChanged, id)
	s.Emit(EventModified, nil)
	return nil
}

func (s *Store) updateAnnotation(id string, update func(*Annotation)) error {
	s.mu.Lock()
	idx := -1
	for i, a := range s.drawing.Annotations {
		if a.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return &AnnotationNotFoundError{ID: id}
	}
	update(&s.drawing.Annotations[idx])
	s.touch()
	s.mu.Unlock()

	s.Emit(EventAnnotationsChanged, id)
	s.Emit(EventModified, nil)
	return nil
}

// viewIndex must be called with the lock held.
func (s *Store) viewIndex(id string) int {
	for i, v := range s.drawing.Views {
		if v.ID == id {
			return i
		}
	}
	return -1
}
