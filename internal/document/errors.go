package document

import "fmt"

// ViewNotFoundError reports an operation addressed to a view ID that is not
// in the drawing.
type ViewNotFoundError struct {
	ID string
}

func (e *ViewNotFoundError) Error() string {
	return fmt.Sprintf("view %q not found", e.ID)
}

// AnnotationNotFoundError reports an operation addressed to an annotation ID
// that is not in the drawing.
type AnnotationNotFoundError struct {
	ID string
}

func (e *AnnotationNotFoundError) Error() string {
	return fmt.Sprintf("annotation %q not found", e.ID)
}

// DimensionIndexOutOfRangeError reports a dimension index outside the
// drawing's dimension list.
type DimensionIndexOutOfRangeError struct {
	Index int
	Count int
}

func (e *DimensionIndexOutOfRangeError) Error() string {
	return fmt.Sprintf("dimension index %d out of range (%d dimensions)", e.Index, e.Count)
}
