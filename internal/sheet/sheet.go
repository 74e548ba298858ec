// Package sheet provides drawing-sheet configuration: paper sizes,
// orientation, scale, units, and line classification.
package sheet

import (
	"fmt"
)

// Orientation defines how the paper is turned.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// ProjectionAngle selects the multiview projection convention.
type ProjectionAngle string

const (
	FirstAngle ProjectionAngle = "first_angle" // European standard
	ThirdAngle ProjectionAngle = "third_angle" // American standard
)

// TitleBlockStyle selects the title block drawn in the sheet corner.
type TitleBlockStyle string

const (
	TitleBlockSimple   TitleBlockStyle = "simple"
	TitleBlockStandard TitleBlockStyle = "standard"
	TitleBlockNone     TitleBlockStyle = "none"
)

// PaperSize names an ISO A-series sheet, or Custom for explicit dimensions.
type PaperSize string

const (
	PaperA0     PaperSize = "A0"
	PaperA1     PaperSize = "A1"
	PaperA2     PaperSize = "A2"
	PaperA3     PaperSize = "A3"
	PaperA4     PaperSize = "A4"
	PaperCustom PaperSize = "custom"
)

// StandardSizes lists the built-in paper sizes in descending area order.
var StandardSizes = []PaperSize{PaperA0, PaperA1, PaperA2, PaperA3, PaperA4}

// Dimensions returns the portrait width and height of the paper in millimeters.
// Custom returns zeros; use Config.PaperDimensions for custom sheets.
func (s PaperSize) Dimensions() (width, height float64) {
	switch s {
	case PaperA0:
		return 841, 1189
	case PaperA1:
		return 594, 841
	case PaperA2:
		return 420, 594
	case PaperA3:
		return 297, 420
	case PaperA4:
		return 210, 297
	default:
		return 0, 0
	}
}

// Label returns a human-readable description of the size.
func (s PaperSize) Label() string {
	if s == PaperCustom {
		return "Custom"
	}
	w, h := s.Dimensions()
	return fmt.Sprintf("ISO %s (%.0f x %.0f mm)", string(s), w, h)
}

// Config describes one drawing sheet.
type Config struct {
	Orientation     Orientation     `json:"orientation"`
	Size            PaperSize       `json:"size"`
	CustomWidth     float64         `json:"custom_width,omitempty"`
	CustomHeight    float64         `json:"custom_height,omitempty"`
	Scale           float64         `json:"scale"` // view-to-sheet scale, e.g. 0.25 = 1:4
	ProjectionAngle ProjectionAngle `json:"projection_angle"`
	Unit            LengthUnit      `json:"unit"`
	TitleBlock      TitleBlockStyle `json:"title_block"`

	// Per-line-type stroke width overrides in millimeters.
	LineWidths map[LineType]float64 `json:"line_widths,omitempty"`
}

// DefaultConfig returns the sheet used for new drawings:
// A3 landscape at 1:4 with first-angle projection, model units in meters.
func DefaultConfig() Config {
	return Config{
		Orientation:     Landscape,
		Size:            PaperA3,
		Scale:           0.25,
		ProjectionAngle: FirstAngle,
		Unit:            Meter,
		TitleBlock:      TitleBlockSimple,
	}
}

// PaperDimensions returns the sheet width and height in millimeters with
// orientation applied.
func (c Config) PaperDimensions() (width, height float64) {
	w, h := c.Size.Dimensions()
	if c.Size == PaperCustom {
		w, h = c.CustomWidth, c.CustomHeight
	}
	if c.Orientation == Landscape {
		return max(w, h), min(w, h)
	}
	return min(w, h), max(w, h)
}

// StrokeWidthFor returns the stroke width for a line type, honoring any
// per-sheet override.
func (c Config) StrokeWidthFor(lt LineType) float64 {
	if w, ok := c.LineWidths[lt]; ok {
		return w
	}
	return lt.StrokeWidth()
}

// Validate checks the configuration for values the engine cannot work with.
func (c Config) Validate() error {
	switch c.Orientation {
	case Portrait, Landscape:
	default:
		return fmt.Errorf("unknown orientation %q", c.Orientation)
	}
	switch c.Size {
	case PaperA0, PaperA1, PaperA2, PaperA3, PaperA4:
	case PaperCustom:
		if c.CustomWidth <= 0 || c.CustomHeight <= 0 {
			return fmt.Errorf("custom paper dimensions must be positive, got %gx%g", c.CustomWidth, c.CustomHeight)
		}
	default:
		return fmt.Errorf("unknown paper size %q", c.Size)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("sheet scale must be positive, got %g", c.Scale)
	}
	switch c.ProjectionAngle {
	case FirstAngle, ThirdAngle:
	default:
		return fmt.Errorf("unknown projection angle %q", c.ProjectionAngle)
	}
	if c.Unit.ToMillimeters() == 0 {
		return fmt.Errorf("unknown unit %q", c.Unit)
	}
	for lt, w := range c.LineWidths {
		if w <= 0 {
			return fmt.Errorf("line width override for %q must be positive, got %g", lt, w)
		}
	}
	return nil
}
