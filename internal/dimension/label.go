package dimension

import (
	"math"
	"strconv"
	"strings"
)

// isometricForeshortening is the factor an axis-aligned edge is drawn at in
// an isometric projection, sqrt(2/3).
var isometricForeshortening = math.Sqrt(2.0 / 3.0)

// DisplayValue converts a measured paper-space value into the value shown to
// the user. Linear values are divided by the drawing scale and the sheet
// unit's millimeter factor; values measured on an isometric view are further
// corrected for foreshortening. Angular values are already in degrees and
// pass through unchanged.
func DisplayValue(d Dimension, drawingScale, unitFactor float64, isometric bool) float64 {
	if d.Kind == KindAngular {
		return d.Value
	}
	if drawingScale <= 0 {
		drawingScale = 1
	}
	if unitFactor <= 0 {
		unitFactor = 1
	}
	v := d.Value / (drawingScale * unitFactor)
	if isometric {
		v /= isometricForeshortening
	}
	return v
}

// Label formats the dimension's own value for display. An explicit
// LabelOverride wins over everything.
func (d Dimension) Label(cfg Config) string {
	return d.DisplayLabel(cfg, d.Value)
}

// DisplayLabel formats an already-converted display value with the
// dimension's prefix and suffix and the configured precision and unit.
// Angular dimensions show a degree sign instead of a length unit.
func (d Dimension) DisplayLabel(cfg Config, value float64) string {
	if d.LabelOverride != "" {
		return d.LabelOverride
	}

	var sb strings.Builder
	sb.WriteString(d.Prefix)
	sb.WriteString(strconv.FormatFloat(value, 'f', cfg.Precision, 64))
	if d.Kind == KindAngular {
		sb.WriteString("°")
	} else if cfg.ShowUnit && cfg.Unit != "" {
		sb.WriteString(" ")
		sb.WriteString(cfg.Unit)
	}
	if d.Suffix != "" {
		sb.WriteString(" ")
		sb.WriteString(d.Suffix)
	}
	return sb.String()
}
