// Package layout packs visible views into a grid on the sheet.
package layout

import (
	"math"

	"draft-engine/internal/document"
	"draft-engine/internal/viewport"
	"draft-engine/pkg/geometry"
)

// DefaultGap is the spacing between grid cells in millimeters.
const DefaultGap = 10.0

// The packed block sits up and left of the sheet center, leaving the
// lower-right corner free for the title block.
const (
	horizontalBias = 0.05
	verticalBias   = 0.08
)

// GridFor returns the (cols, rows) arrangement for n views. Small counts use
// a fixed lookup; larger counts fall back to a near-square grid.
func GridFor(n int) (cols, rows int) {
	switch {
	case n <= 1:
		return 1, 1
	case n == 2:
		return 2, 1
	case n <= 4:
		return 2, 2
	case n <= 6:
		return 3, 2
	}
	cols = int(math.Ceil(math.Sqrt(float64(n))))
	rows = (n + cols - 1) / cols
	return cols, rows
}

// LayoutViews computes a sheet position for every visible view so the views
// pack into a grid centered on the inner drawing area. Views are assigned to
// cells row-major in list order; each column is as wide as its widest view,
// each row as tall as its tallest, and every view is centered in its cell.
// Hidden views are skipped and absent from the result.
func LayoutViews(views []document.View, area viewport.DrawingArea, gap float64) map[string]geometry.Point2D {
	if gap < 0 {
		gap = 0
	}
	visible := make([]document.View, 0, len(views))
	for _, v := range views {
		if v.Visible {
			visible = append(visible, v)
		}
	}
	positions := make(map[string]geometry.Point2D, len(visible))
	if len(visible) == 0 {
		return positions
	}

	cols, rows := GridFor(len(visible))
	colWidths := make([]float64, cols)
	rowHeights := make([]float64, rows)
	for i, v := range visible {
		c, r := i%cols, i/cols
		if w := v.Bounds.Width(); w > colWidths[c] {
			colWidths[c] = w
		}
		if h := v.Bounds.Height(); h > rowHeights[r] {
			rowHeights[r] = h
		}
	}

	totalWidth := float64(cols-1) * gap
	for _, w := range colWidths {
		totalWidth += w
	}
	totalHeight := float64(rows-1) * gap
	for _, h := range rowHeights {
		totalHeight += h
	}

	blockLeft := -totalWidth/2 - horizontalBias*area.InnerWidth
	blockTop := totalHeight/2 + verticalBias*area.InnerHeight

	top := blockTop
	for r := 0; r < rows; r++ {
		left := blockLeft
		for c := 0; c < cols; c++ {
			i := r*cols + c
			if i >= len(visible) {
				break
			}
			v := visible[i]
			cellCenter := geometry.Point2D{
				X: left + colWidths[c]/2,
				Y: top - rowHeights[r]/2,
			}
			positions[v.ID] = cellCenter.Sub(v.Bounds.Center())
			left += colWidths[c] + gap
		}
		top -= rowHeights[r] + gap
	}
	return positions
}
