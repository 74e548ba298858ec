package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"draft-engine/internal/document"
	"draft-engine/internal/picking"
	"draft-engine/internal/snap"
	"draft-engine/internal/viewport"
	"draft-engine/pkg/geometry"
)

func newQueryCmd() *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "query <drawing.json>",
		Short: "Report what a paper-space point would pick and snap to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			point, err := parsePaperPoint(at)
			if err != nil {
				return err
			}
			cfg, err := loadEngineConfig()
			if err != nil {
				return err
			}
			store, err := openDrawing(args[0])
			if err != nil {
				return err
			}

			paperW, paperH := store.Sheet().PaperDimensions()
			// The paper doubles as the canvas, so the pixel tolerances
			// convert at the fit scale with no zoom.
			area, err := viewport.ComputeDrawingArea(paperW, paperH, paperW, paperH, 0)
			if err != nil {
				return err
			}
			pickTol := viewport.PaperTolerance(cfg.PickPixelTolerance, area.Scale, 1)
			snapTol := viewport.PaperTolerance(cfg.SnapPixelTolerance, area.Scale, 1)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "query (%g, %g), pick tolerance %.2f mm\n", point.X, point.Y, pickTol)

			views := store.Views()
			dims := store.Dimensions()
			if index, ok := picking.PickDimension(dims, views, point, pickTol); ok {
				d := dims[index]
				fmt.Fprintf(out, "dimension:  [%d] %s on view %s\n", index, d.Kind, d.ViewID)
			} else {
				fmt.Fprintln(out, "dimension:  none")
			}
			if id, ok := picking.PickAnnotation(store.Annotations(), views, point, pickTol); ok {
				fmt.Fprintf(out, "annotation: %s\n", id)
			} else {
				fmt.Fprintln(out, "annotation: none")
			}

			viewID, ok := picking.PickView(views, point, pickTol)
			if !ok {
				fmt.Fprintln(out, "view:       none")
				return nil
			}
			var view document.View
			for _, v := range views {
				if v.ID == viewID {
					view = v
					break
				}
			}
			fmt.Fprintf(out, "view:       %s\n", viewID)

			// Snap targets come from the hit view's visible edges, in view
			// local coordinates.
			engine := snap.NewEngine()
			engine.SetSegments(visibleSegments(view))
			engine.SetCenters([]geometry.Point2D{view.Bounds.Center()})
			local := point.Sub(view.Position)
			if target, hit := engine.Nearest(local, snapTol, cfg.Snap); hit {
				sheet := target.Position.Add(view.Position)
				fmt.Fprintf(out, "snap:       %s at (%.3f, %.3f)\n", target.Category, sheet.X, sheet.Y)
			} else {
				fmt.Fprintln(out, "snap:       none")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "paper point to query as x,y in millimeters")
	return cmd
}

// parsePaperPoint reads an "x,y" pair in paper millimeters.
func parsePaperPoint(s string) (geometry.Point2D, error) {
	xs, ys, found := strings.Cut(s, ",")
	if !found {
		return geometry.Point2D{}, fmt.Errorf("query: point must be given as x,y, got %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return geometry.Point2D{}, fmt.Errorf("query: bad x coordinate %q: %w", xs, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return geometry.Point2D{}, fmt.Errorf("query: bad y coordinate %q: %w", ys, err)
	}
	return geometry.Point2D{X: x, Y: y}, nil
}

// visibleSegments keeps only edges whose line type draws as visible
// geometry; hidden and construction edges never attract the cursor.
func visibleSegments(v document.View) []geometry.Segment {
	segments := make([]geometry.Segment, 0, len(v.Lines))
	for _, l := range v.Lines {
		if !l.Type.IsVisible() {
			continue
		}
		segments = append(segments, l.Segment())
	}
	return segments
}
