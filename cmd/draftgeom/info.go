package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"draft-engine/internal/dimension"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <drawing.json>",
		Short: "Print a drawing's sheet, views, dimensions, and annotations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadEngineConfig()
			if err != nil {
				return err
			}
			store, err := openDrawing(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			sheetCfg := store.Sheet()
			paperW, paperH := sheetCfg.PaperDimensions()
			fmt.Fprintf(out, "Drawing: %s\n", store.Name())
			fmt.Fprintf(out, "Sheet:   %s %s, %.0f x %.0f mm, scale %g, unit %s\n",
				sheetCfg.Size, sheetCfg.Orientation, paperW, paperH, sheetCfg.Scale, sheetCfg.Unit)

			views := store.Views()
			isometric := make(map[string]bool, len(views))
			fmt.Fprintf(out, "Views:   %d\n", len(views))
			for _, v := range views {
				isometric[v.ID] = v.Projection.IsIsometric()
				label := v.Label
				if label == "" {
					label = v.ID
				}
				visibility := "visible"
				if !v.Visible {
					visibility = "hidden"
				}
				fmt.Fprintf(out, "  %-24s %-13s at (%.1f, %.1f)  %d lines  %s\n",
					label, v.Projection, v.Position.X, v.Position.Y, len(v.Lines), visibility)
			}

			dims := store.Dimensions()
			unitFactor := sheetCfg.Unit.ToMillimeters()
			fmt.Fprintf(out, "Dimensions: %d\n", len(dims))
			for i, d := range dims {
				display := dimension.DisplayValue(d, sheetCfg.Scale, unitFactor, isometric[d.ViewID])
				fmt.Fprintf(out, "  [%d] %-10s %s\n", i, d.Kind, d.DisplayLabel(cfg.Dimension, display))
			}

			annotations := store.Annotations()
			fmt.Fprintf(out, "Annotations: %d\n", len(annotations))
			for _, a := range annotations {
				fmt.Fprintf(out, "  %-24s %q\n", a.ID, a.Text)
			}
			return nil
		},
	}
}
