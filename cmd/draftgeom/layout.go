package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"draft-engine/internal/layout"
	"draft-engine/internal/viewport"
)

func newLayoutCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "layout <drawing.json>",
		Short: "Auto-arrange the drawing's visible views into a grid",
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

			paperW, paperH := store.Sheet().PaperDimensions()
			// Only the inner drawing area matters for the layout; the
			// canvas-dependent scale is unused, so the paper doubles as the
			// canvas here.
			area, err := viewport.ComputeDrawingArea(paperW, paperH, paperW, paperH, 0)
			if err != nil {
				return err
			}

			positions := layout.LayoutViews(store.Views(), area, cfg.LayoutGap)
			for id, position := range positions {
				if err := store.SetViewPosition(id, position); err != nil {
					return err
				}
			}

			if output == "" {
				output = args[0]
			}
			if err := store.Save(output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "placed %d views, wrote %s\n", len(positions), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the drawing to this path instead of in place")
	return cmd
}
