package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"draft-engine/internal/dimension"
)

func newRebuildCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "rebuild <drawing.json>",
		Short: "Rebuild dimension geometry from measured points with the current style",
		Long: `Rebuild reruns the dimension builder for every stored dimension, deriving
fresh dimension lines, extension lines, and text anchors from the measured
points and the current style config. Measured values and points are never
changed. Use it after changing offsets, arrow sizes, or text heights in the
engine config.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadEngineConfig()
			if err != nil {
				return err
			}
			store, err := openDrawing(args[0])
			if err != nil {
				return err
			}

			builder := dimension.NewBuilder(cfg.Dimension)
			dims := store.Dimensions()
			for i, d := range dims {
				patch, err := builder.RebuildPatch(d)
				if err != nil {
					return fmt.Errorf("dimension %d: %w", i, err)
				}
				if err := store.UpdateDimensionGeometry(i, patch); err != nil {
					return err
				}
			}

			if output == "" {
				output = args[0]
			}
			if err := store.Save(output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rebuilt %d dimensions, wrote %s\n", len(dims), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the drawing to this path instead of in place")
	return cmd
}
