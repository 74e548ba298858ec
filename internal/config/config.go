// Package config loads the tunable engine defaults: dimension style, snap
// behavior, and the screen-pixel tolerances the interactive queries convert
// through the viewport scale.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"draft-engine/internal/dimension"
	"draft-engine/internal/layout"
	"draft-engine/internal/snap"
)

// Config collects the engine defaults. TOML keys match the field names.
type Config struct {
	// Dimension is the default dimension style.
	Dimension dimension.Config
	// Snap enables snap categories and sets the grid spacing.
	Snap snap.Config

	// SnapPixelTolerance is the snap catch radius in screen pixels.
	SnapPixelTolerance float64
	// PickPixelTolerance is the hit-test catch radius in screen pixels.
	PickPixelTolerance float64
	// LayoutGap is the auto-layout cell spacing in millimeters.
	LayoutGap float64
	// CanvasMargin is the sheet-fit margin in logical pixels.
	CanvasMargin float64
}

// Default returns the built-in engine defaults.
func Default() Config {
	return Config{
		Dimension:          dimension.DefaultConfig(),
		Snap:               snap.DefaultConfig(),
		SnapPixelTolerance: 8,
		PickPixelTolerance: 6,
		LayoutGap:          layout.DefaultGap,
		CanvasMargin:       20,
	}
}

// Load reads a TOML file over the defaults, so a partial file overrides only
// the keys it names.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the engine cannot work with.
func (c Config) Validate() error {
	if c.SnapPixelTolerance <= 0 {
		return fmt.Errorf("config: SnapPixelTolerance must be positive, got %g", c.SnapPixelTolerance)
	}
	if c.PickPixelTolerance <= 0 {
		return fmt.Errorf("config: PickPixelTolerance must be positive, got %g", c.PickPixelTolerance)
	}
	if c.LayoutGap < 0 {
		return fmt.Errorf("config: LayoutGap must not be negative, got %g", c.LayoutGap)
	}
	if c.CanvasMargin < 0 {
		return fmt.Errorf("config: CanvasMargin must not be negative, got %g", c.CanvasMargin)
	}
	if c.Dimension.Precision < 0 {
		return fmt.Errorf("config: Dimension.Precision must not be negative, got %d", c.Dimension.Precision)
	}
	if c.Dimension.MinArcRadius <= 0 || c.Dimension.MinArcRadius > c.Dimension.MaxArcRadius {
		return fmt.Errorf("config: arc radius clamp [%g, %g] is not a valid range",
			c.Dimension.MinArcRadius, c.Dimension.MaxArcRadius)
	}
	if c.Snap.Grid && c.Snap.GridSpacing <= 0 {
		return fmt.Errorf("config: Snap.GridSpacing must be positive when grid snapping is on, got %g", c.Snap.GridSpacing)
	}
	return nil
}
