package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "draftgeom.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadPartialOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
SnapPixelTolerance = 12.0
LayoutGap = 15.0

[Dimension]
Offset = 8.0
Precision = 3
ShowUnit = true
Unit = "cm"

[Snap]
Grid = true
GridSpacing = 5.0
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.SnapPixelTolerance != 12 {
		t.Errorf("SnapPixelTolerance = %g, want 12", cfg.SnapPixelTolerance)
	}
	if cfg.LayoutGap != 15 {
		t.Errorf("LayoutGap = %g, want 15", cfg.LayoutGap)
	}
	if cfg.Dimension.Offset != 8 || cfg.Dimension.Precision != 3 || !cfg.Dimension.ShowUnit || cfg.Dimension.Unit != "cm" {
		t.Errorf("Dimension overrides not applied: %+v", cfg.Dimension)
	}
	if !cfg.Snap.Grid || cfg.Snap.GridSpacing != 5 {
		t.Errorf("Snap overrides not applied: %+v", cfg.Snap)
	}

	// Keys the file does not name keep their defaults.
	def := Default()
	if cfg.PickPixelTolerance != def.PickPixelTolerance {
		t.Errorf("PickPixelTolerance = %g, want default %g", cfg.PickPixelTolerance, def.PickPixelTolerance)
	}
	if cfg.Dimension.TextHeight != def.Dimension.TextHeight {
		t.Errorf("Dimension.TextHeight = %g, want default %g", cfg.Dimension.TextHeight, def.Dimension.TextHeight)
	}
	if cfg.Snap.Vertices != def.Snap.Vertices {
		t.Errorf("Snap.Vertices = %v, want default %v", cfg.Snap.Vertices, def.Snap.Vertices)
	}
}

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() error: %v", err)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"negative tolerance", "SnapPixelTolerance = -1.0"},
		{"negative precision", "[Dimension]\nPrecision = -2"},
		{"inverted radius clamp", "[Dimension]\nMinArcRadius = 50.0\nMaxArcRadius = 5.0"},
		{"grid without spacing", "[Snap]\nGrid = true\nGridSpacing = 0.0"},
		{"malformed toml", "SnapPixelTolerance = = 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.body)
			if _, err := Load(path); err == nil {
				t.Fatal("Load() succeeded on invalid config")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("Load() succeeded on missing file")
	}
}
