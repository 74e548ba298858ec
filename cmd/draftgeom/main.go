// Command draftgeom inspects and maintains drawing documents: sheet and view
// information, batch view auto-layout, and dimension geometry rebuilds after
// a style change.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"draft-engine/internal/config"
	"draft-engine/internal/document"
	"draft-engine/internal/version"
)

var (
	configPath string
	verbose    bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "draftgeom",
		Short:   "Inspect and maintain technical drawing documents",
		Version: version.String(),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "engine config TOML file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.AddCommand(newInfoCmd(), newLayoutCmd(), newQueryCmd(), newRebuildCmd())
	return root
}

// loadEngineConfig returns the built-in defaults unless --config names a file.
func loadEngineConfig() (config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

// openDrawing loads a drawing document into a fresh store.
func openDrawing(path string) (*document.Store, error) {
	store := document.NewStore(nil)
	if err := store.Load(path); err != nil {
		return nil, err
	}
	return store, nil
}
