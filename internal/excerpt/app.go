// Package excerpt holds the application services behind the CLI and TUI.
package excerpt

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/colonyops/excerpt/internal/core/config"
	"github.com/colonyops/excerpt/internal/store/jsonfile"
)

// App is the central entry point for excerpt operations. Commands and the
// TUI consume App instead of cherry-picking raw dependencies.
type App struct {
	Library     *Library
	Annotations *AnnotationService
	Config      *config.Config
}

// NewApp constructs an App from explicit dependencies.
func NewApp(cfg *config.Config, log zerolog.Logger) *App {
	store := jsonfile.NewAnnotationStore(filepath.Join(cfg.DataDir, "annotations.json"))
	return &App{
		Library:     NewLibrary(cfg, log),
		Annotations: NewAnnotationService(store, log),
		Config:      cfg,
	}
}
