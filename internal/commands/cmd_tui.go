package commands

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/excerpt/internal/excerpt"
	"github.com/colonyops/excerpt/internal/tui"
)

type TuiCmd struct {
	flags *Flags
	app   *excerpt.App
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *excerpt.App) *TuiCmd {
	return &TuiCmd{
		flags: flags,
		app:   app,
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	var warnings []string
	if _, err := os.Stat(cmd.app.Config.SessionsDir()); os.IsNotExist(err) {
		warnings = append(warnings, "No sessions directory yet. Run 'excerpt import' to add a transcript.")
	}

	model := tui.NewModel(cmd.app, tui.Options{Warnings: warnings})
	p := tea.NewProgram(model, tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
