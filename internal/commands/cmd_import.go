package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/excerpt/internal/core/transcript"
	"github.com/colonyops/excerpt/internal/excerpt"
	"github.com/colonyops/excerpt/pkg/iojson"
)

type ImportCmd struct {
	flags  *Flags
	app    *excerpt.App
	reader iojson.FileReader[transcript.Session]

	jsonOutput bool
}

// NewImportCmd creates a new import command
func NewImportCmd(flags *Flags, app *excerpt.App) *ImportCmd {
	return &ImportCmd{flags: flags, app: app}
}

// Register adds the import command to the application
func (cmd *ImportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "import",
		Usage:     "Import a transcript session",
		UsageText: "excerpt import [-f session.json]",
		Description: `Reads a session JSON document from a file or stdin and writes it into the
sessions directory, where the TUI and ls will pick it up.`,
		Flags: []cli.Flag{
			cmd.reader.Flag(),
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print the import result as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ImportCmd) run(ctx context.Context, c *cli.Command) error {
	session, err := cmd.reader.Read()
	if err != nil {
		return err
	}

	path, err := cmd.app.Library.Import(ctx, &session)
	if err != nil {
		return fmt.Errorf("import session: %w", err)
	}

	if cmd.jsonOutput {
		return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, map[string]any{
			"session_id": session.ID,
			"quotes":     len(session.Quotes),
			"path":       path,
		})
	}

	fmt.Fprintf(c.Root().Writer, "Imported session %s (%d quotes) to %s\n", session.ID, len(session.Quotes), path)
	return nil
}
