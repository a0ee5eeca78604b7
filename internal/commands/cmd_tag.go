package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/excerpt/internal/excerpt"
)

type TagCmd struct {
	flags *Flags
	app   *excerpt.App

	tag    string
	remove bool
}

// NewTagCmd creates a new tag command
func NewTagCmd(flags *Flags, app *excerpt.App) *TagCmd {
	return &TagCmd{flags: flags, app: app}
}

// Register adds the tag command to the application
func (cmd *TagCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "tag",
		Usage:     "Add or remove a tag on a quote",
		UsageText: "excerpt tag <quote-id> [--tag name] [--remove]",
		Description: `Tags the quote with the given ID. Without --tag, an interactive prompt
asks for the tag name.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "tag",
				Aliases:     []string{"t"},
				Usage:       "tag value (prompts when omitted)",
				Destination: &cmd.tag,
			},
			&cli.BoolFlag{
				Name:        "remove",
				Usage:       "remove the tag instead of adding it",
				Destination: &cmd.remove,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *TagCmd) run(ctx context.Context, c *cli.Command) error {
	quoteID := c.Args().First()
	if quoteID == "" {
		return fmt.Errorf("quote id is required. Run 'excerpt ls' to find one")
	}

	_, quote, err := cmd.app.Library.FindQuote(ctx, quoteID)
	if err != nil {
		return err
	}

	resolved, err := cmd.app.Annotations.Resolve(ctx, *quote)
	if err != nil {
		return fmt.Errorf("resolve annotations: %w", err)
	}

	if cmd.tag == "" {
		if err := cmd.promptTag(resolved.DisplayText(), resolved.Tags); err != nil {
			return err
		}
	}

	if cmd.remove {
		if err := cmd.app.Annotations.RemoveTag(ctx, *quote, cmd.tag); err != nil {
			return fmt.Errorf("remove tag: %w", err)
		}
		fmt.Fprintf(c.Root().Writer, "Removed tag %q from %s\n", cmd.tag, quoteID)
		return nil
	}

	if err := cmd.app.Annotations.AddTag(ctx, *quote, cmd.tag); err != nil {
		return fmt.Errorf("add tag: %w", err)
	}
	fmt.Fprintf(c.Root().Writer, "Tagged %s with %q\n", quoteID, cmd.tag)
	return nil
}

func (cmd *TagCmd) promptTag(quoteText string, existing []string) error {
	desc := quoteText
	if len(desc) > 100 {
		desc = desc[:100] + "…"
	}
	if len(existing) > 0 {
		desc += "\nCurrent tags: " + strings.Join(existing, ", ")
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Tag").
				Description(desc).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("tag is required")
					}
					return nil
				}).
				Value(&cmd.tag),
		),
	).Run()
}
