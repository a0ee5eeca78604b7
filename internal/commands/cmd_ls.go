package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/excerpt/internal/core/transcript"
	"github.com/colonyops/excerpt/internal/excerpt"
	"github.com/colonyops/excerpt/pkg/iojson"
)

type LsCmd struct {
	flags *Flags
	app   *excerpt.App

	// flags
	jsonOutput  bool
	starredOnly bool
	session     string
}

// quoteInfo is the JSON shape emitted per quote in --json mode.
type quoteInfo struct {
	ID           string   `json:"id"`
	SessionID    string   `json:"session_id"`
	Speaker      string   `json:"speaker"`
	SegmentIndex int      `json:"segment_index"`
	Text         string   `json:"text"`
	Starred      bool     `json:"starred"`
	Hidden       bool     `json:"hidden"`
	Tags         []string `json:"tags,omitempty"`
	ProposedTags []string `json:"proposed_tags,omitempty"`
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags, app *excerpt.App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List quotes across all sessions",
		UsageText: "excerpt ls [--json] [--starred] [--session id]",
		Description: `Displays a table of all quotes with their session, speaker, and annotations.

Use --json for machine-readable output, one JSON object per line.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
			&cli.BoolFlag{
				Name:        "starred",
				Usage:       "only show starred quotes",
				Destination: &cmd.starredOnly,
			},
			&cli.StringFlag{
				Name:        "session",
				Usage:       "only show quotes from this session",
				Destination: &cmd.session,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	sessions, err := cmd.app.Library.Sessions(ctx)
	if err != nil {
		return fmt.Errorf("load sessions: %w", err)
	}

	type entry struct {
		quote   transcript.Quote
		session string
	}

	var entries []entry
	for _, s := range sessions {
		if cmd.session != "" && s.ID != cmd.session {
			continue
		}
		for _, q := range s.Quotes {
			resolved, err := cmd.app.Annotations.Resolve(ctx, q)
			if err != nil {
				return fmt.Errorf("resolve annotations for %s: %w", q.DomID, err)
			}
			if cmd.starredOnly && !resolved.IsStarred {
				continue
			}
			entries = append(entries, entry{quote: resolved, session: s.ID})
		}
	}

	if len(entries) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintf(os.Stderr, "No quotes found\n")
		}
		return nil
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, e := range entries {
			q := e.quote
			info := quoteInfo{
				ID:           q.DomID,
				SessionID:    e.session,
				Speaker:      q.SpeakerCode,
				SegmentIndex: q.SegmentIndex,
				Text:         q.DisplayText(),
				Starred:      q.IsStarred,
				Hidden:       q.IsHidden,
				Tags:         q.Tags,
				ProposedTags: q.ProposedTags,
			}
			if err := iojson.WriteLine(out, info); err != nil {
				return fmt.Errorf("encode quote: %w", err)
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "SESSION\tID\tSPEAKER\tSEG\tFLAGS\tTAGS\tQUOTE")

	for _, e := range entries {
		q := e.quote
		var flags []string
		if q.IsStarred {
			flags = append(flags, "★")
		}
		if q.IsHidden {
			flags = append(flags, "hidden")
		}
		text := q.DisplayText()
		if len(text) > 60 {
			text = text[:60] + "…"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			e.session, q.DomID, q.SpeakerCode, q.SegmentIndex,
			strings.Join(flags, " "), strings.Join(q.Tags, ","), text)
	}

	return w.Flush()
}
