// Package quotecard renders a single transcript quote as an annotation card.
//
// The card is a pure projection of its props: every render derives visibility
// from the current props, and the only state the card owns is the
// question-text expansion boolean. Everything else (pill visibility, question
// disclosure, annotation data) is owned by the parent view and requested via
// callbacks.
package quotecard

import (
	"fmt"
	"strings"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/excerpt/internal/core/styles"
	"github.com/colonyops/excerpt/internal/core/transcript"
)

// Callbacks are the events a card raises. All funcs are optional; nil
// callbacks are ignored. The card never reads state back through them.
type Callbacks struct {
	OnToggleStar     func(id string)
	OnToggleHide     func(id string)
	OnEditCommit     func(id, text string)
	OnTagAdd         func(id, tag string)
	OnTagRemove      func(id, tag string)
	OnBadgeDelete    func(id string, badge transcript.Badge)
	OnBadgeRestore   func(id string, badge transcript.Badge)
	OnProposedAccept func(id, tag string)
	OnProposedDeny   func(id, tag string)
	OnToggleQuestion func(id string)

	OnQuoteHoverEnter func(id string)
	OnQuoteHoverLeave func(id string)
	OnPillHoverEnter  func(id string)
	OnPillHoverLeave  func(id string)
}

// Props is the read-only input contract for a card render.
type Props struct {
	Quote    transcript.Quote
	Question *transcript.ModeratorQuestion

	// Parent-owned visibility flags. The card never mutates these; it only
	// requests changes via OnToggleQuestion and the hover callbacks.
	QuestionOpen bool
	PillVisible  bool

	// PillHovered styles the pill as active while the cursor rests on it.
	// Rendering-only.
	PillHovered bool

	// Selected marks the card under the cursor.
	Selected bool

	// Flashing holds tag values currently highlight-animated. Rendering
	// hint only, no state machine impact.
	Flashing map[string]struct{}

	Width     int
	Callbacks Callbacks
}

// Card is the annotation card component. One instance per quote; the parent
// recreates the instance when the quote changes identity, which resets the
// local expansion state.
type Card struct {
	props Props

	// questionExpanded is the only local state: collapsed on mount,
	// one-directional within a mount (no collapse-back affordance).
	questionExpanded bool
}

// New creates a card for the given props.
func New(props Props) *Card {
	return &Card{props: props}
}

// SetProps replaces the card's props. If the moderator question changed
// identity, the local expansion state resets, mirroring a remount.
func (c *Card) SetProps(props Props) {
	if !sameQuestion(c.props.Question, props.Question) {
		c.questionExpanded = false
	}
	c.props = props
}

// Props returns the card's current props.
func (c *Card) Props() Props { return c.props }

// QuestionExpanded reports the local question-text expansion state.
func (c *Card) QuestionExpanded() bool { return c.questionExpanded }

// ExpandQuestion flips the local expansion state to show the full question
// text. Expansion is one-directional until the card is recreated.
func (c *Card) ExpandQuestion() {
	c.questionExpanded = true
}

func sameQuestion(a, b *transcript.ModeratorQuestion) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.SegmentIndex == b.SegmentIndex && a.Text == b.Text
}

// Visibility resolves the card's contextual affordances from current props.
// A question supplied for a standalone quote is treated as absent linkage:
// question UI never renders for SegmentIndex <= 0 no matter what data the
// parent passed in.
func (c *Card) Visibility() Visibility {
	hasQuestion := c.props.Question != nil && c.props.Quote.InSegment()
	return Resolve(
		c.props.Quote.SegmentIndex,
		c.props.PillVisible,
		c.props.QuestionOpen,
		hasQuestion,
	)
}

// View renders the card. The question block, when present, is the first
// element inside the card's block, before the quote's own content.
func (c *Card) View() string {
	q := c.props.Quote
	vis := c.Visibility()

	var sections []string

	if vis.ShowQuestionBlock {
		sections = append(sections, c.renderQuestionBlock())
	}

	if vis.ShowPill && c.props.PillVisible {
		sections = append(sections, c.renderPill())
	}

	sections = append(sections, c.renderMeta())
	sections = append(sections, c.renderQuoteText())

	if vis.ShowResearcherContext && q.ResearcherContext != "" {
		sections = append(sections, styles.ContextStyle.Render(q.ResearcherContext))
	}

	if line := c.renderTags(); line != "" {
		sections = append(sections, line)
	}
	if line := c.renderBadges(); line != "" {
		sections = append(sections, line)
	}
	if line := c.renderProposed(); line != "" {
		sections = append(sections, line)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	cardStyle := styles.CardStyle
	if c.props.Selected {
		cardStyle = styles.CardSelectedStyle
	}
	if c.props.Width > 0 {
		cardStyle = cardStyle.Width(c.props.Width)
	}
	return cardStyle.Render(content)
}

func (c *Card) renderPill() string {
	pillStyle := styles.PillStyle
	if c.props.PillHovered {
		pillStyle = styles.PillActiveStyle
	}
	return pillStyle.Render("? moderator question")
}

func (c *Card) renderQuestionBlock() string {
	mq := c.props.Question
	if mq == nil {
		return ""
	}

	speaker := mq.SpeakerCode
	if speaker == "" {
		speaker = "MOD"
	}
	header := styles.QuestionSpeakerStyle.Render(speaker) +
		styles.CardMetaStyle.Render(fmt.Sprintf("  %s–%s", formatTimecode(mq.StartTimecode), formatTimecode(mq.EndTimecode)))

	first, rest := SplitLeadingSentence(mq.Text)
	var body string
	switch {
	case rest == "" || c.questionExpanded:
		body = styles.QuestionTextStyle.Render(strings.TrimSpace(mq.Text))
	default:
		body = styles.QuestionTextStyle.Render(first) + " " + styles.ExpandHintStyle.Render("[E] more…")
	}

	dismiss := styles.ExpandHintStyle.Render("[enter] dismiss")

	return styles.QuestionBlockStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left, header, body, dismiss),
	)
}

func (c *Card) renderMeta() string {
	q := c.props.Quote

	var parts []string
	if q.IsStarred {
		parts = append(parts, styles.StarStyle.Render("★"))
	}
	if q.SpeakerCode != "" {
		speakerStyle := lipgloss.NewStyle().Foreground(styles.ColorForString(q.SpeakerCode))
		parts = append(parts, speakerStyle.Render(q.SpeakerCode))
	}
	parts = append(parts, styles.CardMetaStyle.Render(
		fmt.Sprintf("%s–%s", formatTimecode(q.StartTimecode), formatTimecode(q.EndTimecode)),
	))
	if q.Topic != "" {
		topicStyle := lipgloss.NewStyle().Foreground(styles.ColorForString(q.Topic))
		parts = append(parts, topicStyle.Render(q.Topic))
	}
	if q.Sentiment != "" {
		parts = append(parts, styles.CardMetaStyle.Render(q.Sentiment))
	}
	if q.IsHidden {
		parts = append(parts, styles.TextWarningStyle.Render("hidden"))
	}
	if q.EditedText != "" {
		parts = append(parts, styles.CardMetaStyle.Render("edited"))
	}

	return strings.Join(parts, " ")
}

func (c *Card) renderQuoteText() string {
	q := c.props.Quote
	text := q.DisplayText()
	if q.IsHidden {
		return styles.CardHiddenStyle.Render(text)
	}
	return styles.CardQuoteStyle.Render(text)
}

func (c *Card) renderTags() string {
	q := c.props.Quote
	if len(q.Tags) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(q.Tags))
	for _, tag := range q.Tags {
		style := styles.TagStyle
		if _, flash := c.props.Flashing[tag]; flash {
			style = styles.TagFlashStyle
		}
		rendered = append(rendered, style.Render(tag))
	}
	return strings.Join(rendered, " ")
}

func (c *Card) renderBadges() string {
	q := c.props.Quote
	if len(q.DeletedBadges) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(q.DeletedBadges))
	for _, b := range q.DeletedBadges {
		label := b.Label
		if label == "" {
			label = b.Value
		}
		rendered = append(rendered, styles.BadgeDeletedStyle.Render(label))
	}
	return styles.CardMetaStyle.Render("deleted: ") + strings.Join(rendered, " ")
}

func (c *Card) renderProposed() string {
	q := c.props.Quote
	if len(q.ProposedTags) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(q.ProposedTags))
	for _, tag := range q.ProposedTags {
		rendered = append(rendered, styles.ProposedTagStyle.Render(tag+"?"))
	}
	return styles.CardMetaStyle.Render("proposed: ") + strings.Join(rendered, " ")
}

func formatTimecode(seconds float64) string {
	if seconds < 0 {
		// Malformed time ranges render literally; validation is not the
		// card's job.
		return fmt.Sprintf("%.0fs", seconds)
	}
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
