package annotate

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/excerpt/internal/core/styles"
	"github.com/colonyops/excerpt/internal/core/transcript"
	"github.com/colonyops/excerpt/internal/excerpt"
	"github.com/colonyops/excerpt/internal/tui/components/quotecard"
)

const flashInterval = 100 * time.Millisecond

type sessionsLoadedMsg struct {
	rows []Row
	err  error
}

// pillTickMsg fires after the hover debounce delay. The generation stamps
// the hover that scheduled it; a stale generation means the cursor moved
// away in the meantime and the tick is dropped.
type pillTickMsg struct {
	quoteID string
	gen     int
}

type flashTickMsg struct{}

type annotationAppliedMsg struct {
	quoteID string
	quote   transcript.Quote
	err     error
}

// relay collects commands raised from card callbacks during a single Update
// so the value-typed View can return them as one batch.
type relay struct {
	cmds []tea.Cmd
}

func (r *relay) enqueue(cmd tea.Cmd) {
	if cmd != nil {
		r.cmds = append(r.cmds, cmd)
	}
}

func (r *relay) drain() tea.Cmd {
	if len(r.cmds) == 0 {
		return nil
	}
	cmds := r.cmds
	r.cmds = nil
	return tea.Batch(cmds...)
}

// View is the Bubble Tea sub-model for the quote annotation screen.
type View struct {
	ctrl  *Controller
	app   *excerpt.App
	flash *FlashStore
	relay *relay
	cards map[string]*quotecard.Card

	previewModal *PreviewModal
	inputModal   *InputModal

	pillDelay time.Duration
	width     int
	height    int
}

// New creates the annotation view.
func New(app *excerpt.App) View {
	flashTicks := 8
	pillDelay := 150 * time.Millisecond
	if app != nil && app.Config != nil {
		flashTicks = app.Config.TUI.FlashTicks
		pillDelay = app.Config.PillDelay()
	}
	return View{
		ctrl:      NewController(),
		app:       app,
		flash:     NewFlashStore(flashTicks),
		relay:     &relay{},
		cards:     make(map[string]*quotecard.Card),
		pillDelay: pillDelay,
	}
}

// Init returns the initial load command.
func (v View) Init() tea.Cmd {
	if v.app == nil {
		return nil
	}
	return loadSessions(v.app)
}

// Update handles messages for the annotation view.
func (v View) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionsLoadedMsg:
		return v.handleSessionsLoaded(msg)
	case pillTickMsg:
		return v.handlePillTick(msg)
	case flashTickMsg:
		return v.handleFlashTick()
	case annotationAppliedMsg:
		return v.handleAnnotationApplied(msg)
	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

// View renders the quote list.
func (v View) View() string {
	return v.renderList()
}

// HasEditorFocus returns true when a text input owns the keyboard.
func (v View) HasEditorFocus() bool {
	return v.inputModal != nil || v.ctrl.IsFiltering()
}

// IsModalActive returns true when any modal is open.
func (v View) IsModalActive() bool {
	return v.previewModal != nil || v.inputModal != nil
}

// Overlay renders any open modal over the given background.
func (v View) Overlay(background string, width, height int) string {
	if v.previewModal != nil {
		return v.previewModal.Overlay(background, width, height)
	}
	if v.inputModal != nil {
		return v.inputModal.Overlay(background, width, height)
	}
	return background
}

// SetSize updates the view dimensions.
func (v *View) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.ctrl.SetSize(v.visibleCards())
}

func (v View) handleSessionsLoaded(msg sessionsLoadedMsg) (View, tea.Cmd) {
	if msg.err != nil {
		log.Debug().Err(msg.err).Msg("failed to load sessions")
		return v, nil
	}
	v.ctrl.SetRows(msg.rows)
	v.cards = make(map[string]*quotecard.Card)
	if sel := v.ctrl.Selected(); sel != nil {
		v.cardFor(*sel).HoverEnter()
	}
	return v, v.relay.drain()
}

func (v View) handlePillTick(msg pillTickMsg) (View, tea.Cmd) {
	if !v.ctrl.HoverCurrent(msg.quoteID, msg.gen) {
		return v, nil
	}
	v.ctrl.ShowPill(msg.quoteID)
	return v, nil
}

func (v View) handleFlashTick() (View, tea.Cmd) {
	v.flash.Tick()
	if v.flash.Active() {
		return v, scheduleFlashTick()
	}
	return v, nil
}

func (v View) handleAnnotationApplied(msg annotationAppliedMsg) (View, tea.Cmd) {
	if msg.err != nil {
		log.Debug().Err(msg.err).Str("quote", msg.quoteID).Msg("annotation failed")
		return v, nil
	}
	v.ctrl.UpdateRow(msg.quoteID, msg.quote)
	return v, nil
}

func (v View) handleKey(msg tea.KeyMsg) (View, tea.Cmd) {
	if v.previewModal != nil {
		return v.handlePreviewKey(msg)
	}
	if v.inputModal != nil {
		return v.handleInputKey(msg)
	}
	if v.ctrl.IsFiltering() {
		return v.handleFilterKey(msg)
	}
	return v.handleNormalKey(msg)
}

func (v View) handlePreviewKey(msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "q":
		v.previewModal = nil
	case "up", "k":
		v.previewModal.ScrollUp()
	case "down", "j":
		v.previewModal.ScrollDown()
	}
	return v, nil
}

func (v View) handleInputKey(msg tea.KeyMsg) (View, tea.Cmd) {
	modal, cmd := v.inputModal.Update(msg)
	v.inputModal = &modal

	switch {
	case modal.Cancelled():
		v.inputModal = nil
	case modal.Submitted():
		v.inputModal = nil
		sel := v.ctrl.Selected()
		if sel == nil || sel.Quote.DomID != modal.QuoteID() {
			return v, cmd
		}
		card := v.cardFor(*sel)
		switch modal.Mode() {
		case InputEditText:
			card.CommitEdit(modal.Value())
		case InputAddTag:
			card.AddTag(modal.Value())
			v.flash.Flash(sel.Quote.DomID, modal.Value())
			v.relay.enqueue(scheduleFlashTick())
		}
		return v, tea.Batch(cmd, v.relay.drain())
	}
	return v, cmd
}

func (v View) handleFilterKey(msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.ctrl.CancelFilter()
	case "enter":
		v.ctrl.ConfirmFilter()
	case "backspace":
		v.ctrl.DeleteFilterRune()
	default:
		if text := msg.Key().Text; text != "" {
			for _, r := range text {
				v.ctrl.AddFilterRune(r)
			}
		}
	}
	return v, nil
}

func (v View) handleNormalKey(msg tea.KeyMsg) (View, tea.Cmd) {
	sel := v.ctrl.Selected()

	switch msg.String() {
	case "up", "k":
		v.moveCursor(func() { v.ctrl.MoveUp(v.visibleCards()) })
	case "down", "j":
		v.moveCursor(func() { v.ctrl.MoveDown(v.visibleCards()) })
	case "enter":
		if sel == nil {
			break
		}
		card := v.cardFor(*sel)
		vis := card.Visibility()
		switch {
		case vis.ShowQuestionBlock:
			card.ClickDismiss()
		case vis.ShowPill && v.ctrl.PillVisible(sel.Quote.DomID):
			card.ClickPill()
		default:
			modal := NewPreviewModal(*sel, v.width, v.height)
			v.previewModal = &modal
		}
	case "E":
		if sel != nil {
			card := v.cardFor(*sel)
			if card.Visibility().ShowQuestionBlock {
				card.ExpandQuestion()
			}
		}
	case "p":
		if sel != nil {
			modal := NewPreviewModal(*sel, v.width, v.height)
			v.previewModal = &modal
		}
	case "s":
		if sel != nil {
			v.cardFor(*sel).ToggleStar()
		}
	case "h":
		if sel != nil {
			v.cardFor(*sel).ToggleHide()
		}
	case "e":
		if sel != nil {
			q := sel.Quote
			modal := NewInputModal(InputEditText, q.DomID, q.DisplayText(), q.Text)
			v.inputModal = &modal
		}
	case "t":
		if sel != nil {
			modal := NewInputModal(InputAddTag, sel.Quote.DomID, "", sel.Quote.DisplayText())
			v.inputModal = &modal
		}
	case "T":
		if sel != nil && len(sel.Quote.Tags) > 0 {
			v.cardFor(*sel).RemoveTag(sel.Quote.Tags[len(sel.Quote.Tags)-1])
		}
	case "d":
		if sel != nil {
			if badge, ok := deletableBadge(sel.Quote); ok {
				v.cardFor(*sel).DeleteBadge(badge)
			}
		}
	case "u":
		if sel != nil && len(sel.Quote.DeletedBadges) > 0 {
			badges := sel.Quote.DeletedBadges
			v.cardFor(*sel).RestoreBadge(badges[len(badges)-1])
		}
	case "a":
		if sel != nil && len(sel.Quote.ProposedTags) > 0 {
			tag := sel.Quote.ProposedTags[0]
			v.cardFor(*sel).AcceptProposed(tag)
			v.flash.Flash(sel.Quote.DomID, tag)
			v.relay.enqueue(scheduleFlashTick())
		}
	case "x":
		if sel != nil && len(sel.Quote.ProposedTags) > 0 {
			v.cardFor(*sel).DenyProposed(sel.Quote.ProposedTags[0])
		}
	case "/":
		v.ctrl.StartFilter()
	case "r":
		return v, loadSessions(v.app)
	}
	return v, v.relay.drain()
}

// moveCursor performs a cursor move bracketed by hover leave and enter on
// the cards involved, which drives the pill debounce.
func (v View) moveCursor(move func()) {
	if prev := v.ctrl.Selected(); prev != nil {
		v.cardFor(*prev).HoverLeave()
	}
	move()
	if next := v.ctrl.Selected(); next != nil {
		v.cardFor(*next).HoverEnter()
	}
}

// deletableBadge picks the first metadata badge not already deleted.
func deletableBadge(q transcript.Quote) (transcript.Badge, bool) {
	for _, candidate := range []transcript.Badge{
		{Value: q.Topic, Label: q.Topic},
		{Value: q.Sentiment, Label: q.Sentiment},
	} {
		if candidate.Value == "" {
			continue
		}
		deleted := false
		for _, b := range q.DeletedBadges {
			if b.Value == candidate.Value {
				deleted = true
				break
			}
		}
		if !deleted {
			return candidate, true
		}
	}
	return transcript.Badge{}, false
}

// cardFor returns the persistent card for a row, refreshing its props. The
// card instance survives across renders so its question expansion state
// behaves like a mounted component; it resets only when the question
// identity changes.
func (v View) cardFor(row Row) *quotecard.Card {
	id := row.Quote.DomID
	props := v.propsFor(row)

	card, ok := v.cards[id]
	if !ok {
		card = quotecard.New(props)
		v.cards[id] = card
		return card
	}
	card.SetProps(props)
	return card
}

func (v View) propsFor(row Row) quotecard.Props {
	id := row.Quote.DomID
	sel := v.ctrl.Selected()
	selected := sel != nil && sel.Quote.DomID == id
	pillVisible := v.ctrl.PillVisible(id)

	return quotecard.Props{
		Quote:        row.Quote,
		Question:     row.Question,
		QuestionOpen: v.ctrl.QuestionOpen(id),
		PillVisible:  pillVisible,
		PillHovered:  selected && pillVisible,
		Selected:     selected,
		Flashing:     v.flash.For(id),
		Width:        v.cardWidth(),
		Callbacks:    v.callbacks(row),
	}
}

// callbacks wires one row's card events into the controller and the
// annotation service. Hover events drive the debounce state machine;
// annotation events become async commands that re-resolve the quote.
func (v View) callbacks(row Row) quotecard.Callbacks {
	ctrl := v.ctrl
	rel := v.relay
	app := v.app
	quote := row.Quote
	delay := v.pillDelay

	apply := func(op func(context.Context, transcript.Quote) error) {
		rel.enqueue(applyAnnotation(app, quote, op))
	}

	return quotecard.Callbacks{
		OnToggleStar: func(id string) {
			apply(app.Annotations.ToggleStar)
		},
		OnToggleHide: func(id string) {
			apply(app.Annotations.ToggleHide)
		},
		OnEditCommit: func(id, text string) {
			apply(func(ctx context.Context, q transcript.Quote) error {
				return app.Annotations.CommitEdit(ctx, q, text)
			})
		},
		OnTagAdd: func(id, tag string) {
			apply(func(ctx context.Context, q transcript.Quote) error {
				return app.Annotations.AddTag(ctx, q, tag)
			})
		},
		OnTagRemove: func(id, tag string) {
			apply(func(ctx context.Context, q transcript.Quote) error {
				return app.Annotations.RemoveTag(ctx, q, tag)
			})
		},
		OnBadgeDelete: func(id string, badge transcript.Badge) {
			apply(func(ctx context.Context, q transcript.Quote) error {
				return app.Annotations.DeleteBadge(ctx, q, badge)
			})
		},
		OnBadgeRestore: func(id string, badge transcript.Badge) {
			apply(func(ctx context.Context, q transcript.Quote) error {
				return app.Annotations.RestoreBadge(ctx, q, badge)
			})
		},
		OnProposedAccept: func(id, tag string) {
			apply(func(ctx context.Context, q transcript.Quote) error {
				return app.Annotations.AcceptProposed(ctx, q, tag)
			})
		},
		OnProposedDeny: func(id, tag string) {
			apply(func(ctx context.Context, q transcript.Quote) error {
				return app.Annotations.DenyProposed(ctx, q, tag)
			})
		},
		OnToggleQuestion: func(id string) {
			ctrl.ToggleQuestion(id)
		},
		OnQuoteHoverEnter: func(id string) {
			gen := ctrl.HoverEnter(id)
			if quote.InSegment() {
				rel.enqueue(schedulePillTick(id, gen, delay))
			}
		},
		OnQuoteHoverLeave: func(id string) {
			ctrl.HoverLeave(id)
		},
	}
}

func (v View) cardWidth() int {
	w := v.width - 2
	if w < 30 {
		w = 30
	}
	return w
}

func (v View) visibleCards() int {
	// Cards are multi-line; size the window by an average card height so
	// the cursor stays on screen.
	const avgCardHeight = 6
	visible := (v.height - 3) / avgCardHeight
	if visible < 1 {
		visible = 1
	}
	return visible
}

func (v View) renderList() string {
	var b strings.Builder

	if v.ctrl.IsFiltering() {
		b.WriteString(" ")
		b.WriteString(styles.TextPrimaryBoldStyle.Render("Filter: "))
		b.WriteString(v.ctrl.Filter())
		b.WriteString("▎")
		b.WriteString("\n")
	} else if v.ctrl.Filter() != "" {
		b.WriteString(" ")
		b.WriteString(styles.TextMutedStyle.Render(fmt.Sprintf("Filter: %s", v.ctrl.Filter())))
		b.WriteString("\n")
	}

	filteredAt := v.ctrl.FilteredAt()
	rows := v.ctrl.Rows()

	if len(filteredAt) == 0 {
		if len(rows) == 0 {
			b.WriteString(styles.TextMutedStyle.Render("  No quotes loaded"))
		} else {
			b.WriteString(styles.TextMutedStyle.Render("  No matching quotes"))
		}
		b.WriteString("\n")
	} else {
		visible := v.visibleCards()
		offset := v.ctrl.Offset()
		end := min(offset+visible, len(filteredAt))

		for i := offset; i < end; i++ {
			row := rows[filteredAt[i]]
			b.WriteString(v.cardFor(row).View())
			b.WriteString("\n")
		}
	}

	b.WriteString(styles.HelpStyle.Render(
		"↑/↓ move • enter pill/dismiss/preview • E more • s star • h hide • e edit • t/T tag • a/x proposed • d/u badge • / filter"))

	return b.String()
}

func loadSessions(app *excerpt.App) tea.Cmd {
	return func() tea.Msg {
		if app == nil {
			return sessionsLoadedMsg{}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		sessions, err := app.Library.Sessions(ctx)
		if err != nil {
			return sessionsLoadedMsg{err: err}
		}

		var rows []Row
		for _, s := range sessions {
			for _, q := range s.Quotes {
				resolved, err := app.Annotations.Resolve(ctx, q)
				if err != nil {
					log.Debug().Err(err).Str("quote", q.DomID).Msg("failed to resolve annotations")
					resolved = q
				}
				rows = append(rows, Row{
					Quote:     resolved,
					Question:  s.QuestionFor(q),
					SessionID: s.ID,
				})
			}
		}
		return sessionsLoadedMsg{rows: rows}
	}
}

func applyAnnotation(app *excerpt.App, q transcript.Quote, op func(context.Context, transcript.Quote) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := op(ctx, q); err != nil {
			return annotationAppliedMsg{quoteID: q.DomID, err: err}
		}
		resolved, err := app.Annotations.Resolve(ctx, q)
		if err != nil {
			return annotationAppliedMsg{quoteID: q.DomID, err: err}
		}
		return annotationAppliedMsg{quoteID: q.DomID, quote: resolved}
	}
}

func schedulePillTick(quoteID string, gen int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return pillTickMsg{quoteID: quoteID, gen: gen}
	})
}

func scheduleFlashTick() tea.Cmd {
	return tea.Tick(flashInterval, func(time.Time) tea.Msg {
		return flashTickMsg{}
	})
}
