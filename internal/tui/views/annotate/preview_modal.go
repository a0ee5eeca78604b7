package annotate

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/excerpt/internal/core/styles"
)

const (
	previewModalMaxWidth  = 100
	previewModalMaxHeight = 30
	previewModalMargin    = 4
	previewModalChrome    = 8
	previewModalPadding   = 4
)

// PreviewModal displays a quote's verbatim excerpt with markdown rendering.
type PreviewModal struct {
	row      Row
	viewport viewport.Model
}

// NewPreviewModal creates a preview modal for the given row.
func NewPreviewModal(row Row, width, height int) PreviewModal {
	modalWidth := min(width-previewModalMargin, previewModalMaxWidth)
	modalHeight := min(height-previewModalMargin, previewModalMaxHeight)
	contentHeight := modalHeight - previewModalChrome

	vp := viewport.New(
		viewport.WithWidth(modalWidth-previewModalPadding),
		viewport.WithHeight(contentHeight),
	)

	m := PreviewModal{
		row:      row,
		viewport: vp,
	}

	m.renderContent(modalWidth - previewModalPadding)
	return m
}

func (m *PreviewModal) markdown() string {
	q := m.row.Quote

	var b strings.Builder
	fmt.Fprintf(&b, "> %s\n\n", q.DisplayText())
	if q.Verbatim != "" && q.Verbatim != q.DisplayText() {
		fmt.Fprintf(&b, "**Verbatim**\n\n%s\n\n", q.Verbatim)
	}
	if m.row.Question != nil && q.InSegment() {
		fmt.Fprintf(&b, "**Moderator**: %s\n\n", m.row.Question.Text)
	}
	if q.ResearcherContext != "" && !q.InSegment() {
		fmt.Fprintf(&b, "*%s*\n", q.ResearcherContext)
	}
	return b.String()
}

func (m *PreviewModal) renderContent(width int) {
	raw := m.markdown()

	style := styles.GlamourStyle()
	noMargin := uint(0)
	style.Document.Margin = &noMargin

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		log.Debug().Err(err).Msg("failed to create markdown renderer, showing raw content")
		m.viewport.SetContent(raw)
		return
	}

	rendered, err := renderer.Render(raw)
	if err != nil {
		log.Debug().Err(err).Msg("failed to render markdown, showing raw content")
		m.viewport.SetContent(raw)
		return
	}

	m.viewport.SetContent(strings.TrimSpace(rendered))
}

// ScrollUp scrolls the viewport up.
func (m *PreviewModal) ScrollUp() {
	m.viewport.ScrollUp(1)
}

// ScrollDown scrolls the viewport down.
func (m *PreviewModal) ScrollDown() {
	m.viewport.ScrollDown(1)
}

// Overlay renders the preview modal centered over the background.
func (m PreviewModal) Overlay(background string, width, height int) string {
	modalWidth := min(width-previewModalMargin, previewModalMaxWidth)
	modalHeight := min(height-previewModalMargin, previewModalMaxHeight)

	q := m.row.Quote
	speaker := q.SpeakerCode
	if speaker == "" {
		speaker = "unknown"
	}
	speakerStr := styles.TextSuccessStyle.Render(speaker)
	sessionStr := styles.TextMutedStyle.Render("session: " + m.row.SessionID)
	metadata := fmt.Sprintf("%s • %s", speakerStr, sessionStr)

	scrollInfo := ""
	if m.viewport.TotalLineCount() > m.viewport.VisibleLineCount() {
		scrollInfo = styles.TextMutedStyle.Render(fmt.Sprintf(" (%.0f%%)", m.viewport.ScrollPercent()*100))
	}

	divider := styles.TextSurfaceStyle.Render(strings.Repeat("─", 40))
	modalContent := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ModalTitleStyle.Render("Quote Preview"+scrollInfo),
		"",
		metadata,
		divider,
		m.viewport.View(),
		styles.ModalHelpStyle.Render("[↑/↓/j/k] scroll  [enter/esc] close"),
	)

	modal := styles.ModalStyle.
		Width(modalWidth).
		Height(modalHeight).
		Render(modalContent)

	bgLayer := lipgloss.NewLayer(background)
	modalLayer := lipgloss.NewLayer(modal)

	modalW := lipgloss.Width(modal)
	modalH := lipgloss.Height(modal)
	modalLayer.X(max((width-modalW)/2, 0)).Y(max((height-modalH)/2, 0)).Z(1)

	return lipgloss.NewCompositor(bgLayer, modalLayer).Render()
}
