package components

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/excerpt/internal/core/styles"
)

const (
	infoMaxHeight = 30
	infoMargin    = 4
	infoChrome    = 6 // title, divider, help line, spacing
	infoMinWidth  = 50
)

// InfoStatus annotates an info item with a pass/warn/fail marker.
type InfoStatus int

const (
	InfoStatusNone InfoStatus = iota
	InfoStatusPass
	InfoStatusWarn
	InfoStatusFail
)

// InfoItem is one labeled row.
type InfoItem struct {
	Label  string
	Value  string
	Status InfoStatus
}

// InfoSection groups items under a heading.
type InfoSection struct {
	Title string
	Items []InfoItem
}

// InfoDialog shows structured read-only information in a scrollable modal.
// The developer-info panel renders through this.
type InfoDialog struct {
	title    string
	sections []InfoSection
	footer   string
	helpText string
	viewport viewport.Model
}

func infoDialogSize(width, height int) (w, h int) {
	w = min(max(int(float64(width)*0.65), infoMinWidth), width-infoMargin)
	h = min(height-infoMargin, infoMaxHeight)
	return w, h
}

// NewInfoDialog creates an info dialog sized against the current window.
func NewInfoDialog(title string, sections []InfoSection, footer, helpText string, width, height int) *InfoDialog {
	modalW, modalH := infoDialogSize(width, height)

	vp := viewport.New(
		viewport.WithWidth(modalW-4),
		viewport.WithHeight(modalH-infoChrome),
	)

	d := &InfoDialog{
		title:    title,
		sections: sections,
		footer:   footer,
		helpText: helpText,
		viewport: vp,
	}
	d.viewport.SetContent(d.content(modalW))
	return d
}

func (d *InfoDialog) content(modalW int) string {
	rule := styles.TextSurfaceStyle.Render(strings.Repeat("─", max(modalW-6, 1)))

	var b strings.Builder
	for i, section := range d.sections {
		if i > 0 {
			b.WriteString("\n")
		}
		if section.Title != "" {
			b.WriteString(styles.TextPrimaryBoldStyle.Render(section.Title))
			b.WriteString("\n")
			b.WriteString(rule)
			b.WriteString("\n")
		}
		for _, item := range section.Items {
			b.WriteString(renderInfoItem(item))
			b.WriteString("\n")
		}
	}

	if d.footer != "" {
		b.WriteString("\n")
		b.WriteString(d.footer)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderInfoItem(item InfoItem) string {
	label := styles.TextForegroundBoldStyle.Render(item.Label)
	value := styles.TextMutedStyle.Render(item.Value)

	var icon string
	switch item.Status {
	case InfoStatusPass:
		icon = styles.TextSuccessStyle.Render("✔") + " "
	case InfoStatusWarn:
		icon = styles.TextWarningStyle.Render("●") + " "
	case InfoStatusFail:
		icon = styles.TextErrorStyle.Render("✘") + " "
	}
	return fmt.Sprintf("%s%s  %s", icon, label, value)
}

// ScrollUp scrolls the content up one line.
func (d *InfoDialog) ScrollUp() { d.viewport.ScrollUp(1) }

// ScrollDown scrolls the content down one line.
func (d *InfoDialog) ScrollDown() { d.viewport.ScrollDown(1) }

// Overlay composites the dialog centered over the background.
func (d *InfoDialog) Overlay(background string, width, height int) string {
	modalW, modalH := infoDialogSize(width, height)

	title := styles.ModalTitleStyle.Render(d.title)
	if d.viewport.TotalLineCount() > d.viewport.VisibleLineCount() {
		title += styles.TextMutedStyle.Render(
			fmt.Sprintf(" (%.0f%%)", d.viewport.ScrollPercent()*100),
		)
	}

	modal := styles.ModalStyle.
		Width(modalW).
		Height(modalH).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			title,
			styles.TextSurfaceStyle.Render(strings.Repeat("─", max(modalW-6, 1))),
			d.viewport.View(),
			styles.ModalHelpStyle.Render(d.helpText),
		))

	modalLayer := lipgloss.NewLayer(modal)
	modalLayer.
		X(max((width-lipgloss.Width(modal))/2, 0)).
		Y(max((height-lipgloss.Height(modal))/2, 0)).
		Z(1)

	return lipgloss.NewCompositor(lipgloss.NewLayer(background), modalLayer).Render()
}
