// Package components provides reusable TUI components.
package components

import (
	"strings"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/excerpt/internal/core/styles"
)

const helpKeyColumn = 12

// HelpEntry is one keyboard shortcut row.
type HelpEntry struct {
	Key  string
	Desc string
}

// HelpDialogSection groups related shortcuts under a heading.
type HelpDialogSection struct {
	Title   string
	Entries []HelpEntry
}

// HelpDialog lists the available keyboard shortcuts in a centered modal.
type HelpDialog struct {
	title    string
	sections []HelpDialogSection
	width    int
	height   int
}

// NewHelpDialog creates a help dialog with the given sections.
func NewHelpDialog(title string, sections []HelpDialogSection, width, height int) *HelpDialog {
	return &HelpDialog{
		title:    title,
		sections: sections,
		width:    width,
		height:   height,
	}
}

// View renders the dialog contents.
func (h *HelpDialog) View() string {
	var b strings.Builder
	b.WriteString(styles.TextForegroundBoldStyle.Render(h.title))
	b.WriteString("\n")

	rule := styles.TextMutedStyle.Render(strings.Repeat("─", 25))
	for _, section := range h.sections {
		b.WriteString("\n")
		if section.Title != "" {
			b.WriteString(styles.TextPrimaryBoldStyle.Render(section.Title))
			b.WriteString("\n")
			b.WriteString(rule)
			b.WriteString("\n")
		}
		for _, e := range section.Entries {
			// Align on display width so unicode arrows line up.
			key := e.Key + Pad(helpKeyColumn-lipgloss.Width(e.Key))
			b.WriteString(styles.TextPrimaryBoldStyle.Render(key))
			b.WriteString(styles.TextForegroundStyle.Render(e.Desc))
			b.WriteString("\n")
		}
	}

	b.WriteString(styles.ModalHelpStyle.Render("esc/? close"))
	return styles.ModalStyle.Render(b.String())
}

// Overlay composites the dialog centered over the background.
func (h *HelpDialog) Overlay(background string, width, height int) string {
	modal := h.View()

	modalLayer := lipgloss.NewLayer(modal)
	modalLayer.
		X(max((width-lipgloss.Width(modal))/2, 0)).
		Y(max((height-lipgloss.Height(modal))/2, 0)).
		Z(1)

	return lipgloss.NewCompositor(lipgloss.NewLayer(background), modalLayer).Render()
}
