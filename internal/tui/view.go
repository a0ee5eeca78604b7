package tui

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/excerpt/internal/core/styles"
)

// View renders the full screen: header, annotate view, status bar, then any
// overlay layers (modals, dialogs, toasts).
func (m Model) View() tea.View {
	if m.quitting {
		v := tea.NewView("")
		v.AltScreen = true
		return v
	}

	base := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.annotate.View(),
		m.renderStatus(),
	)

	out := m.annotate.Overlay(base, m.width, m.height)
	if m.devInfoDialog != nil {
		out = m.devInfoDialog.Overlay(out, m.width, m.height)
	}
	if m.helpDialog != nil {
		out = m.helpDialog.Overlay(out, m.width, m.height)
	}
	v := tea.NewView(m.toastView.Overlay(out, m.width, m.height))
	v.AltScreen = true
	return v
}

func (m Model) renderHeader() string {
	title := styles.TextPrimaryBoldStyle.Render("excerpt")
	theme := styles.TextMutedStyle.Render(m.cfg.TUI.Theme)
	return fmt.Sprintf(" %s  %s", title, theme)
}

func (m Model) renderStatus() string {
	return styles.HelpStyle.Render(" ? help • q quit")
}
