package annotate

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/excerpt/internal/core/styles"
)

// InputMode selects what the input modal collects.
type InputMode int

const (
	InputEditText InputMode = iota
	InputAddTag
)

const inputModalWidth = 70

// InputModal collects a single line of text for editing a quote or adding a tag.
type InputModal struct {
	mode      InputMode
	quoteID   string
	textInput textinput.Model
	preview   string
	submitted bool
	cancelled bool
}

// NewInputModal creates an input modal for the given quote.
func NewInputModal(mode InputMode, quoteID, initial, preview string) InputModal {
	ti := textinput.New()
	switch mode {
	case InputEditText:
		ti.Placeholder = "Edited quote text (empty restores the original)..."
	case InputAddTag:
		ti.Placeholder = "Tag name..."
	}
	ti.Focus()
	ti.SetWidth(inputModalWidth - 6)
	ti.SetValue(initial)
	ti.CursorEnd()

	return InputModal{
		mode:      mode,
		quoteID:   quoteID,
		textInput: ti,
		preview:   truncatePreview(preview),
	}
}

func truncatePreview(text string) string {
	const maxPreview = 120
	text = strings.ReplaceAll(text, "\n", " ")
	if len(text) > maxPreview {
		return text[:maxPreview] + "…"
	}
	return text
}

// Update handles key messages while the modal is open.
func (m InputModal) Update(msg tea.Msg) (InputModal, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			m.submitted = true
			return m, nil
		case "esc":
			m.cancelled = true
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// Submitted reports whether the input was confirmed.
func (m InputModal) Submitted() bool { return m.submitted }

// Cancelled reports whether the modal was dismissed.
func (m InputModal) Cancelled() bool { return m.cancelled }

// Mode returns the input mode the modal was opened with.
func (m InputModal) Mode() InputMode { return m.mode }

// QuoteID returns the quote the input applies to.
func (m InputModal) QuoteID() string { return m.quoteID }

// Value returns the entered text.
func (m InputModal) Value() string { return m.textInput.Value() }

func (m InputModal) title() string {
	switch m.mode {
	case InputAddTag:
		return "Add Tag"
	default:
		return "Edit Quote Text"
	}
}

// Overlay renders the input modal centered over the background.
func (m InputModal) Overlay(background string, width, height int) string {
	modalContent := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ModalTitleStyle.Render(m.title()),
		"",
		styles.TextMutedStyle.Render(m.preview),
		"",
		m.textInput.View(),
		styles.ModalHelpStyle.Render("[enter] confirm  [esc] cancel"),
	)

	modal := styles.ModalStyle.
		Width(inputModalWidth).
		Render(modalContent)

	bgLayer := lipgloss.NewLayer(background)
	modalLayer := lipgloss.NewLayer(modal)

	modalW := lipgloss.Width(modal)
	modalH := lipgloss.Height(modal)
	modalLayer.X(max((width-modalW)/2, 0)).Y(max((height-modalH)/2, 0)).Z(1)

	return lipgloss.NewCompositor(bgLayer, modalLayer).Render()
}
