package tui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/excerpt/internal/core/notify"
	"github.com/colonyops/excerpt/internal/core/styles"
)

type toastTickMsg time.Time

func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

// ToastView renders the toast stack as a lower-right overlay.
type ToastView struct {
	controller *ToastController
}

func NewToastView(controller *ToastController) *ToastView {
	return &ToastView{controller: controller}
}

// View renders the stack, oldest at top.
func (v *ToastView) View() string {
	toasts := v.controller.Toasts()
	if len(toasts) == 0 {
		return ""
	}

	var b strings.Builder
	for i, t := range toasts {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(v.renderOne(t))
	}
	return b.String()
}

func (v *ToastView) renderOne(t toast) string {
	marker := styles.ToastInfoStyle.Render("✓")
	switch t.note.Level {
	case notify.LevelError:
		marker = styles.ToastErrStyle.Render("✗")
	case notify.LevelWarning:
		marker = styles.ToastWarnStyle.Render("!")
	}
	return styles.ToastStyle.Width(toastWidth).Render(marker + " " + t.note.Message)
}

// Overlay composites the stack over background in the lower-right corner,
// above any modal layers.
func (v *ToastView) Overlay(background string, width, height int) string {
	stack := v.View()
	if stack == "" {
		return background
	}

	layer := lipgloss.NewLayer(stack)
	layer.
		X(max(width-lipgloss.Width(stack)-1, 0)).
		Y(max(height-lipgloss.Height(stack), 0)).
		Z(2)

	return lipgloss.NewCompositor(lipgloss.NewLayer(background), layer).Render()
}
