// Package tui implements the interactive annotation interface.
package tui

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/excerpt/internal/core/config"
	"github.com/colonyops/excerpt/internal/core/notify"
	"github.com/colonyops/excerpt/internal/devinfo"
	"github.com/colonyops/excerpt/internal/excerpt"
	"github.com/colonyops/excerpt/internal/tui/components"
	"github.com/colonyops/excerpt/internal/tui/views/annotate"
)

const (
	keyCtrlC = "ctrl+c"

	// header + status bar
	chromeHeight = 2
)

// Options configures the TUI behavior.
type Options struct {
	// Warnings are startup problems surfaced as toasts once the
	// program is running.
	Warnings []string
}

type devInfoLoadedMsg struct {
	info *devinfo.Info
	err  error
}

// Model is the main Bubble Tea model.
type Model struct {
	cfg      *config.Config
	app      *excerpt.App
	annotate annotate.View

	toasts    *ToastController
	toastView *ToastView

	devInfoDialog *components.InfoDialog
	helpDialog    *components.HelpDialog

	warnings []string
	width    int
	height   int
	quitting bool
}

// NewModel creates the root TUI model.
func NewModel(app *excerpt.App, opts Options) Model {
	toasts := NewToastController()
	return Model{
		cfg:       app.Config,
		app:       app,
		annotate:  annotate.New(app),
		toasts:    toasts,
		toastView: NewToastView(toasts),
		warnings:  opts.Warnings,
	}
}

// Init starts session loading and surfaces startup warnings.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.annotate.Init()}
	for _, w := range m.warnings {
		if cmd := m.pushToast(notify.Warning(w)); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.annotate.SetSize(msg.Width, max(msg.Height-chromeHeight, 1))
		return m, nil

	case toastTickMsg:
		m.toasts.Tick(toastTickInterval)
		if m.toasts.HasToasts() {
			return m, scheduleToastTick()
		}
		m.toasts.SetTicking(false)
		return m, nil

	case devInfoLoadedMsg:
		return m.handleDevInfoLoaded(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.annotate, cmd = m.annotate.Update(msg)
	return m, cmd
}

func (m Model) handleDevInfoLoaded(msg devInfoLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// Panel is best-effort: a failed fetch means no panel, nothing
		// surfaced to the user.
		log.Debug().Err(msg.err).Msg("devinfo fetch failed")
		return m, nil
	}
	m.devInfoDialog = components.NewInfoDialog(
		"Developer Info",
		devInfoSections(msg.info),
		"",
		"[j/k] scroll  [esc] close",
		m.width,
		m.height,
	)
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == keyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	if m.helpDialog != nil {
		switch key {
		case "esc", "?", "q", "enter":
			m.helpDialog = nil
		}
		return m, nil
	}

	if m.devInfoDialog != nil {
		switch key {
		case "esc", "q", "enter":
			m.devInfoDialog = nil
		case "up", "k":
			m.devInfoDialog.ScrollUp()
		case "down", "j":
			m.devInfoDialog.ScrollDown()
		}
		return m, nil
	}

	// Text inputs and modals own the keyboard.
	if m.annotate.HasEditorFocus() || m.annotate.IsModalActive() {
		var cmd tea.Cmd
		m.annotate, cmd = m.annotate.Update(msg)
		return m, cmd
	}

	switch key {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "?":
		m.helpDialog = components.NewHelpDialog("Keyboard Shortcuts", helpSections(), m.width, m.height)
		return m, nil
	case "D":
		if m.cfg.DevInfo.URL != "" {
			return m, fetchDevInfo(m.cfg.DevInfo.URL)
		}
		return m, nil
	case "esc":
		if m.toasts.HasToasts() {
			m.toasts.Dismiss()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.annotate, cmd = m.annotate.Update(msg)
	return m, cmd
}

func (m *Model) pushToast(n notify.Notification) tea.Cmd {
	m.toasts.Push(n)
	if !m.toasts.Ticking() {
		m.toasts.SetTicking(true)
		return scheduleToastTick()
	}
	return nil
}

func devInfoSections(info *devinfo.Info) []components.InfoSection {
	sections := []components.InfoSection{
		{
			Title: "Database",
			Items: []components.InfoItem{
				{Label: "Path", Value: info.DBPath},
				{Label: "Tables", Value: fmt.Sprintf("%d", info.TableCount)},
			},
		},
	}

	if len(info.Endpoints) > 0 {
		items := make([]components.InfoItem, 0, len(info.Endpoints))
		for _, ep := range info.Endpoints {
			value := ep.URL
			if ep.Description != "" {
				value += "  " + ep.Description
			}
			items = append(items, components.InfoItem{Label: ep.Label, Value: value})
		}
		sections = append(sections, components.InfoSection{Title: "Endpoints", Items: items})
	}

	return sections
}

func helpSections() []components.HelpDialogSection {
	return []components.HelpDialogSection{
		{
			Title: "Navigation",
			Entries: []components.HelpEntry{
				{Key: "↑/k ↓/j", Desc: "move between quotes"},
				{Key: "/", Desc: "filter quotes"},
				{Key: "r", Desc: "reload sessions"},
			},
		},
		{
			Title: "Moderator Question",
			Entries: []components.HelpEntry{
				{Key: "enter", Desc: "open pill / dismiss question / preview"},
				{Key: "E", Desc: "show full question text"},
			},
		},
		{
			Title: "Annotation",
			Entries: []components.HelpEntry{
				{Key: "s", Desc: "toggle star"},
				{Key: "h", Desc: "toggle hidden"},
				{Key: "e", Desc: "edit quote text"},
				{Key: "t / T", Desc: "add / remove tag"},
				{Key: "a / x", Desc: "accept / deny proposed tag"},
				{Key: "d / u", Desc: "delete / restore badge"},
			},
		},
		{
			Title: "Other",
			Entries: []components.HelpEntry{
				{Key: "p", Desc: "preview quote"},
				{Key: "D", Desc: "developer info"},
				{Key: "q", Desc: "quit"},
			},
		},
	}
}

func fetchDevInfo(url string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		info, err := devinfo.Fetch(ctx, url)
		return devInfoLoadedMsg{info: info, err: err}
	}
}
