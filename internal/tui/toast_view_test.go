package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/excerpt/internal/core/notify"
)

func TestToastView_View(t *testing.T) {
	t.Run("empty stack renders nothing", func(t *testing.T) {
		v := NewToastView(NewToastController())
		assert.Empty(t, v.View())
	})

	t.Run("level markers", func(t *testing.T) {
		cases := []struct {
			note   notify.Notification
			marker string
		}{
			{notify.Error("broke"), "✗"},
			{notify.Warning("careful"), "!"},
			{notify.Info("done"), "✓"},
		}
		for _, tc := range cases {
			t.Run(string(tc.note.Level), func(t *testing.T) {
				c := NewToastController()
				c.Push(tc.note)

				out := NewToastView(c).View()
				assert.Contains(t, out, tc.marker)
				assert.Contains(t, out, tc.note.Message)
			})
		}
	})

	t.Run("oldest renders above newest", func(t *testing.T) {
		c := NewToastController()
		c.Push(notify.Info("first"))
		c.Push(notify.Error("second"))

		out := NewToastView(c).View()
		first := strings.Index(out, "first")
		second := strings.Index(out, "second")
		require.GreaterOrEqual(t, first, 0)
		require.GreaterOrEqual(t, second, 0)
		assert.Less(t, first, second)
	})
}

func TestToastView_Overlay(t *testing.T) {
	t.Run("no toasts passes the background through", func(t *testing.T) {
		v := NewToastView(NewToastController())
		assert.Equal(t, "background", v.Overlay("background", 80, 24))
	})

	t.Run("toast lands in the lower half", func(t *testing.T) {
		c := NewToastController()
		c.Push(notify.Info("positioned"))

		const width, height = 120, 40
		row := strings.Repeat(" ", width)
		rows := make([]string, height)
		for i := range rows {
			rows[i] = row
		}

		out := NewToastView(c).Overlay(strings.Join(rows, "\n"), width, height)

		lines := strings.Split(out, "\n")
		found := -1
		for i, line := range lines {
			if strings.Contains(line, "positioned") {
				found = i
				break
			}
		}
		require.GreaterOrEqual(t, found, 0, "toast text missing from output")
		assert.Greater(t, found, height/2)
	})
}
