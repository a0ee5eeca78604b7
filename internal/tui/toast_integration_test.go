package tui

import (
	"testing"
	"time"

	"github.com/colonyops/excerpt/internal/core/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestToastUpdateLoop_tick_chain_expires_at_TTL simulates the Bubbletea update
// loop by sending toastTickMsg messages and verifying the toast is removed
// after the expected number of ticks.
func TestToastUpdateLoop_tick_chain_expires_at_TTL(t *testing.T) {
	ctrl := NewToastController()
	ctrl.Push(notify.Notification{Level: notify.LevelInfo, Message: "test"})
	ctrl.SetTicking(true)

	m := Model{toasts: ctrl, toastView: NewToastView(ctrl)}

	tickCount := 0
	for {
		result, cmd := m.Update(toastTickMsg(time.Now()))
		m = result.(Model)
		tickCount++

		if cmd == nil {
			break
		}
		if tickCount > 100 {
			t.Fatal("tick chain ran for >100 ticks without expiring")
		}
	}

	expectedTicks := int(defaultToastTTL / toastTickInterval) // 5s / 100ms = 50
	assert.Equal(t, expectedTicks, tickCount)
	assert.False(t, ctrl.HasToasts())
	assert.False(t, ctrl.Ticking(), "tick chain stops once all toasts expire")
}

// TestToastUpdateLoop_pushToast_starts_tick verifies pushing through the
// model starts the tick chain exactly once.
func TestToastUpdateLoop_pushToast_starts_tick(t *testing.T) {
	ctrl := NewToastController()
	m := Model{toasts: ctrl, toastView: NewToastView(ctrl)}

	cmd := m.pushToast(notify.Error("something broke"))
	require.True(t, ctrl.HasToasts(), "toast should be pushed")
	assert.Equal(t, "something broke", ctrl.Toasts()[0].note.Message)
	assert.NotNil(t, cmd, "first push schedules the tick")

	cmd = m.pushToast(notify.Info("another"))
	assert.Nil(t, cmd, "tick already running, no second schedule")
}
