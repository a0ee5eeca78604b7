package tui

import (
	"time"

	"github.com/colonyops/excerpt/internal/core/notify"
)

const (
	defaultToastTTL   = 5 * time.Second
	defaultMaxToasts  = 5
	toastTickInterval = 100 * time.Millisecond
	toastWidth        = 50
)

// toast is one on-screen notification with its accumulated age.
type toast struct {
	note notify.Notification
	age  time.Duration
}

func (t toast) expired() bool { return t.age >= defaultToastTTL }

// ToastController owns the toast stack: pushes, age-based expiry, dismissal,
// and whether the shared tick timer is live.
type ToastController struct {
	toasts  []toast
	ticking bool
}

func NewToastController() *ToastController {
	return &ToastController{}
}

// Push appends a notification. The stack is capped at defaultMaxToasts and
// evicts from the oldest end.
func (c *ToastController) Push(n notify.Notification) {
	c.toasts = append(c.toasts, toast{note: n})
	if excess := len(c.toasts) - defaultMaxToasts; excess > 0 {
		c.toasts = c.toasts[excess:]
	}
}

// Tick ages every toast by d and drops the expired ones.
func (c *ToastController) Tick(d time.Duration) {
	alive := c.toasts[:0]
	for _, t := range c.toasts {
		t.age += d
		if !t.expired() {
			alive = append(alive, t)
		}
	}
	c.toasts = alive
}

// Dismiss removes the newest toast, the one at the bottom of the stack.
func (c *ToastController) Dismiss() {
	if n := len(c.toasts); n > 0 {
		c.toasts = c.toasts[:n-1]
	}
}

// DismissAll clears the stack.
func (c *ToastController) DismissAll() {
	c.toasts = c.toasts[:0]
}

// HasToasts reports whether any toast is on screen.
func (c *ToastController) HasToasts() bool {
	return len(c.toasts) > 0
}

// Toasts returns the active stack, oldest first.
func (c *ToastController) Toasts() []toast {
	return c.toasts
}

// Ticking reports whether the tick timer is running.
func (c *ToastController) Ticking() bool { return c.ticking }

// SetTicking records the tick timer state.
func (c *ToastController) SetTicking(v bool) { c.ticking = v }
