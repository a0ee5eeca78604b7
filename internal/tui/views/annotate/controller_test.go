package annotate

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/excerpt/internal/core/transcript"
)

func newRow(id, text string, segment int) Row {
	row := Row{
		Quote: transcript.Quote{
			DomID:        id,
			Text:         text,
			SpeakerCode:  "P1",
			SegmentIndex: segment,
		},
		SessionID: "s1",
	}
	if segment > 0 {
		row.Question = &transcript.ModeratorQuestion{
			SegmentIndex: segment,
			Text:         "Why did you choose that?",
		}
	}
	return row
}

func TestController_SetRows(t *testing.T) {
	t.Run("replaces rows and refilters", func(t *testing.T) {
		c := NewController()
		c.SetRows([]Row{newRow("q1", "first", 1), newRow("q2", "second", 0)})

		assert.Equal(t, 2, c.Len())
		assert.Len(t, c.FilteredAt(), 2)
	})

	t.Run("cursor clamps when rows shrink", func(t *testing.T) {
		c := NewController()
		c.SetRows([]Row{newRow("q1", "a", 0), newRow("q2", "b", 0), newRow("q3", "c", 0)})
		c.MoveDown(10)
		c.MoveDown(10)
		require.Equal(t, 2, c.Cursor())

		c.SetRows([]Row{newRow("q1", "a", 0)})
		assert.Equal(t, 0, c.Cursor())
	})
}

func TestController_UpdateRow(t *testing.T) {
	c := NewController()
	c.SetRows([]Row{newRow("q1", "original", 1)})

	updated := c.Rows()[0].Quote
	updated.IsStarred = true
	c.UpdateRow("q1", updated)

	assert.True(t, c.Rows()[0].Quote.IsStarred)
	assert.NotNil(t, c.Rows()[0].Question, "question linkage survives quote update")
}

func TestController_HoverDebounce(t *testing.T) {
	t.Run("tick valid while cursor stays", func(t *testing.T) {
		c := NewController()
		gen := c.HoverEnter("q1")

		assert.True(t, c.HoverCurrent("q1", gen))
	})

	t.Run("leave invalidates pending tick", func(t *testing.T) {
		c := NewController()
		gen := c.HoverEnter("q1")
		c.HoverLeave("q1")

		assert.False(t, c.HoverCurrent("q1", gen))
	})

	t.Run("re-enter invalidates older generation", func(t *testing.T) {
		c := NewController()
		gen1 := c.HoverEnter("q1")
		c.HoverLeave("q1")
		gen2 := c.HoverEnter("q1")

		assert.False(t, c.HoverCurrent("q1", gen1))
		assert.True(t, c.HoverCurrent("q1", gen2))
	})

	t.Run("moving to another quote invalidates", func(t *testing.T) {
		c := NewController()
		gen := c.HoverEnter("q1")
		c.HoverEnter("q2")

		assert.False(t, c.HoverCurrent("q1", gen))
	})

	t.Run("leave clears the pill immediately", func(t *testing.T) {
		c := NewController()
		c.HoverEnter("q1")
		c.ShowPill("q1")
		require.True(t, c.PillVisible("q1"))

		c.HoverLeave("q1")
		assert.False(t, c.PillVisible("q1"))
	})

	t.Run("leave of another quote keeps pill", func(t *testing.T) {
		c := NewController()
		c.HoverEnter("q1")
		c.ShowPill("q1")

		c.HoverLeave("q2")
		assert.True(t, c.PillVisible("q1"))
	})
}

func TestController_ToggleQuestion(t *testing.T) {
	t.Run("toggles open and closed", func(t *testing.T) {
		c := NewController()
		c.ToggleQuestion("q1")
		assert.True(t, c.QuestionOpen("q1"))

		c.ToggleQuestion("q1")
		assert.False(t, c.QuestionOpen("q1"))
	})

	t.Run("opening clears the pill", func(t *testing.T) {
		c := NewController()
		c.HoverEnter("q1")
		c.ShowPill("q1")
		require.True(t, c.PillVisible("q1"))

		c.ToggleQuestion("q1")
		assert.False(t, c.PillVisible("q1"), "open block supersedes the pill")
	})

	t.Run("closing does not restore the pill", func(t *testing.T) {
		c := NewController()
		c.ShowPill("q1")
		c.ToggleQuestion("q1")
		c.ToggleQuestion("q1")

		assert.False(t, c.PillVisible("q1"), "pill needs a fresh hover after dismissal")
	})

	t.Run("flags are per quote", func(t *testing.T) {
		c := NewController()
		c.ToggleQuestion("q1")

		assert.True(t, c.QuestionOpen("q1"))
		assert.False(t, c.QuestionOpen("q2"))
	})
}

func TestController_Filter(t *testing.T) {
	rows := []Row{
		newRow("q1", "the onboarding flow was confusing", 1),
		newRow("q2", "pricing page felt clear", 0),
		newRow("q3", "I liked the onboarding checklist", 2),
	}

	t.Run("matches quote text case-insensitively", func(t *testing.T) {
		c := NewController()
		c.SetRows(rows)
		c.StartFilter()
		for _, r := range "ONBOARD" {
			c.AddFilterRune(r)
		}

		assert.Len(t, c.FilteredAt(), 2)
	})

	t.Run("matches speaker code", func(t *testing.T) {
		c := NewController()
		c.SetRows(rows)
		c.StartFilter()
		for _, r := range "p1" {
			c.AddFilterRune(r)
		}

		assert.Len(t, c.FilteredAt(), 3)
	})

	t.Run("matches tags", func(t *testing.T) {
		tagged := newRow("q4", "something else entirely", 0)
		tagged.Quote.Tags = []string{"usability"}

		c := NewController()
		c.SetRows(append(rows, tagged))
		c.StartFilter()
		for _, r := range "usab" {
			c.AddFilterRune(r)
		}

		require.Len(t, c.FilteredAt(), 1)
		assert.Equal(t, "q4", c.Rows()[c.FilteredAt()[0]].Quote.DomID)
	})

	t.Run("cancel clears the filter", func(t *testing.T) {
		c := NewController()
		c.SetRows(rows)
		c.StartFilter()
		c.AddFilterRune('z')
		require.Empty(t, c.FilteredAt())

		c.CancelFilter()
		assert.Len(t, c.FilteredAt(), 3)
		assert.Empty(t, c.Filter())
	})

	t.Run("backspace narrows and widens", func(t *testing.T) {
		c := NewController()
		c.SetRows(rows)
		c.StartFilter()
		c.AddFilterRune('p')
		c.AddFilterRune('r')
		c.AddFilterRune('z')
		require.Empty(t, c.FilteredAt())

		c.DeleteFilterRune()
		assert.Len(t, c.FilteredAt(), 1, "pricing row matches after backspace")
	})
}

func TestController_Scrolling(t *testing.T) {
	c := NewController()
	var rows []Row
	for i := range 10 {
		rows = append(rows, newRow(fmt.Sprintf("q%d", i), fmt.Sprintf("quote %d", i), 0))
	}
	c.SetRows(rows)

	visible := 3
	for range 6 {
		c.MoveDown(visible)
	}
	assert.Equal(t, 6, c.Cursor())
	assert.Equal(t, 4, c.Offset(), "offset follows cursor past the window")

	for range 6 {
		c.MoveUp(visible)
	}
	assert.Equal(t, 0, c.Cursor())
	assert.Equal(t, 0, c.Offset())
}
