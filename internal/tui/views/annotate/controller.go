package annotate

import (
	"strings"

	"github.com/colonyops/excerpt/internal/core/transcript"
)

// Row is one quote prepared for display: the annotated quote plus its
// resolved moderator question and owning session.
type Row struct {
	Quote     transcript.Quote
	Question  *transcript.ModeratorQuestion
	SessionID string
}

// Controller manages quote rows, cursor movement, filtering, and the
// parent-owned visibility flags for every card. It contains pure data logic
// with no Bubble Tea dependencies.
//
// The per-quote flag pairs implement the disclosure state machine from the
// card's point of view: Dormant (no flags), Hinted (pillVisible), Open
// (questionOpen). Hidden is simply a quote whose segment index is not
// positive; no flags ever apply to it.
type Controller struct {
	rows       []Row
	cursor     int
	offset     int
	filtering  bool
	filter     string
	filterBuf  strings.Builder
	filteredAt []int // indices into rows matching filter

	pillVisible  map[string]bool
	questionOpen map[string]bool

	hoveredID string
	hoverGen  int
}

// NewController creates an empty controller.
func NewController() *Controller {
	return &Controller{
		filteredAt:   make([]int, 0),
		pillVisible:  make(map[string]bool),
		questionOpen: make(map[string]bool),
	}
}

// SetRows replaces all rows, keeping cursor and flags where possible.
func (c *Controller) SetRows(rows []Row) {
	c.rows = rows
	c.applyFilter()
}

// UpdateRow replaces the quote for the row with the given ID.
func (c *Controller) UpdateRow(quoteID string, q transcript.Quote) {
	for i := range c.rows {
		if c.rows[i].Quote.DomID == quoteID {
			c.rows[i].Quote = q
			return
		}
	}
}

// Rows returns all rows.
func (c *Controller) Rows() []Row { return c.rows }

// Len returns the total number of rows.
func (c *Controller) Len() int { return len(c.rows) }

// Selected returns the row under the cursor, or nil.
func (c *Controller) Selected() *Row {
	if len(c.filteredAt) == 0 || c.cursor >= len(c.filteredAt) {
		return nil
	}
	idx := c.filteredAt[c.cursor]
	if idx >= len(c.rows) {
		return nil
	}
	return &c.rows[idx]
}

// MoveUp moves the cursor up one row.
func (c *Controller) MoveUp(visible int) {
	if c.cursor > 0 {
		c.cursor--
		c.clampOffset(visible)
	}
}

// MoveDown moves the cursor down one row.
func (c *Controller) MoveDown(visible int) {
	if c.cursor < len(c.filteredAt)-1 {
		c.cursor++
		c.clampOffset(visible)
	}
}

// Cursor returns the cursor position within the filtered rows.
func (c *Controller) Cursor() int { return c.cursor }

// Offset returns the scroll offset.
func (c *Controller) Offset() int { return c.offset }

// FilteredAt returns indices of rows matching the filter.
func (c *Controller) FilteredAt() []int { return c.filteredAt }

// SetSize clamps the offset after a size change.
func (c *Controller) SetSize(visible int) {
	c.clampOffset(visible)
}

// PillVisible reports the hover-hint flag for a quote.
func (c *Controller) PillVisible(quoteID string) bool { return c.pillVisible[quoteID] }

// QuestionOpen reports the disclosure flag for a quote.
func (c *Controller) QuestionOpen(quoteID string) bool { return c.questionOpen[quoteID] }

// ShowPill sets the hover-hint flag after the debounce fired.
func (c *Controller) ShowPill(quoteID string) { c.pillVisible[quoteID] = true }

// HoverEnter records the cursor arriving on a quote and returns the hover
// generation used to validate the debounce tick.
func (c *Controller) HoverEnter(quoteID string) int {
	c.hoveredID = quoteID
	c.hoverGen++
	return c.hoverGen
}

// HoverLeave clears the hover-hint flag immediately and invalidates any
// pending debounce tick.
func (c *Controller) HoverLeave(quoteID string) {
	delete(c.pillVisible, quoteID)
	if c.hoveredID == quoteID {
		c.hoveredID = ""
		c.hoverGen++
	}
}

// HoverCurrent reports whether the debounce tick for (quoteID, gen) is still
// valid: the cursor never left the quote since the tick was scheduled.
func (c *Controller) HoverCurrent(quoteID string, gen int) bool {
	return c.hoveredID == quoteID && c.hoverGen == gen
}

// ToggleQuestion flips the disclosure flag for a quote. Opening clears the
// pill hint; the open block supersedes it.
func (c *Controller) ToggleQuestion(quoteID string) {
	open := !c.questionOpen[quoteID]
	c.questionOpen[quoteID] = open
	if open {
		delete(c.pillVisible, quoteID)
	}
}

// StartFilter begins filter input mode.
func (c *Controller) StartFilter() {
	c.filtering = true
	c.filterBuf.Reset()
}

// CancelFilter cancels filtering and clears the filter.
func (c *Controller) CancelFilter() {
	c.filtering = false
	c.filter = ""
	c.filterBuf.Reset()
	c.applyFilter()
}

// ConfirmFilter confirms the filter and exits filter mode.
func (c *Controller) ConfirmFilter() {
	c.filtering = false
	c.applyFilter()
}

// IsFiltering returns true while filter input is active.
func (c *Controller) IsFiltering() bool { return c.filtering }

// Filter returns the current filter text.
func (c *Controller) Filter() string { return c.filter }

// AddFilterRune adds a rune to the filter.
func (c *Controller) AddFilterRune(r rune) {
	c.filterBuf.WriteRune(r)
	c.filter = c.filterBuf.String()
	c.applyFilter()
}

// DeleteFilterRune removes the last rune from the filter.
func (c *Controller) DeleteFilterRune() {
	runes := []rune(c.filterBuf.String())
	if len(runes) > 0 {
		runes = runes[:len(runes)-1]
		c.filterBuf.Reset()
		c.filterBuf.WriteString(string(runes))
		c.filter = string(runes)
		c.applyFilter()
	}
}

func (c *Controller) applyFilter() {
	c.filteredAt = c.filteredAt[:0]
	filter := strings.ToLower(c.filter)

	for i := range c.rows {
		if filter == "" || matchesFilter(&c.rows[i], filter) {
			c.filteredAt = append(c.filteredAt, i)
		}
	}

	if c.cursor >= len(c.filteredAt) {
		c.cursor = 0
	}
}

func matchesFilter(row *Row, filter string) bool {
	q := &row.Quote
	if strings.Contains(strings.ToLower(q.DisplayText()), filter) ||
		strings.Contains(strings.ToLower(q.SpeakerCode), filter) ||
		strings.Contains(strings.ToLower(q.Topic), filter) {
		return true
	}
	for _, tag := range q.Tags {
		if strings.Contains(strings.ToLower(tag), filter) {
			return true
		}
	}
	return false
}

func (c *Controller) clampOffset(visible int) {
	total := len(c.filteredAt)

	if c.cursor < c.offset {
		c.offset = c.cursor
	} else if c.cursor >= c.offset+visible {
		c.offset = c.cursor - visible + 1
	}

	if c.offset < 0 {
		c.offset = 0
	}
	maxOffset := max(total-visible, 0)
	if c.offset > maxOffset {
		c.offset = maxOffset
	}
}
